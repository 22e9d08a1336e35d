package program

import (
	"strings"
	"testing"
)

// buildLinear builds y = 3 + 2*x as a two-instruction program: x at address
// 1, the MUL_IMM result at address 2, the ADD_IMM result (output y) at
// address 3.
func buildLinear() *Program {
	return New(
		Variables{"x": 1},
		Variables{"y": 3},
		Constants{MemoryOffset: 2, Values: nil},
		Instructions{
			MemoryOffset: 2,
			Values: []Instruction{
				{Opcode: MUL_IMM, Argument: 1, Immediate: 2},
				{Opcode: ADD_IMM, Argument: 2, Immediate: 3},
			},
		},
		nil,
	)
}

func TestRunScalar(t *testing.T) {
	p := buildLinear()
	mem := p.AllocateScalarMemory()

	xAddr, err := p.GetInputAddress("x")
	if err != nil {
		t.Fatal(err)
	}

	mem[xAddr] = 5

	p.RunScalar(mem)

	yAddr, err := p.GetOutputAddress("y")
	if err != nil {
		t.Fatal(err)
	}

	if got, want := mem[yAddr], 13.0; got != want {
		t.Fatalf("y = %v, want %v", got, want)
	}
}

func TestRunVector(t *testing.T) {
	p := buildLinear()
	mem := p.AllocateVectorMemory()

	xAddr, _ := p.GetInputAddress("x")
	mem[xAddr] = Vector{1, 2, 3, 4}

	p.RunVector(mem)

	yAddr, _ := p.GetOutputAddress("y")

	want := Vector{5, 7, 9, 11}
	if got := mem[yAddr]; got != want {
		t.Fatalf("y = %v, want %v", got, want)
	}
}

func TestScalarExecutableMatchesRunScalar(t *testing.T) {
	p := buildLinear()

	exe := p.NewScalarExecutable()

	xAddr, _ := p.GetInputAddress("x")
	exe.Memory[xAddr] = 7

	exe.Run()

	yAddr, _ := p.GetOutputAddress("y")
	if got, want := exe.Memory[yAddr], 17.0; got != want {
		t.Fatalf("y = %v, want %v", got, want)
	}
}

func TestVectorExecutableMatchesRunVector(t *testing.T) {
	p := buildLinear()

	exe := p.NewVectorExecutable()

	xAddr, _ := p.GetInputAddress("x")
	exe.Memory[xAddr] = Vector{0, 1, 2, 3}

	exe.Run()

	yAddr, _ := p.GetOutputAddress("y")

	want := Vector{3, 5, 7, 9}
	if got := exe.Memory[yAddr]; got != want {
		t.Fatalf("y = %v, want %v", got, want)
	}
}

func TestSinCosFusion(t *testing.T) {
	// y = sin(x), z = cos(x), with the cos half fused into y's SINCOS
	// instruction one slot ahead and the standalone cos instruction turned
	// into a NOP, the way the code generator's fusion pass leaves them.
	p := New(
		Variables{"x": 1},
		Variables{"y": 2, "z": 3},
		Constants{},
		Instructions{
			MemoryOffset: 2,
			Values: []Instruction{
				{Opcode: SINCOS, Argument: 1, Displacement: 1},
				{Opcode: NOP},
			},
		},
		nil,
	)

	mem := p.AllocateScalarMemory()

	xAddr, _ := p.GetInputAddress("x")
	mem[xAddr] = 0.5

	p.RunScalar(mem)

	yAddr, _ := p.GetOutputAddress("y")
	zAddr, _ := p.GetOutputAddress("z")

	if got, want := mem[yAddr], 0.479425538604203; got-want > 1e-12 || want-got > 1e-12 {
		t.Fatalf("sin(0.5) = %v, want %v", got, want)
	}

	if got, want := mem[zAddr], 0.8775825618903728; got-want > 1e-12 || want-got > 1e-12 {
		t.Fatalf("cos(0.5) = %v, want %v", got, want)
	}
}

func TestInstructionEqual(t *testing.T) {
	a := Instruction{Opcode: ADD, Argument: 4, SecondOperand: 5}
	b := Instruction{Opcode: ADD, Argument: 4, SecondOperand: 5}
	c := Instruction{Opcode: ADD, Argument: 4, SecondOperand: 6}

	if !a.Equal(b) {
		t.Fatal("expected equal ADD instructions to compare equal")
	}

	if a.Equal(c) {
		t.Fatal("expected ADD instructions with different operands to differ")
	}

	nop1 := Instruction{Opcode: NOP}
	nop2 := Instruction{Opcode: NOP}

	if nop1.Equal(nop2) {
		t.Fatal("NOPs must never compare equal")
	}
}

func TestNewRejectsScratchpadOutput(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected a panic for an output aliasing the scratchpad")
		}
	}()

	New(nil, Variables{"y": ScratchpadAddress}, Constants{}, Instructions{MemoryOffset: 1}, nil)
}

func TestDump(t *testing.T) {
	p := buildLinear()

	out, err := p.Dump()
	if err != nil {
		t.Fatal(err)
	}

	if !strings.Contains(string(out), "MUL_IMM") {
		t.Fatalf("dump missing opcode name: %s", out)
	}
}
