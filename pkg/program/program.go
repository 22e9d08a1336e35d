// Package program implements the compiled artifact a Compiler produces and
// the interpreters that evaluate it. A Program is a flat, address-indexed
// linear program: a data section (inputs then constants), a code section (one
// Instruction per level-ordered term of the originating ASG) and name maps
// recovering input/output addresses for a host.
//
// A Program is logically immutable once built. Evaluating it requires a
// Memory (ScalarMemory or VectorMemory) allocated by the caller; many
// goroutines may run the same Program concurrently provided each uses its
// own Memory.
package program

import "fmt"

// Address indexes a single memory slot.
type Address = uint32

// ScratchpadAddress is the dedicated slot unused inputs alias to; New
// rejects an output at this address.
const ScratchpadAddress Address = 0

// Variables maps a symbol name to its memory address.
type Variables map[string]Address

// Constants is the contiguous block of constant values the data section
// loads ahead of any instruction executing.
type Constants struct {
	MemoryOffset Address
	Values       []float64
}

// Instructions is the contiguous block of code, one entry per address in
// [MemoryOffset, MemoryOffset+len(Values)).
type Instructions struct {
	MemoryOffset Address
	Values       []Instruction
}

// Comments annotates selected addresses with the source expression they
// came from, for inspection/dump purposes only.
type Comments map[Address]string

// Program is the compiled, address-resolved linear program.
type Program struct {
	inputs       Variables
	outputs      Variables
	constants    Constants
	instructions Instructions
	comments     Comments
}

// New assembles a Program from its sections. It panics if the memory-map
// invariants spec.md §3.5 requires are violated: constants must not overlap
// the scratchpad or the code region, no input address may fall inside the
// constants range or at/after the code region, and no output address may be
// the scratchpad. These invariants are established by construction in
// pkg/compiler; a violation here means the code generator has a bug, not
// that the caller supplied bad data, so panicking (rather than returning an
// error) is appropriate.
func New(inputs, outputs Variables, constants Constants, instructions Instructions, comments Comments) *Program {
	if len(constants.Values) > 0 {
		if ScratchpadAddress-constants.MemoryOffset < Address(len(constants.Values)) {
			panic("program: constants overlap the scratchpad")
		}

		if constants.MemoryOffset+Address(len(constants.Values)) > instructions.MemoryOffset {
			panic("program: constants overlap the code region")
		}
	}

	constantsEnd := constants.MemoryOffset + Address(len(constants.Values))

	for name, addr := range inputs {
		if addr >= instructions.MemoryOffset {
			panic(fmt.Sprintf("program: input %q addresses the code region", name))
		}

		if addr >= constants.MemoryOffset && addr < constantsEnd {
			panic(fmt.Sprintf("program: input %q addresses the constants region", name))
		}
	}

	for name, addr := range outputs {
		if addr == ScratchpadAddress {
			panic(fmt.Sprintf("program: output %q addresses the scratchpad", name))
		}
	}

	return &Program{
		inputs:       inputs,
		outputs:      outputs,
		constants:    constants,
		instructions: instructions,
		comments:     comments,
	}
}

// Inputs returns the input name -> address map.
func (p *Program) Inputs() Variables { return p.inputs }

// Outputs returns the output name -> address map.
func (p *Program) Outputs() Variables { return p.outputs }

// Constants returns the constants section.
func (p *Program) Constants() Constants { return p.constants }

// Instructions returns the code section.
func (p *Program) Instructions() Instructions { return p.instructions }

// Comments returns the address -> source-expression annotation map.
func (p *Program) Comments() Comments { return p.comments }

// GetInputAddress looks up an input's memory address by name.
func (p *Program) GetInputAddress(name string) (Address, error) {
	addr, ok := p.inputs[name]
	if !ok {
		return 0, fmt.Errorf("program: unknown input %q", name)
	}

	return addr, nil
}

// GetOutputAddress looks up an output's memory address by name.
func (p *Program) GetOutputAddress(name string) (Address, error) {
	addr, ok := p.outputs[name]
	if !ok {
		return 0, fmt.Errorf("program: unknown output %q", name)
	}

	return addr, nil
}

// memorySize is the number of slots a Memory allocated for this Program
// needs: every slot below the code section (scratchpad, inputs, constants)
// and one slot per instruction.
func (p *Program) memorySize() int {
	return int(p.instructions.MemoryOffset) + len(p.instructions.Values)
}
