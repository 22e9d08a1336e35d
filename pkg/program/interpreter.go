package program

import "math"

// scalarKernels is indexed by Opcode, mirroring the original's
// SCALAR_FUNCTIONS dispatch table: one closure per opcode, each reading its
// operands out of memory and writing its result to addr.
var scalarKernels = [...]func(mem ScalarMemory, addr Address, instr *Instruction){
	NOP: func(ScalarMemory, Address, *Instruction) {},
	ADD: func(mem ScalarMemory, addr Address, instr *Instruction) {
		mem[addr] = mem[instr.SecondOperand] + mem[instr.Argument]
	},
	ADD_IMM: func(mem ScalarMemory, addr Address, instr *Instruction) {
		mem[addr] = instr.Immediate + mem[instr.Argument]
	},
	SUB: func(mem ScalarMemory, addr Address, instr *Instruction) {
		mem[addr] = mem[instr.SecondOperand] - mem[instr.Argument]
	},
	SUB_IMM: func(mem ScalarMemory, addr Address, instr *Instruction) {
		mem[addr] = instr.Immediate - mem[instr.Argument]
	},
	MUL: func(mem ScalarMemory, addr Address, instr *Instruction) {
		mem[addr] = mem[instr.SecondOperand] * mem[instr.Argument]
	},
	MUL_IMM: func(mem ScalarMemory, addr Address, instr *Instruction) {
		mem[addr] = instr.Immediate * mem[instr.Argument]
	},
	DIV: func(mem ScalarMemory, addr Address, instr *Instruction) {
		mem[addr] = mem[instr.SecondOperand] / mem[instr.Argument]
	},
	DIV_IMM: func(mem ScalarMemory, addr Address, instr *Instruction) {
		mem[addr] = instr.Immediate / mem[instr.Argument]
	},
	POW: func(mem ScalarMemory, addr Address, instr *Instruction) {
		mem[addr] = math.Pow(mem[instr.SecondOperand], mem[instr.Argument])
	},
	CALL: func(mem ScalarMemory, addr Address, instr *Instruction) {
		mem[addr] = instr.Function(mem[instr.Argument])
	},
	SIN: func(mem ScalarMemory, addr Address, instr *Instruction) {
		mem[addr] = math.Sin(mem[instr.Argument])
	},
	COS: func(mem ScalarMemory, addr Address, instr *Instruction) {
		mem[addr] = math.Cos(mem[instr.Argument])
	},
	SINCOS: func(mem ScalarMemory, addr Address, instr *Instruction) {
		argument := mem[instr.Argument]
		mem[addr] = math.Sin(argument)
		mem[int(addr)+instr.Displacement] = math.Cos(argument)
	},
}

// RunScalar evaluates every instruction in order into mem, which must have
// been sized (and constant-loaded) by AllocateScalarMemory with inputs
// already written by the caller.
func (p *Program) RunScalar(mem ScalarMemory) {
	offset := p.instructions.MemoryOffset
	for i, instr := range p.instructions.Values {
		scalarKernels[instr.Opcode](mem, offset+Address(i), &instr)
	}
}

// vectorKernels is RunVector's dispatch table. POW and CALL unroll per lane
// since math.Pow and an arbitrary symbol.Function are not available in a
// vectorized form.
var vectorKernels = [...]func(mem VectorMemory, addr Address, instr *Instruction){
	NOP: func(VectorMemory, Address, *Instruction) {},
	ADD: func(mem VectorMemory, addr Address, instr *Instruction) {
		mem[addr] = mem[instr.SecondOperand].add(mem[instr.Argument])
	},
	ADD_IMM: func(mem VectorMemory, addr Address, instr *Instruction) {
		mem[addr] = Splat(instr.Immediate).add(mem[instr.Argument])
	},
	SUB: func(mem VectorMemory, addr Address, instr *Instruction) {
		mem[addr] = mem[instr.SecondOperand].sub(mem[instr.Argument])
	},
	SUB_IMM: func(mem VectorMemory, addr Address, instr *Instruction) {
		mem[addr] = Splat(instr.Immediate).sub(mem[instr.Argument])
	},
	MUL: func(mem VectorMemory, addr Address, instr *Instruction) {
		mem[addr] = mem[instr.SecondOperand].mul(mem[instr.Argument])
	},
	MUL_IMM: func(mem VectorMemory, addr Address, instr *Instruction) {
		mem[addr] = Splat(instr.Immediate).mul(mem[instr.Argument])
	},
	DIV: func(mem VectorMemory, addr Address, instr *Instruction) {
		mem[addr] = mem[instr.SecondOperand].div(mem[instr.Argument])
	},
	DIV_IMM: func(mem VectorMemory, addr Address, instr *Instruction) {
		mem[addr] = Splat(instr.Immediate).div(mem[instr.Argument])
	},
	POW: func(mem VectorMemory, addr Address, instr *Instruction) {
		base, exponent := mem[instr.SecondOperand], mem[instr.Argument]

		var result Vector
		for i := range result {
			result[i] = math.Pow(base[i], exponent[i])
		}

		mem[addr] = result
	},
	CALL: func(mem VectorMemory, addr Address, instr *Instruction) {
		argument := mem[instr.Argument]

		var result Vector
		for i := range result {
			result[i] = instr.Function(argument[i])
		}

		mem[addr] = result
	},
	SIN: func(mem VectorMemory, addr Address, instr *Instruction) {
		argument := mem[instr.Argument]

		var result Vector
		for i := range result {
			result[i] = math.Sin(argument[i])
		}

		mem[addr] = result
	},
	COS: func(mem VectorMemory, addr Address, instr *Instruction) {
		argument := mem[instr.Argument]

		var result Vector
		for i := range result {
			result[i] = math.Cos(argument[i])
		}

		mem[addr] = result
	},
	SINCOS: func(mem VectorMemory, addr Address, instr *Instruction) {
		argument := mem[instr.Argument]

		var sines, cosines Vector
		for i := range sines {
			sines[i] = math.Sin(argument[i])
			cosines[i] = math.Cos(argument[i])
		}

		mem[addr] = sines
		mem[int(addr)+instr.Displacement] = cosines
	},
}

// RunVector is RunScalar's vector-interpreter counterpart.
func (p *Program) RunVector(mem VectorMemory) {
	offset := p.instructions.MemoryOffset
	for i, instr := range p.instructions.Values {
		vectorKernels[instr.Opcode](mem, offset+Address(i), &instr)
	}
}
