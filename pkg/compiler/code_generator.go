package compiler

import (
	"fmt"
	"math"
	"reflect"
	"sort"

	"github.com/bits-and-blooms/bitset"

	"github.com/sixpack-lang/sixpack/pkg/asg"
	"github.com/sixpack-lang/sixpack/pkg/program"
	"github.com/sixpack-lang/sixpack/pkg/symbol"
)

// codeGenerator lowers a transformed ASG into a program.Program: a gathering
// pass (an asg.Visitor, run once at construction) buckets every distinct
// term by depth level, then Generate emits level 0 as the data section
// (constants then inputs) and every level above it as instructions, fuses
// SINCOS pairs, and maps any variable nothing referenced to the scratchpad.
type codeGenerator struct {
	termIDs    map[asg.Term]uint
	nextID     uint
	gathered   *bitset.BitSet
	termLevels [][]asg.Term

	inputs        program.Variables
	outputs       program.Variables
	constants     program.Constants
	instructions  program.Instructions
	comments      program.Comments
	memoryMapping map[asg.Term]program.Address
}

// newCodeGenerator gathers every distinct term reachable from graphRoot,
// bucketed by Depth().
func newCodeGenerator(graphRoot asg.Term) *codeGenerator {
	g := &codeGenerator{
		termIDs:  make(map[asg.Term]uint),
		gathered: bitset.New(0),
	}
	graphRoot.Accept(g)

	return g
}

// gather assigns term a dense id on first visit and records it in its depth
// level, exactly once no matter how many times gather sees it again (a
// term may be reachable through more than one parent once Merge has run).
func (g *codeGenerator) gather(term asg.Term) {
	id, ok := g.termIDs[term]
	if !ok {
		id = g.nextID
		g.nextID++
		g.termIDs[term] = id
	}

	if g.gathered.Test(id) {
		return
	}

	g.gathered.Set(id)

	level := term.Depth()
	for len(g.termLevels) <= level {
		g.termLevels = append(g.termLevels, nil)
	}

	g.termLevels[level] = append(g.termLevels[level], term)
}

// VisitSequence implements asg.Visitor.
func (g *codeGenerator) VisitSequence(t *asg.Sequence) {
	for _, c := range t.Terms {
		c.Accept(g)
	}
}

// VisitConstant implements asg.Visitor.
func (g *codeGenerator) VisitConstant(t *asg.Constant) { g.gather(t) }

// VisitInput implements asg.Visitor.
func (g *codeGenerator) VisitInput(t *asg.Input) { g.gather(t) }

// VisitOutput implements asg.Visitor.
func (g *codeGenerator) VisitOutput(t *asg.Output) {
	g.gather(t)
	t.Term.Accept(g)
}

// VisitUnaryFunction implements asg.Visitor.
func (g *codeGenerator) VisitUnaryFunction(t *asg.UnaryFunction) {
	g.gather(t)
	t.Argument.Accept(g)
}

// visitGroupTerms is shared by VisitAddition/VisitMultiplication: the
// constant operand is deliberately excluded from the recursive walk, since
// it never itself needs a memory address of its own beyond the immediate
// folded into the group's instruction.
func (g *codeGenerator) visitGroupTerms(self asg.Term, positive, negative []asg.Term) {
	g.gather(self)

	for _, t := range positive {
		t.Accept(g)
	}

	for _, t := range negative {
		t.Accept(g)
	}
}

// VisitAddition implements asg.Visitor.
func (g *codeGenerator) VisitAddition(t *asg.Addition) {
	g.visitGroupTerms(t, t.PositiveTerms, t.NegativeTerms)
}

// VisitMultiplication implements asg.Visitor.
func (g *codeGenerator) VisitMultiplication(t *asg.Multiplication) {
	g.visitGroupTerms(t, t.PositiveTerms, t.NegativeTerms)
}

// VisitExponentiation implements asg.Visitor.
func (g *codeGenerator) VisitExponentiation(t *asg.Exponentiation) {
	g.gather(t)
	t.Base.Accept(g)
	t.Exponent.Accept(g)
}

// VisitSquaring implements asg.Visitor.
func (g *codeGenerator) VisitSquaring(t *asg.Squaring) {
	g.gather(t)
	t.Base.Accept(g)
}

// sortLevelByType groups a level's terms by concrete type: the original
// stable-sorts by typeid so that level 0 (where only Constant and Input may
// legally appear) and every other level emit in a deterministic, type-
// grouped order. typeid has no Go equivalent, so the type's name stands in;
// unlike typeid's implementation-defined ordering this is also reproducible
// across builds, which is a strict improvement, not a behavior change.
func sortLevelByType(terms []asg.Term) {
	sort.SliceStable(terms, func(i, j int) bool {
		return reflect.TypeOf(terms[i]).String() < reflect.TypeOf(terms[j]).String()
	})
}

// generate builds the Program from the gathered levels.
func (g *codeGenerator) generate(publicSymbols *symbol.Lexicon) (*program.Program, error) {
	g.inputs = program.Variables{}
	g.outputs = program.Variables{}
	g.constants = program.Constants{}
	g.instructions = program.Instructions{}
	g.comments = program.Comments{}
	g.memoryMapping = make(map[asg.Term]program.Address)

	g.addComment(program.ScratchpadAddress, "scratch-pad")

	for level, terms := range g.termLevels {
		sortLevelByType(terms)

		var err error
		if level == 0 {
			err = g.generateDataSection(terms)
		} else {
			err = g.generateCodeSection(terms)
		}

		if err != nil {
			return nil, err
		}
	}

	g.generateIntrinsics()

	for _, sym := range publicSymbols.Symbols() {
		variable, ok := sym.(*symbol.Variable)
		if !ok {
			continue
		}

		if _, exists := g.inputs[variable.Name()]; !exists {
			g.inputs[variable.Name()] = program.ScratchpadAddress
			g.addComment(program.ScratchpadAddress, fmt.Sprintf("'%s'", variable.Name()))
		}
	}

	return program.New(g.inputs, g.outputs, g.constants, g.instructions, g.comments), nil
}

func (g *codeGenerator) mapToMemory(term asg.Term, address program.Address) error {
	if _, exists := g.memoryMapping[term]; exists {
		return newCompileError("code generation failed -- ambiguous memory mapping")
	}

	g.memoryMapping[term] = address

	switch t := term.(type) {
	case *asg.Output:
		g.addComment(address, fmt.Sprintf("'%s'", t.Name))
	default:
		if n := term.SourceNode(); n != nil {
			g.addComment(address, fmt.Sprintf("source[%d:%d]", n.Outer().Start(), n.Outer().End()))
		}
	}

	return nil
}

func (g *codeGenerator) getAddress(term asg.Term) (program.Address, error) {
	addr, ok := g.memoryMapping[term]
	if !ok {
		return 0, newCompileError("code generation failed -- missing memory mapping")
	}

	return addr, nil
}

func (g *codeGenerator) addComment(address program.Address, comment string) {
	if g.comments == nil {
		g.comments = program.Comments{}
	}

	if existing := g.comments[address]; existing != "" {
		g.comments[address] = existing + ", " + comment
	} else {
		g.comments[address] = comment
	}
}

// emitInstruction appends instr (with opcode set) unless an equal
// instruction already exists, in which case that one's address is reused --
// the code generator's only common-subexpression elision. If emitter is
// non-nil, the resulting address is also recorded as emitter's own.
func (g *codeGenerator) emitInstruction(opcode program.Opcode, instr program.Instruction, emitter asg.Term) (program.Address, error) {
	instr.Opcode = opcode

	for i, existing := range g.instructions.Values {
		if existing.Equal(instr) {
			addr := g.instructions.MemoryOffset + program.Address(i)
			if emitter != nil {
				if err := g.mapToMemory(emitter, addr); err != nil {
					return 0, err
				}
			}

			return addr, nil
		}
	}

	addr := g.instructions.MemoryOffset + program.Address(len(g.instructions.Values))
	g.instructions.Values = append(g.instructions.Values, instr)

	if emitter != nil {
		if err := g.mapToMemory(emitter, addr); err != nil {
			return 0, err
		}
	}

	return addr, nil
}

// emitGroupOperationSequence walks an Addition or Multiplication's operand
// lists, chaining one two-operand instruction per subsequent operand onto a
// running "last result" address, folding the group's constant into the
// first instruction instead of emitting it separately when possible.
func (g *codeGenerator) emitGroupOperationSequence(
	self asg.Term,
	constant, identity float64,
	positiveTerms, negativeTerms []asg.Term,
	initialPositiveOp, sequentialPositiveOp, initialNegativeOp, sequentialNegativeOp program.Opcode,
) error {
	var (
		lastAddress      program.Address
		haveLastAddress  bool
		pendingOperation program.Opcode
		havePending      bool
	)

	needsConstant := constant != identity

	step := func(term asg.Term, sequentialOp, initialOp program.Opcode, negative bool) error {
		address, err := g.getAddress(term)
		if err != nil {
			return err
		}

		switch {
		case haveLastAddress:
			addr, err := g.emitInstruction(sequentialOp, program.Instruction{SecondOperand: lastAddress, Argument: address}, nil)
			if err != nil {
				return err
			}

			lastAddress, havePending = addr, false
		case needsConstant || negative:
			// A leading negative operand is applied to the constant at once,
			// so later negatives subtract from (or divide) that result.
			addr, err := g.emitInstruction(initialOp, program.Instruction{Immediate: constant, Argument: address}, nil)
			if err != nil {
				return err
			}

			lastAddress, haveLastAddress = addr, true
		default:
			lastAddress, haveLastAddress = address, true
			pendingOperation, havePending = initialOp, true
		}

		return nil
	}

	for _, term := range positiveTerms {
		if err := step(term, sequentialPositiveOp, initialPositiveOp, false); err != nil {
			return err
		}
	}

	for _, term := range negativeTerms {
		if err := step(term, sequentialNegativeOp, initialNegativeOp, true); err != nil {
			return err
		}
	}

	if !haveLastAddress {
		return newCompileError("code generation failed -- empty group operation")
	}

	if havePending {
		addr, err := g.emitInstruction(pendingOperation, program.Instruction{Immediate: constant, Argument: lastAddress}, nil)
		if err != nil {
			return err
		}

		lastAddress = addr
	}

	return g.mapToMemory(self, lastAddress)
}

func (g *codeGenerator) generateDataSection(terms []asg.Term) error {
	var constantCount, variableCount program.Address

	for _, term := range terms {
		switch term.(type) {
		case *asg.Constant:
			constantCount++
		case *asg.Input:
			variableCount++
		default:
			return newCompileError("code generation failed -- code present in the data section")
		}
	}

	const variableSection program.Address = 1

	constantSection := variableSection + variableCount
	codeSection := constantSection + constantCount

	for _, term := range terms {
		switch t := term.(type) {
		case *asg.Constant:
			address := constantSection + program.Address(len(g.constants.Values))
			g.constants.Values = append(g.constants.Values, t.Value)

			if _, ok := g.comments[address]; !ok {
				g.addComment(address, "constant")
			}

			if err := g.mapToMemory(t, address); err != nil {
				return err
			}

		case *asg.Input:
			address, exists := g.inputs[t.Name]
			if !exists {
				address = variableSection + program.Address(len(g.inputs))
				g.inputs[t.Name] = address
			}

			if _, ok := g.comments[address]; !ok {
				g.addComment(address, "input")
			}

			if err := g.mapToMemory(t, address); err != nil {
				return err
			}
		}
	}

	g.constants.MemoryOffset = constantSection
	g.instructions.MemoryOffset = codeSection

	return nil
}

func (g *codeGenerator) generateCodeSection(terms []asg.Term) error {
	for _, term := range terms {
		switch t := term.(type) {
		case *asg.Output:
			address, err := g.getAddress(t.Term)
			if err != nil {
				return err
			}

			g.outputs[t.Name] = address

			if err := g.mapToMemory(t, address); err != nil {
				return err
			}

		case *asg.UnaryFunction:
			argAddress, err := g.getAddress(t.Argument)
			if err != nil {
				return err
			}

			if _, err := g.emitInstruction(program.CALL, program.Instruction{Function: t.Function.Function, Argument: argAddress}, t); err != nil {
				return err
			}

		case *asg.Addition:
			err := g.emitGroupOperationSequence(t, t.ConstantTerm.Value, t.Identity(), t.PositiveTerms, t.NegativeTerms,
				program.ADD_IMM, program.ADD, program.SUB_IMM, program.SUB)
			if err != nil {
				return err
			}

		case *asg.Multiplication:
			err := g.emitGroupOperationSequence(t, t.ConstantTerm.Value, t.Identity(), t.PositiveTerms, t.NegativeTerms,
				program.MUL_IMM, program.MUL, program.DIV_IMM, program.DIV)
			if err != nil {
				return err
			}

		case *asg.Exponentiation:
			baseAddress, err := g.getAddress(t.Base)
			if err != nil {
				return err
			}

			exponentAddress, err := g.getAddress(t.Exponent)
			if err != nil {
				return err
			}

			if _, err := g.emitInstruction(program.POW, program.Instruction{SecondOperand: baseAddress, Argument: exponentAddress}, t); err != nil {
				return err
			}

		case *asg.Squaring:
			baseAddress, err := g.getAddress(t.Base)
			if err != nil {
				return err
			}

			if _, err := g.emitInstruction(program.MUL, program.Instruction{SecondOperand: baseAddress, Argument: baseAddress}, t); err != nil {
				return err
			}

		default:
			return newCompileError("code generation failed -- data present in the code section")
		}
	}

	return nil
}

type sinCosCandidate struct {
	sin, cos         int
	haveSin, haveCos bool
}

var (
	sinPointer = reflect.ValueOf(math.Sin).Pointer()
	cosPointer = reflect.ValueOf(math.Cos).Pointer()
)

// generateIntrinsics rewrites a CALL sin / CALL cos pair sharing the same
// argument address into one SINCOS (on the sin instruction) and a NOP (on
// the cos instruction).
func (g *codeGenerator) generateIntrinsics() {
	candidates := make(map[program.Address]*sinCosCandidate)

	for i := range g.instructions.Values {
		instr := &g.instructions.Values[i]
		if instr.Opcode != program.CALL || instr.Function == nil {
			continue
		}

		pointer := reflect.ValueOf(instr.Function).Pointer()

		switch pointer {
		case sinPointer:
			c := sinCosCandidateFor(candidates, instr.Argument)
			c.sin, c.haveSin = i, true
		case cosPointer:
			c := sinCosCandidateFor(candidates, instr.Argument)
			c.cos, c.haveCos = i, true
		}
	}

	for _, c := range candidates {
		if !c.haveSin || !c.haveCos {
			continue
		}

		g.instructions.Values[c.sin].Opcode = program.SINCOS
		g.instructions.Values[c.sin].Displacement = c.cos - c.sin
		g.instructions.Values[c.cos] = program.Instruction{Opcode: program.NOP}
	}

	g.lowerIsolatedSinCos()
}

// lowerIsolatedSinCos rewrites any CALL sin / CALL cos that survived SINCOS
// fusion (no matching argument on the other side) into the cheaper
// dedicated SIN/COS opcode, dropping the generic CALL dispatch. It runs on
// every program after SINCOS fusion; the scalar, vector and threaded
// interpreters all implement SIN and COS.
func (g *codeGenerator) lowerIsolatedSinCos() {
	for i := range g.instructions.Values {
		instr := &g.instructions.Values[i]
		if instr.Opcode != program.CALL || instr.Function == nil {
			continue
		}

		switch reflect.ValueOf(instr.Function).Pointer() {
		case sinPointer:
			instr.Opcode, instr.Function = program.SIN, nil
		case cosPointer:
			instr.Opcode, instr.Function = program.COS, nil
		}
	}
}

func sinCosCandidateFor(m map[program.Address]*sinCosCandidate, addr program.Address) *sinCosCandidate {
	c, ok := m[addr]
	if !ok {
		c = &sinCosCandidate{}
		m[addr] = c
	}

	return c
}
