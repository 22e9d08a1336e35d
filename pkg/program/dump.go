package program

import "github.com/segmentio/encoding/json"

// instructionDump is Instruction's JSON projection: Function (a closure)
// has no meaningful encoding, so CALL instructions surface only whether a
// function is bound, not which one.
type instructionDump struct {
	Opcode        string  `json:"opcode"`
	Argument      Address `json:"argument"`
	SecondOperand Address `json:"secondOperand,omitempty"`
	Immediate     float64 `json:"immediate,omitempty"`
	HasFunction   bool    `json:"hasFunction,omitempty"`
	Displacement  int     `json:"displacement,omitempty"`
}

// dump is Program's JSON projection, printed by the compile CLI subcommand.
type dump struct {
	Inputs       Variables          `json:"inputs"`
	Outputs      Variables          `json:"outputs"`
	Constants    Constants          `json:"constants"`
	Instructions []instructionDump  `json:"instructions"`
	Comments     map[Address]string `json:"comments,omitempty"`
}

// Dump renders the program as an indented JSON document, resolving opcodes
// to names for readability.
func (p *Program) Dump() ([]byte, error) {
	instructions := make([]instructionDump, len(p.instructions.Values))
	for i, instr := range p.instructions.Values {
		instructions[i] = instructionDump{
			Opcode:        instr.Opcode.String(),
			Argument:      instr.Argument,
			SecondOperand: instr.SecondOperand,
			Immediate:     instr.Immediate,
			HasFunction:   instr.Function != nil,
			Displacement:  instr.Displacement,
		}
	}

	d := dump{
		Inputs:       p.inputs,
		Outputs:      p.outputs,
		Constants:    p.constants,
		Instructions: instructions,
		Comments:     p.comments,
	}

	return json.MarshalIndent(d, "", "  ")
}
