package ir

import "fmt"

// Instruction represents one operation of a function body.
type Instruction struct {
	ID       int    // Position in the function's traversal order
	Opcode   Opcode // The operation to perform
	Mnemonic string // Opcode as written in the source, kept for unknown opcodes
	Name     string // SSA result name (e.g., "%3"), empty if none
	Block    string // Label of the enclosing block
}

// NewInstruction creates an instruction from its mnemonic. Unknown mnemonics
// produce an OpUnknown instruction that still remembers the mnemonic.
func NewInstruction(id int, mnemonic string) *Instruction {
	op, _ := ParseOpcode(mnemonic)
	return &Instruction{
		ID:       id,
		Opcode:   op,
		Mnemonic: mnemonic,
	}
}

// OpName returns the mnemonic if one was recorded and the opcode name
// otherwise.
func (i *Instruction) OpName() string {
	if i.Mnemonic != "" {
		return i.Mnemonic
	}
	return i.Opcode.String()
}

func (i *Instruction) String() string {
	if i.Name != "" {
		return fmt.Sprintf("#%d %s = %s", i.ID, i.Name, i.OpName())
	}
	return fmt.Sprintf("#%d %s", i.ID, i.OpName())
}

// BasicBlock is a labeled straight-line run of instructions.
type BasicBlock struct {
	Label        string
	Instructions []*Instruction
}

// Function is a named sequence of basic blocks.
type Function struct {
	Name   string
	Blocks []BasicBlock
}

// Instructions returns all instructions of the function in block order.
func (f *Function) Instructions() []*Instruction {
	insts := make([]*Instruction, 0, f.Len())
	for _, b := range f.Blocks {
		insts = append(insts, b.Instructions...)
	}
	return insts
}

// Len returns the number of instructions in the function.
func (f *Function) Len() int {
	n := 0
	for _, b := range f.Blocks {
		n += len(b.Instructions)
	}
	return n
}

// Iter returns a forward iterator over the function's instructions.
func (f *Function) Iter() Iterator {
	return &blockIterator{blocks: f.Blocks, inst: -1}
}

// Module is a set of functions loaded from one source.
type Module struct {
	Name      string
	Functions []*Function
}

// Function looks up a function by name.
func (m *Module) Function(name string) (*Function, bool) {
	for _, f := range m.Functions {
		if f.Name == name {
			return f, true
		}
	}
	return nil, false
}

// Filter returns the functions whose names are listed. An empty list selects
// every function. Module order is preserved.
func (m *Module) Filter(names []string) []*Function {
	if len(names) == 0 {
		return m.Functions
	}

	wanted := make(map[string]bool, len(names))
	for _, n := range names {
		wanted[n] = true
	}

	var fns []*Function
	for _, f := range m.Functions {
		if wanted[f.Name] {
			fns = append(fns, f)
		}
	}
	return fns
}
