package ir

// Iterator walks instructions forward, once.
//
//	for it.Next() {
//	    inst := it.Instruction()
//	}
type Iterator interface {
	// Next advances to the next instruction and reports whether there is one.
	Next() bool

	// Instruction returns the current instruction. It is only valid after a
	// call to Next that returned true.
	Instruction() *Instruction
}

type sliceIterator struct {
	insts []*Instruction
	pos   int
}

// NewSliceIterator returns an iterator over a slice of instructions.
func NewSliceIterator(insts []*Instruction) Iterator {
	return &sliceIterator{insts: insts, pos: -1}
}

func (it *sliceIterator) Next() bool {
	if it.pos+1 >= len(it.insts) {
		it.pos = len(it.insts)
		return false
	}
	it.pos++
	return true
}

func (it *sliceIterator) Instruction() *Instruction {
	return it.insts[it.pos]
}

type blockIterator struct {
	blocks []BasicBlock
	block  int
	inst   int
}

func (it *blockIterator) Next() bool {
	for it.block < len(it.blocks) {
		if it.inst+1 < len(it.blocks[it.block].Instructions) {
			it.inst++
			return true
		}
		it.block++
		it.inst = -1
	}
	return false
}

func (it *blockIterator) Instruction() *Instruction {
	return it.blocks[it.block].Instructions[it.inst]
}
