package classify

import (
	"github.com/sarchlab/instclass/ir"
)

// Classifier assigns instructions to categories.
//
// A Classifier holds no state between calls; every call returns a fresh
// Result. It is safe to use one Classifier from several goroutines.
type Classifier struct {
	categoryOf func(ir.Opcode) Category
}

// NewClassifier creates a classifier backed by the opcode table.
func NewClassifier() *Classifier {
	return &Classifier{categoryOf: CategoryOf}
}

var defaultClassifier = NewClassifier()

// Classify classifies a sequence of instructions with the default
// classifier.
func Classify(insts []*ir.Instruction) *Result {
	return defaultClassifier.Classify(insts)
}

// Classify classifies a sequence of instructions. The result keeps the
// instructions of each category in input order.
func (c *Classifier) Classify(insts []*ir.Instruction) *Result {
	return c.ClassifyIter(ir.NewSliceIterator(insts))
}

// ClassifyFunction classifies the body of a function.
func (c *Classifier) ClassifyFunction(fn *ir.Function) *Result {
	res := c.ClassifyIter(fn.Iter())
	res.function = fn.Name
	return res
}

// ClassifyIter drains an iterator and classifies every instruction it
// yields.
func (c *Classifier) ClassifyIter(it ir.Iterator) *Result {
	res := &Result{}

	for it.Next() {
		inst := it.Instruction()
		cat := c.categoryOf(inst.Opcode)
		res.ops[cat] = append(res.ops[cat], inst)
	}

	return res
}
