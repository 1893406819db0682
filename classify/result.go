package classify

import (
	"github.com/sarchlab/instclass/ir"
)

// Result holds the instructions of one classification run, grouped by
// category. A Result is not modified after the classifier returns it.
type Result struct {
	function string
	ops      [NumCategories][]*ir.Instruction
}

// Function returns the name of the classified function. It is empty when
// the result was built from a bare instruction sequence.
func (r *Result) Function() string {
	return r.function
}

// Ops returns the instructions of a category in traversal order. The
// returned slice is a copy.
func (r *Result) Ops(c Category) []*ir.Instruction {
	if !c.Valid() {
		return nil
	}

	ops := make([]*ir.Instruction, len(r.ops[c]))
	copy(ops, r.ops[c])
	return ops
}

// Count returns the number of instructions in a category.
func (r *Result) Count(c Category) int {
	if !c.Valid() {
		return 0
	}
	return len(r.ops[c])
}

// Counts returns the per-category counts in report order.
func (r *Result) Counts() [NumCategories]int {
	var counts [NumCategories]int
	for c := range r.ops {
		counts[c] = len(r.ops[c])
	}
	return counts
}

// Total returns the number of classified instructions.
func (r *Result) Total() int {
	n := 0
	for c := range r.ops {
		n += len(r.ops[c])
	}
	return n
}

// Category returns the category holding inst. The second return value is
// false if inst was not part of the classified input.
func (r *Result) Category(inst *ir.Instruction) (Category, bool) {
	for c := range r.ops {
		for _, o := range r.ops[c] {
			if o == inst {
				return Category(c), true
			}
		}
	}
	return Other, false
}
