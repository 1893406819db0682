// Package classify partitions the instructions of a function into ten fixed
// semantic categories and reports how many instructions fall into each.
//
// The categories follow the instruction reference of the LLVM language
// manual and are meant as a stable operator taxonomy for Halstead-style
// complexity metrics. Every opcode maps to exactly one category; opcodes the
// table does not list, including opcodes unknown to the ir package, map to
// Other. Classification therefore never fails.
//
// # Usage
//
//	m, err := ir.LoadModule("prog.ll")
//	if err != nil {
//	    return err
//	}
//	for _, fn := range m.Functions {
//	    res := classify.NewClassifier().ClassifyFunction(fn)
//	    res.WriteReport(os.Stdout)
//	}
//
// A Result belongs to one function. Aggregation over several functions is
// left to the caller (see the report package).
package classify

import "fmt"

// Category is one of the ten instruction categories.
type Category uint8

// Categories in report order.
const (
	Terminator Category = iota
	UnaryArithmetic
	BinaryArithmeticInteger
	BinaryArithmeticFloat
	BitwiseBinary
	Vector
	Aggregate
	MemoryAndAddressing
	Conversion
	Other
)

// NumCategories is the number of categories.
const NumCategories = int(Other) + 1

var categoryLabels = [NumCategories]string{
	Terminator:              "Terminator",
	UnaryArithmetic:         "UnaryArithmetic",
	BinaryArithmeticInteger: "BinaryArithmeticInteger",
	BinaryArithmeticFloat:   "BinaryArithmeticFloat",
	BitwiseBinary:           "BitwiseBinary",
	Vector:                  "Vector",
	Aggregate:               "Aggregate",
	MemoryAndAddressing:     "MemoryAndAddressing",
	Conversion:              "Conversion",
	Other:                   "Other",
}

// Descriptions used by the pass-style report.
var categoryDescriptions = [NumCategories]string{
	Terminator:              "terminator",
	UnaryArithmetic:         "unary",
	BinaryArithmeticInteger: "binary",
	BinaryArithmeticFloat:   "float binary",
	BitwiseBinary:           "bitwise binary",
	Vector:                  "vector",
	Aggregate:               "aggregate",
	MemoryAndAddressing:     "memory access and addressing",
	Conversion:              "conversion",
	Other:                   "other",
}

func (c Category) String() string {
	if c.Valid() {
		return categoryLabels[c]
	}
	return fmt.Sprintf("Category(%d)", uint8(c))
}

// Valid reports whether c is one of the ten categories.
func (c Category) Valid() bool {
	return int(c) < NumCategories
}

// Categories returns all categories in report order.
func Categories() []Category {
	cs := make([]Category, NumCategories)
	for i := range cs {
		cs[i] = Category(i)
	}
	return cs
}

// ParseCategory looks up a category by its label.
func ParseCategory(label string) (Category, error) {
	for i, l := range categoryLabels {
		if l == label {
			return Category(i), nil
		}
	}
	return Other, fmt.Errorf("unknown category %q", label)
}
