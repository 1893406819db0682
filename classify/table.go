package classify

import (
	"fmt"

	"github.com/sarchlab/instclass/ir"
)

// partition lists the opcodes of every category except Other. It is the only
// place the mapping is written down; lookup is derived from it.
var partition = [NumCategories][]ir.Opcode{
	Terminator: {
		ir.OpRet, ir.OpBr, ir.OpSwitch, ir.OpIndirectBr, ir.OpInvoke,
		ir.OpCallBr, ir.OpResume, ir.OpCatchSwitch, ir.OpCatchRet,
		ir.OpCleanupRet, ir.OpUnreachable,
	},
	UnaryArithmetic: {
		ir.OpFNeg,
	},
	BinaryArithmeticInteger: {
		ir.OpAdd, ir.OpSub, ir.OpMul, ir.OpUDiv, ir.OpSDiv, ir.OpURem,
		ir.OpSRem,
	},
	BinaryArithmeticFloat: {
		ir.OpFAdd, ir.OpFSub, ir.OpFMul, ir.OpFRem, ir.OpFDiv,
	},
	BitwiseBinary: {
		ir.OpShl, ir.OpLShr, ir.OpAShr, ir.OpAnd, ir.OpOr, ir.OpXor,
	},
	Vector: {
		ir.OpExtractElement, ir.OpInsertElement, ir.OpShuffleVector,
	},
	Aggregate: {
		ir.OpExtractValue, ir.OpInsertValue,
	},
	MemoryAndAddressing: {
		ir.OpAlloca, ir.OpLoad, ir.OpStore, ir.OpFence,
		ir.OpAtomicCmpXchg, ir.OpAtomicRMW, ir.OpGetElementPtr,
	},
	Conversion: {
		ir.OpTrunc, ir.OpZExt, ir.OpSExt, ir.OpFPTrunc, ir.OpFPExt,
		ir.OpFPToUI, ir.OpFPToSI, ir.OpUIToFP, ir.OpSIToFP,
		ir.OpPtrToInt, ir.OpIntToPtr, ir.OpBitCast, ir.OpAddrSpaceCast,
	},
	Other: nil,
}

var lookup = func() (ret [ir.NumOpcodes]Category) {
	for i := range ret {
		ret[i] = Other
	}
	for c, ops := range partition {
		for _, op := range ops {
			if op.Known() {
				ret[op] = Category(c)
			}
		}
	}
	return ret
}()

// CategoryOf returns the category of an opcode. Opcodes not listed in the
// table, and opcodes outside the enumeration, belong to Other.
func CategoryOf(op ir.Opcode) Category {
	if int(op) >= len(lookup) {
		return Other
	}
	return lookup[op]
}

// TableIssue describes a defect in the opcode table.
type TableIssue struct {
	Opcode     ir.Opcode
	Categories []Category // Categories that list the opcode
	Message    string
}

// CheckTable validates the opcode table: every listed opcode must be known to
// the ir package and belong to a single category. It returns an empty list
// when the table is sound.
func CheckTable() []TableIssue {
	return checkPartition(partition)
}

func checkPartition(p [NumCategories][]ir.Opcode) []TableIssue {
	var issues []TableIssue

	owners := make(map[ir.Opcode][]Category)
	var order []ir.Opcode
	for c, ops := range p {
		for _, op := range ops {
			if !op.Known() {
				issues = append(issues, TableIssue{
					Opcode:     op,
					Categories: []Category{Category(c)},
					Message: fmt.Sprintf("%s lists opcode %d, which is not a known opcode",
						Category(c), uint32(op)),
				})
				continue
			}
			if _, seen := owners[op]; !seen {
				order = append(order, op)
			}
			owners[op] = append(owners[op], Category(c))
		}
	}

	for _, op := range order {
		cs := owners[op]
		if len(cs) > 1 {
			issues = append(issues, TableIssue{
				Opcode:     op,
				Categories: cs,
				Message:    fmt.Sprintf("opcode %s is listed in %d categories: %v", op, len(cs), cs),
			})
		}
	}

	return issues
}
