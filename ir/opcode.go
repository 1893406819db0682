// Package ir models the host intermediate representation that instructions
// are classified over.
//
// The model is deliberately thin: a Module holds Functions, a Function holds
// BasicBlocks, and a BasicBlock holds Instructions in program order. Only the
// opcode of an instruction is interpreted; everything else is carried for
// identification and reporting.
//
// # Opcodes
//
// Opcode enumerates the LLVM instruction set. The enumeration is open-ended:
// OpUnknown stands for any mnemonic that is not listed here, and numeric
// values above the last defined opcode are legal and also unknown.
package ir

import "strings"

// Opcode represents the operation code of an instruction.
type Opcode uint32

// Opcodes of the LLVM instruction set, grouped the way the language reference
// groups them.
const (
	OpUnknown Opcode = iota

	// Terminators
	OpRet
	OpBr
	OpSwitch
	OpIndirectBr
	OpInvoke
	OpResume
	OpUnreachable
	OpCleanupRet
	OpCatchRet
	OpCatchSwitch
	OpCallBr

	// Unary
	OpFNeg

	// Binary
	OpAdd
	OpFAdd
	OpSub
	OpFSub
	OpMul
	OpFMul
	OpUDiv
	OpSDiv
	OpFDiv
	OpURem
	OpSRem
	OpFRem

	// Bitwise binary
	OpShl
	OpLShr
	OpAShr
	OpAnd
	OpOr
	OpXor

	// Memory access and addressing
	OpAlloca
	OpLoad
	OpStore
	OpGetElementPtr
	OpFence
	OpAtomicCmpXchg
	OpAtomicRMW

	// Casts
	OpTrunc
	OpZExt
	OpSExt
	OpFPToUI
	OpFPToSI
	OpUIToFP
	OpSIToFP
	OpFPTrunc
	OpFPExt
	OpPtrToInt
	OpIntToPtr
	OpBitCast
	OpAddrSpaceCast

	// Funclet pads
	OpCleanupPad
	OpCatchPad

	// Other
	OpICmp
	OpFCmp
	OpPHI
	OpCall
	OpSelect
	OpUserOp1
	OpUserOp2
	OpVAArg
	OpExtractElement
	OpInsertElement
	OpShuffleVector
	OpExtractValue
	OpInsertValue
	OpLandingPad
	OpFreeze

	numOpcodes
)

// NumOpcodes is the number of opcodes the enumeration defines, OpUnknown
// included.
const NumOpcodes = int(numOpcodes)

var opcodeNames = [numOpcodes]string{
	OpUnknown: "<unknown>",

	OpRet:         "ret",
	OpBr:          "br",
	OpSwitch:      "switch",
	OpIndirectBr:  "indirectbr",
	OpInvoke:      "invoke",
	OpResume:      "resume",
	OpUnreachable: "unreachable",
	OpCleanupRet:  "cleanupret",
	OpCatchRet:    "catchret",
	OpCatchSwitch: "catchswitch",
	OpCallBr:      "callbr",

	OpFNeg: "fneg",

	OpAdd:  "add",
	OpFAdd: "fadd",
	OpSub:  "sub",
	OpFSub: "fsub",
	OpMul:  "mul",
	OpFMul: "fmul",
	OpUDiv: "udiv",
	OpSDiv: "sdiv",
	OpFDiv: "fdiv",
	OpURem: "urem",
	OpSRem: "srem",
	OpFRem: "frem",

	OpShl:  "shl",
	OpLShr: "lshr",
	OpAShr: "ashr",
	OpAnd:  "and",
	OpOr:   "or",
	OpXor:  "xor",

	OpAlloca:        "alloca",
	OpLoad:          "load",
	OpStore:         "store",
	OpGetElementPtr: "getelementptr",
	OpFence:         "fence",
	OpAtomicCmpXchg: "cmpxchg",
	OpAtomicRMW:     "atomicrmw",

	OpTrunc:         "trunc",
	OpZExt:          "zext",
	OpSExt:          "sext",
	OpFPToUI:        "fptoui",
	OpFPToSI:        "fptosi",
	OpUIToFP:        "uitofp",
	OpSIToFP:        "sitofp",
	OpFPTrunc:       "fptrunc",
	OpFPExt:         "fpext",
	OpPtrToInt:      "ptrtoint",
	OpIntToPtr:      "inttoptr",
	OpBitCast:       "bitcast",
	OpAddrSpaceCast: "addrspacecast",

	OpCleanupPad: "cleanuppad",
	OpCatchPad:   "catchpad",

	OpICmp:           "icmp",
	OpFCmp:           "fcmp",
	OpPHI:            "phi",
	OpCall:           "call",
	OpSelect:         "select",
	OpUserOp1:        "userop1",
	OpUserOp2:        "userop2",
	OpVAArg:          "va_arg",
	OpExtractElement: "extractelement",
	OpInsertElement:  "insertelement",
	OpShuffleVector:  "shufflevector",
	OpExtractValue:   "extractvalue",
	OpInsertValue:    "insertvalue",
	OpLandingPad:     "landingpad",
	OpFreeze:         "freeze",
}

var opcodesByName = func() map[string]Opcode {
	m := make(map[string]Opcode, numOpcodes)
	for op := OpUnknown + 1; op < numOpcodes; op++ {
		m[opcodeNames[op]] = op
	}
	return m
}()

// String returns the assembly mnemonic of the opcode.
func (op Opcode) String() string {
	if op.Known() {
		return opcodeNames[op]
	}
	return opcodeNames[OpUnknown]
}

// Known reports whether the opcode is one the enumeration defines.
func (op Opcode) Known() bool {
	return op > OpUnknown && op < numOpcodes
}

// ParseOpcode looks up an opcode by its assembly mnemonic. Lookup is case
// insensitive. Unlisted mnemonics yield OpUnknown and false.
func ParseOpcode(mnemonic string) (Opcode, bool) {
	op, ok := opcodesByName[strings.ToLower(strings.TrimSpace(mnemonic))]
	if !ok {
		return OpUnknown, false
	}
	return op, true
}

// Opcodes returns every known opcode in enumeration order.
func Opcodes() []Opcode {
	ops := make([]Opcode, 0, numOpcodes-1)
	for op := OpUnknown + 1; op < numOpcodes; op++ {
		ops = append(ops, op)
	}
	return ops
}
