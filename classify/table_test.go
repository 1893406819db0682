package classify

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/instclass/ir"
)

var _ = Describe("Opcode table", func() {
	DescribeTable("should map mnemonics to categories",
		func(cat Category, mnemonics ...string) {
			for _, m := range mnemonics {
				op, ok := ir.ParseOpcode(m)
				Expect(ok).To(BeTrue(), m)
				Expect(CategoryOf(op)).To(Equal(cat), m)
			}
		},
		Entry("terminators", Terminator,
			"ret", "br", "switch", "indirectbr", "invoke", "callbr", "resume",
			"catchswitch", "catchret", "cleanupret", "unreachable"),
		Entry("unary arithmetic", UnaryArithmetic, "fneg"),
		Entry("integer arithmetic", BinaryArithmeticInteger,
			"add", "sub", "mul", "udiv", "sdiv", "urem", "srem"),
		Entry("float arithmetic", BinaryArithmeticFloat,
			"fadd", "fsub", "fmul", "frem", "fdiv"),
		Entry("bitwise", BitwiseBinary, "shl", "lshr", "ashr", "and", "or", "xor"),
		Entry("vector", Vector, "extractelement", "insertelement", "shufflevector"),
		Entry("aggregate", Aggregate, "extractvalue", "insertvalue"),
		Entry("memory and addressing", MemoryAndAddressing,
			"alloca", "load", "store", "fence", "cmpxchg", "atomicrmw", "getelementptr"),
		Entry("conversion", Conversion,
			"trunc", "zext", "sext", "fptrunc", "fpext", "fptoui", "fptosi",
			"uitofp", "sitofp", "ptrtoint", "inttoptr", "bitcast", "addrspacecast"),
		Entry("other", Other,
			"phi", "call", "icmp", "fcmp", "select", "landingpad", "va_arg",
			"freeze", "catchpad", "cleanuppad", "userop1", "userop2"),
	)

	It("should send unknown opcodes to Other", func() {
		Expect(CategoryOf(ir.OpUnknown)).To(Equal(Other))
		Expect(CategoryOf(ir.Opcode(ir.NumOpcodes))).To(Equal(Other))
		Expect(CategoryOf(ir.Opcode(1 << 30))).To(Equal(Other))
	})

	It("should cover every known opcode", func() {
		for _, op := range ir.Opcodes() {
			Expect(CategoryOf(op).Valid()).To(BeTrue(), op.String())
		}
	})

	It("should pass its own check", func() {
		Expect(CheckTable()).To(BeEmpty())
	})

	It("should flag an opcode listed twice", func() {
		var p [NumCategories][]ir.Opcode
		p[BinaryArithmeticInteger] = []ir.Opcode{ir.OpAdd, ir.OpSub}
		p[BitwiseBinary] = []ir.Opcode{ir.OpAdd}

		issues := checkPartition(p)
		Expect(issues).To(HaveLen(1))
		Expect(issues[0].Opcode).To(Equal(ir.OpAdd))
		Expect(issues[0].Categories).To(Equal([]Category{
			BinaryArithmeticInteger, BitwiseBinary,
		}))
	})

	It("should flag opcodes outside the enumeration", func() {
		var p [NumCategories][]ir.Opcode
		p[Vector] = []ir.Opcode{ir.OpUnknown, ir.Opcode(ir.NumOpcodes + 1)}

		issues := checkPartition(p)
		Expect(issues).To(HaveLen(2))
		Expect(issues[0].Message).To(ContainSubstring("not a known opcode"))
	})
})

var _ = Describe("Category", func() {
	It("should list the ten categories in report order", func() {
		labels := make([]string, 0, NumCategories)
		for _, c := range Categories() {
			labels = append(labels, c.String())
		}
		Expect(labels).To(Equal([]string{
			"Terminator", "UnaryArithmetic", "BinaryArithmeticInteger",
			"BinaryArithmeticFloat", "BitwiseBinary", "Vector", "Aggregate",
			"MemoryAndAddressing", "Conversion", "Other",
		}))
	})

	It("should parse labels", func() {
		c, err := ParseCategory("Vector")
		Expect(err).NotTo(HaveOccurred())
		Expect(c).To(Equal(Vector))

		_, err = ParseCategory("Comparison")
		Expect(err).To(HaveOccurred())
	})

	It("should name invalid categories", func() {
		Expect(Category(42).String()).To(Equal("Category(42)"))
	})
})
