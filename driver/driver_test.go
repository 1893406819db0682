package driver

import (
	"context"
	"errors"
	"fmt"

	gomock "github.com/golang/mock/gomock"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/sarchlab/akita/v4/sim"

	"github.com/sarchlab/instclass/classify"
	"github.com/sarchlab/instclass/ir"
)

func makeFunction(name string, mnemonics ...string) *ir.Function {
	block := ir.BasicBlock{Label: "entry"}
	for i, m := range mnemonics {
		inst := ir.NewInstruction(i, m)
		inst.Block = block.Label
		block.Instructions = append(block.Instructions, inst)
	}
	return &ir.Function{Name: name, Blocks: []ir.BasicBlock{block}}
}

func makeFunctions(n int) []*ir.Function {
	fns := make([]*ir.Function, n)
	for i := range fns {
		mnemonics := make([]string, i+1)
		for j := range mnemonics {
			mnemonics[j] = "add"
		}
		fns[i] = makeFunction(fmt.Sprintf("f%d", i), mnemonics...)
	}
	return fns
}

func functionNames(results []*classify.Result) []string {
	names := make([]string, len(results))
	for i, r := range results {
		names[i] = r.Function()
	}
	return names
}

var _ = Describe("Driver", func() {
	var (
		engine sim.Engine
		sink   *MemorySink
	)

	BeforeEach(func() {
		engine = sim.NewSerialEngine()
		sink = NewMemorySink()
	})

	It("should classify every queued function in order", func() {
		d := NewBuilder().
			WithEngine(engine).
			WithFreq(1 * sim.GHz).
			WithSink(sink).
			Build("Driver")

		d.Enqueue(makeFunctions(5)...)
		Expect(d.Pending()).To(Equal(5))

		Expect(d.Run()).To(Succeed())
		Expect(d.Pending()).To(Equal(0))

		results := sink.Results()
		Expect(functionNames(results)).To(Equal([]string{"f0", "f1", "f2", "f3", "f4"}))
		for i, r := range results {
			Expect(r.Count(classify.BinaryArithmeticInteger)).To(Equal(i + 1))
		}
	})

	It("should handle batches larger than the queue", func() {
		d := NewBuilder().
			WithEngine(engine).
			WithBatchSize(4).
			WithSink(sink).
			Build("Driver")

		d.Enqueue(makeFunctions(7)...)
		Expect(d.Run()).To(Succeed())
		Expect(sink.Results()).To(HaveLen(7))
	})

	It("should do nothing without queued functions", func() {
		d := NewBuilder().WithEngine(engine).WithSink(sink).Build("Driver")
		Expect(d.Run()).To(Succeed())
		Expect(sink.Results()).To(BeEmpty())
	})

	It("should run again after more functions are queued", func() {
		d := NewBuilder().WithEngine(engine).WithSink(sink).Build("Driver")

		d.Enqueue(makeFunction("a", "ret"))
		Expect(d.Run()).To(Succeed())

		d.Enqueue(makeFunction("b", "ret"))
		Expect(d.Run()).To(Succeed())

		Expect(functionNames(sink.Results())).To(Equal([]string{"a", "b"}))
	})

	It("should panic on a bad batch size", func() {
		Expect(func() { NewBuilder().WithBatchSize(0) }).To(Panic())
	})

	It("should panic without a sink", func() {
		Expect(func() { NewBuilder().Build("Driver") }).To(Panic())
	})

	Context("With a mocked sink", func() {
		var (
			mockCtrl *gomock.Controller
			mockSink *MockSink
		)

		BeforeEach(func() {
			mockCtrl = gomock.NewController(GinkgoT())
			mockSink = NewMockSink(mockCtrl)
		})

		AfterEach(func() {
			mockCtrl.Finish()
		})

		It("should deliver one result per function", func() {
			d := NewBuilder().WithEngine(engine).WithSink(mockSink).Build("Driver")

			mockSink.EXPECT().
				Deliver(gomock.Any()).
				Do(func(res *classify.Result) {
					Expect(res.Function()).To(Equal("only"))
					Expect(res.Count(classify.Terminator)).To(Equal(1))
				}).
				Return(nil)

			d.Enqueue(makeFunction("only", "ret"))
			Expect(d.Run()).To(Succeed())
		})

		It("should stop at the first sink error", func() {
			d := NewBuilder().WithEngine(engine).WithSink(mockSink).Build("Driver")

			gomock.InOrder(
				mockSink.EXPECT().Deliver(gomock.Any()).Return(nil),
				mockSink.EXPECT().Deliver(gomock.Any()).Return(errors.New("disk full")),
			)

			d.Enqueue(makeFunctions(4)...)
			err := d.Run()
			Expect(err).To(MatchError(ContainSubstring("function f1")))
			Expect(errors.Unwrap(err)).To(MatchError("disk full"))
			Expect(d.Pending()).To(Equal(3))
		})
	})
})

var _ = Describe("ClassifyParallel", func() {
	It("should match the serial driver", func() {
		fns := makeFunctions(20)

		serial := NewMemorySink()
		d := NewBuilder().WithSink(serial).Build("Driver")
		d.Enqueue(fns...)
		Expect(d.Run()).To(Succeed())

		parallel := NewMemorySink()
		Expect(ClassifyParallel(context.Background(), fns, 4, parallel)).To(Succeed())

		Expect(functionNames(parallel.Results())).To(Equal(functionNames(serial.Results())))
		for i, r := range parallel.Results() {
			Expect(r.Counts()).To(Equal(serial.Results()[i].Counts()))
		}
	})

	It("should accept an unlimited worker count", func() {
		sink := NewMemorySink()
		Expect(ClassifyParallel(context.Background(), makeFunctions(3), 0, sink)).To(Succeed())
		Expect(sink.Results()).To(HaveLen(3))
	})

	It("should stop on a cancelled context", func() {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		sink := NewMemorySink()
		err := ClassifyParallel(ctx, makeFunctions(3), 2, sink)
		Expect(err).To(MatchError(context.Canceled))
		Expect(sink.Results()).To(BeEmpty())
	})

	It("should surface sink errors", func() {
		sink := SinkFunc(func(res *classify.Result) error {
			if res.Function() == "f1" {
				return errors.New("rejected")
			}
			return nil
		})

		err := ClassifyParallel(context.Background(), makeFunctions(3), 2, sink)
		Expect(err).To(MatchError(ContainSubstring("function f1: rejected")))
	})
})
