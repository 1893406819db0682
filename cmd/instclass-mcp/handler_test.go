package main

import (
	"context"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/instclass/config"
)

const sumIR = "../../ir/testdata/sum.ll"

func callClassify(args map[string]interface{}) (string, error) {
	h := &handler{workers: 2}

	var request mcp.CallToolRequest
	request.Params.Name = "classify_ir"
	request.Params.Arguments = args

	res, err := h.handleClassifyIR(context.Background(), request)
	if err != nil {
		return "", err
	}

	Expect(res.Content).To(HaveLen(1))
	text, ok := res.Content[0].(mcp.TextContent)
	Expect(ok).To(BeTrue())
	return text.Text, nil
}

var _ = Describe("classify_ir", func() {
	It("should report every function in plain format", func() {
		out, err := callClassify(map[string]interface{}{"path": sumIR})
		Expect(err).NotTo(HaveOccurred())
		Expect(out).To(HavePrefix("== sum\nTerminator: 3\n"))
		Expect(out).To(ContainSubstring("== dispatch.v2\n"))
	})

	It("should filter by function", func() {
		out, err := callClassify(map[string]interface{}{
			"path":     sumIR,
			"function": "dispatch.v2",
			"format":   "pass",
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(out).NotTo(ContainSubstring("== sum"))
		Expect(out).To(ContainSubstring("  # terminator operations: 3\n"))
		Expect(strings.Count(out, "\n")).To(Equal(11))
	})

	It("should write JSON", func() {
		out, err := callClassify(map[string]interface{}{
			"path":   sumIR,
			"format": "json",
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(out).To(HavePrefix(`{"function":"sum","counts":{"Terminator":3,`))
	})

	It("should require a path", func() {
		_, err := callClassify(map[string]interface{}{})
		Expect(err).To(MatchError(ContainSubstring("path")))
	})

	It("should reject an unknown format", func() {
		_, err := callClassify(map[string]interface{}{
			"path":   sumIR,
			"format": "xml",
		})
		Expect(err).To(MatchError(ContainSubstring("unknown report format")))
	})

	It("should reject an unknown function", func() {
		_, err := callClassify(map[string]interface{}{
			"path":     sumIR,
			"function": "missing",
		})
		Expect(err).To(MatchError("function missing not found in " + sumIR))
	})

	It("should build a server from the defaults", func() {
		Expect(newServer(config.DefaultConfig())).NotTo(BeNil())
	})
})
