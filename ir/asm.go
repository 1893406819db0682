package ir

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// LoadModule reads a module from a file. Files ending in .yaml or .yml are
// decoded as YAML modules; everything else is parsed as textual assembly.
func LoadModule(path string) (*Module, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return LoadModuleFromYAML(path)
	default:
		return LoadAssemblyFile(path)
	}
}

// LoadAssemblyFile parses a textual assembly file.
func LoadAssemblyFile(path string) (*Module, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open assembly file: %w", err)
	}
	defer f.Close()

	m, err := ParseAssembly(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	if m.Name == "" {
		m.Name = filepath.Base(path)
	}

	return m, nil
}

// ParseAssembly reads the function bodies of a textual LLVM IR module.
//
// Only what classification needs is understood: function boundaries, block
// labels, and the result name and mnemonic of each instruction. Globals,
// declarations, attributes and metadata are skipped.
func ParseAssembly(r io.Reader) (*Module, error) {
	p := &asmParser{module: &Module{}}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for scanner.Scan() {
		p.lineNo++
		if err := p.parseLine(scanner.Text()); err != nil {
			return nil, fmt.Errorf("line %d: %w", p.lineNo, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read assembly: %w", err)
	}

	if p.fn != nil {
		return nil, fmt.Errorf("line %d: unterminated body of function @%s",
			p.fnLine, p.fn.Name)
	}

	return p.module, nil
}

type asmParser struct {
	module *Module
	lineNo int

	// Function being parsed.
	fn        *Function
	fnLine    int
	pending   bool // define seen, "{" not yet
	nextID    int
	depth     int // open "[" of a multi-line operand list
	lastOp    Opcode
	blockOpen bool
	instOpen  bool // an instruction precedes in the current block
}

func (p *asmParser) parseLine(raw string) error {
	if p.fn == nil && !p.pending {
		if name, ok := strings.CutPrefix(strings.TrimSpace(raw), "; ModuleID = "); ok {
			p.module.Name = strings.Trim(name, "'\"")
			return nil
		}
	}

	line := strings.TrimSpace(stripComment(raw))
	if line == "" {
		return nil
	}

	if p.fn == nil {
		return p.parseTopLevel(line)
	}

	if p.pending {
		if strings.HasSuffix(line, "{") {
			p.pending = false
		}
		return nil
	}

	return p.parseBody(line)
}

func (p *asmParser) parseTopLevel(line string) error {
	if !strings.HasPrefix(line, "define ") {
		return nil
	}

	name, err := functionName(line)
	if err != nil {
		return err
	}

	p.fn = &Function{Name: name}
	p.fnLine = p.lineNo
	p.pending = !strings.HasSuffix(line, "{")
	p.nextID = 0
	p.depth = 0
	p.lastOp = OpUnknown
	p.blockOpen = false
	p.instOpen = false

	return nil
}

func (p *asmParser) parseBody(line string) error {
	if p.depth > 0 {
		p.depth += strings.Count(line, "[") - strings.Count(line, "]")
		return nil
	}

	if line == "}" {
		p.module.Functions = append(p.module.Functions, p.fn)
		p.fn = nil
		return nil
	}

	if label, ok := blockLabel(line); ok {
		p.fn.Blocks = append(p.fn.Blocks, BasicBlock{Label: label})
		p.blockOpen = true
		p.instOpen = false
		return nil
	}

	if p.lastOp == OpLandingPad && isLandingPadClause(line) {
		return nil
	}

	if strings.HasPrefix(line, "[") {
		if !p.instOpen {
			return fmt.Errorf("operand list without an instruction %q", line)
		}
		p.depth = max(strings.Count(line, "[")-strings.Count(line, "]"), 0)
		return nil
	}

	name, body, err := splitResult(line)
	if err != nil {
		return err
	}

	mnemonic := instructionMnemonic(body)
	if mnemonic == "" {
		return fmt.Errorf("missing opcode in %q", line)
	}

	if !p.blockOpen {
		p.fn.Blocks = append(p.fn.Blocks, BasicBlock{Label: "entry"})
		p.blockOpen = true
	}

	block := &p.fn.Blocks[len(p.fn.Blocks)-1]
	inst := NewInstruction(p.nextID, mnemonic)
	inst.Name = name
	inst.Block = block.Label
	block.Instructions = append(block.Instructions, inst)

	p.nextID++
	p.lastOp = inst.Opcode
	p.instOpen = true
	p.depth = strings.Count(body, "[") - strings.Count(body, "]")
	if p.depth < 0 {
		p.depth = 0
	}

	return nil
}

func functionName(line string) (string, error) {
	at := strings.Index(line, "@")
	if at < 0 {
		return "", fmt.Errorf("function definition without a name: %q", line)
	}

	rest := line[at+1:]
	if strings.HasPrefix(rest, "\"") {
		end := strings.Index(rest[1:], "\"")
		if end < 0 {
			return "", fmt.Errorf("unterminated quoted function name: %q", line)
		}
		return rest[1 : end+1], nil
	}

	end := strings.IndexAny(rest, "( ")
	if end <= 0 {
		return "", fmt.Errorf("malformed function definition: %q", line)
	}

	return rest[:end], nil
}

// blockLabel recognizes "name:" and "\"quoted name\":" lines.
func blockLabel(line string) (string, bool) {
	if !strings.HasSuffix(line, ":") {
		return "", false
	}

	label := strings.TrimSuffix(line, ":")
	if strings.HasPrefix(label, "\"") && strings.HasSuffix(label, "\"") && len(label) >= 2 {
		return label[1 : len(label)-1], true
	}

	if label == "" || strings.ContainsAny(label, " \t,%@") {
		return "", false
	}

	return label, true
}

// splitResult separates "%name = rest" into its result name and body. A
// quoted name may itself contain "=".
func splitResult(line string) (name, body string, err error) {
	if !strings.HasPrefix(line, "%") {
		return "", line, nil
	}

	start := 1
	if strings.HasPrefix(line, "%\"") {
		end := strings.Index(line[2:], "\"")
		if end < 0 {
			return "", "", fmt.Errorf("unterminated result name in %q", line)
		}
		start = end + 3
	}

	eq := strings.Index(line[start:], "=")
	if eq < 0 {
		return "", "", fmt.Errorf("malformed instruction %q", line)
	}

	name = strings.TrimSpace(line[:start+eq])
	body = strings.TrimSpace(line[start+eq+1:])
	return name, body, nil
}

func isLandingPadClause(line string) bool {
	first, _, _ := strings.Cut(line, " ")
	switch first {
	case "catch", "filter", "cleanup":
		return true
	}
	return false
}

func instructionMnemonic(body string) string {
	for _, tok := range strings.Fields(body) {
		switch tok {
		case "tail", "musttail", "notail":
			continue
		}
		return strings.TrimSuffix(tok, ",")
	}
	return ""
}

// stripComment removes a trailing ";" comment that is not inside a quoted
// string.
func stripComment(line string) string {
	inQuote := false
	for i, r := range line {
		switch r {
		case '"':
			inQuote = !inQuote
		case ';':
			if !inQuote {
				return line[:i]
			}
		}
	}
	return line
}
