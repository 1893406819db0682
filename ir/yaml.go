package ir

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type yamlModule struct {
	Module    string         `yaml:"module"`
	Functions []yamlFunction `yaml:"functions"`
}

type yamlFunction struct {
	Name   string      `yaml:"name"`
	Blocks []yamlBlock `yaml:"blocks"`
}

type yamlBlock struct {
	Label        string            `yaml:"label"`
	Instructions []yamlInstruction `yaml:"instructions"`
}

type yamlInstruction struct {
	Name   string `yaml:"name"`
	Opcode string `yaml:"opcode"`
}

// LoadModuleFromYAML reads a module from a YAML file.
func LoadModuleFromYAML(path string) (*Module, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read module file: %w", err)
	}

	m, err := ParseModuleYAML(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return m, nil
}

// ParseModuleYAML decodes a module from YAML.
//
//	module: demo
//	functions:
//	  - name: f
//	    blocks:
//	      - label: entry
//	        instructions:
//	          - {name: "%1", opcode: add}
//	          - opcode: ret
func ParseModuleYAML(data []byte) (*Module, error) {
	var doc yamlModule
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse module YAML: %w", err)
	}

	m := &Module{Name: doc.Module}
	for fi, yf := range doc.Functions {
		if yf.Name == "" {
			return nil, fmt.Errorf("function #%d has no name", fi)
		}

		fn := &Function{Name: yf.Name}
		id := 0
		for bi, yb := range yf.Blocks {
			label := yb.Label
			if label == "" {
				label = fmt.Sprintf("bb%d", bi)
			}

			block := BasicBlock{Label: label}
			for ii, yi := range yb.Instructions {
				if yi.Opcode == "" {
					return nil, fmt.Errorf(
						"function %s, block %s: instruction #%d has no opcode",
						yf.Name, label, ii)
				}

				inst := NewInstruction(id, yi.Opcode)
				inst.Name = yi.Name
				inst.Block = label
				block.Instructions = append(block.Instructions, inst)
				id++
			}
			fn.Blocks = append(fn.Blocks, block)
		}
		m.Functions = append(m.Functions, fn)
	}

	return m, nil
}
