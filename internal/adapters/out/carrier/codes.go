package carrier

import (
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed carriers.yaml
var carriersYAML []byte

type codeFile struct {
	Default  string `yaml:"default"`
	Carriers []struct {
		Code  string   `yaml:"code"`
		Names []string `yaml:"names"`
	} `yaml:"carriers"`
}

// CodeTable maps carrier names to SweetTracker carrier codes.
type CodeTable struct {
	byName   map[string]string
	fallback string
}

// DefaultCodeTable parses the embedded carriers.yaml.
func DefaultCodeTable() (CodeTable, error) {
	return ParseCodeTable(carriersYAML)
}

func ParseCodeTable(data []byte) (CodeTable, error) {
	var f codeFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return CodeTable{}, fmt.Errorf("parse carrier codes: %w", err)
	}
	if f.Default == "" {
		return CodeTable{}, fmt.Errorf("parse carrier codes: default code is empty")
	}

	t := CodeTable{byName: make(map[string]string), fallback: f.Default}
	for _, c := range f.Carriers {
		for _, name := range c.Names {
			t.byName[strings.TrimSpace(name)] = c.Code
		}
	}
	return t, nil
}

// Code returns the code for name, or the default for unknown carriers.
func (t CodeTable) Code(name string) string {
	if code, ok := t.byName[strings.TrimSpace(name)]; ok {
		return code
	}
	return t.fallback
}
