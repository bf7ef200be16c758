package assembly

import (
	"fmt"

	"go.yaml.in/yaml/v3"

	"github.com/kbukum/breedkit/pipeline"
)

// Description is the YAML view of one source in an assembled tree.
type Description struct {
	Type    string         `yaml:"type"`
	Base    string         `yaml:"base,omitempty"`
	Prob    *float64       `yaml:"prob,omitempty"`
	Typical int            `yaml:"typical,omitempty"`
	Same    string         `yaml:"same,omitempty"`
	Sources []*Description `yaml:"sources,omitempty"`
	Stub    *Description   `yaml:"stub,omitempty"`
}

// stubSource is implemented by sources that expose their stub subtree.
type stubSource interface {
	StubSource() pipeline.Source
}

// Describe renders the tree rooted at src as YAML. A source reachable
// through more than one slot is written in full once and referred to by
// base afterwards; unfilled slots are written as type stub.
func Describe(src pipeline.Source) ([]byte, error) {
	d := describe(src, make(map[pipeline.Source]bool))
	out, err := yaml.Marshal(d)
	if err != nil {
		return nil, fmt.Errorf("assembly: describing %s: %w", src.Base(), err)
	}
	return out, nil
}

func describe(src pipeline.Source, seen map[pipeline.Source]bool) *Description {
	if src == nil {
		return &Description{Type: StubSlot}
	}
	d := &Description{Type: src.Name(), Base: string(src.Base())}
	if seen[src] {
		d.Same = d.Base
		d.Base = ""
		return d
	}
	seen[src] = true

	if p := src.Probability(); p != pipeline.NoProbability {
		d.Prob = &p
	}
	if t := src.TypicalIndsProduced(); t > 1 {
		d.Typical = t
	}
	if c, ok := src.(pipeline.Composite); ok {
		for _, child := range c.Sources() {
			d.Sources = append(d.Sources, describe(child, seen))
		}
	}
	if s, ok := src.(stubSource); ok && s.StubSource() != nil {
		d.Stub = describe(s.StubSource(), seen)
	}
	return d
}
