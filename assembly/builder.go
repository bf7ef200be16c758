package assembly

import (
	"github.com/kbukum/breedkit/config"
	"github.com/kbukum/breedkit/errors"
	"github.com/kbukum/breedkit/pipeline"
	"github.com/kbukum/breedkit/validation"
)

const (
	// StubSlot as a child type leaves the slot for FillStubs.
	StubSlot = "stub"
	// SameSlot as a child type reuses the previous sibling.
	SameSlot = "same"
)

// stubHolder is implemented by sources that own a stub subtree.
type stubHolder interface {
	SetStub(stub pipeline.Source)
}

type numSourcesParams struct {
	NumSources int `param:"num-sources" validate:"gte=1"`
}

// Builder turns parameter subtrees into set-up sources.
type Builder struct {
	registry *Registry
	params   *config.Parameters
}

// NewBuilder creates a builder over params. A nil registry means DefaultRegistry.
func NewBuilder(registry *Registry, params *config.Parameters) *Builder {
	if registry == nil {
		registry = DefaultRegistry()
	}
	return &Builder{registry: registry, params: params}
}

// Build constructs and sets up the tree rooted at base. Children are built
// and set up before their parent. Stub slots stay nil; call
// pipeline.Assemble before producing.
func (b *Builder) Build(base config.Path) (pipeline.Source, error) {
	name, ok := b.params.String(base.Push("type"), "")
	if !ok {
		return nil, errors.MissingParameter(string(base.Push("type")), "")
	}
	if name == StubSlot || name == SameSlot {
		return nil, errors.InvalidParameter(string(base.Push("type")), name+" is only valid for a child source")
	}
	return b.build(base, name)
}

func (b *Builder) build(base config.Path, name string) (pipeline.Source, error) {
	factory, ok := b.registry.Get(name)
	if !ok {
		return nil, errors.UnknownSource(string(base.Push("type")), name)
	}
	src := factory()

	if c, ok := src.(pipeline.Composite); ok {
		children, err := b.children(src, base)
		if err != nil {
			return nil, err
		}
		c.SetSources(children)
	}

	if h, ok := src.(stubHolder); ok {
		def := src.DefaultBase().Push("stub")
		if at := b.params.Which(base.Push("stub").Push("type"), def.Push("type")); at != "" {
			stub, err := b.Build(at.Pop())
			if err != nil {
				return nil, err
			}
			h.SetStub(stub)
		}
	}

	if err := src.Setup(b.params, base); err != nil {
		return nil, err
	}
	return src, nil
}

func (b *Builder) children(src pipeline.Source, base config.Path) ([]pipeline.Source, error) {
	def := src.DefaultBase()
	n := src.NumSources()
	if n == pipeline.DynamicSources {
		count, err := b.params.RequireInt(base.Push("num-sources"), def.Push("num-sources"))
		if err != nil {
			return nil, err
		}
		p := numSourcesParams{NumSources: count}
		if err := validation.Params(base, &p); err != nil {
			return nil, err
		}
		n = p.NumSources
	}

	children := make([]pipeline.Source, n)
	for i := range children {
		own := base.Push("source").PushIndex(i)
		fallback := def.Push("source").PushIndex(i)
		at := b.params.Which(own.Push("type"), fallback.Push("type"))
		if at == "" {
			return nil, errors.MissingParameter(string(own.Push("type")), string(fallback.Push("type")))
		}
		childBase := at.Pop()
		name, _ := b.params.String(at, "")

		switch name {
		case StubSlot:
			children[i] = nil
		case SameSlot:
			if i == 0 {
				return nil, errors.InvalidParameter(string(at), "the first source cannot be "+SameSlot)
			}
			children[i] = children[i-1]
		default:
			child, err := b.build(childBase, name)
			if err != nil {
				return nil, err
			}
			children[i] = child
		}
	}
	return children, nil
}
