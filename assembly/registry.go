package assembly

import (
	"sort"
	"sync"

	"github.com/kbukum/breedkit/pipeline"
	"github.com/kbukum/breedkit/selection"
	"github.com/kbukum/breedkit/species"
)

// Factory returns a new, unconfigured source.
type Factory func() pipeline.Source

// Registry maps type names to source factories.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
}

// NewRegistry creates a new empty Registry.
func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]Factory)}
}

// DefaultRegistry returns a registry holding every built-in source.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register("buffered", func() pipeline.Source { return pipeline.NewBuffered() })
	r.Register("check", func() pipeline.Source { return pipeline.NewChecking() })
	r.Register("first-copy", func() pipeline.Source { return pipeline.NewFirstCopy() })
	r.Register("force", func() pipeline.Source { return pipeline.NewForce() })
	r.Register("generation-switch", func() pipeline.Source { return pipeline.NewGenerationSwitch() })
	r.Register("init", func() pipeline.Source { return pipeline.NewInitialization() })
	r.Register("multi", func() pipeline.Source { return pipeline.NewMulti() })
	r.Register("repeat", func() pipeline.Source { return pipeline.NewRepeat() })
	r.Register("reproduce", func() pipeline.Source { return pipeline.NewReproduction() })
	r.Register("stub-pipeline", func() pipeline.Source { return pipeline.NewStub() })
	r.Register("unique", func() pipeline.Source { return pipeline.NewUnique() })
	r.Register("tournament", func() pipeline.Source { return selection.NewTournament() })
	r.Register("random", func() pipeline.Source { return selection.NewRandom() })
	r.Register("best", func() pipeline.Source { return selection.NewBest() })
	r.Register("bit-flip", func() pipeline.Source { return species.NewBitFlip() })
	return r
}

// Register adds a factory under name, replacing any previous one.
func (r *Registry) Register(name string, f Factory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.factories[name] = f
}

// Get retrieves a factory by name.
func (r *Registry) Get(name string) (Factory, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	f, ok := r.factories[name]
	return f, ok
}

// List returns sorted names of all registered types.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
