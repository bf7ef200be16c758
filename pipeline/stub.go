package pipeline

import (
	"github.com/kbukum/breedkit/config"
	"github.com/kbukum/breedkit/errors"
)

// Stub is a Reproduction that also owns a stub subtree. When FillStubs
// reaches it, the outer source is pushed into the stub subtree first and the
// stub subtree is then pushed into this node's own unfilled slots. That lets
// a reusable fragment be written once with holes and bound later.
type Stub struct {
	Reproduction
	stub Source
}

// NewStub returns an unconfigured Stub.
func NewStub() *Stub { return &Stub{} }

func (s *Stub) Name() string             { return "stub-pipeline" }
func (s *Stub) DefaultBase() config.Path { return "breed.stub" }

// SetStub installs the stub subtree. It must be set before Setup.
func (s *Stub) SetStub(stub Source) { s.stub = stub }

// StubSource returns the stub subtree.
func (s *Stub) StubSource() Source { return s.stub }

func (s *Stub) Setup(params *config.Parameters, base config.Path) error {
	if err := s.SetupPipeline(params, base, s.DefaultBase(), s.NumSources()); err != nil {
		return err
	}
	if s.stub == nil {
		return errors.MissingParameter(string(base.Push("stub")), string(s.DefaultBase().Push("stub")))
	}
	return nil
}

func (s *Stub) FillStubs(state *State, source Source) {
	s.stub.FillStubs(state, source)
	s.Pipeline.FillStubs(state, s.stub)
}
