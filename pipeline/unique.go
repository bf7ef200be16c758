package pipeline

import (
	"github.com/kbukum/breedkit/config"
	"github.com/kbukum/breedkit/logger"
	"github.com/kbukum/breedkit/validation"
)

type uniqueParams struct {
	Retries int `param:"duplicate-retries" validate:"gte=0"`
}

// Unique filters out individuals equal to a member of the current
// subpopulation. The seen-set is taken once per generation; individuals
// produced within a call are not added to it, so a single call may return
// two equal newcomers. When retries run out the remainder is padded with
// whatever the child produces, duplicates included.
type Unique struct {
	Pipeline
	generateMax bool
	retries     int
	seen        individualSet
}

// NewUnique returns an unconfigured Unique.
func NewUnique() *Unique { return &Unique{} }

func (u *Unique) Name() string             { return "unique" }
func (u *Unique) DefaultBase() config.Path { return "breed.unique" }
func (u *Unique) NumSources() int          { return 1 }

func (u *Unique) Setup(params *config.Parameters, base config.Path) error {
	def := u.DefaultBase()
	if err := u.SetupPipeline(params, base, def, u.NumSources()); err != nil {
		return err
	}
	var err error
	if u.generateMax, err = params.Bool(base.Push("generate-max"), def.Push("generate-max"), false); err != nil {
		return err
	}
	retries, err := params.Int(base.Push("duplicate-retries"), def.Push("duplicate-retries"), 0)
	if err != nil {
		return err
	}
	p := uniqueParams{Retries: retries}
	if err := validation.Params(base, &p); err != nil {
		return err
	}
	u.retries = p.Retries
	return nil
}

func (u *Unique) PrepareToProduce(state *State, subpop, thread int) {
	u.seen = newIndividualSet(state.Subpop(subpop).Individuals)
	u.Pipeline.PrepareToProduce(state, subpop, thread)
}

func (u *Unique) Produce(minN, maxN, subpop int, out *[]Individual, state *State, thread int, misc Misc) int {
	floor := minN
	if u.generateMax {
		floor = maxN
	}
	lin := misc.Lineage()
	start := len(*out)
	n := 0
	remainder := floor
	for retry := 0; retry <= u.retries; retry++ {
		got := u.sources[0].Produce(max(remainder, 0), maxN-n, subpop, out, state, thread, misc)
		kept := u.removeDuplicates(out, start+n, got, lin)
		n += kept
		remainder -= kept
		if remainder <= 0 {
			break
		}
	}
	if remainder > 0 {
		padded := u.sources[0].Produce(remainder, maxN-n, subpop, out, state, thread, misc)
		state.Log.Debug("duplicate retries exhausted, padding", logger.Fields(
			logger.FieldSource, string(u.Base()),
			logger.FieldSubpop, subpop,
			logger.FieldThread, thread,
			"unique", n,
			"padded", padded,
		))
		n += padded
	}
	return n
}

// removeDuplicates drops every seen individual from out[from:from+count] by
// swapping in the last element and truncating. It returns how many remain.
func (u *Unique) removeDuplicates(out *[]Individual, from, count int, lin *Lineage) int {
	end := from + count
	for i := from; i < end; {
		if !u.seen.contains((*out)[i]) {
			i++
			continue
		}
		end--
		(*out)[i] = (*out)[end]
		lin.Move(end, i)
	}
	for i := end; i < from+count; i++ {
		lin.Delete(i)
	}
	clear((*out)[end : from+count])
	*out = (*out)[:end]
	return end - from
}

// individualSet is a hash set of individuals with Equal as the tie-break.
type individualSet map[uint64][]Individual

func newIndividualSet(inds []Individual) individualSet {
	set := make(individualSet, len(inds))
	for _, ind := range inds {
		if !set.contains(ind) {
			h := ind.Hash()
			set[h] = append(set[h], ind)
		}
	}
	return set
}

func (s individualSet) contains(ind Individual) bool {
	for _, other := range s[ind.Hash()] {
		if other.Equal(ind) {
			return true
		}
	}
	return false
}
