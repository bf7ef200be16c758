package pipeline

// Picker chooses one individual of a subpopulation by index.
type Picker interface {
	Pick(subpop int, state *State, thread int) int
}

// Selector is a leaf source that hands out existing population members.
// Parents that keep individuals they receive from a Selector must
// duplicate them first.
type Selector interface {
	Source
	Picker
}

// SelectionMethod is the base of selection leaves.
type SelectionMethod struct {
	Node
}

func (s *SelectionMethod) NumSources() int { return 0 }

// Select appends clamp(1, minN, maxN) picks to out, recording each pick's
// population index as its parent.
func Select(p Picker, minN, maxN, subpop int, out *[]Individual, state *State, thread int, misc Misc) int {
	n := clamp(1, minN, maxN)
	inds := state.Subpop(subpop).Individuals
	lin := misc.Lineage()
	for i := 0; i < n; i++ {
		idx := p.Pick(subpop, state, thread)
		*out = append(*out, inds[idx])
		lin.Set(len(*out)-1, []int{idx})
	}
	return n
}

// duplicateSelected replaces out[start:] with copies when child is a Selector.
func duplicateSelected(child Source, out []Individual, start int) {
	if _, ok := child.(Selector); !ok {
		return
	}
	for i := start; i < len(out); i++ {
		out[i] = out[i].Duplicate()
	}
}
