package pipeline

// Misc is the auxiliary side channel threaded through Produce. Policies that
// delegate verbatim pass it along untouched. A nil Misc is valid.
type Misc map[string]any

// KeyParents holds a *Lineage.
const KeyParents = "parents"

// NewMisc returns a Misc that tracks lineage.
func NewMisc() Misc {
	return Misc{KeyParents: NewLineage()}
}

// Lineage returns the lineage tracker, or nil when lineage is not tracked.
func (m Misc) Lineage() *Lineage {
	l, _ := m[KeyParents].(*Lineage)
	return l
}

// scratch returns a fresh Misc for a private output sequence, tracking
// lineage only if m does.
func (m Misc) scratch() Misc {
	if m.Lineage() == nil {
		return nil
	}
	return NewMisc()
}

// Lineage records, per output position, the subpopulation indices of the
// parents an individual came from. All methods are no-ops on nil.
type Lineage struct {
	parents map[int][]int
}

// NewLineage returns an empty tracker.
func NewLineage() *Lineage {
	return &Lineage{parents: make(map[int][]int)}
}

// Add appends parent indices to position pos.
func (l *Lineage) Add(pos int, parents ...int) {
	if l == nil {
		return
	}
	l.parents[pos] = append(l.parents[pos], parents...)
}

// Set replaces the parents of position pos.
func (l *Lineage) Set(pos int, parents []int) {
	if l == nil {
		return
	}
	if len(parents) == 0 {
		delete(l.parents, pos)
		return
	}
	l.parents[pos] = append([]int(nil), parents...)
}

// Get returns a copy of the parents of position pos.
func (l *Lineage) Get(pos int) []int {
	if l == nil {
		return nil
	}
	return append([]int(nil), l.parents[pos]...)
}

// Move transfers the parents of from to to, clearing from.
func (l *Lineage) Move(from, to int) {
	if l == nil || from == to {
		return
	}
	l.Set(to, l.parents[from])
	delete(l.parents, from)
}

// Delete forgets position pos.
func (l *Lineage) Delete(pos int) {
	if l == nil {
		return
	}
	delete(l.parents, pos)
}

// copyFrom copies n positions of src starting at 0 to positions starting at offset.
func (l *Lineage) copyFrom(src *Lineage, offset, n int) {
	if l == nil || src == nil {
		return
	}
	for i := 0; i < n; i++ {
		l.Set(offset+i, src.parents[i])
	}
}
