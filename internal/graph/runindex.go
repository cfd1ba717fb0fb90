package graph

// RunIndex assigns each run-id a dense, stable integer position so
// per-node observation sets can live in a BitSet instead of a
// map[string]bool.
type RunIndex struct {
	idOf  map[string]int
	order []string
	pass  []bool
}

func NewRunIndex() *RunIndex {
	return &RunIndex{idOf: make(map[string]int)}
}

// Index returns runID's position, assigning the next free one on first
// sight.
func (r *RunIndex) Index(runID string, passed bool) int {
	if i, ok := r.idOf[runID]; ok {
		return i
	}
	i := len(r.order)
	r.idOf[runID] = i
	r.order = append(r.order, runID)
	r.pass = append(r.pass, passed)
	return i
}

// Len is the number of distinct runs indexed so far.
func (r *RunIndex) Len() int { return len(r.order) }

// Passed reports whether the run at index i passed.
func (r *RunIndex) Passed(i int) bool { return r.pass[i] }

// RunID returns the run-id originally indexed at i.
func (r *RunIndex) RunID(i int) string { return r.order[i] }

// TotalFailing is F in the importance formula of spec §3.
func (r *RunIndex) TotalFailing() int {
	n := 0
	for _, p := range r.pass {
		if !p {
			n++
		}
	}
	return n
}

// Equal reports whether r and other assign the same run-ids to the
// same positions with the same pass/fail outcomes.
func (r *RunIndex) Equal(other *RunIndex) bool {
	if len(r.order) != len(other.order) {
		return false
	}
	for i := range r.order {
		if r.order[i] != other.order[i] || r.pass[i] != other.pass[i] {
			return false
		}
	}
	return true
}
