package model

import "sort"

// Group is a set of 3 or 4 participants with a group number assigned by
// the post-processor. Members are kept sorted by email once finalized.
type Group struct {
	Number  int
	Members []*Student
}

// Size returns the number of members currently in the group.
func (g *Group) Size() int { return len(g.Members) }

// SkillTotal sums the skill totals of every member.
func (g *Group) SkillTotal() int {
	total := 0
	for _, m := range g.Members {
		total += m.SkillTotal()
	}
	return total
}

// PlaceholderCount returns how many synthesized participants are in the
// group.
func (g *Group) PlaceholderCount() int {
	n := 0
	for _, m := range g.Members {
		if m.IsPlaceholder {
			n++
		}
	}
	return n
}

// MinEmail returns the lexicographically smallest member email, used to
// assign stable, reproducible group numbers.
func (g *Group) MinEmail() string {
	min := ""
	for i, m := range g.Members {
		if i == 0 || m.Email < min {
			min = m.Email
		}
	}
	return min
}

// SortMembers orders members by email, as required before emitting the
// final assignment table.
func (g *Group) SortMembers() {
	sort.Slice(g.Members, func(i, j int) bool {
		return g.Members[i].Email < g.Members[j].Email
	})
}

// SoftConflictWeights are the process-wide soft-cost weights. The strict
// ordering invariant w_avail > w_meet > w_section is enforced by
// NewSoftConflictWeights.
type SoftConflictWeights struct {
	Avail   int
	Meet    int
	Section int
}

// NewSoftConflictWeights validates the strict-ordering invariant.
func NewSoftConflictWeights(avail, meet, section int) (SoftConflictWeights, error) {
	w := SoftConflictWeights{Avail: avail, Meet: meet, Section: section}
	if !(avail > meet && meet > section && section > 0) {
		return w, errInvalidWeights
	}
	return w, nil
}

// DefaultSoftConflictWeights returns the spec's default weights (8, 4, 1).
func DefaultSoftConflictWeights() SoftConflictWeights {
	w, _ := NewSoftConflictWeights(8, 4, 1)
	return w
}
