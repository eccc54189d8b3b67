package assign

import "github.com/classgroups/groupsched/internal/model"

// Score is the four-level lexicographic tuple of §4.3's objective:
// maximize Size4, then Preference, then minimize SoftCost, then Spread.
// This generalizes the teacher's single-number Badness into a tuple
// compared level by level rather than folded into one scalar, per the
// staged-solve alternative the spec explicitly permits.
type Score struct {
	Size4      int // number of group slots holding exactly 4 members
	Preference int // honored non-mutual preference edges plus colocated loop hints
	SoftCost   int // w_avail*avail conflicts + w_meet*meet conflicts + w_section*section conflicts
	Spread     int // max group skill total - min group skill total, over used slots
}

// Score evaluates a complete assignment (participant index -> group slot)
// against the Problem's weights, preference edges, and loop hints.
func (p *Problem) Score(assignment []int) Score {
	used := usedSlots(assignment, p.GroupSlots)

	var s Score
	groupOf := make(map[int][]int, len(used))
	for _, g := range used {
		members := p.groupMembers(assignment, g)
		groupOf[g] = members
		if len(members) == 4 {
			s.Size4++
		}
	}

	for _, e := range p.prefEdges {
		if assignment[e[0]] == assignment[e[1]] {
			s.Preference++
		}
	}
	for _, hint := range p.loopHints {
		if sameSlot(assignment, hint) {
			s.Preference++
		}
	}

	for _, g := range used {
		members := groupOf[g]
		for i := 0; i < len(members); i++ {
			for j := i + 1; j < len(members); j++ {
				a, b := p.Participants[members[i]], p.Participants[members[j]]
				if model.AvailabilityConflict(a, b) {
					s.SoftCost += p.Weights.Avail
				}
				if model.MeetingConflict(a, b) {
					s.SoftCost += p.Weights.Meet
				}
				if model.SectionConflict(a, b) {
					s.SoftCost += p.Weights.Section
				}
			}
		}
	}

	if len(used) > 0 {
		min, max := -1, -1
		for _, g := range used {
			total := 0
			for _, idx := range groupOf[g] {
				total += p.Participants[idx].SkillTotal()
			}
			if min == -1 || total < min {
				min = total
			}
			if max == -1 || total > max {
				max = total
			}
		}
		s.Spread = max - min
	}

	return s
}

// Better reports whether a dominates b under the lexicographic ordering:
// higher Size4 wins; ties broken by higher Preference; ties broken by
// lower SoftCost; ties broken by lower Spread.
func Better(a, b Score) bool {
	if a.Size4 != b.Size4 {
		return a.Size4 > b.Size4
	}
	if a.Preference != b.Preference {
		return a.Preference > b.Preference
	}
	if a.SoftCost != b.SoftCost {
		return a.SoftCost < b.SoftCost
	}
	return a.Spread < b.Spread
}
