// Package assign implements the Assignment Model Builder, the Solver
// Driver, and the Post-Processor (§4.3-§4.5): it turns a participant set
// into a CNF-encoded hard-constraint model plus a soft-cost scorer, uses
// github.com/crillab/gophersat/solver to check that the boolean hard
// constraints are satisfiable, then builds randomized hard-feasible seed
// assignments and runs a teacher-style time-boxed local search to improve
// them against the lexicographic objective.
package assign

import (
	"sort"

	"github.com/classgroups/groupsched/internal/apperr"
	"github.com/classgroups/groupsched/internal/model"
)

// Problem is the Assignment Model Builder's output: everything the Solver
// Driver needs to find and score candidate assignments.
type Problem struct {
	Participants []*model.Student
	GroupSlots   int // G_max = floor(N/3)
	Weights      model.SoftConflictWeights
	Loops        []model.PreferenceLoop // all detected loops, including mutual pairs

	mutualPairs [][2]int       // participant indices forced into the same slot
	loopHints   [][]int        // participant indices of loops with 3 <= |L| <= 4
	prefEdges   [][2]int       // directed non-mutual preference edges (u -> v)
	index       map[string]int // email -> participant index
}

// Build constructs the Problem for a participant set, deriving G_max and
// the mutual-pair / loop-colocation hints from the detected preference
// loops, per §4.3.
func Build(participants []*model.Student, loops []model.PreferenceLoop, weights model.SoftConflictWeights) (*Problem, error) {
	n := len(participants)
	if n < 3 {
		return nil, apperr.New(apperr.Infeasible, "fewer than 3 participants: no valid grouping exists")
	}

	index := make(map[string]int, n)
	for i, s := range participants {
		index[s.Email] = i
	}

	p := &Problem{
		Participants: participants,
		GroupSlots:   n / 3,
		Weights:      weights,
		Loops:        loops,
		index:        index,
	}

	mutual := make(map[[2]int]bool)
	for _, loop := range loops {
		idx := make([]int, 0, loop.Len())
		for _, m := range loop.Members {
			idx = append(idx, index[m.Email])
		}
		if loop.IsMutualPair() {
			p.mutualPairs = append(p.mutualPairs, [2]int{idx[0], idx[1]})
			mutual[[2]int{idx[0], idx[1]}] = true
			mutual[[2]int{idx[1], idx[0]}] = true
		} else if len(idx) <= 4 {
			p.loopHints = append(p.loopHints, idx)
		}
		// loops of length > 4 cannot fit in a group; no variable is added,
		// but they are still reported via Loops for the report writer.
	}

	for u, s := range participants {
		if s.PreferredPartnerEmail == "" {
			continue
		}
		v, ok := index[s.PreferredPartnerEmail]
		if !ok || v == u || mutual[[2]int{u, v}] {
			continue
		}
		p.prefEdges = append(p.prefEdges, [2]int{u, v})
	}

	return p, nil
}

// N returns the number of participants.
func (p *Problem) N() int { return len(p.Participants) }

// AssignmentFromGroupNumbers rebuilds a participant->slot assignment from
// an externally recorded (email -> group number) mapping, for the "score"
// command's re-evaluation of a previously written assignment table. Group
// numbers are remapped to contiguous slot indices in ascending order;
// participants absent from the mapping are left unassigned (slot -1).
func (p *Problem) AssignmentFromGroupNumbers(groupOf map[string]int) ([]int, error) {
	distinct := make(map[int]bool)
	for _, n := range groupOf {
		distinct[n] = true
	}
	numbers := make([]int, 0, len(distinct))
	for n := range distinct {
		numbers = append(numbers, n)
	}
	sort.Ints(numbers)
	if len(numbers) > p.GroupSlots {
		return nil, apperr.New(apperr.InvalidRoster, "assignment has more groups than this participant set can support")
	}
	slotOf := make(map[int]int, len(numbers))
	for i, n := range numbers {
		slotOf[n] = i
	}

	assignment := make([]int, p.N())
	for i := range assignment {
		assignment[i] = -1
	}
	for email, n := range groupOf {
		idx, ok := p.index[email]
		if !ok {
			return nil, apperr.New(apperr.InvalidRoster, "assignment references unknown participant "+email)
		}
		assignment[idx] = slotOf[n]
	}
	return assignment, nil
}

// IdealSizes computes the target multiset of group sizes for N
// participants per the size-feasibility rule in §4.3: groups of 3 or 4,
// preferring as many 4s as possible.
func IdealSizes(n int) []int {
	fours := n / 4
	rem := n % 4
	switch rem {
	case 0:
		sizes := make([]int, fours)
		for i := range sizes {
			sizes[i] = 4
		}
		return sizes
	case 1:
		// three 3s replace two 4s plus the remainder (9 students, 3 groups)
		// n = 4*fours + 1 => use (fours-2) fours and 3 threes
		sizes := make([]int, 0, fours+2)
		for i := 0; i < fours-2; i++ {
			sizes = append(sizes, 4)
		}
		sizes = append(sizes, 3, 3, 3)
		return sizes
	case 2:
		// two 3s replace one 4 worth of students (6 students, 2 groups)
		// n = 4*fours + 2 => use (fours-1) fours and 2 threes
		sizes := make([]int, 0, fours+2)
		for i := 0; i < fours-1; i++ {
			sizes = append(sizes, 4)
		}
		sizes = append(sizes, 3, 3)
		return sizes
	default: // rem == 3
		sizes := make([]int, 0, fours+1)
		for i := 0; i < fours; i++ {
			sizes = append(sizes, 4)
		}
		sizes = append(sizes, 3)
		return sizes
	}
}

// sameSlot returns, for a mutual pair or loop hint, whether both/all
// indices currently share the same slot in assignment.
func sameSlot(assignment []int, idxs []int) bool {
	for i := 1; i < len(idxs); i++ {
		if assignment[idxs[i]] != assignment[idxs[0]] {
			return false
		}
	}
	return true
}

// usedSlots returns the distinct, non-empty group slot indices used by
// assignment, sorted ascending.
func usedSlots(assignment []int, slots int) []int {
	seen := make(map[int]bool)
	for _, g := range assignment {
		seen[g] = true
	}
	out := make([]int, 0, len(seen))
	for g := 0; g < slots; g++ {
		if seen[g] {
			out = append(out, g)
		}
	}
	sort.Ints(out)
	return out
}
