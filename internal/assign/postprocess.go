package assign

import (
	"sort"

	"github.com/classgroups/groupsched/internal/model"
)

// Decode implements §4.5: turns a solved assignment into the final list of
// groups, numbered from 1 in ascending order of each group's minimum
// email, with members sorted by email. Unassigned lists any participant
// the assignment left out of every slot -- empty on any success path, kept
// for defensive reporting per §4.5/§8 (P1).
func (p *Problem) Decode(assignment []int) (groups []*model.Group, unassigned []*model.Student) {
	bySlot := make(map[int][]*model.Student)
	for s, g := range assignment {
		if g < 0 {
			unassigned = append(unassigned, p.Participants[s])
			continue
		}
		bySlot[g] = append(bySlot[g], p.Participants[s])
	}

	for _, members := range bySlot {
		g := &model.Group{Members: members}
		g.SortMembers()
		groups = append(groups, g)
	}

	sort.Slice(groups, func(i, j int) bool { return groups[i].MinEmail() < groups[j].MinEmail() })
	for i, g := range groups {
		g.Number = i + 1
	}

	sort.Slice(unassigned, func(i, j int) bool { return unassigned[i].Email < unassigned[j].Email })
	return groups, unassigned
}
