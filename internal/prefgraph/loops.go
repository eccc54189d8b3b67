// Package prefgraph builds a directed graph from resolved preferred-partner
// edges and finds preference loops. Out-degree is <= 1 per vertex (each
// participant names at most one partner), so every weakly connected
// component has at most one cycle; this is a specialized single-pass
// visited/on-stack traversal rather than a general SCC algorithm, per §4.2
// and §9. Grounded on the pack's preference for hand-rolled, specialized
// graph traversals (see AleutianLocal's services/trace/graph package)
// rather than pulling in a generic graph library.
package prefgraph

import (
	"sort"

	"github.com/classgroups/groupsched/internal/model"
)

// state tags used during the traversal.
const (
	unvisited = 0
	onStack   = 1
	done      = 2
)

// FindLoops returns every directed cycle of length >= 2 among participants'
// resolved preferred-partner edges, in canonical orientation (rotated to
// start at the lexicographically smallest email, direction following the
// edges). Self-preference (a 1-cycle) is discarded.
func FindLoops(participants []*model.Student) []model.PreferenceLoop {
	byEmail := make(map[string]*model.Student, len(participants))
	for _, s := range participants {
		byEmail[s.Email] = s
	}
	next := func(s *model.Student) *model.Student {
		if s.PreferredPartnerEmail == "" {
			return nil
		}
		return byEmail[s.PreferredPartnerEmail]
	}

	state := make(map[string]int, len(participants))
	var loops []model.PreferenceLoop

	// Stable iteration order for deterministic output (P9): sort by email.
	ordered := make([]*model.Student, len(participants))
	copy(ordered, participants)
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].Email < ordered[j].Email })

	for _, start := range ordered {
		if state[start.Email] != unvisited {
			continue
		}

		var path []*model.Student
		cur := start
		for cur != nil && state[cur.Email] == unvisited {
			state[cur.Email] = onStack
			path = append(path, cur)
			cur = next(cur)
		}

		if cur != nil && state[cur.Email] == onStack {
			// found a cycle: it starts where cur first appears in path
			cycleStart := 0
			for i, p := range path {
				if p.Email == cur.Email {
					cycleStart = i
					break
				}
			}
			cycle := path[cycleStart:]
			if len(cycle) >= 2 {
				loops = append(loops, canonicalize(cycle))
			}
		}

		for _, p := range path {
			state[p.Email] = done
		}
	}

	sort.Slice(loops, func(i, j int) bool {
		return loops[i].Members[0].Email < loops[j].Members[0].Email
	})
	return loops
}

// canonicalize rotates the cycle to start at its lexicographically smallest
// email, preserving edge direction.
func canonicalize(cycle []*model.Student) model.PreferenceLoop {
	minIdx := 0
	for i, s := range cycle {
		if s.Email < cycle[minIdx].Email {
			minIdx = i
		}
	}
	rotated := make([]*model.Student, len(cycle))
	for i := range cycle {
		rotated[i] = cycle[(minIdx+i)%len(cycle)]
	}
	return model.PreferenceLoop{Members: rotated}
}
