package assign

// groupMembers returns the participant indices assigned to slot g.
func (p *Problem) groupMembers(assignment []int, g int) []int {
	var members []int
	for s, slot := range assignment {
		if slot == g {
			members = append(members, s)
		}
	}
	return members
}

// Valid reports whether assignment satisfies every hard constraint from
// §4.3: size bounds, skill floor, placeholder dispersion, and
// mutual-preference co-location. Unused slots are simply absent and do not
// need to satisfy size bounds.
func (p *Problem) Valid(assignment []int) bool {
	for _, g := range usedSlots(assignment, p.GroupSlots) {
		members := p.groupMembers(assignment, g)
		size := len(members)
		if size < 3 || size > 4 {
			return false
		}

		skillTotal, placeholders := 0, 0
		for _, s := range members {
			skillTotal += p.Participants[s].SkillTotal()
			if p.Participants[s].IsPlaceholder {
				placeholders++
			}
		}
		if skillTotal < 5*size {
			return false
		}
		if placeholders > 1 {
			return false
		}
	}

	for _, pair := range p.mutualPairs {
		if assignment[pair[0]] != assignment[pair[1]] {
			return false
		}
	}

	return true
}
