package assign

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/classgroups/groupsched/internal/model"
)

func TestDecode_RenumbersByMinEmailAndSortsMembers(t *testing.T) {
	students := []*model.Student{
		mkStudent("z@x.com", 2, 2, 2),
		mkStudent("a@x.com", 2, 2, 2),
		mkStudent("m@x.com", 2, 2, 2),
		mkStudent("b@x.com", 2, 2, 2),
		mkStudent("c@x.com", 2, 2, 2),
		mkStudent("y@x.com", 2, 2, 2),
	}
	p, err := Build(students, nil, model.DefaultSoftConflictWeights())
	require.NoError(t, err)

	// slot 0 gets {z, m, y} (min email m@x.com); slot 1 gets {a, b, c} (min a@x.com)
	assignment := []int{0, 1, 0, 1, 1, 0}
	groups, unassigned := p.Decode(assignment)

	require.Len(t, groups, 2)
	assert.Empty(t, unassigned)

	assert.Equal(t, 1, groups[0].Number)
	assert.Equal(t, []string{"a@x.com", "b@x.com", "c@x.com"}, emails(groups[0]))

	assert.Equal(t, 2, groups[1].Number)
	assert.Equal(t, []string{"m@x.com", "y@x.com", "z@x.com"}, emails(groups[1]))
}

func TestDecode_UnassignedParticipantsAreReported(t *testing.T) {
	students := []*model.Student{
		mkStudent("a@x.com", 2, 2, 2),
		mkStudent("b@x.com", 2, 2, 2),
		mkStudent("c@x.com", 2, 2, 2),
	}
	p, err := Build(students, nil, model.DefaultSoftConflictWeights())
	require.NoError(t, err)

	groups, unassigned := p.Decode([]int{0, 0, -1})
	require.Len(t, groups, 1)
	require.Len(t, unassigned, 1)
	assert.Equal(t, "c@x.com", unassigned[0].Email)
}

func emails(g *model.Group) []string {
	out := make([]string, len(g.Members))
	for i, m := range g.Members {
		out[i] = m.Email
	}
	return out
}
