package assign

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/classgroups/groupsched/internal/model"
)

func TestScore_Size4CountAndSpread(t *testing.T) {
	students := []*model.Student{
		mkStudent("a@x.com", 2, 2, 2), // 6
		mkStudent("b@x.com", 2, 2, 2), // 6
		mkStudent("c@x.com", 2, 2, 2), // 6
		mkStudent("d@x.com", 2, 2, 2), // 6 -- group of 4, total 24
		mkStudent("e@x.com", 3, 3, 3), // 9
		mkStudent("f@x.com", 3, 3, 3), // 9
		mkStudent("g@x.com", 3, 3, 3), // 9 -- group of 3, total 27
	}
	p, err := Build(students, nil, model.DefaultSoftConflictWeights())
	require.NoError(t, err)

	score := p.Score([]int{0, 0, 0, 0, 1, 1, 1})
	assert.Equal(t, 1, score.Size4)
	assert.Equal(t, 0, score.Preference)
	assert.Equal(t, 0, score.SoftCost)
	assert.Equal(t, 3, score.Spread) // 27 - 24
}

func TestScore_PreferenceCountsNonMutualEdges(t *testing.T) {
	a := mkStudent("a@x.com", 2, 2, 2)
	b := mkStudent("b@x.com", 2, 2, 2)
	c := mkStudent("c@x.com", 2, 2, 2)
	a.PreferredPartnerEmail = "b@x.com" // one-way, not mutual

	p, err := Build([]*model.Student{a, b, c}, nil, model.DefaultSoftConflictWeights())
	require.NoError(t, err)

	together := p.Score([]int{0, 0, 0})
	assert.Equal(t, 1, together.Preference)

	apart := p.Score([]int{0, 1, 0})
	assert.Equal(t, 0, apart.Preference)
}

func TestScore_SoftConflictWeighting(t *testing.T) {
	// (P8): swapping an availability conflict for a meeting conflict (all
	// else equal) strictly reduces the soft cost, and meeting -> section
	// likewise.
	mkPair := func(conflict string) []*model.Student {
		a := mkStudent("a@x.com", 2, 2, 2)
		b := mkStudent("b@x.com", 2, 2, 2)
		c := mkStudent("c@x.com", 2, 2, 2)
		switch conflict {
		case "avail":
			a.Availability = map[string]struct{}{"mon": {}}
			b.Availability = map[string]struct{}{"tue": {}}
		case "meet":
			a.MeetingPreference = model.InPerson
			b.MeetingPreference = model.Remote
		case "section":
			a.Section = "A"
			b.Section = "B"
		}
		return []*model.Student{a, b, c}
	}

	availScore := mustScore(t, mkPair("avail"))
	meetScore := mustScore(t, mkPair("meet"))
	sectionScore := mustScore(t, mkPair("section"))

	assert.Greater(t, availScore.SoftCost, meetScore.SoftCost)
	assert.Greater(t, meetScore.SoftCost, sectionScore.SoftCost)
}

func TestScore_SoftConflictsAccumulateAcrossTypes(t *testing.T) {
	// a pair can simultaneously have an availability conflict and a
	// meeting-mode conflict; both weights must be added, not just one.
	a := mkStudent("a@x.com", 2, 2, 2)
	b := mkStudent("b@x.com", 2, 2, 2)
	c := mkStudent("c@x.com", 2, 2, 2)
	a.Availability = map[string]struct{}{"mon": {}}
	b.Availability = map[string]struct{}{"tue": {}}
	a.MeetingPreference = model.InPerson
	b.MeetingPreference = model.Remote

	weights := model.DefaultSoftConflictWeights()
	score := mustScore(t, []*model.Student{a, b, c})
	assert.Equal(t, weights.Avail+weights.Meet, score.SoftCost)
}

func mustScore(t *testing.T, students []*model.Student) Score {
	p, err := Build(students, nil, model.DefaultSoftConflictWeights())
	require.NoError(t, err)
	return p.Score([]int{0, 0, 0})
}

func TestBetter_LexicographicOrdering(t *testing.T) {
	assert.True(t, Better(Score{Size4: 2}, Score{Size4: 1}))
	assert.True(t, Better(Score{Size4: 1, Preference: 5}, Score{Size4: 1, Preference: 4}))
	assert.True(t, Better(Score{Size4: 1, Preference: 1, SoftCost: 1}, Score{Size4: 1, Preference: 1, SoftCost: 2}))
	assert.True(t, Better(Score{Size4: 1, Preference: 1, SoftCost: 1, Spread: 1}, Score{Size4: 1, Preference: 1, SoftCost: 1, Spread: 2}))
	assert.False(t, Better(Score{Size4: 1}, Score{Size4: 1}))
}
