package assign

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/classgroups/groupsched/internal/model"
)

func mkStudent(email string, ruby, html, js int) *model.Student {
	return &model.Student{
		StudentID: email,
		Name:      email,
		Email:     email,
		RubySkill: ruby,
		HTMLSkill: html,
		JSSkill:   js,
	}
}

func TestIdealSizes(t *testing.T) {
	cases := []struct {
		n     int
		fours int
		total int
	}{
		{3, 0, 1},
		{8, 2, 2},
		{9, 0, 3}, // (S3): N=9 forces three size-3 groups, zero fours
		{4, 1, 1}, // (S4)
		{6, 0, 2},
		{10, 1, 3},
		{11, 2, 3},
		{12, 3, 3},
		{13, 1, 4},
		{14, 2, 4},
	}
	for _, c := range cases {
		sizes := IdealSizes(c.n)
		assert.Len(t, sizes, c.total, "n=%d", c.n)
		sum := 0
		fours := 0
		for _, s := range sizes {
			sum += s
			assert.True(t, s == 3 || s == 4)
			if s == 4 {
				fours++
			}
		}
		assert.Equal(t, c.n, sum, "n=%d", c.n)
		assert.Equal(t, c.fours, fours, "n=%d", c.n)
	}
}

func TestBuild_FewerThanThreeIsInfeasible(t *testing.T) {
	_, err := Build([]*model.Student{mkStudent("a@x.com", 2, 2, 2)}, nil, model.DefaultSoftConflictWeights())
	require.Error(t, err)
}

func TestBuild_MutualPairDetected(t *testing.T) {
	a := mkStudent("a@x.com", 2, 2, 2)
	b := mkStudent("b@x.com", 2, 2, 2)
	c := mkStudent("c@x.com", 2, 2, 2)
	a.PreferredPartnerEmail = "b@x.com"
	b.PreferredPartnerEmail = "a@x.com"

	loops := []model.PreferenceLoop{{Members: []*model.Student{a, b}}}
	p, err := Build([]*model.Student{a, b, c}, loops, model.DefaultSoftConflictWeights())
	require.NoError(t, err)
	require.Len(t, p.mutualPairs, 1)
	assert.ElementsMatch(t, []int{0, 1}, []int{p.mutualPairs[0][0], p.mutualPairs[0][1]})
}
