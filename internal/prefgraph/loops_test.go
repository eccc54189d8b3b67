package prefgraph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/classgroups/groupsched/internal/model"
)

func student(email, partner string) *model.Student {
	return &model.Student{
		StudentID:             email,
		Name:                  email,
		Email:                 email,
		PreferredPartnerEmail: partner,
	}
}

func TestFindLoops_MutualPair(t *testing.T) {
	a := student("a@x.com", "b@x.com")
	b := student("b@x.com", "a@x.com")
	c := student("c@x.com", "")

	loops := FindLoops([]*model.Student{a, b, c})
	require.Len(t, loops, 1)
	assert.True(t, loops[0].IsMutualPair())
	assert.Equal(t, []string{"a@x.com", "b@x.com"}, loops[0].Emails())
}

func TestFindLoops_ThreeCycle(t *testing.T) {
	a := student("a@x.com", "b@x.com")
	b := student("b@x.com", "c@x.com")
	c := student("c@x.com", "a@x.com")
	d := student("d@x.com", "")

	loops := FindLoops([]*model.Student{a, b, c, d})
	require.Len(t, loops, 1)
	assert.Equal(t, 3, loops[0].Len())
	assert.Equal(t, "a@x.com", loops[0].Members[0].Email)
}

func TestFindLoops_CanonicalRotationIsStable(t *testing.T) {
	// (P10) the reported loop is invariant under cyclic rotation of input order.
	a := student("a@x.com", "b@x.com")
	b := student("b@x.com", "c@x.com")
	c := student("c@x.com", "a@x.com")

	loops1 := FindLoops([]*model.Student{a, b, c})
	loops2 := FindLoops([]*model.Student{b, c, a})
	loops3 := FindLoops([]*model.Student{c, a, b})

	require.Len(t, loops1, 1)
	require.Len(t, loops2, 1)
	require.Len(t, loops3, 1)
	assert.Equal(t, loops1[0].Emails(), loops2[0].Emails())
	assert.Equal(t, loops1[0].Emails(), loops3[0].Emails())
}

func TestFindLoops_NoSelfPreferenceLoop(t *testing.T) {
	a := student("a@x.com", "a@x.com")
	loops := FindLoops([]*model.Student{a})
	assert.Empty(t, loops)
}

func TestFindLoops_NoEdgesNoLoops(t *testing.T) {
	a := student("a@x.com", "")
	b := student("b@x.com", "")
	assert.Empty(t, FindLoops([]*model.Student{a, b}))
}

func TestFindLoops_ChainWithoutCycleIsNotALoop(t *testing.T) {
	a := student("a@x.com", "b@x.com")
	b := student("b@x.com", "c@x.com")
	c := student("c@x.com", "")
	assert.Empty(t, FindLoops([]*model.Student{a, b, c}))
}
