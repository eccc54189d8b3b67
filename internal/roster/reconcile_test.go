package roster

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/classgroups/groupsched/internal/model"
	"github.com/classgroups/groupsched/internal/tabular"
)

func TestReconcile_MissingExcludedByDefault(t *testing.T) {
	survey := []*model.Student{{Email: "a@x.com", Name: "A"}}
	entries := []tabular.RosterEntry{
		{StudentID: "1", Name: "A", Email: "a@x.com"},
		{StudentID: "2", Name: "B", Email: "b@x.com"},
	}

	result := Reconcile(survey, entries, false)
	assert.Len(t, result.Participants, 1)
	require.Len(t, result.Missing, 1)
	assert.Equal(t, "b@x.com", result.Missing[0].Email)
}

func TestReconcile_IncludeMissingSynthesizesPlaceholder(t *testing.T) {
	survey := []*model.Student{{Email: "a@x.com", Name: "A"}}
	entries := []tabular.RosterEntry{
		{StudentID: "1", Name: "A", Email: "a@x.com"},
		{StudentID: "2", Name: "B", Email: "b@x.com"},
	}

	result := Reconcile(survey, entries, true)
	require.Len(t, result.Participants, 2)
	var placeholder *model.Student
	for _, p := range result.Participants {
		if p.IsPlaceholder {
			placeholder = p
		}
	}
	require.NotNil(t, placeholder)
	assert.Equal(t, "b@x.com", placeholder.Email)
	assert.Equal(t, 2, placeholder.RubySkill)
	assert.Equal(t, 2, placeholder.HTMLSkill)
	assert.Equal(t, 2, placeholder.JSSkill)
	assert.Equal(t, model.NoPreference, placeholder.MeetingPreference)
}

func TestResolvePreferences_DropsUnresolvable(t *testing.T) {
	a := &model.Student{Email: "a@x.com", PreferredPartnerEmail: "ghost@x.com"}
	b := &model.Student{Email: "b@x.com", PreferredPartnerEmail: "a@x.com"}

	warnings := ResolvePreferences([]*model.Student{a, b})
	require.Len(t, warnings, 1)
	assert.Equal(t, "", a.PreferredPartnerEmail)
	assert.Equal(t, "a@x.com", b.PreferredPartnerEmail)
}

func TestResolvePreferences_DropsSelfPreference(t *testing.T) {
	a := &model.Student{Email: "a@x.com", PreferredPartnerEmail: "a@x.com"}
	warnings := ResolvePreferences([]*model.Student{a})
	require.Len(t, warnings, 1)
	assert.Equal(t, "", a.PreferredPartnerEmail)
}
