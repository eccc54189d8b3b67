// Package roster implements the Roster Reconciler (§4.1): merging survey
// respondents with roster records, identifying missing students, and
// optionally synthesizing placeholder participants.
package roster

import (
	"fmt"
	"sort"

	"github.com/classgroups/groupsched/internal/model"
	"github.com/classgroups/groupsched/internal/tabular"
)

// MissingEntry names a roster student who never responded to the survey.
type MissingEntry struct {
	Name  string
	Email string
}

// Result is the output of Reconcile: the participant set that will be fed
// to the rest of the pipeline, plus the list of roster-only students.
type Result struct {
	Participants []*model.Student
	Missing      []MissingEntry
}

// Reconcile merges survey respondents with roster records, keyed by email.
// A roster entry whose email does not appear among the survey respondents
// is "missing"; when includeMissing is true each missing entry becomes a
// placeholder participant (defaults per the data model), otherwise it is
// excluded entirely.
func Reconcile(survey []*model.Student, rosterEntries []tabular.RosterEntry, includeMissing bool) Result {
	byEmail := make(map[string]*model.Student, len(survey))
	for _, s := range survey {
		byEmail[s.Email] = s
	}

	var missing []MissingEntry
	participants := make([]*model.Student, len(survey))
	copy(participants, survey)

	for _, entry := range rosterEntries {
		if _, ok := byEmail[entry.Email]; ok {
			continue
		}
		missing = append(missing, MissingEntry{Name: entry.Name, Email: entry.Email})
		if includeMissing {
			placeholder := model.Placeholder(entry.StudentID, entry.Name, entry.Email)
			participants = append(participants, placeholder)
		}
	}

	sort.Slice(missing, func(i, j int) bool { return missing[i].Email < missing[j].Email })
	return Result{Participants: participants, Missing: missing}
}

// ResolvePreferences resolves each participant's preferred-partner email
// to another participant in the set. Unresolvable emails (pointing outside
// the participant set, or to the student themself) are dropped from the
// student's PreferredPartnerEmail field and reported as a warning, per the
// UnresolvablePreference error kind.
func ResolvePreferences(participants []*model.Student) []model.Warning {
	byEmail := make(map[string]*model.Student, len(participants))
	for _, s := range participants {
		byEmail[s.Email] = s
	}

	var warnings []model.Warning
	for _, s := range participants {
		if s.PreferredPartnerEmail == "" {
			continue
		}
		target, ok := byEmail[s.PreferredPartnerEmail]
		if !ok || target == s {
			warnings = append(warnings, model.Warning{
				Kind:    "UnresolvablePreference",
				Message: fmt.Sprintf("%s's preferred partner %q does not resolve to a participant; dropping", s.Email, s.PreferredPartnerEmail),
			})
			s.PreferredPartnerEmail = ""
		}
	}
	return warnings
}
