// Package model holds the data types shared across the pipeline: the
// participant record, preference loops, groups, and the soft-conflict
// weights, plus the diagnostics bag threaded through a run.
package model

import "strings"

// MeetingMode is a participant's stated preference for how their group
// should meet.
type MeetingMode int

const (
	NoPreference MeetingMode = iota
	InPerson
	Remote
)

func (m MeetingMode) String() string {
	switch m {
	case InPerson:
		return "IN_PERSON"
	case Remote:
		return "REMOTE"
	default:
		return "NO_PREFERENCE"
	}
}

// ParseMeetingMode maps free text by prefix match on "in person", "remote",
// "no preference", per the survey input column rules.
func ParseMeetingMode(raw string) MeetingMode {
	s := strings.ToLower(strings.TrimSpace(raw))
	switch {
	case strings.HasPrefix(s, "in person"):
		return InPerson
	case strings.HasPrefix(s, "remote"):
		return Remote
	default:
		return NoPreference
	}
}

// Student is one participant in the group-assignment run.
type Student struct {
	StudentID string `validate:"required"`
	Name      string `validate:"required"`
	Email     string `validate:"required,email"`
	GitHub    string

	RubySkill int `validate:"gte=1,lte=5"`
	HTMLSkill int `validate:"gte=1,lte=5"`
	JSSkill   int `validate:"gte=1,lte=5"`

	MeetingPreference MeetingMode

	// Availability is nil when unknown (distinct from an empty, known set
	// of zero free slots — the two mean different things for conflict
	// scoring, see KnownAvailability/AvailabilityConflict below).
	Availability map[string]struct{}

	Section string // "" means unknown

	PreferredPartnerEmail string // "" when absent

	IsPlaceholder bool
}

// SkillTotal is the sum of the three skill ratings.
func (s *Student) SkillTotal() int {
	return s.RubySkill + s.HTMLSkill + s.JSSkill
}

// KnownAvailability reports whether this student's availability was
// supplied at all (nil means "unknown", not "no slots").
func (s *Student) KnownAvailability() bool {
	return s.Availability != nil
}

// KnownSection reports whether the section field was supplied.
func (s *Student) KnownSection() bool {
	return s.Section != ""
}

// Placeholder builds a synthetic participant for a roster-only student,
// per the default attributes in the data model invariants: skills all 2,
// meeting preference NO_PREFERENCE, no availability/section/partner.
func Placeholder(studentID, name, email string) *Student {
	return &Student{
		StudentID:         studentID,
		Name:              name,
		Email:             strings.ToLower(strings.TrimSpace(email)),
		RubySkill:         2,
		HTMLSkill:         2,
		JSSkill:           2,
		MeetingPreference: NoPreference,
		IsPlaceholder:     true,
	}
}

// AvailabilityConflict reports whether two students have an availability
// soft conflict: both known and non-empty, and their intersection is empty.
func AvailabilityConflict(a, b *Student) bool {
	if !a.KnownAvailability() || !b.KnownAvailability() {
		return false
	}
	if len(a.Availability) == 0 || len(b.Availability) == 0 {
		return false
	}
	for slot := range a.Availability {
		if _, ok := b.Availability[slot]; ok {
			return false
		}
	}
	return true
}

// MeetingConflict reports whether two students' meeting-mode preferences
// conflict: one wants IN_PERSON and the other wants REMOTE.
func MeetingConflict(a, b *Student) bool {
	modes := map[MeetingMode]bool{a.MeetingPreference: true, b.MeetingPreference: true}
	return modes[InPerson] && modes[Remote]
}

// SectionConflict reports whether two students have different, both-known
// sections.
func SectionConflict(a, b *Student) bool {
	if !a.KnownSection() || !b.KnownSection() {
		return false
	}
	return a.Section != b.Section
}
