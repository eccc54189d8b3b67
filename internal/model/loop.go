package model

// PreferenceLoop is an ordered list of >= 2 distinct participants
// p0,...,pk-1 such that each pi lists p(i+1 mod k) as preferred partner.
// It is derived once per run and is read-only thereafter.
type PreferenceLoop struct {
	Members []*Student
}

// Len returns the number of participants in the loop.
func (l PreferenceLoop) Len() int { return len(l.Members) }

// IsMutualPair reports whether this loop is a mutual pair (length exactly 2).
func (l PreferenceLoop) IsMutualPair() bool { return len(l.Members) == 2 }

// Names returns the members' display names, in loop order.
func (l PreferenceLoop) Names() []string {
	names := make([]string, len(l.Members))
	for i, m := range l.Members {
		names[i] = m.Name
	}
	return names
}

// Emails returns the members' emails, in loop order.
func (l PreferenceLoop) Emails() []string {
	emails := make([]string, len(l.Members))
	for i, m := range l.Members {
		emails[i] = m.Email
	}
	return emails
}
