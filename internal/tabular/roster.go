package tabular

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/classgroups/groupsched/internal/apperr"
)

var requiredRosterColumns = []string{"Student ID", "Name", "Email"}

// RosterEntry is one row of the roster input. Extra columns are ignored.
type RosterEntry struct {
	StudentID string
	Name      string
	Email     string
}

// ParseRoster reads the roster CSV per §6/§4.1. A roster lacking the
// required identity columns fails fatally with apperr.InvalidRoster.
func ParseRoster(r io.Reader) ([]RosterEntry, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	headerRow, err := reader.Read()
	if err != nil {
		if err == io.EOF {
			return nil, apperr.New(apperr.InvalidRoster, "roster input is empty")
		}
		return nil, fmt.Errorf("reading roster header: %w", err)
	}
	h := newHeader(headerRow)
	if missing := h.has(requiredRosterColumns...); len(missing) > 0 {
		return nil, apperr.New(apperr.InvalidRoster,
			fmt.Sprintf("roster is missing required column(s): %s", strings.Join(missing, ", ")))
	}

	var entries []RosterEntry
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading roster row: %w", err)
		}
		entries = append(entries, RosterEntry{
			StudentID: h.col(record, "Student ID"),
			Name:      h.col(record, "Name"),
			Email:     strings.ToLower(strings.TrimSpace(h.col(record, "Email"))),
		})
	}
	return entries, nil
}
