package tabular

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/classgroups/groupsched/internal/apperr"
	"github.com/classgroups/groupsched/internal/model"
)

var assignmentColumns = []string{
	"Group Number", "Email Address", "What is your name?",
	"What is your student ID?", "What is your github.com username?",
}

// WriteAssignment writes the final assignment table: one row per
// participant, sorted by group number then email, per §6.
func WriteAssignment(w io.Writer, groups []*model.Group) error {
	rows := make([]*model.Group, len(groups))
	copy(rows, groups)
	sort.Slice(rows, func(i, j int) bool { return rows[i].Number < rows[j].Number })

	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(assignmentColumns); err != nil {
		return err
	}
	for _, g := range rows {
		members := make([]*model.Student, len(g.Members))
		copy(members, g.Members)
		sort.Slice(members, func(i, j int) bool { return members[i].Email < members[j].Email })
		for _, s := range members {
			record := []string{
				strconv.Itoa(g.Number),
				s.Email,
				s.Name,
				s.StudentID,
				s.GitHub,
			}
			if err := cw.Write(record); err != nil {
				return err
			}
		}
	}
	return cw.Error()
}

// ReadAssignment reads a previously written assignment table back into a
// map of email to group number, for the "score" command's re-evaluation of
// an existing assignment against the current survey/roster/weights.
func ReadAssignment(r io.Reader) (map[string]int, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	headerRow, err := reader.Read()
	if err != nil {
		if err == io.EOF {
			return nil, apperr.New(apperr.InvalidRoster, "assignment input is empty")
		}
		return nil, fmt.Errorf("reading assignment header: %w", err)
	}
	h := newHeader(headerRow)
	if missing := h.has("Group Number", "Email Address"); len(missing) > 0 {
		return nil, apperr.New(apperr.InvalidRoster,
			fmt.Sprintf("assignment is missing required column(s): %s", strings.Join(missing, ", ")))
	}

	groupOf := make(map[string]int)
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading assignment row: %w", err)
		}
		email := strings.ToLower(strings.TrimSpace(h.col(record, "Email Address")))
		n, err := strconv.Atoi(h.col(record, "Group Number"))
		if err != nil {
			return nil, fmt.Errorf("invalid group number for %s: %w", email, err)
		}
		groupOf[email] = n
	}
	return groupOf, nil
}
