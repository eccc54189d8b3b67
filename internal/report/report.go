// Package report renders the plain-text run summary: aggregates,
// unassigned participants, and detected preference loops, in the fixed
// section order of §6.
package report

import (
	"fmt"
	"io"

	"github.com/classgroups/groupsched/internal/model"
)

// Write renders the report for one run to w, per §6's fixed section order.
func Write(w io.Writer, groups []*model.Group, unassigned []*model.Student, loops []model.PreferenceLoop, totalStudents int) error {
	size3, size4 := 0, 0
	for _, g := range groups {
		switch g.Size() {
		case 3:
			size3++
		case 4:
			size4++
		}
	}

	inLoop := make(map[string]bool)
	for _, l := range loops {
		for _, m := range l.Members {
			inLoop[m.Email] = true
		}
	}

	lines := []string{
		fmt.Sprintf("Total students processed: %d", totalStudents),
		fmt.Sprintf("Groups formed: %d", len(groups)),
		fmt.Sprintf("Size-3 groups: %d", size3),
		fmt.Sprintf("Size-4 groups: %d", size4),
		fmt.Sprintf("Students in preference loops: %d", len(inLoop)),
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}

	if _, err := fmt.Fprintln(w, "Unassigned students:"); err != nil {
		return err
	}
	for _, s := range unassigned {
		if _, err := fmt.Fprintf(w, "  %s <%s>\n", s.Name, s.Email); err != nil {
			return err
		}
	}

	if _, err := fmt.Fprintf(w, "Detected %d preference loop(s) involving %d students:\n", len(loops), len(inLoop)); err != nil {
		return err
	}
	for _, l := range loops {
		names := l.Names()
		chain := names[0]
		for _, n := range names[1:] {
			chain += " -> " + n
		}
		chain += " -> " + names[0]
		if _, err := fmt.Fprintln(w, "  "+chain); err != nil {
			return err
		}
	}

	return nil
}
