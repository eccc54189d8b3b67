package tabular

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/classgroups/groupsched/internal/apperr"
	"github.com/classgroups/groupsched/internal/model"
)

var requiredSurveyColumns = []string{
	"Student ID", "Name", "Email", "GitHub Username",
	"Preferred Partner Email", "Ruby Skill", "HTML/CSS Skill", "JavaScript Skill",
	"Meeting Preference", "Available Times", "Section",
}

var validate = validator.New()

// SurveyRow is one successfully parsed, but not yet deduplicated, survey
// response, carrying its input order so duplicate coalescing can keep the
// most recently submitted row.
type SurveyRow struct {
	Student *model.Student
	Order   int
}

// ParseSurvey reads the survey CSV per §6's column rules. Row-level
// validation failures (out-of-range skills, missing identity fields) are
// dropped with a warning (apperr.InvalidSurveyRow) rather than aborting the
// run; a missing required column is a structural, fatal error.
func ParseSurvey(r io.Reader) ([]SurveyRow, []model.Warning, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	headerRow, err := reader.Read()
	if err != nil {
		if err == io.EOF {
			return nil, nil, apperr.New(apperr.InvalidSurveyRow, "survey input is empty")
		}
		return nil, nil, fmt.Errorf("reading survey header: %w", err)
	}
	h := newHeader(headerRow)
	if missing := h.has(requiredSurveyColumns...); len(missing) > 0 {
		return nil, nil, apperr.New(apperr.InvalidSurveyRow,
			fmt.Sprintf("survey is missing required column(s): %s", strings.Join(missing, ", ")))
	}

	var rows []SurveyRow
	var warnings []model.Warning
	order := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("reading survey row %d: %w", order+1, err)
		}
		order++

		student, parseErr := parseSurveyRecord(h, record)
		if parseErr != nil {
			warnings = append(warnings, model.Warning{
				Kind:    string(apperr.InvalidSurveyRow),
				Message: fmt.Sprintf("row %d dropped: %v", order, parseErr),
			})
			continue
		}
		rows = append(rows, SurveyRow{Student: student, Order: order})
	}
	return rows, warnings, nil
}

func parseSurveyRecord(h header, record []string) (*model.Student, error) {
	email := strings.ToLower(strings.TrimSpace(h.col(record, "Email")))
	s := &model.Student{
		StudentID:             h.col(record, "Student ID"),
		Name:                  h.col(record, "Name"),
		Email:                 email,
		GitHub:                h.col(record, "GitHub Username"),
		PreferredPartnerEmail: strings.ToLower(strings.TrimSpace(h.col(record, "Preferred Partner Email"))),
		MeetingPreference:     model.ParseMeetingMode(h.col(record, "Meeting Preference")),
		Section:               h.col(record, "Section"),
	}

	var err error
	if s.RubySkill, err = parseSkill(h.col(record, "Ruby Skill")); err != nil {
		return nil, fmt.Errorf("ruby skill: %w", err)
	}
	if s.HTMLSkill, err = parseSkill(h.col(record, "HTML/CSS Skill")); err != nil {
		return nil, fmt.Errorf("html/css skill: %w", err)
	}
	if s.JSSkill, err = parseSkill(h.col(record, "JavaScript Skill")); err != nil {
		return nil, fmt.Errorf("javascript skill: %w", err)
	}

	if raw := h.col(record, "Available Times"); raw != "" {
		s.Availability = parseAvailability(raw)
	}

	if err := validate.Struct(s); err != nil {
		return nil, err
	}
	return s, nil
}

func parseSkill(raw string) (int, error) {
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%q is not an integer", raw)
	}
	if n < 1 || n > 5 {
		return 0, fmt.Errorf("%d is out of range [1,5]", n)
	}
	return n, nil
}

// parseAvailability splits a delimiter-separated list of free-form slot
// tokens into a set, comparing tokens as case-sensitive strings per §6.
func parseAvailability(raw string) map[string]struct{} {
	fields := strings.FieldsFunc(raw, func(r rune) bool {
		return r == ',' || r == ';' || r == '|'
	})
	set := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		f = strings.TrimSpace(f)
		if f != "" {
			set[f] = struct{}{}
		}
	}
	return set
}

// CoalesceDuplicates keeps the most recently submitted row (highest Order)
// for each email, emitting a DuplicateEmail warning per collision, per
// §4.1's duplicate-survey-row rule.
func CoalesceDuplicates(rows []SurveyRow) ([]*model.Student, []model.Warning) {
	latest := make(map[string]SurveyRow)
	var warnings []model.Warning
	for _, row := range rows {
		if existing, ok := latest[row.Student.Email]; ok {
			warnings = append(warnings, model.Warning{
				Kind:    string(apperr.DuplicateEmail),
				Message: fmt.Sprintf("duplicate survey row for %s: keeping submission #%d over #%d", row.Student.Email, row.Order, existing.Order),
			})
			if row.Order < existing.Order {
				continue
			}
		}
		latest[row.Student.Email] = row
	}
	deduped := make([]SurveyRow, 0, len(latest))
	for _, row := range latest {
		deduped = append(deduped, row)
	}
	sort.Slice(deduped, func(i, j int) bool { return deduped[i].Order < deduped[j].Order })

	students := make([]*model.Student, 0, len(deduped))
	for _, row := range deduped {
		students = append(students, row.Student)
	}
	return students, warnings
}
