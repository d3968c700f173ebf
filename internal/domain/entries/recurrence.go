package entries

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

const maxInstallments = 360

var installmentSuffix = regexp.MustCompile(`\s*\(\d+/\d+\)\s*$`)

// ParseDate reads the calendar components of a YYYY-MM-DD value, ignoring any time part,
// so the stored date never shifts with the server timezone.
func ParseDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if len(value) > len(DateLayout) && (value[len(DateLayout)] == 'T' || value[len(DateLayout)] == ' ') {
		value = value[:len(DateLayout)]
	}
	parsed, err := time.Parse(DateLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", value)
	}
	return parsed, nil
}

func FormatDate(value time.Time) string {
	return value.Format(DateLayout)
}

// AddMonthsClamped moves base by months calendar months, keeping the day of month
// unless the target month is shorter, in which case its last day is used.
func AddMonthsClamped(base time.Time, months int) time.Time {
	year, month, day := base.Date()
	first := time.Date(year, month+time.Month(months), 1, 0, 0, 0, 0, time.UTC)
	if last := daysInMonth(first.Year(), first.Month()); day > last {
		day = last
	}
	return time.Date(first.Year(), first.Month(), day, 0, 0, 0, 0, time.UTC)
}

func daysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// StripInstallmentSuffix removes a trailing " (i/n)" marker from a description.
func StripInstallmentSuffix(description string) string {
	return strings.TrimSpace(installmentSuffix.ReplaceAllString(description, ""))
}

// fixedMonthlyCount is the number of months from base through December of now's year, at least one.
func fixedMonthlyCount(base, now time.Time) int {
	months := (now.Year()-base.Year())*12 + int(time.December-base.Month()) + 1
	if months < 1 {
		return 1
	}
	return months
}

// Expand turns one submitted entry into the rows of its recurrence batch.
// template carries the validated fields with the base date; rows are returned without ids.
func Expand(template Entry, count int, groupID string, now time.Time) []Entry {
	switch template.RecurrenceMode {
	case RecurrenceInstallment:
		rows := make([]Entry, 0, count)
		total := count
		for i := 1; i <= count; i++ {
			row := template
			row.Description = fmt.Sprintf("%s (%d/%d)", template.Description, i, count)
			row.EffectiveDate = AddMonthsClamped(template.EffectiveDate, i-1)
			row.InstallmentIndex = i
			row.InstallmentCount = &total
			row.GroupID = &groupID
			rows = append(rows, row)
		}
		return rows
	case RecurrenceFixedMonthly:
		months := fixedMonthlyCount(template.EffectiveDate, now)
		rows := make([]Entry, 0, months)
		for offset := 0; offset < months; offset++ {
			row := template
			row.EffectiveDate = AddMonthsClamped(template.EffectiveDate, offset)
			row.InstallmentIndex = 1
			row.InstallmentCount = nil
			row.GroupID = &groupID
			rows = append(rows, row)
		}
		return rows
	default:
		row := template
		row.RecurrenceMode = RecurrenceNone
		row.InstallmentIndex = 1
		row.InstallmentCount = nil
		row.GroupID = nil
		return []Entry{row}
	}
}
