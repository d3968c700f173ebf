package handler

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"finance-tracker-go/internal/domain/entries"
	"finance-tracker-go/internal/domain/reports"
)

func parseIntParam(value string, fallback int) (int, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return fallback, nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil || parsed < 0 {
		return 0, fmt.Errorf("invalid int")
	}
	return parsed, nil
}

func parseBoolParam(value string, fallback bool) (bool, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return fallback, nil
	}
	return strconv.ParseBool(value)
}

// parsePeriod reads the required month and year query parameters.
func parsePeriod(query url.Values) (reports.Period, error) {
	month, err := parseIntParam(query.Get("month"), 0)
	if err != nil || month < 1 || month > 12 {
		return reports.Period{}, fmt.Errorf("month must be between 1 and 12")
	}
	year, err := parseIntParam(query.Get("year"), 0)
	if err != nil || year < 1 || year > 9999 {
		return reports.Period{}, fmt.Errorf("year must have four digits")
	}
	return reports.Period{Month: month, Year: year}, nil
}

// parseKind maps the plural resource segment used in paths to an entry kind.
func parseKind(value string) (entries.Kind, bool) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "expenses", "expense":
		return entries.KindExpense, true
	case "incomes", "income":
		return entries.KindIncome, true
	}
	return "", false
}
