// Package model provides value objects for parameter validation.
package model

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"
)

// Category tags the kind of a project.
type Category string

// Known categories. Other strings are accepted and rendered with a
// fallback icon.
const (
	CategoryWeb     Category = "web"
	CategoryMobile  Category = "mobile"
	CategoryDesktop Category = "desktop"
	CategoryIoT     Category = "iot"
	CategoryTools   Category = "tools"
)

// Categories lists the known categories in display order.
var Categories = []Category{CategoryWeb, CategoryMobile, CategoryDesktop, CategoryIoT, CategoryTools}

// IsKnown reports whether c is one of the known categories.
func (c Category) IsKnown() bool {
	return slices.Contains(Categories, c)
}

// Status is the progress of a project.
type Status string

// Known statuses.
const (
	StatusCompleted  Status = "completed"
	StatusInProgress Status = "in-progress"
	StatusPlanned    Status = "planned"
)

// Statuses lists the known statuses in display order.
var Statuses = []Status{StatusCompleted, StatusInProgress, StatusPlanned}

// IsKnown reports whether s is one of the known statuses.
func (s Status) IsKnown() bool {
	return slices.Contains(Statuses, s)
}

// ParseTechnologies splits a comma-separated technology list.
// Entries are trimmed and empty entries dropped; order and duplicates
// are kept as entered.
func ParseTechnologies(s string) []string {
	if strings.TrimSpace(s) == "" {
		return []string{}
	}
	return cleanTechnologies(strings.Split(s, ","))
}

// ParseProjectID parses a project id from its decimal form.
func ParseProjectID(s string) (int64, error) {
	if s == "" {
		return 0, fmt.Errorf("project id is required")
	}
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid project id: %q", s)
	}
	return id, nil
}

// DateRange represents a date range value object.
type DateRange struct {
	from time.Time
	to   time.Time
}

// NewDateRange creates a date range from optional ISO8601 bounds.
// Missing bounds default to the latest 53 weeks ending at now.
func NewDateRange(fromStr, toStr string, now time.Time) (*DateRange, error) {
	defaultFrom, defaultTo := defaultDateRange(now)

	fromTime := defaultFrom
	if fromStr != "" {
		t, err := parseDateTime(fromStr)
		if err != nil {
			return nil, fmt.Errorf("invalid from parameter. Use ISO8601 format (YYYY-MM-DD or YYYY-MM-DDThh:mm:ssZ)")
		}
		fromTime = t
	}

	toTime := defaultTo
	if toStr != "" {
		t, err := parseDateTime(toStr)
		if err != nil {
			return nil, fmt.Errorf("invalid to parameter. Use ISO8601 format (YYYY-MM-DD or YYYY-MM-DDThh:mm:ssZ)")
		}
		toTime = t
	}

	fromTime = normalizeToBeginOfDay(fromTime)
	toTime = normalizeToEndOfDay(toTime)
	if toTime.Before(fromTime) {
		return nil, fmt.Errorf("from must not be after to")
	}

	return &DateRange{from: fromTime, to: toTime}, nil
}

// From returns the start date.
func (d *DateRange) From() time.Time {
	return d.from
}

// To returns the end date.
func (d *DateRange) To() time.Time {
	return d.to
}

// defaultDateRange covers the latest week plus 52 weeks.
func defaultDateRange(now time.Time) (time.Time, time.Time) {
	weekday := int(now.Weekday())
	latestWeekStart := now.AddDate(0, 0, -weekday)
	return latestWeekStart.AddDate(0, 0, -52*7), now
}

func normalizeToBeginOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func normalizeToEndOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 23, 59, 59, 999999999, t.Location())
}

// parseDateTime accepts RFC3339 or a bare date.
func parseDateTime(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("unable to parse date")
}
