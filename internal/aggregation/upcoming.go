package aggregation

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/noah-isme/campus-portal-api/internal/models"
)

// UpcomingClass is a schedule entry resolved to an absolute start time.
type UpcomingClass struct {
	models.ScheduleEntry
	StartsAt time.Time
}

// ParseSessionTime combines a YYYY-MM-DD date with an "hh:mm am/pm" or "HH:mm" clock in loc.
func ParseSessionTime(date, clock string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.UTC
	}
	day, err := time.ParseInLocation("2006-01-02", strings.TrimSpace(date), loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date %q: %w", date, err)
	}

	c := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(clock), " ", ""))
	meridiem := ""
	switch {
	case strings.HasSuffix(c, "am"):
		meridiem = "am"
	case strings.HasSuffix(c, "pm"):
		meridiem = "pm"
	}
	c = strings.TrimSuffix(c, meridiem)

	parts := strings.Split(c, ":")
	if len(parts) != 2 {
		return time.Time{}, fmt.Errorf("parse time %q: expected hh:mm", clock)
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil {
		return time.Time{}, fmt.Errorf("parse time %q: %w", clock, err)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return time.Time{}, fmt.Errorf("parse time %q: invalid minute", clock)
	}

	switch meridiem {
	case "":
		if hour < 0 || hour > 23 {
			return time.Time{}, fmt.Errorf("parse time %q: invalid hour", clock)
		}
	default:
		if hour < 1 || hour > 12 {
			return time.Time{}, fmt.Errorf("parse time %q: invalid hour", clock)
		}
		hour %= 12
		if meridiem == "pm" {
			hour += 12
		}
	}

	return time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, loc), nil
}

// Upcoming returns the two soonest sessions strictly after now, in ascending order.
// Entries whose date or time cannot be parsed are skipped. Missing slots are nil.
func Upcoming(entries []models.ScheduleEntry, now time.Time, loc *time.Location) (next, secondNext *UpcomingClass) {
	upcoming := make([]UpcomingClass, 0, len(entries))
	for _, entry := range entries {
		startsAt, err := ParseSessionTime(entry.Date, entry.Time, loc)
		if err != nil {
			continue
		}
		if !startsAt.After(now) {
			continue
		}
		upcoming = append(upcoming, UpcomingClass{ScheduleEntry: entry, StartsAt: startsAt})
	}

	sort.SliceStable(upcoming, func(i, j int) bool {
		return upcoming[i].StartsAt.Before(upcoming[j].StartsAt)
	})

	if len(upcoming) > 0 {
		next = &upcoming[0]
	}
	if len(upcoming) > 1 {
		secondNext = &upcoming[1]
	}
	return next, secondNext
}
