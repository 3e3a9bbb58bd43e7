package application

import (
	"time"

	"github.com/ericfisherdev/gitscope/internal/domain/model"
)

// The contribution grid is 53 week columns by 7 day rows, aligned so the
// first column starts on a Sunday.
const (
	gridWeeks = 53
	gridDays  = gridWeeks * 7

	dateKeyFormat = "2006-01-02"
)

// BuildContributionGrid maps events onto a fixed calendar window ending on
// today. The window starts on the most recent Sunday on or before
// (today - 364 days) and spans exactly 371 consecutive days, every one of
// which is present in the returned map even when no events were supplied.
// Events outside the window are ignored; aggregation is order-independent.
func BuildContributionGrid(events []model.Event, today time.Time) map[string]int {
	today = truncateToDay(today)
	start := today.AddDate(0, 0, -364)
	start = start.AddDate(0, 0, -int(start.Weekday()))

	grid := make(map[string]int, gridDays)
	for i := 0; i < gridDays; i++ {
		grid[start.AddDate(0, 0, i).Format(dateKeyFormat)] = 0
	}

	// Event timestamps are truncated in today's location so event keys and
	// grid keys share one calendar.
	for _, event := range events {
		key := event.CreatedAt.In(today.Location()).Format(dateKeyFormat)
		if _, ok := grid[key]; ok {
			grid[key]++
		}
	}

	return grid
}

// IntensityLevel buckets a daily event count into the 0-4 heatmap scale:
// 0 events is level 0, 1 is level 1, 2-3 is level 2, 4-6 is level 3, and 7
// or more is level 4. The grid itself stores raw counts; this mapping is for
// the presentation layer.
func IntensityLevel(count int) int {
	switch {
	case count <= 0:
		return 0
	case count == 1:
		return 1
	case count <= 3:
		return 2
	case count <= 6:
		return 3
	default:
		return 4
	}
}

// truncateToDay returns t at midnight in its own location.
func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
