package bookmeta

import (
	"fmt"
	"math"
)

const (
	avgWordsPerPage   = 275
	avgWordsPerMinute = 250
)

// ReadingTimeUnknown is emitted when no page count is available.
const ReadingTimeUnknown = "Unknown"

// EstimateReadingTime maps a page count to a human-readable duration.
// A minutes remainder that rounds up to a full hour carries into the hour
// figure, so 218 pages yields "4h" rather than "3h 60m".
func EstimateReadingTime(pageCount int) string {
	if pageCount <= 0 {
		return ReadingTimeUnknown
	}

	totalMinutes := float64(pageCount*avgWordsPerPage) / avgWordsPerMinute
	if totalMinutes < 60 {
		return fmt.Sprintf("%d minutes", int(math.Round(totalMinutes)))
	}

	hours := int(totalMinutes / 60)
	minutes := int(math.Round(math.Mod(totalMinutes, 60)))
	if minutes == 60 {
		hours++
		minutes = 0
	}
	if minutes > 0 {
		return fmt.Sprintf("%dh %dm", hours, minutes)
	}
	return fmt.Sprintf("%dh", hours)
}
