package v1

import (
	"time"

	"github.com/google/uuid"

	"github.com/medagenda/medagenda/pkg/timeutil"
)

func parseUUIDString(raw string) (uuid.UUID, error) {
	return uuid.Parse(raw)
}

// parseSlotDateTime combines a "YYYY-MM-DD" date and an "HH:MM" time
// into the slot start timestamp, in server local time.
func parseSlotDateTime(dateStr, timeStr string) (time.Time, error) {
	date, err := timeutil.ParseDate(dateStr)
	if err != nil {
		return time.Time{}, err
	}
	return timeutil.AtClock(date, timeStr)
}
