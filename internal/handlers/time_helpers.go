package handlers

import (
	"fmt"
	"time"

	"github.com/agendalivre/agenda-api/internal/timezone"
)

const dateLayout = "2006-01-02"

// parseDate interprets a YYYY-MM-DD string as midnight in the application
// timezone. Slot math is day-local, so the location matters.
func parseDate(value, tz string) (time.Time, error) {
	d, err := time.ParseInLocation(dateLayout, value, timezone.Location(tz))
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", value)
	}
	return d, nil
}
