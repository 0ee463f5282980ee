package entity

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// AvailabilityWindow is the fixed daily template of bookable time labels.
// Every lawyer shares the same template; availability for a date is this
// window minus the reserved labels.
var AvailabilityWindow = []string{
	"09:00", "10:00", "11:00", "12:00",
	"13:00", "14:00", "15:00", "16:00", "17:00",
}

// Reservation is one committed claim on a lawyer+date+time slot.
// SlotKey is the identity of record: the unique index on it is the
// only concurrency control in the whole booking path.
type Reservation struct {
	BaseSimple
	SlotKey     string    `db:"slot_key"`
	BookingRef  string    `db:"booking_ref"`
	LawyerEmail string    `db:"lawyer_email"`
	LawyerName  string    `db:"lawyer_name"`
	Date        string    `db:"date"` // YYYY-MM-DD
	TimeLabel   string    `db:"time_label"`
	UserID      uuid.UUID `db:"user_id"`
	UserEmail   string    `db:"user_email"`
}

// IsPast reports whether the reserved slot is behind the given instant.
func (r *Reservation) IsPast(now time.Time) bool {
	t, err := time.ParseInLocation("2006-01-02 15:04", r.Date+" "+NormalizeTimeLabel(r.TimeLabel), now.Location())
	if err != nil {
		return false
	}
	return t.Before(now)
}

// NormalizeTimeLabel maps a time-of-day label to its canonical 24-hour
// form. Historical data stored afternoon slots as "1:00".."7:00"; those
// single-digit hours always meant PM, so they fold onto 13:00..19:00.
// Labels already in HH:MM form pass through zero-padded.
func NormalizeTimeLabel(label string) string {
	parts := strings.SplitN(strings.TrimSpace(label), ":", 2)
	if len(parts) != 2 {
		return label
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil {
		return label
	}
	if len(parts[0]) == 1 && hour >= 1 && hour <= 7 {
		hour += 12
	}
	return fmt.Sprintf("%02d:%s", hour, parts[1])
}

// InAvailabilityWindow reports whether the (normalized) label is one of
// the bookable slots.
func InAvailabilityWindow(label string) bool {
	normalized := NormalizeTimeLabel(label)
	for _, t := range AvailabilityWindow {
		if t == normalized {
			return true
		}
	}
	return false
}

// BuildSlotKey derives the globally unique key for one bookable slot.
// Identical inputs always produce the same key, and the key embeds the
// normalized time label so a legacy "1:00" and a canonical "13:00"
// cannot claim the same wall-clock slot twice. Inputs are expected to
// be trimmed/lower-cased by the caller; an empty lawyer identifier or
// date would produce collidable keys, so derivation fails instead.
func BuildSlotKey(lawyerEmail, date, timeLabel string) (string, error) {
	if strings.TrimSpace(lawyerEmail) == "" {
		return "", fmt.Errorf("build slot key: lawyer identifier is empty")
	}
	if strings.TrimSpace(date) == "" {
		return "", fmt.Errorf("build slot key: date is empty")
	}
	normalized := NormalizeTimeLabel(timeLabel)
	if !InAvailabilityWindow(normalized) {
		return "", fmt.Errorf("build slot key: time %q outside availability window", timeLabel)
	}
	return fmt.Sprintf("%s_%s_%s", lawyerEmail, date, normalized), nil
}
