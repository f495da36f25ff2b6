package record

import (
	"fmt"
	"time"
)

// DateLayout is the wire format for record dates (day/month/year).
// Go's time parser accepts one or two digits for day and month here,
// matching what operators actually type.
const DateLayout = "02/01/2006"

// Kind tells whether a record opens or closes a condition period.
type Kind string

const (
	// KindStart opens a condition period for a vehicle.
	KindStart Kind = "Start"
	// KindEnd closes the currently open condition period.
	KindEnd Kind = "End"
)

// ParseKind maps user input onto a Kind. Only the exact labels are accepted.
func ParseKind(s string) (Kind, bool) {
	switch Kind(s) {
	case KindStart:
		return KindStart, true
	case KindEnd:
		return KindEnd, true
	}
	return "", false
}

// Record is one finalized condition-period entry. Records are immutable
// once built; there is no update or delete operation anywhere in the bot.
type Record struct {
	VehicleID   string `json:"vehicle_id" db:"vehicle_id"`
	Condition   string `json:"condition" db:"condition"`
	Kind        Kind   `json:"kind" db:"kind"`
	Date        string `json:"date" db:"entry_date"`
	Time        string `json:"time" db:"entry_time"`
	Meridiem    string `json:"meridiem" db:"meridiem"`
	Amount      int64  `json:"amount" db:"amount"`
	Driver1     string `json:"driver1" db:"driver1"`
	Driver2     string `json:"driver2" db:"driver2"`
	Note        string `json:"note" db:"note"`
	Tonnage     int    `json:"tonnage" db:"tonnage"`
	SubmittedBy string `json:"submitted_by" db:"submitted_by"`
}

// TimeLabel returns the combined time-of-day label, e.g. "2:30 PM".
func (r Record) TimeLabel() string {
	return r.Time + " " + r.Meridiem
}

// Key is the storage identity of a record. Two submissions with the same
// vehicle, date and time label collide, and the later one wins.
func (r Record) Key() string {
	return fmt.Sprintf("%s_%s_%s", r.VehicleID, r.Date, r.TimeLabel())
}

// ParseDate validates a wire-format date as a real calendar date.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}

// MoreRecent reports whether a should be considered more recent than b.
// Later calendar dates win. Dates that do not parse sort first. Same-day
// ties fall back to comparing the combined time labels as plain strings,
// which misorders across the 12-hour boundary ("10:15 AM" sorts above
// "9:00 AM"). Reporting depends on this historical ordering, so it is
// kept as-is.
func MoreRecent(a, b Record) bool {
	da, errA := ParseDate(a.Date)
	db, errB := ParseDate(b.Date)
	switch {
	case errA != nil && errB != nil:
		return a.TimeLabel() > b.TimeLabel()
	case errA != nil:
		return false
	case errB != nil:
		return true
	}
	if !da.Equal(db) {
		return da.After(db)
	}
	return a.TimeLabel() > b.TimeLabel()
}
