package form

import (
	"regexp"
	"strconv"

	"github.com/Awindblowsggggg/Telegrambot/internal/record"
)

var (
	// timePattern is a shape check only: 1-2 digit hour, exactly two
	// minute digits. There is no semantic hour/minute range check; the
	// meridiem answer that follows is what gives the value meaning.
	timePattern = regexp.MustCompile(`^\d{1,2}:\d{2}$`)

	digitsPattern = regexp.MustCompile(`^\d+$`)
)

// validDate accepts only real calendar dates in day/month/year form,
// so "31/02/2025" is refused even though it matches the shape.
func validDate(s string) bool {
	_, err := record.ParseDate(s)
	return err == nil
}

func validTime(s string) bool {
	return timePattern.MatchString(s)
}

// parseAmount accepts non-negative integers written with digits only.
// Leading zeros are fine: "000" is zero. Values above math.MaxInt64 are
// refused and re-prompted like any other bad answer; the stored amount
// is an int64, which caps an otherwise unbounded field.
func parseAmount(s string) (int64, bool) {
	if !digitsPattern.MatchString(s) {
		return 0, false
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// parseTonnage accepts whole tonnages between 1 and 100 inclusive.
func parseTonnage(s string) (int, bool) {
	if !digitsPattern.MatchString(s) {
		return 0, false
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 || n > 100 {
		return 0, false
	}
	return n, true
}
