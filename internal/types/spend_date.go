package types

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// SpendDate is the calendar day a spend occurred on.
//
// The canonical form is DD-MM-YY, with the year meaning 2000 + YY. There is no
// time of day.
type SpendDate string

var ErrSpendDateFormat = errors.New("the date must be in DD-MM-YY format")

var (
	legacyLong  = regexp.MustCompile(`^([0-9]{2})/([0-9]{2})/([0-9]{4})$`)
	legacyShort = regexp.MustCompile(`^([0-9]{2})/([0-9]{2})/([0-9]{2})$`)
	isoDate     = regexp.MustCompile(`^([0-9]{4})-([0-9]{2})-([0-9]{2})$`)
)

// NewSpendDate returns the SpendDate for the day of t.
func NewSpendDate(t time.Time) SpendDate {
	return SpendDate(fmt.Sprintf("%02d-%02d-%02d", t.Day(), int(t.Month()), t.Year()%100))
}

// Parts splits the date into its day, month and year components as they are
// written. ok is false unless there are exactly three components of two digits each.
func (d SpendDate) Parts() (day, month, year string, ok bool) {
	parts := strings.Split(string(d), "-")
	if len(parts) != 3 {
		return "", "", "", false
	}

	for _, p := range parts {
		if len(p) != 2 || p[0] < '0' || p[0] > '9' || p[1] < '0' || p[1] > '9' {
			return "", "", "", false
		}
	}

	return parts[0], parts[1], parts[2], true
}

// Time returns midnight UTC of the day the date represents.
func (d SpendDate) Time() (time.Time, error) {
	day, month, year, ok := d.Parts()
	if !ok {
		return time.Time{}, fmt.Errorf("%w: %q", ErrSpendDateFormat, string(d))
	}

	// Parts guarantees two digits, so these conversions cannot fail
	dd, _ := strconv.Atoi(day)
	mm, _ := strconv.Atoi(month)
	yy, _ := strconv.Atoi(year)

	t := time.Date(2000+yy, time.Month(mm), dd, 0, 0, 0, 0, time.UTC)

	// time.Date normalizes out of range values, e.g. 31-02 becomes 02-03.
	// Those are not valid dates.
	if t.Day() != dd || int(t.Month()) != mm {
		return time.Time{}, fmt.Errorf("%w: %q is not a calendar date", ErrSpendDateFormat, string(d))
	}

	return t, nil
}

// Valid reports whether the date is a canonical, existing calendar date.
func (d SpendDate) Valid() bool {
	_, err := d.Time()
	return err == nil
}

// NormalizeSpendDate converts the accepted input formats to the canonical DD-MM-YY form.
//
// Besides DD-MM-YY, the legacy forms DD/MM/YYYY and DD/MM/YY as well as YYYY-MM-DD
// are accepted. Years outside of 2000-2099 cannot be represented and are rejected.
func NormalizeSpendDate(s string) (SpendDate, error) {
	s = strings.TrimSpace(s)

	var day, month, year string
	switch {
	case SpendDate(s).Valid():
		return SpendDate(s), nil
	case legacyLong.MatchString(s):
		m := legacyLong.FindStringSubmatch(s)
		if !strings.HasPrefix(m[3], "20") {
			return "", fmt.Errorf("%w: year of %q is outside of 2000-2099", ErrSpendDateFormat, s)
		}
		day, month, year = m[1], m[2], m[3][2:]
	case legacyShort.MatchString(s):
		m := legacyShort.FindStringSubmatch(s)
		day, month, year = m[1], m[2], m[3]
	case isoDate.MatchString(s):
		m := isoDate.FindStringSubmatch(s)
		if !strings.HasPrefix(m[1], "20") {
			return "", fmt.Errorf("%w: year of %q is outside of 2000-2099", ErrSpendDateFormat, s)
		}
		day, month, year = m[3], m[2], m[1][2:]
	default:
		return "", fmt.Errorf("%w: %q", ErrSpendDateFormat, s)
	}

	d := SpendDate(fmt.Sprintf("%s-%s-%s", day, month, year))
	if _, err := d.Time(); err != nil {
		return "", err
	}

	return d, nil
}
