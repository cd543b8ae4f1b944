package normalize

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrUnparseable is returned when a timestamp matches none of the accepted layouts.
	ErrUnparseable = errors.New("timestamp matches no accepted layout")

	// ErrUnknownTimezone is returned when a timezone name does not resolve
	// against the IANA timezone database.
	ErrUnknownTimezone = errors.New("unknown timezone")
)

// OutputLayout is the fixed serialization layout for normalized timestamps,
// matching the EXIF DateTime convention.
const OutputLayout = "2006:01:02 15:04:05"

// DateOnly is the date-only layout shared between text candidate extraction
// and parsing, so both sides agree on what counts as a timestamp.
const DateOnly = "2006-01-02"

// DateOrder selects how ambiguous slash-separated dates are interpreted.
type DateOrder string

const (
	// OrderMDY tries MM/DD/YYYY before DD/MM/YYYY.
	OrderMDY DateOrder = "mdy"
	// OrderDMY tries DD/MM/YYYY before MM/DD/YYYY.
	OrderDMY DateOrder = "dmy"
)

// Options configures Normalize.
type Options struct {
	// DateOrder controls the relative priority of the two ambiguous
	// slash-separated layouts. Empty means OrderMDY.
	DateOrder DateOrder
}

// DefaultOptions returns the default normalization options.
func DefaultOptions() Options {
	return Options{DateOrder: OrderMDY}
}

// Layouts returns the ordered list of accepted input layouts.
//
// The first layout that parses the whole input wins. With OrderMDY a date
// like "03/04/2023" is read as March 4; with OrderDMY as April 3. The date
// cannot disambiguate itself, so the order is explicit configuration.
func (o Options) Layouts() []string {
	mdy := "01/02/2006 15:04:05"
	dmy := "02/01/2006 15:04:05"
	if o.DateOrder == OrderDMY {
		mdy, dmy = dmy, mdy
	}
	return []string{
		"2006:01:02 15:04:05",
		"2006-01-02 15:04:05",
		"2006/01/02 15:04:05",
		mdy,
		dmy,
		DateOnly,
	}
}

// Normalize parses timestamp as civil time in sourceTZ, converts it to
// targetTZ, and returns it in OutputLayout.
//
// Timezone names are IANA identifiers (e.g. "UTC", "America/New_York").
// A date-only input is interpreted as midnight in sourceTZ.
func Normalize(timestamp, sourceTZ, targetTZ string, opts Options) (string, error) {
	srcLoc, err := loadLocation(sourceTZ)
	if err != nil {
		return "", err
	}
	dstLoc, err := loadLocation(targetTZ)
	if err != nil {
		return "", err
	}

	t, err := parse(timestamp, srcLoc, opts)
	if err != nil {
		return "", err
	}

	return t.In(dstLoc).Format(OutputLayout), nil
}

// parse attempts each accepted layout in order against the whole input.
func parse(timestamp string, loc *time.Location, opts Options) (time.Time, error) {
	for _, layout := range opts.Layouts() {
		t, err := time.ParseInLocation(layout, timestamp, loc)
		if err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrUnparseable, timestamp)
}

func loadLocation(name string) (*time.Location, error) {
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTimezone, name)
	}
	return loc, nil
}

// IsDateToken reports whether token is a bare date in the shared date-only
// grammar. Text candidate extraction uses this so that every token it
// accepts is also accepted by Normalize.
func IsDateToken(token string) bool {
	if len(token) != len(DateOnly) {
		return false
	}
	_, err := time.Parse(DateOnly, token)
	return err == nil
}
