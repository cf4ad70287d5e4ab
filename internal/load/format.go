package load

import (
	"fmt"
	"time"
)

// DisplayLayout renders timestamps like "Jan 2, 2006, 03:04 PM".
const DisplayLayout = "Jan 2, 2006, 03:04 PM"

// InvalidDate is shown for timestamps that cannot be parsed.
const InvalidDate = "Invalid Date"

// Placeholder is shown when a nested reference is missing.
const Placeholder = "-"

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05Z0700",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseTimestamp accepts the timestamp shapes the API has been seen to return.
func ParseTimestamp(s string) (time.Time, error) {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("parse timestamp %q: unrecognised layout", s)
}

// FormatTimestamp renders s in loc using DisplayLayout.
func FormatTimestamp(s string, loc *time.Location) string {
	t, err := ParseTimestamp(s)
	if err != nil {
		return InvalidDate
	}
	if loc == nil {
		loc = time.Local
	}
	return t.In(loc).Format(DisplayLayout)
}

// CustomerLabel returns the first customer's name, or the placeholder.
func CustomerLabel(d LoadData) string {
	c, ok := d.PrimaryCustomer()
	if !ok {
		return Placeholder
	}
	return c.Name
}

// CustomerIDLabel returns "ID: n" for the first customer, or "".
func CustomerIDLabel(d LoadData) string {
	c, ok := d.PrimaryCustomer()
	if !ok {
		return ""
	}
	return fmt.Sprintf("ID: %d", c.ID)
}

func CarrierLabel(d LoadData) string {
	if d.HasCarrier() {
		return "Assigned"
	}
	return "Unassigned"
}

// ISOTimestamp renders t the way the create endpoint expects apptTime:
// UTC with millisecond precision. A nil time yields "".
func ISOTimestamp(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.UTC().Format("2006-01-02T15:04:05.000Z")
}
