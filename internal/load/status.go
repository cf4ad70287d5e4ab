package load

import (
	"strings"

	"github.com/agnivade/levenshtein"
)

// Status is the lifecycle state of a load.
type Status string

const (
	StatusTendered  Status = "Tendered"
	StatusCovered   Status = "Covered"
	StatusInTransit Status = "In Transit"
	StatusDelivered Status = "Delivered"
)

// Statuses lists the options in the order they are offered to the user.
func Statuses() []Status {
	return []Status{StatusTendered, StatusCovered, StatusInTransit, StatusDelivered}
}

// ParseStatus accepts an exact status value.
func ParseStatus(s string) (Status, bool) {
	for _, st := range Statuses() {
		if string(st) == s {
			return st, true
		}
	}
	return "", false
}

// SuggestStatus returns the option closest to the input, ignoring case. It is
// a completion aid; blank input has no suggestion.
func SuggestStatus(input string) (Status, bool) {
	needle := strings.ToLower(strings.TrimSpace(input))
	if needle == "" {
		return "", false
	}
	best := Status("")
	bestDist := -1
	for _, st := range Statuses() {
		candidate := strings.ToLower(string(st))
		if strings.HasPrefix(candidate, needle) {
			return st, true
		}
		d := levenshtein.ComputeDistance(needle, candidate)
		if bestDist < 0 || d < bestDist {
			best, bestDist = st, d
		}
	}
	// Beyond half the input length the match is noise.
	if bestDist > max(2, len(needle)/2) {
		return "", false
	}
	return best, true
}

// Severity classifies a status for the list tag color.
type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// SeverityOf maps Covered to success and Tendered to warning. Every other
// value, In Transit and Delivered included, is info.
func SeverityOf(status string) Severity {
	switch Status(status) {
	case StatusCovered:
		return SeveritySuccess
	case StatusTendered:
		return SeverityWarning
	default:
		return SeverityInfo
	}
}
