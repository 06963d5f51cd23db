package utils

import "strings"

// SplitFullName splits a free-form name into first and last parts. Middle
// words fold into the first name; a single word is used for both halves so
// an ingested record never has an empty name field.
func SplitFullName(full string) (first, last string) {
	parts := strings.Fields(strings.TrimSpace(full))
	switch len(parts) {
	case 0:
		return "", ""
	case 1:
		return parts[0], parts[0]
	default:
		return strings.Join(parts[:len(parts)-1], " "), parts[len(parts)-1]
	}
}
