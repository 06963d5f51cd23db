package utils

import "os"

var maskPII = os.Getenv("APP_ENV") == "production"

// MaskEmail hides the address in production logs. Login attempts are
// logged by email, which is personal data for every wedding guest.
func MaskEmail(email string) string {
	if !maskPII || email == "" {
		return email
	}
	return "***@***.***"
}

// MaskID shortens a document id in production logs.
func MaskID(id string) string {
	if !maskPII {
		return id
	}
	if len(id) <= 8 {
		return "***"
	}
	return id[:8] + "..."
}
