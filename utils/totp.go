package utils

import (
	"github.com/pquerna/otp/totp"
)

// GenerateTOTPSecret provisions a TOTP secret for the admin account and
// returns the secret plus its otpauth enrollment URL.
func GenerateTOTPSecret(email string) (string, string, error) {
	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      "Mike & Holly Wedding",
		AccountName: email,
	})
	if err != nil {
		return "", "", err
	}

	return key.Secret(), key.URL(), nil
}

// VerifyTOTP checks a 6-digit code against the admin's TOTP secret.
func VerifyTOTP(secret, code string) bool {
	return totp.Validate(code, secret)
}
