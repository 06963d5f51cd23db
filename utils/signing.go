package utils

import (
	"crypto/hmac"
	"crypto/sha1"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"net/url"
	"strings"
)

// SignURL appends an HMAC-SHA1 signature over the URL's path and query,
// keyed with the web-safe-base64 decoded secret. This is the signing
// scheme the Street View Static API requires.
func SignURL(rawURL, secret string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("invalid url: %w", err)
	}

	key, err := base64.StdEncoding.DecodeString(removeWebSafe(secret))
	if err != nil {
		return "", fmt.Errorf("invalid signing secret: %w", err)
	}

	toSign := u.Path
	if u.RawQuery != "" {
		toSign += "?" + u.RawQuery
	}

	mac := hmac.New(sha1.New, key)
	mac.Write([]byte(toSign))
	signature := makeWebSafe(base64.StdEncoding.EncodeToString(mac.Sum(nil)))

	return u.String() + "&signature=" + signature, nil
}

// VerifyWebhookSignature checks a Typeform-style signature header
// ("sha256=" + base64 HMAC-SHA256 of the raw body).
func VerifyWebhookSignature(signature string, body []byte, secret string) bool {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	expected := "sha256=" + base64.StdEncoding.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(signature), []byte(expected))
}

func removeWebSafe(s string) string {
	return strings.NewReplacer("-", "+", "_", "/").Replace(s)
}

func makeWebSafe(s string) string {
	return strings.NewReplacer("+", "-", "/", "_").Replace(s)
}
