package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
)

// EmailService delivers guest sign-in links through the Resend HTTP API.
type EmailService struct {
	apiKey      string
	fromEmail   string
	frontendURL string
}

func NewEmailService(apiKey, fromEmail, frontendURL string) *EmailService {
	return &EmailService{
		apiKey:      apiKey,
		fromEmail:   fromEmail,
		frontendURL: frontendURL,
	}
}

// SendSignInLink emails a one-time sign-in link for the guest pages.
func (s *EmailService) SendSignInLink(to, token string) error {
	if s.apiKey == "" {
		return fmt.Errorf("RESEND_API_KEY not configured")
	}

	signInURL := fmt.Sprintf("%s/guest/login?token=%s", s.frontendURL, token)

	htmlBody := fmt.Sprintf(`
<!DOCTYPE html>
<html>
<body style="font-family: sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
    <h2>Mike &amp; Holly's Wedding</h2>
    <p>Use the link below to sign in and manage your RSVP, guests, and lodging.</p>
    <p><a href="%s" style="display: inline-block; background: #667eea; color: white; padding: 15px 30px; text-decoration: none; border-radius: 8px;">Sign In</a></p>
    <p style="color: #888;">This link expires in 15 minutes. If you didn't request it, you can ignore this email.</p>
</body>
</html>
	`, signInURL)

	payload := map[string]interface{}{
		"from":    fmt.Sprintf("Mike & Holly <%s>", s.fromEmail),
		"to":      []string{to},
		"subject": "Your wedding sign-in link",
		"html":    htmlBody,
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequest("POST", "https://api.resend.com/emails", bytes.NewBuffer(jsonData))
	if err != nil {
		return err
	}

	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", s.apiKey))
	req.Header.Set("Content-Type", "application/json")

	client := &http.Client{}
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("failed to send email: status %d", resp.StatusCode)
	}

	return nil
}
