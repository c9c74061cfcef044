package email

import (
	"bytes"
	"fmt"
	"html/template"
	"net/smtp"
	"net/url"
)

// EmailConfig holds SMTP configuration
type EmailConfig struct {
	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	FromName     string
	FromEmail    string
	FrontendURL  string
}

// EmailService handles email sending
type EmailService struct {
	config EmailConfig
}

// NewEmailService creates a new email service
func NewEmailService(config EmailConfig) *EmailService {
	return &EmailService{config: config}
}

// QuoteEmailData carries the fields rendered into the quote email
type QuoteEmailData struct {
	ShopName    string
	QuoteNumber string
	TotalTTC    string
	ValidUntil  string
	QuoteURL    string
}

// SendQuoteEmail notifies a shop that a quote has been sent to them
func (s *EmailService) SendQuoteEmail(toEmail string, data QuoteEmailData) error {
	if data.QuoteURL == "" {
		data.QuoteURL = fmt.Sprintf("%s/quotes?number=%s", s.config.FrontendURL, url.QueryEscape(data.QuoteNumber))
	}

	htmlContent, err := renderTemplate("quote_sent", quoteSentTemplate, data)
	if err != nil {
		return fmt.Errorf("failed to render email template: %w", err)
	}

	subject := fmt.Sprintf("Votre devis %s - Primeur Direct", data.QuoteNumber)
	message := s.buildHTMLEmail(toEmail, subject, htmlContent)

	return s.sendEmail(toEmail, message)
}

// SendPasswordResetEmail sends a password reset email
func (s *EmailService) SendPasswordResetEmail(toEmail, token string) error {
	resetURL := fmt.Sprintf("%s/reset-password?token=%s&email=%s",
		s.config.FrontendURL,
		url.QueryEscape(token),
		url.QueryEscape(toEmail),
	)

	data := struct {
		Email    string
		ResetURL string
	}{Email: toEmail, ResetURL: resetURL}

	htmlContent, err := renderTemplate("password_reset", passwordResetTemplate, data)
	if err != nil {
		return fmt.Errorf("failed to render email template: %w", err)
	}

	subject := "Réinitialisation de votre mot de passe - Primeur Direct"
	message := s.buildHTMLEmail(toEmail, subject, htmlContent)

	return s.sendEmail(toEmail, message)
}

// sendEmail sends an email using SMTP
func (s *EmailService) sendEmail(to string, message []byte) error {
	addr := fmt.Sprintf("%s:%d", s.config.SMTPHost, s.config.SMTPPort)
	auth := smtp.PlainAuth("", s.config.SMTPUsername, s.config.SMTPPassword, s.config.SMTPHost)

	if err := smtp.SendMail(addr, auth, s.config.FromEmail, []string{to}, message); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}

// buildHTMLEmail builds an HTML email message
func (s *EmailService) buildHTMLEmail(to, subject, htmlBody string) []byte {
	headers := fmt.Sprintf(
		"From: %s <%s>\r\n"+
			"To: %s\r\n"+
			"Subject: %s\r\n"+
			"MIME-Version: 1.0\r\n"+
			"Content-Type: text/html; charset=\"UTF-8\"\r\n"+
			"\r\n",
		s.config.FromName,
		s.config.FromEmail,
		to,
		subject,
	)

	return []byte(headers + htmlBody)
}

func renderTemplate(name, body string, data any) (string, error) {
	tmpl, err := template.New(name).Parse(body)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}

	return buf.String(), nil
}

// quoteSentTemplate is the HTML template for quote notification emails
const quoteSentTemplate = `
<!DOCTYPE html>
<html lang="fr">
<head>
    <meta charset="UTF-8">
    <title>Votre devis</title>
</head>
<body style="margin: 0; padding: 0; font-family: 'Segoe UI', Tahoma, Geneva, Verdana, sans-serif; background-color: #f4f7fa;">
    <table role="presentation" style="max-width: 600px; margin: 0 auto; background-color: #ffffff; border-radius: 12px;">
        <tr>
            <td style="background: #2f855a; padding: 32px 30px; text-align: center;">
                <h1 style="color: #ffffff; margin: 0; font-size: 26px;">Primeur Direct</h1>
            </td>
        </tr>
        <tr>
            <td style="padding: 32px 30px;">
                <h2 style="color: #1a1a2e; margin: 0 0 20px 0; font-size: 22px;">Devis {{.QuoteNumber}}</h2>
                <p style="color: #4a5568; font-size: 16px; line-height: 1.6;">
                    Bonjour {{.ShopName}},
                </p>
                <p style="color: #4a5568; font-size: 16px; line-height: 1.6;">
                    Votre devis <strong>{{.QuoteNumber}}</strong> d'un montant de
                    <strong>{{.TotalTTC}} € TTC</strong> est disponible.
                    Il est valable jusqu'au <strong>{{.ValidUntil}}</strong>.
                </p>
                <table role="presentation" style="margin: 24px auto;">
                    <tr>
                        <td style="background: #2f855a; border-radius: 8px;">
                            <a href="{{.QuoteURL}}" style="display: inline-block; padding: 14px 28px; color: #ffffff; text-decoration: none; font-size: 16px;">
                                Consulter le devis
                            </a>
                        </td>
                    </tr>
                </table>
            </td>
        </tr>
        <tr>
            <td style="background-color: #f8fafc; padding: 24px; text-align: center; border-top: 1px solid #e2e8f0;">
                <p style="color: #a0aec0; font-size: 13px; margin: 0;">
                    © 2026 Primeur Direct. Tous droits réservés.
                </p>
            </td>
        </tr>
    </table>
</body>
</html>
`

// passwordResetTemplate is the HTML template for password reset emails
const passwordResetTemplate = `
<!DOCTYPE html>
<html lang="fr">
<head>
    <meta charset="UTF-8">
    <title>Réinitialisation du mot de passe</title>
</head>
<body style="margin: 0; padding: 0; font-family: 'Segoe UI', Tahoma, Geneva, Verdana, sans-serif; background-color: #f4f7fa;">
    <table role="presentation" style="max-width: 600px; margin: 0 auto; background-color: #ffffff; border-radius: 12px;">
        <tr>
            <td style="background: #2f855a; padding: 32px 30px; text-align: center;">
                <h1 style="color: #ffffff; margin: 0; font-size: 26px;">Primeur Direct</h1>
            </td>
        </tr>
        <tr>
            <td style="padding: 32px 30px;">
                <h2 style="color: #1a1a2e; margin: 0 0 20px 0; font-size: 22px;">Réinitialiser votre mot de passe</h2>
                <p style="color: #4a5568; font-size: 16px; line-height: 1.6;">
                    Nous avons reçu une demande de réinitialisation du mot de passe
                    associé à <strong>{{.Email}}</strong>. Ce lien expire dans <strong>1 heure</strong>.
                </p>
                <table role="presentation" style="margin: 24px auto;">
                    <tr>
                        <td style="background: #2f855a; border-radius: 8px;">
                            <a href="{{.ResetURL}}" style="display: inline-block; padding: 14px 28px; color: #ffffff; text-decoration: none; font-size: 16px;">
                                Réinitialiser
                            </a>
                        </td>
                    </tr>
                </table>
                <p style="color: #718096; font-size: 14px; line-height: 1.6;">
                    Si vous n'êtes pas à l'origine de cette demande, ignorez cet email.
                </p>
            </td>
        </tr>
    </table>
</body>
</html>
`
