package email

import (
	"bytes"
	"fmt"
	"html/template"
	"net/smtp"
	"time"
)

// EmailConfig holds SMTP configuration
type EmailConfig struct {
	SMTPHost      string
	SMTPPort      int
	SMTPUsername  string
	SMTPPassword  string
	FromName      string
	FromEmail     string
	OperatorEmail string
}

// EmailService handles email sending
type EmailService struct {
	config EmailConfig
}

// NewEmailService creates a new email service
func NewEmailService(config EmailConfig) *EmailService {
	return &EmailService{config: config}
}

// SendOrderConfirmation sends the payment-received confirmation to the
// customer.
func (s *EmailService) SendOrderConfirmation(toEmail, customerName, reference string, total float64) error {
	htmlContent, err := s.renderOrderConfirmation(customerName, reference, total)
	if err != nil {
		return fmt.Errorf("failed to render email template: %w", err)
	}

	subject := fmt.Sprintf("Order confirmed - %s", reference)
	message := s.buildHTMLEmail(toEmail, subject, htmlContent)

	return s.sendEmail(toEmail, message)
}

// SendExportFailureAlert notifies the operator that an accounting export
// failed and needs a manual retry. Customers never see this.
func (s *EmailService) SendExportFailureAlert(reference string, cause error) error {
	if s.config.OperatorEmail == "" {
		return fmt.Errorf("no operator email configured")
	}

	body := fmt.Sprintf(
		"<p>The accounting export for quote <strong>%s</strong> failed at %s.</p>"+
			"<p>Error: %s</p>"+
			"<p>The quote is still marked as not sent and can be re-exported from the back office.</p>",
		template.HTMLEscapeString(reference),
		time.Now().UTC().Format(time.RFC3339),
		template.HTMLEscapeString(cause.Error()),
	)

	subject := fmt.Sprintf("Accounting export failed - %s", reference)
	message := s.buildHTMLEmail(s.config.OperatorEmail, subject, body)

	return s.sendEmail(s.config.OperatorEmail, message)
}

var orderConfirmationTmpl = template.Must(template.New("order_confirmation").Parse(`
<html>
  <body style="font-family: Arial, sans-serif; color: #333;">
    <h2>Thank you for your order{{if .Name}}, {{.Name}}{{end}}!</h2>
    <p>We received your payment for order <strong>{{.Reference}}</strong>.</p>
    <p>Total paid: <strong>&euro; {{printf "%.2f" .Total}}</strong> (incl. VAT)</p>
    <p>We will deliver your order fresh on the agreed date.</p>
  </body>
</html>
`))

func (s *EmailService) renderOrderConfirmation(name, reference string, total float64) (string, error) {
	var buf bytes.Buffer
	err := orderConfirmationTmpl.Execute(&buf, struct {
		Name      string
		Reference string
		Total     float64
	}{name, reference, total})
	if err != nil {
		return "", err
	}
	return buf.String(), nil
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
