package utils

import (
	"bytes"
	"fmt"
	"html/template"
	"net/smtp"
	"os"
)

var orderConfirmationTmpl = template.Must(template.New("orderConfirmation").Parse(`
<html>
  <body>
    <h2>Thank you for shopping with Virat Collections!</h2>
    <p>Your order <strong>#{{.OrderID}}</strong> has been placed.</p>
    <p>Order total: ₹{{.Rupees}}.{{printf "%02d" .Paise}}</p>
    <p>You can track it any time from your orders page.</p>
  </body>
</html>`))

type orderConfirmationData struct {
	OrderID uint
	Rupees  int64
	Paise   int64
}

// SendOrderConfirmation emails the customer after a successful checkout.
// Amount is in the smallest currency unit.
func SendOrderConfirmation(emailTo string, orderID uint, amount int64) error {
	data := orderConfirmationData{
		OrderID: orderID,
		Rupees:  amount / 100,
		Paise:   amount % 100,
	}

	var body bytes.Buffer
	if err := orderConfirmationTmpl.Execute(&body, data); err != nil {
		return fmt.Errorf("template execution error: %w", err)
	}

	message := fmt.Sprintf(
		"From: %s\r\nSubject: %s\r\nMIME-version: 1.0;\r\nContent-Type: text/html; charset=\"UTF-8\";\r\n\r\n%s",
		os.Getenv("FROM_EMAIL"),
		fmt.Sprintf("Your Virat Collections order #%d", orderID),
		body.String(),
	)

	auth := smtp.PlainAuth(
		"",
		os.Getenv("FROM_EMAIL"),
		os.Getenv("FROM_EMAIL_PASSWORD"),
		os.Getenv("FROM_EMAIL_SMTP"),
	)

	if err := smtp.SendMail(os.Getenv("SMTP_ADDRESS"), auth, os.Getenv("FROM_EMAIL"), []string{emailTo}, []byte(message)); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}
