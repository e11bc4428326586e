package models

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/gomail.v2"
)

type EmailService struct {
	dialer *gomail.Dialer
}

func NewEmailService() (*EmailService, error) {
	smtpHost := os.Getenv("SMTP_HOST")
	smtpPort := os.Getenv("SMTP_PORT")
	smtpUser := os.Getenv("SMTP_USER")
	smtpPass := os.Getenv("SMTP_PASS")

	if smtpHost == "" || smtpUser == "" || smtpPass == "" {
		return nil, fmt.Errorf("SMTP configuration missing")
	}

	port, err := strconv.Atoi(smtpPort)
	if err != nil {
		port = 587
	}

	dialer := gomail.NewDialer(smtpHost, port, smtpUser, smtpPass)

	return &EmailService{dialer: dialer}, nil
}

// SendSaleNotification mails a summary of a sold cart to the shop inbox.
func (s *EmailService) SendSaleNotification(toEmail string, cart *Cart) error {
	m := gomail.NewMessage()
	m.SetHeader("From", os.Getenv("SMTP_FROM"))
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", fmt.Sprintf("Cart %s sold - El Huerto de las Rosas", cart.ID))

	var rows strings.Builder
	for _, item := range cart.Items {
		tags := make([]string, 0, len(item.SelectedTags))
		for _, t := range item.SelectedTags {
			tags = append(tags, t.TagName)
		}
		rows.WriteString(fmt.Sprintf(
			`<tr><td>%s</td><td>%s</td><td>%d</td><td>%.2f</td></tr>`,
			item.ProductName, strings.Join(tags, ", "), item.Quantity, item.TotalPrice,
		))
	}

	body := fmt.Sprintf(`
<!DOCTYPE html>
<html>
<head>
    <style>
        body { font-family: Arial, sans-serif; background-color: #f4f4f4; padding: 20px; }
        .container { max-width: 600px; margin: 0 auto; background-color: white; padding: 30px; border-radius: 10px; }
        .logo { font-size: 24px; font-weight: bold; color: #16a34a; text-align: center; }
        table { width: 100%%; border-collapse: collapse; margin: 20px 0; }
        td, th { border-bottom: 1px solid #e5e7eb; padding: 8px; text-align: left; }
        .total { font-weight: bold; color: #16a34a; }
    </style>
</head>
<body>
    <div class="container">
        <div class="logo">El Huerto de las Rosas</div>
        <h2>Cart sold</h2>
        <p>Cart <strong>%s</strong> was marked sold by <strong>%s</strong>.</p>
        <p>Customer: %s (%s)</p>
        <table>
            <tr><th>Product</th><th>Variant</th><th>Qty</th><th>Total</th></tr>
            %s
        </table>
        <p class="total">Total: %.2f (%d items)</p>
    </div>
</body>
</html>`,
		cart.ID, cart.SoldBy, cart.CustomerName, cart.CustomerPhone,
		rows.String(), cart.TotalPrice, cart.TotalItems,
	)

	m.SetBody("text/html", body)

	return s.dialer.DialAndSend(m)
}
