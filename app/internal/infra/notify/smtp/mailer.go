package smtp

import (
	"bytes"
	"context"
	"fmt"
	"net/smtp"
	"strings"
	"text/template"

	domcheckout "example.com/shareeghor/app/internal/domain/checkout"
	domorder "example.com/shareeghor/app/internal/domain/order"
)

type sendFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

// Mailer sends order confirmations through a plain SMTP relay such as
// Mailpit.
type Mailer struct {
	addr string
	from string
	auth smtp.Auth
	send sendFunc
}

type Option func(*Mailer)

// WithPlainAuth authenticates against host with username and password.
func WithPlainAuth(username, password, host string) Option {
	return func(m *Mailer) {
		if username != "" {
			m.auth = smtp.PlainAuth("", username, password, host)
		}
	}
}

func NewMailer(addr, from string, opts ...Option) *Mailer {
	m := &Mailer{addr: addr, from: from, send: smtp.SendMail}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

var confirmationTmpl = template.Must(template.New("confirmation").Funcs(template.FuncMap{
	"price": domcheckout.FormatPrice,
}).Parse(`Dear {{.ShippingInfo.FullName}},

Thank you for shopping with ShareeGhor. Your order has been placed.

Tracking ID: {{.TrackingID}}
Estimated delivery: {{.EstimatedDelivery}}

{{range .Items}}- {{.Name}} ({{.SelectedSize}}, {{.SelectedColor}}) x {{.Quantity}}: {{price .Subtotal}}
{{end}}
Subtotal: {{price .Subtotal}}
Delivery: {{if eq .DeliveryCharge 0.0}}FREE{{else}}{{price .DeliveryCharge}}{{end}}
Total: {{price .Total}}

Payment: {{if eq .PaymentMethod "cod"}}Cash on delivery{{else}}Card{{end}}
Deliver to: {{.ShippingInfo.Address}}, {{.ShippingInfo.City}}
`))

func (m *Mailer) SendOrderConfirmation(ctx context.Context, order *domorder.Order) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	to := strings.TrimSpace(order.ShippingInfo.Email)
	if to == "" {
		return fmt.Errorf("order %s has no email address", order.TrackingID)
	}

	var body bytes.Buffer
	if err := confirmationTmpl.Execute(&body, order); err != nil {
		return fmt.Errorf("render confirmation: %w", err)
	}

	var msg bytes.Buffer
	fmt.Fprintf(&msg, "From: %s\r\n", m.from)
	fmt.Fprintf(&msg, "To: %s\r\n", to)
	fmt.Fprintf(&msg, "Subject: Order confirmed - %s\r\n", order.TrackingID)
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/plain; charset=UTF-8\r\n")
	msg.WriteString("\r\n")
	msg.WriteString(strings.ReplaceAll(body.String(), "\n", "\r\n"))

	if err := m.send(m.addr, m.auth, m.from, []string{to}, msg.Bytes()); err != nil {
		return fmt.Errorf("send confirmation for %s: %w", order.TrackingID, err)
	}
	return nil
}
