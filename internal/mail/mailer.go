package mail

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"strings"

	"go.uber.org/zap"
	gomail "gopkg.in/gomail.v2"

	"github.com/sreeaadya/drycleaners/internal/config"
	"github.com/sreeaadya/drycleaners/internal/domain"
)

var confirmationTmpl = template.Must(template.New("confirmation").Parse(`
<div style="font-family:Arial,sans-serif;padding:15px;">
  <h2>Thank you for your order, {{.Greeting}}!</h2>
  <table border="1" cellspacing="0" cellpadding="8" style="border-collapse:collapse;width:100%;">
    <tr><th>Order ID</th><td>{{.Order.OrderID}}</td></tr>
    <tr><th>Service</th><td>{{.Order.Service}}</td></tr>
    <tr><th>Quantity</th><td>{{.Order.Quantity}}</td></tr>
    <tr><th>Total</th><td>&#8377;{{.Order.TotalPrice}}</td></tr>
    <tr><th>Status</th><td>{{.Order.Status}}</td></tr>
  </table>
  <p>We&rsquo;ll notify you once your clothes are ready for pickup or delivery.</p>
</div>
`))

// Mailer sends the order confirmation message over SMTP.
type Mailer struct {
	dialer *gomail.Dialer
	from   string
	logger *zap.Logger
}

func New(cfg config.SMTP, logger *zap.Logger) *Mailer {
	return &Mailer{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password),
		from:   cfg.From,
		logger: logger,
	}
}

func (m *Mailer) SendOrderConfirmation(ctx context.Context, to string, order domain.Order) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	body, err := renderConfirmation(to, order)
	if err != nil {
		return err
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", fmt.Sprintf("Order Confirmation - %s", order.OrderID))
	msg.SetBody("text/html", body)

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("send mail: %w", err)
	}
	m.logger.Info("confirmation mail sent",
		zap.String("to", to),
		zap.String("order_id", order.OrderID),
	)
	return nil
}

func renderConfirmation(to string, order domain.Order) (string, error) {
	greeting := to
	if i := strings.Index(to, "@"); i > 0 {
		greeting = to[:i]
	}
	var buf bytes.Buffer
	err := confirmationTmpl.Execute(&buf, struct {
		Greeting string
		Order    domain.Order
	}{greeting, order})
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}

// Noop stands in when SMTP is not configured.
type Noop struct{}

func (Noop) SendOrderConfirmation(context.Context, string, domain.Order) error { return nil }
