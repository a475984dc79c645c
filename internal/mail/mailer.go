// Package mail renders and sends the order confirmation email. Delivery is
// fire-once, best-effort: a failure is logged by the caller and never retried.
package mail

import (
	"bytes"
	"fmt"
	"strings"

	html "github.com/gofiber/template/html/v2"
	gomail "gopkg.in/gomail.v2"

	"pahnawa/internal/domain"
)

type Sender interface {
	SendOrderConfirmation(o domain.Order) error
}

type SMTPConfig struct {
	Host       string
	Port       int
	User       string
	Pass       string
	FromName   string
	AdminEmail string
}

type Mailer struct {
	cfg    SMTPConfig
	engine *html.Engine
}

func New(cfg SMTPConfig, templateDir string) (*Mailer, error) {
	engine := html.New(templateDir, ".html")
	engine.AddFunc("inr", FormatINR)
	if err := engine.Load(); err != nil {
		return nil, fmt.Errorf("load mail templates: %w", err)
	}
	return &Mailer{cfg: cfg, engine: engine}, nil
}

func (m *Mailer) SendOrderConfirmation(o domain.Order) error {
	var buf bytes.Buffer
	if err := m.engine.Render(&buf, "order_email", map[string]any{
		"Order":      o,
		"ShortID":    ShortOrderID(o.ID),
		"Items":      o.Items,
		"Shipping":   o.Shipping,
		"TotalPaise": o.TotalPaise,
	}); err != nil {
		return fmt.Errorf("render confirmation: %w", err)
	}

	msg := gomail.NewMessage()
	msg.SetAddressHeader("From", m.cfg.User, m.cfg.FromName)
	msg.SetHeader("To", o.Shipping.Email)
	if m.cfg.AdminEmail != "" {
		msg.SetHeader("Bcc", m.cfg.AdminEmail) // admin copy
	}
	msg.SetHeader("Subject", fmt.Sprintf("Order Confirmed #%s", ShortOrderID(o.ID)))
	msg.SetBody("text/html", buf.String())

	d := gomail.NewDialer(m.cfg.Host, m.cfg.Port, m.cfg.User, m.cfg.Pass)
	return d.DialAndSend(msg)
}

// ShortOrderID is the customer-facing order reference.
func ShortOrderID(id string) string {
	id = strings.ToUpper(id)
	if len(id) > 8 {
		id = id[:8]
	}
	return id
}

// FormatINR renders integer paise as rupees with Indian digit grouping
// (12,34,567). Fractional paise only appear when nonzero.
func FormatINR(paise int64) string {
	neg := paise < 0
	if neg {
		paise = -paise
	}
	rupees := paise / 100
	rem := paise % 100

	s := fmt.Sprintf("%d", rupees)
	if len(s) > 3 {
		head, tail := s[:len(s)-3], s[len(s)-3:]
		var parts []string
		for len(head) > 2 {
			parts = append([]string{head[len(head)-2:]}, parts...)
			head = head[:len(head)-2]
		}
		if head != "" {
			parts = append([]string{head}, parts...)
		}
		s = strings.Join(parts, ",") + "," + tail
	}
	if rem != 0 {
		s = fmt.Sprintf("%s.%02d", s, rem)
	}
	if neg {
		s = "-" + s
	}
	return s
}
