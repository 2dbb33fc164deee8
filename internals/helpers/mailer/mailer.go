// Package mailer: pengiriman email notifikasi lewat SendGrid, atau console
// (log zap) bila API key tidak dikonfigurasi.
package mailer

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"sync"

	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"
	"go.uber.org/zap"
)

type Address struct {
	Name  string
	Email string
}

type Message struct {
	To      []Address
	Subject string
	Text    string
	HTML    string
}

func (m Message) valid() bool {
	return len(m.To) > 0 && (strings.TrimSpace(m.Text) != "" || strings.TrimSpace(m.HTML) != "")
}

type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

type Options struct {
	APIKey    string
	AppName   string
	FromName  string
	FromEmail string
}

// New: SendGrid bila APIKey terisi, selain itu console.
func New(o Options, log *zap.Logger) Mailer {
	if strings.TrimSpace(o.APIKey) == "" {
		return NewConsole(o.AppName, log)
	}
	return NewSendgrid(o, log)
}

/* ============ SendGrid ============ */

type sendgridMailer struct {
	client     *sendgrid.Client
	from       *sgmail.Email
	subjPrefix string
	log        *zap.Logger
}

func NewSendgrid(o Options, log *zap.Logger) Mailer {
	name := o.FromName
	if name == "" {
		name = o.AppName
	}
	return &sendgridMailer{
		client:     sendgrid.NewSendClient(o.APIKey),
		from:       sgmail.NewEmail(name, o.FromEmail),
		subjPrefix: subjectPrefix(o.AppName),
		log:        log.Named("sendgrid"),
	}
}

func (s *sendgridMailer) prepare(msg Message) *sgmail.SGMailV3 {
	p := sgmail.NewPersonalization()
	p.Subject = s.subjPrefix + msg.Subject
	for _, to := range msg.To {
		p.AddTos(sgmail.NewEmail(to.Name, to.Email))
	}

	m := sgmail.NewV3Mail()
	m.SetFrom(s.from)
	m.AddPersonalizations(p)
	if msg.Text != "" {
		m.AddContent(sgmail.NewContent("text/plain", msg.Text))
	}
	if msg.HTML != "" {
		m.AddContent(sgmail.NewContent("text/html", msg.HTML))
	}
	return m
}

func (s *sendgridMailer) Send(ctx context.Context, msg Message) error {
	if !msg.valid() {
		return nil
	}
	res, err := s.client.SendWithContext(ctx, s.prepare(msg))
	if err != nil {
		return fmt.Errorf("sendgrid: %w", err)
	}
	if res.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("sendgrid: status %d: %s", res.StatusCode, res.Body)
	}
	s.log.Debug("email sent", zap.Int("recipients", len(msg.To)), zap.String("subject", msg.Subject))
	return nil
}

/* ============ Console ============ */

// Console menulis email ke log; Sent() dipakai di test.
type Console struct {
	subjPrefix string
	log        *zap.Logger

	mu   sync.Mutex
	sent []Message
}

func NewConsole(appName string, log *zap.Logger) *Console {
	if log == nil {
		log = zap.NewNop()
	}
	return &Console{subjPrefix: subjectPrefix(appName), log: log.Named("mail")}
}

func (c *Console) Send(_ context.Context, msg Message) error {
	if !msg.valid() {
		return nil
	}
	to := make([]string, 0, len(msg.To))
	for _, a := range msg.To {
		to = append(to, a.Email)
	}
	c.log.Info("email (console)",
		zap.Strings("to", to),
		zap.String("subject", c.subjPrefix+msg.Subject),
		zap.String("text", msg.Text),
	)
	c.mu.Lock()
	c.sent = append(c.sent, msg)
	c.mu.Unlock()
	return nil
}

func (c *Console) Sent() []Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Message(nil), c.sent...)
}

func subjectPrefix(app string) string {
	if app = strings.TrimSpace(app); app == "" {
		return ""
	}
	return "[" + app + "] "
}
