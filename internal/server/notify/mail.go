package notify

import (
	"context"
	"time"

	"github.com/dmitrijs2005/foodorder/internal/server/models"
	"github.com/wneessen/go-mail"
)

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	Timeout  time.Duration
}

// MailNotifier sends notifications over SMTP.
type MailNotifier struct {
	cfg  SMTPConfig
	send func(ctx context.Context, msg *mail.Msg) error
}

func NewMailNotifier(cfg SMTPConfig) *MailNotifier {
	if cfg.Timeout == 0 {
		cfg.Timeout = 10 * time.Second
	}
	n := &MailNotifier{cfg: cfg}
	n.send = n.dialAndSend
	return n
}

func (n *MailNotifier) PasswordChanged(ctx context.Context, u *models.User) error {
	return n.deliver(ctx, passwordChanged(u))
}

func (n *MailNotifier) AccountCreated(ctx context.Context, u *models.User, createdBy string) error {
	return n.deliver(ctx, accountCreated(u, createdBy))
}

func (n *MailNotifier) deliver(ctx context.Context, m Message) error {
	msg, err := buildMsg(n.cfg.From, m)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, n.cfg.Timeout)
	defer cancel()
	return n.send(ctx, msg)
}

func buildMsg(from string, m Message) (*mail.Msg, error) {
	msg := mail.NewMsg()
	if err := msg.From(from); err != nil {
		return nil, err
	}
	if err := msg.To(m.To); err != nil {
		return nil, err
	}
	msg.Subject(m.Subject)
	msg.SetBodyString(mail.TypeTextPlain, m.Body)
	return msg, nil
}

func (n *MailNotifier) dialAndSend(ctx context.Context, msg *mail.Msg) error {
	opts := []mail.Option{
		mail.WithPort(n.cfg.Port),
		mail.WithTLSPolicy(mail.TLSOpportunistic),
		mail.WithTimeout(n.cfg.Timeout),
	}
	if n.cfg.Username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(n.cfg.Username),
			mail.WithPassword(n.cfg.Password),
		)
	}

	client, err := mail.NewClient(n.cfg.Host, opts...)
	if err != nil {
		return err
	}
	return client.DialAndSendWithContext(ctx, msg)
}
