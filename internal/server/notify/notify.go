// Package notify tells account holders about security-relevant changes.
// Delivery is best effort: callers log failures and carry on.
package notify

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/foodorder/internal/logging"
	"github.com/dmitrijs2005/foodorder/internal/server/models"
)

type Notifier interface {
	PasswordChanged(ctx context.Context, u *models.User) error
	AccountCreated(ctx context.Context, u *models.User, createdBy string) error
}

// Message is a rendered plain-text notification.
type Message struct {
	To      string
	Subject string
	Body    string
}

func passwordChanged(u *models.User) Message {
	return Message{
		To:      u.Email,
		Subject: "Your password was changed",
		Body: fmt.Sprintf("Hello %s,\n\nThe password of your %s account was just changed. "+
			"All devices have been signed out.\n\nIf this was not you, contact an administrator immediately.\n",
			u.Username, u.Role),
	}
}

func accountCreated(u *models.User, createdBy string) Message {
	return Message{
		To:      u.Email,
		Subject: "Your account is ready",
		Body: fmt.Sprintf("Hello %s,\n\n%s created a %s account for you. "+
			"Sign in with the password you were given and change it right away.\n",
			u.Username, createdBy, u.Role),
	}
}

// LogNotifier writes notifications to the log instead of sending them.
type LogNotifier struct {
	logger logging.Logger
}

func NewLogNotifier(l logging.Logger) *LogNotifier {
	return &LogNotifier{logger: l}
}

func (n *LogNotifier) PasswordChanged(ctx context.Context, u *models.User) error {
	n.log(ctx, passwordChanged(u))
	return nil
}

func (n *LogNotifier) AccountCreated(ctx context.Context, u *models.User, createdBy string) error {
	n.log(ctx, accountCreated(u, createdBy))
	return nil
}

func (n *LogNotifier) log(ctx context.Context, m Message) {
	n.logger.Info(ctx, "notification", "to", m.To, "subject", m.Subject)
}
