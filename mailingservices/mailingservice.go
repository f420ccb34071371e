package mailingservices

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/mailgun/mailgun-go/v4"

	"github.com/ecotrackhq/ecotrack/config"
)

const sendTimeout = time.Second * 10

// Mailer sends transactional mail. Kept as an interface so tests can swap in
// a no-op implementation.
type Mailer interface {
	SendResetPassword(userEmail, link string) (string, error)
}

type Mailgun struct {
	Client *mailgun.MailgunImpl
	Config *config.Config
}

func NewMailgunService(conf *config.Config) *Mailgun {
	m := &Mailgun{Config: conf}
	m.Init()
	return m
}

func (m *Mailgun) Init() {
	m.Client = mailgun.NewMailgun(m.Config.MgDomain, m.Config.MailgunApiKey)
}

// SendResetPassword mails the password reset link to the user.
func (m *Mailgun) SendResetPassword(userEmail, link string) (string, error) {
	subject := "Reset your password"
	body := fmt.Sprintf("You requested a password reset. Follow this link to choose a new password: %s\n\nThe link expires in one hour. If you did not request this, ignore this mail.", link)

	message := m.Client.NewMessage(m.Config.MgEmailFrom, subject, body, userEmail)

	ctx, cancel := context.WithTimeout(context.Background(), sendTimeout)
	defer cancel()

	_, id, err := m.Client.Send(ctx, message)
	if err != nil {
		log.Printf("could not send reset password mail to %s: %v", userEmail, err)
		return "", err
	}
	return id, nil
}
