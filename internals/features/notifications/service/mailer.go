package service

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"
)

type Mailer interface {
	Send(ctx context.Context, toName, toEmail, subject, text string) error
}

const appName = "Videoach"

type SendgridMailer struct {
	client *sendgrid.Client
	from   *sgmail.Email
}

// NewMailer returns nil without an api key; notifications are then only stored and published.
func NewMailer(apiKey, fromEmail string) Mailer {
	if apiKey == "" {
		log.Println("[INFO] SENDGRID_API_KEY not set, notification emails disabled")
		return nil
	}
	return &SendgridMailer{
		client: sendgrid.NewSendClient(apiKey),
		from:   sgmail.NewEmail(appName, fromEmail),
	}
}

func buildMail(from *sgmail.Email, toName, toEmail, subject, text string) *sgmail.SGMailV3 {
	return sgmail.NewV3MailInit(from, "["+appName+"] "+subject, sgmail.NewEmail(toName, toEmail), sgmail.NewContent("text/plain", text))
}

func (m *SendgridMailer) Send(ctx context.Context, toName, toEmail, subject, text string) error {
	res, err := m.client.SendWithContext(ctx, buildMail(m.from, toName, toEmail, subject, text))
	if err != nil {
		return err
	}
	if res.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("sendgrid: status %d: %s", res.StatusCode, res.Body)
	}
	return nil
}
