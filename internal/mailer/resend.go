package mailer

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/resend/resend-go/v2"

	autherror "github.com/wicaksonoadi/magiclink-service/internal/errors"
)

// ResendMailer delivers magic-link emails through the Resend API. In dev
// mode the link is logged instead of sent.
type ResendMailer struct {
	client  *resend.Client
	from    string
	appName string
	isDev   bool
}

func NewResend(apiKey, from, appName string, isDev bool) *ResendMailer {
	var client *resend.Client
	if apiKey != "" && !isDev {
		client = resend.NewClient(apiKey)
	}

	return &ResendMailer{
		client:  client,
		from:    from,
		appName: appName,
		isDev:   isDev,
	}
}

func (m *ResendMailer) SendMagicLink(ctx context.Context, to, link string) error {
	subject := fmt.Sprintf("Sign in to %s", m.appName)
	text, html := magicLinkTemplate(link, m.appName)

	if m.isDev {
		slog.Info("email sent (dev mode)", "type", "magic_link", "to", to, "url", link)
		return nil
	}

	if m.client == nil {
		return autherror.ErrMailNotConfigured
	}

	params := &resend.SendEmailRequest{
		From:    m.from,
		To:      []string{to},
		Subject: subject,
		Text:    text,
		Html:    html,
	}

	_, err := m.client.Emails.SendWithContext(ctx, params)
	if err == nil {
		slog.Info("email sent", "type", "magic_link", "to", to)
	}
	return err
}

func magicLinkTemplate(link, appName string) (text, html string) {
	text = fmt.Sprintf(`Sign in to %s

Click the link below to sign in. It can be used once and expires in 15 minutes.

%s

If you did not request this email, you can safely ignore it.`, appName, link)

	html = fmt.Sprintf(`<p>Click the link below to sign in to %s. It can be used once and expires in 15 minutes.</p>
<p><a href="%s">Sign in</a></p>
<p>If you did not request this email, you can safely ignore it.</p>`, appName, link)

	return text, html
}
