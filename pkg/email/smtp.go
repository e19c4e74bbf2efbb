package email

import (
	"context"
	"fmt"
	"net/mail"
	"net/smtp"
	"strings"
	"time"

	"github.com/google/uuid"
)

const providerSMTP = "smtp"

type sendMailFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

// SMTPSender delivers messages through an authenticated SMTP relay (Brevo by default).
type SMTPSender struct {
	host     string
	port     string
	username string
	password string
	sendMail sendMailFunc
}

func NewSMTPSender(host, port, username, password string) *SMTPSender {
	return &SMTPSender{
		host:     host,
		port:     port,
		username: username,
		password: password,
		sendMail: smtp.SendMail,
	}
}

// Send implements Sender. The generated Message-ID doubles as the receipt id.
func (s *SMTPSender) Send(ctx context.Context, msg *Message) (Receipt, error) {
	from, err := mail.ParseAddress(msg.From)
	if err != nil {
		return Receipt{}, &ProviderError{Provider: providerSMTP, Code: "invalid_from", Message: err.Error(), Err: err}
	}

	to := make([]string, 0, len(msg.To))
	for _, raw := range msg.To {
		addr, err := mail.ParseAddress(raw)
		if err != nil {
			return Receipt{}, &ProviderError{Provider: providerSMTP, Code: "invalid_to", Message: err.Error(), Err: err}
		}
		to = append(to, addr.Address)
	}

	messageID := fmt.Sprintf("%s@%s", uuid.NewString(), s.host)
	raw := buildMIME(msg, messageID, time.Now())

	auth := smtp.PlainAuth("", s.username, s.password, s.host)
	addr := fmt.Sprintf("%s:%s", s.host, s.port)

	// smtp.SendMail has no context support; the result channel is buffered so
	// the goroutine can finish after ctx expires.
	done := make(chan error, 1)
	go func() {
		done <- s.sendMail(addr, auth, from.Address, to, raw)
	}()

	select {
	case err := <-done:
		if err != nil {
			return Receipt{}, newProviderError(providerSMTP, err)
		}
		return Receipt{ID: messageID}, nil
	case <-ctx.Done():
		return Receipt{}, newProviderError(providerSMTP, ctx.Err())
	}
}

func buildMIME(msg *Message, messageID string, now time.Time) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", msg.From)
	fmt.Fprintf(&b, "To: %s\r\n", strings.Join(msg.To, ", "))
	if msg.ReplyTo != "" {
		fmt.Fprintf(&b, "Reply-To: %s\r\n", msg.ReplyTo)
	}
	fmt.Fprintf(&b, "Subject: %s\r\n", msg.Subject)
	fmt.Fprintf(&b, "Date: %s\r\n", now.Format(time.RFC1123Z))
	fmt.Fprintf(&b, "Message-ID: <%s>\r\n", messageID)
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=UTF-8\r\n")
	b.WriteString("\r\n")
	b.WriteString(strings.ReplaceAll(msg.Text, "\n", "\r\n"))
	return []byte(b.String())
}
