package email

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/resend/resend-go/v2"
)

const providerResend = "resend"

// ResendSender implements Sender using the Resend API.
type ResendSender struct {
	client *resend.Client
}

// NewResendSender creates a Resend sender. A nil httpClient uses http.DefaultClient.
func NewResendSender(apiKey string, httpClient *http.Client) *ResendSender {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &ResendSender{
		client: resend.NewCustomClient(httpClient, apiKey),
	}
}

// SetBaseURL points the client at a different API host.
func (s *ResendSender) SetBaseURL(raw string) error {
	if !strings.HasSuffix(raw, "/") {
		raw += "/"
	}
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("resend: invalid base url: %w", err)
	}
	s.client.BaseURL = u
	return nil
}

// Send implements Sender.
func (s *ResendSender) Send(ctx context.Context, msg *Message) (Receipt, error) {
	req := &resend.SendEmailRequest{
		From:    msg.From,
		To:      msg.To,
		Subject: msg.Subject,
		Text:    msg.Text,
		ReplyTo: msg.ReplyTo,
	}

	sent, err := s.client.Emails.SendWithContext(ctx, req)
	if err != nil {
		return Receipt{}, newProviderError(providerResend, err)
	}
	if sent == nil {
		return Receipt{}, &ProviderError{Provider: providerResend, Code: "empty_response", Message: "no response body"}
	}

	return Receipt{ID: sent.Id}, nil
}
