package email

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"text/template"
)

// Identity holds the fixed envelope of every contact email.
type Identity struct {
	From    string
	To      string
	Subject string
}

// ContactEmailData holds the data for contact form emails
type ContactEmailData struct {
	SenderName  string
	SenderEmail string
	Phone       string
	Message     string
}

// contactEmailTemplate is the plaintext body of contact form emails
const contactEmailTemplate = `Name: {{.SenderName}}
Email: {{.SenderEmail}}
Phone: {{phone .Phone}}

Message:
{{.Message}}

---
Sent from Wright Angle Carpentry contact form`

var contactTmpl = template.Must(template.New("contact").Funcs(template.FuncMap{
	"phone": func(p string) string {
		if strings.TrimSpace(p) == "" {
			return "N/A"
		}
		return p
	},
}).Parse(contactEmailTemplate))

// ComposeContactEmail builds the message sent to the business owner. Replies go
// straight to the submitter.
func ComposeContactEmail(id Identity, data ContactEmailData) (*Message, error) {
	if id.From == "" || id.To == "" {
		return nil, errors.New("email: sender and recipient are required")
	}

	var body bytes.Buffer
	if err := contactTmpl.Execute(&body, data); err != nil {
		return nil, fmt.Errorf("failed to execute email template: %w", err)
	}

	return &Message{
		From:    id.From,
		To:      []string{id.To},
		ReplyTo: data.SenderEmail,
		Subject: id.Subject,
		Text:    body.String(),
	}, nil
}
