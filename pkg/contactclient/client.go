// Package contactclient submits contact form entries to the relay endpoint and
// turns the outcome into a notification for the person filling in the form.
//
// A Client guards against duplicate submissions: while one call is in flight,
// further calls to Submit fail fast with ErrSubmitting. Nothing is retried.
package contactclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/James1Law/vibe-test-carpenter-site/internal/domain"
	"github.com/James1Law/vibe-test-carpenter-site/pkg/validation"
)

const (
	DefaultEndpoint = "/api/sendEmail"

	maxResponseBytes     = 64 << 10
	notificationDuration = 5 * time.Second
)

// ErrSubmitting is returned while a previous submission is still outstanding.
var ErrSubmitting = errors.New("contactclient: a submission is already in progress")

// InputError means the form failed validation and nothing was sent.
type InputError struct {
	Fields validation.Errors
}

func (e *InputError) Error() string {
	return "contactclient: invalid input: " + e.Fields.Error()
}

// TransportError means the relay could not be reached.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return "contactclient: request failed: " + e.Err.Error()
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// ResponseError means the relay answered with a failure status or an unreadable body.
type ResponseError struct {
	StatusCode int
	Message    string
	Details    json.RawMessage
}

func (e *ResponseError) Error() string {
	return fmt.Sprintf("contactclient: relay returned %d: %s", e.StatusCode, e.Message)
}

type Option func(*Client)

// WithHTTPClient replaces the default client (10s timeout).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.http = hc
	}
}

type Client struct {
	endpoint   string
	http       *http.Client
	submitting atomic.Bool
}

// New creates a client posting to endpoint, e.g. "https://example.com/api/sendEmail".
func New(endpoint string, opts ...Option) *Client {
	c := &Client{
		endpoint: endpoint,
		http:     &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Submitting reports whether a submission is in flight; a form should keep
// its inputs and submit button disabled while it is true.
func (c *Client) Submitting() bool {
	return c.submitting.Load()
}

// Submit validates the form and, when valid, sends it once. On success the form
// is cleared; on any failure it is left intact so the user can correct or resend.
func (c *Client) Submit(ctx context.Context, form *Form) (Notification, error) {
	submission := form.Submission()
	if errs := submission.Validate(); !errs.Valid() {
		return Notification{}, &InputError{Fields: errs}
	}

	if !c.submitting.CompareAndSwap(false, true) {
		return Notification{}, ErrSubmitting
	}
	defer c.submitting.Store(false)

	messageID, err := c.send(ctx, submission)
	if err != nil {
		return failureNotification(err), err
	}

	form.Reset()
	return successNotification(messageID), nil
}

type sendResponse struct {
	Success   bool   `json:"success"`
	MessageID string `json:"messageId"`
}

type errorResponse struct {
	Error   string          `json:"error"`
	Details json.RawMessage `json:"details"`
}

func (c *Client) send(ctx context.Context, submission domain.ContactSubmission) (string, error) {
	body, err := json.Marshal(submission)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", &TransportError{Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return "", &TransportError{Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var errBody errorResponse
		_ = json.Unmarshal(raw, &errBody)
		msg := errBody.Error
		if msg == "" {
			msg = "Failed to send message"
		}
		return "", &ResponseError{StatusCode: resp.StatusCode, Message: msg, Details: errBody.Details}
	}

	var ok sendResponse
	if err := json.Unmarshal(raw, &ok); err != nil {
		return "", &ResponseError{StatusCode: resp.StatusCode, Message: "Failed to send message"}
	}
	return ok.MessageID, nil
}
