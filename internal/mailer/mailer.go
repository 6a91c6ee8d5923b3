package mailer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/spec-kit/docrequest-service/internal/config"
	apperrors "github.com/spec-kit/docrequest-service/pkg/util/errorutil"
)

// Message is a single transactional email.
type Message struct {
	Subject   string
	HTMLBody  string
	Recipient string
}

// Mailer delivers transactional email.
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// httpMailer posts messages to an HTTP email delivery endpoint.
type httpMailer struct {
	endpointURL string
	apiKey      string
	senderEmail string
	senderAlias string
	httpClient  *http.Client
}

// NewHTTPMailer builds a mailer from notification configuration.
func NewHTTPMailer(cfg config.NotificationConfig) Mailer {
	return &httpMailer{
		endpointURL: cfg.EndpointURL,
		apiKey:      cfg.APIKey,
		senderEmail: cfg.SenderEmail,
		senderAlias: cfg.SenderAlias,
		httpClient:  &http.Client{Timeout: cfg.Timeout()},
	}
}

type sendEmailRequest struct {
	DeploymentToken string `json:"deployment_token,omitempty"`
	Subject         string `json:"subject"`
	Body            string `json:"body"`
	IsHTML          bool   `json:"is_html"`
	RecipientEmail  string `json:"recipient_email"`
	SenderEmail     string `json:"sender_email"`
	SenderAlias     string `json:"sender_alias"`
}

func (m *httpMailer) Send(ctx context.Context, msg Message) error {
	if m.endpointURL == "" {
		return apperrors.NewUpstreamError("email provider", fmt.Errorf("no endpoint configured"))
	}

	payload := sendEmailRequest{
		DeploymentToken: m.apiKey,
		Subject:         msg.Subject,
		Body:            msg.HTMLBody,
		IsHTML:          true,
		RecipientEmail:  msg.Recipient,
		SenderEmail:     m.senderEmail,
		SenderAlias:     m.senderAlias,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.endpointURL, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.httpClient.Do(req)
	if err != nil {
		return apperrors.NewUpstreamError("email provider", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode >= 300 {
		return apperrors.NewUpstreamError("email provider", fmt.Errorf("unexpected status %d", resp.StatusCode))
	}
	return nil
}
