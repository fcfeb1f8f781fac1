package mail

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

const resendEndpoint = "https://api.resend.com/emails"

// Resend HTTP API経由の送信。
type ResendMailer struct {
	apiKey string
	from   string
	client *http.Client
}

func NewResendMailer(apiKey string, from string) *ResendMailer {
	return &ResendMailer{
		apiKey: apiKey,
		from:   from,
		client: &http.Client{Timeout: 30 * time.Second},
	}
}

type resendRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
}

func (m *ResendMailer) SendInvoice(ctx context.Context, email InvoiceEmail) error {
	html, err := BuildInvoiceHTML(email)
	if err != nil {
		return fmt.Errorf("build invoice html: %w", err)
	}

	body, err := json.Marshal(resendRequest{
		From:    m.from,
		To:      []string{email.To},
		Subject: fmt.Sprintf("Proforma Invoice %s - ElectroChem", email.PINumber),
		HTML:    html,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, resendEndpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+m.apiKey)
	req.Header.Set("Content-Type", "application/json")

	res, err := m.client.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode >= 300 {
		return fmt.Errorf("resend: unexpected status %d", res.StatusCode)
	}
	return nil
}
