package sms

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/nutriplan/consultation-api/internal/httperr"
)

const defaultBaseURL = "https://sms.ru/sms/send"

// SmsRuSender sends verification codes through the sms.ru HTTP API.
type SmsRuSender struct {
	apiID   string
	from    string
	baseURL string
	client  *http.Client
}

func NewSmsRuSender(apiID, from string) *SmsRuSender {
	return &SmsRuSender{
		apiID:   apiID,
		from:    from,
		baseURL: defaultBaseURL,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

type smsRuResponse struct {
	Status     string                     `json:"status"`
	StatusCode int                        `json:"status_code"`
	SMS        map[string]smsRuMessageRef `json:"sms"`
	Error      string                     `json:"error"`
}

type smsRuMessageRef struct {
	Status     string `json:"status"`
	StatusCode int    `json:"status_code"`
	SmsID      string `json:"sms_id"`
}

// formatPhone strips everything but digits; sms.ru expects the number
// without the leading +.
func formatPhone(phone string) string {
	var b strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func (s *SmsRuSender) Send(ctx context.Context, phone, code string) (string, error) {
	to := formatPhone(phone)
	msg := fmt.Sprintf("Код подтверждения NUTRIPLAN: %s. Не сообщайте код третьим лицам.", code)

	params := url.Values{}
	params.Set("api_id", s.apiID)
	params.Set("to", to)
	params.Set("msg", msg)
	params.Set("from", s.from)
	params.Set("json", "1")

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		s.baseURL+"?"+params.Encode(),
		nil,
	)
	if err != nil {
		return "", err
	}

	resp, err := s.client.Do(req)
	if err != nil {
		log.Printf("[SMS] dispatch failed: %v", err)
		return "", httperr.ErrBusiness(httperr.CodeTransportError)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Printf("[SMS] unexpected status: %d", resp.StatusCode)
		return "", httperr.ErrBusiness(httperr.CodeTransportError)
	}

	var body smsRuResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", httperr.ErrBusiness(httperr.CodeTransportError)
	}

	if body.Status != "OK" {
		log.Printf("[SMS] provider error: %s", body.Error)
		return "", httperr.ErrBusiness(httperr.CodeTransportError)
	}

	ref, ok := body.SMS[to]
	if !ok || ref.Status != "OK" {
		log.Printf("[SMS] message rejected for %s: %s", to, ref.Status)
		return "", httperr.ErrBusiness(httperr.CodeTransportError)
	}

	return ref.SmsID, nil
}

// NewSender picks the real provider when enabled and configured,
// otherwise the dev sender.
func NewSender(enabled bool, apiID, from string) Sender {
	if enabled && apiID != "" {
		return NewSmsRuSender(apiID, from)
	}
	if enabled {
		log.Println("[SMS] enabled but no API id configured, using dev sender")
	}
	return DevSender{}
}
