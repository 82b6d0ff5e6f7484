package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"github.com/HSouheill/lifelessons_backend/models"
)

// collectRequest is the body of a Whish "payment/whish" collect call
type collectRequest struct {
	Amount             float64 `json:"amount"`
	Currency           string  `json:"currency"`
	Invoice            string  `json:"invoice"`
	ExternalID         int64   `json:"externalId"`
	SuccessRedirectURL string  `json:"successRedirectUrl"`
	FailureRedirectURL string  `json:"failureRedirectUrl"`
}

// whishResponse is the envelope every Whish endpoint answers with. Code and
// Dialog are strings, objects or null depending on the endpoint.
type whishResponse struct {
	Status bool                   `json:"status"`
	Code   interface{}            `json:"code"`
	Dialog interface{}            `json:"dialog"`
	Data   map[string]interface{} `json:"data"`
}

// WhishService handles interactions with the Whish API
type WhishService struct {
	baseURL    string
	channel    string
	secret     string
	websiteURL string
	httpClient *http.Client
	now        func() time.Time
	seq        atomic.Int64
}

// externalIDSlots is how many collect calls may share one millisecond
const externalIDSlots = 1000

// nextExternalID returns a numeric id unique per process: the millisecond
// timestamp shifted left by three decimal digits plus a rolling sequence.
// The result stays below 2^53 so it survives JSON number decoding.
func (s *WhishService) nextExternalID() int64 {
	return s.now().UnixMilli()*externalIDSlots + s.seq.Add(1)%externalIDSlots
}

// NewWhishService creates a new Whish service instance. A nil httpClient
// gets a client with a 30 second timeout.
func NewWhishService(baseURL, channel, secret, websiteURL string, httpClient *http.Client) (*WhishService, error) {
	var missing []string
	if channel == "" {
		missing = append(missing, "WHISH_CHANNEL")
	}
	if secret == "" {
		missing = append(missing, "WHISH_SECRET")
	}
	if websiteURL == "" {
		missing = append(missing, "WHISH_WEBSITE_URL")
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing Whish credentials: %s", strings.Join(missing, ", "))
	}

	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}

	return &WhishService{
		baseURL:    baseURL,
		channel:    channel,
		secret:     secret,
		websiteURL: websiteURL,
		httpClient: httpClient,
		now:        time.Now,
	}, nil
}

// makeRequest performs an HTTP request to the Whish API
func (s *WhishService) makeRequest(ctx context.Context, method, endpoint string, payload interface{}) (*whishResponse, error) {
	var body io.Reader
	if payload != nil {
		jsonData, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request: %w", err)
		}
		body = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, s.baseURL+endpoint, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("channel", s.channel)
	req.Header.Set("secret", s.secret)
	req.Header.Set("websiteurl", s.websiteURL)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	var whishResp whishResponse
	if err := json.Unmarshal(respBody, &whishResp); err != nil {
		return nil, fmt.Errorf("failed to parse response (HTTP %d): %w", resp.StatusCode, err)
	}

	if !whishResp.Status {
		code := "unknown"
		if whishResp.Code != nil {
			code = fmt.Sprintf("%v", whishResp.Code)
		}
		if dialog, ok := whishResp.Dialog.(map[string]interface{}); ok {
			if msg, ok := dialog["message"].(string); ok {
				return &whishResp, fmt.Errorf("whish API error: %s - %s", code, msg)
			}
		}
		return &whishResp, fmt.Errorf("whish API error: %s", code)
	}

	return &whishResp, nil
}

// CreateSession creates a Whish payment and returns the collect URL
func (s *WhishService) CreateSession(ctx context.Context, session models.CheckoutSession) (string, error) {
	req := collectRequest{
		Amount:             float64(session.Amount) / 100,
		Currency:           strings.ToUpper(session.Currency),
		Invoice:            fmt.Sprintf("Lesson %s: %s", session.LessonID, session.LessonTitle),
		ExternalID:         s.nextExternalID(),
		// Whish has no session placeholder to substitute
		SuccessRedirectURL: strings.Replace(session.SuccessURL, "session_id={CHECKOUT_SESSION_ID}&", "", 1),
		FailureRedirectURL: session.CancelURL,
	}

	resp, err := s.makeRequest(ctx, http.MethodPost, "payment/whish", req)
	if err != nil {
		return "", err
	}

	if collectURL, ok := resp.Data["collectUrl"].(string); ok && collectURL != "" {
		return collectURL, nil
	}
	return "", errors.New("failed to parse collect URL from response")
}
