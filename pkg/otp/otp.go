package otp

import (
	"bytes"
	"context"
	"crypto/rand"
	"encoding/json"
	"fmt"
	"log"
	"math/big"
	"net/http"
	"sync"
	"time"
)

// DefaultExpiry is how long a generated code stays valid.
const DefaultExpiry = 5 * time.Minute

// Sender delivers an OTP code to a phone number.
type Sender interface {
	Send(ctx context.Context, phone, code string) error
}

// Service generates, delivers and verifies one-time codes. Codes are
// held in memory; a restart invalidates pending codes, which is
// acceptable for a 5 minute expiry window.
type Service struct {
	sender Sender
	expiry time.Duration

	mu    sync.Mutex
	codes map[string]pendingCode
}

type pendingCode struct {
	code      string
	expiresAt time.Time
	attempts  int
}

// maxAttempts is the number of wrong guesses before a code is discarded.
const maxAttempts = 5

// NewService creates an OTP service using the given sender.
func NewService(sender Sender, expiry time.Duration) *Service {
	if expiry <= 0 {
		expiry = DefaultExpiry
	}
	return &Service{
		sender: sender,
		expiry: expiry,
		codes:  make(map[string]pendingCode),
	}
}

// Request generates a 6 digit code for the phone number and sends it.
func (s *Service) Request(ctx context.Context, phone string) error {
	code, err := generateCode()
	if err != nil {
		return fmt.Errorf("otp: generate code: %w", err)
	}

	if err := s.sender.Send(ctx, phone, code); err != nil {
		return fmt.Errorf("otp: send code: %w", err)
	}

	s.mu.Lock()
	s.codes[phone] = pendingCode{code: code, expiresAt: time.Now().Add(s.expiry)}
	s.mu.Unlock()
	return nil
}

// Verify checks the code for the phone number. A successful or
// exhausted verification consumes the pending code.
func (s *Service) Verify(phone, code string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	pending, ok := s.codes[phone]
	if !ok || time.Now().After(pending.expiresAt) {
		delete(s.codes, phone)
		return false
	}

	if pending.code != code {
		pending.attempts++
		if pending.attempts >= maxAttempts {
			delete(s.codes, phone)
		} else {
			s.codes[phone] = pending
		}
		return false
	}

	delete(s.codes, phone)
	return true
}

func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

// --- HTTP SMS gateway sender ---

type httpSender struct {
	client   *http.Client
	endpoint string
	apiKey   string
}

// NewHTTPSender creates a sender that posts JSON to an SMS gateway.
func NewHTTPSender(endpoint, apiKey string) Sender {
	return &httpSender{
		client:   &http.Client{Timeout: 10 * time.Second},
		endpoint: endpoint,
		apiKey:   apiKey,
	}
}

func (s *httpSender) Send(ctx context.Context, phone, code string) error {
	payload, err := json.Marshal(map[string]string{
		"to":      phone,
		"message": fmt.Sprintf("Your verification code is %s", code),
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("sms gateway returned status %d", resp.StatusCode)
	}
	return nil
}

// --- Log sender (development mode, no gateway configured) ---

type logSender struct{}

// NewLogSender creates a sender that logs codes instead of sending SMS.
func NewLogSender() Sender {
	return &logSender{}
}

func (s *logSender) Send(ctx context.Context, phone, code string) error {
	log.Printf("OTP for %s: %s", phone, code)
	return nil
}

// NewSenderFromConfig picks a sender based on gateway configuration.
// With no endpoint configured, codes are logged for development.
func NewSenderFromConfig(endpoint, apiKey string) Sender {
	if endpoint == "" {
		return NewLogSender()
	}
	return NewHTTPSender(endpoint, apiKey)
}
