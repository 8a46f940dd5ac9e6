package razorpay

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

var (
	ErrConfigInvalid    = errors.New("razorpay config invalid")
	ErrRequestFailed    = errors.New("razorpay request failed")
	ErrResponseInvalid  = errors.New("razorpay response invalid")
	ErrSignatureInvalid = errors.New("razorpay signature invalid")
	ErrRejected         = errors.New("razorpay rejected request")
)

// Payment states reported by the gateway. A payment is only treated as
// settled when it reaches captured or authorized.
const (
	StatusCreated    = "created"
	StatusAuthorized = "authorized"
	StatusCaptured   = "captured"
	StatusFailed     = "failed"
	StatusRefunded   = "refunded"
)

const defaultBaseURL = "https://api.razorpay.com"

// Config holds the merchant credentials.
type Config struct {
	KeyID     string `json:"key_id"`
	KeySecret string `json:"key_secret"`
	BaseURL   string `json:"base_url"`
	TimeoutMS int    `json:"timeout_ms"`
}

// CreateOrderInput requests a gateway-side order. Amount is in paise.
type CreateOrderInput struct {
	AmountPaise int64
	Currency    string
	Receipt     string
	Notes       map[string]string
}

// GatewayOrder is the gateway's view of a created order.
type GatewayOrder struct {
	ID          string                 `json:"id"`
	AmountPaise int64                  `json:"amount"`
	Currency    string                 `json:"currency"`
	Receipt     string                 `json:"receipt"`
	Status      string                 `json:"status"`
	Raw         map[string]interface{} `json:"-"`
}

// Payment is the gateway's view of a payment.
type Payment struct {
	ID          string                 `json:"id"`
	OrderID     string                 `json:"order_id"`
	AmountPaise int64                  `json:"amount"`
	Currency    string                 `json:"currency"`
	Status      string                 `json:"status"`
	Method      string                 `json:"method"`
	Email       string                 `json:"email"`
	Contact     string                 `json:"contact"`
	ErrorCode   string                 `json:"error_code"`
	ErrorDesc   string                 `json:"error_description"`
	Raw         map[string]interface{} `json:"-"`
}

// ValidateConfig checks that credentials are present and not placeholders.
func ValidateConfig(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("%w: config is nil", ErrConfigInvalid)
	}
	if strings.TrimSpace(cfg.KeyID) == "" {
		return fmt.Errorf("%w: key_id is required", ErrConfigInvalid)
	}
	if strings.TrimSpace(cfg.KeySecret) == "" {
		return fmt.Errorf("%w: key_secret is required", ErrConfigInvalid)
	}
	if isPlaceholder(cfg.KeyID) || isPlaceholder(cfg.KeySecret) {
		return fmt.Errorf("%w: placeholder credentials", ErrConfigInvalid)
	}
	return nil
}

func isPlaceholder(v string) bool {
	lower := strings.ToLower(strings.TrimSpace(v))
	for _, marker := range []string{"your_", "changeme", "change_me", "placeholder", "xxx"} {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}

func (c *Config) baseURL() string {
	base := strings.TrimRight(strings.TrimSpace(c.BaseURL), "/")
	if base == "" {
		base = defaultBaseURL
	}
	return base
}

func (c *Config) timeout() time.Duration {
	if c.TimeoutMS <= 0 {
		return 30 * time.Second
	}
	return time.Duration(c.TimeoutMS) * time.Millisecond
}

// CreateOrder creates a gateway order for the checkout intent.
func CreateOrder(ctx context.Context, cfg *Config, input CreateOrderInput) (*GatewayOrder, error) {
	if err := ValidateConfig(cfg); err != nil {
		return nil, err
	}
	if input.AmountPaise <= 0 {
		return nil, fmt.Errorf("%w: amount must be positive", ErrConfigInvalid)
	}
	currency := strings.TrimSpace(input.Currency)
	if currency == "" {
		currency = "INR"
	}

	params := map[string]interface{}{
		"amount":   input.AmountPaise,
		"currency": currency,
		"receipt":  input.Receipt,
	}
	if len(input.Notes) > 0 {
		params["notes"] = input.Notes
	}

	respBytes, err := doRequest(ctx, cfg, http.MethodPost, "/v1/orders", params)
	if err != nil {
		return nil, err
	}

	var order GatewayOrder
	if err := json.Unmarshal(respBytes, &order); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrResponseInvalid, err)
	}
	if order.ID == "" {
		return nil, fmt.Errorf("%w: missing order id", ErrResponseInvalid)
	}
	_ = json.Unmarshal(respBytes, &order.Raw)
	return &order, nil
}

// FetchPayment queries the current state of a payment.
func FetchPayment(ctx context.Context, cfg *Config, paymentID string) (*Payment, error) {
	if err := ValidateConfig(cfg); err != nil {
		return nil, err
	}
	paymentID = strings.TrimSpace(paymentID)
	if paymentID == "" {
		return nil, fmt.Errorf("%w: payment id is required", ErrConfigInvalid)
	}

	respBytes, err := doRequest(ctx, cfg, http.MethodGet, "/v1/payments/"+paymentID, nil)
	if err != nil {
		return nil, err
	}

	var payment Payment
	if err := json.Unmarshal(respBytes, &payment); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrResponseInvalid, err)
	}
	if payment.ID == "" {
		return nil, fmt.Errorf("%w: missing payment id", ErrResponseInvalid)
	}
	_ = json.Unmarshal(respBytes, &payment.Raw)
	return &payment, nil
}

// VerifySignature checks the checkout callback signature. The gateway signs
// "<order_id>|<payment_id>" with HMAC-SHA256 over the key secret; comparison
// is constant-time.
func VerifySignature(cfg *Config, orderID, paymentID, signature string) error {
	if cfg == nil || strings.TrimSpace(cfg.KeySecret) == "" {
		return ErrConfigInvalid
	}
	orderID = strings.TrimSpace(orderID)
	paymentID = strings.TrimSpace(paymentID)
	signature = strings.TrimSpace(signature)
	if orderID == "" || paymentID == "" || signature == "" {
		return ErrSignatureInvalid
	}

	expected := signPayload(orderID+"|"+paymentID, cfg.KeySecret)
	if !hmac.Equal([]byte(expected), []byte(strings.ToLower(signature))) {
		return ErrSignatureInvalid
	}
	return nil
}

// IsSettled reports whether a payment status counts as money received.
func IsSettled(status string) bool {
	switch strings.ToLower(strings.TrimSpace(status)) {
	case StatusCaptured, StatusAuthorized:
		return true
	default:
		return false
	}
}

func signPayload(payload, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(payload))
	return hex.EncodeToString(mac.Sum(nil))
}

func doRequest(ctx context.Context, cfg *Config, method, path string, params map[string]interface{}) ([]byte, error) {
	var bodyReader io.Reader
	if params != nil {
		body, err := json.Marshal(params)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrRequestFailed, err)
		}
		bodyReader = strings.NewReader(string(body))
	}

	req, err := http.NewRequestWithContext(ctx, method, cfg.baseURL()+path, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}
	req.SetBasicAuth(cfg.KeyID, cfg.KeySecret)
	req.Header.Set("Accept", "application/json")
	if params != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	client := &http.Client{Timeout: cfg.timeout()}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var apiErr struct {
			Error struct {
				Code        string `json:"code"`
				Description string `json:"description"`
			} `json:"error"`
		}
		if json.Unmarshal(respBytes, &apiErr) == nil && apiErr.Error.Description != "" {
			return nil, fmt.Errorf("%w: %s (%s)", ErrRejected, apiErr.Error.Description, apiErr.Error.Code)
		}
		return nil, fmt.Errorf("%w: http status %d", ErrRejected, resp.StatusCode)
	}

	return respBytes, nil
}
