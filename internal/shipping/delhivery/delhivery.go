package delhivery

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

var (
	ErrConfigInvalid   = errors.New("delhivery config invalid")
	ErrRequestFailed   = errors.New("delhivery request failed")
	ErrResponseInvalid = errors.New("delhivery response invalid")
)

// Config holds the carrier credentials.
type Config struct {
	BaseURL        string `json:"base_url"`
	APIToken       string `json:"api_token"`
	PickupLocation string `json:"pickup_location"`
	TimeoutMS      int    `json:"timeout_ms"`
}

// CreateShipmentInput describes a forward shipment for one order.
type CreateShipmentInput struct {
	OrderNo       string
	CustomerName  string
	CustomerPhone string
	Address       string
	City          string
	State         string
	Pincode       string
	PaymentMode   string // Prepaid or COD
	TotalAmount   string
	ProductsDesc  string
}

// CreateShipmentResult is the carrier's response to a manifest request.
type CreateShipmentResult struct {
	Success bool
	Waybill string
	Remarks string
	Raw     map[string]interface{}
}

// TrackResult is a single-waybill tracking snapshot.
type TrackResult struct {
	Waybill      string
	Status       string
	StatusDetail string
	Location     string
	Timestamp    string
	Raw          map[string]interface{}
}

// PincodeResult reports serviceability for a delivery pincode.
type PincodeResult struct {
	Pincode     string
	Serviceable bool
	CODAllowed  bool
	Raw         map[string]interface{}
}

// ValidateConfig checks the carrier credentials.
func ValidateConfig(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("%w: config is nil", ErrConfigInvalid)
	}
	if strings.TrimSpace(cfg.BaseURL) == "" {
		return fmt.Errorf("%w: base_url is required", ErrConfigInvalid)
	}
	if strings.TrimSpace(cfg.APIToken) == "" {
		return fmt.Errorf("%w: api_token is required", ErrConfigInvalid)
	}
	return nil
}

func (c *Config) baseURL() string {
	return strings.TrimRight(strings.TrimSpace(c.BaseURL), "/")
}

func (c *Config) timeout() time.Duration {
	if c.TimeoutMS <= 0 {
		return 30 * time.Second
	}
	return time.Duration(c.TimeoutMS) * time.Millisecond
}

// CreateShipment manifests a forward shipment and returns the waybill.
func CreateShipment(ctx context.Context, cfg *Config, input CreateShipmentInput) (*CreateShipmentResult, error) {
	if err := ValidateConfig(cfg); err != nil {
		return nil, err
	}
	if strings.TrimSpace(input.OrderNo) == "" || strings.TrimSpace(input.Pincode) == "" {
		return nil, fmt.Errorf("%w: order_no and pincode are required", ErrConfigInvalid)
	}
	paymentMode := strings.TrimSpace(input.PaymentMode)
	if paymentMode == "" {
		paymentMode = "Prepaid"
	}

	manifest := map[string]interface{}{
		"shipments": []map[string]interface{}{
			{
				"order":         input.OrderNo,
				"name":          input.CustomerName,
				"phone":         input.CustomerPhone,
				"add":           input.Address,
				"city":          input.City,
				"state":         input.State,
				"pin":           input.Pincode,
				"country":       "India",
				"payment_mode":  paymentMode,
				"total_amount":  input.TotalAmount,
				"products_desc": input.ProductsDesc,
			},
		},
		"pickup_location": map[string]interface{}{
			"name": cfg.PickupLocation,
		},
	}
	manifestJSON, err := json.Marshal(manifest)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}

	// The manifest endpoint takes form-encoded "format" and "data" fields.
	form := url.Values{}
	form.Set("format", "json")
	form.Set("data", string(manifestJSON))

	respBytes, err := doRequest(ctx, cfg, http.MethodPost, "/api/cmu/create.json", form)
	if err != nil {
		return nil, err
	}

	var resp struct {
		Success  bool `json:"success"`
		Packages []struct {
			Waybill string `json:"waybill"`
			Status  string `json:"status"`
			Remarks any    `json:"remarks"`
		} `json:"packages"`
	}
	if err := json.Unmarshal(respBytes, &resp); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrResponseInvalid, err)
	}

	result := &CreateShipmentResult{Success: resp.Success}
	if len(resp.Packages) > 0 {
		result.Waybill = resp.Packages[0].Waybill
		result.Remarks = flattenRemarks(resp.Packages[0].Remarks)
		if resp.Packages[0].Waybill == "" {
			result.Success = false
		}
	} else {
		result.Success = false
	}
	_ = json.Unmarshal(respBytes, &result.Raw)
	return result, nil
}

// CancelShipment cancels a manifested shipment by waybill.
func CancelShipment(ctx context.Context, cfg *Config, waybill string) (bool, error) {
	if err := ValidateConfig(cfg); err != nil {
		return false, err
	}
	waybill = strings.TrimSpace(waybill)
	if waybill == "" {
		return false, fmt.Errorf("%w: waybill is required", ErrConfigInvalid)
	}

	form := url.Values{}
	form.Set("waybill", waybill)
	form.Set("cancellation", "true")

	respBytes, err := doRequest(ctx, cfg, http.MethodPost, "/api/p/edit", form)
	if err != nil {
		return false, err
	}

	var resp struct {
		Status bool `json:"status"`
	}
	if err := json.Unmarshal(respBytes, &resp); err != nil {
		return false, fmt.Errorf("%w: %v", ErrResponseInvalid, err)
	}
	return resp.Status, nil
}

// Track fetches the latest scan for a waybill.
func Track(ctx context.Context, cfg *Config, waybill string) (*TrackResult, error) {
	if err := ValidateConfig(cfg); err != nil {
		return nil, err
	}
	waybill = strings.TrimSpace(waybill)
	if waybill == "" {
		return nil, fmt.Errorf("%w: waybill is required", ErrConfigInvalid)
	}

	respBytes, err := doRequest(ctx, cfg, http.MethodGet,
		"/api/v1/packages/json/?waybill="+url.QueryEscape(waybill), nil)
	if err != nil {
		return nil, err
	}

	var resp struct {
		ShipmentData []struct {
			Shipment struct {
				AWB    string `json:"AWB"`
				Status struct {
					Status         string `json:"Status"`
					Instructions   string `json:"Instructions"`
					StatusLocation string `json:"StatusLocation"`
					StatusDateTime string `json:"StatusDateTime"`
				} `json:"Status"`
			} `json:"Shipment"`
		} `json:"ShipmentData"`
	}
	if err := json.Unmarshal(respBytes, &resp); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrResponseInvalid, err)
	}
	if len(resp.ShipmentData) == 0 {
		return nil, fmt.Errorf("%w: no shipment data for waybill", ErrResponseInvalid)
	}

	shipment := resp.ShipmentData[0].Shipment
	result := &TrackResult{
		Waybill:      shipment.AWB,
		Status:       shipment.Status.Status,
		StatusDetail: shipment.Status.Instructions,
		Location:     shipment.Status.StatusLocation,
		Timestamp:    shipment.Status.StatusDateTime,
	}
	_ = json.Unmarshal(respBytes, &result.Raw)
	return result, nil
}

// CheckPincode reports whether the carrier delivers to a pincode.
func CheckPincode(ctx context.Context, cfg *Config, pincode string) (*PincodeResult, error) {
	if err := ValidateConfig(cfg); err != nil {
		return nil, err
	}
	pincode = strings.TrimSpace(pincode)
	if pincode == "" {
		return nil, fmt.Errorf("%w: pincode is required", ErrConfigInvalid)
	}

	respBytes, err := doRequest(ctx, cfg, http.MethodGet,
		"/c/api/pin-codes/json/?filter_codes="+url.QueryEscape(pincode), nil)
	if err != nil {
		return nil, err
	}

	var resp struct {
		DeliveryCodes []struct {
			PostalCode struct {
				Pin     json.Number `json:"pin"`
				COD     string      `json:"cod"`
				Prepaid string      `json:"pre_paid"`
			} `json:"postal_code"`
		} `json:"delivery_codes"`
	}
	if err := json.Unmarshal(respBytes, &resp); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrResponseInvalid, err)
	}

	result := &PincodeResult{Pincode: pincode}
	if len(resp.DeliveryCodes) > 0 {
		result.Serviceable = true
		result.CODAllowed = strings.EqualFold(resp.DeliveryCodes[0].PostalCode.COD, "Y")
	}
	_ = json.Unmarshal(respBytes, &result.Raw)
	return result, nil
}

func flattenRemarks(remarks any) string {
	switch v := remarks.(type) {
	case string:
		return v
	case []interface{}:
		var parts []string
		for _, item := range v {
			if s, ok := item.(string); ok && s != "" {
				parts = append(parts, s)
			}
		}
		return strings.Join(parts, "; ")
	default:
		return ""
	}
}

func doRequest(ctx context.Context, cfg *Config, method, path string, form url.Values) ([]byte, error) {
	var bodyReader io.Reader
	if form != nil {
		bodyReader = strings.NewReader(form.Encode())
	}

	req, err := http.NewRequestWithContext(ctx, method, cfg.baseURL()+path, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}
	req.Header.Set("Authorization", "Token "+cfg.APIToken)
	req.Header.Set("Accept", "application/json")
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
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
		return nil, fmt.Errorf("%w: http status %d", ErrRequestFailed, resp.StatusCode)
	}
	return respBytes, nil
}
