package gateway

import (
	"context"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
)

const (
	payPath    = "/pg/v1/pay"
	statusPath = "/pg/v1/status"
)

// PhonePeClient implements PaymentGateway against the PhonePe pay-page
// API: a base64 JSON payload signed with a sha256 salt checksum in the
// X-VERIFY header.
type PhonePeClient struct {
	http        *resty.Client
	merchantID  string
	saltKey     string
	saltIndex   string
	hostURL     string
	callbackURL string
}

func NewPhonePeClient() *PhonePeClient {
	return &PhonePeClient{
		http:        resty.New().SetTimeout(30 * time.Second),
		merchantID:  os.Getenv("PHONEPE_MERCHANT_ID"),
		saltKey:     os.Getenv("PHONEPE_SALT_KEY"),
		saltIndex:   os.Getenv("PHONEPE_SALT_INDEX"),
		hostURL:     os.Getenv("PHONEPE_HOST_URL"),
		callbackURL: os.Getenv("BACKEND_URL") + "/api/payment/phonepe-callback",
	}
}

func checksum(payload, saltKey, saltIndex string) string {
	sum := sha256.Sum256([]byte(payload + saltKey))
	return hex.EncodeToString(sum[:]) + "###" + saltIndex
}

func (c *PhonePeClient) CreatePayment(ctx context.Context, amount int64, transactionID string, userID uint) (string, error) {
	payload := map[string]any{
		"merchantId":            c.merchantID,
		"merchantTransactionId": transactionID,
		"merchantUserId":        strconv.FormatUint(uint64(userID), 10),
		"amount":                amount,
		"redirectUrl":           c.callbackURL,
		"redirectMode":          "POST",
		"callbackUrl":           c.callbackURL,
		"paymentInstrument":     map[string]string{"type": "PAY_PAGE"},
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}
	encoded := base64.StdEncoding.EncodeToString(raw)

	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json").
		SetHeader("X-VERIFY", checksum(encoded+payPath, c.saltKey, c.saltIndex)).
		SetBody(map[string]string{"request": encoded}).
		Post(c.hostURL + payPath)
	if err != nil {
		return "", err
	}
	if resp.StatusCode() != 200 {
		return "", fmt.Errorf("phonepe pay request failed with status %d: %s", resp.StatusCode(), resp.Body())
	}

	var payResp struct {
		Success bool `json:"success"`
		Data    struct {
			InstrumentResponse struct {
				RedirectInfo struct {
					URL string `json:"url"`
				} `json:"redirectInfo"`
			} `json:"instrumentResponse"`
		} `json:"data"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(resp.Body(), &payResp); err != nil {
		return "", fmt.Errorf("failed to parse phonepe response: %w", err)
	}
	if !payResp.Success || payResp.Data.InstrumentResponse.RedirectInfo.URL == "" {
		return "", fmt.Errorf("phonepe rejected payment: %s", payResp.Message)
	}

	return payResp.Data.InstrumentResponse.RedirectInfo.URL, nil
}

func (c *PhonePeClient) GetStatus(ctx context.Context, transactionID string) (PaymentState, error) {
	path := fmt.Sprintf("%s/%s/%s", statusPath, c.merchantID, transactionID)

	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json").
		SetHeader("X-VERIFY", checksum(path, c.saltKey, c.saltIndex)).
		SetHeader("X-MERCHANT-ID", c.merchantID).
		Get(c.hostURL + path)
	if err != nil {
		return "", err
	}
	if resp.StatusCode() != 200 {
		return "", fmt.Errorf("phonepe status request failed with status %d: %s", resp.StatusCode(), resp.Body())
	}

	var statusResp struct {
		Success bool `json:"success"`
		Data    struct {
			State string `json:"state"`
		} `json:"data"`
	}
	if err := json.Unmarshal(resp.Body(), &statusResp); err != nil {
		return "", fmt.Errorf("failed to parse phonepe status response: %w", err)
	}

	switch statusResp.Data.State {
	case "COMPLETED":
		return StateCompleted, nil
	case "PENDING":
		return StatePending, nil
	default:
		return StateFailed, nil
	}
}
