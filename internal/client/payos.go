package client

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"codeshop/internal/config"
)

type PayOSClient interface {
	CreatePaymentLink(ctx context.Context, req *CreatePaymentLinkRequest) (*CreatePaymentLinkResponse, error)
}

type CreatePaymentLinkRequest struct {
	OrderCode   int64
	Amount      int64
	Description string
	BuyerName   string
	BuyerEmail  string
	ItemTitle   string
	ReturnURL   string
	CancelURL   string
}

type CreatePaymentLinkResponse struct {
	PaymentLinkID string
	CheckoutURL   string
}

type payosClientImpl struct {
	httpClient  *http.Client
	baseApiURL  string
	clientID    string
	apiKey      string
	checksumKey string
}

func NewPayOSClient(cfg *config.PayOS) PayOSClient {
	return &payosClientImpl{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		baseApiURL:  cfg.BaseApiURL,
		clientID:    cfg.ClientID,
		apiKey:      cfg.APIKey,
		checksumKey: cfg.ChecksumKey,
	}
}

type payosItem struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
	Price    int64  `json:"price"`
}

type payosCreateResult struct {
	Code string `json:"code"`
	Desc string `json:"desc"`
	Data struct {
		PaymentLinkID string `json:"paymentLinkId"`
		CheckoutURL   string `json:"checkoutUrl"`
		Status        string `json:"status"`
	} `json:"data"`
}

func (c *payosClientImpl) CreatePaymentLink(ctx context.Context, linkReq *CreatePaymentLinkRequest) (*CreatePaymentLinkResponse, error) {
	payload := map[string]interface{}{
		"orderCode":   linkReq.OrderCode,
		"amount":      linkReq.Amount,
		"description": linkReq.Description,
		"buyerName":   linkReq.BuyerName,
		"buyerEmail":  linkReq.BuyerEmail,
		"items": []payosItem{
			{Name: linkReq.ItemTitle, Quantity: 1, Price: linkReq.Amount},
		},
		"returnUrl": linkReq.ReturnURL,
		"cancelUrl": linkReq.CancelURL,
		"signature": c.signRequest(linkReq),
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal req payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseApiURL+"/v2/payment-requests",
		bytes.NewBuffer(body))
	if err != nil {
		return nil, fmt.Errorf("http new request: %w", err)
	}

	req.Header.Set("x-client-id", c.clientID)
	req.Header.Set("x-api-key", c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http client do: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("payos error %d: %s", resp.StatusCode, string(b))
	}

	var result payosCreateResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode payos response: %w", err)
	}

	if result.Code != "00" {
		return nil, fmt.Errorf("payos rejected payment request: code=%s desc=%s", result.Code, result.Desc)
	}
	if result.Data.CheckoutURL == "" {
		return nil, fmt.Errorf("payos returned no checkout url")
	}

	return &CreatePaymentLinkResponse{
		PaymentLinkID: result.Data.PaymentLinkID,
		CheckoutURL:   result.Data.CheckoutURL,
	}, nil
}

// signRequest computes the provider's request signature: HMAC-SHA256 over the
// signed fields serialized as key=value pairs in alphabetical order.
func (c *payosClientImpl) signRequest(req *CreatePaymentLinkRequest) string {
	data := fmt.Sprintf("amount=%d&cancelUrl=%s&description=%s&orderCode=%d&returnUrl=%s",
		req.Amount, req.CancelURL, req.Description, req.OrderCode, req.ReturnURL)

	mac := hmac.New(sha256.New, []byte(c.checksumKey))
	mac.Write([]byte(data))
	return hex.EncodeToString(mac.Sum(nil))
}
