package checkout

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/crlapples/commerce/internal/logger"
	"github.com/crlapples/commerce/internal/metrics"

	"go.uber.org/zap"
)

// Gateway is the payment collaborator consumed at checkout time.
type Gateway interface {
	CreateOrder(ctx context.Context, req OrderRequest) (*Order, error)
	CaptureOrder(ctx context.Context, orderID string) (*CaptureResult, error)
}

type paypalGateway struct {
	baseURL      string
	clientID     string
	clientSecret string
	httpClient   *http.Client

	mu          sync.Mutex
	accessToken string
	tokenExpiry time.Time
}

// ----------------- Constructor -----------------

// NewPayPalGateway returns a Gateway speaking the PayPal Orders v2 API.
func NewPayPalGateway(baseURL, clientID, clientSecret string) Gateway {
	if clientID == "" || clientSecret == "" {
		logger.L().Warn("PayPal credentials are empty")
	}

	return &paypalGateway{
		baseURL:      strings.TrimRight(baseURL, "/"),
		clientID:     clientID,
		clientSecret: clientSecret,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// ----------------- OAuth token -----------------

type paypalTokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int64  `json:"expires_in"`
}

func (g *paypalGateway) token(ctx context.Context) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	// Reuse the cached token until shortly before it expires.
	if g.accessToken != "" && time.Now().Before(g.tokenExpiry.Add(-30*time.Second)) {
		return g.accessToken, nil
	}

	form := url.Values{"grant_type": {"client_credentials"}}
	req, err := http.NewRequestWithContext(ctx, "POST",
		g.baseURL+"/v1/oauth2/token", strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	req.SetBasicAuth(g.clientID, g.clientSecret)
	req.Header.Add("Content-Type", "application/x-www-form-urlencoded")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("paypal token request failed: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read paypal token response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("paypal token error: %s", string(bodyBytes))
	}

	var res paypalTokenResponse
	if err := json.Unmarshal(bodyBytes, &res); err != nil {
		return "", err
	}
	if res.AccessToken == "" {
		return "", fmt.Errorf("paypal token response missing access_token")
	}

	g.accessToken = res.AccessToken
	g.tokenExpiry = time.Now().Add(time.Duration(res.ExpiresIn) * time.Second)
	return g.accessToken, nil
}

// ----------------- CreateOrder -----------------

type paypalOrderResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

func (g *paypalGateway) CreateOrder(ctx context.Context, orderReq OrderRequest) (*Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("total", orderReq.Total),
		zap.Int("items", len(orderReq.Items)),
	)
	timer := metrics.StartTimer()

	body := map[string]interface{}{
		"intent": "CAPTURE",
		"purchase_units": []map[string]interface{}{
			{
				"amount": map[string]interface{}{
					"currency_code": CurrencyCode,
					"value":         orderReq.Total,
					"breakdown": map[string]interface{}{
						"item_total": map[string]interface{}{
							"currency_code": CurrencyCode,
							"value":         orderReq.Total,
						},
					},
				},
				"items": orderReq.Items,
			},
		},
	}
	jsonBody, err := json.Marshal(body)
	if err != nil {
		log.Error("Failed to marshal order request", zap.Error(err))
		return nil, err
	}

	token, err := g.token(ctx)
	if err != nil {
		log.Error("PayPal authentication failed", zap.Error(err))
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, "POST",
		g.baseURL+"/v2/checkout/orders", bytes.NewBuffer(jsonBody))
	if err != nil {
		log.Error("Failed creating request", zap.Error(err))
		return nil, err
	}
	req.Header.Add("Authorization", "Bearer "+token)
	req.Header.Add("Content-Type", "application/json")
	req.Header.Add("Prefer", "return=representation")

	log.Info("Sending order request to PayPal")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		log.Error("PayPal request failed", zap.Error(err))
		return nil, err
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Error("Failed to read response body", zap.Error(err))
		return nil, fmt.Errorf("failed to read paypal response: %w", err)
	}

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		log.Error("PayPal returned non-success status",
			zap.Int("status", resp.StatusCode),
			zap.ByteString("response", bodyBytes),
		)
		return nil, fmt.Errorf("paypal error: %s", string(bodyBytes))
	}

	var res paypalOrderResponse
	if err := json.Unmarshal(bodyBytes, &res); err != nil {
		log.Error("Failed decoding PayPal response", zap.Error(err))
		return nil, err
	}

	log.Info("PayPal order created",
		zap.String("order_id", res.ID),
		zap.String("status", res.Status),
		zap.Duration("duration", timer.Duration()),
	)

	return &Order{ID: res.ID, Status: res.Status}, nil
}

// ----------------- CaptureOrder -----------------

type paypalCaptureResponse struct {
	ID            string `json:"id"`
	Status        string `json:"status"`
	PurchaseUnits []struct {
		Payments struct {
			Captures []struct {
				ID     string `json:"id"`
				Status string `json:"status"`
			} `json:"captures"`
		} `json:"payments"`
	} `json:"purchase_units"`
}

func (g *paypalGateway) CaptureOrder(ctx context.Context, orderID string) (*CaptureResult, error) {
	if orderID == "" {
		return nil, ErrMissingOrderID
	}

	log := logger.FromCtx(ctx).With(zap.String("order_id", orderID))

	token, err := g.token(ctx)
	if err != nil {
		log.Error("PayPal authentication failed", zap.Error(err))
		return nil, err
	}

	// Capture requires an empty JSON body.
	req, err := http.NewRequestWithContext(ctx, "POST",
		g.baseURL+"/v2/checkout/orders/"+orderID+"/capture",
		bytes.NewBufferString("{}"))
	if err != nil {
		log.Error("Failed creating request", zap.Error(err))
		return nil, err
	}
	req.Header.Add("Authorization", "Bearer "+token)
	req.Header.Add("Content-Type", "application/json")

	log.Info("Sending capture request to PayPal")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		log.Error("PayPal capture request failed", zap.Error(err))
		return nil, err
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Error("Failed to read response body", zap.Error(err))
		return nil, fmt.Errorf("failed to read paypal response: %w", err)
	}

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		log.Error("PayPal returned non-success status",
			zap.Int("status", resp.StatusCode),
			zap.ByteString("response", bodyBytes),
		)
		return nil, fmt.Errorf("paypal capture error: %s", string(bodyBytes))
	}

	var res paypalCaptureResponse
	if err := json.Unmarshal(bodyBytes, &res); err != nil {
		log.Error("Failed decoding PayPal response", zap.Error(err))
		return nil, err
	}

	result := &CaptureResult{
		OrderID:   res.ID,
		Status:    res.Status,
		Completed: res.Status == "COMPLETED",
	}
	for _, pu := range res.PurchaseUnits {
		if len(pu.Payments.Captures) > 0 {
			result.CaptureID = pu.Payments.Captures[0].ID
			break
		}
	}

	log.Info("PayPal capture finished",
		zap.String("status", result.Status),
		zap.String("capture_id", result.CaptureID),
	)

	return result, nil
}
