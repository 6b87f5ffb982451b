package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/shopspring/decimal"

	"roomshift/internal/config"
	apperrors "roomshift/internal/errors"
)

var hundred = decimal.NewFromInt(100)

// ToPaisa converts rupees to paisa, the minor unit Khalti works in.
func ToPaisa(amount decimal.Decimal) int64 {
	return amount.Mul(hundred).Round(0).IntPart()
}

// KhaltiVerification is the subset of Khalti's verify response we keep.
type KhaltiVerification struct {
	Idx    string `json:"idx"`
	Amount int64  `json:"amount"`
	State  struct {
		Name string `json:"name"`
	} `json:"state"`
}

// KhaltiGateway exposes the checkout key and server-side verification.
type KhaltiGateway interface {
	PublicKey() string
	Verify(ctx context.Context, token string, paisa int64) (*KhaltiVerification, error)
}

// Khalti talks to the Khalti merchant API.
type Khalti struct {
	cfg        config.KhaltiConfig
	httpClient *http.Client
}

// Ensure Khalti implements KhaltiGateway
var _ KhaltiGateway = (*Khalti)(nil)

// NewKhalti creates a Khalti client.
func NewKhalti(cfg config.KhaltiConfig, httpClient *http.Client) *Khalti {
	return &Khalti{cfg: cfg, httpClient: httpClient}
}

// PublicKey is handed to the browser checkout widget.
func (k *Khalti) PublicKey() string {
	return k.cfg.PublicKey
}

// Verify confirms a checkout token with Khalti. A rejected token yields
// ErrPaymentVerificationFailed; transport problems yield ErrGateway.
func (k *Khalti) Verify(ctx context.Context, token string, paisa int64) (*KhaltiVerification, error) {
	payload, err := json.Marshal(map[string]interface{}{
		"token":  token,
		"amount": paisa,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal khalti request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, k.cfg.VerifyURL, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("build khalti request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Key "+k.cfg.SecretKey)

	resp, err := k.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: khalti: %v", apperrors.ErrGateway, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err != nil {
		return nil, fmt.Errorf("%w: khalti: read body: %v", apperrors.ErrGateway, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: khalti returned status %d: %s", apperrors.ErrPaymentVerificationFailed, resp.StatusCode, body)
	}

	var verification KhaltiVerification
	if err := json.Unmarshal(body, &verification); err != nil {
		return nil, fmt.Errorf("%w: khalti: parse response: %v", apperrors.ErrGateway, err)
	}
	if verification.Idx == "" {
		return nil, fmt.Errorf("%w: khalti response has no idx", apperrors.ErrPaymentVerificationFailed)
	}
	return &verification, nil
}
