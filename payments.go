package commsig

import (
	"context"

	"github.com/google/uuid"
)

// ──────────────────────────────────────────────
// Payments — capture gateway
// ──────────────────────────────────────────────

// Purchase statuses.
const (
	PurchaseCaptured = "captured"
	PurchaseDeclined = "declined"
)

// PaymentRequest describes one capture attempt.
type PaymentRequest struct {
	UserID      string `json:"user_id"`
	Plan        string `json:"plan"`
	AmountCents int64  `json:"amount_cents"`
}

// PaymentResult is the gateway's verdict on one request.
type PaymentResult struct {
	Status  string `json:"status"`
	Receipt string `json:"receipt,omitempty"`
}

// PaymentGateway captures purchases. A non-nil error means the gateway
// itself failed; a decline is a normal result with PurchaseDeclined status.
type PaymentGateway interface {
	Capture(ctx context.Context, req PaymentRequest) (PaymentResult, error)
}

// MockGateway approves every positive amount and declines the rest. It
// stands in for the real processor in development and tests.
type MockGateway struct{}

var _ PaymentGateway = MockGateway{}

// Capture implements PaymentGateway.
func (MockGateway) Capture(ctx context.Context, req PaymentRequest) (PaymentResult, error) {
	if req.AmountCents <= 0 {
		return PaymentResult{Status: PurchaseDeclined}, nil
	}
	return PaymentResult{
		Status:  PurchaseCaptured,
		Receipt: "MOCK-" + uuid.NewString(),
	}, nil
}
