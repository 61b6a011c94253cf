package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type SubmitPaymentRequestDTO struct {
	Amount   decimal.Decimal `json:"amount" example:"50.00"`
	ProofRef string          `json:"proof_ref" example:"https://imgur.com/receipt.png"`
}

type SubmitPaymentResponseDTO struct {
	PaymentID uuid.UUID `json:"payment_id"`
	Status    string    `json:"status" example:"pending"`
	CreatedAt time.Time `json:"created_at"`
}

type PaymentResponseDTO struct {
	ID           uuid.UUID       `json:"id"`
	Amount       decimal.Decimal `json:"amount" example:"50.00"`
	Status       string          `json:"status" example:"approved"`
	OTPExpiresAt *time.Time      `json:"otp_expires_at,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

type VerifyOTPRequestDTO struct {
	Code string `json:"otp" example:"123456"`
}

type VerifyOTPResponseDTO struct {
	CoinsAdded decimal.Decimal `json:"coins_added" example:"50.00"`
	Message    string          `json:"message"`
}
