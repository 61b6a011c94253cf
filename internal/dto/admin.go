package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type ActionablePaymentDTO struct {
	ID           uuid.UUID       `json:"id"`
	UserID       int             `json:"user_id"`
	Username     string          `json:"username"`
	Amount       decimal.Decimal `json:"amount" example:"50.00"`
	ProofRef     string          `json:"proof_ref"`
	Status       string          `json:"status" example:"pending"`
	OTPExpiresAt *time.Time      `json:"otp_expires_at,omitempty"`
	Notes        string          `json:"notes,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
}

type ApproveRequestDTO struct {
	Notes string `json:"notes,omitempty" example:"verified against bank statement"`
}

type ApproveResponseDTO struct {
	OTP          string    `json:"otp" example:"123456"`
	OTPExpiresAt time.Time `json:"otp_expires_at"`
}

type RejectRequestDTO struct {
	Reason string `json:"reason,omitempty" example:"blurry proof"`
}
