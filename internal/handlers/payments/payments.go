package payments

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/webkuhmanis/coinpay/internal/domain"
	"github.com/webkuhmanis/coinpay/internal/dto"
	"github.com/webkuhmanis/coinpay/internal/service/paymentservice"
	"github.com/webkuhmanis/coinpay/pkg/auth"
	"github.com/webkuhmanis/coinpay/pkg/utils"
)

type Service interface {
	Submit(ctx context.Context, userID int, amount decimal.Decimal, proofRef string) (*domain.Payment, error)
	GetPayment(ctx context.Context, userID int, paymentID uuid.UUID) (*domain.Payment, error)
	VerifyOTP(ctx context.Context, userID int, paymentID uuid.UUID, code string) (decimal.Decimal, error)
	History(ctx context.Context, userID int, limit int) ([]domain.Payment, error)
}

type PaymentsHandler struct {
	paymentService Service
}

func New(paymentService Service) *PaymentsHandler {
	return &PaymentsHandler{
		paymentService: paymentService,
	}
}

// Submit godoc
//
//	@Summary		Submit payment proof
//	@Description	Submit proof of an off-platform payment for manual verification
//	@Tags			Payments
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.SubmitPaymentRequestDTO	true	"Payment submission payload"
//	@Success		201		{object}	dto.SubmitPaymentResponseDTO
//	@Failure		400		{object}	utils.Response	"Invalid amount or missing proof"
//	@Failure		401		{object}	utils.Response	"User not authorized"
//	@Failure		500		{object}	utils.Response	"Internal server error"
//	@Router			/api/user/payments [post]
func (h *PaymentsHandler) Submit(w http.ResponseWriter, r *http.Request) {
	identity, _ := auth.IdentityFromContext(r.Context())

	var req dto.SubmitPaymentRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithErrorCode(w, http.StatusBadRequest, "validation_error", "Invalid request body")
		return
	}

	payment, err := h.paymentService.Submit(r.Context(), identity.UserID, req.Amount, req.ProofRef)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, dto.SubmitPaymentResponseDTO{
		PaymentID: payment.ID,
		Status:    payment.Status,
		CreatedAt: payment.CreatedAt,
	})
}

// GetPayment godoc
//
//	@Summary		Get payment status
//	@Description	Retrieve one of the caller's payments by id
//	@Tags			Payments
//	@Security		BearerAuth
//	@Produce		json
//	@Param			id	path		string	true	"Payment ID"
//	@Success		200	{object}	dto.PaymentResponseDTO
//	@Failure		401	{object}	utils.Response	"User not authorized"
//	@Failure		404	{object}	utils.Response	"Payment not found"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/user/payments/{id} [get]
func (h *PaymentsHandler) GetPayment(w http.ResponseWriter, r *http.Request) {
	identity, _ := auth.IdentityFromContext(r.Context())

	paymentID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		utils.RespondWithErrorCode(w, http.StatusNotFound, "not_found", "Payment not found")
		return
	}

	payment, err := h.paymentService.GetPayment(r.Context(), identity.UserID, paymentID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, toPaymentDTO(payment))
}

// VerifyOTP godoc
//
//	@Summary		Confirm payment receipt
//	@Description	Verify the one-time code for an approved payment and credit coins
//	@Tags			Payments
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string					true	"Payment ID"
//	@Param			request	body		dto.VerifyOTPRequestDTO	true	"OTP payload"
//	@Success		200		{object}	dto.VerifyOTPResponseDTO
//	@Failure		400		{object}	utils.Response	"Invalid code, state, or expired OTP"
//	@Failure		401		{object}	utils.Response	"User not authorized"
//	@Failure		404		{object}	utils.Response	"Payment not found"
//	@Failure		429		{object}	utils.Response	"Too many attempts"
//	@Failure		500		{object}	utils.Response	"Internal server error"
//	@Router			/api/user/payments/{id}/verify-otp [post]
func (h *PaymentsHandler) VerifyOTP(w http.ResponseWriter, r *http.Request) {
	identity, _ := auth.IdentityFromContext(r.Context())

	paymentID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		utils.RespondWithErrorCode(w, http.StatusNotFound, "not_found", "Payment not found")
		return
	}

	var req dto.VerifyOTPRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithErrorCode(w, http.StatusBadRequest, "validation_error", "Invalid request body")
		return
	}

	coinsAdded, err := h.paymentService.VerifyOTP(r.Context(), identity.UserID, paymentID, req.Code)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.VerifyOTPResponseDTO{
		CoinsAdded: coinsAdded,
		Message:    "Payment confirmed! Coins added to your account",
	})
}

// History godoc
//
//	@Summary		Get payment history
//	@Description	List the caller's payments, newest first
//	@Tags			Payments
//	@Security		BearerAuth
//	@Produce		json
//	@Param			limit	query		int	false	"Max entries (default 20)"
//	@Success		200		{array}		dto.PaymentResponseDTO
//	@Failure		401		{object}	utils.Response	"User not authorized"
//	@Failure		500		{object}	utils.Response	"Internal server error"
//	@Router			/api/user/payments [get]
func (h *PaymentsHandler) History(w http.ResponseWriter, r *http.Request) {
	identity, _ := auth.IdentityFromContext(r.Context())

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	history, err := h.paymentService.History(r.Context(), identity.UserID, limit)
	if err != nil {
		utils.RespondWithErrorCode(w, http.StatusInternalServerError, "internal_error", "Failed to fetch history")
		return
	}

	response := make([]dto.PaymentResponseDTO, len(history))
	for i, p := range history {
		response[i] = toPaymentDTO(&p)
	}
	utils.RespondWithJSON(w, http.StatusOK, response)
}

func toPaymentDTO(p *domain.Payment) dto.PaymentResponseDTO {
	return dto.PaymentResponseDTO{
		ID:           p.ID,
		Amount:       p.Amount,
		Status:       p.Status,
		OTPExpiresAt: p.OTPExpiresAt,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

// respondServiceError maps lifecycle errors to stable codes. Lockout and
// expiry messages intentionally say nothing about the submitted code.
func respondServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, paymentservice.ErrInvalidAmount),
		errors.Is(err, paymentservice.ErrProofRequired),
		errors.Is(err, paymentservice.ErrCodeRequired):
		utils.RespondWithErrorCode(w, http.StatusBadRequest, "validation_error", err.Error())
	case errors.Is(err, paymentservice.ErrPaymentNotFound):
		utils.RespondWithErrorCode(w, http.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, paymentservice.ErrRateLimited):
		utils.RespondWithErrorCode(w, http.StatusTooManyRequests, "rate_limited", err.Error())
	case errors.Is(err, paymentservice.ErrPaymentNotApproved):
		utils.RespondWithErrorCode(w, http.StatusConflict, "invalid_state", err.Error())
	case errors.Is(err, paymentservice.ErrOTPExpired):
		utils.RespondWithErrorCode(w, http.StatusGone, "expired", err.Error())
	case errors.Is(err, paymentservice.ErrOTPAlreadyUsed):
		utils.RespondWithErrorCode(w, http.StatusConflict, "already_used", err.Error())
	case errors.Is(err, paymentservice.ErrInvalidOTP):
		utils.RespondWithErrorCode(w, http.StatusBadRequest, "invalid_otp", err.Error())
	default:
		utils.RespondWithErrorCode(w, http.StatusInternalServerError, "internal_error", "Internal server error")
	}
}
