package admin

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/webkuhmanis/coinpay/internal/domain"
	"github.com/webkuhmanis/coinpay/internal/dto"
	"github.com/webkuhmanis/coinpay/internal/service/paymentservice"
	"github.com/webkuhmanis/coinpay/pkg/auth"
	"github.com/webkuhmanis/coinpay/pkg/utils"
)

type Service interface {
	ListActionable(ctx context.Context) ([]domain.ActionablePayment, error)
	Approve(ctx context.Context, adminID int, paymentID uuid.UUID, notes string) (*paymentservice.ApproveResult, error)
	RegenerateOTP(ctx context.Context, adminID int, paymentID uuid.UUID) (*paymentservice.ApproveResult, error)
	Reject(ctx context.Context, adminID int, paymentID uuid.UUID, reason string) error
}

type AdminHandler struct {
	paymentService Service
}

func New(paymentService Service) *AdminHandler {
	return &AdminHandler{
		paymentService: paymentService,
	}
}

// ListPayments godoc
//
//	@Summary		List payments awaiting action
//	@Description	List pending and approved payments with the submitting user's name
//	@Tags			Admin
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{array}		dto.ActionablePaymentDTO
//	@Failure		401	{object}	utils.Response	"User not authorized"
//	@Failure		403	{object}	utils.Response	"Admin access required"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/admin/payments [get]
func (h *AdminHandler) ListPayments(w http.ResponseWriter, r *http.Request) {
	payments, err := h.paymentService.ListActionable(r.Context())
	if err != nil {
		utils.RespondWithErrorCode(w, http.StatusInternalServerError, "internal_error", "Failed to fetch payments")
		return
	}

	response := make([]dto.ActionablePaymentDTO, len(payments))
	for i, p := range payments {
		response[i] = dto.ActionablePaymentDTO{
			ID:           p.ID,
			UserID:       p.UserID,
			Username:     p.Username,
			Amount:       p.Amount,
			ProofRef:     p.ProofRef,
			Status:       p.Status,
			OTPExpiresAt: p.OTPExpiresAt,
			Notes:        p.Notes,
			CreatedAt:    p.CreatedAt,
		}
	}
	utils.RespondWithJSON(w, http.StatusOK, response)
}

// Approve godoc
//
//	@Summary		Approve a payment
//	@Description	Approve a pending payment and issue a one-time code for the user
//	@Tags			Admin
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string					true	"Payment ID"
//	@Param			request	body		dto.ApproveRequestDTO	false	"Approval notes"
//	@Success		200		{object}	dto.ApproveResponseDTO
//	@Failure		401		{object}	utils.Response	"User not authorized"
//	@Failure		403		{object}	utils.Response	"Admin access required"
//	@Failure		404		{object}	utils.Response	"Payment not found"
//	@Failure		500		{object}	utils.Response	"Internal server error"
//	@Router			/api/admin/payments/{id}/approve [post]
func (h *AdminHandler) Approve(w http.ResponseWriter, r *http.Request) {
	identity, _ := auth.IdentityFromContext(r.Context())

	paymentID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		utils.RespondWithErrorCode(w, http.StatusNotFound, "not_found", "Payment not found")
		return
	}

	var req dto.ApproveRequestDTO
	if r.Body != nil {
		_ = json.NewDecoder(r.Body).Decode(&req)
	}

	result, err := h.paymentService.Approve(r.Context(), identity.UserID, paymentID, req.Notes)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.ApproveResponseDTO{
		OTP:          result.OTP,
		OTPExpiresAt: result.OTPExpiresAt,
	})
}

// RegenerateOTP godoc
//
//	@Summary		Regenerate a payment OTP
//	@Description	Issue a fresh one-time code for an approved payment; the old code stops working
//	@Tags			Admin
//	@Security		BearerAuth
//	@Produce		json
//	@Param			id	path		string	true	"Payment ID"
//	@Success		200	{object}	dto.ApproveResponseDTO
//	@Failure		401	{object}	utils.Response	"User not authorized"
//	@Failure		403	{object}	utils.Response	"Admin access required"
//	@Failure		404	{object}	utils.Response	"Payment not found or not approved"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/admin/payments/{id}/regenerate-otp [post]
func (h *AdminHandler) RegenerateOTP(w http.ResponseWriter, r *http.Request) {
	identity, _ := auth.IdentityFromContext(r.Context())

	paymentID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		utils.RespondWithErrorCode(w, http.StatusNotFound, "not_found", "Payment not found")
		return
	}

	result, err := h.paymentService.RegenerateOTP(r.Context(), identity.UserID, paymentID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.ApproveResponseDTO{
		OTP:          result.OTP,
		OTPExpiresAt: result.OTPExpiresAt,
	})
}

// Reject godoc
//
//	@Summary		Reject a payment
//	@Description	Reject a pending or approved payment with an optional reason
//	@Tags			Admin
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string				true	"Payment ID"
//	@Param			request	body		dto.RejectRequestDTO	false	"Rejection reason"
//	@Success		200		{object}	utils.Response
//	@Failure		401		{object}	utils.Response	"User not authorized"
//	@Failure		403		{object}	utils.Response	"Admin access required"
//	@Failure		404		{object}	utils.Response	"Payment not found"
//	@Failure		500		{object}	utils.Response	"Internal server error"
//	@Router			/api/admin/payments/{id}/reject [post]
func (h *AdminHandler) Reject(w http.ResponseWriter, r *http.Request) {
	identity, _ := auth.IdentityFromContext(r.Context())

	paymentID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		utils.RespondWithErrorCode(w, http.StatusNotFound, "not_found", "Payment not found")
		return
	}

	var req dto.RejectRequestDTO
	if r.Body != nil {
		_ = json.NewDecoder(r.Body).Decode(&req)
	}

	if err := h.paymentService.Reject(r.Context(), identity.UserID, paymentID, req.Reason); err != nil {
		respondServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.Response{Message: "Payment rejected"})
}

func respondServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, paymentservice.ErrPaymentNotFound):
		utils.RespondWithErrorCode(w, http.StatusNotFound, "not_found", err.Error())
	default:
		utils.RespondWithErrorCode(w, http.StatusInternalServerError, "internal_error", "Internal server error")
	}
}
