package balance

import (
	"context"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/webkuhmanis/coinpay/internal/dto"
	"github.com/webkuhmanis/coinpay/pkg/auth"
	"github.com/webkuhmanis/coinpay/pkg/utils"
)

type Service interface {
	GetCoins(ctx context.Context, userID int) (decimal.Decimal, error)
	Credit(ctx context.Context, userID int, amount decimal.Decimal) (decimal.Decimal, error)
}

type BalanceHandler struct {
	balanceService Service
}

func New(balanceService Service) *BalanceHandler {
	return &BalanceHandler{
		balanceService: balanceService,
	}
}

// GetBalance godoc
//
//	@Summary		Get current coin balance
//	@Description	Retrieve the credited coin balance for the authenticated user
//	@Tags			Balance
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	dto.BalanceResponseDTO	"Current coin balance"
//	@Failure		401	{object}	utils.Response			"User not authorized"
//	@Failure		500	{object}	utils.Response			"Internal server error"
//	@Router			/api/user/balance [get]
func (h *BalanceHandler) GetBalance(w http.ResponseWriter, r *http.Request) {
	identity, _ := auth.IdentityFromContext(r.Context())

	coins, err := h.balanceService.GetCoins(r.Context(), identity.UserID)
	if err != nil {
		utils.RespondWithErrorCode(w, http.StatusInternalServerError, "internal_error", "Internal server error")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.BalanceResponseDTO{
		Coins: coins,
	})
}
