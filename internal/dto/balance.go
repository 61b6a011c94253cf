package dto

import "github.com/shopspring/decimal"

type BalanceResponseDTO struct {
	Coins decimal.Decimal `json:"coins" example:"500.50"`
}
