package repo

import (
	"github.com/webkuhmanis/coinpay/internal/pg"
	adminlogrepo "github.com/webkuhmanis/coinpay/internal/repo/adminlog-repo"
	attemptrepo "github.com/webkuhmanis/coinpay/internal/repo/attempt-repo"
	paymentrepo "github.com/webkuhmanis/coinpay/internal/repo/payment-repo"
	userrepo "github.com/webkuhmanis/coinpay/internal/repo/user-repo"
	"github.com/webkuhmanis/coinpay/internal/service/authservice"
	"github.com/webkuhmanis/coinpay/internal/service/balanceservice"
	"github.com/webkuhmanis/coinpay/internal/service/limiterservice"
	"github.com/webkuhmanis/coinpay/internal/service/paymentservice"
)

type Repositories struct {
	UserRepo     authservice.Repo
	BalanceRepo  balanceservice.UserRepo
	PaymentRepo  paymentservice.Repo
	AttemptRepo  limiterservice.AttemptRepo
	AdminLogRepo paymentservice.AdminLogRepo
}

func New(conn pg.Database) *Repositories {
	users := userrepo.New(conn)

	return &Repositories{
		UserRepo:     users,
		BalanceRepo:  users,
		PaymentRepo:  paymentrepo.New(conn),
		AttemptRepo:  attemptrepo.New(conn),
		AdminLogRepo: adminlogrepo.New(conn),
	}
}
