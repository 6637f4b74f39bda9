package handler

import (
	expensesdomain "tiptrip-go/internal/domain/expenses"
	tripdomain "tiptrip-go/internal/domain/trip"
	userdomain "tiptrip-go/internal/domain/user"
	"tiptrip-go/pkg/logger"
)

type Handlers struct {
	Users    *userdomain.Service
	Trips    *tripdomain.Service
	Expenses *expensesdomain.Service
	log      logger.Logger
}

func New(users *userdomain.Service, trips *tripdomain.Service, expenses *expensesdomain.Service, log logger.Logger) *Handlers {
	return &Handlers{
		Users:    users,
		Trips:    trips,
		Expenses: expenses,
		log:      log,
	}
}
