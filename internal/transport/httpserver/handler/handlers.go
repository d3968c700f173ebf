package handler

import (
	"finance-tracker-go/internal/domain/cards"
	"finance-tracker-go/internal/domain/categories"
	"finance-tracker-go/internal/domain/entries"
	"finance-tracker-go/internal/domain/investments"
	"finance-tracker-go/internal/domain/quotes"
	"finance-tracker-go/internal/domain/reports"
	"finance-tracker-go/internal/domain/user"
	"finance-tracker-go/internal/validation"
	"finance-tracker-go/pkg/logger"
)

type Handlers struct {
	Users       *user.Service
	Categories  *categories.Service
	Cards       *cards.Service
	Entries     *entries.Service
	Reports     *reports.Service
	Investments *investments.Service
	Quotes      *quotes.Service
	validator   *validation.Validator
	log         logger.Logger
}

type Services struct {
	Users       *user.Service
	Categories  *categories.Service
	Cards       *cards.Service
	Entries     *entries.Service
	Reports     *reports.Service
	Investments *investments.Service
	Quotes      *quotes.Service
}

func New(services Services, validator *validation.Validator, log logger.Logger) *Handlers {
	return &Handlers{
		Users:       services.Users,
		Categories:  services.Categories,
		Cards:       services.Cards,
		Entries:     services.Entries,
		Reports:     services.Reports,
		Investments: services.Investments,
		Quotes:      services.Quotes,
		validator:   validator,
		log:         log,
	}
}
