package app

import (
	"fmt"
	"net/http"
	"time"

	"finance-tracker-go/internal/config"
	"finance-tracker-go/internal/db"
	"finance-tracker-go/internal/domain/cards"
	"finance-tracker-go/internal/domain/categories"
	"finance-tracker-go/internal/domain/entries"
	"finance-tracker-go/internal/domain/investments"
	"finance-tracker-go/internal/domain/quotes"
	"finance-tracker-go/internal/domain/reports"
	"finance-tracker-go/internal/domain/user"
	"finance-tracker-go/internal/events"
	"finance-tracker-go/internal/quoteprovider"
	"finance-tracker-go/internal/repository/inmemory"
	cardsrepo "finance-tracker-go/internal/repository/postgres/cards"
	categoriesrepo "finance-tracker-go/internal/repository/postgres/categories"
	entriesrepo "finance-tracker-go/internal/repository/postgres/entries"
	investmentsrepo "finance-tracker-go/internal/repository/postgres/investments"
	quotesrepo "finance-tracker-go/internal/repository/postgres/quotes"
	reportsrepo "finance-tracker-go/internal/repository/postgres/reports"
	userrepo "finance-tracker-go/internal/repository/postgres/user"
	"finance-tracker-go/internal/transport/httpserver"
	"finance-tracker-go/internal/transport/httpserver/handler"
	"finance-tracker-go/internal/validation"
	"finance-tracker-go/pkg/logger"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const developmentJWTSecret = "finance-tracker-development-secret"

type App struct {
	cfg        config.Config
	log        logger.Logger
	httpServer *http.Server
	scheduler  *quotes.Scheduler
	publisher  *events.Publisher
	db         *gorm.DB
}

func New(log logger.Logger) (*App, error) {
	log.Info("app: loading config")
	cfg, err := config.Load(log)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.Auth.JWTSecret == "" {
		log.Warn("app: AUTH_JWT_SECRET not set, using development secret")
		cfg.Auth.JWTSecret = developmentJWTSecret
	}

	decimal.MarshalJSONWithoutQuotes = true

	log.Info("app: initializing database")
	dbConn, err := db.NewPostgres(cfg.DB, log)
	if err != nil {
		return nil, err
	}
	if cfg.DB.AutoMigrate {
		log.Info("app: applying migrations")
		if err := db.Migrate(dbConn); err != nil {
			closeDB(dbConn)
			return nil, fmt.Errorf("migrate: %w", err)
		}
	}

	var publisher *events.Publisher
	if cfg.AMQP.URL != "" {
		log.Info("app: connecting event publisher", "exchange", cfg.AMQP.Exchange)
		publisher, err = events.NewPublisher(cfg.AMQP, log)
		if err != nil {
			closeDB(dbConn)
			return nil, err
		}
	}

	location, err := time.LoadLocation(cfg.Quotes.TimeZone)
	if err != nil {
		closeDB(dbConn)
		return nil, fmt.Errorf("load quotes timezone: %w", err)
	}

	usersService := user.NewService(
		userrepo.NewPostgres(dbConn),
		user.NewTokens(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL),
		cfg.Auth.BcryptCost,
	)
	categoriesService := categories.NewServiceWithCache(
		categoriesrepo.NewPostgres(dbConn),
		inmemory.NewCategoriesCache(),
		cfg.Categories.CacheTTL,
	)
	cardsService := cards.NewService(cardsrepo.NewPostgres(dbConn))
	entriesService := entries.NewService(entriesrepo.NewPostgres(dbConn), categoriesService, cardsService)
	reportsService := reports.NewService(reportsrepo.NewPostgres(dbConn), entriesService)
	investmentsService := investments.NewService(investmentsrepo.NewPostgres(dbConn))

	var quotesPublisher quotes.Publisher
	if publisher != nil {
		quotesPublisher = publisher
	}
	quotesService := quotes.NewService(
		quotesrepo.NewPostgres(dbConn),
		quoteprovider.New(cfg.Quotes),
		quotesPublisher,
		log.Named("quotes"),
		quotes.Config{
			Delay:     cfg.Quotes.Delay,
			AfterHour: cfg.Quotes.RunAfterHour,
			Location:  location,
		},
	)

	var scheduler *quotes.Scheduler
	if cfg.Quotes.SchedulerEnabled {
		scheduler = quotes.NewScheduler(quotesService, cfg.Quotes.ScheduleInterval, log.Named("quotes.scheduler"))
	}

	log.Info("app: initializing router")
	handlers := handler.New(handler.Services{
		Users:       usersService,
		Categories:  categoriesService,
		Cards:       cardsService,
		Entries:     entriesService,
		Reports:     reportsService,
		Investments: investmentsService,
		Quotes:      quotesService,
	}, validation.MustNew(), log.Named("http"))
	router := httpserver.NewRouter(cfg, handlers, usersService, log)

	return &App{
		cfg:        cfg,
		log:        log,
		httpServer: httpserver.New(cfg, router),
		scheduler:  scheduler,
		publisher:  publisher,
		db:         dbConn,
	}, nil
}

func (a *App) HTTPServer() *http.Server {
	return a.httpServer
}

// Scheduler is nil when the periodic quote refresh is disabled.
func (a *App) Scheduler() *quotes.Scheduler {
	return a.scheduler
}

func (a *App) Close() error {
	if a.publisher != nil {
		if err := a.publisher.Close(); err != nil {
			a.log.Error("app: publisher close failed", "err", err)
		}
	}
	if a.db == nil {
		return nil
	}
	sqlDB, err := a.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func closeDB(dbConn *gorm.DB) {
	if sqlDB, err := dbConn.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
