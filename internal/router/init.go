package router

import (
	"github.com/bhbank/credit-backend/internal/application"
	"github.com/bhbank/credit-backend/internal/container"
	pginfra "github.com/bhbank/credit-backend/internal/infrastructure/postgres"
	handlers "github.com/bhbank/credit-backend/internal/interface/http"
	"github.com/bhbank/credit-backend/internal/router/modules"
)

// InitModules builds all feature modules from the container singletons and
// registers them with the router registry. Called once during startup.
func InitModules(r *Registry) {
	cfg := container.GetConfig()
	logger := container.GetLogger()
	pool := container.GetPGPool()
	jwt := container.GetJWT()

	userRepo := pginfra.NewUserRepository(pool)
	creditRepo := pginfra.NewCreditRepository(pool)
	reclamationRepo := pginfra.NewReclamationRepository(pool)
	chatRepo := pginfra.NewChatRepository(pool)

	authSvc := application.NewAuthService(
		userRepo, jwt, container.GetRedis(), logger,
		cfg.LoginMaxAttempts, cfg.LoginAttemptsTTL,
	)
	creditSvc := application.NewCreditService(
		creditRepo, publisherOrNil(), logger,
		container.GetES(), cfg.ESCreditsIndex, cfg.MarketReferenceRate,
	)
	reclamationSvc := application.NewReclamationService(reclamationRepo, logger)
	chatSvc := application.NewChatService(chatRepo, logger)

	r.Add(modules.NewAuthModule(handlers.NewAuthHandler(authSvc, logger), jwt))
	r.Add(modules.NewCreditModule(handlers.NewCreditHandler(creditSvc, logger), jwt))
	r.Add(modules.NewReclamationModule(handlers.NewReclamationHandler(reclamationSvc, logger), jwt))
	r.Add(modules.NewChatModule(handlers.NewChatHandler(chatSvc, logger), jwt))
	r.Add(modules.NewEmailModule(handlers.NewEmailHandler(creditSvc, logger, cfg), jwt))
	r.Add(modules.NewDocumentModule(handlers.NewDocumentHandler(container.GetGCS(), cfg.GCSBucket, logger), jwt))
	if cfg.DebugMetricsEnabled {
		r.Add(modules.NewDebugModule())
	}
}

// publisherOrNil keeps the credit service's Publisher field a true nil
// interface when RabbitMQ is not configured, instead of a typed nil pointer.
func publisherOrNil() application.Publisher {
	if p := container.GetRabbitPub(); p != nil {
		return p
	}
	return nil
}
