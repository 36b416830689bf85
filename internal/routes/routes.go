package routes

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/payportal/payportal/internal/config"
	"github.com/payportal/payportal/internal/employee"
	"github.com/payportal/payportal/internal/identity"
	"github.com/payportal/payportal/internal/middleware"
	"github.com/payportal/payportal/internal/payment"
	"github.com/payportal/payportal/internal/token"
)

// Deps aggregates shared dependencies required to wire routes. A nil DB
// selects in-memory stores, which only development and tests may use.
type Deps struct {
	Cfg    config.Config
	DB     *mongo.Database
	Logger *slog.Logger
}

// Setup configures middlewares and all application routes.
func Setup(app *fiber.App, d Deps) error {
	if d.Cfg.IsProduction() && d.DB == nil {
		return fmt.Errorf("database is required when APP_ENV=%s", d.Cfg.AppEnv)
	}

	app.Use(recover.New())
	app.Use(helmet.New())
	app.Use(cors.New(cors.Config{
		AllowOriginsFunc: func(string) bool { return true },
		AllowCredentials: true,
	}))
	app.Use(middleware.RequestID())
	app.Use(middleware.Audit(d.Logger))

	RegisterHealthRoutes(app, d)

	// Stores: Mongo-backed when a database is wired, in-memory otherwise.
	var (
		users     identity.Repository
		employees employee.Repository
		payments  payment.Repository
	)
	if d.DB != nil {
		userRepo := identity.NewMongoRepository(d.DB)
		if err := userRepo.EnsureIndexes(context.Background()); err != nil {
			return err
		}
		empRepo := employee.NewMongoRepository(d.DB)
		if err := empRepo.EnsureIndexes(context.Background()); err != nil {
			return err
		}
		users = userRepo
		employees = empRepo
		payments = payment.NewMongoRepository(d.DB)
	} else {
		users = identity.NewMemoryRepository()
		employees = employee.NewMemoryRepository()
		payments = payment.NewMemoryRepository()
	}

	issuer := token.NewIssuer(d.Cfg.CustomerTokenSecret, d.Cfg.EmployeeTokenSecret, d.Cfg.TokenTTL)

	identitySvc := identity.NewService(users)
	identityHandler := identity.NewHandler(identitySvc, issuer)

	employeeSvc := employee.NewService(employees)
	if err := employeeSvc.Seed(context.Background(),
		d.Cfg.EmployeeUsername, d.Cfg.EmployeePassword, d.Cfg.EmployeePasswordHash); err != nil {
		return err
	}
	employeeHandler := employee.NewHandler(employeeSvc, issuer, d.Cfg.IsProduction())

	paymentSvc := payment.NewService(payments, payment.Options{
		AllowStatusOverride:   d.Cfg.AllowStatusOverride,
		RejectUnknownCurrency: d.Cfg.RejectUnknownCurrency,
	})
	paymentHandler := payment.NewHandler(paymentSvc)

	customerLimiter := middleware.LoginRateLimit(d.Cfg.LoginRateMax, d.Cfg.RateWindow)
	employeeLimiter := middleware.LoginRateLimit(d.Cfg.EmployeeLoginRateMax, d.Cfg.RateWindow)
	customerAuth := middleware.CustomerAuth(issuer)
	employeeAuth := middleware.EmployeeAuth(issuer)

	RegisterUserRoutes(app, identityHandler, customerLimiter)
	RegisterPaymentRoutes(app, paymentHandler, customerAuth)
	RegisterEmployeeRoutes(app, employeeHandler, paymentHandler, employeeLimiter, employeeAuth)

	return nil
}
