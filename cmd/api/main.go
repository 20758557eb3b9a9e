package main

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/Khanalpratyush/splittwise/docs"
	"github.com/Khanalpratyush/splittwise/internal/activity"
	"github.com/Khanalpratyush/splittwise/internal/balance"
	"github.com/Khanalpratyush/splittwise/internal/config"
	"github.com/Khanalpratyush/splittwise/internal/database"
	"github.com/Khanalpratyush/splittwise/internal/expense"
	expensesplit "github.com/Khanalpratyush/splittwise/internal/expense/split"
	"github.com/Khanalpratyush/splittwise/internal/friend"
	"github.com/Khanalpratyush/splittwise/internal/group"
	"github.com/Khanalpratyush/splittwise/internal/user"
	"github.com/Khanalpratyush/splittwise/pkg/auth"
	"github.com/Khanalpratyush/splittwise/pkg/logging"
	mw "github.com/Khanalpratyush/splittwise/pkg/middleware"
)

// @title        Splittwise API
// @version      1.0
// @description  Expense splitting service with groups, friends, and derived balances.
// @BasePath     /api/v1
func main() {
	logging.Setup()

	if err := godotenv.Load(); err != nil {
		slog.Info("no .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	db, err := database.NewPostgresConnection(cfg.DatabaseURL)
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}
	slog.Info("connected to database")

	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.TokenTTL)
	splitFactory := expensesplit.NewFactory()

	userRepo := user.NewRepository(db)
	userService := user.NewService(userRepo, jwtManager)
	userHandler := user.NewHandler(userService)

	friendRepo := friend.NewRepository(db)
	friendService := friend.NewService(friendRepo, userRepo)
	friendHandler := friend.NewHandler(friendService)

	groupRepo := group.NewRepository(db)
	groupService := group.NewService(groupRepo, userRepo)
	groupHandler := group.NewHandler(groupService)

	activityRepo := activity.NewRepository(db)
	activityService := activity.NewService(activityRepo)
	activityHandler := activity.NewHandler(activityService)

	expenseRepo := expense.NewRepository(db)
	expenseService := expense.NewService(expenseRepo, splitFactory, activityService)
	expenseHandler := expense.NewHandler(expenseService)

	balanceService := balance.NewService(expenseRepo, userRepo, friendRepo)
	balanceHandler := balance.NewHandler(balanceService)

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(mw.Metrics)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/swagger/*", httpSwagger.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Mount("/auth", userHandler.AuthRoutes())

		r.Group(func(r chi.Router) {
			r.Use(mw.Auth(jwtManager))

			r.Mount("/users", userHandler.Routes())
			r.Mount("/friends", friendHandler.Routes())
			r.Mount("/groups", groupHandler.Routes())
			r.Mount("/expenses", expenseHandler.Routes())
			r.Mount("/balances", balanceHandler.Routes())
			r.Mount("/activity", activityHandler.Routes())
		})
	})

	slog.Info("server starting", "port", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, r); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
