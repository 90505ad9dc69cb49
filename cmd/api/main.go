package main

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/wesplit/wesplit/docs"
	"github.com/wesplit/wesplit/internal/chat"
	"github.com/wesplit/wesplit/internal/config"
	"github.com/wesplit/wesplit/internal/expense"
	"github.com/wesplit/wesplit/internal/group"
	"github.com/wesplit/wesplit/internal/ledger"
	"github.com/wesplit/wesplit/internal/notification"
	"github.com/wesplit/wesplit/internal/recurring"
	"github.com/wesplit/wesplit/internal/settlement"
	"github.com/wesplit/wesplit/pkg/logging"
	mw "github.com/wesplit/wesplit/pkg/middleware"
)

// @title           WeSplit API
// @version         1.0
// @description     Group expense splitting: shared ledgers, recurring expenses, balances and settlement suggestions.
// @BasePath        /api/v1
func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		slog.Info("no .env file found, using environment variables")
	}

	// Load configuration
	cfg := config.Load()
	logging.Setup(cfg.LogLevel)

	// The ledger store owns all state for the process lifetime. The host
	// injects it into every feature service; nothing else mutates it.
	store := ledger.NewStore()

	// Group feature
	groupService := group.NewService(store)
	groupHandler := group.NewHandler(groupService)

	// Expense feature
	expenseService := expense.NewService(store)
	expenseHandler := expense.NewHandler(expenseService)

	// Recurring expense feature
	recurringService := recurring.NewService(store)
	recurringHandler := recurring.NewHandler(recurringService)

	// Balance and settlement projections
	settlementService := settlement.NewService(store)
	settlementHandler := settlement.NewHandler(settlementService)

	// Group chat
	chatService := chat.NewService(chat.NewRepository(), store)
	chatHandler := chat.NewHandler(chatService)

	// Invite notifications
	notificationService := notification.NewService(notification.NewRepository(), store)
	notificationHandler := notification.NewHandler(notificationService)

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(mw.ActingMember(cfg.DemoMemberID))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})
	r.Get("/swagger/*", httpSwagger.Handler())

	// API routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Mount("/groups", groupHandler.Routes())
		r.Mount("/expenses", expenseHandler.Routes())
		r.Mount("/recurring", recurringHandler.Routes())
		r.Mount("/settlements", settlementHandler.Routes())
		r.Mount("/chat", chatHandler.Routes())
		r.Mount("/notifications", notificationHandler.Routes())
	})

	// The ledger never materializes on its own; the host drives it on a
	// timer. The endpoint stays available for manual runs either way.
	if cfg.MaterializeInterval > 0 {
		go func() {
			ticker := time.NewTicker(cfg.MaterializeInterval)
			defer ticker.Stop()
			for range ticker.C {
				if _, err := recurringService.Materialize(context.Background(), time.Now()); err != nil {
					slog.Error("materialization failed", "error", err)
				}
			}
		}()
	}

	slog.Info("server starting", "port", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, r); err != nil {
		slog.Error("server failed", "error", err)
	}
}
