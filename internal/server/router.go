// internal/server/router.go
package server

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	chatcore "support-chat-backend/internal/chat"
	"support-chat-backend/internal/common/database"
	"support-chat-backend/internal/common/logger"
	"support-chat-backend/internal/common/observability"
	"support-chat-backend/internal/escalation"
	chathandler "support-chat-backend/internal/handlers/chat"
	"support-chat-backend/internal/handlers/conversation"
	"support-chat-backend/internal/handlers/email"
	"support-chat-backend/internal/handlers/translation"
	"support-chat-backend/internal/store"
	"support-chat-backend/internal/translate"
	"support-chat-backend/pkg/utils"
)

// Dependencies bundles everything the router needs.
type Dependencies struct {
	Manager        *chatcore.Manager
	Stores         *store.Resolver
	Escalation     *escalation.Service
	Translate      *translate.Service
	Obs            *observability.Observability
	Redis          *database.RedisClient
	RequestTimeout time.Duration
	Log            logger.Logger
}

// NewRouter wires HTTP routes to core services.
func NewRouter(deps Dependencies) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(cors)
	if deps.RequestTimeout > 0 {
		r.Use(middleware.Timeout(deps.RequestTimeout))
	}

	chathandler.NewHandler(deps.Manager, deps.Obs, deps.Log).RegisterRoutes(r)
	conversation.NewHandler(deps.Stores, deps.Manager, deps.Log).RegisterRoutes(r)
	email.NewHandler(deps.Escalation, deps.Manager, deps.Log).RegisterRoutes(r)
	translation.NewHandler(deps.Translate, deps.Log).RegisterRoutes(r)

	r.Handle("/metrics", promhttp.Handler())
	r.Get("/healthz", func(w http.ResponseWriter, req *http.Request) {
		status := map[string]string{"status": "ok"}
		code := http.StatusOK
		if deps.Redis != nil {
			if err := deps.Redis.Ping(req.Context()); err != nil {
				status["status"] = "degraded"
				status["redis"] = err.Error()
				code = http.StatusServiceUnavailable
			}
		}
		utils.RespondJSON(w, code, status)
	})

	return r
}
