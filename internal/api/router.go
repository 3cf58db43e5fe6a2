package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mintyscan/mintyscan-backend/internal/api/httpx"
	"github.com/mintyscan/mintyscan-backend/internal/config"
	"github.com/mintyscan/mintyscan-backend/internal/middleware"
	"github.com/mintyscan/mintyscan-backend/internal/services"
)

type mintSignatureReq struct {
	UserID string `json:"userId"`
	Wallet string `json:"wallet"`
	Amount string `json:"amount"` // whole-unit decimal string
}

type resetReq struct {
	Key string `json:"key"`
}

func NewRouter(cfg config.Config, ms *services.MintService, ls *services.LeaderboardService) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.Recover, middleware.RateLimit(cfg.RateRPS), middleware.HTTPMetrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"*"},
	}))

	// health & metrics
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) { _, _ = w.Write([]byte("ok")) })
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Get("/leaderboard", func(w http.ResponseWriter, r *http.Request) {
			entries, err := ls.Leaderboard(r.Context())
			if err != nil {
				httpx.WriteError(w, http.StatusInternalServerError, "Failed to fetch leaderboard data", "")
				return
			}
			httpx.WriteJSON(w, http.StatusOK, entries)
		})

		r.Post("/mint-signature", func(w http.ResponseWriter, r *http.Request) {
			var req mintSignatureReq
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				httpx.WriteError(w, http.StatusBadRequest, "Missing required fields", "")
				return
			}
			sig, err := ms.IssueAuthorization(r.Context(), req.UserID, req.Wallet, req.Amount)
			if err != nil {
				writeMintError(w, err)
				return
			}
			httpx.WriteJSON(w, http.StatusOK, map[string]string{"signature": sig})
		})

		r.Post("/reset-leaderboard", func(w http.ResponseWriter, r *http.Request) {
			var req resetReq
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				httpx.WriteError(w, http.StatusBadRequest, "Missing required fields", "")
				return
			}
			if err := ls.Reset(r.Context(), req.Key); err != nil {
				if errors.Is(err, services.ErrForbidden) {
					httpx.WriteError(w, http.StatusForbidden, "Invalid reset key", "")
					return
				}
				httpx.WriteError(w, http.StatusInternalServerError, "Failed to reset leaderboard", "")
				return
			}
			httpx.WriteJSON(w, http.StatusOK, map[string]string{"message": "Leaderboard reset successfully"})
		})
	})

	return r
}

func writeMintError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, services.ErrValidation):
		httpx.WriteError(w, http.StatusBadRequest, "Missing required fields", err.Error())
	case errors.Is(err, services.ErrConfiguration):
		httpx.WriteError(w, http.StatusInternalServerError, "Server configuration error", "")
	default:
		httpx.WriteError(w, http.StatusInternalServerError, "Server error", err.Error())
	}
}
