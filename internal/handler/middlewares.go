package handler

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"runtime/debug"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v5"
)

func (h *Handler) logger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		slog.Info("request completed",
			"method", r.Method,
			"path", r.URL.Path,
			"duration", time.Since(start),
		)
	})
}

func (h *Handler) recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				slog.Error("panic recovered", "panic", rec, "stack", string(debug.Stack()))
				h.errorResponse(w, http.StatusInternalServerError, "internal server error")
			}
		}()
		next.ServeHTTP(w, r)
	})
}

func (h *Handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(tokenCookieName)
		if err != nil {
			h.unauthorized(w, "not logged in")
			return
		}

		claims := &authClaims{}
		token, err := jwt.ParseWithClaims(cookie.Value, claims, func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, errors.New("unexpected signing method")
			}
			return []byte(h.config.JWT.Secret), nil
		})
		if err != nil || !token.Valid {
			h.unauthorized(w, "invalid or expired session")
			return
		}

		ctx := context.WithValue(r.Context(), operatorContextKey, claims.Subject)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// scheduleRunCtx resolves the {id} route parameter to a schedule run and
// stores it in the request context for the handlers below it.
func (h *Handler) scheduleRunCtx(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		if err != nil {
			h.badRequest(w, "invalid run id")
			return
		}

		run, err := h.repository.GetScheduleRunByID(id)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				h.notFound(w, "schedule run not found")
				return
			}
			h.internalError(w, err)
			return
		}

		ctx := context.WithValue(r.Context(), scheduleRunContextKey, run)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
