package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"HealthRecords/internal/records"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	session records.SessionProvider
	store   records.Store
	now     func() time.Time
	logger  *slog.Logger
}

func New(session records.SessionProvider, store records.Store, now func() time.Time, logger *slog.Logger) Handler {
	if now == nil {
		now = time.Now
	}
	if logger == nil {
		logger = slog.Default()
	}
	return Handler{
		session: session,
		store:   store,
		now:     now,
		logger:  logger,
	}
}

// ListRecords renders the current user's record cards. ?format=json returns
// the same view as JSON.
func (h Handler) ListRecords() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		view := records.Build(ctx.Request.Context(), records.Deps{
			Session: h.session,
			Store:   h.store,
			Now:     h.now,
			Logger:  h.logger.With(slog.String("request_id", ctx.GetString(requestIDKey))),
		})

		status := http.StatusOK
		if view.LoadFailed {
			status = http.StatusInternalServerError
		}

		if ctx.Query("format") == "json" {
			ctx.JSON(status, view)
			return
		}

		ctx.HTML(status, "records.html", view)
	}
}

func (h Handler) Health() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}
