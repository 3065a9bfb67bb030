package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/dinarex/exchange-backend/services"
	"github.com/dinarex/exchange-backend/utils/logger"
)

// Handler bundles the services behind the HTTP surface.
type Handler struct {
	DB        *gorm.DB
	Trades    *services.TransactionService
	Settings  *services.SettingsService
	Notifier  *services.Notifier
	Hub       *services.Hub
	UploadDir string
}

func New(db *gorm.DB, uploadDir string) *Handler {
	hub := services.NewHub()
	notifier := services.NewNotifier(db, hub)
	settings := services.NewSettingsService(db)
	return &Handler{
		DB:        db,
		Trades:    services.NewTransactionService(db, settings, notifier),
		Settings:  settings,
		Notifier:  notifier,
		Hub:       hub,
		UploadDir: uploadDir,
	}
}

// respondError maps domain errors to HTTP statuses. Anything unmapped is
// logged in full and surfaced as a generic 500.
func respondError(c *gin.Context, err error) {
	var vErr *services.ValidationError
	if errors.As(err, &vErr) {
		c.JSON(http.StatusBadRequest, gin.H{"error": vErr.Message, "field": vErr.Field})
		return
	}
	var aErr *services.AccountNotConfiguredError
	if errors.As(err, &aErr) {
		c.JSON(http.StatusBadRequest, gin.H{"error": aErr.Error(), "setting": aErr.Setting})
		return
	}

	switch {
	case errors.Is(err, services.ErrVerificationRequired):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrMissingProof):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrAlreadyApproved):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrRatesNotConfigured):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
	default:
		logger.Errorf("internal error on %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
