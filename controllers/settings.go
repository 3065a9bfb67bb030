package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dinarex/exchange-backend/models"
)

// GetPaymentSettings returns the current rates and receiving addresses.
// Public: the trade form needs them before login.
func (h *Handler) GetPaymentSettings(c *gin.Context) {
	ps, err := h.Settings.Get()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, ps)
}

// UpdatePaymentSettings replaces the whole configuration. Admin only.
func (h *Handler) UpdatePaymentSettings(c *gin.Context) {
	var ps models.PaymentSettings
	if err := c.ShouldBindJSON(&ps); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.Settings.Replace(&ps); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, ps)
}
