package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dinarex/exchange-backend/models"
)

// Me returns the caller's profile.
func (h *Handler) Me(c *gin.Context) {
	c.JSON(http.StatusOK, currentUser(c))
}

type paymentDetailsRequest struct {
	USDTAddress *string `json:"usdt_address"`
	USDTNetwork *string `json:"usdt_network"`
	CliqType    *string `json:"cliq_type"`
	CliqAlias   *string `json:"cliq_alias"`
	CliqNumber  *string `json:"cliq_number"`
}

// UpdatePaymentDetails sets the caller's receiving details: the USDT
// address for buys, the CliQ identity for sells. Only provided fields
// change.
func (h *Handler) UpdatePaymentDetails(c *gin.Context) {
	var req paymentDetailsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.CliqType != nil {
		ct := models.CliqType(*req.CliqType)
		if ct != models.CliqAlias && ct != models.CliqNumber {
			c.JSON(http.StatusBadRequest, gin.H{"error": "cliq_type must be \"alias\" or \"number\"", "field": "cliq_type"})
			return
		}
	}

	updates := map[string]any{}
	if req.USDTAddress != nil {
		updates["usdt_address"] = *req.USDTAddress
	}
	if req.USDTNetwork != nil {
		updates["usdt_network"] = *req.USDTNetwork
	}
	if req.CliqType != nil {
		updates["cliq_type"] = *req.CliqType
	}
	if req.CliqAlias != nil {
		updates["cliq_alias"] = *req.CliqAlias
	}
	if req.CliqNumber != nil {
		updates["cliq_number"] = *req.CliqNumber
	}
	if len(updates) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no fields to update"})
		return
	}

	user := currentUser(c)
	if err := h.DB.Model(user).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update payment details"})
		return
	}

	c.JSON(http.StatusOK, user)
}
