package controllers

import (
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/dinarex/exchange-backend/models"
	"github.com/dinarex/exchange-backend/services"
	"github.com/dinarex/exchange-backend/utils/logger"
)

// CreateTrade handles a buy/sell submission with a payment-proof upload.
func (h *Handler) CreateTrade(c *gin.Context) {
	user := currentUser(c)

	req := services.TradeRequest{
		Type:          models.TradeType(c.PostForm("type")),
		Amount:        c.PostForm("amount"),
		Basis:         services.Basis(c.PostForm("basis")),
		Network:       c.PostForm("network"),
		PaymentMethod: c.PostForm("payment_method"),
	}

	proofRef, err := h.storeProof(c, user.ID)
	if err != nil {
		respondError(c, err)
		return
	}

	txn, err := h.Trades.Create(user, &req, proofRef)
	if err != nil {
		if proofRef != "" {
			h.discardProof(proofRef)
		}
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, txn)
}

// discardProof drops the artifact of a rejected submission so failed
// trades leave nothing behind on disk or in the ledger.
func (h *Handler) discardProof(ref string) {
	var proof models.ProofFile
	if err := h.DB.Where("reference = ?", ref).First(&proof).Error; err != nil {
		return
	}
	if err := h.DB.Delete(&proof).Error; err != nil {
		logger.Warnf("proof %s row not removed: %v", ref, err)
		return
	}
	if err := os.Remove(proof.Path); err != nil {
		logger.Warnf("proof %s file not removed: %v", ref, err)
	}
}

// storeProof saves the uploaded proof artifact and records its reference.
// A missing file part yields an empty reference; the validator turns that
// into the MissingProof failure.
func (h *Handler) storeProof(c *gin.Context, userID uint) (string, error) {
	file, err := c.FormFile("proof")
	if err != nil {
		return "", nil
	}

	ref := uuid.NewString()
	path := filepath.Join(h.UploadDir, ref+filepath.Ext(file.Filename))
	if err := os.MkdirAll(h.UploadDir, 0o755); err != nil {
		return "", &services.PersistenceError{Op: "create upload dir", Err: err}
	}
	if err := c.SaveUploadedFile(file, path); err != nil {
		return "", &services.PersistenceError{Op: "store proof upload", Err: err}
	}

	proof := models.ProofFile{
		Reference:    ref,
		UserID:       userID,
		Path:         path,
		OriginalName: file.Filename,
		Size:         file.Size,
	}
	if err := h.DB.Create(&proof).Error; err != nil {
		return "", &services.PersistenceError{Op: "record proof upload", Err: err}
	}
	return ref, nil
}

// ListMyTransactions returns the caller's transactions, newest first.
func (h *Handler) ListMyTransactions(c *gin.Context) {
	txns, err := h.Trades.ListForUser(currentUser(c).ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, txns)
}

// AdminListTransactions returns every transaction, pending work first.
func (h *Handler) AdminListTransactions(c *gin.Context) {
	txns, err := h.Trades.ListAll()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, txns)
}

// ApproveTransaction flips a pending transaction to approved.
func (h *Handler) ApproveTransaction(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid transaction id"})
		return
	}

	txn, err := h.Trades.Approve(uint(id), currentUser(c).ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, txn)
}

// GetPaymentProof streams a stored proof artifact. The content type is
// sniffed from the file signature, not trusted from the upload.
func (h *Handler) GetPaymentProof(c *gin.Context) {
	ref := c.Param("reference")

	var proof models.ProofFile
	if err := h.DB.Where("reference = ?", ref).First(&proof).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "proof not found"})
		return
	}

	data, err := os.ReadFile(proof.Path)
	if err != nil {
		logger.Errorf("proof %s unreadable at %s: %v", ref, proof.Path, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.Data(http.StatusOK, http.DetectContentType(data), data)
}

// QuotePreview prices a submission without creating a transaction.
func (h *Handler) QuotePreview(c *gin.Context) {
	var req services.TradeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	quote, err := h.Trades.Preview(&req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, quote)
}
