package services

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/dinarex/exchange-backend/models"
)

// TransactionService is the trade ledger: it creates priced pending
// transactions and carries them through the one-way pending→approved
// lifecycle.
type TransactionService struct {
	db       *gorm.DB
	settings *SettingsService
	notifier *Notifier
}

func NewTransactionService(db *gorm.DB, settings *SettingsService, notifier *Notifier) *TransactionService {
	return &TransactionService{db: db, settings: settings, notifier: notifier}
}

// Create validates and prices a submission, persists it as pending and
// informs admins. The rate and commission are captured by value; later
// settings changes never alter the record.
func (s *TransactionService) Create(user *models.User, req *TradeRequest, proofRef string) (*models.Transaction, error) {
	if err := ValidateTrade(user, req, proofRef); err != nil {
		return nil, err
	}

	ps, err := s.settings.Get()
	if err != nil {
		return nil, err
	}
	rates, err := RatesFromSettings(ps)
	if err != nil {
		return nil, err
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		return nil, &ValidationError{Field: "amount", Message: "must be a decimal"}
	}
	quote := ComputeQuote(amount, req.Type, req.Basis, rates)

	txn := models.Transaction{
		UserID:     user.ID,
		Type:       req.Type,
		Status:     models.StatusPending,
		Amount:     quote.NativeAmount.StringFixed(2),
		Rate:       quote.Rate.String(),
		Commission: quote.Commission.StringFixed(2),
		Fee:        "0.00",
		ProofRef:   proofRef,
	}
	switch req.Type {
	case models.TradeSell:
		txn.Network = req.Network
		// Snapshot the CliQ receiving identity so later profile edits
		// do not change where this trade settles.
		txn.CliqType = user.CliqType
		txn.CliqAlias = user.CliqAlias
		txn.CliqNumber = user.CliqNumber
	case models.TradeBuy:
		txn.PaymentMethod = req.PaymentMethod
	}

	if err := s.db.Create(&txn).Error; err != nil {
		return nil, &PersistenceError{Op: "create transaction", Err: err}
	}

	s.notifier.OrderCreated(&txn, user)
	return &txn, nil
}

// Approve transitions a pending transaction to approved, credits loyalty
// points to the owner and informs them. A second approval of the same id
// fails with ErrAlreadyApproved and has no side effects, even under
// concurrent calls: the status flip is a conditional update.
func (s *TransactionService) Approve(id, approverID uint) (*models.Transaction, error) {
	var txn models.Transaction
	now := time.Now()

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&txn, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return &PersistenceError{Op: "load transaction", Err: err}
		}

		res := tx.Model(&models.Transaction{}).
			Where("id = ? AND status = ?", id, models.StatusPending).
			Updates(map[string]any{
				"status":      models.StatusApproved,
				"approved_at": now,
				"approved_by": approverID,
			})
		if res.Error != nil {
			return &PersistenceError{Op: "approve transaction", Err: res.Error}
		}
		if res.RowsAffected == 0 {
			return ErrAlreadyApproved
		}

		if points := loyaltyPoints(txn.Amount); points > 0 {
			err := tx.Model(&models.User{}).
				Where("id = ?", txn.UserID).
				UpdateColumn("loyalty_points", gorm.Expr("loyalty_points + ?", points)).Error
			if err != nil {
				return &PersistenceError{Op: "award loyalty points", Err: err}
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	txn.Status = models.StatusApproved
	txn.ApprovedAt = &now
	txn.ApprovedBy = &approverID

	s.notifier.OrderApproved(&txn)
	return &txn, nil
}

// Get fetches one transaction by id.
func (s *TransactionService) Get(id uint) (*models.Transaction, error) {
	var txn models.Transaction
	if err := s.db.First(&txn, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, &PersistenceError{Op: "load transaction", Err: err}
	}
	return &txn, nil
}

// ListForUser returns a user's transactions, newest first.
func (s *TransactionService) ListForUser(userID uint) ([]models.Transaction, error) {
	txns := []models.Transaction{}
	err := s.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&txns).Error
	if err != nil {
		return nil, &PersistenceError{Op: "list transactions", Err: err}
	}
	return txns, nil
}

// ListAll returns every transaction for the admin view: pending first,
// oldest first, so outstanding work surfaces ahead of history; approved
// follow, newest first.
func (s *TransactionService) ListAll() ([]models.Transaction, error) {
	pending := []models.Transaction{}
	err := s.db.Where("status = ?", models.StatusPending).
		Order("created_at ASC").Find(&pending).Error
	if err != nil {
		return nil, &PersistenceError{Op: "list pending transactions", Err: err}
	}

	var approved []models.Transaction
	err = s.db.Where("status = ?", models.StatusApproved).
		Order("created_at DESC").Find(&approved).Error
	if err != nil {
		return nil, &PersistenceError{Op: "list approved transactions", Err: err}
	}

	return append(pending, approved...), nil
}

// Preview prices a submission without creating anything. Only the payload
// shape is checked; the caller need not be verified to see a price.
func (s *TransactionService) Preview(req *TradeRequest) (*Quote, error) {
	if err := ValidateShape(req); err != nil {
		return nil, err
	}
	ps, err := s.settings.Get()
	if err != nil {
		return nil, err
	}
	rates, err := RatesFromSettings(ps)
	if err != nil {
		return nil, err
	}
	amount, _ := decimal.NewFromString(req.Amount)
	quote := ComputeQuote(amount, req.Type, req.Basis, rates)
	return &quote, nil
}

// loyaltyPoints awards one point per full 100 units of the native amount.
func loyaltyPoints(amount string) int {
	d, err := decimal.NewFromString(amount)
	if err != nil {
		return 0
	}
	return int(d.Div(decimal.NewFromInt(100)).Floor().IntPart())
}
