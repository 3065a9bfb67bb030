package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/dinarex/exchange-backend/config"
	"github.com/dinarex/exchange-backend/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	// One connection so every query sees the same in-memory database.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, config.Migrate(db))
	return db
}

type ledgerFixture struct {
	db    *gorm.DB
	svc   *TransactionService
	user  *models.User
	admin *models.User
}

func newLedgerFixture(t *testing.T) *ledgerFixture {
	t.Helper()
	db := newTestDB(t)

	settings := NewSettingsService(db)
	require.NoError(t, settings.Replace(&models.PaymentSettings{
		BuyRate:            "0.71",
		BuyCommissionRate:  "0.02",
		SellRate:           "0.69",
		SellCommissionRate: "0.02",
	}))

	user := &models.User{
		Phone:          "+962790000001",
		Name:           "Lina",
		APIToken:       "user-token",
		MobileVerified: true,
		KYCStatus:      models.KYCApproved,
		USDTAddress:    "TXYZabc123",
		USDTNetwork:    "trc20",
		CliqType:       models.CliqAlias,
		CliqAlias:      "LINA1",
	}
	admin := &models.User{
		Phone:    "+962790000002",
		Name:     "Ops",
		APIToken: "admin-token",
		Role:     models.RoleAdmin,
	}
	require.NoError(t, db.Create(user).Error)
	require.NoError(t, db.Create(admin).Error)

	notifier := NewNotifier(db, NewHub())
	return &ledgerFixture{
		db:    db,
		svc:   NewTransactionService(db, settings, notifier),
		user:  user,
		admin: admin,
	}
}

func TestCreate_BuyForeignBasis(t *testing.T) {
	f := newLedgerFixture(t)

	txn, err := f.svc.Create(f.user, &TradeRequest{
		Type:          models.TradeBuy,
		Amount:        "100",
		Basis:         BasisForeign,
		PaymentMethod: "cliq",
	}, "proof-1")
	require.NoError(t, err)

	assert.Equal(t, models.StatusPending, txn.Status)
	// Persisted amount is normalized to the native JOD side.
	assert.Equal(t, "71.00", txn.Amount)
	assert.Equal(t, "0.71", txn.Rate)
	assert.Equal(t, "1.42", txn.Commission)
	assert.Equal(t, "cliq", txn.PaymentMethod)
	assert.Empty(t, txn.Network)
	assert.Empty(t, txn.CliqAlias)
	assert.Equal(t, "proof-1", txn.ProofRef)

	// Creation fans out one notification per admin.
	var notes []models.Notification
	require.NoError(t, f.db.Where("user_id = ?", f.admin.ID).Find(&notes).Error)
	require.Len(t, notes, 1)
	assert.Equal(t, models.NotifyOrderCreated, notes[0].Type)
	assert.Equal(t, txn.ID, notes[0].RelatedID)
	assert.False(t, notes[0].Read)
}

func TestCreate_SellSnapshotsCliqDetails(t *testing.T) {
	f := newLedgerFixture(t)

	txn, err := f.svc.Create(f.user, &TradeRequest{
		Type:    models.TradeSell,
		Amount:  "50",
		Network: "trc20",
	}, "proof-2")
	require.NoError(t, err)

	assert.Equal(t, "50.00", txn.Amount)
	assert.Equal(t, "0.69", txn.Rate)
	assert.Equal(t, "trc20", txn.Network)
	assert.Equal(t, models.CliqAlias, txn.CliqType)
	assert.Equal(t, "LINA1", txn.CliqAlias)
	assert.Empty(t, txn.PaymentMethod)

	// A later profile edit must not change where this trade settles.
	require.NoError(t, f.db.Model(f.user).Update("cliq_alias", "CHANGED").Error)
	stored, err := f.svc.Get(txn.ID)
	require.NoError(t, err)
	assert.Equal(t, "LINA1", stored.CliqAlias)
}

func TestCreate_RejectsInvalidSubmissions(t *testing.T) {
	f := newLedgerFixture(t)

	var vErr *ValidationError
	_, err := f.svc.Create(f.user, &TradeRequest{
		Type:          models.TradeBuy,
		Amount:        "1.234",
		PaymentMethod: "cliq",
	}, "proof")
	assert.ErrorAs(t, err, &vErr)

	_, err = f.svc.Create(f.user, &TradeRequest{
		Type:          models.TradeBuy,
		Amount:        "0",
		PaymentMethod: "cliq",
	}, "proof")
	assert.ErrorAs(t, err, &vErr)

	// Nothing was persisted for the rejected submissions.
	var count int64
	require.NoError(t, f.db.Model(&models.Transaction{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestCreate_RequiresConfiguredRates(t *testing.T) {
	db := newTestDB(t)
	user := &models.User{
		Phone:          "+962790000009",
		APIToken:       "t",
		MobileVerified: true,
		KYCStatus:      models.KYCApproved,
		USDTAddress:    "TXYZ",
	}
	require.NoError(t, db.Create(user).Error)

	svc := NewTransactionService(db, NewSettingsService(db), NewNotifier(db, NewHub()))
	_, err := svc.Create(user, &TradeRequest{
		Type:          models.TradeBuy,
		Amount:        "10",
		PaymentMethod: "cliq",
	}, "proof")
	assert.ErrorIs(t, err, ErrRatesNotConfigured)
}

func TestApprove_AwardsLoyaltyPointsOnce(t *testing.T) {
	f := newLedgerFixture(t)

	txn, err := f.svc.Create(f.user, &TradeRequest{
		Type:    models.TradeSell,
		Amount:  "250",
		Network: "trc20",
	}, "proof-3")
	require.NoError(t, err)
	require.Equal(t, "250.00", txn.Amount)

	approved, err := f.svc.Approve(txn.ID, f.admin.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusApproved, approved.Status)
	require.NotNil(t, approved.ApprovedBy)
	assert.Equal(t, f.admin.ID, *approved.ApprovedBy)
	assert.NotNil(t, approved.ApprovedAt)

	var owner models.User
	require.NoError(t, f.db.First(&owner, f.user.ID).Error)
	assert.Equal(t, 2, owner.LoyaltyPoints)

	// Second approval is a conflict, not a double side effect.
	_, err = f.svc.Approve(txn.ID, f.admin.ID)
	assert.ErrorIs(t, err, ErrAlreadyApproved)

	require.NoError(t, f.db.First(&owner, f.user.ID).Error)
	assert.Equal(t, 2, owner.LoyaltyPoints)

	var approvedNotes int64
	require.NoError(t, f.db.Model(&models.Notification{}).
		Where("user_id = ? AND type = ?", f.user.ID, models.NotifyOrderApproved).
		Count(&approvedNotes).Error)
	assert.EqualValues(t, 1, approvedNotes)
}

func TestApprove_NotFound(t *testing.T) {
	f := newLedgerFixture(t)
	_, err := f.svc.Approve(9999, f.admin.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestApprove_NotificationFollowsCreation(t *testing.T) {
	f := newLedgerFixture(t)

	txn, err := f.svc.Create(f.user, &TradeRequest{
		Type:    models.TradeSell,
		Amount:  "10",
		Network: "trc20",
	}, "proof-4")
	require.NoError(t, err)

	_, err = f.svc.Approve(txn.ID, f.admin.ID)
	require.NoError(t, err)

	// Per transaction, the created notification is recorded before the
	// approved one.
	var notes []models.Notification
	require.NoError(t, f.db.Where("related_id = ?", txn.ID).Order("id ASC").Find(&notes).Error)
	require.Len(t, notes, 2)
	assert.Equal(t, models.NotifyOrderCreated, notes[0].Type)
	assert.Equal(t, models.NotifyOrderApproved, notes[1].Type)
}

func TestListForUser_ScopedAndNewestFirst(t *testing.T) {
	f := newLedgerFixture(t)

	other := &models.User{Phone: "+962790000003", APIToken: "other"}
	require.NoError(t, f.db.Create(other).Error)

	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	seed := []models.Transaction{
		{UserID: f.user.ID, Type: models.TradeSell, Amount: "10.00", ProofRef: "p", CreatedAt: base},
		{UserID: f.user.ID, Type: models.TradeSell, Amount: "20.00", ProofRef: "p", CreatedAt: base.Add(time.Hour)},
		{UserID: other.ID, Type: models.TradeSell, Amount: "30.00", ProofRef: "p", CreatedAt: base.Add(2 * time.Hour)},
	}
	for i := range seed {
		require.NoError(t, f.db.Create(&seed[i]).Error)
	}

	txns, err := f.svc.ListForUser(f.user.ID)
	require.NoError(t, err)
	require.Len(t, txns, 2)
	assert.Equal(t, "20.00", txns[0].Amount)
	assert.Equal(t, "10.00", txns[1].Amount)
}

func TestListAll_PendingFirstThenApprovedNewest(t *testing.T) {
	f := newLedgerFixture(t)

	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	seed := []models.Transaction{
		{UserID: f.user.ID, Type: models.TradeSell, Status: models.StatusApproved, Amount: "3.00", ProofRef: "p", CreatedAt: base.Add(1 * time.Hour)},
		{UserID: f.user.ID, Type: models.TradeSell, Status: models.StatusPending, Amount: "1.00", ProofRef: "p", CreatedAt: base.Add(2 * time.Hour)},
		{UserID: f.user.ID, Type: models.TradeSell, Status: models.StatusApproved, Amount: "4.00", ProofRef: "p", CreatedAt: base.Add(3 * time.Hour)},
		{UserID: f.user.ID, Type: models.TradeSell, Status: models.StatusPending, Amount: "2.00", ProofRef: "p", CreatedAt: base.Add(4 * time.Hour)},
	}
	for i := range seed {
		require.NoError(t, f.db.Create(&seed[i]).Error)
	}

	txns, err := f.svc.ListAll()
	require.NoError(t, err)
	require.Len(t, txns, 4)

	// Outstanding work first (oldest first), then history (newest first).
	assert.Equal(t, "1.00", txns[0].Amount)
	assert.Equal(t, "2.00", txns[1].Amount)
	assert.Equal(t, "4.00", txns[2].Amount)
	assert.Equal(t, "3.00", txns[3].Amount)
}

func TestLoyaltyPoints(t *testing.T) {
	assert.Equal(t, 2, loyaltyPoints("250"))
	assert.Equal(t, 2, loyaltyPoints("299.99"))
	assert.Equal(t, 0, loyaltyPoints("99.99"))
	assert.Equal(t, 1, loyaltyPoints("100.00"))
	assert.Equal(t, 0, loyaltyPoints("garbage"))
}

func TestPreview_PricesWithoutPersisting(t *testing.T) {
	f := newLedgerFixture(t)

	quote, err := f.svc.Preview(&TradeRequest{
		Type:          models.TradeBuy,
		Amount:        "100",
		Basis:         BasisForeign,
		PaymentMethod: "cliq",
	})
	require.NoError(t, err)
	assert.Equal(t, "72.42", quote.Final.String())

	var count int64
	require.NoError(t, f.db.Model(&models.Transaction{}).Count(&count).Error)
	assert.Zero(t, count)
}
