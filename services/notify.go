package services

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"gorm.io/gorm"

	"github.com/dinarex/exchange-backend/models"
	"github.com/dinarex/exchange-backend/utils/logger"
)

// Hub tracks currently connected notification observers keyed by user id.
// Observers join and leave at any time; pushes to absent or slow observers
// are dropped, the durable record is what matters.
type Hub struct {
	mu      sync.RWMutex
	clients map[uint]*Client
}

func NewHub() *Hub {
	return &Hub{clients: make(map[uint]*Client)}
}

func (h *Hub) Register(c *Client) {
	h.mu.Lock()
	if old, ok := h.clients[c.userID]; ok {
		old.closeSend()
		old.conn.Close()
	}
	h.clients[c.userID] = c
	h.mu.Unlock()

	go c.writePump()
	go c.readPump()

	logger.Infof("[ws] user %d connected", c.userID)
}

func (h *Hub) remove(c *Client) {
	h.mu.Lock()
	if h.clients[c.userID] == c {
		delete(h.clients, c.userID)
	}
	c.closeSend()
	h.mu.Unlock()
	c.conn.Close()
}

// Push delivers a payload to the user's live connection if one exists.
// Returns false when nothing was delivered. The read lock is held across
// the non-blocking send: the channel is only ever closed under the write
// lock, so the send can never hit a closed channel and panic into the
// ledger operation that fired it.
func (h *Hub) Push(userID uint, payload []byte) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()

	client, ok := h.clients[userID]
	if !ok {
		return false
	}

	select {
	case client.send <- payload:
		return true
	default:
		logger.Warnf("[ws] dropping notification to user %d", userID)
		return false
	}
}

// Event is the out-of-band notification envelope.
type Event struct {
	Type      models.NotificationType `json:"type"`
	Message   string                  `json:"message"`
	Data      EventData               `json:"data"`
	Timestamp time.Time               `json:"timestamp"`
}

type EventData struct {
	UserID    uint `json:"userId"`
	RelatedID uint `json:"relatedId"`
}

// Notifier records lifecycle notifications durably and pushes them to
// connected observers best-effort. Delivery failures are logged, never
// returned: they must not roll back the ledger mutation that fired them.
type Notifier struct {
	db  *gorm.DB
	hub *Hub
}

func NewNotifier(db *gorm.DB, hub *Hub) *Notifier {
	return &Notifier{db: db, hub: hub}
}

// OrderCreated informs every admin that a new order awaits approval.
func (n *Notifier) OrderCreated(txn *models.Transaction, owner *models.User) {
	var admins []models.User
	if err := n.db.Where("role = ?", models.RoleAdmin).Find(&admins).Error; err != nil {
		logger.Errorf("notify: failed to load admins for order %d: %v", txn.ID, err)
		return
	}

	msg := fmt.Sprintf("New %s order #%d from %s awaiting approval", txn.Type, txn.ID, owner.Name)
	for _, admin := range admins {
		n.emit(admin.ID, models.NotifyOrderCreated, msg, txn.ID, owner.ID)
	}
}

// OrderApproved informs the owner that their order was approved.
func (n *Notifier) OrderApproved(txn *models.Transaction) {
	msg := fmt.Sprintf("Your %s order #%d has been approved", txn.Type, txn.ID)
	n.emit(txn.UserID, models.NotifyOrderApproved, msg, txn.ID, txn.UserID)
}

func (n *Notifier) emit(recipient uint, typ models.NotificationType, msg string, relatedID, subjectID uint) {
	note := models.Notification{
		UserID:    recipient,
		Type:      typ,
		Message:   msg,
		RelatedID: relatedID,
	}
	if err := n.db.Create(&note).Error; err != nil {
		logger.Errorf("notify: failed to record %s for user %d: %v", typ, recipient, err)
		return
	}

	if n.hub == nil {
		return
	}
	payload, err := json.Marshal(Event{
		Type:      typ,
		Message:   msg,
		Data:      EventData{UserID: subjectID, RelatedID: relatedID},
		Timestamp: note.CreatedAt,
	})
	if err != nil {
		logger.Errorf("notify: marshal %s: %v", typ, err)
		return
	}
	n.hub.Push(recipient, payload)
}

// ListForUser returns a user's notifications, newest first.
func (n *Notifier) ListForUser(userID uint, unreadOnly bool) ([]models.Notification, error) {
	q := n.db.Where("user_id = ?", userID)
	if unreadOnly {
		q = q.Where("read = ?", false)
	}
	notes := []models.Notification{}
	if err := q.Order("created_at DESC").Find(&notes).Error; err != nil {
		return nil, &PersistenceError{Op: "list notifications", Err: err}
	}
	return notes, nil
}

// MarkRead marks one of the user's notifications read. Idempotent.
func (n *Notifier) MarkRead(userID, id uint) error {
	res := n.db.Model(&models.Notification{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("read", true)
	if res.Error != nil {
		return &PersistenceError{Op: "mark notification read", Err: res.Error}
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// MarkAllRead marks every notification of the user read. Idempotent.
func (n *Notifier) MarkAllRead(userID uint) error {
	err := n.db.Model(&models.Notification{}).
		Where("user_id = ?", userID).
		Update("read", true).Error
	if err != nil {
		return &PersistenceError{Op: "mark notifications read", Err: err}
	}
	return nil
}
