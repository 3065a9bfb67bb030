package models

import "time"

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

type KYCStatus string

const (
	KYCNone     KYCStatus = "none"
	KYCPending  KYCStatus = "pending"
	KYCApproved KYCStatus = "approved"
	KYCRejected KYCStatus = "rejected"
)

// CliqType selects which CliQ identifier the user receives JOD through.
type CliqType string

const (
	CliqAlias  CliqType = "alias"
	CliqNumber CliqType = "number"
)

type User struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	Phone          string    `gorm:"uniqueIndex" json:"phone"`
	Name           string    `json:"name"`
	Role           Role      `gorm:"default:user" json:"role"`
	APIToken       string    `gorm:"uniqueIndex" json:"-"`
	MobileVerified bool      `json:"mobile_verified"`
	KYCStatus      KYCStatus `gorm:"default:none" json:"kyc_status"`

	// Settlement-leg receiving details. A buy settles USDT to the user,
	// a sell settles JOD to the user via CliQ.
	USDTAddress string   `json:"usdt_address"`
	USDTNetwork string   `json:"usdt_network"`
	CliqType    CliqType `json:"cliq_type"`
	CliqAlias   string   `json:"cliq_alias"`
	CliqNumber  string   `json:"cliq_number"`

	LoyaltyPoints int       `json:"loyalty_points"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
