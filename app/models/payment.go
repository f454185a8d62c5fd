package models

import (
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Payment struct {
	ID            string          `gorm:"size:36;not null;uniqueIndex;primary_key" json:"id"`
	TransactionID string          `gorm:"size:255;uniqueIndex" json:"transactionId"`
	OrderID       string          `gorm:"size:100;index" json:"orderId"`
	Amount        decimal.Decimal `gorm:"type:decimal(10,2)" json:"amount"`
	Currency      string          `gorm:"size:50" json:"currency"`
	Status        string          `gorm:"size:50;index" json:"status"`
	PaymentMethod string          `gorm:"size:100" json:"paymentMethod,omitempty"`
	Description   string          `gorm:"type:text" json:"description,omitempty"`

	Metadata *json.RawMessage `gorm:"type:json" json:"metadata,omitempty"`

	PaidAt    sql.NullTime   `gorm:"type:timestamp" json:"paidAt,omitempty"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `json:"-"`
}

func (p *Payment) BeforeCreate(db *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}

	return nil
}

func (p *Payment) CreatePayment(db *gorm.DB, payment *Payment) (*Payment, error) {
	result := db.Create(payment)
	if result.Error != nil {
		return nil, result.Error
	}

	return payment, nil
}

func (p *Payment) FindByID(db *gorm.DB, id string) (*Payment, error) {
	var payment Payment

	err := db.Model(&Payment{}).Where("id = ?", id).First(&payment).Error
	if err != nil {
		return nil, err
	}

	return &payment, nil
}

func (p *Payment) FindByTransactionID(db *gorm.DB, transactionID string) (*Payment, error) {
	var payment Payment

	err := db.Model(&Payment{}).Where("transaction_id = ?", transactionID).First(&payment).Error
	if err != nil {
		return nil, err
	}

	return &payment, nil
}

// GetPayments returns one page of payments, newest first, plus the total
// row count for pagination.
func (p *Payment) GetPayments(db *gorm.DB, perPage int, page int) (*[]Payment, int64, error) {
	var payments []Payment
	var count int64

	err := db.Model(&Payment{}).Count(&count).Error
	if err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * perPage

	err = db.Model(&Payment{}).Order("created_at desc").Limit(perPage).Offset(offset).Find(&payments).Error
	if err != nil {
		return nil, 0, err
	}

	return &payments, count, nil
}

// Save persists the current status and paidAt of an already-loaded record.
// Durability under concurrent updates relies on the row-level update by
// unique key; last writer wins.
func (p *Payment) Save(db *gorm.DB) error {
	return db.Model(&Payment{}).
		Where("transaction_id = ?", p.TransactionID).
		Updates(map[string]interface{}{
			"status":  p.Status,
			"paid_at": p.PaidAt,
		}).Error
}

// IsPaid reports whether the payment has settled.
func (p *Payment) IsPaid() bool {
	return p.PaidAt.Valid
}
