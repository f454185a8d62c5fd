package seeders

import (
	"database/sql"
	"math/rand"
	"strings"
	"time"

	"github.com/bxcodec/faker/v3"
	"github.com/google/uuid"
	"github.com/ordane/paygate/app/consts"
	"github.com/ordane/paygate/app/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var seedStatuses = []string{
	consts.PaymentStatusPending,
	consts.PaymentStatusCompleted,
	consts.PaymentStatusPaid,
	consts.PaymentStatusRefunded,
}

// DBSeed fills the payments table with fake records for local development.
func DBSeed(db *gorm.DB) error {
	for i := 0; i < 20; i++ {
		status := seedStatuses[rand.Intn(len(seedStatuses))]

		payment := models.Payment{
			TransactionID: strings.ToUpper(faker.UUIDDigit())[:12],
			OrderID:       "ORD-" + uuid.New().String()[:8],
			Amount:        decimal.NewFromInt(int64(rand.Intn(99000) + 1000)).Shift(-2),
			Currency:      faker.Currency(),
			Status:        status,
			Description:   faker.Sentence(),
		}

		if consts.IsSettled(status) || status == consts.PaymentStatusRefunded {
			payment.PaidAt = sql.NullTime{
				Time:  time.Now().UTC().Add(-time.Duration(rand.Intn(72)) * time.Hour),
				Valid: true,
			}
		}

		if err := db.Create(&payment).Error; err != nil {
			return err
		}
	}

	return nil
}
