package reconcile

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/ordane/paygate/app/gateway"
	"github.com/ordane/paygate/app/reconcile/mocks"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(lister TransactionLister, now time.Time) *Service {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)

	return &Service{
		lister: lister,
		log:    log.WithField("component", "reconcile"),
		now:    func() time.Time { return now },
	}
}

func feedResult(payload string) gateway.Result {
	return gateway.Result{Success: true, Data: json.RawMessage(payload)}
}

func TestService_ResolveStatus(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	now := time.Date(2025, 3, 2, 12, 0, 0, 0, time.UTC)

	t.Run("match merges resolved status", func(t *testing.T) {
		lister := mocks.NewMockTransactionLister(ctrl)
		lister.EXPECT().ListTransactions("", "").Return(feedResult(`{"transactions": [{"id": "T1", "status": "paid"}]}`))

		entry, err := newTestService(lister, now).ResolveStatus("T1")
		require.NoError(t, err)
		assert.Equal(t, "paid", entry["status"])
		assert.Equal(t, "T1", entry.TransactionID())
	})

	t.Run("status fallback fills unknown", func(t *testing.T) {
		lister := mocks.NewMockTransactionLister(ctrl)
		lister.EXPECT().ListTransactions("", "").Return(feedResult(`{"transactions": [{"transaction_id": "T1"}]}`))

		entry, err := newTestService(lister, now).ResolveStatus("T1")
		require.NoError(t, err)
		assert.Equal(t, "unknown", entry["status"])
	})

	t.Run("keyed feed resolved by direct lookup", func(t *testing.T) {
		lister := mocks.NewMockTransactionLister(ctrl)
		lister.EXPECT().ListTransactions("", "").Return(feedResult(`{"list": {"T1": {"payment_status": "completed"}}}`))

		entry, err := newTestService(lister, now).ResolveStatus("T1")
		require.NoError(t, err)
		assert.Equal(t, "completed", entry["status"])
	})

	t.Run("empty feed is not found", func(t *testing.T) {
		lister := mocks.NewMockTransactionLister(ctrl)
		lister.EXPECT().ListTransactions("", "").Return(feedResult(`{"transactions": []}`))

		_, err := newTestService(lister, now).ResolveStatus("T1")
		assert.ErrorIs(t, err, ErrTransactionNotFound)
	})

	t.Run("gateway failure is unavailable", func(t *testing.T) {
		lister := mocks.NewMockTransactionLister(ctrl)
		lister.EXPECT().ListTransactions("", "").Return(gateway.Result{Success: false, Error: "timeout"})

		_, err := newTestService(lister, now).ResolveStatus("T1")
		assert.ErrorIs(t, err, ErrFeedUnavailable)
	})

	t.Run("unparseable feed is unavailable", func(t *testing.T) {
		lister := mocks.NewMockTransactionLister(ctrl)
		lister.EXPECT().ListTransactions("", "").Return(feedResult(`[]`))

		_, err := newTestService(lister, now).ResolveStatus("T1")
		assert.ErrorIs(t, err, ErrFeedUnavailable)
	})
}

func TestService_CheckExists(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	now := time.Date(2025, 3, 2, 12, 0, 0, 0, time.UTC)

	t.Run("window spans yesterday and today in UTC", func(t *testing.T) {
		lister := mocks.NewMockTransactionLister(ctrl)
		lister.EXPECT().
			ListTransactions("2025-03-01", "2025-03-02").
			Return(feedResult(`{"transactions": [{"transaction_content": "alice T123456789AB"}]}`))

		assert.True(t, newTestService(lister, now).CheckExists("T123456789AB", "alice"))
	})

	t.Run("different user misses", func(t *testing.T) {
		lister := mocks.NewMockTransactionLister(ctrl)
		lister.EXPECT().
			ListTransactions(gomock.Any(), gomock.Any()).
			Return(feedResult(`{"transactions": [{"transaction_content": "alice T123456789AB"}]}`))

		assert.False(t, newTestService(lister, now).CheckExists("T123456789AB", "bob"))
	})

	t.Run("gateway failure reads as false", func(t *testing.T) {
		lister := mocks.NewMockTransactionLister(ctrl)
		lister.EXPECT().
			ListTransactions(gomock.Any(), gomock.Any()).
			Return(gateway.Result{Success: false, Error: "unreachable"})

		assert.False(t, newTestService(lister, now).CheckExists("T123456789AB", "alice"))
	})

	t.Run("window crosses month boundary", func(t *testing.T) {
		firstOfMonth := time.Date(2025, 3, 1, 0, 30, 0, 0, time.UTC)

		lister := mocks.NewMockTransactionLister(ctrl)
		lister.EXPECT().
			ListTransactions("2025-02-28", "2025-03-01").
			Return(feedResult(`{"transactions": []}`))

		assert.False(t, newTestService(lister, firstOfMonth).CheckExists("T123456789AB", "alice"))
	})
}
