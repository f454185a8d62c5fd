package reconcile

import (
	"time"

	"github.com/ordane/paygate/app/gateway"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// ErrFeedUnavailable means the gateway feed could not be fetched or parsed.
var ErrFeedUnavailable = errors.New("transactions list unavailable")

// ErrTransactionNotFound means the feed was fetched but held no matching
// entry. Not finding a transaction is a normal outcome, not a fault.
var ErrTransactionNotFound = errors.New("transaction not found")

// TransactionLister is the slice of the gateway client this service needs.
//
//go:generate mockgen -destination=mocks/mock_lister.go -package=mocks -source=service.go TransactionLister
type TransactionLister interface {
	ListTransactions(dateMin, dateMax string) gateway.Result
}

// Service answers "does transaction X exist" and "what is X's status" against
// the gateway's polled feed.
type Service struct {
	lister TransactionLister
	log    *logrus.Entry
	now    func() time.Time
}

func NewService(lister TransactionLister, log *logrus.Logger) *Service {
	return &Service{
		lister: lister,
		log:    log.WithField("component", "reconcile"),
		now:    time.Now,
	}
}

// ResolveStatus fetches the full feed and looks up transactionID by its
// structured identifier. On a hit it returns the entry annotated with the
// resolved canonical status under the "status" key.
func (s *Service) ResolveStatus(transactionID string) (gateway.Entry, error) {
	result := s.lister.ListTransactions("", "")
	if !result.Success || result.Data == nil {
		return nil, ErrFeedUnavailable
	}

	feed, err := gateway.ParseFeed(result.Data)
	if err != nil {
		s.log.WithError(err).Warn("feed parse failed")
		return nil, ErrFeedUnavailable
	}

	entry, ok := FindByID(feed, transactionID)
	if !ok {
		return nil, ErrTransactionNotFound
	}

	resolved := entry.Clone()
	resolved["status"] = ResolveStatus(entry)

	return resolved, nil
}

// CheckExists reports whether a feed entry from the last two calendar days
// (UTC) carries "<user> <transactionID>" in its content. Any upstream failure
// reads as false; callers get no distinction between "not found" and
// "gateway unreachable".
func (s *Service) CheckExists(transactionID, user string) bool {
	today := s.now().UTC()
	yesterday := today.AddDate(0, 0, -1)

	result := s.lister.ListTransactions(
		yesterday.Format(time.DateOnly),
		today.Format(time.DateOnly),
	)
	if !result.Success || result.Data == nil {
		return false
	}

	feed, err := gateway.ParseFeed(result.Data)
	if err != nil {
		s.log.WithError(err).Warn("feed parse failed")
		return false
	}

	_, found := FindByContent(feed, user, transactionID)

	s.log.WithFields(logrus.Fields{
		"transaction_id": transactionID,
		"found":          found,
	}).Debug("existence check")

	return found
}
