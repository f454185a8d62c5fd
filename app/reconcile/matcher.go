package reconcile

import (
	"strings"

	"github.com/ordane/paygate/app/gateway"
)

// FindByID scans the feed for an entry whose identifier (under any known
// alias) equals transactionID. For a keyed feed the map lookup replaces the
// scan; the two shapes never coexist in one call.
func FindByID(feed *gateway.Feed, transactionID string) (gateway.Entry, bool) {
	if feed.IsKeyed() {
		entry, ok := feed.Keyed[transactionID]
		return entry, ok
	}

	for _, entry := range feed.Entries {
		if entry.TransactionID() == transactionID {
			return entry, true
		}
	}

	return nil, false
}

// FindByContent scans an array-shaped feed for an entry whose free-text
// content contains the literal substring "<user> <transactionID>". The join
// is a single space, case-sensitive, no normalization: the gateway exposes no
// structured correlation field for this identifier scheme, so formatting
// drift in the content is an accepted source of false negatives. A keyed
// feed never matches by content.
func FindByContent(feed *gateway.Feed, user, transactionID string) (gateway.Entry, bool) {
	if feed.IsKeyed() {
		return nil, false
	}

	needle := user + " " + transactionID

	for _, entry := range feed.Entries {
		if strings.Contains(entry.Content(), needle) {
			return entry, true
		}
	}

	return nil, false
}
