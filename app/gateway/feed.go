package gateway

import (
	"encoding/json"
	"fmt"

	"github.com/ordane/paygate/app/consts"
)

// The gateway feed is loosely shaped: the transaction container and several
// entry fields appear under different names depending on endpoint and API
// version. All known aliases live here so new quirks are additive.
var (
	// Keys under which the feed payload carries its transaction container.
	feedContainerAliases = []string{"list", "data", "transactions"}

	// Keys under which an entry carries its transaction identifier.
	identifierAliases = []string{"id", "transactionId", "transaction_id"}

	// Keys under which an entry carries its status, in precedence order.
	statusAliases = []string{"status", "payment_status"}

	// Keys under which an entry carries its free-text content.
	contentAliases = []string{"content", "transaction_content"}
)

// Entry is a single raw feed record. Field access goes through the alias
// tables above; values are kept untyped because the gateway mixes strings
// and numbers freely.
type Entry map[string]interface{}

// stringField returns the first alias present with a non-empty string value.
func (e Entry) stringField(aliases []string) string {
	for _, key := range aliases {
		if v, ok := e[key]; ok {
			switch s := v.(type) {
			case string:
				if s != "" {
					return s
				}
			case json.Number:
				return s.String()
			case float64:
				return fmt.Sprintf("%v", s)
			}
		}
	}

	return ""
}

// TransactionID returns the entry's identifier under any known alias.
func (e Entry) TransactionID() string {
	return e.stringField(identifierAliases)
}

// Status returns the entry's status field, preferring "status" over
// "payment_status", defaulting to "unknown" when neither is present.
func (e Entry) Status() string {
	if s := e.stringField(statusAliases); s != "" {
		return s
	}

	return consts.PaymentStatusUnknown
}

// Content returns the entry's free-text content field.
func (e Entry) Content() string {
	return e.stringField(contentAliases)
}

// Clone returns a shallow copy so callers can annotate an entry without
// mutating the parsed feed.
func (e Entry) Clone() Entry {
	out := make(Entry, len(e)+1)
	for k, v := range e {
		out[k] = v
	}

	return out
}

// Feed is the transaction container in one of its two mutually exclusive
// shapes: a plain array of entries, or a map keyed by transaction id. Which
// one applies is decided once, when the payload is parsed.
type Feed struct {
	Entries []Entry
	Keyed   map[string]Entry
}

// IsKeyed reports whether the feed came as a map keyed by transaction id.
func (f *Feed) IsKeyed() bool {
	return f.Keyed != nil
}

// ParseFeed extracts the transaction container from a raw feed payload and
// resolves its shape. A payload without any known container key yields an
// empty array-shaped feed, which downstream treats as "nothing found".
func ParseFeed(raw json.RawMessage) (*Feed, error) {
	var payload map[string]json.RawMessage
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, fmt.Errorf("malformed feed payload: %w", err)
	}

	var container json.RawMessage
	for _, key := range feedContainerAliases {
		if v, ok := payload[key]; ok && string(v) != "null" {
			container = v
			break
		}
	}

	if container == nil {
		return &Feed{Entries: []Entry{}}, nil
	}

	var entries []Entry
	if err := json.Unmarshal(container, &entries); err == nil {
		return &Feed{Entries: entries}, nil
	}

	var keyed map[string]Entry
	if err := json.Unmarshal(container, &keyed); err == nil {
		return &Feed{Keyed: keyed}, nil
	}

	return nil, fmt.Errorf("feed container is neither an array nor an object")
}
