package reconcile_test

import (
	"testing"

	"github.com/ordane/paygate/app/gateway"
	"github.com/ordane/paygate/app/reconcile"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindByID_ArrayShape(t *testing.T) {
	// an entry tagged under any identifier alias must be found
	for _, alias := range []string{"id", "transactionId", "transaction_id"} {
		t.Run(alias, func(t *testing.T) {
			feed := &gateway.Feed{Entries: []gateway.Entry{
				{"id": "OTHER"},
				{alias: "TX-1", "status": "paid"},
			}}

			entry, ok := reconcile.FindByID(feed, "TX-1")
			require.True(t, ok)
			assert.Equal(t, "paid", entry.Status())
		})
	}

	t.Run("miss", func(t *testing.T) {
		feed := &gateway.Feed{Entries: []gateway.Entry{{"id": "TX-1"}}}

		_, ok := reconcile.FindByID(feed, "TX-2")
		assert.False(t, ok)
	})

	t.Run("empty feed", func(t *testing.T) {
		feed := &gateway.Feed{Entries: []gateway.Entry{}}

		_, ok := reconcile.FindByID(feed, "TX-1")
		assert.False(t, ok)
	})
}

func TestFindByID_KeyedShape(t *testing.T) {
	feed := &gateway.Feed{Keyed: map[string]gateway.Entry{
		"TX-1": {"status": "completed"},
	}}

	entry, ok := reconcile.FindByID(feed, "TX-1")
	require.True(t, ok)
	assert.Equal(t, "completed", entry.Status())

	_, ok = reconcile.FindByID(feed, "TX-2")
	assert.False(t, ok)
}

func TestFindByContent(t *testing.T) {
	feedWith := func(content string) *gateway.Feed {
		return &gateway.Feed{Entries: []gateway.Entry{
			{"transaction_content": content},
		}}
	}

	t.Run("exact needle matches", func(t *testing.T) {
		_, ok := reconcile.FindByContent(feedWith("alice T123456789AB"), "alice", "T123456789AB")
		assert.True(t, ok)
	})

	t.Run("surrounding text does not matter", func(t *testing.T) {
		_, ok := reconcile.FindByContent(feedWith("transfer ref alice T123456789AB sep 2025"), "alice", "T123456789AB")
		assert.True(t, ok)
	})

	t.Run("wrong user misses", func(t *testing.T) {
		_, ok := reconcile.FindByContent(feedWith("alice T123456789AB"), "bob", "T123456789AB")
		assert.False(t, ok)
	})

	t.Run("non-space separator misses", func(t *testing.T) {
		_, ok := reconcile.FindByContent(feedWith("alice-T123456789AB"), "alice", "T123456789AB")
		assert.False(t, ok)

		_, ok = reconcile.FindByContent(feedWith("alice  T123456789AB"), "alice", "T123456789AB")
		assert.False(t, ok)
	})

	t.Run("case sensitive", func(t *testing.T) {
		_, ok := reconcile.FindByContent(feedWith("Alice T123456789AB"), "alice", "T123456789AB")
		assert.False(t, ok)
	})

	t.Run("content alias", func(t *testing.T) {
		feed := &gateway.Feed{Entries: []gateway.Entry{
			{"content": "alice T123456789AB"},
		}}

		_, ok := reconcile.FindByContent(feed, "alice", "T123456789AB")
		assert.True(t, ok)
	})

	t.Run("keyed feed never matches by content", func(t *testing.T) {
		feed := &gateway.Feed{Keyed: map[string]gateway.Entry{
			"TX-1": {"transaction_content": "alice T123456789AB"},
		}}

		_, ok := reconcile.FindByContent(feed, "alice", "T123456789AB")
		assert.False(t, ok)
	})
}
