package notification

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/wesplit/wesplit/internal/ledger"
)

func newTestService(t *testing.T) (*Service, *ledger.Group) {
	t.Helper()

	store := ledger.NewStore()
	g, err := store.CreateGroup("Trip", "", ledger.Member{ID: "alice", Name: "Alice"})
	require.NoError(t, err)

	return NewService(NewRepository(), store), g
}

func TestParseChannel(t *testing.T) {
	for _, raw := range []string{"email", "sms", "whatsapp", "share"} {
		c, err := ParseChannel(raw)
		require.NoError(t, err)
		require.Equal(t, Channel(raw), c)
	}

	_, err := ParseChannel("carrier-pigeon")
	require.ErrorIs(t, err, ErrUnknownChannel)
}

func TestSendInvite(t *testing.T) {
	ctx := context.Background()

	t.Run("composes per channel and records the outbox", func(t *testing.T) {
		svc, g := newTestService(t)

		n, err := svc.SendInvite(ctx, g.ID, ChannelEmail, "bob@example.com", "Bob", "alice")
		require.NoError(t, err)
		require.NotEmpty(t, n.ID)
		require.Equal(t, ChannelEmail, n.Channel)
		require.Equal(t, "bob@example.com", n.Recipient)
		require.Contains(t, n.Subject, "Trip")
		require.Contains(t, n.Body, "Alice")
		require.Contains(t, n.Body, "Bob")

		require.Len(t, svc.List(ctx), 1)
	})

	t.Run("share invites need no recipient", func(t *testing.T) {
		svc, g := newTestService(t)

		n, err := svc.SendInvite(ctx, g.ID, ChannelShare, "", "", "alice")
		require.NoError(t, err)
		require.Empty(t, n.Recipient)
		require.Contains(t, n.Body, "Trip")
	})

	t.Run("other channels require a recipient", func(t *testing.T) {
		svc, g := newTestService(t)

		_, err := svc.SendInvite(ctx, g.ID, ChannelSMS, "", "Bob", "alice")
		require.ErrorIs(t, err, ledger.ErrValidation)
	})

	t.Run("unknown inviter falls back to a generic name", func(t *testing.T) {
		svc, g := newTestService(t)

		n, err := svc.SendInvite(ctx, g.ID, ChannelEmail, "bob@example.com", "Bob", "stranger")
		require.NoError(t, err)
		require.Contains(t, n.Body, "A group member")
	})

	t.Run("rejects unknown channels", func(t *testing.T) {
		svc, g := newTestService(t)

		_, err := svc.SendInvite(ctx, g.ID, Channel("fax"), "x", "Bob", "alice")
		require.ErrorIs(t, err, ledger.ErrValidation)
		require.ErrorIs(t, err, ErrUnknownChannel)
	})

	t.Run("unknown group", func(t *testing.T) {
		svc, _ := newTestService(t)

		_, err := svc.SendInvite(ctx, "nope", ChannelEmail, "bob@example.com", "Bob", "alice")
		require.ErrorIs(t, err, ledger.ErrNotFound)
	})
}
