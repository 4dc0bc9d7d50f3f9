package memstore

import (
	"context"
	"testing"
	"time"

	"github.com/adresponse/adresponse/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmailStore(t *testing.T) {
	ctx := context.Background()
	store := NewEmailStore()
	base := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)

	older := &domain.EmailRFP{
		Subject:      "RFP Request - Global Retail Holiday Campaign",
		Sender:       "procurement@globalretail.com",
		ReceivedDate: base,
		Attachments:  []domain.EmailAttachment{{Filename: "requirements.pdf", Type: "pdf"}},
	}
	newer := &domain.EmailRFP{
		Subject:      "Fwd: TechStart Product Launch RFP (2 attachments)",
		Sender:       "partnerships@techstart.io",
		ReceivedDate: base.Add(24 * time.Hour),
	}
	require.NoError(t, store.Create(ctx, older))
	require.NoError(t, store.Create(ctx, newer))

	t.Run("list newest first", func(t *testing.T) {
		emails, err := store.List(ctx)
		require.NoError(t, err)
		require.Len(t, emails, 2)
		assert.Equal(t, newer.ID, emails[0].ID)
	})

	t.Run("mark processed keeps the email listed", func(t *testing.T) {
		require.NoError(t, store.MarkProcessed(ctx, older.ID))

		got, err := store.GetByID(ctx, older.ID)
		require.NoError(t, err)
		assert.True(t, got.Processed)

		emails, err := store.List(ctx)
		require.NoError(t, err)
		assert.Len(t, emails, 2)
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := store.GetByID(ctx, 42)
		assert.ErrorIs(t, err, domain.ErrEmailNotFound)
		assert.ErrorIs(t, store.MarkProcessed(ctx, 42), domain.ErrEmailNotFound)
	})
}
