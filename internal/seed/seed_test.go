package seed

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adresponse/adresponse/internal/memstore"
)

func newTestStores() Stores {
	return Stores{
		RFPs:     memstore.NewRFPStore(),
		Articles: memstore.NewArticleStore(),
		Team:     memstore.NewTeamStore(),
		Emails:   memstore.NewEmailStore(),
	}
}

func TestRun_LoadsSampleData(t *testing.T) {
	ctx := context.Background()
	stores := newTestStores()

	require.NoError(t, Run(ctx, stores))

	rfps, err := stores.RFPs.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, rfps, 8)

	members, err := stores.Team.List(ctx)
	require.NoError(t, err)
	require.Len(t, members, 4)
	assert.Equal(t, "John Doe", members[0].Name)
	assert.Equal(t, "Media Director", members[0].Role)

	// Team assignments reference the seeded member IDs
	first := rfps[0]
	assert.Equal(t, "Q3 Digital Media Campaign", first.Name)
	assert.Len(t, first.TeamMemberIDs, 4)
}

func TestRun_SkipsWhenAlreadySeeded(t *testing.T) {
	ctx := context.Background()
	stores := newTestStores()

	require.NoError(t, Run(ctx, stores))
	require.NoError(t, Run(ctx, stores))

	rfps, err := stores.RFPs.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, rfps, 8, "second run must not duplicate data")

	members, err := stores.Team.List(ctx)
	require.NoError(t, err)
	assert.Len(t, members, 4)
}
