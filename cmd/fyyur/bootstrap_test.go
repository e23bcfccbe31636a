package main

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fyyur/internal/store/memory"
)

func TestSeedDemoData(t *testing.T) {
	ctx := context.Background()
	data := memory.New()

	require.NoError(t, seedDemoData(ctx, data))

	venues, err := data.ListVenues(ctx)
	require.NoError(t, err)
	assert.Len(t, venues, len(demoVenues))

	shows, err := data.ListShows(ctx)
	require.NoError(t, err)
	assert.Len(t, shows, len(demoShows))
	assert.Equal(t, "Guns N Petals", shows[0].ArtistName)

	// A second run leaves the data alone.
	require.NoError(t, seedDemoData(ctx, data))
	shows, err = data.ListShows(ctx)
	require.NoError(t, err)
	assert.Len(t, shows, len(demoShows))
}
