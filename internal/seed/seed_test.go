package seed

import (
	"context"
	"errors"
	"testing"

	"karma/pkg/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder[T any] struct {
	saved []T
	err   error
}

func (r *recorder[T]) Upsert(_ context.Context, v T) error {
	if r.err != nil {
		return r.err
	}
	r.saved = append(r.saved, v)
	return nil
}

func (r *recorder[T]) Create(ctx context.Context, v T) error {
	return r.Upsert(ctx, v)
}

func TestDirectoryIsConsistent(t *testing.T) {
	nonprofits, opportunities := Directory()
	require.NotEmpty(t, nonprofits)
	require.NotEmpty(t, opportunities)

	ids := map[string]bool{}
	byID := map[string]*types.Nonprofit{}
	for _, n := range nonprofits {
		assert.False(t, ids[n.ID], "duplicate id %s", n.ID)
		ids[n.ID] = true
		byID[n.ID] = n

		assert.True(t, n.Category.Valid(), n.Name)
		assert.True(t, n.HasCoordinates(), n.Name)
	}

	for _, o := range opportunities {
		assert.False(t, ids[o.ID], "duplicate id %s", o.ID)
		ids[o.ID] = true

		parent, ok := byID[o.NonprofitID]
		require.True(t, ok, o.Title)
		assert.Equal(t, parent.Category, o.Category)
		assert.True(t, o.IsActive)
		assert.Positive(t, o.SpotsAvailable())
	}
}

func TestDirectoryHasDisasterRelief(t *testing.T) {
	_, opportunities := Directory()

	found := false
	for _, o := range opportunities {
		if o.Category == types.CategoryDisasterRelief {
			found = true
		}
	}
	assert.True(t, found)
}

func TestSeedDirectory(t *testing.T) {
	nonprofits := &recorder[*types.Nonprofit]{}
	opportunities := &recorder[*types.Opportunity]{}

	require.NoError(t, SeedDirectory(context.Background(), nonprofits, opportunities))

	wantNonprofits, wantOpportunities := Directory()
	assert.Len(t, nonprofits.saved, len(wantNonprofits))
	assert.Len(t, opportunities.saved, len(wantOpportunities))
}

func TestSeedDirectoryStopsOnError(t *testing.T) {
	boom := errors.New("boom")
	opportunities := &recorder[*types.Opportunity]{}

	err := SeedDirectory(context.Background(), &recorder[*types.Nonprofit]{err: boom}, opportunities)

	require.ErrorIs(t, err, boom)
	assert.Empty(t, opportunities.saved)
}

func TestSeedFakeUsers(t *testing.T) {
	users := &recorder[*types.User]{}

	require.NoError(t, SeedFakeUsers(context.Background(), users))

	require.Len(t, users.saved, len(fakeUsers))
	for _, u := range users.saved {
		require.NotNil(t, u.UserType)
		assert.Equal(t, string(types.UserTypeVolunteer), *u.UserType)
		for _, c := range u.PreferredCategories {
			assert.True(t, types.Category(c).Valid(), c)
		}
	}
}
