package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/maildraft/internal/model"
	"github.com/nhle/maildraft/internal/store"
	"github.com/nhle/maildraft/tests/testutil"
)

func seedLaunches(t *testing.T, s store.Store) []model.Launch {
	t.Helper()

	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	launches := []model.Launch{
		{App: "mailto", Method: model.LaunchMethodMailto, Subject: "Weekly report", Recipients: "boss@x.com", CreatedAt: base},
		{App: "ms-outlook://compose", Method: model.LaunchMethodEML, Subject: "Invoice", Recipients: "billing@y.com", CreatedAt: base.Add(time.Hour)},
		{App: "mailto", Method: model.LaunchMethodMailto, Subject: "Lunch?", Recipients: "team@x.com", CreatedAt: base.Add(2 * time.Hour)},
	}
	for i := range launches {
		require.NoError(t, s.RecordLaunch(context.Background(), &launches[i]))
		require.NotEmpty(t, launches[i].ID)
	}
	return launches
}

func TestRecordLaunch_RequiresApp(t *testing.T) {
	s := testutil.NewTestStore(t)
	err := s.RecordLaunch(context.Background(), &model.Launch{Method: model.LaunchMethodMailto})
	assert.Error(t, err)
}

func TestGetLaunches_NewestFirst(t *testing.T) {
	s := testutil.NewTestStore(t)
	seedLaunches(t, s)

	got, err := s.GetLaunches(context.Background(), store.LaunchFilter{})
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "Lunch?", got[0].Subject)
	assert.Equal(t, "Invoice", got[1].Subject)
	assert.Equal(t, "Weekly report", got[2].Subject)
}

func TestGetLaunches_Filters(t *testing.T) {
	s := testutil.NewTestStore(t)
	seeded := seedLaunches(t, s)
	ctx := context.Background()

	app := "mailto"
	got, err := s.GetLaunches(ctx, store.LaunchFilter{App: &app})
	require.NoError(t, err)
	assert.Len(t, got, 2)

	method := model.LaunchMethodEML
	got, err = s.GetLaunches(ctx, store.LaunchFilter{Method: &method})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Invoice", got[0].Subject)

	q := "x.com"
	got, err = s.GetLaunches(ctx, store.LaunchFilter{Query: &q})
	require.NoError(t, err)
	assert.Len(t, got, 2)

	since := seeded[1].CreatedAt
	got, err = s.GetLaunches(ctx, store.LaunchFilter{Since: &since})
	require.NoError(t, err)
	assert.Len(t, got, 2)

	got, err = s.GetLaunches(ctx, store.LaunchFilter{Limit: 1, Offset: 1})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Invoice", got[0].Subject)

	got, err = s.GetLaunches(ctx, store.LaunchFilter{Offset: 2})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Weekly report", got[0].Subject)
}

func TestGetLaunchByID(t *testing.T) {
	s := testutil.NewTestStore(t)
	seeded := seedLaunches(t, s)

	got, err := s.GetLaunchByID(context.Background(), seeded[1].ID)
	require.NoError(t, err)
	assert.Equal(t, model.LaunchMethodEML, got.Method)
	assert.Equal(t, "billing@y.com", got.Recipients)
	assert.True(t, seeded[1].CreatedAt.Equal(got.CreatedAt))

	_, err = s.GetLaunchByID(context.Background(), "missing")
	assert.ErrorIs(t, err, store.ErrNotFound)
}
