package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "pnl-journal/internal/errors"
	"pnl-journal/internal/models"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := NewSQLiteStore(filepath.Join(t.TempDir(), "journal.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSaveAndGetRecord(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	two := 2
	record := &models.DayRecord{
		ID:      "2024-03-15",
		TotalPL: 420.5,
		Trades: []models.Trade{
			{Symbol: "AAPL", PercentReturn: 1.2},
			{Symbol: "TSLA", PercentReturn: -0.7},
		},
		NumberOfTrades: 2,
		Notes:          "choppy open",
		Tags:           []string{"momentum", "earnings"},
		FallingKnives:  &two,
	}

	require.NoError(t, s.SaveRecord(ctx, record))

	got, err := s.GetRecord(ctx, "2024-03-15")
	require.NoError(t, err)
	assert.Equal(t, record.TotalPL, got.TotalPL)
	assert.Equal(t, record.Trades, got.Trades)
	assert.Equal(t, record.Notes, got.Notes)
	assert.Equal(t, record.Tags, got.Tags)
	require.NotNil(t, got.FallingKnives)
	assert.Equal(t, 2, *got.FallingKnives)
}

func TestSaveRecordUpsertReplacesTrades(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	record := &models.DayRecord{
		ID:             "2024-03-15",
		TotalPL:        100,
		Trades:         []models.Trade{{Symbol: "AAPL", PercentReturn: 1}},
		NumberOfTrades: 1,
	}
	require.NoError(t, s.SaveRecord(ctx, record))

	record.TotalPL = -50
	record.Trades = []models.Trade{{Symbol: "NVDA", PercentReturn: -2}}
	require.NoError(t, s.SaveRecord(ctx, record))

	got, err := s.GetRecord(ctx, "2024-03-15")
	require.NoError(t, err)
	assert.Equal(t, -50.0, got.TotalPL)
	assert.Equal(t, []models.Trade{{Symbol: "NVDA", PercentReturn: -2}}, got.Trades)
}

func TestSaveRecordRejectsBadDate(t *testing.T) {
	s := newTestStore(t)

	err := s.SaveRecord(context.Background(), &models.DayRecord{ID: "15-03-2024"})

	var verr *apperrors.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "id", verr.Field)
}

func TestGetRecordNotFound(t *testing.T) {
	s := newTestStore(t)

	_, err := s.GetRecord(context.Background(), "2024-01-01")

	assert.ErrorIs(t, err, apperrors.ErrRecordNotFound)
}

func TestDeleteRecord(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.SaveRecord(ctx, &models.DayRecord{
		ID:     "2024-03-15",
		Trades: []models.Trade{{Symbol: "AAPL"}},
	}))
	require.NoError(t, s.DeleteRecord(ctx, "2024-03-15"))

	_, err := s.GetRecord(ctx, "2024-03-15")
	assert.ErrorIs(t, err, apperrors.ErrRecordNotFound)

	assert.ErrorIs(t, s.DeleteRecord(ctx, "2024-03-15"), apperrors.ErrRecordNotFound)
}

func TestListRecords(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	seed := []*models.DayRecord{
		{ID: "2024-01-10", TotalPL: 100, Tags: []string{"momentum"}},
		{ID: "2024-01-20", TotalPL: -50},
		{ID: "2024-02-05", TotalPL: 30, Tags: []string{"momentum", "earnings"}},
		{ID: "2023-12-31", TotalPL: 10},
	}
	for _, r := range seed {
		require.NoError(t, s.SaveRecord(ctx, r))
	}

	t.Run("all records sorted ascending", func(t *testing.T) {
		records, err := s.ListRecords(ctx, RecordFilter{})
		require.NoError(t, err)
		require.Len(t, records, 4)
		assert.Equal(t, "2023-12-31", records[0].ID)
		assert.Equal(t, "2024-02-05", records[3].ID)
	})

	t.Run("month filter", func(t *testing.T) {
		records, err := s.ListRecords(ctx, RecordFilter{Month: "2024-01"})
		require.NoError(t, err)
		require.Len(t, records, 2)
		assert.Equal(t, "2024-01-10", records[0].ID)
	})

	t.Run("date range inclusive", func(t *testing.T) {
		records, err := s.ListRecords(ctx, RecordFilter{From: "2024-01-20", To: "2024-02-05"})
		require.NoError(t, err)
		require.Len(t, records, 2)
	})

	t.Run("tag filter", func(t *testing.T) {
		records, err := s.ListRecords(ctx, RecordFilter{Tag: "earnings"})
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, "2024-02-05", records[0].ID)
	})

	t.Run("limit", func(t *testing.T) {
		records, err := s.ListRecords(ctx, RecordFilter{Limit: 2})
		require.NoError(t, err)
		require.Len(t, records, 2)
	})
}

func TestSettingsRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	settings, err := s.GetSettings(ctx)
	require.NoError(t, err)
	assert.Equal(t, &models.UserSettings{}, settings)

	require.NoError(t, s.SaveSettings(ctx, &models.UserSettings{
		NetWorth:        250000,
		StartingBalance: 100000,
	}))
	require.NoError(t, s.SaveSettings(ctx, &models.UserSettings{
		NetWorth:        260000,
		StartingBalance: 100000,
	}))

	settings, err = s.GetSettings(ctx)
	require.NoError(t, err)
	assert.Equal(t, 260000.0, settings.NetWorth)
	assert.Equal(t, 100000.0, settings.StartingBalance)
}
