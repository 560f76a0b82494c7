// Package store provides data persistence interfaces and implementations.
package store

import (
	"context"

	"pnl-journal/internal/models"
)

// DataStore defines the interface for journal persistence.
type DataStore interface {
	// Day records
	SaveRecord(ctx context.Context, record *models.DayRecord) error
	GetRecord(ctx context.Context, id string) (*models.DayRecord, error)
	DeleteRecord(ctx context.Context, id string) error
	ListRecords(ctx context.Context, filter RecordFilter) ([]models.DayRecord, error)

	// Settings
	GetSettings(ctx context.Context) (*models.UserSettings, error)
	SaveSettings(ctx context.Context, settings *models.UserSettings) error

	// Lifecycle
	Close() error
}

// RecordFilter represents filters for querying day records. Date bounds
// are inclusive YYYY-MM-DD keys; Month is a YYYY-MM prefix.
type RecordFilter struct {
	Month string
	From  string
	To    string
	Tag   string
	Limit int
}
