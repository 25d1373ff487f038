package database

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"filmorate/internal/middleware"

	"gorm.io/gorm"
)

// MigrationStore records which SQL migrations ran against the database.
type MigrationStore interface {
	GetAppliedMigrations(ctx context.Context) ([]AppliedMigration, error)
	ApplyMigration(ctx context.Context, m Migration) error
	RemoveMigration(ctx context.Context, version int) error
}

// AppliedMigration is a row of schema_migrations.
type AppliedMigration struct {
	Version   int       `gorm:"primaryKey;autoIncrement:false"`
	Name      string    `gorm:"size:255;not null"`
	Checksum  string    `gorm:"size:64;not null"`
	AppliedAt time.Time `gorm:"autoCreateTime"`
}

// TableName specifies the table name for GORM
func (AppliedMigration) TableName() string {
	return "schema_migrations"
}

type migrationStore struct {
	db *gorm.DB
}

// NewMigrationStore creates a new MigrationStore instance.
func NewMigrationStore(db *gorm.DB) MigrationStore {
	return &migrationStore{db: db}
}

func (s *migrationStore) GetAppliedMigrations(ctx context.Context) ([]AppliedMigration, error) {
	var rows []AppliedMigration
	if err := s.db.WithContext(ctx).Order("version ASC").Find(&rows).Error; err != nil {
		if isMissingTableError(err) {
			return []AppliedMigration{}, nil
		}
		return nil, fmt.Errorf("failed to get applied migrations: %w", err)
	}
	return rows, nil
}

func isMissingTableError(err error) bool {
	msg := err.Error()
	return (strings.Contains(msg, "relation") && strings.Contains(msg, "does not exist")) ||
		strings.Contains(msg, "no such table")
}

// ApplyMigration runs the script and records it in one transaction, so a failing
// script leaves no row behind.
func (s *migrationStore) ApplyMigration(ctx context.Context, m Migration) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec(m.UpScript).Error; err != nil {
			return fmt.Errorf("failed to apply migration %d (%s): %w", m.Version, m.Name, err)
		}
		row := AppliedMigration{Version: m.Version, Name: m.Name, Checksum: m.Checksum()}
		if err := tx.Create(&row).Error; err != nil {
			return fmt.Errorf("failed to record migration %d: %w", m.Version, err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	middleware.Logger.Info("Migration applied", slog.String("migration", m.String()))
	return nil
}

func (s *migrationStore) RemoveMigration(ctx context.Context, version int) error {
	if err := s.db.WithContext(ctx).Where("version = ?", version).Delete(&AppliedMigration{}).Error; err != nil {
		return fmt.Errorf("failed to remove migration record %d: %w", version, err)
	}
	middleware.Logger.Info("Migration rolled back", slog.Int("version", version))
	return nil
}

const ensureSchemaMigrationsSQL = `
CREATE TABLE IF NOT EXISTS schema_migrations (
	version BIGINT PRIMARY KEY,
	name VARCHAR(255) NOT NULL,
	checksum VARCHAR(64) NOT NULL,
	applied_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);`

// RunMigrations applies every embedded migration that has not run yet, in version
// order. It refuses to continue when the database knows versions the binary does not
// or when an applied script was edited afterwards.
func RunMigrations(ctx context.Context, db *gorm.DB) error {
	return runMigrations(ctx, db, migrations)
}

func runMigrations(ctx context.Context, db *gorm.DB, registered []Migration) error {
	if err := db.WithContext(ctx).Exec(ensureSchemaMigrationsSQL).Error; err != nil {
		return fmt.Errorf("failed to ensure schema_migrations table: %w", err)
	}

	store := NewMigrationStore(db)
	applied, err := store.GetAppliedMigrations(ctx)
	if err != nil {
		return err
	}
	if err := validateApplied(applied, registered); err != nil {
		return err
	}

	done := make(map[int]bool, len(applied))
	for _, a := range applied {
		done[a.Version] = true
	}

	pending := 0
	for _, m := range registered {
		if done[m.Version] {
			continue
		}
		middleware.Logger.Info("Applying migration", slog.String("migration", m.String()))
		if err := store.ApplyMigration(ctx, m); err != nil {
			return err
		}
		pending++
	}

	if pending == 0 {
		middleware.Logger.Debug("Schema is up to date", slog.Int("applied", len(applied)))
	}
	return nil
}

// validateApplied compares the recorded migrations with the embedded ones.
func validateApplied(applied []AppliedMigration, registered []Migration) error {
	if len(applied) == 0 {
		return nil
	}
	byVersion := make(map[int]Migration, len(registered))
	for _, m := range registered {
		byVersion[m.Version] = m
	}

	var unknown []int
	var drifted []string
	for _, a := range applied {
		m, ok := byVersion[a.Version]
		if !ok {
			unknown = append(unknown, a.Version)
			continue
		}
		if a.Checksum != "" && a.Checksum != m.Checksum() {
			drifted = append(drifted, m.String())
		}
	}

	if len(unknown) > 0 {
		sort.Ints(unknown)
		parts := make([]string, 0, len(unknown))
		for _, version := range unknown {
			parts = append(parts, fmt.Sprintf("%06d", version))
		}
		return fmt.Errorf("schema_migrations contains versions unknown to this build: %s", strings.Join(parts, ", "))
	}
	if len(drifted) > 0 {
		return fmt.Errorf("applied migrations were modified after they ran: %s", strings.Join(drifted, ", "))
	}
	return nil
}

var errNotLatest = errors.New("only the most recently applied migration can be rolled back")

// RollbackMigration reverts version, which must be the latest applied migration.
func RollbackMigration(ctx context.Context, db *gorm.DB, version int) error {
	m := GetMigrationByVersion(version)
	if m == nil {
		return fmt.Errorf("migration version %d not found", version)
	}

	store := NewMigrationStore(db)
	applied, err := store.GetAppliedMigrations(ctx)
	if err != nil {
		return err
	}
	if len(applied) == 0 || !containsVersion(applied, version) {
		return fmt.Errorf("migration %d has not been applied", version)
	}
	if latest := applied[len(applied)-1].Version; latest != version {
		return fmt.Errorf("%w (latest is %06d)", errNotLatest, latest)
	}

	middleware.Logger.Info("Rolling back migration", slog.String("migration", m.String()))
	if err := db.WithContext(ctx).Exec(m.DownScript).Error; err != nil {
		return fmt.Errorf("failed to run rollback SQL for migration %s: %w", m, err)
	}
	return store.RemoveMigration(ctx, version)
}

func containsVersion(applied []AppliedMigration, version int) bool {
	for _, a := range applied {
		if a.Version == version {
			return true
		}
	}
	return false
}
