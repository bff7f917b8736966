package migrations

import (
	"fmt"
	"log"
	"sort"
	"time"

	"gorm.io/gorm"
)

// Migrator handles the execution of migrations
type Migrator struct {
	db         *gorm.DB
	migrations []*Migration
}

// NewMigrator creates a new Migrator instance
func NewMigrator(db *gorm.DB) *Migrator {
	return &Migrator{
		db:         db,
		migrations: make([]*Migration, 0),
	}
}

// Default returns a migrator with every schema migration registered
func Default(db *gorm.DB) *Migrator {
	m := NewMigrator(db)
	for _, mr := range All() {
		m.Register(mr)
	}
	return m
}

// Register adds a migration to the migrator, keeping versions ordered
func (m *Migrator) Register(mr *Migration) {
	m.migrations = append(m.migrations, mr)
	sort.SliceStable(m.migrations, func(i, j int) bool {
		return m.migrations[i].Version < m.migrations[j].Version
	})
}

func (m *Migrator) ensureVersionTable() error {
	return m.db.AutoMigrate(&MigrationRecord{})
}

// GetAppliedVersions returns the applied migration records keyed by version
func (m *Migrator) GetAppliedVersions() (map[string]MigrationRecord, error) {
	if err := m.ensureVersionTable(); err != nil {
		return nil, err
	}

	var records []MigrationRecord
	if err := m.db.Find(&records).Error; err != nil {
		return nil, err
	}

	versions := make(map[string]MigrationRecord, len(records))
	for _, record := range records {
		versions[record.Version] = record
	}
	return versions, nil
}

// Up applies all pending migrations and returns how many ran
func (m *Migrator) Up() (int, error) {
	applied, err := m.GetAppliedVersions()
	if err != nil {
		return 0, err
	}

	count := 0
	for _, mr := range m.migrations {
		if _, ok := applied[mr.Version]; ok {
			continue
		}
		err := m.db.Transaction(func(tx *gorm.DB) error {
			if err := mr.Up(tx); err != nil {
				return err
			}
			return tx.Create(&MigrationRecord{
				Version:   mr.Version,
				Name:      mr.Name,
				AppliedAt: time.Now(),
			}).Error
		})
		if err != nil {
			return count, fmt.Errorf("migration %s_%s failed: %w", mr.Version, mr.Name, err)
		}
		log.Printf("Applied migration %s_%s", mr.Version, mr.Name)
		count++
	}
	return count, nil
}

// Down rolls back the last applied migration
func (m *Migrator) Down() (*MigrationRecord, error) {
	if err := m.ensureVersionTable(); err != nil {
		return nil, err
	}

	var lastRecord MigrationRecord
	if err := m.db.Order("version DESC").First(&lastRecord).Error; err != nil {
		return nil, err
	}

	var target *Migration
	for _, mr := range m.migrations {
		if mr.Version == lastRecord.Version {
			target = mr
			break
		}
	}
	if target == nil {
		return nil, fmt.Errorf("migration %s is applied but not registered", lastRecord.Version)
	}

	err := m.db.Transaction(func(tx *gorm.DB) error {
		if target.Down != nil {
			if err := target.Down(tx); err != nil {
				return err
			}
		}
		return tx.Delete(&lastRecord).Error
	})
	if err != nil {
		return nil, fmt.Errorf("rollback of %s_%s failed: %w", target.Version, target.Name, err)
	}
	log.Printf("Rolled back migration %s_%s", target.Version, target.Name)
	return &lastRecord, nil
}

// Status reports every registered migration and whether it has been applied
func (m *Migrator) Status() ([]MigrationStatus, error) {
	applied, err := m.GetAppliedVersions()
	if err != nil {
		return nil, err
	}

	out := make([]MigrationStatus, 0, len(m.migrations))
	for _, mr := range m.migrations {
		st := MigrationStatus{Version: mr.Version, Name: mr.Name}
		if rec, ok := applied[mr.Version]; ok {
			st.Applied = true
			at := rec.AppliedAt
			st.AppliedAt = &at
		}
		out = append(out, st)
	}
	return out, nil
}
