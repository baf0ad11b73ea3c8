// Package migration runs and tracks registered schema migrations.
//
// Migrations register themselves from init() in database/migrations:
//
//	func init() {
//	    migration.Register("20260301000000_create_catalog_tables", &CreateCatalogTables{})
//	}
//
// and are applied with `automart migrate`, reverted per batch with
// `automart migrate:rollback`.
package migration

import (
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/shashiranjanraj/automart/pkg/logger"
	"gorm.io/gorm"
)

type Migration interface {
	Up(db *gorm.DB) error
	Down(db *gorm.DB) error
}

type record struct {
	ID    uint      `gorm:"primaryKey;autoIncrement"`
	Name  string    `gorm:"uniqueIndex;size:255;not null"`
	Batch int       `gorm:"not null"`
	RunAt time.Time `gorm:"autoCreateTime"`
}

func (record) TableName() string { return "schema_migrations" }

type registered struct {
	name string
	m    Migration
}

var registry []registered

// Register adds a migration. Names are timestamp-prefixed and applied in
// lexical order.
func Register(name string, m Migration) {
	registry = append(registry, registered{name: name, m: m})
}

// Status describes one registered migration.
type Status struct {
	Name  string
	Ran   bool
	Batch int
}

// Runner executes and tracks migrations.
type Runner struct {
	db  *gorm.DB
	out io.Writer
}

// New creates a Runner. Progress lines go to out; pass io.Discard to silence.
func New(db *gorm.DB, out io.Writer) *Runner {
	return &Runner{db: db, out: out}
}

func (r *Runner) ensureTable() error {
	return r.db.AutoMigrate(&record{})
}

func (r *Runner) pending() ([]registered, error) {
	var ran []record
	if err := r.db.Find(&ran).Error; err != nil {
		return nil, err
	}

	done := make(map[string]bool, len(ran))
	for _, rec := range ran {
		done[rec.Name] = true
	}

	var out []registered
	for _, reg := range sorted() {
		if !done[reg.name] {
			out = append(out, reg)
		}
	}
	return out, nil
}

// Run applies every pending migration as one batch. Each migration and its
// tracking row commit together.
func (r *Runner) Run() error {
	if err := r.ensureTable(); err != nil {
		return fmt.Errorf("migration: ensure table: %w", err)
	}

	pending, err := r.pending()
	if err != nil {
		return fmt.Errorf("migration: fetch pending: %w", err)
	}
	if len(pending) == 0 {
		fmt.Fprintln(r.out, "Nothing to migrate.")
		return nil
	}

	batch := r.maxBatch() + 1
	for _, reg := range pending {
		fmt.Fprintf(r.out, "  ▶ Migrating: %s\n", reg.name)

		err := r.db.Transaction(func(tx *gorm.DB) error {
			if err := reg.m.Up(tx); err != nil {
				return err
			}
			return tx.Create(&record{Name: reg.name, Batch: batch}).Error
		})
		if err != nil {
			return fmt.Errorf("migration: %s up: %w", reg.name, err)
		}
	}

	logger.Info("migration: done", "ran", len(pending), "batch", batch)
	return nil
}

// Rollback reverts the most recent batch, newest first.
func (r *Runner) Rollback() error {
	if err := r.ensureTable(); err != nil {
		return fmt.Errorf("migration: ensure table: %w", err)
	}

	last := r.maxBatch()
	if last == 0 {
		fmt.Fprintln(r.out, "Nothing to roll back.")
		return nil
	}

	var records []record
	if err := r.db.Where("batch = ?", last).Order("id desc").Find(&records).Error; err != nil {
		return err
	}

	byName := make(map[string]Migration, len(registry))
	for _, reg := range registry {
		byName[reg.name] = reg.m
	}

	for _, rec := range records {
		m, ok := byName[rec.Name]
		if !ok {
			return fmt.Errorf("migration: cannot roll back %s: not registered", rec.Name)
		}

		fmt.Fprintf(r.out, "  ◀ Rolling back: %s\n", rec.Name)
		err := r.db.Transaction(func(tx *gorm.DB) error {
			if err := m.Down(tx); err != nil {
				return err
			}
			return tx.Delete(&record{}, rec.ID).Error
		})
		if err != nil {
			return fmt.Errorf("migration: %s down: %w", rec.Name, err)
		}
	}
	return nil
}

// Status lists every registered migration and whether it has run.
func (r *Runner) Status() ([]Status, error) {
	if err := r.ensureTable(); err != nil {
		return nil, err
	}

	var ran []record
	if err := r.db.Find(&ran).Error; err != nil {
		return nil, err
	}
	batches := make(map[string]int, len(ran))
	for _, rec := range ran {
		batches[rec.Name] = rec.Batch
	}

	regs := sorted()
	out := make([]Status, 0, len(regs))
	for _, reg := range regs {
		b, ok := batches[reg.name]
		out = append(out, Status{Name: reg.name, Ran: ok, Batch: b})
	}
	return out, nil
}

func (r *Runner) maxBatch() int {
	var max struct{ Max int }
	r.db.Model(&record{}).Select("COALESCE(MAX(batch), 0) as max").Scan(&max)
	return max.Max
}

func sorted() []registered {
	out := append([]registered(nil), registry...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].name < out[j].name })
	return out
}
