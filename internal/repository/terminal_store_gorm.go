package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/satch9/app-caisse-compta-sub000/internal/caisse"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// terminalStateRecord maps the terminal_states table created by
// infra.NewDatabase.
type terminalStateRecord struct {
	TerminalID string    `gorm:"column:terminal_id;primaryKey"`
	Etat       string    `gorm:"column:etat;type:jsonb;not null"`
	UpdatedAt  time.Time `gorm:"column:updated_at"`
}

func (terminalStateRecord) TableName() string { return "terminal_states" }

type gormTerminalStore struct{ db *gorm.DB }

func NewGormTerminalStore(db *gorm.DB) TerminalStore {
	return &gormTerminalStore{db: db}
}

func (g *gormTerminalStore) Load(ctx context.Context, terminalID string) (*caisse.State, error) {
	var rec terminalStateRecord
	err := g.db.WithContext(ctx).First(&rec, "terminal_id = ?", terminalID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return caisse.NewState(), nil
	}
	if err != nil {
		return nil, err
	}
	return decodeState([]byte(rec.Etat))
}

// Save upserts the state in one statement.
func (g *gormTerminalStore) Save(ctx context.Context, terminalID string, st *caisse.State) error {
	data, err := json.Marshal(st)
	if err != nil {
		return err
	}
	rec := terminalStateRecord{TerminalID: terminalID, Etat: string(data), UpdatedAt: time.Now()}
	return g.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "terminal_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"etat", "updated_at"}),
	}).Create(&rec).Error
}

func (g *gormTerminalStore) Delete(ctx context.Context, terminalID string) error {
	return g.db.WithContext(ctx).Delete(&terminalStateRecord{}, "terminal_id = ?", terminalID).Error
}

func (g *gormTerminalStore) List(ctx context.Context) ([]string, error) {
	var ids []string
	err := g.db.WithContext(ctx).Model(&terminalStateRecord{}).Order("terminal_id").Pluck("terminal_id", &ids).Error
	return ids, err
}

func (g *gormTerminalStore) Ping(ctx context.Context) error {
	sqlDB, err := g.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
