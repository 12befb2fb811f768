package storage

import (
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/javaloayza/postboard/models"
)

// GormSlots stores slots as rows of the local_slots table.
type GormSlots struct {
	db *gorm.DB
}

func NewGormSlots(db *gorm.DB) *GormSlots {
	return &GormSlots{db: db}
}

func (g *GormSlots) Get(key string) (string, bool, error) {
	var slot models.Slot
	err := g.db.Where(keyEq(key)).Take(&slot).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return slot.Value, true, nil
}

func (g *GormSlots) Set(key, value string) error {
	// Atomic upsert to avoid duplicate key errors under concurrency
	return g.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.Assignments(map[string]interface{}{"value": value, "updated_at": time.Now()}),
	}).Create(&models.Slot{Key: key, Value: value}).Error
}

func (g *GormSlots) Remove(key string) error {
	return g.db.Where(keyEq(key)).Delete(&models.Slot{}).Error
}

// keyEq quotes the column per dialect; key is reserved in MySQL.
func keyEq(key string) clause.Eq {
	return clause.Eq{Column: clause.Column{Name: "key"}, Value: key}
}

func (g *GormSlots) Close() error {
	sqlDB, err := g.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
