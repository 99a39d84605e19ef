package storage

import (
	"github.com/Isaacdev2004/shonencloud-arena/internal/arena"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func OpenAndMigrate(dataSourceName string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(dataSourceName), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	err = db.AutoMigrate(
		&arena.CombatProfile{},
		&arena.StatusEffect{},
		&arena.Cooldown{},
		&arena.ArenaSession{},
		&arena.ZonePosition{},
		&arena.BattleFeedEntry{},
	)
	if err != nil {
		return nil, err
	}
	return db, nil
}
