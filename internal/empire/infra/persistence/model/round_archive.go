package model

import "time"

// RoundArchive 是每回合收盘时落 mysql 的战绩行，只追加不回写。
type RoundArchive struct {
	Id           int64     `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	GameId       int64     `gorm:"column:game_id;index:idx_game_round;not null" json:"game_id"`
	Round        int       `gorm:"column:round;index:idx_game_round;not null" json:"round"`
	EmpireId     int64     `gorm:"column:empire_id;index;not null" json:"empire_id"`
	Name         string    `gorm:"column:name;type:varchar(100)" json:"name"`
	Race         string    `gorm:"column:race;type:varchar(32)" json:"race"`
	Era          string    `gorm:"column:era;type:varchar(32)" json:"era"`
	Networth     int64     `gorm:"column:networth;not null" json:"networth"`
	Land         int64     `gorm:"column:land;not null" json:"land"`
	Gold         int64     `gorm:"column:gold;not null" json:"gold"`
	Food         int64     `gorm:"column:food;not null" json:"food"`
	Runes        int64     `gorm:"column:runes;not null" json:"runes"`
	Peasants     int64     `gorm:"column:peasants;not null" json:"peasants"`
	Health       int       `gorm:"column:health;not null" json:"health"`
	Kills        int64     `gorm:"column:kills;not null" json:"kills"`
	Defeated     bool      `gorm:"column:defeated;not null" json:"defeated"`
	DefeatReason string    `gorm:"column:defeat_reason;type:varchar(32)" json:"defeat_reason"`
	CreatedAt    time.Time `gorm:"column:created_at;not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

func (RoundArchive) TableName() string {
	return "round_archive"
}
