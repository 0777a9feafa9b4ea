package domain

import "time"

// Profile 玩家的开局档案：入场时的默认帝国名与种族，以及最近一次加入的对局。
// 一个用户一条，随登录一起下发。
type Profile struct {
	Id         int       `gorm:"column:id;primaryKey;autoIncrement;comment:主键ID" json:"id"`
	UId        int       `gorm:"column:uid;uniqueIndex;not null;comment:用户ID" json:"uid"`
	EmpireName string    `gorm:"column:empire_name;type:varchar(30);comment:默认帝国名" json:"empire_name"`
	Race       string    `gorm:"column:race;type:varchar(20);comment:默认种族" json:"race"`
	GameId     int64     `gorm:"column:game_id;default:0;comment:最近加入的对局" json:"game_id"`
	EmpireId   int64     `gorm:"column:empire_id;default:0;comment:最近对局里的帝国" json:"empire_id"`
	Ctime      time.Time `gorm:"column:ctime;autoCreateTime;comment:创建时间" json:"ctime"`
	Mtime      time.Time `gorm:"column:mtime;autoUpdateTime;comment:更新时间" json:"mtime"`
}

func (Profile) TableName() string {
	return "profile"
}
