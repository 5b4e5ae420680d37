package team

import "time"

type Team struct {
	ID           int64     `gorm:"primaryKey"`
	Name         string    `gorm:"column:name;size:50;not null"`
	TotalMembers int       `gorm:"column:total_members;not null;default:0"`
	MemberSeed   int       `gorm:"column:member_seed;not null;default:0"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (Team) TableName() string {
	return "teams"
}
