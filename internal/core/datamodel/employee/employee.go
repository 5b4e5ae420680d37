package employee

import (
	"time"

	"github.com/frahmantamala/hr-management/internal/core/datamodel/team"
)

type Employee struct {
	ID           int64      `gorm:"primaryKey"`
	TeamID       *int64     `gorm:"column:team_id;index"`
	Team         *team.Team `gorm:"foreignKey:TeamID;constraint:OnDelete:SET NULL"`
	FirstName    string     `gorm:"column:first_name;size:50;not null"`
	LastName     string     `gorm:"column:last_name;size:50;not null"`
	Username     string     `gorm:"column:username;size:50;uniqueIndex;not null"`
	PasswordHash string     `gorm:"column:password_hash;not null"`
	NationalCode string     `gorm:"column:national_code;size:10"`
	PhoneNumber  string     `gorm:"column:phone_number;size:11"`
	Address      string     `gorm:"column:address;size:255"`
	CreatedAt    time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}

func (Employee) TableName() string {
	return "employees"
}
