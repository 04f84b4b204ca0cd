package models

import (
	"time"

	"gorm.io/datatypes"
)

// User is a student account. Accounts are managed elsewhere; this service
// only reads them for team membership and recommendations.
type User struct {
	ID             uint                        `gorm:"primaryKey" json:"id"`
	Username       string                      `gorm:"size:255;uniqueIndex;not null" json:"username"`
	Email          string                      `gorm:"size:255;uniqueIndex;not null" json:"email"`
	HashedPassword string                      `gorm:"size:255;not null" json:"-"`
	FirstName      string                      `gorm:"size:255;not null" json:"first_name"`
	LastName       string                      `gorm:"size:255;not null" json:"last_name"`
	Skills         datatypes.JSONSlice[string] `json:"skills"`
	Title          *string                     `gorm:"size:255" json:"title,omitempty"`
	CreatedAt      time.Time                   `gorm:"autoCreateTime" json:"created_at"`
}

func (User) TableName() string {
	return "users"
}

type Supervisor struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	Username       string    `gorm:"size:255;uniqueIndex;not null" json:"username"`
	Email          string    `gorm:"size:255;uniqueIndex;not null" json:"email"`
	HashedPassword string    `gorm:"size:255;not null" json:"-"`
	FirstName      string    `gorm:"size:255;not null" json:"first_name"`
	LastName       string    `gorm:"size:255;not null" json:"last_name"`
	University     string    `gorm:"size:255;not null" json:"university"`
	Department     string    `gorm:"size:255;not null" json:"department"`
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (Supervisor) TableName() string {
	return "supervisors"
}
