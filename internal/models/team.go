package models

import (
	"time"

	"gorm.io/datatypes"
)

type Team struct {
	ID            uint                        `gorm:"primaryKey" json:"id"`
	Name          string                      `gorm:"size:255;uniqueIndex;not null" json:"name"`
	Description   string                      `gorm:"type:text;not null" json:"description"`
	CreatedBy     string                      `gorm:"size:255;not null" json:"created_by"`
	ExpectedTools datatypes.JSONSlice[string] `json:"expected_tools"`
	CreatedAt     time.Time                   `gorm:"autoCreateTime" json:"created_at"`

	Members []TeamMember `gorm:"foreignKey:TeamID" json:"-"`
}

func (Team) TableName() string {
	return "teams"
}

// TeamMember binds a user to exactly one team; user_email is unique.
type TeamMember struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	TeamID    uint      `gorm:"not null;uniqueIndex:uq_team_member,priority:1" json:"team_id"`
	UserEmail string    `gorm:"size:255;not null;uniqueIndex:uq_team_member,priority:2;uniqueIndex:uq_user_team" json:"user_email"`
	Role      *string   `gorm:"size:255" json:"role,omitempty"`
	IsLeader  bool      `gorm:"not null;default:false" json:"is_leader"`
	JoinedAt  time.Time `gorm:"autoCreateTime" json:"joined_at"`

	User *User `gorm:"foreignKey:UserEmail;references:Email" json:"-"`
}

func (TeamMember) TableName() string {
	return "team_members"
}
