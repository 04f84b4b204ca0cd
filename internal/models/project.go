package models

import (
	"strings"
	"time"
)

// Project is an accepted capstone project kept in the archive.
type Project struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Title       string    `gorm:"size:255;uniqueIndex;not null" json:"title"`
	Description string    `gorm:"type:text;not null" json:"description"`
	Tools       string    `gorm:"type:text;not null" json:"-"`
	Uploader    string    `gorm:"size:255;not null" json:"uploader"`
	Supervisor  string    `gorm:"size:255;not null" json:"supervisor"`
	Year        int       `gorm:"not null;index" json:"year"`
	ReportPath  *string   `gorm:"type:text" json:"-"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`

	Members []ProjectTeamMember `gorm:"foreignKey:ProjectID" json:"team_members"`
}

func (Project) TableName() string {
	return "projects"
}

// ToolList splits the space separated tool column.
func (p Project) ToolList() []string {
	return strings.Fields(p.Tools)
}

type ProjectTeamMember struct {
	ID        uint    `gorm:"primaryKey" json:"-"`
	ProjectID uint    `gorm:"not null;uniqueIndex:uq_project_team_member,priority:1" json:"-"`
	FirstName string  `gorm:"size:255;not null" json:"first_name"`
	LastName  string  `gorm:"size:255;not null" json:"last_name"`
	Email     string  `gorm:"size:255;not null;uniqueIndex:uq_project_team_member,priority:2;index" json:"email"`
	Role      *string `gorm:"size:255" json:"role,omitempty"`
	IsLeader  bool    `gorm:"not null;default:false" json:"is_leader"`
}

func (ProjectTeamMember) TableName() string {
	return "project_team_members"
}
