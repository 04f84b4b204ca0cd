package models

import "time"

// CollegeIdea is a project idea published by a supervisor.
type CollegeIdea struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	Title           string    `gorm:"size:255;uniqueIndex;not null" json:"title"`
	Description     string    `gorm:"type:text;not null" json:"description"`
	SupervisorEmail string    `gorm:"size:255;not null;index" json:"supervisor_email"`
	Year            int       `gorm:"not null;index" json:"year"`
	Status          string    `gorm:"size:255;not null" json:"status"`
	CreatedAt       time.Time `gorm:"autoCreateTime" json:"created_at"`

	Supervisor *Supervisor `gorm:"foreignKey:SupervisorEmail;references:Email" json:"-"`
}

func (CollegeIdea) TableName() string {
	return "college_ideas"
}

type RequestStatus string

const (
	RequestPending  RequestStatus = "pending"
	RequestAccepted RequestStatus = "accepted"
	RequestRejected RequestStatus = "rejected"
)

type CollegeIdeaRequest struct {
	ID               uint          `gorm:"primaryKey" json:"id"`
	TeamID           uint          `gorm:"not null;uniqueIndex:uq_team_college_idea_request,priority:1" json:"team_id"`
	CollegeIdeaTitle string        `gorm:"size:255;not null;uniqueIndex:uq_team_college_idea_request,priority:2" json:"college_idea_title"`
	Status           RequestStatus `gorm:"size:16;not null;default:'pending'" json:"status"`
	SupervisorEmail  string        `gorm:"size:255;not null" json:"supervisor_email"`
	CreatedAt        time.Time     `gorm:"autoCreateTime" json:"created_at"`
}

func (CollegeIdeaRequest) TableName() string {
	return "college_ideas_requests"
}
