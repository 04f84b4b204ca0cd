package models

import "time"

type ProposalStatus string

const (
	ProposalPending  ProposalStatus = "pending"
	ProposalAccepted ProposalStatus = "accepted"
	ProposalRejected ProposalStatus = "rejected"
)

// TeamProposal is a team's own project idea. It is only ever created by an
// admission decision, always as pending. MaxSimScore is the highest
// similarity seen against the same-year corpus at admission time and is
// never recomputed.
type TeamProposal struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	TeamID      uint           `gorm:"not null;uniqueIndex:uq_team_project_team_id" json:"team_id"`
	Title       string         `gorm:"size:255;not null;uniqueIndex:uq_team_project_title" json:"title"`
	Description string         `gorm:"type:text;not null" json:"description"`
	Year        int            `gorm:"not null;index" json:"year"`
	MaxSimScore *float64       `json:"max_sim_score"`
	Status      ProposalStatus `gorm:"size:16;not null;default:'pending'" json:"status"`
	CreatedAt   time.Time      `gorm:"autoCreateTime" json:"created_at"`

	Team *Team `gorm:"foreignKey:TeamID" json:"-"`
}

func (TeamProposal) TableName() string {
	return "team_projects"
}
