package models

import "time"

type ProjectIdeaRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

type SimilarProject struct {
	Source          string `json:"source"`
	Title           string `json:"title"`
	SimilarityScore string `json:"similarity_score"`
}

// ProjectIdeaResponse is returned for both outcomes of a similarity check.
// Scores are always two-decimal strings.
type ProjectIdeaResponse struct {
	Success            bool             `json:"success"`
	Message            string           `json:"message"`
	ProjectID          *uint            `json:"project_id"`
	MaxSimilarityScore string           `json:"max_similarity_score"`
	Status             string           `json:"status"`
	SimilarProjects    []SimilarProject `json:"similar_projects"`
}

type TeamIdeaSummary struct {
	TeamProjectID uint           `json:"team_project_id"`
	Title         string         `json:"title"`
	Status        ProposalStatus `json:"status"`
}

type TeamMemberResponse struct {
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Email     string    `json:"email"`
	Role      *string   `json:"role,omitempty"`
	IsLeader  bool      `json:"is_leader"`
	JoinedAt  time.Time `json:"joined_at"`
}

type TeamIdeaDetail struct {
	TeamID      uint                 `json:"team_id"`
	TeamName    string               `json:"team_name"`
	Project     TeamProposal         `json:"project"`
	TeamMembers []TeamMemberResponse `json:"team_members"`
}

type ProjectMemberInput struct {
	FirstName string  `json:"first_name" yaml:"first_name"`
	LastName  string  `json:"last_name" yaml:"last_name"`
	Email     string  `json:"email" yaml:"email"`
	Role      *string `json:"role,omitempty" yaml:"role"`
	IsLeader  bool    `json:"is_leader" yaml:"is_leader"`
}

// ProjectUploadRequest describes an accepted project entering the archive.
type ProjectUploadRequest struct {
	Title       string               `json:"title" yaml:"title"`
	Description string               `json:"description" yaml:"description"`
	Tools       []string             `json:"tools" yaml:"tools"`
	Supervisor  string               `json:"supervisor" yaml:"supervisor"`
	Year        int                  `json:"year" yaml:"year"`
	TeamMembers []ProjectMemberInput `json:"team_members" yaml:"team_members"`
}

type ArchiveProjectResponse struct {
	ID          uint                `json:"id"`
	Title       string              `json:"title"`
	Description string              `json:"description"`
	Tools       []string            `json:"tools"`
	Supervisor  string              `json:"supervisor"`
	Year        int                 `json:"year"`
	TeamMembers []ProjectTeamMember `json:"team_members"`
}

type SupervisorResponse struct {
	ID         uint   `json:"id"`
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	Username   string `json:"username"`
	Email      string `json:"email"`
	University string `json:"university"`
	Department string `json:"department"`
}

type CollegeIdeaResponse struct {
	Title          string              `json:"title"`
	Description    string              `json:"description"`
	Year           int                 `json:"year"`
	Status         string              `json:"status"`
	SupervisorInfo *SupervisorResponse `json:"supervisor_info"`
}

type CollegeIdeaRequestBody struct {
	CollegeIdeaTitle string `json:"college_idea_title"`
}

type CollegeIdeaRequestResponse struct {
	ID                 uint          `json:"id"`
	TeamID             uint          `json:"team_id"`
	CollegeIdeaTitle   string        `json:"college_idea_title"`
	Status             RequestStatus `json:"status"`
	SupervisorUsername string        `json:"supervisor_username"`
	CreatedAt          time.Time     `json:"created_at"`
}

type RecommendedTeam struct {
	TeamID          uint     `json:"team_id"`
	Name            string   `json:"name"`
	Description     string   `json:"description"`
	Skills          []string `json:"skills"`
	SimilarityScore float64  `json:"similarity_score"`
}

type RecommendedTeams struct {
	Matches    []RecommendedTeam `json:"matches"`
	TotalTeams int               `json:"total_teams"`
}

type RecommendedUser struct {
	UserID          uint     `json:"user_id"`
	Username        string   `json:"username"`
	FirstName       string   `json:"first_name"`
	LastName        string   `json:"last_name"`
	Skills          []string `json:"skills"`
	SimilarityScore float64  `json:"similarity_score"`
}

type RecommendedUsers struct {
	Matches    []RecommendedUser `json:"matches"`
	TotalUsers int               `json:"total_users"`
}
