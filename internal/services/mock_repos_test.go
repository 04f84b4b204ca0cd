package services

import (
	"context"
	"errors"
	"sync"

	"alfredoptarigan/capstone-matcher/internal/models"
	"alfredoptarigan/capstone-matcher/internal/repositories"
)

// ── In-memory store ──
//
// memStore backs every mock repository so that an admitted proposal is
// immediately visible to the corpus, like it is in the database.

type memStore struct {
	mu          sync.Mutex
	projects    []models.Project
	ideas       []models.CollegeIdea
	proposals   []models.TeamProposal
	teams       map[uint]*models.Team
	members     []models.TeamMember
	users       []models.User
	requests    []models.CollegeIdeaRequest
	corpusErr   error
	admitErr    error
	corpusCalls int
	admitCalls  int
	nextID      uint
}

func newMemStore() *memStore {
	return &memStore{teams: make(map[uint]*models.Team), nextID: 100}
}

func (s *memStore) repository() *repositories.Repository {
	return &repositories.Repository{
		Corpus:      &mockCorpusRepo{s},
		Proposal:    &mockProposalRepo{s},
		Team:        &mockTeamRepo{s},
		User:        &mockUserRepo{s},
		Project:     &mockProjectRepo{s},
		CollegeIdea: &mockCollegeIdeaRepo{s},
	}
}

func (s *memStore) id() uint {
	s.nextID++
	return s.nextID
}

func (s *memStore) addTeam(id uint, name string) {
	s.teams[id] = &models.Team{ID: id, Name: name, Description: name + " team"}
}

func (s *memStore) addMember(teamID uint, email string, leader bool) {
	s.members = append(s.members, models.TeamMember{
		ID:        s.id(),
		TeamID:    teamID,
		UserEmail: email,
		IsLeader:  leader,
	})
}

// ── Mock CorpusRepository ──

type mockCorpusRepo struct{ s *memStore }

func (m *mockCorpusRepo) AcceptedProjectsByYear(_ context.Context, year int) ([]models.Project, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	m.s.corpusCalls++
	if m.s.corpusErr != nil {
		return nil, m.s.corpusErr
	}
	var out []models.Project
	for _, p := range m.s.projects {
		if p.Year == year {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *mockCorpusRepo) CollegeIdeasByYear(_ context.Context, year int) ([]models.CollegeIdea, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	var out []models.CollegeIdea
	for _, i := range m.s.ideas {
		if i.Year == year {
			out = append(out, i)
		}
	}
	return out, nil
}

func (m *mockCorpusRepo) TeamProposalsByYear(_ context.Context, year int) ([]models.TeamProposal, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	var out []models.TeamProposal
	for _, p := range m.s.proposals {
		if p.Year == year {
			out = append(out, p)
		}
	}
	return out, nil
}

// ── Mock ProposalRepository ──

type mockProposalRepo struct{ s *memStore }

func (m *mockProposalRepo) FindByTeamID(_ context.Context, teamID uint) (*models.TeamProposal, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	for i := range m.s.proposals {
		if m.s.proposals[i].TeamID == teamID {
			p := m.s.proposals[i]
			return &p, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (m *mockProposalRepo) FindByTitle(_ context.Context, title string) (*models.TeamProposal, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	for i := range m.s.proposals {
		if m.s.proposals[i].Title == title {
			p := m.s.proposals[i]
			p.Team = m.s.teams[p.TeamID]
			return &p, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (m *mockProposalRepo) List(_ context.Context) ([]models.TeamProposal, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	out := make([]models.TeamProposal, len(m.s.proposals))
	for i, p := range m.s.proposals {
		p.Team = m.s.teams[p.TeamID]
		out[i] = p
	}
	return out, nil
}

func (m *mockProposalRepo) Admit(_ context.Context, proposal *models.TeamProposal) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	m.s.admitCalls++
	if m.s.admitErr != nil {
		return m.s.admitErr
	}
	if _, ok := m.s.teams[proposal.TeamID]; !ok {
		return repositories.ErrTeamNotFound
	}
	for _, p := range m.s.proposals {
		if p.TeamID == proposal.TeamID {
			return repositories.ErrTeamHasProposal
		}
		if p.Title == proposal.Title {
			return repositories.ErrDuplicateTitle
		}
	}
	proposal.ID = m.s.id()
	m.s.proposals = append(m.s.proposals, *proposal)
	return nil
}

// ── Mock TeamRepository ──

type mockTeamRepo struct{ s *memStore }

func (m *mockTeamRepo) FindMembershipByEmail(_ context.Context, email string) (*models.TeamMember, error) {
	for _, tm := range m.s.members {
		if tm.UserEmail == email {
			member := tm
			return &member, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (m *mockTeamRepo) FindByID(_ context.Context, id uint) (*models.Team, error) {
	if t, ok := m.s.teams[id]; ok {
		team := *t
		return &team, nil
	}
	return nil, repositories.ErrNotFound
}

func (m *mockTeamRepo) FindAll(_ context.Context) ([]models.Team, error) {
	var out []models.Team
	for id := uint(0); id <= m.s.nextID; id++ {
		if t, ok := m.s.teams[id]; ok {
			out = append(out, *t)
		}
	}
	return out, nil
}

func (m *mockTeamRepo) FindByIDs(_ context.Context, ids []uint) ([]models.Team, error) {
	var out []models.Team
	for _, id := range ids {
		if t, ok := m.s.teams[id]; ok {
			out = append(out, *t)
		}
	}
	return out, nil
}

func (m *mockTeamRepo) MembersWithUsers(_ context.Context, teamID uint) ([]models.TeamMember, error) {
	var out []models.TeamMember
	for _, tm := range m.s.members {
		if tm.TeamID != teamID {
			continue
		}
		for i := range m.s.users {
			if m.s.users[i].Email == tm.UserEmail {
				u := m.s.users[i]
				tm.User = &u
			}
		}
		out = append(out, tm)
	}
	return out, nil
}

// ── Mock UserRepository ──

type mockUserRepo struct{ s *memStore }

func (m *mockUserRepo) FindByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range m.s.users {
		if u.Email == email {
			user := u
			return &user, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (m *mockUserRepo) FindAllExcept(_ context.Context, excluded []string) ([]models.User, error) {
	var out []models.User
	for _, u := range m.s.users {
		if !contains(excluded, u.Email) {
			out = append(out, u)
		}
	}
	return out, nil
}

func (m *mockUserRepo) FindByIDsExcept(_ context.Context, ids []uint, excluded []string) ([]models.User, error) {
	var out []models.User
	for _, u := range m.s.users {
		for _, id := range ids {
			if u.ID == id && !contains(excluded, u.Email) {
				out = append(out, u)
			}
		}
	}
	return out, nil
}

// ── Mock ProjectRepository ──

type mockProjectRepo struct{ s *memStore }

func (m *mockProjectRepo) Create(_ context.Context, project *models.Project) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	for _, p := range m.s.projects {
		if p.Title == project.Title {
			return repositories.ErrDuplicateTitle
		}
	}
	project.ID = m.s.id()
	for i := range project.Members {
		project.Members[i].ProjectID = project.ID
	}
	m.s.projects = append(m.s.projects, *project)
	return nil
}

func (m *mockProjectRepo) ExistsByTitle(_ context.Context, title string) (bool, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	for _, p := range m.s.projects {
		if p.Title == title {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockProjectRepo) FindAll(_ context.Context) ([]models.Project, error) {
	return append([]models.Project(nil), m.s.projects...), nil
}

func (m *mockProjectRepo) FindByTitle(_ context.Context, title string) (*models.Project, error) {
	for _, p := range m.s.projects {
		if p.Title == title {
			project := p
			return &project, nil
		}
	}
	return nil, repositories.ErrNotFound
}

// ── Mock CollegeIdeaRepository ──

type mockCollegeIdeaRepo struct{ s *memStore }

func (m *mockCollegeIdeaRepo) FindAll(_ context.Context) ([]models.CollegeIdea, error) {
	return append([]models.CollegeIdea(nil), m.s.ideas...), nil
}

func (m *mockCollegeIdeaRepo) FindByTitle(_ context.Context, title string) (*models.CollegeIdea, error) {
	for _, i := range m.s.ideas {
		if i.Title == title {
			idea := i
			return &idea, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (m *mockCollegeIdeaRepo) FindOpenRequest(_ context.Context, teamID uint, title string) (*models.CollegeIdeaRequest, error) {
	for _, r := range m.s.requests {
		if r.TeamID == teamID && r.CollegeIdeaTitle == title &&
			(r.Status == models.RequestPending || r.Status == models.RequestAccepted) {
			req := r
			return &req, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (m *mockCollegeIdeaRepo) CreateRequest(_ context.Context, req *models.CollegeIdeaRequest) error {
	for _, r := range m.s.requests {
		if r.TeamID == req.TeamID && r.CollegeIdeaTitle == req.CollegeIdeaTitle {
			return repositories.ErrDuplicateEntry
		}
	}
	req.ID = m.s.id()
	m.s.requests = append(m.s.requests, *req)
	return nil
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}

var errStorageDown = errors.New("connection refused")
