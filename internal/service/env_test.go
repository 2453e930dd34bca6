package service

import (
	"io"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/IPodymov/pd-projects-backend/config"
	"github.com/IPodymov/pd-projects-backend/internal/model"
	"github.com/IPodymov/pd-projects-backend/internal/repository"
	"github.com/IPodymov/pd-projects-backend/pkg/jwt"
)

// memStore swallows uploads.
type memStore struct{}

func (memStore) Save(filename string, r io.Reader) (string, error) {
	_, _ = io.Copy(io.Discard, r)
	return "uploads/" + filename, nil
}

// testEnv wires every service over in-memory repositories.
type testEnv struct {
	users       *mockUserRepo
	schools     *mockSchoolRepo
	classes     *mockSchoolClassRepo
	invitations *mockInvitationRepo
	projects    *mockProjectRepo
	files       *mockFileRepo
	svc         *Service
}

func newTestEnv() *testEnv {
	users := newMockUserRepo()
	schools := newMockSchoolRepo(users)
	classes := newMockSchoolClassRepo()
	invitations := newMockInvitationRepo()
	projects := newMockProjectRepo()
	files := newMockFileRepo()

	repo := &repository.Repository{
		User:        users,
		School:      schools,
		SchoolClass: classes,
		Invitation:  invitations,
		Project:     projects,
		File:        files,
	}

	cfg := &config.Config{}
	cfg.Server.BaseURL = "http://localhost:3000"
	cfg.Auth.JWTSecret = "test-secret-0123456789abcdef"
	cfg.Auth.SessionTTL = time.Hour

	jwtMgr := jwt.NewManager(&cfg.Auth)
	svc := NewService(cfg, repo, jwtMgr, memStore{}, zap.NewNop())

	return &testEnv{
		users:       users,
		schools:     schools,
		classes:     classes,
		invitations: invitations,
		projects:    projects,
		files:       files,
		svc:         svc,
	}
}

func (e *testEnv) seedSchool(id, number, name string) *model.School {
	school := &model.School{SchoolID: id, Number: number, Name: name}
	e.schools.schools[id] = school
	return school
}

func (e *testEnv) seedClass(id, schoolID, name string) *model.SchoolClass {
	class := &model.SchoolClass{SchoolClassID: id, Name: name, SchoolID: schoolID}
	e.classes.classes[id] = class
	return class
}

func (e *testEnv) seedUser(id string, role model.Role, schoolID, classID string) *model.User {
	user := &model.User{
		UserID: id,
		Name:   "User " + id,
		Email:  id + "@example.com",
		Role:   role,
	}
	if schoolID != "" {
		user.SchoolID = &schoolID
	}
	if classID != "" {
		user.SchoolClassID = &classID
	}
	e.users.users[id] = user
	return user
}

func (e *testEnv) seedUserWithPassword(id string, role model.Role, password string) *model.User {
	user := e.seedUser(id, role, "", "")
	hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	user.PasswordHash = string(hash)
	return user
}

func (e *testEnv) seedProject(id, schoolID, classID, ownerID string, status model.ProjectStatus, memberIDs ...string) *model.Project {
	project := &model.Project{
		ProjectID: id,
		Title:     "Project " + id,
		Status:    status,
		SchoolID:  schoolID,
		OwnerID:   ownerID,
		Version:   1,
	}
	if classID != "" {
		project.SchoolClassID = &classID
	}
	for _, mid := range memberIDs {
		if u, ok := e.users.users[mid]; ok {
			project.Members = append(project.Members, *u)
		}
	}
	e.projects.projects[id] = project
	return project
}
