package service

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"gorm.io/gorm"

	"github.com/IPodymov/pd-projects-backend/internal/authz"
	"github.com/IPodymov/pd-projects-backend/internal/model"
	apperrors "github.com/IPodymov/pd-projects-backend/pkg/errors"
)

// ── Mock UserRepository ──

type mockUserRepo struct {
	users map[string]*model.User
	seq   int
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*model.User)}
}

func (m *mockUserRepo) Create(_ context.Context, user *model.User) error {
	for _, u := range m.users {
		if u.Email == user.Email {
			return gorm.ErrDuplicatedKey
		}
	}
	if user.UserID == "" {
		m.seq++
		user.UserID = fmt.Sprintf("user-%d", m.seq)
	}
	m.users[user.UserID] = user
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id string) (*model.User, error) {
	if u, ok := m.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) List(_ context.Context) ([]model.User, error) {
	var result []model.User
	for _, u := range m.users {
		result = append(result, *u)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].UserID < result[j].UserID })
	return result, nil
}

func (m *mockUserRepo) Search(_ context.Context, keyword string) ([]model.User, error) {
	kw := strings.ToLower(keyword)
	var result []model.User
	for _, u := range m.users {
		if strings.Contains(strings.ToLower(u.Name), kw) || strings.Contains(strings.ToLower(u.Email), kw) {
			result = append(result, *u)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

func (m *mockUserRepo) Update(_ context.Context, user *model.User) error {
	if _, ok := m.users[user.UserID]; !ok {
		return gorm.ErrRecordNotFound
	}
	cp := *user
	m.users[user.UserID] = &cp
	return nil
}

func (m *mockUserRepo) Delete(_ context.Context, id string) error {
	delete(m.users, id)
	return nil
}

// ── Mock SchoolRepository ──

type mockSchoolRepo struct {
	schools map[string]*model.School
	users   *mockUserRepo
	seq     int
}

func newMockSchoolRepo(users *mockUserRepo) *mockSchoolRepo {
	return &mockSchoolRepo{schools: make(map[string]*model.School), users: users}
}

func (m *mockSchoolRepo) Create(_ context.Context, school *model.School) error {
	for _, s := range m.schools {
		if s.Number == school.Number {
			return gorm.ErrDuplicatedKey
		}
	}
	if school.SchoolID == "" {
		m.seq++
		school.SchoolID = fmt.Sprintf("school-%d", m.seq)
	}
	m.schools[school.SchoolID] = school
	return nil
}

func (m *mockSchoolRepo) GetByID(_ context.Context, id string) (*model.School, error) {
	if s, ok := m.schools[id]; ok {
		cp := *s
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockSchoolRepo) GetByNumber(_ context.Context, number string) (*model.School, error) {
	for _, s := range m.schools {
		if s.Number == number {
			cp := *s
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockSchoolRepo) List(_ context.Context, search string) ([]model.School, error) {
	kw := strings.ToLower(search)
	var result []model.School
	for _, s := range m.schools {
		if search == "" ||
			strings.Contains(strings.ToLower(s.Number), kw) ||
			strings.Contains(strings.ToLower(s.Name), kw) ||
			strings.Contains(strings.ToLower(s.City), kw) {
			result = append(result, *s)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Number < result[j].Number })
	return result, nil
}

func (m *mockSchoolRepo) Update(_ context.Context, school *model.School) error {
	cp := *school
	m.schools[school.SchoolID] = &cp
	return nil
}

func (m *mockSchoolRepo) Delete(_ context.Context, id string) error {
	delete(m.schools, id)
	return nil
}

func (m *mockSchoolRepo) CountUsers(_ context.Context, schoolID string) (int64, error) {
	var count int64
	for _, u := range m.users.users {
		if u.SchoolID != nil && *u.SchoolID == schoolID {
			count++
		}
	}
	return count, nil
}

// ── Mock SchoolClassRepository ──

type mockSchoolClassRepo struct {
	classes map[string]*model.SchoolClass
	seq     int
}

func newMockSchoolClassRepo() *mockSchoolClassRepo {
	return &mockSchoolClassRepo{classes: make(map[string]*model.SchoolClass)}
}

func (m *mockSchoolClassRepo) Create(_ context.Context, class *model.SchoolClass) error {
	if class.SchoolClassID == "" {
		m.seq++
		class.SchoolClassID = fmt.Sprintf("class-%d", m.seq)
	}
	m.classes[class.SchoolClassID] = class
	return nil
}

func (m *mockSchoolClassRepo) GetByID(_ context.Context, id string) (*model.SchoolClass, error) {
	if c, ok := m.classes[id]; ok {
		cp := *c
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockSchoolClassRepo) List(_ context.Context, schoolID, search string) ([]model.SchoolClass, error) {
	kw := strings.ToLower(search)
	var result []model.SchoolClass
	for _, c := range m.classes {
		if schoolID != "" && c.SchoolID != schoolID {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(c.Name), kw) {
			continue
		}
		result = append(result, *c)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

func (m *mockSchoolClassRepo) CountBySchool(_ context.Context, schoolID string) (int64, error) {
	var count int64
	for _, c := range m.classes {
		if c.SchoolID == schoolID {
			count++
		}
	}
	return count, nil
}

func (m *mockSchoolClassRepo) Update(_ context.Context, class *model.SchoolClass) error {
	cp := *class
	m.classes[class.SchoolClassID] = &cp
	return nil
}

func (m *mockSchoolClassRepo) Delete(_ context.Context, id string) error {
	delete(m.classes, id)
	return nil
}

// ── Mock InvitationRepository ──

type mockInvitationRepo struct {
	invitations map[string]*model.Invitation
	seq         int
}

func newMockInvitationRepo() *mockInvitationRepo {
	return &mockInvitationRepo{invitations: make(map[string]*model.Invitation)}
}

func (m *mockInvitationRepo) Create(_ context.Context, invitation *model.Invitation) error {
	if invitation.InvitationID == "" {
		m.seq++
		invitation.InvitationID = fmt.Sprintf("inv-%d", m.seq)
	}
	m.invitations[invitation.Token] = invitation
	return nil
}

func (m *mockInvitationRepo) GetByToken(_ context.Context, token string) (*model.Invitation, error) {
	if i, ok := m.invitations[token]; ok {
		cp := *i
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

// ── Mock ProjectRepository ──

type mockProjectRepo struct {
	projects map[string]*model.Project
	seq      int
}

func newMockProjectRepo() *mockProjectRepo {
	return &mockProjectRepo{projects: make(map[string]*model.Project)}
}

func (m *mockProjectRepo) Create(_ context.Context, project *model.Project) error {
	if project.ProjectID == "" {
		m.seq++
		project.ProjectID = fmt.Sprintf("proj-%d", m.seq)
	}
	if project.Version == 0 {
		project.Version = 1
	}
	m.projects[project.ProjectID] = project
	return nil
}

func (m *mockProjectRepo) GetByID(_ context.Context, id string) (*model.Project, error) {
	if p, ok := m.projects[id]; ok {
		cp := *p
		cp.Members = append([]model.User(nil), p.Members...)
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockProjectRepo) ListVisible(_ context.Context, scope authz.ProjectScope) ([]model.Project, error) {
	var result []model.Project
	for _, p := range m.projects {
		if !scope.All {
			if scope.SchoolID == "" || p.SchoolID != scope.SchoolID {
				continue
			}
			if scope.ClassScoped && p.SchoolClassID != nil {
				if scope.ClassID == nil || *p.SchoolClassID != *scope.ClassID {
					continue
				}
			}
		}
		result = append(result, *p)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ProjectID < result[j].ProjectID })
	return result, nil
}

func (m *mockProjectRepo) Update(_ context.Context, project *model.Project) error {
	existing, ok := m.projects[project.ProjectID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	cp := *project
	cp.Members = existing.Members
	cp.Version = existing.Version
	m.projects[project.ProjectID] = &cp
	return nil
}

func (m *mockProjectRepo) AppendMember(_ context.Context, projectID string, user *model.User, expectedVersion int) error {
	p, ok := m.projects[projectID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if p.Version != expectedVersion {
		return apperrors.ErrOptimisticLock
	}
	p.Version++
	p.Members = append(p.Members, *user)
	return nil
}

func (m *mockProjectRepo) Delete(_ context.Context, id string) error {
	delete(m.projects, id)
	return nil
}

// ── Mock FileRepository ──

type mockFileRepo struct {
	files []model.ProjectFile
	seq   int
}

func newMockFileRepo() *mockFileRepo {
	return &mockFileRepo{}
}

func (m *mockFileRepo) Create(_ context.Context, file *model.ProjectFile) error {
	if file.FileID == "" {
		m.seq++
		file.FileID = fmt.Sprintf("file-%d", m.seq)
	}
	m.files = append(m.files, *file)
	return nil
}
