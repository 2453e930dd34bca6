package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/IPodymov/pd-projects-backend/internal/dto"
	"github.com/IPodymov/pd-projects-backend/internal/model"
)

// ── Create ──

func TestProjectService_Create_StudentStartsPending(t *testing.T) {
	env := newTestEnv()
	env.seedSchool("school-1", "1514", "School 1514")
	env.seedUser("student-1", model.RoleStudent, "school-1", "")

	project, err := env.svc.Project.Create(context.Background(), "student-1", &dto.CreateProjectRequest{
		Title:       "Weather station",
		Description: "Arduino based",
		SchoolID:    "school-1",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if project.Status != model.StatusPending {
		t.Errorf("student project starts pending, got %s", project.Status)
	}
	if len(project.Members) != 1 || project.Members[0].ID != "student-1" {
		t.Errorf("owner must be the sole initial member: %+v", project.Members)
	}
}

func TestProjectService_Create_PrivilegedRolesSelfApprove(t *testing.T) {
	env := newTestEnv()
	env.seedSchool("school-1", "1514", "School 1514")

	for _, tc := range []struct {
		id   string
		role model.Role
	}{
		{"teacher-1", model.RoleTeacher},
		{"staff-1", model.RoleUniversityStaff},
		{"admin-1", model.RoleAdmin},
	} {
		env.seedUser(tc.id, tc.role, "school-1", "")
		project, err := env.svc.Project.Create(context.Background(), tc.id, &dto.CreateProjectRequest{
			Title:       "Project by " + tc.id,
			Description: "d",
			SchoolID:    "school-1",
		})
		if err != nil {
			t.Fatalf("%s: %v", tc.id, err)
		}
		if project.Status != model.StatusApproved {
			t.Errorf("%s: expected approved, got %s", tc.id, project.Status)
		}
	}
}

func TestProjectService_Create_ClassMustBelongToSchool(t *testing.T) {
	env := newTestEnv()
	env.seedSchool("school-1", "1514", "School 1514")
	env.seedSchool("school-2", "57", "School 57")
	env.seedClass("class-other", "school-2", "Grade 9")
	env.seedUser("student-1", model.RoleStudent, "school-1", "")

	_, err := env.svc.Project.Create(context.Background(), "student-1", &dto.CreateProjectRequest{
		Title:         "X",
		Description:   "d",
		SchoolID:      "school-1",
		SchoolClassID: "class-other",
	})
	if !errors.Is(err, ErrClassNotFound) {
		t.Fatalf("expected ErrClassNotFound, got %v", err)
	}
}

// ── Join ──

func TestProjectService_Join_Success(t *testing.T) {
	env := newTestEnv()
	env.seedSchool("school-1", "1514", "School 1514")
	env.seedUser("owner-1", model.RoleStudent, "school-1", "")
	env.seedUser("student-2", model.RoleStudent, "school-1", "")
	env.seedProject("proj-1", "school-1", "", "owner-1", model.StatusApproved, "owner-1")

	if err := env.svc.Project.Join(context.Background(), "student-2", "proj-1"); err != nil {
		t.Fatalf("Join: %v", err)
	}

	project, _ := env.projects.GetByID(context.Background(), "proj-1")
	if len(project.Members) != 2 {
		t.Fatalf("expected 2 members, got %d", len(project.Members))
	}
	if project.Version != 2 {
		t.Errorf("join must bump the version, got %d", project.Version)
	}
}

func TestProjectService_Join_OnlyStudents(t *testing.T) {
	env := newTestEnv()
	env.seedSchool("school-1", "1514", "School 1514")
	env.seedUser("owner-1", model.RoleStudent, "school-1", "")
	env.seedUser("teacher-1", model.RoleTeacher, "school-1", "")
	env.seedProject("proj-1", "school-1", "", "owner-1", model.StatusApproved, "owner-1")

	if err := env.svc.Project.Join(context.Background(), "teacher-1", "proj-1"); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestProjectService_Join_FullProject(t *testing.T) {
	env := newTestEnv()
	env.seedSchool("school-1", "1514", "School 1514")
	for _, id := range []string{"a", "b", "c", "d"} {
		env.seedUser(id, model.RoleStudent, "school-1", "")
	}
	env.seedProject("proj-1", "school-1", "", "a", model.StatusApproved, "a", "b", "c")

	if err := env.svc.Project.Join(context.Background(), "d", "proj-1"); !errors.Is(err, ErrProjectFull) {
		t.Fatalf("expected ErrProjectFull at 3 members, got %v", err)
	}
}

func TestProjectService_Join_AlreadyMember(t *testing.T) {
	env := newTestEnv()
	env.seedSchool("school-1", "1514", "School 1514")
	env.seedUser("a", model.RoleStudent, "school-1", "")
	env.seedUser("b", model.RoleStudent, "school-1", "")
	env.seedProject("proj-1", "school-1", "", "a", model.StatusApproved, "a", "b")

	if err := env.svc.Project.Join(context.Background(), "b", "proj-1"); !errors.Is(err, ErrAlreadyMember) {
		t.Fatalf("expected ErrAlreadyMember, got %v", err)
	}
}

// ── Visibility ──

func TestProjectService_List_ScopedByRole(t *testing.T) {
	env := newTestEnv()
	env.seedSchool("school-1", "1514", "School 1514")
	env.seedSchool("school-2", "57", "School 57")
	env.seedClass("class-1", "school-1", "Grade 9")
	env.seedClass("class-2", "school-1", "Grade 10")

	env.seedUser("owner-1", model.RoleStudent, "school-1", "class-1")
	env.seedUser("student-1", model.RoleStudent, "school-1", "class-1")
	env.seedUser("teacher-1", model.RoleTeacher, "school-1", "")
	env.seedUser("admin-1", model.RoleAdmin, "", "")

	env.seedProject("p-own-class", "school-1", "class-1", "owner-1", model.StatusApproved, "owner-1")
	env.seedProject("p-other-class", "school-1", "class-2", "owner-1", model.StatusApproved, "owner-1")
	env.seedProject("p-no-class", "school-1", "", "owner-1", model.StatusApproved, "owner-1")
	env.seedProject("p-other-school", "school-2", "", "owner-1", model.StatusApproved, "owner-1")

	cases := []struct {
		actor string
		want  int
	}{
		{"student-1", 2}, // own class plus class-less
		{"teacher-1", 3}, // whole school
		{"admin-1", 4},   // everything
	}
	for _, tc := range cases {
		projects, err := env.svc.Project.List(context.Background(), tc.actor)
		if err != nil {
			t.Fatalf("%s: %v", tc.actor, err)
		}
		if len(projects) != tc.want {
			t.Errorf("%s: expected %d visible projects, got %d", tc.actor, tc.want, len(projects))
		}
	}
}

func TestProjectService_List_ClasslessStudentSeesOnlyClasslessProjects(t *testing.T) {
	env := newTestEnv()
	env.seedSchool("school-1", "1514", "School 1514")
	env.seedClass("class-1", "school-1", "Grade 9")
	env.seedUser("owner-1", model.RoleStudent, "school-1", "class-1")
	env.seedUser("student-1", model.RoleStudent, "school-1", "")

	env.seedProject("p-classed", "school-1", "class-1", "owner-1", model.StatusApproved, "owner-1")
	env.seedProject("p-classless", "school-1", "", "owner-1", model.StatusApproved, "owner-1")

	projects, err := env.svc.Project.List(context.Background(), "student-1")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(projects) != 1 || projects[0].ID != "p-classless" {
		t.Fatalf("student without a class must see only class-less projects, got %d", len(projects))
	}

	if _, err := env.svc.Project.Get(context.Background(), "student-1", "p-classed"); !errors.Is(err, ErrProjectNotFound) {
		t.Fatalf("class-scoped project must read as not found, got %v", err)
	}
}

func TestProjectService_Get_InvisibleReadsAsNotFound(t *testing.T) {
	env := newTestEnv()
	env.seedSchool("school-1", "1514", "School 1514")
	env.seedSchool("school-2", "57", "School 57")
	env.seedUser("owner-1", model.RoleStudent, "school-2", "")
	env.seedUser("student-1", model.RoleStudent, "school-1", "")
	env.seedProject("proj-1", "school-2", "", "owner-1", model.StatusApproved, "owner-1")

	if _, err := env.svc.Project.Get(context.Background(), "student-1", "proj-1"); !errors.Is(err, ErrProjectNotFound) {
		t.Fatalf("expected ErrProjectNotFound for invisible project, got %v", err)
	}
}

// ── Update and status ──

func TestProjectService_Update_OwnerOnly(t *testing.T) {
	env := newTestEnv()
	env.seedSchool("school-1", "1514", "School 1514")
	env.seedUser("owner-1", model.RoleStudent, "school-1", "")
	env.seedUser("member-1", model.RoleStudent, "school-1", "")
	env.seedProject("proj-1", "school-1", "", "owner-1", model.StatusApproved, "owner-1", "member-1")

	req := &dto.UpdateProjectRequest{Title: strptr("Renamed")}
	if _, err := env.svc.Project.Update(context.Background(), "member-1", "proj-1", req); !errors.Is(err, ErrForbidden) {
		t.Fatalf("member: expected ErrForbidden, got %v", err)
	}

	project, err := env.svc.Project.Update(context.Background(), "owner-1", "proj-1", req)
	if err != nil {
		t.Fatalf("owner: %v", err)
	}
	if project.Title != "Renamed" {
		t.Errorf("title not updated: %s", project.Title)
	}
}

func TestProjectService_Update_PreservesJoinGuardVersion(t *testing.T) {
	env := newTestEnv()
	env.seedSchool("school-1", "1514", "School 1514")
	env.seedUser("owner-1", model.RoleStudent, "school-1", "")
	env.seedUser("student-2", model.RoleStudent, "school-1", "")
	env.seedUser("student-3", model.RoleStudent, "school-1", "")
	env.seedProject("proj-1", "school-1", "", "owner-1", model.StatusApproved, "owner-1")

	if err := env.svc.Project.Join(context.Background(), "student-2", "proj-1"); err != nil {
		t.Fatalf("first join: %v", err)
	}
	req := &dto.UpdateProjectRequest{Title: strptr("Renamed")}
	if _, err := env.svc.Project.Update(context.Background(), "owner-1", "proj-1", req); err != nil {
		t.Fatalf("update: %v", err)
	}

	project, _ := env.projects.GetByID(context.Background(), "proj-1")
	if project.Version != 2 {
		t.Fatalf("content update must not move the member-append version, got %d", project.Version)
	}
	if err := env.svc.Project.Join(context.Background(), "student-3", "proj-1"); err != nil {
		t.Fatalf("join after content update: %v", err)
	}
}

func TestProjectService_UpdateStatus_RoleGate(t *testing.T) {
	env := newTestEnv()
	env.seedSchool("school-1", "1514", "School 1514")
	env.seedUser("owner-1", model.RoleStudent, "school-1", "")
	env.seedUser("teacher-1", model.RoleTeacher, "school-1", "")
	env.seedProject("proj-1", "school-1", "", "owner-1", model.StatusPending, "owner-1")

	// Owning the project does not grant review rights.
	req := &dto.UpdateStatusRequest{Status: model.StatusApproved}
	if err := env.svc.Project.UpdateStatus(context.Background(), "owner-1", "proj-1", req); !errors.Is(err, ErrForbidden) {
		t.Fatalf("student: expected ErrForbidden, got %v", err)
	}

	if err := env.svc.Project.UpdateStatus(context.Background(), "teacher-1", "proj-1", req); err != nil {
		t.Fatalf("teacher: %v", err)
	}
	project, _ := env.projects.GetByID(context.Background(), "proj-1")
	if project.Status != model.StatusApproved {
		t.Errorf("status not persisted: %s", project.Status)
	}
}

func TestProjectService_UpdateStatus_RejectsUnknownValue(t *testing.T) {
	env := newTestEnv()
	env.seedSchool("school-1", "1514", "School 1514")
	env.seedUser("teacher-1", model.RoleTeacher, "school-1", "")
	env.seedUser("owner-1", model.RoleStudent, "school-1", "")
	env.seedProject("proj-1", "school-1", "", "owner-1", model.StatusPending, "owner-1")

	req := &dto.UpdateStatusRequest{Status: "archived"}
	if err := env.svc.Project.UpdateStatus(context.Background(), "teacher-1", "proj-1", req); !errors.Is(err, ErrInvalidStatus) {
		t.Fatalf("expected ErrInvalidStatus, got %v", err)
	}

	project, _ := env.projects.GetByID(context.Background(), "proj-1")
	if project.Status != model.StatusPending {
		t.Errorf("invalid status must not be written, got %s", project.Status)
	}
}

func TestProjectService_Delete_AdminOnly(t *testing.T) {
	env := newTestEnv()
	env.seedSchool("school-1", "1514", "School 1514")
	env.seedUser("owner-1", model.RoleStudent, "school-1", "")
	env.seedUser("admin-1", model.RoleAdmin, "", "")
	env.seedProject("proj-1", "school-1", "", "owner-1", model.StatusApproved, "owner-1")

	if err := env.svc.Project.Delete(context.Background(), "owner-1", "proj-1"); !errors.Is(err, ErrForbidden) {
		t.Fatalf("owner: expected ErrForbidden, got %v", err)
	}
	if err := env.svc.Project.Delete(context.Background(), "admin-1", "proj-1"); err != nil {
		t.Fatalf("admin: %v", err)
	}
}

// ── Uploads ──

func TestProjectService_AttachFile(t *testing.T) {
	env := newTestEnv()
	env.seedSchool("school-1", "1514", "School 1514")
	env.seedUser("owner-1", model.RoleStudent, "school-1", "")
	env.seedUser("outsider-1", model.RoleStudent, "school-1", "")
	env.seedProject("proj-1", "school-1", "", "owner-1", model.StatusApproved, "owner-1")

	r := strings.NewReader("content")
	if _, err := env.svc.Project.AttachFile(context.Background(), "outsider-1", "proj-1", "slides.pptx", model.FilePresentation, r); !errors.Is(err, ErrNotMember) {
		t.Errorf("outsider: expected ErrNotMember, got %v", err)
	}

	if _, err := env.svc.Project.AttachFile(context.Background(), "owner-1", "proj-1", "notes.txt", "archive", strings.NewReader("x")); !errors.Is(err, ErrInvalidFileType) {
		t.Errorf("bad type: expected ErrInvalidFileType, got %v", err)
	}

	file, err := env.svc.Project.AttachFile(context.Background(), "owner-1", "proj-1", "report.pdf", model.FileDocument, strings.NewReader("pdf"))
	if err != nil {
		t.Fatalf("AttachFile: %v", err)
	}
	if file.Type != model.FileDocument || file.Path == "" {
		t.Errorf("unexpected file record: %+v", file)
	}
	if len(env.files.files) != 1 {
		t.Errorf("expected 1 stored file row, got %d", len(env.files.files))
	}
}
