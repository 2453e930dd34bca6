package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/IPodymov/pd-projects-backend/internal/dto"
	"github.com/IPodymov/pd-projects-backend/internal/model"
)

// ── Login ──

func TestAuthService_Login_Success(t *testing.T) {
	env := newTestEnv()
	env.seedUserWithPassword("user-1", model.RoleStudent, "secret123")

	result, err := env.svc.Auth.Login(context.Background(), &dto.LoginRequest{
		Email:    "user-1@example.com",
		Password: "secret123",
	})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if result.Token == "" {
		t.Error("expected a session token")
	}
	if result.ExpiresIn != 3600 {
		t.Errorf("expected 3600s session, got %d", result.ExpiresIn)
	}
	if result.User.Email != "user-1@example.com" {
		t.Errorf("unexpected user projection: %+v", result.User)
	}
}

func TestAuthService_Login_UnknownEmailAndWrongPasswordFailAlike(t *testing.T) {
	env := newTestEnv()
	env.seedUserWithPassword("user-1", model.RoleStudent, "secret123")

	_, errUnknown := env.svc.Auth.Login(context.Background(), &dto.LoginRequest{
		Email:    "ghost@example.com",
		Password: "whatever",
	})
	_, errWrong := env.svc.Auth.Login(context.Background(), &dto.LoginRequest{
		Email:    "user-1@example.com",
		Password: "not-the-password",
	})

	if !errors.Is(errUnknown, ErrInvalidCredentials) {
		t.Errorf("unknown email: expected ErrInvalidCredentials, got %v", errUnknown)
	}
	if !errors.Is(errWrong, ErrInvalidCredentials) {
		t.Errorf("wrong password: expected ErrInvalidCredentials, got %v", errWrong)
	}
}

// ── Register, student path ──

func TestAuthService_Register_StudentRequiresSchool(t *testing.T) {
	env := newTestEnv()

	_, err := env.svc.Auth.Register(context.Background(), &dto.RegisterRequest{
		Name:     "Anna",
		Email:    "anna@example.com",
		Password: "secret123",
	})
	if !errors.Is(err, ErrSchoolRequired) {
		t.Fatalf("expected ErrSchoolRequired, got %v", err)
	}
}

func TestAuthService_Register_StudentPath(t *testing.T) {
	env := newTestEnv()
	env.seedSchool("school-1", "1514", "School 1514")

	result, err := env.svc.Auth.Register(context.Background(), &dto.RegisterRequest{
		Name:     "Anna",
		Email:    "anna@example.com",
		Password: "secret123",
		SchoolID: "school-1",
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	if result.User.Role != model.RoleStudent {
		t.Errorf("self-registration always yields student, got %s", result.User.Role)
	}
	if result.User.SchoolID == nil || *result.User.SchoolID != "school-1" {
		t.Errorf("missing school placement: %+v", result.User)
	}

	count, _ := env.classes.CountBySchool(context.Background(), "school-1")
	if count != 3 {
		t.Errorf("registration should provision default classes, got %d", count)
	}
}

func TestAuthService_Register_ClassMustBelongToSchool(t *testing.T) {
	env := newTestEnv()
	env.seedSchool("school-1", "1514", "School 1514")
	env.seedSchool("school-2", "57", "School 57")
	env.seedClass("class-other", "school-2", "Grade 9")

	_, err := env.svc.Auth.Register(context.Background(), &dto.RegisterRequest{
		Name:          "Anna",
		Email:         "anna@example.com",
		Password:      "secret123",
		SchoolID:      "school-1",
		SchoolClassID: "class-other",
	})
	if !errors.Is(err, ErrClassNotFound) {
		t.Fatalf("expected ErrClassNotFound, got %v", err)
	}
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	env := newTestEnv()
	env.seedSchool("school-1", "1514", "School 1514")
	env.seedUser("user-1", model.RoleStudent, "", "")

	_, err := env.svc.Auth.Register(context.Background(), &dto.RegisterRequest{
		Name:     "Clone",
		Email:    "user-1@example.com",
		Password: "secret123",
		SchoolID: "school-1",
	})
	if !errors.Is(err, ErrEmailExists) {
		t.Fatalf("expected ErrEmailExists, got %v", err)
	}
}

// ── Register, invitation path ──

func TestAuthService_Register_InvitePathGrantsTeacher(t *testing.T) {
	env := newTestEnv()
	env.seedSchool("school-1", "1514", "School 1514")
	env.invitations.invitations["tok"] = &model.Invitation{
		Token:        "tok",
		SchoolNumber: "1514",
		Role:         model.RoleTeacher,
		ExpiresAt:    time.Now().Add(time.Hour),
	}

	result, err := env.svc.Auth.Register(context.Background(), &dto.RegisterRequest{
		Name:        "Boris",
		Email:       "boris@example.com",
		Password:    "secret123",
		InviteToken: "tok",
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	if result.User.Role != model.RoleTeacher {
		t.Errorf("invite grants teacher, got %s", result.User.Role)
	}
	if result.User.SchoolID == nil || *result.User.SchoolID != "school-1" {
		t.Errorf("invite placement missing: %+v", result.User)
	}
}

func TestAuthService_Register_ExpiredInvite(t *testing.T) {
	env := newTestEnv()
	env.seedSchool("school-1", "1514", "School 1514")
	env.invitations.invitations["old"] = &model.Invitation{
		Token:        "old",
		SchoolNumber: "1514",
		Role:         model.RoleTeacher,
		ExpiresAt:    time.Now().Add(-time.Minute),
	}

	_, err := env.svc.Auth.Register(context.Background(), &dto.RegisterRequest{
		Name:        "Boris",
		Email:       "boris@example.com",
		Password:    "secret123",
		InviteToken: "old",
	})
	if !errors.Is(err, ErrInvitationExpired) {
		t.Fatalf("expected ErrInvitationExpired, got %v", err)
	}
	if _, err := env.users.GetByEmail(context.Background(), "boris@example.com"); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("failed registration must not create a user, lookup returned %v", err)
	}
}
