package repository

import "gorm.io/gorm"

// Repository aggregates every per-entity repository. Services receive
// this instead of a process-wide data-source handle so tests can inject
// in-memory fakes.
type Repository struct {
	User        UserRepository
	School      SchoolRepository
	SchoolClass SchoolClassRepository
	Invitation  InvitationRepository
	Project     ProjectRepository
	File        FileRepository
}

// NewRepository builds the aggregate over one GORM connection.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		User:        NewUserRepo(db),
		School:      NewSchoolRepo(db),
		SchoolClass: NewSchoolClassRepo(db),
		Invitation:  NewInvitationRepo(db),
		Project:     NewProjectRepo(db),
		File:        NewFileRepo(db),
	}
}
