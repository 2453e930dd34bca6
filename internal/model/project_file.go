package model

import "time"

// FileType is the closed set of upload kinds.
type FileType string

const (
	FileDocument     FileType = "document"
	FilePresentation FileType = "presentation"
)

// Valid reports whether t is one of the known file types.
func (t FileType) Valid() bool {
	return t == FileDocument || t == FilePresentation
}

// ProjectFile — project_files table. Written once at upload, dropped
// with its project, never updated.
type ProjectFile struct {
	FileID    string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"file_id"`
	Filename  string    `gorm:"type:varchar(255);not null"                     json:"filename"`
	Path      string    `gorm:"type:varchar(512);not null"                     json:"path"`
	Type      FileType  `gorm:"type:varchar(20);not null"                      json:"type"`
	ProjectID string    `gorm:"type:uuid;not null"                             json:"project_id"`
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"created_at"`
}

// TableName overrides the table name.
func (ProjectFile) TableName() string { return "project_files" }
