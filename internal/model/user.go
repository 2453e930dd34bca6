package model

// Role is the closed set of user roles. Every authorization decision is
// made against one of these values; unknown strings are rejected at the
// boundary.
type Role string

const (
	RoleStudent         Role = "student"
	RoleTeacher         Role = "teacher"
	RoleUniversityStaff Role = "university_staff"
	RoleAdmin           Role = "admin"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleStudent, RoleTeacher, RoleUniversityStaff, RoleAdmin:
		return true
	}
	return false
}

// User — users table.
type User struct {
	UserID        string  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"user_id"`
	Name          string  `gorm:"type:varchar(100);not null"                     json:"name"`
	Email         string  `gorm:"type:varchar(255);not null;uniqueIndex"         json:"email"`
	PasswordHash  string  `gorm:"type:varchar(255);not null"                     json:"-"`
	Role          Role    `gorm:"type:varchar(20);not null;default:'student'"    json:"role"`
	SchoolID      *string `gorm:"type:uuid"                                      json:"school_id,omitempty"`
	SchoolClassID *string `gorm:"type:uuid"                                      json:"school_class_id,omitempty"`
	BaseModel

	School      *School      `gorm:"foreignKey:SchoolID;references:SchoolID"           json:"school,omitempty"`
	SchoolClass *SchoolClass `gorm:"foreignKey:SchoolClassID;references:SchoolClassID" json:"school_class,omitempty"`
}

// TableName overrides the table name.
func (User) TableName() string { return "users" }
