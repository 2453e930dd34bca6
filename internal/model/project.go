package model

// ProjectStatus is the closed set of review states. There is no
// transition graph: any value may follow any other when set by an
// authorized actor.
type ProjectStatus string

const (
	StatusPending  ProjectStatus = "pending"
	StatusApproved ProjectStatus = "approved"
	StatusRejected ProjectStatus = "rejected"
)

// Valid reports whether s is one of the known statuses.
func (s ProjectStatus) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// MaxProjectMembers caps the member set, owner included.
const MaxProjectMembers = 3

// Project — projects table.
//
// Version guards the member list against concurrent joins: the append
// only commits when the version read before the capacity check is still
// current.
type Project struct {
	ProjectID     string        `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"project_id"`
	Title         string        `gorm:"type:varchar(255);not null"                     json:"title"`
	Description   string        `gorm:"type:text;not null"                             json:"description"`
	GithubURL     string        `gorm:"type:varchar(255)"                              json:"github_url,omitempty"`
	Status        ProjectStatus `gorm:"type:varchar(20);not null;default:'pending'"    json:"status"`
	SchoolID      string        `gorm:"type:uuid;not null"                             json:"school_id"`
	SchoolClassID *string       `gorm:"type:uuid"                                      json:"school_class_id,omitempty"`
	OwnerID       string        `gorm:"type:uuid;not null"                             json:"owner_id"`
	Version       int           `gorm:"not null;default:1"                             json:"version"`
	BaseModel

	School      *School       `gorm:"foreignKey:SchoolID;references:SchoolID"           json:"school,omitempty"`
	SchoolClass *SchoolClass  `gorm:"foreignKey:SchoolClassID;references:SchoolClassID" json:"school_class,omitempty"`
	Owner       *User         `gorm:"foreignKey:OwnerID;references:UserID"              json:"owner,omitempty"`
	Members     []User        `gorm:"many2many:project_members;joinForeignKey:ProjectID;joinReferences:UserID" json:"members,omitempty"`
	Files       []ProjectFile `gorm:"foreignKey:ProjectID;references:ProjectID"         json:"files,omitempty"`
}

// TableName overrides the table name.
func (Project) TableName() string { return "projects" }

// HasMember reports whether userID is already in the member set.
func (p *Project) HasMember(userID string) bool {
	for _, m := range p.Members {
		if m.UserID == userID {
			return true
		}
	}
	return false
}
