package model

// SchoolClass — school_classes table. Belongs to exactly one school and
// is dropped with it. Name uniqueness within a school is deliberately
// not enforced; historical duplicates exist.
type SchoolClass struct {
	SchoolClassID string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"school_class_id"`
	Name          string `gorm:"type:varchar(100);not null"                     json:"name"`
	SchoolID      string `gorm:"type:uuid;not null"                             json:"school_id"`
	BaseModel

	School *School `gorm:"foreignKey:SchoolID;references:SchoolID" json:"school,omitempty"`
}

// TableName overrides the table name.
func (SchoolClass) TableName() string { return "school_classes" }
