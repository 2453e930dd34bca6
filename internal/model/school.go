package model

// School — schools table, root of the directory hierarchy.
type School struct {
	SchoolID string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"school_id"`
	Number   string `gorm:"type:varchar(20);not null;uniqueIndex"          json:"number"`
	Name     string `gorm:"type:varchar(255);not null"                     json:"name"`
	City     string `gorm:"type:varchar(100)"                              json:"city,omitempty"`
	BaseModel

	Classes []SchoolClass `gorm:"foreignKey:SchoolID;references:SchoolID" json:"classes,omitempty"`
}

// TableName overrides the table name.
func (School) TableName() string { return "schools" }
