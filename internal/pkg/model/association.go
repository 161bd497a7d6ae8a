package model

// Associations is a slice of Association.
type Associations []Association

// Association represents a row in association_table: one (user, bank) pair
// with its scheduling limits. max_wall_pj is expressed in minutes and the
// timestamps in unix seconds.
type Association struct {
	ID           int64  `gorm:"column:assoc_id;primaryKey;autoIncrement" json:"-"`
	CreationTime int64  `gorm:"column:creation_time;not null" json:"creation_time"`
	ModTime      int64  `gorm:"column:mod_time;not null" json:"mod_time"`
	Deleted      int8   `gorm:"column:deleted;not null;default:0" json:"deleted"`
	UserName     string `gorm:"column:user_name;size:255;not null;uniqueIndex:idx_assoc_user_bank,priority:1" json:"user_name"`
	AdminLevel   int64  `gorm:"column:admin_level;not null" json:"admin_level"`
	Bank         string `gorm:"column:bank;size:255;not null;uniqueIndex:idx_assoc_user_bank,priority:2" json:"bank"`
	Shares       int64  `gorm:"column:shares;not null" json:"shares"`
	MaxJobs      int64  `gorm:"column:max_jobs;not null" json:"max_jobs"`
	MaxWallPJ    int64  `gorm:"column:max_wall_pj;not null" json:"max_wall_pj"`
	// DirectoryAttrs holds attributes fetched from LDAP for this user.
	// It is ignored by GORM.
	DirectoryAttrs map[string][]string `gorm:"-" json:"ldap_attrs,omitempty"`
}

func (Association) TableName() string { return "association_table" }

// DirectoryUser is a user entry read from LDAP.
type DirectoryUser struct {
	Name  string              `json:"name"`
	Attrs map[string][]string `json:"attrs"`
}
