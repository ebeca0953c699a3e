package domain

// Global feature flag keys
const (
	SettingRealtimeEnabled     = "realtime_enabled"
	SettingPublicBoardsEnabled = "public_boards_enabled"
)

// Setting is a global key/value flag row. Values are stored as strings;
// boolean flags use "true"/"false".
type Setting struct {
	BaseModel
	Key   string `gorm:"type:varchar(100);not null;uniqueIndex:uq_settings_key" json:"key"`
	Value string `gorm:"type:varchar(255);not null" json:"value"`
}

// TableName specifies the table name for Setting
func (Setting) TableName() string {
	return "settings"
}
