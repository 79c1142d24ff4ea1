package models

// NotificationTemplate is an admin-managed message template. Body may contain
// {{placeholder}} tokens that are substituted at send time. Subject is only
// meaningful for the email channel.
type NotificationTemplate struct {
	BaseModel
	TemplateKey string `gorm:"uniqueIndex:idx_template_key_channel" json:"template_key"`
	Channel     string `gorm:"uniqueIndex:idx_template_key_channel" json:"channel"`
	Name        string `json:"name"`
	Subject     string `json:"subject"`
	Body        string `json:"body"`
	IsActive    bool   `json:"is_active"`
}
