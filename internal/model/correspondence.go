package model

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type CorrespondenceTemplate struct {
	gorm.Model
	UserID uint `json:"user_id" gorm:"index;uniqueIndex:idx_user_template_slug;not null"`

	Name    string `json:"name" gorm:"not null"`
	Slug    string `json:"slug" gorm:"uniqueIndex:idx_user_template_slug;not null"`
	Subject string `json:"subject" gorm:"not null"`
	// Body uses html/template syntax; Variables declares the placeholders the
	// editor offers ({{.TenantName}}, {{.PropertyName}}, ...).
	Body      string         `json:"body" gorm:"type:text;not null"`
	Variables datatypes.JSON `json:"variables"`

	User User `json:"-" gorm:"foreignKey:UserID"`
}

type CorrespondenceLog struct {
	gorm.Model
	UserID     uint  `json:"user_id" gorm:"index;not null"`
	TemplateID uint  `json:"template_id" gorm:"index"`
	TenantID   *uint `json:"tenant_id" gorm:"index"`
	LeaseID    *uint `json:"lease_id" gorm:"index"`

	Recipient string    `json:"recipient" gorm:"not null"`
	Subject   string    `json:"subject"`
	SentAt    time.Time `json:"sent_at"`
	Error     string    `json:"error"` // empty on success

	Template CorrespondenceTemplate `json:"-" gorm:"foreignKey:TemplateID"`
}
