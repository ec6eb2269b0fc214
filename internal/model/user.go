package model

import (
	"strings"

	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	Email       string `gorm:"uniqueIndex;not null"`
	Password    string `gorm:"not null"`
	Username    string `gorm:"uniqueIndex;not null"`
	CompanyName string `json:"company_name" gorm:"not null"`

	// Optional profile fields, editable from settings
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Title       string `json:"title"`
	PhoneNumber string `json:"phone_number"`
	TaxNumber   string `json:"tax_number"`
	Avatar      string `json:"avatar"`

	IsVerified bool `json:"is_verified" gorm:"default:false"`

	// Relations
	Properties []Property `json:"-"`
	Tenants    []Tenant   `json:"-"`
	Owners     []Owner    `json:"-"`
}

func (u *User) GetFullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

func (u *User) GetPublicProfile() map[string]interface{} {
	return map[string]interface{}{
		"id":           u.ID,
		"username":     u.Username,
		"company_name": u.CompanyName,
		"full_name":    u.GetFullName(),
		"title":        u.Title,
		"phone_number": u.PhoneNumber,
		"tax_number":   u.TaxNumber,
		"avatar":       u.Avatar,
		"is_verified":  u.IsVerified,
	}
}
