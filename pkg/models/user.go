package models

import "time"

// UserStatus is the access-approval state of a storefront customer.
type UserStatus string

const (
	UserPending  UserStatus = "pending"
	UserApproved UserStatus = "approved"
)

// User is a storefront customer, identified by WhatsApp number. New users
// start pending and only see prices once an admin approves them.
type User struct {
	Name      string     `json:"name" bson:"name" validate:"required,min=2,max=100"`
	WhatsApp  string     `json:"whatsapp" bson:"whatsapp" validate:"required,min=10,max=20"`
	Status    UserStatus `json:"status" bson:"status" validate:"required,oneof=pending approved"`
	CreatedAt time.Time  `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time  `json:"updated_at" bson:"updated_at"`
}

// IsApproved reports whether the user may browse prices and check out.
func (u *User) IsApproved() bool {
	return u.Status == UserApproved
}

// SetTimestamps sets created_at on first save and always bumps updated_at.
func (u *User) SetTimestamps() {
	now := time.Now()
	if u.CreatedAt.IsZero() {
		u.CreatedAt = now
	}
	u.UpdatedAt = now
}

// UserAuthRequest is the login-or-register payload for customers.
type UserAuthRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=100"`
	WhatsApp string `json:"whatsapp" validate:"required,min=10,max=20"`
}
