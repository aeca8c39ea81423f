package models

import (
	"time"

	"github.com/BizLenz/api/internal/domain/users"
)

// UserModel is the GORM database model for user profiles. The primary key is
// the identity provider's subject claim. Username and email are nullable so
// that profiles provisioned from a bare token do not collide on the unique
// indexes.
type UserModel struct {
	ID          string    `gorm:"primaryKey;type:varchar(255)"`
	Username    *string   `gorm:"type:varchar(50);uniqueIndex"`
	Email       *string   `gorm:"type:varchar(255);uniqueIndex"`
	PhoneNumber string    `gorm:"type:varchar(20)"`
	Address     string    `gorm:"type:text"`
	CreatedAt   time.Time `gorm:"not null"`
	UpdatedAt   time.Time `gorm:"not null"`
}

// TableName specifies the table name for GORM
func (UserModel) TableName() string {
	return "users"
}

// ToDomain converts GORM model to domain entity
func (m *UserModel) ToDomain() *users.User {
	u := &users.User{
		ID:          m.ID,
		PhoneNumber: m.PhoneNumber,
		Address:     m.Address,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
	if m.Username != nil {
		u.Username = *m.Username
	}
	if m.Email != nil {
		u.Email = *m.Email
	}
	return u
}

// FromDomain converts domain entity to GORM model
func (m *UserModel) FromDomain(u *users.User) {
	m.ID = u.ID
	m.Username = nilIfEmpty(u.Username)
	m.Email = nilIfEmpty(u.Email)
	m.PhoneNumber = u.PhoneNumber
	m.Address = u.Address
	m.CreatedAt = u.CreatedAt
	m.UpdatedAt = u.UpdatedAt
}

func nilIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
