package models

import (
	"time"

	"github.com/BizLenz/api/internal/domain/plans"
)

// BusinessPlanModel is the GORM database model for business-plan files.
type BusinessPlanModel struct {
	ID          int       `gorm:"primaryKey;autoIncrement"`
	UserID      string    `gorm:"not null;index;type:varchar(255)"`
	User        UserModel `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	FileName    string    `gorm:"not null;type:varchar(255);index"`
	FilePath    string    `gorm:"not null;type:varchar(500)"`
	FileSize    int64     `gorm:"not null"`
	MimeType    string    `gorm:"not null;type:varchar(100)"`
	Status      string    `gorm:"not null;type:varchar(20);default:pending;index"`
	LatestJobID *int      `gorm:"index"`
	CreatedAt   time.Time `gorm:"not null;index:idx_business_plans_created_at,sort:desc"`
	UpdatedAt   time.Time `gorm:"not null"`
}

// TableName specifies the table name for GORM
func (BusinessPlanModel) TableName() string {
	return "business_plans"
}

// ToDomain converts GORM model to domain entity
func (m *BusinessPlanModel) ToDomain() *plans.BusinessPlan {
	return &plans.BusinessPlan{
		ID:          m.ID,
		UserID:      m.UserID,
		FileName:    m.FileName,
		FilePath:    m.FilePath,
		FileSize:    m.FileSize,
		MimeType:    m.MimeType,
		Status:      m.Status,
		LatestJobID: m.LatestJobID,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

// FromDomain converts domain entity to GORM model
func (m *BusinessPlanModel) FromDomain(p *plans.BusinessPlan) {
	m.ID = p.ID
	m.UserID = p.UserID
	m.FileName = p.FileName
	m.FilePath = p.FilePath
	m.FileSize = p.FileSize
	m.MimeType = p.MimeType
	m.Status = p.Status
	m.LatestJobID = p.LatestJobID
	m.CreatedAt = p.CreatedAt
	m.UpdatedAt = p.UpdatedAt
}
