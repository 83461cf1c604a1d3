// Package models contains GORM-specific persistence models that map to
// database tables. They are kept separate from domain entities so the
// domain layer stays free of ORM concerns; mappers convert in both
// directions and repositories only ever touch the models.
package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/finboard/backend/internal/domain/shared"
)

// BaseModel provides common persistence fields for all models.
// It maps to the domain's BaseEntity.
type BaseModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// ToDomain converts BaseModel to domain BaseEntity
func (m *BaseModel) ToDomain() shared.BaseEntity {
	return shared.BaseEntity{
		ID:        m.ID,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// FromDomainBaseEntity populates BaseModel from domain BaseEntity
func (m *BaseModel) FromDomainBaseEntity(e shared.BaseEntity) {
	m.ID = e.ID
	m.CreatedAt = e.CreatedAt
	m.UpdatedAt = e.UpdatedAt
}

// BrandModel provides common persistence fields for brand-scoped records
type BrandModel struct {
	BaseModel
	Brand string `gorm:"type:varchar(50);not null;index"`
}

// ToDomainBrandEntity converts BrandModel to domain BrandEntity
func (m *BrandModel) ToDomainBrandEntity() shared.BrandEntity {
	return shared.BrandEntity{
		BaseEntity: m.BaseModel.ToDomain(),
		Brand:      shared.Brand(m.Brand),
	}
}

// FromDomainBrandEntity populates BrandModel from domain BrandEntity
func (m *BrandModel) FromDomainBrandEntity(e shared.BrandEntity) {
	m.FromDomainBaseEntity(e.BaseEntity)
	m.Brand = e.Brand.Normalize().String()
}
