// Package profilerepo answers identity questions from the profiles table.
// Profiles are written by the account service; this module only reads the
// admin flag, and the operator CLI may toggle it.
package profilerepo

import (
	"context"
	"errors"
	"time"

	"parcel/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProfileDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	IsAdmin   bool      `gorm:"not null;default:false"`
	UpdatedAt time.Time `gorm:"not null"`
}

func (ProfileDTO) TableName() string {
	return "profiles"
}

// GormIdentityProvider implements IdentityProvider using GORM.
type GormIdentityProvider struct {
	db *gorm.DB
}

func NewGormIdentityProvider(db *gorm.DB) *GormIdentityProvider {
	return &GormIdentityProvider{db: db}
}

// IsAdmin reports false for actors without a profile.
func (p *GormIdentityProvider) IsAdmin(ctx context.Context, actorID kernel.UUID) (bool, error) {
	if err := actorID.Validate(); err != nil {
		return false, err
	}

	var dto ProfileDTO
	err := p.db.WithContext(ctx).Select("id", "is_admin").First(&dto, "id = ?", actorID.Bytes()).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return dto.IsAdmin, nil
}

// SetAdmin creates or updates the actor's profile with the given flag.
func (p *GormIdentityProvider) SetAdmin(ctx context.Context, actorID kernel.UUID, isAdmin bool) error {
	if err := actorID.Validate(); err != nil {
		return err
	}

	dto := ProfileDTO{ID: actorID.Bytes(), IsAdmin: isAdmin, UpdatedAt: time.Now().UTC()}
	return p.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"is_admin", "updated_at"}),
	}).Create(&dto).Error
}
