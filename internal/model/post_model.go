package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PostModel is the persisted shape of a post: one record keyed by an internal
// uuid, reachable through two unique secondary keys (code and slug).
type PostModel struct {
	ID            string `gorm:"type:uuid;primary_key"`
	Code          string `gorm:"uniqueIndex;not null"`
	Slug          string `gorm:"uniqueIndex;not null"`
	Title         string
	Author        string
	Story         string `gorm:"type:text"`
	Delta         string `gorm:"type:text"`
	StoryAmp      string `gorm:"type:text"`
	OwnerIdentity string `gorm:"index;not null"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (PostModel) TableName() string {
	return "posts"
}

func (p *PostModel) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	return nil
}
