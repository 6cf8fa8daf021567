package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CommunityModel struct {
	CommunityID uuid.UUID `gorm:"column:community_id;type:uuid;primaryKey" json:"community_id"`

	CommunityName        string  `gorm:"column:community_name;type:varchar(120);not null" json:"community_name"`
	CommunitySlug        string  `gorm:"column:community_slug;type:varchar(140);not null;uniqueIndex:uq_communities_slug" json:"community_slug"`
	CommunityDescription *string `gorm:"column:community_description;type:text" json:"community_description,omitempty"`

	CommunityCreatedBy uuid.UUID `gorm:"column:community_created_by;type:uuid;not null" json:"community_created_by"`

	CommunityCreatedAt time.Time      `gorm:"column:community_created_at;not null;autoCreateTime" json:"community_created_at"`
	CommunityUpdatedAt time.Time      `gorm:"column:community_updated_at;not null;autoUpdateTime" json:"community_updated_at"`
	CommunityDeletedAt gorm.DeletedAt `gorm:"column:community_deleted_at;index" json:"community_deleted_at,omitempty"`
}

func (CommunityModel) TableName() string { return "communities" }

func (m *CommunityModel) BeforeCreate(_ *gorm.DB) error {
	if m.CommunityID == uuid.Nil {
		m.CommunityID = uuid.New()
	}
	return nil
}
