package model

import (
	"database/sql/driver"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

/* =============================================================================
   ENUM-like: community role ('owner','moderator','member')
============================================================================= */

type Role string

const (
	RoleOwner     Role = "owner"
	RoleModerator Role = "moderator"
	RoleMember    Role = "member"
	// RoleNone is the zero value: the user has no membership row.
	RoleNone Role = ""
)

func (r Role) String() string { return string(r) }

func (r Role) Valid() bool {
	switch r {
	case RoleOwner, RoleModerator, RoleMember:
		return true
	default:
		return false
	}
}

// CanManage: authoring capability is a set-membership test, not a hierarchy.
func (r Role) CanManage() bool {
	return r == RoleOwner || r == RoleModerator
}

// sql.Scanner + driver.Valuer
func (r *Role) Scan(value any) error {
	if value == nil {
		*r = RoleNone
		return nil
	}
	switch v := value.(type) {
	case string:
		*r = Role(v)
	case []byte:
		*r = Role(string(v))
	default:
		return fmt.Errorf("unsupported type for Role: %T", value)
	}
	if !r.Valid() {
		return fmt.Errorf("invalid Role: %q", *r)
	}
	return nil
}

func (r Role) Value() (driver.Value, error) {
	if r == RoleNone {
		return nil, nil
	}
	if !r.Valid() {
		return nil, fmt.Errorf("invalid Role: %q", r)
	}
	return string(r), nil
}

/* =============================================================================
   MODEL: community_members
   One row per (community, user); the pair is unique at the storage level.
============================================================================= */

type CommunityMemberModel struct {
	CommunityMemberID uuid.UUID `gorm:"column:community_member_id;type:uuid;primaryKey" json:"community_member_id"`

	CommunityMemberCommunityID uuid.UUID `gorm:"column:community_member_community_id;type:uuid;not null;uniqueIndex:uq_community_members_pair,priority:1" json:"community_member_community_id"`
	CommunityMemberUserID      uuid.UUID `gorm:"column:community_member_user_id;type:uuid;not null;uniqueIndex:uq_community_members_pair,priority:2;index:idx_community_members_user" json:"community_member_user_id"`

	CommunityMemberRole Role `gorm:"column:community_member_role;type:varchar(16);not null;default:'member'" json:"community_member_role"`

	CommunityMemberCreatedAt time.Time `gorm:"column:community_member_created_at;not null;autoCreateTime" json:"community_member_created_at"`
	CommunityMemberUpdatedAt time.Time `gorm:"column:community_member_updated_at;not null;autoUpdateTime" json:"community_member_updated_at"`
}

func (CommunityMemberModel) TableName() string { return "community_members" }

func (m *CommunityMemberModel) BeforeCreate(_ *gorm.DB) error {
	if m.CommunityMemberID == uuid.Nil {
		m.CommunityMemberID = uuid.New()
	}
	return nil
}
