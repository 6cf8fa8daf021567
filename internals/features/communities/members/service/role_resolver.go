// file: internals/features/communities/members/service/role_resolver.go
package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	model "learnhub_backend/internals/features/communities/members/model"
)

// GetRole resolves the caller's role inside one community. RoleNone when the
// user has no membership row. Pure lookup, no side effects; every capability
// check in the platform goes through here.
func GetRole(ctx context.Context, db *gorm.DB, userID, communityID uuid.UUID) (model.Role, error) {
	var m model.CommunityMemberModel
	err := db.WithContext(ctx).
		Select("community_member_role").
		First(&m, "community_member_community_id = ? AND community_member_user_id = ?", communityID, userID).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return model.RoleNone, nil
		}
		return model.RoleNone, err
	}
	return m.CommunityMemberRole, nil
}
