package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	model "learnhub_backend/internals/features/communities/members/model"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&model.CommunityMemberModel{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func TestGetRole(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	communityID := uuid.New()
	ownerID := uuid.New()
	memberID := uuid.New()

	rows := []model.CommunityMemberModel{
		{CommunityMemberCommunityID: communityID, CommunityMemberUserID: ownerID, CommunityMemberRole: model.RoleOwner},
		{CommunityMemberCommunityID: communityID, CommunityMemberUserID: memberID, CommunityMemberRole: model.RoleMember},
	}
	if err := db.Create(&rows).Error; err != nil {
		t.Fatalf("seed members: %v", err)
	}

	role, err := GetRole(ctx, db, ownerID, communityID)
	if err != nil {
		t.Fatalf("GetRole owner: %v", err)
	}
	if role != model.RoleOwner {
		t.Fatalf("role = %q, want owner", role)
	}

	role, err = GetRole(ctx, db, memberID, communityID)
	if err != nil {
		t.Fatalf("GetRole member: %v", err)
	}
	if role != model.RoleMember {
		t.Fatalf("role = %q, want member", role)
	}

	// No membership row resolves to none, not an error.
	role, err = GetRole(ctx, db, uuid.New(), communityID)
	if err != nil {
		t.Fatalf("GetRole stranger: %v", err)
	}
	if role != model.RoleNone {
		t.Fatalf("role = %q, want none", role)
	}

	// Same user, different community.
	role, err = GetRole(ctx, db, ownerID, uuid.New())
	if err != nil {
		t.Fatalf("GetRole other community: %v", err)
	}
	if role != model.RoleNone {
		t.Fatalf("role = %q, want none", role)
	}
}

func TestRoleCapabilities(t *testing.T) {
	if !model.RoleOwner.CanManage() || !model.RoleModerator.CanManage() {
		t.Fatalf("owner and moderator must be able to manage")
	}
	if model.RoleMember.CanManage() || model.RoleNone.CanManage() {
		t.Fatalf("member and none must not be able to manage")
	}
}
