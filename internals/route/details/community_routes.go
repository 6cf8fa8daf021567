// file: internals/route/details/community_routes.go
package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	communityController "learnhub_backend/internals/features/communities/communities/controller"
	memberController "learnhub_backend/internals/features/communities/members/controller"
)

func CommunityRoutes(private fiber.Router, public fiber.Router, db *gorm.DB) {
	communities := communityController.NewCommunityController(db)
	members := memberController.NewCommunityMemberController(db)

	// Authenticated
	private.Post("/communities", communities.CreateCommunity)
	private.Patch("/communities/:communityId", communities.PatchCommunity)
	private.Delete("/communities/:communityId", communities.DeleteCommunity)

	private.Post("/communities/:communityId/join", members.JoinCommunity)
	private.Post("/communities/:communityId/leave", members.LeaveCommunity)
	private.Patch("/communities/:communityId/members/role", members.ChangeRole)

	// Public reads
	public.Get("/communities", communities.GetCommunities)
	public.Get("/communities/slug/:slug", communities.GetCommunityBySlug)
	public.Get("/communities/:communityId", communities.GetCommunityByID)
	public.Get("/communities/:communityId/members", members.GetMembers)
}
