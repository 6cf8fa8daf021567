// file: internals/route/details/classroom_routes.go
package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	classroomController "learnhub_backend/internals/features/classrooms/classrooms/controller"
	lessonController "learnhub_backend/internals/features/classrooms/lessons/controller"
	sectionController "learnhub_backend/internals/features/classrooms/sections/controller"
)

func ClassroomRoutes(private fiber.Router, public fiber.Router, db *gorm.DB) {
	classrooms := classroomController.NewClassroomController(db)
	sections := sectionController.NewSectionController(db)
	lessons := lessonController.NewLessonController(db)

	// Authenticated
	private.Post("/classrooms", classrooms.CreateClassroom)
	private.Patch("/classrooms/:classroomId", classrooms.PatchClassroom)
	private.Delete("/classrooms/:classroomId", classrooms.DeleteClassroom)

	private.Post("/sections", sections.CreateSection)
	private.Patch("/sections/:sectionId", sections.PatchSection)
	private.Delete("/sections/:sectionId", sections.DeleteSection)

	private.Post("/lessons", lessons.CreateLesson)
	private.Patch("/lessons/:lessonId", lessons.PatchLesson)
	private.Delete("/lessons/:lessonId", lessons.DeleteLesson)

	// Public reads
	public.Get("/communities/:communityId/classrooms", classrooms.GetClassroomsByCommunity)
	public.Get("/classrooms/:classroomId", classrooms.GetClassroomByID)
	public.Get("/classrooms/:classroomId/sections", sections.GetSectionsByClassroom)
	public.Get("/sections/:sectionId/lessons", lessons.GetLessonsBySection)
	public.Get("/lessons/:lessonId", lessons.GetLessonByID)
}
