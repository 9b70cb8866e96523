package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/rahulk/campusmate/internal/app/controllers"
	"github.com/rahulk/campusmate/internal/app/models"
	"github.com/rahulk/campusmate/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	enrollmentController *controllers.EnrollmentController,
	studentController *controllers.StudentController,
	teacherController *controllers.TeacherController,
	identity *middleware.IdentityMiddleware,
) {
	v1 := router.Group("/api/v1")

	authenticated := v1.Group("")
	authenticated.Use(identity.RequireIdentity())

	// Student-facing enrollment
	studentRoutes := authenticated.Group("")
	studentRoutes.Use(identity.RoleRequired(models.RoleStudent))
	{
		studentRoutes.POST("/courses/:courseId/enroll", enrollmentController.Enroll)
		studentRoutes.GET("/enrollments", enrollmentController.ListMyEnrollments)
	}

	// Account creation (director/HOD side)
	adminRoutes := authenticated.Group("")
	adminRoutes.Use(identity.RoleRequired(models.RoleDirector, models.RoleHod))
	{
		adminRoutes.POST("/students", studentController.CreateStudent)
		adminRoutes.PATCH("/students/:id/department", studentController.MoveToDepartment)
		adminRoutes.POST("/teachers", teacherController.CreateTeacher)
	}
}
