package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rahulk/campusmate/internal/app/models/dto"
	"github.com/rahulk/campusmate/internal/app/services"
	"github.com/rahulk/campusmate/internal/middleware"
)

// EnrollmentController handles enrollment endpoints
type EnrollmentController struct {
	enrollmentService *services.EnrollmentService
	academicYear      string
}

// NewEnrollmentController creates a new EnrollmentController
func NewEnrollmentController(enrollmentService *services.EnrollmentService, academicYear string) *EnrollmentController {
	return &EnrollmentController{
		enrollmentService: enrollmentService,
		academicYear:      academicYear,
	}
}

// Enroll places the calling student into the course from the path. The
// caller's identity comes from the identity middleware; the section is
// chosen by the allocator, never by the client.
func (c *EnrollmentController) Enroll(ctx *gin.Context) {
	courseID, err := strconv.ParseInt(ctx.Param("courseId"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Course ID must be a valid number"),
		})
		return
	}

	studentID, ok := middleware.SubjectID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required"),
		})
		return
	}

	result, err := c.enrollmentService.Enroll(ctx, studentID, courseID, c.academicYear)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data: dto.EnrollmentResponse{
			Message:         "Enrollment successful",
			AssignedSection: result.SectionName,
			SectionID:       result.SectionID,
			AcademicYear:    result.AcademicYear,
		},
		Timestamp: time.Now(),
	})
}

// ListMyEnrollments returns the calling student's enrollments
func (c *EnrollmentController) ListMyEnrollments(ctx *gin.Context) {
	studentID, ok := middleware.SubjectID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.APIResponse{
			Error: dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required"),
		})
		return
	}

	enrollments, err := c.enrollmentService.ListEnrollments(ctx, studentID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      enrollments,
		Timestamp: time.Now(),
	})
}
