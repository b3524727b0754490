package program

import (
	"github.com/cse-dept/cms-api/handlers/common"
	"github.com/cse-dept/cms-api/model"
	"github.com/cse-dept/cms-api/utils/response"
	"github.com/cse-dept/cms-api/utils/validation"
	"github.com/gofiber/fiber/v2"
)

// CreateSemester handles POST /api/admin/programs/sections/:id/semesters
func (h *ProgramHandler) CreateSemester(c *fiber.Ctx) error {
	sectionID, err := common.ParamID(c.Params("id"))
	if err != nil {
		return response.BadRequest(c, "Invalid section ID")
	}

	var req CreateSemesterRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	req.SemesterName = validation.SanitizeString(req.SemesterName)
	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	db := h.db.WithContext(c.UserContext())
	if err := h.requireSection(db, sectionID); err != nil {
		return h.missing(c, err, "Section not found")
	}

	semester := model.CurriculumSemester{
		SectionID:      sectionID,
		SemesterNumber: req.SemesterNumber,
		SemesterName:   req.SemesterName,
		DisplayOrder:   common.IntOr(req.DisplayOrder, 0),
	}
	if err := db.Create(&semester).Error; err != nil {
		return err
	}

	return response.Created(c, toSemesterDetail(&semester))
}

// UpdateSemester handles PUT /api/admin/programs/semesters/:id
func (h *ProgramHandler) UpdateSemester(c *fiber.Ctx) error {
	semesterID, err := common.ParamID(c.Params("id"))
	if err != nil {
		return response.BadRequest(c, "Invalid semester ID")
	}

	db := h.db.WithContext(c.UserContext())

	var semester model.CurriculumSemester
	if err := db.First(&semester, semesterID).Error; err != nil {
		return h.missing(c, err, "Semester not found")
	}

	var req UpdateSemesterRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	req.SemesterName = validation.SanitizePtr(req.SemesterName)
	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	if req.SemesterNumber != nil {
		semester.SemesterNumber = *req.SemesterNumber
	}
	if req.SemesterName != nil {
		semester.SemesterName = *req.SemesterName
	}
	if req.DisplayOrder != nil {
		semester.DisplayOrder = *req.DisplayOrder
	}

	if err := db.Save(&semester).Error; err != nil {
		return err
	}

	if err := db.Preload("Courses", byDisplayOrder).First(&semester, semester.ID).Error; err != nil {
		return err
	}
	return response.SuccessWithMessage(c, "Semester updated successfully", toSemesterDetail(&semester))
}

// DeleteSemester handles DELETE /api/admin/programs/semesters/:id
func (h *ProgramHandler) DeleteSemester(c *fiber.Ctx) error {
	semesterID, err := common.ParamID(c.Params("id"))
	if err != nil {
		return response.BadRequest(c, "Invalid semester ID")
	}

	result := h.db.WithContext(c.UserContext()).Delete(&model.CurriculumSemester{}, semesterID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return response.NotFound(c, "Semester not found")
	}

	return response.SuccessWithMessage(c, "Semester deleted successfully", nil)
}

// CreateCourse handles POST /api/admin/programs/semesters/:id/courses
func (h *ProgramHandler) CreateCourse(c *fiber.Ctx) error {
	semesterID, err := common.ParamID(c.Params("id"))
	if err != nil {
		return response.BadRequest(c, "Invalid semester ID")
	}

	var req CreateCourseRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	req.CourseName = validation.SanitizeString(req.CourseName)
	req.CourseType = validation.SanitizeString(req.CourseType)
	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	db := h.db.WithContext(c.UserContext())

	var semester model.CurriculumSemester
	if err := db.Select("id").First(&semester, semesterID).Error; err != nil {
		return h.missing(c, err, "Semester not found")
	}

	course := model.CurriculumCourse{
		SemesterID:     semesterID,
		CourseName:     req.CourseName,
		CourseType:     req.CourseType,
		TheoryHours:    req.TheoryHours,
		LabHours:       req.LabHours,
		TutorialHours:  req.TutorialHours,
		PracticalHours: req.PracticalHours,
		Credits:        *req.Credits,
		DisplayOrder:   common.IntOr(req.DisplayOrder, 0),
	}
	if err := db.Create(&course).Error; err != nil {
		return err
	}

	return response.Created(c, toCourseDetail(&course))
}

// UpdateCourse handles PUT /api/admin/programs/courses/:id
func (h *ProgramHandler) UpdateCourse(c *fiber.Ctx) error {
	courseID, err := common.ParamID(c.Params("id"))
	if err != nil {
		return response.BadRequest(c, "Invalid course ID")
	}

	db := h.db.WithContext(c.UserContext())

	var course model.CurriculumCourse
	if err := db.First(&course, courseID).Error; err != nil {
		return h.missing(c, err, "Course not found")
	}

	var req UpdateCourseRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	req.CourseName = validation.SanitizePtr(req.CourseName)
	req.CourseType = validation.SanitizePtr(req.CourseType)
	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	if req.CourseName != nil {
		course.CourseName = *req.CourseName
	}
	if req.CourseType != nil {
		course.CourseType = *req.CourseType
	}
	if req.TheoryHours != nil {
		course.TheoryHours = *req.TheoryHours
	}
	if req.LabHours != nil {
		course.LabHours = *req.LabHours
	}
	if req.TutorialHours != nil {
		course.TutorialHours = *req.TutorialHours
	}
	if req.PracticalHours != nil {
		course.PracticalHours = *req.PracticalHours
	}
	if req.Credits != nil {
		course.Credits = *req.Credits
	}
	if req.DisplayOrder != nil {
		course.DisplayOrder = *req.DisplayOrder
	}

	if err := db.Save(&course).Error; err != nil {
		return err
	}

	return response.SuccessWithMessage(c, "Course updated successfully", toCourseDetail(&course))
}

// DeleteCourse handles DELETE /api/admin/programs/courses/:id
func (h *ProgramHandler) DeleteCourse(c *fiber.Ctx) error {
	courseID, err := common.ParamID(c.Params("id"))
	if err != nil {
		return response.BadRequest(c, "Invalid course ID")
	}

	result := h.db.WithContext(c.UserContext()).Delete(&model.CurriculumCourse{}, courseID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return response.NotFound(c, "Course not found")
	}

	return response.SuccessWithMessage(c, "Course deleted successfully", nil)
}
