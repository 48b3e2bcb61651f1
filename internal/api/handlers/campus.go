package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/gabai/gabai-backend/internal/models"
	"github.com/gabai/gabai-backend/internal/repository"
)

// CampusHandlers groups the campus entity CRUD endpoints backing the
// public browsing pages and the admin screens. A failed write surfaces
// to the caller and leaves no partial mutation; the repositories are
// single-statement operations.
type CampusHandlers struct {
	departments  repository.DepartmentRepository
	courses      repository.CourseRepository
	scholarships repository.ScholarshipRepository
	faculty      repository.FacultyRepository
	mapLocations repository.MapLocationRepository
}

// NewCampusHandlers creates the campus CRUD handler group.
func NewCampusHandlers(
	departments repository.DepartmentRepository,
	courses repository.CourseRepository,
	scholarships repository.ScholarshipRepository,
	faculty repository.FacultyRepository,
	mapLocations repository.MapLocationRepository,
) *CampusHandlers {
	return &CampusHandlers{
		departments:  departments,
		courses:      courses,
		scholarships: scholarships,
		faculty:      faculty,
		mapLocations: mapLocations,
	}
}

func paramID(c *fiber.Ctx) (int, error) {
	return strconv.Atoi(c.Params("id"))
}

// --- Departments ---

func (h *CampusHandlers) ListDepartments(c *fiber.Ctx) error {
	depts, err := h.departments.List(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"departments": depts})
}

func (h *CampusHandlers) GetDepartment(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid id"})
	}
	dept, err := h.departments.Get(c.Context(), id)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Department not found"})
	}
	return c.JSON(dept)
}

func (h *CampusHandlers) CreateDepartment(c *fiber.Ctx) error {
	var dept models.Department
	if err := c.BodyParser(&dept); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if err := h.departments.Create(c.Context(), &dept); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(dept)
}

func (h *CampusHandlers) UpdateDepartment(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid id"})
	}
	var dept models.Department
	if err := c.BodyParser(&dept); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	dept.ID = id
	if err := h.departments.Update(c.Context(), &dept); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(dept)
}

func (h *CampusHandlers) DeleteDepartment(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid id"})
	}
	if err := h.departments.Delete(c.Context(), id); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"message": "Department deleted"})
}

// --- Courses ---

func (h *CampusHandlers) ListCourses(c *fiber.Ctx) error {
	courses, err := h.courses.List(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"courses": courses})
}

func (h *CampusHandlers) GetCourse(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid id"})
	}
	course, err := h.courses.Get(c.Context(), id)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Course not found"})
	}
	return c.JSON(course)
}

func (h *CampusHandlers) CreateCourse(c *fiber.Ctx) error {
	var course models.Course
	if err := c.BodyParser(&course); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if err := h.courses.Create(c.Context(), &course); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(course)
}

func (h *CampusHandlers) UpdateCourse(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid id"})
	}
	var course models.Course
	if err := c.BodyParser(&course); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	course.ID = id
	if err := h.courses.Update(c.Context(), &course); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(course)
}

func (h *CampusHandlers) DeleteCourse(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid id"})
	}
	if err := h.courses.Delete(c.Context(), id); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"message": "Course deleted"})
}

// --- Scholarships ---

func (h *CampusHandlers) ListScholarships(c *fiber.Ctx) error {
	schs, err := h.scholarships.List(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"scholarships": schs})
}

func (h *CampusHandlers) GetScholarship(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid id"})
	}
	sch, err := h.scholarships.Get(c.Context(), id)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Scholarship not found"})
	}
	return c.JSON(sch)
}

func (h *CampusHandlers) CreateScholarship(c *fiber.Ctx) error {
	var sch models.Scholarship
	if err := c.BodyParser(&sch); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if err := h.scholarships.Create(c.Context(), &sch); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(sch)
}

func (h *CampusHandlers) UpdateScholarship(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid id"})
	}
	var sch models.Scholarship
	if err := c.BodyParser(&sch); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	sch.ID = id
	if err := h.scholarships.Update(c.Context(), &sch); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(sch)
}

func (h *CampusHandlers) DeleteScholarship(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid id"})
	}
	if err := h.scholarships.Delete(c.Context(), id); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"message": "Scholarship deleted"})
}

// --- Faculty ---

func (h *CampusHandlers) ListFaculty(c *fiber.Ctx) error {
	faculty, err := h.faculty.List(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"faculty": faculty})
}

func (h *CampusHandlers) GetFaculty(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid id"})
	}
	f, err := h.faculty.Get(c.Context(), id)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Faculty member not found"})
	}
	return c.JSON(f)
}

func (h *CampusHandlers) CreateFaculty(c *fiber.Ctx) error {
	var f models.Faculty
	if err := c.BodyParser(&f); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if err := h.faculty.Create(c.Context(), &f); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(f)
}

func (h *CampusHandlers) UpdateFaculty(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid id"})
	}
	var f models.Faculty
	if err := c.BodyParser(&f); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	f.ID = id
	if err := h.faculty.Update(c.Context(), &f); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(f)
}

func (h *CampusHandlers) DeleteFaculty(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid id"})
	}
	if err := h.faculty.Delete(c.Context(), id); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"message": "Faculty member deleted"})
}

// --- Map locations ---

func (h *CampusHandlers) ListMapLocations(c *fiber.Ctx) error {
	locs, err := h.mapLocations.List(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"locations": locs})
}

func (h *CampusHandlers) GetMapLocation(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid id"})
	}
	loc, err := h.mapLocations.Get(c.Context(), id)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Location not found"})
	}
	return c.JSON(loc)
}

func (h *CampusHandlers) CreateMapLocation(c *fiber.Ctx) error {
	var loc models.MapLocation
	if err := c.BodyParser(&loc); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if err := h.mapLocations.Create(c.Context(), &loc); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(loc)
}

func (h *CampusHandlers) UpdateMapLocation(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid id"})
	}
	var loc models.MapLocation
	if err := c.BodyParser(&loc); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	loc.ID = id
	if err := h.mapLocations.Update(c.Context(), &loc); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(loc)
}

func (h *CampusHandlers) DeleteMapLocation(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid id"})
	}
	if err := h.mapLocations.Delete(c.Context(), id); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"message": "Location deleted"})
}
