package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/asistapp/asistencia-api/internal/service"
	appErrors "github.com/asistapp/asistencia-api/pkg/errors"
	"github.com/asistapp/asistencia-api/pkg/response"
)

// AccountHandler exposes student and teacher account endpoints.
type AccountHandler struct {
	accounts *service.AccountService
}

// NewAccountHandler constructs AccountHandler.
func NewAccountHandler(accounts *service.AccountService) *AccountHandler {
	return &AccountHandler{accounts: accounts}
}

// ListStudents godoc
// @Summary List student accounts
// @Tags Cuentas
// @Produce json
// @Success 200 {array} models.Student
// @Router /estudiantes [get]
func (h *AccountHandler) ListStudents(c *gin.Context) {
	students, err := h.accounts.ListStudents(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, students)
}

// ListTeachers godoc
// @Summary List teacher accounts
// @Tags Cuentas
// @Produce json
// @Success 200 {array} models.Teacher
// @Router /profesores [get]
func (h *AccountHandler) ListTeachers(c *gin.Context) {
	teachers, err := h.accounts.ListTeachers(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, teachers)
}

// GetStudent godoc
// @Summary Student account by username
// @Tags Cuentas
// @Produce json
// @Param usuario path string true "Student username"
// @Success 200 {object} models.Student
// @Router /estudiantes/usuario/{usuario} [get]
func (h *AccountHandler) GetStudent(c *gin.Context) {
	student, err := h.accounts.GetStudent(c.Request.Context(), c.Param("usuario"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, student)
}

// GetTeacher godoc
// @Summary Teacher account by username
// @Tags Cuentas
// @Produce json
// @Param usuario path string true "Teacher username"
// @Success 200 {object} models.Teacher
// @Router /profesores/usuario/{usuario} [get]
func (h *AccountHandler) GetTeacher(c *gin.Context) {
	teacher, err := h.accounts.GetTeacher(c.Request.Context(), c.Param("usuario"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, teacher)
}

// CreateStudent godoc
// @Summary Register a student account
// @Tags Cuentas
// @Accept json
// @Produce json
// @Param student body service.CreateStudentRequest true "Student"
// @Success 201 {object} map[string]interface{}
// @Router /insertar-estudiante [post]
func (h *AccountHandler) CreateStudent(c *gin.Context) {
	var req service.CreateStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid student payload"))
		return
	}
	student, err := h.accounts.CreateStudent(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, http.StatusCreated, "Estudiante registrado correctamente", gin.H{"id_estudiante": student.ID})
}

// CreateTeacher godoc
// @Summary Register a teacher account
// @Tags Cuentas
// @Accept json
// @Produce json
// @Param teacher body service.CreateTeacherRequest true "Teacher"
// @Success 201 {object} map[string]interface{}
// @Router /insertar-profesor [post]
func (h *AccountHandler) CreateTeacher(c *gin.Context) {
	var req service.CreateTeacherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid teacher payload"))
		return
	}
	teacher, err := h.accounts.CreateTeacher(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, http.StatusCreated, "Profesor registrado correctamente", gin.H{"id_profesor": teacher.ID})
}

// Authenticate godoc
// @Summary Verify a credential pair
// @Tags Cuentas
// @Accept json
// @Produce json
// @Param credentials body service.AuthenticateRequest true "Credentials"
// @Success 200 {object} service.AuthenticatedAccount
// @Failure 401 {object} map[string]interface{}
// @Router /autenticar [post]
func (h *AccountHandler) Authenticate(c *gin.Context) {
	var req service.AuthenticateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid credentials payload"))
		return
	}
	account, err := h.accounts.Authenticate(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, account)
}
