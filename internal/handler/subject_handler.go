package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/asistapp/asistencia-api/internal/service"
	appErrors "github.com/asistapp/asistencia-api/pkg/errors"
	"github.com/asistapp/asistencia-api/pkg/response"
)

// SubjectHandler exposes subject endpoints.
type SubjectHandler struct {
	subjects *service.SubjectService
}

// NewSubjectHandler constructs SubjectHandler.
func NewSubjectHandler(subjects *service.SubjectService) *SubjectHandler {
	return &SubjectHandler{subjects: subjects}
}

// List godoc
// @Summary List subjects
// @Tags Asignaturas
// @Produce json
// @Success 200 {array} models.Subject
// @Router /asignaturas [get]
func (h *SubjectHandler) List(c *gin.Context) {
	subjects, err := h.subjects.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, subjects)
}

// Get godoc
// @Summary Get one subject
// @Tags Asignaturas
// @Produce json
// @Param id path int true "Subject id"
// @Success 200 {object} models.Subject
// @Router /asignatura/{id} [get]
func (h *SubjectHandler) Get(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	subject, err := h.subjects.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, subject)
}

// ListByTeacherID godoc
// @Summary List subjects owned by a teacher id
// @Tags Asignaturas
// @Produce json
// @Param id path int true "Teacher id"
// @Success 200 {array} models.Subject
// @Router /asignaturas/profesor/{id} [get]
func (h *SubjectHandler) ListByTeacherID(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	subjects, err := h.subjects.ListByTeacherID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, subjects)
}

// ListByTeacherUsername godoc
// @Summary List subjects owned by a teacher account
// @Tags Asignaturas
// @Produce json
// @Param usuario path string true "Teacher username"
// @Success 200 {array} models.Subject
// @Router /asignaturas/profesor/usuario/{usuario} [get]
func (h *SubjectHandler) ListByTeacherUsername(c *gin.Context) {
	username := c.Param("usuario")
	if username == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "missing usuario"))
		return
	}
	subjects, err := h.subjects.ListByTeacherUsername(c.Request.Context(), username)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, subjects)
}

// StudentSummaries godoc
// @Summary List a student's subjects with attendance percentages
// @Tags Asignaturas
// @Produce json
// @Param usuario path string true "Student username"
// @Success 200 {array} models.SubjectSummary
// @Router /asignaturas/estudiante/{usuario} [get]
func (h *SubjectHandler) StudentSummaries(c *gin.Context) {
	username := c.Param("usuario")
	summaries, err := h.subjects.StudentSummaries(c.Request.Context(), username)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, summaries)
}

// StudentSubjectSummary godoc
// @Summary One subject's attendance summary for a student
// @Tags Asignaturas
// @Produce json
// @Param id path int true "Subject id"
// @Param usuario path string true "Student username"
// @Success 200 {array} models.SubjectSummary
// @Router /asignatura/{id}/{usuario} [get]
func (h *SubjectHandler) StudentSubjectSummary(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	username := c.Param("usuario")
	summary, err := h.subjects.StudentSubjectSummary(c.Request.Context(), id, username)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, summary)
}

// Create godoc
// @Summary Create a subject with its enrollment session
// @Tags Asignaturas
// @Accept json
// @Produce json
// @Param subject body service.CreateSubjectRequest true "Subject"
// @Success 201 {object} map[string]interface{}
// @Router /insertAsignatura [post]
func (h *SubjectHandler) Create(c *gin.Context) {
	var req service.CreateSubjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid subject payload"))
		return
	}
	result, err := h.subjects.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, http.StatusCreated, "Asignatura creada correctamente", gin.H{
		"id_asignatura":        result.SubjectID,
		"id_clase_inscripcion": result.EnrollmentSessionID,
	})
}

// Delete godoc
// @Summary Delete a subject and everything under it
// @Tags Asignaturas
// @Produce json
// @Param id path int true "Subject id"
// @Success 200 {object} map[string]interface{}
// @Router /deleteAsignatura/{id} [delete]
func (h *SubjectHandler) Delete(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	if err := h.subjects.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, http.StatusOK, "Asignatura eliminada correctamente", nil)
}
