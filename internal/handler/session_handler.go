package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/asistapp/asistencia-api/internal/service"
	appErrors "github.com/asistapp/asistencia-api/pkg/errors"
	"github.com/asistapp/asistencia-api/pkg/response"
)

// SessionHandler exposes class-session endpoints.
type SessionHandler struct {
	sessions *service.SessionService
}

// NewSessionHandler constructs SessionHandler.
func NewSessionHandler(sessions *service.SessionService) *SessionHandler {
	return &SessionHandler{sessions: sessions}
}

// List godoc
// @Summary List sessions
// @Tags Clases
// @Produce json
// @Success 200 {array} models.Session
// @Router /clases [get]
func (h *SessionHandler) List(c *gin.Context) {
	sessions, err := h.sessions.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, sessions)
}

// ListBySubject godoc
// @Summary List the sessions of a subject
// @Tags Clases
// @Produce json
// @Param id path int true "Subject id"
// @Success 200 {array} models.Session
// @Router /clases/asignatura/{id} [get]
func (h *SessionHandler) ListBySubject(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	sessions, err := h.sessions.ListBySubject(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, sessions)
}

// ListByDate godoc
// @Summary List the sessions held on a date
// @Tags Clases
// @Produce json
// @Param fecha path string true "Date (YYYY-MM-DD)"
// @Success 200 {array} models.Session
// @Router /clases/fecha/{fecha} [get]
func (h *SessionHandler) ListByDate(c *gin.Context) {
	sessions, err := h.sessions.ListByDate(c.Request.Context(), c.Param("fecha"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, sessions)
}

// QRCode godoc
// @Summary QR payload of the session matching subject and date
// @Tags Clases
// @Produce json
// @Param id_asignatura query int true "Subject id"
// @Param fecha_clase query string true "Date (YYYY-MM-DD)"
// @Success 200 {object} map[string]string
// @Router /clase/codigoqr [get]
func (h *SessionHandler) QRCode(c *gin.Context) {
	subjectID, err := queryID(c, "id_asignatura")
	if err != nil {
		response.Error(c, err)
		return
	}
	rawDate := c.Query("fecha_clase")
	if rawDate == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "missing fecha_clase"))
		return
	}
	payload, err := h.sessions.QRCode(c.Request.Context(), subjectID, rawDate)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"codigoqr_clase": payload})
}

// EnrollmentSession godoc
// @Summary Session ids carrying the enrollment sentinel for a subject
// @Tags Clases
// @Produce json
// @Param id_asignatura path int true "Subject id"
// @Success 200 {array} models.SessionRef
// @Router /getClaseInscripcion/{id_asignatura} [get]
func (h *SessionHandler) EnrollmentSession(c *gin.Context) {
	id, err := pathID(c, "id_asignatura")
	if err != nil {
		response.Error(c, err)
		return
	}
	refs, err := h.sessions.EnrollmentSessions(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, refs)
}

// Create godoc
// @Summary Create a session with a client-supplied QR payload
// @Tags Clases
// @Accept json
// @Produce json
// @Param session body service.CreateSessionRequest true "Session"
// @Success 201 {object} map[string]interface{}
// @Router /insertClase [post]
func (h *SessionHandler) Create(c *gin.Context) {
	var req service.CreateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid session payload"))
		return
	}
	session, err := h.sessions.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, http.StatusCreated, "Clase creada correctamente", gin.H{"id": session.ID})
}

// DeleteBySubject godoc
// @Summary Delete every session of a subject
// @Tags Clases
// @Produce json
// @Param id_asignatura path int true "Subject id"
// @Success 200 {object} map[string]interface{}
// @Router /deleteClases/{id_asignatura} [delete]
func (h *SessionHandler) DeleteBySubject(c *gin.Context) {
	id, err := pathID(c, "id_asignatura")
	if err != nil {
		response.Error(c, err)
		return
	}
	deleted, err := h.sessions.DeleteBySubject(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, http.StatusOK, "Clases eliminadas correctamente", gin.H{"eliminadas": deleted})
}

// Generate godoc
// @Summary Create a session with a server-generated QR and pre-populated roster
// @Tags Clases
// @Accept json
// @Produce json
// @Param session body service.GenerateSessionRequest true "Session"
// @Success 201 {object} map[string]interface{}
// @Router /generarClase [post]
func (h *SessionHandler) Generate(c *gin.Context) {
	var req service.GenerateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid session payload"))
		return
	}
	result, err := h.sessions.Generate(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, http.StatusCreated, "Clase generada correctamente", gin.H{
		"id":                      result.SessionID,
		"codigoqr_clase":          result.QRCode,
		"estudiantes_prellenados": result.RosterInserted,
	})
}
