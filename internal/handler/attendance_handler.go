package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/asistapp/asistencia-api/internal/service"
	appErrors "github.com/asistapp/asistencia-api/pkg/errors"
	"github.com/asistapp/asistencia-api/pkg/response"
)

// AttendanceHandler exposes attendance endpoints.
type AttendanceHandler struct {
	attendance *service.AttendanceService
}

// NewAttendanceHandler constructs AttendanceHandler.
func NewAttendanceHandler(attendance *service.AttendanceService) *AttendanceHandler {
	return &AttendanceHandler{attendance: attendance}
}

// Record godoc
// @Summary Record a manual check-in (presente forced to 1)
// @Tags Asistencia
// @Accept json
// @Produce json
// @Param record body service.RecordAttendanceRequest true "Attendance"
// @Success 201 {object} map[string]interface{}
// @Router /insertAsistencia [post]
func (h *AttendanceHandler) Record(c *gin.Context) {
	var req service.RecordAttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid attendance payload"))
		return
	}
	record, err := h.attendance.Record(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, http.StatusCreated, "Asistencia registrada correctamente", gin.H{"id_asistencia": record.ID})
}

// RecordAutomatic godoc
// @Summary Record a roster pre-population row (presente forced to 0)
// @Tags Asistencia
// @Accept json
// @Produce json
// @Param record body service.RecordAttendanceRequest true "Attendance"
// @Success 200 {object} map[string]interface{}
// @Router /insertAsistencia/automatica [post]
func (h *AttendanceHandler) RecordAutomatic(c *gin.Context) {
	var req service.RecordAttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid attendance payload"))
		return
	}
	record, err := h.attendance.RecordAutomatic(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, http.StatusOK, "Asistencia automatica registrada correctamente", gin.H{"id_asistencia": record.ID})
}

// Update godoc
// @Summary Flip an existing record to presente=1
// @Tags Asistencia
// @Accept json
// @Produce json
// @Param record body service.UpdateAttendanceRequest true "Attendance triple"
// @Success 200 {object} map[string]interface{}
// @Router /actualizar-asistencia [put]
func (h *AttendanceHandler) Update(c *gin.Context) {
	var req service.UpdateAttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid attendance payload"))
		return
	}
	updated, err := h.attendance.Update(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, http.StatusOK, "Asistencia actualizada correctamente", gin.H{"actualizada": updated})
}

// ListByStudentAndSession godoc
// @Summary Records for one student in one session
// @Tags Asistencia
// @Produce json
// @Param id_estudiante path int true "Student id"
// @Param id_clase path int true "Session id"
// @Success 200 {array} models.AttendanceRecord
// @Router /asistencia/{id_estudiante}/{id_clase} [get]
func (h *AttendanceHandler) ListByStudentAndSession(c *gin.Context) {
	studentID, err := pathID(c, "id_estudiante")
	if err != nil {
		response.Error(c, err)
		return
	}
	sessionID, err := pathID(c, "id_clase")
	if err != nil {
		response.Error(c, err)
		return
	}
	records, err := h.attendance.ListByStudentAndSession(c.Request.Context(), studentID, sessionID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, records)
}

// ListByStudentUsername godoc
// @Summary Records of a student resolved by account name
// @Tags Asistencia
// @Produce json
// @Param usuario path string true "Student username"
// @Success 200 {array} models.StudentAttendanceRow
// @Router /asistencia/estudiante/{usuario} [get]
func (h *AttendanceHandler) ListByStudentUsername(c *gin.Context) {
	rows, err := h.attendance.ListByStudentUsername(c.Request.Context(), c.Param("usuario"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, rows)
}

// SubjectStudents godoc
// @Summary Distinct students with any record under a subject
// @Tags Asistencia
// @Produce json
// @Param id_asignatura path int true "Subject id"
// @Success 200 {array} models.StudentID
// @Router /getEstudiantesAsignatura/{id_asignatura} [get]
func (h *AttendanceHandler) SubjectStudents(c *gin.Context) {
	id, err := pathID(c, "id_asignatura")
	if err != nil {
		response.Error(c, err)
		return
	}
	ids, err := h.attendance.SubjectStudents(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, ids)
}

// SubjectOverview godoc
// @Summary Full subject, session and attendance join for a teacher's subject
// @Tags Asistencia
// @Produce json
// @Param idProfesor query int true "Teacher id"
// @Param idAsignatura query int true "Subject id"
// @Success 200 {array} models.SubjectSessionAttendanceRow
// @Router /asignatura-clases-asistencia [get]
func (h *AttendanceHandler) SubjectOverview(c *gin.Context) {
	teacherID, err := queryID(c, "idProfesor")
	if err != nil {
		response.Error(c, err)
		return
	}
	subjectID, err := queryID(c, "idAsignatura")
	if err != nil {
		response.Error(c, err)
		return
	}
	rows, err := h.attendance.SubjectOverview(c.Request.Context(), teacherID, subjectID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, rows)
}

// VerifyScan godoc
// @Summary Verify a scanned QR payload and mark the student present
// @Tags Asistencia
// @Accept json
// @Produce json
// @Param scan body service.VerifyScanRequest true "Scan"
// @Success 200 {object} map[string]interface{}
// @Failure 409 {object} map[string]interface{}
// @Router /verificarQR [post]
func (h *AttendanceHandler) VerifyScan(c *gin.Context) {
	var req service.VerifyScanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid scan payload"))
		return
	}
	result, err := h.attendance.VerifyScan(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, http.StatusOK, "Asistencia verificada correctamente", gin.H{
		"id_clase":    result.SessionID,
		"actualizada": result.Updated,
	})
}
