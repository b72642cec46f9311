package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/asistapp/asistencia-api/internal/service"
	"github.com/asistapp/asistencia-api/pkg/response"
)

// ExportHandler exposes the roster export endpoint.
type ExportHandler struct {
	exports *service.ExportService
}

// NewExportHandler constructs ExportHandler.
func NewExportHandler(exports *service.ExportService) *ExportHandler {
	return &ExportHandler{exports: exports}
}

// Roster godoc
// @Summary Export a subject's attendance roster as CSV or PDF
// @Tags Exportar
// @Produce octet-stream
// @Param id path int true "Subject id"
// @Param formato query string true "csv or pdf"
// @Param idProfesor query int true "Teacher id"
// @Success 200 {file} file
// @Router /asignatura/{id}/exportar [get]
func (h *ExportHandler) Roster(c *gin.Context) {
	subjectID, err := pathID(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	teacherID, err := queryID(c, "idProfesor")
	if err != nil {
		response.Error(c, err)
		return
	}
	result, err := h.exports.RenderRoster(c.Request.Context(), teacherID, subjectID, c.Query("formato"))
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+result.Filename+`"`)
	c.Data(http.StatusOK, result.ContentType, result.Content)
}
