package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"github.com/asistapp/asistencia-api/internal/middleware"
	"github.com/asistapp/asistencia-api/internal/service"
	"github.com/asistapp/asistencia-api/pkg/config"
	"github.com/asistapp/asistencia-api/pkg/logger"
	corsmiddleware "github.com/asistapp/asistencia-api/pkg/middleware/cors"
	reqidmiddleware "github.com/asistapp/asistencia-api/pkg/middleware/requestid"
)

// Services bundles everything the router needs.
type Services struct {
	Subjects   *service.SubjectService
	Sessions   *service.SessionService
	Attendance *service.AttendanceService
	Accounts   *service.AccountService
	Exports    *service.ExportService
	Metrics    *service.MetricsService
}

// NewRouter assembles the gin engine with the full route table.
func NewRouter(cfg *config.Config, logr *zap.Logger, svcs Services) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	if svcs.Metrics != nil {
		r.Use(middleware.Metrics(svcs.Metrics))
	}

	subjects := NewSubjectHandler(svcs.Subjects)
	sessions := NewSessionHandler(svcs.Sessions)
	attendance := NewAttendanceHandler(svcs.Attendance)
	accounts := NewAccountHandler(svcs.Accounts)
	exports := NewExportHandler(svcs.Exports)

	r.GET("/asignaturas", subjects.List)
	r.GET("/asignaturas/profesor/:id", subjects.ListByTeacherID)
	r.GET("/asignaturas/profesor/usuario/:usuario", subjects.ListByTeacherUsername)
	r.GET("/asignaturas/estudiante/:usuario", subjects.StudentSummaries)
	r.GET("/asignatura/:id", subjects.Get)
	r.GET("/asignatura/:id/exportar", exports.Roster)
	r.GET("/asignatura/:id/:usuario", subjects.StudentSubjectSummary)
	r.POST("/insertAsignatura", subjects.Create)
	r.DELETE("/deleteAsignatura/:id", subjects.Delete)

	r.GET("/clases", sessions.List)
	r.GET("/clases/asignatura/:id", sessions.ListBySubject)
	r.GET("/clases/fecha/:fecha", sessions.ListByDate)
	r.GET("/clase/codigoqr", sessions.QRCode)
	r.GET("/getClaseInscripcion/:id_asignatura", sessions.EnrollmentSession)
	r.POST("/insertClase", sessions.Create)
	r.POST("/generarClase", sessions.Generate)
	r.DELETE("/deleteClases/:id_asignatura", sessions.DeleteBySubject)

	r.POST("/insertAsistencia", attendance.Record)
	r.POST("/insertAsistencia/automatica", attendance.RecordAutomatic)
	r.PUT("/actualizar-asistencia", attendance.Update)
	r.GET("/asistencia/estudiante/:usuario", attendance.ListByStudentUsername)
	r.GET("/asistencia/:id_estudiante/:id_clase", attendance.ListByStudentAndSession)
	r.GET("/getEstudiantesAsignatura/:id_asignatura", attendance.SubjectStudents)
	r.GET("/asignatura-clases-asistencia", attendance.SubjectOverview)
	r.POST("/verificarQR", attendance.VerifyScan)

	r.GET("/estudiantes", accounts.ListStudents)
	r.GET("/estudiantes/usuario/:usuario", accounts.GetStudent)
	r.GET("/profesores", accounts.ListTeachers)
	r.GET("/profesores/usuario/:usuario", accounts.GetTeacher)
	r.POST("/insertar-estudiante", accounts.CreateStudent)
	r.POST("/insertar-profesor", accounts.CreateTeacher)
	r.POST("/autenticar", accounts.Authenticate)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/ready", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
	if svcs.Metrics != nil {
		r.GET("/metrics", NewMetricsHandler(svcs.Metrics).Expose)
	}
	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
