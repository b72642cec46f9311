package models

import "time"

// Presence values stored in the asistencia column.
const (
	PresenceAbsent  = 0
	PresencePresent = 1
)

// AttendanceRecord is one student's presence flag for one session.
// (id_clase, id_estudiante) is intentionally NOT unique: the automatic
// pre-population and scan flows tolerate duplicate rows.
type AttendanceRecord struct {
	ID        int64     `db:"id_asistencia" json:"id_asistencia"`
	SessionID int64     `db:"id_clase" json:"id_clase"`
	StudentID int64     `db:"id_estudiante" json:"id_estudiante"`
	Present   int       `db:"asistencia" json:"asistencia"`
	Date      time.Time `db:"fecha_asistencia" json:"fecha_asistencia"`
}

// StudentAttendanceRow joins a record with the owning student account.
type StudentAttendanceRow struct {
	AttendanceRecord
	StudentUsername string `db:"usuario_estudiante" json:"usuario_estudiante"`
}

// SubjectSessionAttendanceRow is the full Subject×Session×Attendance join
// backing the teacher overview and the roster export.
type SubjectSessionAttendanceRow struct {
	SubjectID    int64     `db:"id_asignatura" json:"id_asignatura"`
	TeacherID    int64     `db:"id_profesor" json:"id_profesor"`
	SubjectName  string    `db:"nombre_asignatura" json:"nombre_asignatura"`
	ShortCode    string    `db:"siglas_asignatura" json:"siglas_asignatura"`
	PrimaryColor string    `db:"color_asignatura" json:"color_asignatura"`
	SectionColor string    `db:"color_seccion_asignatura" json:"color_seccion_asignatura"`
	SectionLabel string    `db:"seccion_asignatura" json:"seccion_asignatura"`
	Modality     string    `db:"modalidad_asignatura" json:"modalidad_asignatura"`
	SessionID    int64     `db:"id_clase" json:"id_clase"`
	SessionDate  time.Time `db:"fecha_clase" json:"fecha_clase"`
	QRCode       string    `db:"codigoqr_clase" json:"codigoqr_clase"`
	RecordID     int64     `db:"id_asistencia" json:"id_asistencia"`
	StudentID    int64     `db:"id_estudiante" json:"id_estudiante"`
	Present      int       `db:"asistencia" json:"asistencia"`
	RecordDate   time.Time `db:"fecha_asistencia" json:"fecha_asistencia"`
}

// StudentID wraps a bare student id for roster listings.
type StudentID struct {
	ID int64 `db:"id_estudiante" json:"id_estudiante"`
}
