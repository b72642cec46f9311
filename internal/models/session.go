package models

import "time"

// EnrollmentQRCode is the sentinel payload of the bootstrap session created
// with every new subject. It never takes part in scan-based attendance; it
// is the target of manual roster inserts.
const EnrollmentQRCode = "Clase de inscripción"

// DateLayout is the calendar format used across the wire (YYYY-MM-DD).
const DateLayout = "2006-01-02"

// Session is one dated meeting of a subject, carrying its QR payload.
type Session struct {
	ID        int64     `db:"id_clase" json:"id_clase"`
	SubjectID int64     `db:"id_asignatura" json:"id_asignatura"`
	Date      time.Time `db:"fecha_clase" json:"fecha_clase"`
	QRCode    string    `db:"codigoqr_clase" json:"codigoqr_clase"`
}

// IsEnrollment reports whether the session is the enrollment bootstrap row.
func (s Session) IsEnrollment() bool {
	return s.QRCode == EnrollmentQRCode
}

// SessionRef carries only a session id, as returned by the enrollment lookup.
type SessionRef struct {
	ID int64 `db:"id_clase" json:"id_clase"`
}
