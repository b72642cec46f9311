package models

import "strconv"

// Subject represents one course section owned by a teacher. The column and
// JSON names keep the original Spanish wire contract.
type Subject struct {
	ID           int64  `db:"id_asignatura" json:"id_asignatura"`
	TeacherID    int64  `db:"id_profesor" json:"id_profesor"`
	Name         string `db:"nombre_asignatura" json:"nombre_asignatura"`
	ShortCode    string `db:"siglas_asignatura" json:"siglas_asignatura"`
	PrimaryColor string `db:"color_asignatura" json:"color_asignatura"`
	SectionColor string `db:"color_seccion_asignatura" json:"color_seccion_asignatura"`
	SectionLabel string `db:"seccion_asignatura" json:"seccion_asignatura"`
	Modality     string `db:"modalidad_asignatura" json:"modalidad_asignatura"`
}

// SubjectSummary is a subject joined with a student's attendance counts.
type SubjectSummary struct {
	Subject
	StudentUsername string  `db:"usuario_estudiante" json:"usuario_estudiante"`
	PresentCount    int     `db:"count_asistencias" json:"count_asistencias"`
	TotalCount      int     `db:"count_total_asistencias" json:"count_total_asistencias"`
	Percentage      float64 `db:"-" json:"porcentaje_asistencia"`
}

// ComputePercentage derives the attendance percentage from the counts.
// A student with no records scores 0, never a division fault.
func (s *SubjectSummary) ComputePercentage() {
	if s.TotalCount == 0 {
		s.Percentage = 0
		return
	}
	s.Percentage = float64(s.PresentCount) / float64(s.TotalCount) * 100
}

// ContrastTextColor picks black or white text for a hex background color
// using the perceived-brightness weights (299/587/114).
func ContrastTextColor(hexColor string) string {
	if len(hexColor) > 0 && hexColor[0] == '#' {
		hexColor = hexColor[1:]
	}
	if len(hexColor) != 6 {
		return "#000000"
	}
	r, errR := strconv.ParseInt(hexColor[0:2], 16, 32)
	g, errG := strconv.ParseInt(hexColor[2:4], 16, 32)
	b, errB := strconv.ParseInt(hexColor[4:6], 16, 32)
	if errR != nil || errG != nil || errB != nil {
		return "#000000"
	}
	brightness := (r*299 + g*587 + b*114) / 1000
	if brightness < 128 {
		return "#ffffff"
	}
	return "#000000"
}
