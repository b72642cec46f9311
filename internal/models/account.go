package models

// Student is a student account. The stored credential is a bcrypt hash and
// is never serialized.
type Student struct {
	ID           int64  `db:"id_estudiante" json:"id_estudiante"`
	Username     string `db:"usuario_estudiante" json:"usuario_estudiante"`
	PasswordHash string `db:"contrasena_estudiante" json:"-"`
}

// Teacher is a teacher account.
type Teacher struct {
	ID           int64  `db:"id_profesor" json:"id_profesor"`
	Username     string `db:"usuario_profesor" json:"usuario_profesor"`
	PasswordHash string `db:"contrasena_profesor" json:"-"`
}

// Account roles accepted by the authentication endpoint.
const (
	RoleStudent = "estudiante"
	RoleTeacher = "profesor"
)
