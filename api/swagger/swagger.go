package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Asistencia API",
        "description": "Registro de asistencia por escaneo de codigos QR",
        "version": "1.0.0"
    },
    "basePath": "/",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Asignaturas", "description": "Gestion de asignaturas"},
        {"name": "Clases", "description": "Sesiones de clase y codigos QR"},
        {"name": "Asistencia", "description": "Registros de asistencia"},
        {"name": "Cuentas", "description": "Cuentas de estudiantes y profesores"},
        {"name": "Exportar", "description": "Exportacion de listados"}
    ],
    "paths": {
        "/health": {
            "get": {
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/ready": {
            "get": {
                "summary": "Readiness check",
                "responses": {
                    "200": {"description": "Ready"}
                }
            }
        },
        "/asignaturas": {
            "get": {
                "tags": ["Asignaturas"],
                "summary": "Listar asignaturas",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/Asignatura"}}}
                }
            }
        },
        "/asignatura/{id}": {
            "get": {
                "tags": ["Asignaturas"],
                "summary": "Obtener una asignatura",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/Asignatura"}},
                    "404": {"description": "No encontrada", "schema": {"$ref": "#/definitions/APIError"}}
                }
            }
        },
        "/asignaturas/profesor/{id}": {
            "get": {
                "tags": ["Asignaturas"],
                "summary": "Asignaturas de un profesor por id",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/Asignatura"}}}
                }
            }
        },
        "/asignaturas/profesor/usuario/{usuario}": {
            "get": {
                "tags": ["Asignaturas"],
                "summary": "Asignaturas de un profesor por usuario",
                "parameters": [
                    {"name": "usuario", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/Asignatura"}}}
                }
            }
        },
        "/asignaturas/estudiante/{usuario}": {
            "get": {
                "tags": ["Asignaturas"],
                "summary": "Asignaturas de un estudiante con porcentaje de asistencia",
                "parameters": [
                    {"name": "usuario", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Sin registros", "schema": {"$ref": "#/definitions/APIError"}}
                }
            }
        },
        "/asignatura/{id}/{usuario}": {
            "get": {
                "tags": ["Asignaturas"],
                "summary": "Resumen de asistencia de un estudiante en una asignatura",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"},
                    {"name": "usuario", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/insertAsignatura": {
            "post": {
                "tags": ["Asignaturas"],
                "summary": "Crear asignatura con su clase de inscripcion",
                "parameters": [
                    {"name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/Asignatura"}}
                ],
                "responses": {
                    "201": {"description": "Creada"},
                    "400": {"description": "Datos invalidos", "schema": {"$ref": "#/definitions/APIError"}}
                }
            }
        },
        "/deleteAsignatura/{id}": {
            "delete": {
                "tags": ["Asignaturas"],
                "summary": "Eliminar asignatura, clases y asistencia en cascada",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "Eliminada"},
                    "404": {"description": "No encontrada", "schema": {"$ref": "#/definitions/APIError"}}
                }
            }
        },
        "/clases": {
            "get": {
                "tags": ["Clases"],
                "summary": "Listar clases",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/Clase"}}}
                }
            }
        },
        "/clases/asignatura/{id}": {
            "get": {
                "tags": ["Clases"],
                "summary": "Clases de una asignatura",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/Clase"}}},
                    "404": {"description": "Sin clases", "schema": {"$ref": "#/definitions/APIError"}}
                }
            }
        },
        "/clases/fecha/{fecha}": {
            "get": {
                "tags": ["Clases"],
                "summary": "Clases de una fecha (YYYY-MM-DD)",
                "parameters": [
                    {"name": "fecha", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "400": {"description": "Fecha invalida", "schema": {"$ref": "#/definitions/APIError"}}
                }
            }
        },
        "/clase/codigoqr": {
            "get": {
                "tags": ["Clases"],
                "summary": "Codigo QR de la clase de una asignatura en una fecha",
                "parameters": [
                    {"name": "id_asignatura", "in": "query", "required": true, "type": "integer"},
                    {"name": "fecha_clase", "in": "query", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Sin clase", "schema": {"$ref": "#/definitions/APIError"}}
                }
            }
        },
        "/getClaseInscripcion/{id_asignatura}": {
            "get": {
                "tags": ["Clases"],
                "summary": "Clase de inscripcion de una asignatura",
                "parameters": [
                    {"name": "id_asignatura", "in": "path", "required": true, "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Sin clase de inscripcion", "schema": {"$ref": "#/definitions/APIError"}}
                }
            }
        },
        "/insertClase": {
            "post": {
                "tags": ["Clases"],
                "summary": "Crear clase con codigo QR del cliente",
                "parameters": [
                    {"name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/Clase"}}
                ],
                "responses": {
                    "201": {"description": "Creada"},
                    "400": {"description": "Datos invalidos", "schema": {"$ref": "#/definitions/APIError"}}
                }
            }
        },
        "/generarClase": {
            "post": {
                "tags": ["Clases"],
                "summary": "Generar clase con codigo QR del servidor y lista prellenada",
                "responses": {
                    "201": {"description": "Creada"}
                }
            }
        },
        "/deleteClases/{id_asignatura}": {
            "delete": {
                "tags": ["Clases"],
                "summary": "Eliminar las clases de una asignatura",
                "parameters": [
                    {"name": "id_asignatura", "in": "path", "required": true, "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "Eliminadas"}
                }
            }
        },
        "/insertAsistencia": {
            "post": {
                "tags": ["Asistencia"],
                "summary": "Registrar asistencia manual (presente)",
                "responses": {
                    "201": {"description": "Registrada"},
                    "400": {"description": "Datos invalidos", "schema": {"$ref": "#/definitions/APIError"}}
                }
            }
        },
        "/insertAsistencia/automatica": {
            "post": {
                "tags": ["Asistencia"],
                "summary": "Registrar fila automatica (ausente)",
                "responses": {
                    "200": {"description": "Registrada"}
                }
            }
        },
        "/actualizar-asistencia": {
            "put": {
                "tags": ["Asistencia"],
                "summary": "Marcar presente una fila existente",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/asistencia/{id_estudiante}/{id_clase}": {
            "get": {
                "tags": ["Asistencia"],
                "summary": "Registros de un estudiante en una clase",
                "parameters": [
                    {"name": "id_estudiante", "in": "path", "required": true, "type": "integer"},
                    {"name": "id_clase", "in": "path", "required": true, "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/asistencia/estudiante/{usuario}": {
            "get": {
                "tags": ["Asistencia"],
                "summary": "Registros de un estudiante por usuario",
                "parameters": [
                    {"name": "usuario", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Sin registros", "schema": {"$ref": "#/definitions/APIError"}}
                }
            }
        },
        "/getEstudiantesAsignatura/{id_asignatura}": {
            "get": {
                "tags": ["Asistencia"],
                "summary": "Estudiantes con registros en una asignatura",
                "parameters": [
                    {"name": "id_asignatura", "in": "path", "required": true, "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/asignatura-clases-asistencia": {
            "get": {
                "tags": ["Asistencia"],
                "summary": "Asignatura, clases y asistencia de un profesor",
                "parameters": [
                    {"name": "idProfesor", "in": "query", "required": true, "type": "integer"},
                    {"name": "idAsignatura", "in": "query", "required": true, "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "400": {"description": "Parametros faltantes", "schema": {"$ref": "#/definitions/APIError"}}
                }
            }
        },
        "/verificarQR": {
            "post": {
                "tags": ["Asistencia"],
                "summary": "Verificar codigo QR escaneado y marcar presente",
                "responses": {
                    "200": {"description": "Codigo verificado"},
                    "409": {"description": "Codigo no coincide", "schema": {"$ref": "#/definitions/APIError"}}
                }
            }
        },
        "/estudiantes": {
            "get": {
                "tags": ["Cuentas"],
                "summary": "Listar estudiantes",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/profesores": {
            "get": {
                "tags": ["Cuentas"],
                "summary": "Listar profesores",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/estudiantes/usuario/{usuario}": {
            "get": {
                "tags": ["Cuentas"],
                "summary": "Estudiante por usuario",
                "parameters": [
                    {"name": "usuario", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "No encontrado", "schema": {"$ref": "#/definitions/APIError"}}
                }
            }
        },
        "/profesores/usuario/{usuario}": {
            "get": {
                "tags": ["Cuentas"],
                "summary": "Profesor por usuario",
                "parameters": [
                    {"name": "usuario", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "No encontrado", "schema": {"$ref": "#/definitions/APIError"}}
                }
            }
        },
        "/insertar-estudiante": {
            "post": {
                "tags": ["Cuentas"],
                "summary": "Registrar estudiante",
                "responses": {
                    "201": {"description": "Registrado"},
                    "409": {"description": "Usuario en uso", "schema": {"$ref": "#/definitions/APIError"}}
                }
            }
        },
        "/insertar-profesor": {
            "post": {
                "tags": ["Cuentas"],
                "summary": "Registrar profesor",
                "responses": {
                    "201": {"description": "Registrado"},
                    "409": {"description": "Usuario en uso", "schema": {"$ref": "#/definitions/APIError"}}
                }
            }
        },
        "/autenticar": {
            "post": {
                "tags": ["Cuentas"],
                "summary": "Verificar credenciales",
                "responses": {
                    "200": {"description": "OK"},
                    "401": {"description": "Credenciales invalidas", "schema": {"$ref": "#/definitions/APIError"}}
                }
            }
        },
        "/asignatura/{id}/exportar": {
            "get": {
                "tags": ["Exportar"],
                "summary": "Exportar listado de asistencia como CSV o PDF",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"},
                    {"name": "formato", "in": "query", "required": true, "type": "string"},
                    {"name": "idProfesor", "in": "query", "required": true, "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "Documento"},
                    "400": {"description": "Formato desconocido", "schema": {"$ref": "#/definitions/APIError"}}
                }
            }
        }
    },
    "definitions": {
        "Asignatura": {
            "type": "object",
            "properties": {
                "id_asignatura": {"type": "integer"},
                "id_profesor": {"type": "integer"},
                "nombre_asignatura": {"type": "string"},
                "siglas_asignatura": {"type": "string"},
                "color_asignatura": {"type": "string"},
                "color_seccion_asignatura": {"type": "string"},
                "seccion_asignatura": {"type": "string"},
                "modalidad_asignatura": {"type": "string"}
            }
        },
        "Clase": {
            "type": "object",
            "properties": {
                "id_clase": {"type": "integer"},
                "id_asignatura": {"type": "integer"},
                "fecha_clase": {"type": "string"},
                "codigoqr_clase": {"type": "string"}
            }
        },
        "Asistencia": {
            "type": "object",
            "properties": {
                "id_asistencia": {"type": "integer"},
                "id_clase": {"type": "integer"},
                "id_estudiante": {"type": "integer"},
                "asistencia": {"type": "integer"},
                "fecha_asistencia": {"type": "string"}
            }
        },
        "APIError": {
            "type": "object",
            "properties": {
                "error": {"type": "string"},
                "code": {"type": "string"}
            }
        }
    }
}`

type swaggerDoc struct{}

// ReadDoc returns the Swagger document.
func (s *swaggerDoc) ReadDoc() string {
	return docTemplate
}

func init() {
	swag.Register(swag.Name, &swaggerDoc{})
}
