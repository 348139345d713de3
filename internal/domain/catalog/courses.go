// Package catalog contiene las tablas estáticas del catálogo comercial:
// productos/agentes publicados y el mapeo lecture → course usado como
// fallback cuando una orden no tiene líneas persistidas.
package catalog

// Cursos con identidad fija en el catálogo.
const (
	CourseAISaaS = "00000000-0000-0000-0000-000000000199"
	CourseAISaju = "00000000-0000-0000-0000-00000000a1b2"
)

// DefaultTenantID tenant de la tienda pública cuando no hay override por env.
const DefaultTenantID = "00000000-0000-0000-0000-000000000000"

// lectureCourses mapeo estático lecture_id → course_id. Solo entran las
// lectures vendidas directamente por checkout; el resto de agentes se compra
// por enlaces externos de la pasarela.
var lectureCourses = map[int]string{
	19: CourseAISaju, // AI 사주 (lectura saju)
}

// CourseForLecture devuelve el course asociado a una lecture del catálogo.
// ok=false cuando la lecture no otorga acceso a ningún curso.
func CourseForLecture(lectureID int) (string, bool) {
	id, ok := lectureCourses[lectureID]
	return id, ok
}
