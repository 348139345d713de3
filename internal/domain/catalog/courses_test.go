package catalog_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/academy-api/internal/domain/catalog"
)

func TestCourseForLecture_LectureConCurso(t *testing.T) {
	courseID, ok := catalog.CourseForLecture(19)
	assert.True(t, ok)
	assert.Equal(t, catalog.CourseAISaju, courseID)
}

func TestCourseForLecture_LectureSinCurso(t *testing.T) {
	courseID, ok := catalog.CourseForLecture(999)
	assert.False(t, ok)
	assert.Empty(t, courseID)
}
