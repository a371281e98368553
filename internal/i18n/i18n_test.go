package i18n

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaultArtifactName(t *testing.T) {
	require.NoError(t, Init())

	require.Equal(t, "Exam", DefaultArtifactName("en", "exam_maker"))
	require.Equal(t, "Examen", DefaultArtifactName("es", "exam_maker"))
	require.Equal(t, "Lesson Plan", DefaultArtifactName("en", "class_planner"))
	require.Equal(t, "Plan de Clase", DefaultArtifactName("es", "class_planner"))
}

func TestTFallsBackToEnglish(t *testing.T) {
	require.NoError(t, Init())

	require.Equal(t, "Exam", T("fr", "artifact.exam"))
	require.Equal(t, "missing.key", T("en", "missing.key"))
}
