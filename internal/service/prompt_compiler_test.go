package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/maestre-ai/maestre-api/internal/models"
)

func examRequest() models.GenerationRequest {
	return models.GenerationRequest{
		Tool:        models.ToolExamMaker,
		Subject:     "Math",
		Quantity:    5,
		ItemType:    models.ItemMultipleChoice,
		ClassroomID: "c1",
		ScoringMode: models.ScoringEqual,
		TotalPoints: 10,
		ModelID:     "m1",
	}
}

func TestCompileExamPromptDeterministic(t *testing.T) {
	req := examRequest()
	classroom := &ClassroomContext{AcademicCourse: "5th Grade"}
	user := UserContext{Region: "Andalucía"}

	first := CompileExamPrompt(req, classroom, user)
	second := CompileExamPrompt(req, classroom, user)
	require.Equal(t, first, second)
}

func TestCompileExamPromptContents(t *testing.T) {
	req := examRequest()
	classroom := &ClassroomContext{AcademicCourse: "5th Grade"}
	user := UserContext{Region: "Andalucía"}

	prompt := CompileExamPrompt(req, classroom, user)

	require.Contains(t, prompt, "NUMBER OF QUESTIONS: MUST HAVE EXACTLY 5 QUESTIONS")
	require.Contains(t, prompt, "TOTAL POINTS: 10")
	require.Contains(t, prompt, "EDUCATION LEVEL: 5th Grade")
	require.Contains(t, prompt, "REGION: Andalucía")
	require.Contains(t, prompt, "QUESTION TYPE: multiple choice")
	require.Contains(t, prompt, "EXAM NAME: Exam")
	require.Contains(t, prompt, "No reference materials provided.")
	require.NotContains(t, prompt, "SCORING STYLE:")
}

func TestCompileExamPromptSectionOrder(t *testing.T) {
	prompt := CompileExamPrompt(examRequest(), nil, UserContext{})

	sections := []string{
		"[SYSTEM INSTRUCTION - DO NOT INCLUDE IN RESPONSE]",
		"[EXAM SPECIFICATIONS]",
		"[REFERENCE MATERIALS]",
		"[EXAMPLE TEMPLATE] (FOR REFERENCE ONLY)",
		"[FORMATTING REQUIREMENTS]",
		"[CHECKLIST - DO NOT INCLUDE IN RESPONSE]",
		"[FINAL INSTRUCTION - DO NOT INCLUDE IN RESPONSE]",
	}
	last := -1
	for _, section := range sections {
		idx := strings.Index(prompt, section)
		require.Greater(t, idx, last, "section %s out of order", section)
		last = idx
	}
}

func TestCompileExamPromptCustomScoringAndInstructions(t *testing.T) {
	req := examRequest()
	req.ScoringMode = models.ScoringCustom
	req.CustomDetails = "first question 4 points, rest 2 points"
	req.AdditionalInstructions = "Focus on fractions"
	req.ReferenceText = "Fractions are parts of a whole."

	prompt := CompileExamPrompt(req, nil, UserContext{})

	require.Contains(t, prompt, "SCORING STYLE: Custom distribution as follows: first question 4 points, rest 2 points")
	require.Contains(t, prompt, "[ADDITIONAL INSTRUCTIONS]\nFocus on fractions")
	require.Contains(t, prompt, "Fractions are parts of a whole.")
	require.NotContains(t, prompt, "No reference materials provided.")
}

func TestCompileExamPromptUnknownFallbacks(t *testing.T) {
	prompt := CompileExamPrompt(examRequest(), nil, UserContext{})

	require.Contains(t, prompt, "EDUCATION LEVEL: Unknown")
	require.Contains(t, prompt, "REGION: Unknown")
}

func TestCompilePlanPromptPlayfulnessBuckets(t *testing.T) {
	cases := []struct {
		level int
		want  string
	}{
		{0, "very structured"},
		{25, "very structured"},
		{26, "structured, with some interactive elements"},
		{50, "structured, with some interactive elements"},
		{51, "balanced"},
		{75, "balanced"},
		{76, "very playful"},
		{100, "very playful"},
	}
	for _, tc := range cases {
		req := models.GenerationRequest{
			Tool:             models.ToolClassPlanner,
			Subject:          "Science",
			Theme:            "The water cycle",
			Quantity:         3,
			PlayfulnessLevel: tc.level,
		}
		prompt := CompilePlanPrompt(req, nil, UserContext{})
		require.Contains(t, prompt, tc.want, "level %d", tc.level)
	}
}

func TestCompilePlanPromptContents(t *testing.T) {
	req := models.GenerationRequest{
		Tool:                   models.ToolClassPlanner,
		Subject:                "Science",
		Theme:                  "The water cycle",
		Quantity:               3,
		PlayfulnessLevel:       60,
		AdditionalInstructions: "Include one outdoor activity",
		ReferenceText:          "Evaporation notes",
	}
	classroom := &ClassroomContext{Name: "5A", AcademicCourse: "5th Grade", EducationLevel: "Primary", StudentCount: 24}
	user := UserContext{FirstName: "Ana", LastName: "García", Email: "ana@example.com"}

	prompt := CompilePlanPrompt(req, classroom, user)

	require.Contains(t, prompt, "- Name: Ana García")
	require.Contains(t, prompt, "- Classroom name: 5A")
	require.Contains(t, prompt, "- Education level: Primary")
	require.Contains(t, prompt, "- Number of students: 24")
	require.Contains(t, prompt, "- Number of lessons: 3")
	require.Contains(t, prompt, "- Playfulness level: 60/100")
	require.Contains(t, prompt, "Additional instructions: Include one outdoor activity")
	require.Contains(t, prompt, "Evaporation notes")
}
