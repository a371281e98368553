package service

import (
	"fmt"
	"strings"

	"github.com/maestre-ai/maestre-api/internal/models"
)

// UserContext is the caller snapshot merged into compiled prompts.
type UserContext struct {
	FirstName string
	LastName  string
	Email     string
	Region    string
}

// CompileExamPrompt merges the request, classroom and user context into the
// exam generation instruction. Pure function: no I/O, no randomness.
func CompileExamPrompt(req models.GenerationRequest, classroom *ClassroomContext, user UserContext) string {
	academicLevel := "Unknown"
	if classroom != nil && classroom.AcademicCourse != "" {
		academicLevel = classroom.AcademicCourse
	}
	region := user.Region
	if region == "" {
		region = "Unknown"
	}
	examName := req.ArtifactName
	if examName == "" {
		examName = "Exam"
	}
	questionType := strings.ReplaceAll(string(req.ItemType), "_", " ")

	var sb strings.Builder
	sb.WriteString(`[SYSTEM INSTRUCTION - DO NOT INCLUDE IN RESPONSE]
You are an expert exam creator with years of experience in educational design and pedagogy.
Your task is to create a high-quality exam according to the specifications below.
IMPORTANT: Your response must contain ONLY the exam itself. DO NOT include any explanations, reasoning, or thought process about how you created the exam.

[EXAM SPECIFICATIONS]
`)
	sb.WriteString(fmt.Sprintf("SUBJECT: %s\n", req.Subject))
	sb.WriteString(fmt.Sprintf("EXAM NAME: %s\n", examName))
	sb.WriteString(fmt.Sprintf("NUMBER OF QUESTIONS: MUST HAVE EXACTLY %d QUESTIONS\n", req.Quantity))
	sb.WriteString(fmt.Sprintf("QUESTION TYPE: %s\n", questionType))
	sb.WriteString(fmt.Sprintf("TOTAL POINTS: %d\n", req.TotalPoints))
	sb.WriteString(fmt.Sprintf("EDUCATION LEVEL: %s\n", academicLevel))
	sb.WriteString(fmt.Sprintf("REGION: %s", region))

	if req.ScoringMode != models.ScoringEqual {
		sb.WriteString(fmt.Sprintf("\nSCORING STYLE: Custom distribution as follows: %s", req.CustomDetails))
	}

	if req.AdditionalInstructions != "" {
		sb.WriteString("\n\n[ADDITIONAL INSTRUCTIONS]\n")
		sb.WriteString(req.AdditionalInstructions)
	}

	sb.WriteString("\n\n[REFERENCE MATERIALS]\nPlease use the following reference materials as guidelines for how the questions and their contents could be in your exam:\n")
	if req.ReferenceText != "" {
		sb.WriteString(req.ReferenceText)
	} else {
		sb.WriteString("No reference materials provided.")
	}

	sb.WriteString(`

[EXAMPLE TEMPLATE] (FOR REFERENCE ONLY)
Title: Sample Exam - Subject
Subtitle:

1) [Question text here]
   A) ...
   B) ...
   C) ...
   D) ...

2) [Question text here]
   True or False: ...
`)

	sb.WriteString(fmt.Sprintf(`

[FORMATTING REQUIREMENTS]
1. The exam MUST be in English
2. The reply MUST ONLY contain the exam, no additional text or comments.
3. Include a clear title and subtitle with the exam name and subject.
4. Number all questions sequentially.
5. For multiple-choice questions, use options labeled as A), B), C), etc.
6. Clearly indicate the point value for each question.
7. Ensure proper spacing between questions.
8. Format the exam in a clean, professional manner suitable for classroom use.
9. Ensure the exam follows educational standards for %s level in %s.
10. Make sure the total points add up to exactly %d.
11. Use proper formatting for each question type (e.g., multiple choice with options, true/false with clear statements).
12. Include clear section headers if mixing different types of questions.
13. DO NOT include any reasoning, planning, or thought process in your response.
14. DO NOT explain how you created the exam or what considerations you made.
15. ONLY output the final exam content, starting directly with the title.
`, academicLevel, region, req.TotalPoints))

	sb.WriteString(fmt.Sprintf(`
[CHECKLIST - DO NOT INCLUDE IN RESPONSE]
1) Did you include only the exam and nothing else?
2) Did you include exactly %d questions?
3) Do the total points add up to exactly %d?
4) Are there any details that are not supported by the references?
5) Did you follow all formatting requirements strictly?
6) Did you remove ALL reasoning and explanations from your response?

If any check fails, revise your answer before finalizing.
`, req.Quantity, req.TotalPoints))

	sb.WriteString(`
[FINAL INSTRUCTION - DO NOT INCLUDE IN RESPONSE]
Now, produce a complete exam following all the specifications and requirements above.
If any information is missing, note it clearly rather than inventing details.
CRITICAL: Your response must begin with the exam title and contain ONLY the exam content. DO NOT include any explanations, reasoning, or thought process.
`)

	return sb.String()
}

// playfulnessDescription maps the 0-100 slider onto its teaching-style label.
func playfulnessDescription(level int) string {
	switch {
	case level <= 25:
		return "very structured, with formal activities and clear assessment criteria"
	case level <= 50:
		return "structured, with some interactive elements"
	case level <= 75:
		return "balanced between structured content and playful activities"
	default:
		return "very playful, prioritizing games and hands-on activities"
	}
}

// CompilePlanPrompt merges the request, classroom and user context into the
// lesson plan generation instruction. Pure function like CompileExamPrompt.
func CompilePlanPrompt(req models.GenerationRequest, classroom *ClassroomContext, user UserContext) string {
	var classroomName, academicCourse, educationLevel string
	var studentCount int
	if classroom != nil {
		classroomName = classroom.Name
		academicCourse = classroom.AcademicCourse
		educationLevel = classroom.EducationLevel
		studentCount = classroom.StudentCount
	}

	var sb strings.Builder
	sb.WriteString("You are an expert lesson planner with deep knowledge of pedagogy and classroom management. Create a complete, ready-to-use lesson plan following the details below. Respond with ONLY the lesson plan itself.\n\n")

	sb.WriteString("Teacher information:\n")
	sb.WriteString(fmt.Sprintf("- Name: %s %s\n", user.FirstName, user.LastName))
	sb.WriteString(fmt.Sprintf("- Email: %s\n\n", user.Email))

	sb.WriteString("Classroom information:\n")
	sb.WriteString(fmt.Sprintf("- Classroom name: %s\n", classroomName))
	sb.WriteString(fmt.Sprintf("- Academic course: %s\n", academicCourse))
	sb.WriteString(fmt.Sprintf("- Education level: %s\n", educationLevel))
	sb.WriteString(fmt.Sprintf("- Number of students: %d\n\n", studentCount))

	sb.WriteString("Plan details:\n")
	sb.WriteString(fmt.Sprintf("- Subject: %s\n", req.Subject))
	sb.WriteString(fmt.Sprintf("- Theme: %s\n", req.Theme))
	sb.WriteString(fmt.Sprintf("- Number of lessons: %d\n", req.Quantity))
	sb.WriteString(fmt.Sprintf("- Playfulness level: %d/100 (%s)\n", req.PlayfulnessLevel, playfulnessDescription(req.PlayfulnessLevel)))

	if req.AdditionalInstructions != "" {
		sb.WriteString(fmt.Sprintf("\nAdditional instructions: %s\n", req.AdditionalInstructions))
	}

	if req.ReferenceText != "" {
		sb.WriteString("\nReference material content:\n")
		sb.WriteString(req.ReferenceText)
		sb.WriteString("\n")
	}

	sb.WriteString("\nStructure each lesson with objectives, activities, materials needed and an assessment idea. Keep the plan practical for the classroom size and course level above. Respond with ONLY the lesson plan, starting with its title.")

	return sb.String()
}
