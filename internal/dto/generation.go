package dto

// GenerateExamRequest carries the exam maker form fields.
type GenerateExamRequest struct {
	Subject                string `json:"subject" validate:"required,max=120"`
	ExamName               string `json:"exam_name" validate:"omitempty,max=120"`
	NumQuestions           int    `json:"num_questions" validate:"required,min=1,max=20"`
	QuestionType           string `json:"question_type" validate:"required"`
	TotalPoints            int    `json:"total_points" validate:"required,min=1,max=1000"`
	ScoringMode            string `json:"scoring_mode" validate:"omitempty,oneof=equal custom"`
	CustomScoringDetails   string `json:"custom_scoring_details"`
	AdditionalInstructions string `json:"additional_instructions"`
	ClassroomID            string `json:"classroom" validate:"required,uuid4"`
	MaterialID             string `json:"material_id" validate:"omitempty,uuid4"`
	ReferenceText          string `json:"reference_text"`
	Model                  string `json:"model"`
}

// GeneratePlanRequest carries the class planner form fields.
type GeneratePlanRequest struct {
	Subject                string `json:"subject" validate:"required,max=120"`
	PlanName               string `json:"plan_name" validate:"omitempty,max=120"`
	NumLessons             int    `json:"num_lessons" validate:"required,min=1,max=10"`
	Theme                  string `json:"theme"`
	PlayfulnessLevel       int    `json:"playfulness_level" validate:"min=0,max=100"`
	AdditionalInstructions string `json:"additional_instructions"`
	ClassroomID            string `json:"classroom" validate:"required,uuid4"`
	MaterialID             string `json:"material_id" validate:"omitempty,uuid4"`
	ReferenceText          string `json:"reference_text"`
	Model                  string `json:"model"`
}

// ExportArtifactRequest asks for a PDF or HTML rendering of generated content.
type ExportArtifactRequest struct {
	RawText string `json:"raw_text" validate:"required"`
	Subject string `json:"subject"`
	Title   string `json:"title"`
	Tool    string `json:"tool" validate:"omitempty,oneof=exam_maker class_planner"`
	Format  string `json:"format" validate:"omitempty,oneof=pdf html"`
}

// ExportArtifactResponse points at the rendered artifact.
type ExportArtifactResponse struct {
	Filename    string `json:"filename"`
	DownloadURL string `json:"download_url"`
	ExpiresAt   int64  `json:"expires_at"`
}

// SaveArtifactRequest stores a generated artifact as classroom material.
type SaveArtifactRequest struct {
	RawText     string `json:"raw_text" validate:"required"`
	Subject     string `json:"subject"`
	ClassroomID string `json:"classroom" validate:"required"`
	Tool        string `json:"tool" validate:"omitempty,oneof=exam_maker class_planner"`
}

// TranslateRequest wraps a text for the translator tool.
type TranslateRequest struct {
	Text       string `json:"text" validate:"required"`
	SourceLang string `json:"source_lang" validate:"omitempty,max=32"`
	TargetLang string `json:"target_lang" validate:"required,max=32"`
	Model      string `json:"model"`
}

// TranslateResponse carries the translation result.
type TranslateResponse struct {
	TranslatedText string `json:"translated_text"`
	SourceLang     string `json:"source_lang"`
	TargetLang     string `json:"target_lang"`
}

// TranslationHistoryEntry is one stored translator exchange.
type TranslationHistoryEntry struct {
	Text           string `json:"text"`
	TranslatedText string `json:"translated_text"`
	SourceLang     string `json:"source_lang"`
	TargetLang     string `json:"target_lang"`
	CreatedAt      int64  `json:"created_at"`
}
