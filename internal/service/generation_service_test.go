package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/maestre-ai/maestre-api/internal/dto"
	"github.com/maestre-ai/maestre-api/internal/models"
	appErrors "github.com/maestre-ai/maestre-api/pkg/errors"
)

type generatorStub struct {
	mu      sync.Mutex
	calls   int
	prompt  string
	model   string
	result  string
	err     error
	block   chan struct{}
}

func (g *generatorStub) Generate(ctx context.Context, prompt, model string) (string, error) {
	g.mu.Lock()
	g.calls++
	g.prompt = prompt
	g.model = model
	block := g.block
	g.mu.Unlock()
	if block != nil {
		select {
		case <-block:
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	if g.err != nil {
		return "", g.err
	}
	return g.result, nil
}

type classroomResolverStub struct {
	contexts map[string]*ClassroomContext
}

func (c *classroomResolverStub) Context(ctx context.Context, userID, id string) (*ClassroomContext, error) {
	if cc, ok := c.contexts[id]; ok {
		return cc, nil
	}
	return nil, appErrors.Clone(appErrors.ErrNotFound, "classroom not found")
}

type extractorStub struct {
	doc   *models.ReferenceDocument
	calls int
}

func (e *extractorStub) ExtractFromMaterial(ctx context.Context, userID, materialID string) (*models.ReferenceDocument, error) {
	e.calls++
	if e.doc == nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "material not found")
	}
	return e.doc, nil
}

func newGenerationFixture(gen *generatorStub) (*GenerationService, *userRepoStub) {
	users := newUserRepoStub()
	users.users["user-1"] = &models.User{
		ID: "user-1", Email: "ana@example.com", Username: "ana",
		FirstName: "Ana", Region: "Andalucía", Role: models.RoleTeacher, Active: true,
	}
	classrooms := &classroomResolverStub{contexts: map[string]*ClassroomContext{
		"c1": {Name: "5A", AcademicCourse: "5th Grade", StudentCount: 24},
	}}
	svc := NewGenerationService(gen, classrooms, users, &extractorStub{}, nil, nil, nil, GenerationConfig{DefaultModel: "llama3.2:3b"})
	return svc, users
}

func validExamRequest() dto.GenerateExamRequest {
	return dto.GenerateExamRequest{
		Subject:      "Math",
		NumQuestions: 5,
		QuestionType: "multiple_choice",
		TotalPoints:  10,
		ScoringMode:  "equal",
		ClassroomID:  "1b9d6bcd-bbfd-4b2d-9b5d-ab8dfbbd4bed",
		Model:        "m1",
	}
}

func TestGenerationServiceEndToEnd(t *testing.T) {
	gen := &generatorStub{result: "Title: Math Exam\n\n1) What is 2+2?"}
	classrooms := &classroomResolverStub{contexts: map[string]*ClassroomContext{
		"1b9d6bcd-bbfd-4b2d-9b5d-ab8dfbbd4bed": {AcademicCourse: "5th Grade"},
	}}
	users := newUserRepoStub()
	users.users["user-1"] = &models.User{ID: "user-1", FirstName: "Ana", Region: "Andalucía", Active: true}
	svc := NewGenerationService(gen, classrooms, users, &extractorStub{}, nil, nil, nil, GenerationConfig{DefaultModel: "llama3.2:3b"})

	artifact, err := svc.GenerateExam(context.Background(), "user-1", validExamRequest())
	require.NoError(t, err)
	require.Equal(t, gen.result, artifact.RawText)
	require.Equal(t, models.ToolExamMaker, artifact.Tool)
	require.NotEmpty(t, artifact.RenderedHTML)

	require.Equal(t, 1, gen.calls)
	require.Equal(t, "m1", gen.model)
	require.Contains(t, gen.prompt, "MUST HAVE EXACTLY 5 QUESTIONS")
	require.Contains(t, gen.prompt, "TOTAL POINTS: 10")
	require.Contains(t, gen.prompt, "5th Grade")
	require.Contains(t, gen.prompt, "Andalucía")
	require.Contains(t, gen.prompt, "No reference materials provided.")
}

func TestGenerationServiceRejectsBadQuestionType(t *testing.T) {
	gen := &generatorStub{result: "ok"}
	svc, _ := newGenerationFixture(gen)

	req := validExamRequest()
	req.QuestionType = "essay"
	req.ClassroomID = "1b9d6bcd-bbfd-4b2d-9b5d-ab8dfbbd4bed"
	_, err := svc.GenerateExam(context.Background(), "user-1", req)
	require.Error(t, err)
	require.True(t, appErrors.Is(err, appErrors.ErrValidation))
	require.Zero(t, gen.calls)
}

func TestGenerationServiceCustomScoringRequiresDetails(t *testing.T) {
	gen := &generatorStub{result: "ok"}
	svc, _ := newGenerationFixture(gen)

	req := validExamRequest()
	req.ScoringMode = "custom"
	_, err := svc.GenerateExam(context.Background(), "user-1", req)
	require.Error(t, err)
	require.True(t, appErrors.Is(err, appErrors.ErrValidation))
	require.Zero(t, gen.calls)
}

func TestGenerationServiceSingleFlightPerUser(t *testing.T) {
	release := make(chan struct{})
	gen := &generatorStub{result: "ok", block: release}
	classrooms := &classroomResolverStub{contexts: map[string]*ClassroomContext{
		"1b9d6bcd-bbfd-4b2d-9b5d-ab8dfbbd4bed": {AcademicCourse: "5th Grade"},
	}}
	users := newUserRepoStub()
	users.users["user-1"] = &models.User{ID: "user-1", Active: true}
	svc := NewGenerationService(gen, classrooms, users, &extractorStub{}, nil, nil, nil, GenerationConfig{})

	started := make(chan struct{})
	done := make(chan error, 1)
	go func() {
		close(started)
		_, err := svc.GenerateExam(context.Background(), "user-1", validExamRequest())
		done <- err
	}()
	<-started
	time.Sleep(20 * time.Millisecond)

	_, err := svc.GenerateExam(context.Background(), "user-1", validExamRequest())
	require.Error(t, err)
	require.True(t, appErrors.Is(err, appErrors.ErrConflict))

	close(release)
	require.NoError(t, <-done)
}

func TestGenerationServiceFallsBackToDefaultModel(t *testing.T) {
	gen := &generatorStub{result: "ok"}
	classrooms := &classroomResolverStub{contexts: map[string]*ClassroomContext{
		"1b9d6bcd-bbfd-4b2d-9b5d-ab8dfbbd4bed": {},
	}}
	users := newUserRepoStub()
	users.users["user-1"] = &models.User{ID: "user-1", Active: true}
	svc := NewGenerationService(gen, classrooms, users, &extractorStub{}, nil, nil, nil, GenerationConfig{
		DefaultModel:  "llama3.2:3b",
		AllowedModels: []string{"llama3.2:3b", "mistral:7b"},
	})

	req := validExamRequest()
	req.Model = "gpt-99"
	_, err := svc.GenerateExam(context.Background(), "user-1", req)
	require.NoError(t, err)
	require.Equal(t, "llama3.2:3b", gen.model)
}

func TestGenerationServiceUsesMaterialReference(t *testing.T) {
	gen := &generatorStub{result: "ok"}
	classrooms := &classroomResolverStub{contexts: map[string]*ClassroomContext{
		"1b9d6bcd-bbfd-4b2d-9b5d-ab8dfbbd4bed": {},
	}}
	users := newUserRepoStub()
	users.users["user-1"] = &models.User{ID: "user-1", Active: true}
	extractor := &extractorStub{doc: &models.ReferenceDocument{
		SourceName:    "Unit 3",
		ExtractedText: "Photosynthesis basics",
		Origin:        models.OriginClassroomStore,
		OriginID:      "mat-1",
	}}
	svc := NewGenerationService(gen, classrooms, users, extractor, nil, nil, nil, GenerationConfig{})

	req := validExamRequest()
	req.MaterialID = "0f8fad5b-d9cb-469f-a165-70867728950e"
	_, err := svc.GenerateExam(context.Background(), "user-1", req)
	require.NoError(t, err)
	require.Contains(t, gen.prompt, "Photosynthesis basics")
}

func TestGenerationServiceRejectsDualReference(t *testing.T) {
	gen := &generatorStub{result: "ok"}
	classrooms := &classroomResolverStub{contexts: map[string]*ClassroomContext{
		"1b9d6bcd-bbfd-4b2d-9b5d-ab8dfbbd4bed": {},
	}}
	users := newUserRepoStub()
	users.users["user-1"] = &models.User{ID: "user-1", Active: true}
	extractor := &extractorStub{doc: &models.ReferenceDocument{
		SourceName:    "Unit 3",
		ExtractedText: "Photosynthesis basics",
		Origin:        models.OriginClassroomStore,
		OriginID:      "mat-1",
	}}
	svc := NewGenerationService(gen, classrooms, users, extractor, nil, nil, nil, GenerationConfig{})

	req := validExamRequest()
	req.ReferenceText = "pasted chapter notes"
	req.MaterialID = "0f8fad5b-d9cb-469f-a165-70867728950e"
	_, err := svc.GenerateExam(context.Background(), "user-1", req)
	require.Error(t, err)

	var appErr *appErrors.Error
	require.ErrorAs(t, err, &appErr)
	require.Equal(t, appErrors.ErrConflict.Code, appErr.Code)
	require.ErrorIs(t, err, models.ErrReferenceAttached)
	require.Equal(t, 0, extractor.calls)
	require.Equal(t, 0, gen.calls)
}

func TestGeneratePlanPrompt(t *testing.T) {
	gen := &generatorStub{result: "Lesson plan"}
	classrooms := &classroomResolverStub{contexts: map[string]*ClassroomContext{
		"1b9d6bcd-bbfd-4b2d-9b5d-ab8dfbbd4bed": {Name: "5A", AcademicCourse: "5th Grade", StudentCount: 24},
	}}
	users := newUserRepoStub()
	users.users["user-1"] = &models.User{ID: "user-1", FirstName: "Ana", LastName: "García", Active: true}
	svc := NewGenerationService(gen, classrooms, users, &extractorStub{}, nil, nil, nil, GenerationConfig{})

	artifact, err := svc.GeneratePlan(context.Background(), "user-1", dto.GeneratePlanRequest{
		Subject:          "Science",
		NumLessons:       3,
		Theme:            "The water cycle",
		PlayfulnessLevel: 80,
		ClassroomID:      "1b9d6bcd-bbfd-4b2d-9b5d-ab8dfbbd4bed",
	})
	require.NoError(t, err)
	require.Equal(t, models.ToolClassPlanner, artifact.Tool)
	require.Contains(t, gen.prompt, "- Number of lessons: 3")
	require.Contains(t, gen.prompt, "very playful")
	require.Contains(t, gen.prompt, "Ana García")
}
