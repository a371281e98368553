package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/maestre-ai/maestre-api/internal/dto"
	"github.com/maestre-ai/maestre-api/internal/models"
	appErrors "github.com/maestre-ai/maestre-api/pkg/errors"
)

type materialRepoStub struct {
	materials map[string]*models.Material
	count     int
}

func newMaterialRepoStub() *materialRepoStub {
	return &materialRepoStub{materials: make(map[string]*models.Material)}
}

func (r *materialRepoStub) Create(ctx context.Context, material *models.Material) error {
	r.materials[material.ID] = material
	r.count++
	return nil
}

func (r *materialRepoStub) GetByID(ctx context.Context, id string) (*models.Material, error) {
	if m, ok := r.materials[id]; ok {
		copy := *m
		return &copy, nil
	}
	return nil, sql.ErrNoRows
}

func (r *materialRepoStub) List(ctx context.Context, filter models.MaterialFilter) ([]models.Material, error) {
	result := make([]models.Material, 0, len(r.materials))
	for _, m := range r.materials {
		result = append(result, *m)
	}
	return result, nil
}

func (r *materialRepoStub) CountByClassroom(ctx context.Context, classroomID string) (int, error) {
	return r.count, nil
}

func (r *materialRepoStub) Update(ctx context.Context, material *models.Material) error {
	r.materials[material.ID] = material
	return nil
}

func (r *materialRepoStub) Delete(ctx context.Context, id string) error {
	delete(r.materials, id)
	r.count--
	return nil
}

type tagRepoStub struct {
	tags map[string]*models.Tag
}

func newTagRepoStub() *tagRepoStub {
	return &tagRepoStub{tags: make(map[string]*models.Tag)}
}

func (r *tagRepoStub) FindByName(ctx context.Context, creatorID, name string) (*models.Tag, error) {
	for _, tag := range r.tags {
		if tag.CreatorID == creatorID && tag.Name == name {
			return tag, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (r *tagRepoStub) Create(ctx context.Context, tag *models.Tag) error {
	if tag.ID == "" {
		tag.ID = tag.Name
	}
	r.tags[tag.ID] = tag
	return nil
}

func (r *tagRepoStub) ListByMaterial(ctx context.Context, materialID string) ([]models.Tag, error) {
	return nil, nil
}

func (r *tagRepoStub) ReplaceForMaterial(ctx context.Context, materialID string, tagIDs []string) error {
	return nil
}

type materialStorageStub struct {
	saved map[string][]byte
}

func newMaterialStorageStub() *materialStorageStub {
	return &materialStorageStub{saved: make(map[string][]byte)}
}

func (s *materialStorageStub) Save(filename string, data []byte) (string, error) {
	s.saved[filename] = data
	return filename, nil
}

func (s *materialStorageStub) Read(filename string) ([]byte, error) {
	return s.saved[filename], nil
}

func (s *materialStorageStub) Delete(filename string) error {
	delete(s.saved, filename)
	return nil
}

type classroomGetterStub struct {
	classrooms map[string]*models.Classroom
}

func (c *classroomGetterStub) Get(ctx context.Context, userID, id string) (*models.Classroom, error) {
	if cls, ok := c.classrooms[id]; ok {
		if cls.CreatorID != userID {
			return nil, appErrors.Clone(appErrors.ErrForbidden, "classroom belongs to another user")
		}
		return cls, nil
	}
	return nil, appErrors.Clone(appErrors.ErrNotFound, "classroom not found")
}

const testClassroomID = "1b9d6bcd-bbfd-4b2d-9b5d-ab8dfbbd4bed"

func newMaterialFixture() (*MaterialService, *materialRepoStub, *materialStorageStub) {
	repo := newMaterialRepoStub()
	store := newMaterialStorageStub()
	classrooms := &classroomGetterStub{classrooms: map[string]*models.Classroom{
		testClassroomID: {ID: testClassroomID, Name: "5A", CreatorID: "user-1"},
	}}
	svc := NewMaterialService(repo, newTagRepoStub(), store, classrooms, nil, nil, MaterialConfig{
		MaxPerClassroom:  5,
		MaxFileSizeBytes: 1024,
	})
	return svc, repo, store
}

func TestMaterialServiceUpload(t *testing.T) {
	svc, repo, store := newMaterialFixture()

	material, err := svc.Upload(context.Background(), "user-1", dto.UploadMaterialRequest{
		Name:        "Unit 3 Notes",
		ClassroomID: testClassroomID,
	}, "notes.pdf", []byte("%PDF-1.4 content"))
	require.NoError(t, err)
	require.Equal(t, "application/pdf", material.MimeType)
	require.Len(t, repo.materials, 1)
	require.Len(t, store.saved, 1)
}

func TestMaterialServiceUploadRejectsUnsupportedType(t *testing.T) {
	svc, _, store := newMaterialFixture()

	_, err := svc.Upload(context.Background(), "user-1", dto.UploadMaterialRequest{
		Name:        "Notes",
		ClassroomID: testClassroomID,
	}, "notes.txt", []byte("text"))
	require.Error(t, err)
	require.True(t, appErrors.Is(err, appErrors.ErrUnsupportedFileType))
	require.Empty(t, store.saved)
}

func TestMaterialServiceUploadEnforcesClassroomCap(t *testing.T) {
	svc, repo, _ := newMaterialFixture()
	repo.count = 5

	_, err := svc.Upload(context.Background(), "user-1", dto.UploadMaterialRequest{
		Name:        "One too many",
		ClassroomID: testClassroomID,
	}, "extra.pdf", []byte("%PDF"))
	require.Error(t, err)
	require.True(t, appErrors.Is(err, appErrors.ErrUploadRejected))
	require.Contains(t, err.Error(), "This classroom already has the maximum number of files (5).")
}

func TestMaterialServiceUploadRejectsOversizedFile(t *testing.T) {
	svc, _, _ := newMaterialFixture()

	_, err := svc.Upload(context.Background(), "user-1", dto.UploadMaterialRequest{
		Name:        "Big",
		ClassroomID: testClassroomID,
	}, "big.pdf", make([]byte, 2048))
	require.Error(t, err)
	require.True(t, appErrors.Is(err, appErrors.ErrFileTooLarge))
}

func TestMaterialServiceUploadForeignClassroom(t *testing.T) {
	svc, _, _ := newMaterialFixture()

	_, err := svc.Upload(context.Background(), "user-2", dto.UploadMaterialRequest{
		Name:        "Notes",
		ClassroomID: testClassroomID,
	}, "notes.pdf", []byte("%PDF"))
	require.Error(t, err)
	require.True(t, appErrors.Is(err, appErrors.ErrForbidden))
}
