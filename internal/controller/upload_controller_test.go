package controller

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"qa_judge_backend/internal/config"
	"qa_judge_backend/internal/model"
	"qa_judge_backend/internal/service"
	"qa_judge_backend/internal/util"
	"qa_judge_backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	logger.Log = zap.NewNop()
	os.Exit(m.Run())
}

type memSubmissionStore struct{ created []*model.Submission }

func (f *memSubmissionStore) Create(s *model.Submission) error {
	s.ID = model.GenerateUUID()
	f.created = append(f.created, s)
	return nil
}

type memTemplateStore struct{ created []*model.QuestionTemplate }

func (f *memTemplateStore) Create(t *model.QuestionTemplate) error {
	t.ID = model.GenerateUUID()
	f.created = append(f.created, t)
	return nil
}

type memQuestionStore struct{ created []*model.Question }

func (f *memQuestionStore) Create(q *model.Question) error {
	q.ID = model.GenerateUUID()
	f.created = append(f.created, q)
	return nil
}

type memAnswerStore struct{ created []*model.Answer }

func (f *memAnswerStore) Create(a *model.Answer) error {
	a.ID = model.GenerateUUID()
	f.created = append(f.created, a)
	return nil
}

func newUploadRouter(t *testing.T) (*gin.Engine, *memSubmissionStore) {
	t.Helper()

	subs := &memSubmissionStore{}
	importSvc := service.NewImportService(subs, &memTemplateStore{}, &memQuestionStore{}, &memAnswerStore{}, nil)
	storage := &service.StorageService{Provider: &service.LocalStorageProvider{
		Config: &config.StorageConfig{LocalPath: t.TempDir()},
	}}

	router := gin.New()
	uc := NewUploadController(importSvc, storage)
	router.POST("/api/import", uc.ImportFile)
	return router, subs
}

func multipartBody(t *testing.T, filename, content string) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, writer.Close())
	return body, writer.FormDataContentType()
}

func TestImportFile_Success(t *testing.T) {
	router, subs := newUploadRouter(t)

	doc := `[{"queueId": "queue_1", "questions": [{"data": {"id": "t1", "questionText": "Q?"}}], "answers": {"t1": {"choice": "yes"}}}]`
	body, contentType := multipartBody(t, "export.json", doc)

	req := httptest.NewRequest(http.MethodPost, "/api/import", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp util.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	data, ok := resp.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, float64(1), data["submissionsCount"])
	assert.Equal(t, float64(1), data["questionsCount"])
	assert.Equal(t, float64(1), data["answersCount"])
	assert.Contains(t, data["archiveUrl"], "/uploads/imports/")

	require.Len(t, subs.created, 1)
	assert.Equal(t, "queue_1", subs.created[0].QueueID)
}

func TestImportFile_RejectsNonJSONExtension(t *testing.T) {
	router, subs := newUploadRouter(t)

	body, contentType := multipartBody(t, "export.csv", "a,b,c")
	req := httptest.NewRequest(http.MethodPost, "/api/import", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, subs.created)
}

func TestImportFile_RejectsStructurallyInvalidDoc(t *testing.T) {
	router, subs := newUploadRouter(t)

	body, contentType := multipartBody(t, "export.json", `{"not": "an array"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/import", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp util.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Contains(t, resp.Message, "root must be an array")

	// 结构错误时任何行都不落库
	assert.Empty(t, subs.created)
}

func TestImportFile_RejectsEmptyFile(t *testing.T) {
	router, _ := newUploadRouter(t)

	body, contentType := multipartBody(t, "export.json", "   ")
	req := httptest.NewRequest(http.MethodPost, "/api/import", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestImportFile_MissingFile(t *testing.T) {
	router, _ := newUploadRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/import", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
