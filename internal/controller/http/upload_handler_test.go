package http

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"storypad/internal/apperr"
	"storypad/internal/entity"
	"storypad/internal/usecase"
	"storypad/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockUploadUseCase is a mock implementation of usecase.UploadUseCase
type MockUploadUseCase struct {
	mock.Mock
}

func (m *MockUploadUseCase) Ingest(ctx context.Context, data []byte) (*entity.UploadedAsset, error) {
	args := m.Called(ctx, data)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.UploadedAsset), args.Error(1)
}

var _ usecase.UploadUseCase = (*MockUploadUseCase)(nil)

func multipartBody(t *testing.T, field, filename string, content []byte) (*bytes.Buffer, string) {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile(field, filename)
	if err != nil {
		t.Fatalf("failed to build multipart body: %v", err)
	}
	if _, err := part.Write(content); err != nil {
		t.Fatalf("failed to write multipart content: %v", err)
	}
	writer.Close()
	return body, writer.FormDataContentType()
}

func TestUpload_Success(t *testing.T) {
	mockUseCase := new(MockUploadUseCase)
	handler := NewUploadHandler(mockUseCase, logger.New())

	mockUseCase.On("Ingest", mock.Anything, []byte("fake-image-bytes")).
		Return(&entity.UploadedAsset{Path: "/file/abc123.png", Width: 1200, Height: 600, Size: 4096}, nil)

	router := setupTestRouter()
	router.POST("/upload", handler.Upload)

	body, contentType := multipartBody(t, "file", "photo.png", []byte("fake-image-bytes"))
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/upload", body)
	req.Header.Set("Content-Type", contentType)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var res entity.UploadedAsset
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.Equal(t, "/file/abc123.png", res.Path)
	assert.Equal(t, 1200, res.Width)
	assert.Equal(t, 600, res.Height)
	assert.Equal(t, 4096, res.Size)
}

func TestUpload_NoFile(t *testing.T) {
	mockUseCase := new(MockUploadUseCase)
	handler := NewUploadHandler(mockUseCase, logger.New())

	router := setupTestRouter()
	router.POST("/upload", handler.Upload)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/upload", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockUseCase.AssertNotCalled(t, "Ingest", mock.Anything, mock.Anything)
}

func TestUpload_NonImageRejected(t *testing.T) {
	mockUseCase := new(MockUploadUseCase)
	handler := NewUploadHandler(mockUseCase, logger.New())

	mockUseCase.On("Ingest", mock.Anything, mock.Anything).
		Return(nil, apperr.Validation("unsupported content type"))

	router := setupTestRouter()
	router.POST("/upload", handler.Upload)

	// Claimed .png, actual plain text: the sniffed type wins.
	body, contentType := multipartBody(t, "file", "claims-to-be.png", []byte("plain text"))
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/upload", body)
	req.Header.Set("Content-Type", contentType)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpload_ProcessingFailure(t *testing.T) {
	mockUseCase := new(MockUploadUseCase)
	handler := NewUploadHandler(mockUseCase, logger.New())

	mockUseCase.On("Ingest", mock.Anything, mock.Anything).
		Return(nil, apperr.Processing("failed to store asset", assert.AnError))

	router := setupTestRouter()
	router.POST("/upload", handler.Upload)

	body, contentType := multipartBody(t, "file", "photo.png", []byte("bytes"))
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/upload", body)
	req.Header.Set("Content-Type", contentType)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
