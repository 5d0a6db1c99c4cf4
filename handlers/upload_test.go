package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"pawconnect/config"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubUploader struct {
	url string
	err error
}

func (s *stubUploader) Upload(ctx context.Context, file io.Reader) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	return s.url, nil
}

func uploadRouter(uploader ImageUploader) *gin.Engine {
	gin.SetMode(gin.TestMode)
	cfg := &config.Config{PlaceholderURL: "https://via.placeholder.com/300x200?text=Pet+Image"}
	handler := NewUploadHandler(uploader, cfg)

	router := gin.New()
	router.POST("/upload", handler.UploadImage)
	return router
}

func multipartImage(t *testing.T) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("image", "rex.jpg")
	require.NoError(t, err)
	_, err = part.Write([]byte("fake-jpeg-bytes"))
	require.NoError(t, err)
	require.NoError(t, writer.Close())
	return body, writer.FormDataContentType()
}

func TestUploadImage_Success(t *testing.T) {
	router := uploadRouter(&stubUploader{url: "https://res.cloudinary.com/demo/rex.jpg"})

	body, contentType := multipartImage(t)
	req := httptest.NewRequest("POST", "/upload", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "https://res.cloudinary.com/demo/rex.jpg", resp["imageUrl"])
}

func TestUploadImage_StoreFailureReturnsPlaceholder(t *testing.T) {
	router := uploadRouter(&stubUploader{err: errors.New("cloudinary down")})

	body, contentType := multipartImage(t)
	req := httptest.NewRequest("POST", "/upload", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	// Degraded, not failed: the caller still gets a usable URL.
	require.Equal(t, http.StatusInternalServerError, rec.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "https://via.placeholder.com/300x200?text=Pet+Image", resp["imageUrl"])
}

func TestUploadImage_NoFile(t *testing.T) {
	router := uploadRouter(&stubUploader{url: "unused"})

	req := httptest.NewRequest("POST", "/upload", bytes.NewBufferString(""))
	req.Header.Set("Content-Type", "multipart/form-data; boundary=empty")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
