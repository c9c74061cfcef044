package handler

import (
	"bytes"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/primeurdirect/primeur-api/internal/application/service"
	"github.com/primeurdirect/primeur-api/internal/infrastructure/database"
	infrarepo "github.com/primeurdirect/primeur-api/internal/infrastructure/repository"
)

func newReturnPhotoRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))

	auditService := service.NewAuditService(infrarepo.NewAuditLogRepository(db), zap.NewNop())
	returnService := service.NewReturnService(infrarepo.NewReturnRepository(db), infrarepo.NewOrderRepository(db), auditService)
	h := NewReturnHandler(returnService, t.TempDir())

	router := gin.New()
	router.POST("/returns/:id/photo", func(c *gin.Context) {
		c.Set("user_id", uuid.New())
		h.UploadPhoto(c)
	})
	return router
}

func photoRequest(t *testing.T, target, filename, contentType string, payload []byte) *http.Request {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="photo"; filename=%q`, filename))
	header.Set("Content-Type", contentType)
	part, err := writer.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write(payload)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, target, body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func TestUploadReturnPhoto(t *testing.T) {
	router := newReturnPhotoRouter(t)
	target := "/returns/" + uuid.New().String() + "/photo"

	t.Run("missing file", func(t *testing.T) {
		body := &bytes.Buffer{}
		writer := multipart.NewWriter(body)
		require.NoError(t, writer.Close())

		req := httptest.NewRequest(http.MethodPost, target, body)
		req.Header.Set("Content-Type", writer.FormDataContentType())
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "A photo file is required")
	})

	t.Run("oversize photo rejected", func(t *testing.T) {
		payload := make([]byte, maxPhotoSize+1)
		req := photoRequest(t, target, "crate.jpg", "image/jpeg", payload)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "Photo exceeds the 5MB limit")
	})

	t.Run("non-image rejected", func(t *testing.T) {
		req := photoRequest(t, target, "invoice.pdf", "application/pdf", []byte("%PDF-1.4"))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "Only image files are accepted")
	})

	t.Run("unknown return", func(t *testing.T) {
		req := photoRequest(t, target, "crate.jpg", "image/jpeg", []byte("not-really-a-jpeg"))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
