package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/kurniadi/rcdash/internal/app/service/classify"
	"github.com/kurniadi/rcdash/internal/app/service/ingest"
	"github.com/kurniadi/rcdash/internal/models"
	"github.com/kurniadi/rcdash/internal/storage/memstore"
	"github.com/kurniadi/rcdash/pkg/config"
)

type noopRecorder struct{}

func (noopRecorder) Record(context.Context, *models.UploadLog) {}

func newUploadRouter(db *memstore.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	log := zap.NewNop().Sugar()
	cfg := &config.Config{Upload: config.UploadConfig{MaxEmptyRows: 10}}
	svc := ingest.NewService(db, classify.NewResolver(log), noopRecorder{}, log, cfg)

	r := gin.New()
	RegisterUploadRoutes(r.Group("/api/v1"), svc, cfg)
	return r
}

func multipartUpload(t *testing.T, field, fileName string, content []byte, appID string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	fw, err := w.CreateFormFile(field, fileName)
	require.NoError(t, err)
	_, err = fw.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.WriteField("applicationId", appID))
	require.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}

const successRateHeader = "Tanggal Transaksi,Jenis Transaksi,RC,total transaksi,Total Nominal,Total Biaya Admin,Status Transaksi\n"

func TestApiUploadSuccessRate_OK(t *testing.T) {
	db := memstore.New()
	db.SeedApplication("QRIS")
	r := newUploadRouter(db)

	csv := successRateHeader + "15/01/2024,Transfer,00,1,10,0,Sukses\n"
	body, contentType := multipartUpload(t, "successRateFile", "report.csv", []byte(csv), "1")

	req := httptest.NewRequest(http.MethodPost, "/api/v1/upload/success-rate", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), `"success":true`)
	require.Contains(t, w.Body.String(), `"totalProcessed":1`)
	require.Len(t, db.AllFacts(), 1)
}

func TestApiUploadSuccessRate_RejectionListsEveryBadRow(t *testing.T) {
	db := memstore.New()
	db.SeedApplication("QRIS")
	r := newUploadRouter(db)

	csv := successRateHeader +
		"bad-date,Transfer,00,1,10,0,Sukses\n" +
		"15/01/2024,Transfer,00,1,10,0,Sukses\n" +
		"also-bad,Transfer,00,1,10,0,Sukses\n"
	body, contentType := multipartUpload(t, "successRateFile", "report.csv", []byte(csv), "1")

	req := httptest.NewRequest(http.MethodPost, "/api/v1/upload/success-rate", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp struct {
		Success bool `json:"success"`
		Data    struct {
			SkippedRows []struct {
				RowNumber int    `json:"rowNumber"`
				Reason    string `json:"reason"`
			} `json:"skippedRows"`
			TotalSkipped   int `json:"totalSkipped"`
			TotalProcessed int `json:"totalProcessed"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.False(t, resp.Success)
	require.Equal(t, 2, resp.Data.TotalSkipped)
	require.Equal(t, 3, resp.Data.TotalProcessed)
	require.Equal(t, 2, resp.Data.SkippedRows[0].RowNumber)
	require.Equal(t, 4, resp.Data.SkippedRows[1].RowNumber)
	require.Empty(t, db.AllFacts())
}

func TestApiUploadSuccessRate_MissingFile(t *testing.T) {
	db := memstore.New()
	r := newUploadRouter(db)

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	require.NoError(t, w.WriteField("applicationId", "1"))
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/upload/success-rate", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, rec.Body.String(), "No file uploaded")
}

func TestApiUploadSuccessRate_UnknownApplication(t *testing.T) {
	db := memstore.New()
	r := newUploadRouter(db)

	csv := successRateHeader + "15/01/2024,Transfer,00,1,10,0,Sukses\n"
	body, contentType := multipartUpload(t, "successRateFile", "report.csv", []byte(csv), "99")

	req := httptest.NewRequest(http.MethodPost, "/api/v1/upload/success-rate", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestApiUploadDictionary_BadColumns(t *testing.T) {
	db := memstore.New()
	db.SeedApplication("QRIS")
	r := newUploadRouter(db)

	// Wrong extension for the dictionary pipeline.
	body, contentType := multipartUpload(t, "dictionaryFile", "dict.csv", []byte("Jenis Transaksi,RC,S/N\n"), "1")
	req := httptest.NewRequest(http.MethodPost, "/api/v1/upload/dictionary", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Contains(t, w.Body.String(), "unsupported file type")
}
