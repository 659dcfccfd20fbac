package handlers

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/kurniadi/rcdash/internal/app/service/ingest"
	cfgpkg "github.com/kurniadi/rcdash/pkg/config"
	"github.com/kurniadi/rcdash/pkg/response"
)

// uploadRejection is the body of a rejected success-rate upload: every
// failing row with its reason, so the operator can fix the file in one pass.
type uploadRejection struct {
	SkippedRows    []ingest.RowError `json:"skippedRows"`
	TotalSkipped   int               `json:"totalSkipped"`
	TotalProcessed int               `json:"totalProcessed"`
}

// @Summary      Upload response-code dictionary
// @Description  Ingests an .xlsx/.xls dictionary file for one application. Rows are upserted, so re-uploading updates existing mappings.
// @Tags         Upload
// @Accept       multipart/form-data
// @Produce      json
// @Param        dictionaryFile formData file true "Dictionary workbook"
// @Param        applicationId  formData int  true "Application ID"
// @Success      200 {object} response.APIResponse[ingest.DictionaryReport]
// @Router       /api/v1/upload/dictionary [post]
func ApiUploadDictionary(svc *ingest.Service, cfg *cfgpkg.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		appID, fileName, data, ok := readUpload(c, "dictionaryFile", cfg.Upload.MaxFileBytes)
		if !ok {
			return
		}
		report, err := svc.UploadDictionary(c.Request.Context(), appID, fileName, data)
		if err != nil {
			writeUploadError(c, err)
			return
		}
		c.JSON(http.StatusOK, response.OK("Dictionary uploaded successfully", report))
	}
}

// @Summary      Upload success-rate report
// @Description  Ingests a .csv/.xlsx/.xls success-rate report. Any hard row error rejects the whole file with a per-row report; otherwise all rows commit in one transaction.
// @Tags         Upload
// @Accept       multipart/form-data
// @Produce      json
// @Param        successRateFile formData file true "Success-rate report"
// @Param        applicationId   formData int  true "Application ID"
// @Success      200 {object} response.APIResponse[ingest.SuccessRateReport]
// @Failure      400 {object} response.APIResponse[handlers.uploadRejection]
// @Router       /api/v1/upload/success-rate [post]
func ApiUploadSuccessRate(svc *ingest.Service, cfg *cfgpkg.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		appID, fileName, data, ok := readUpload(c, "successRateFile", cfg.Upload.MaxFileBytes)
		if !ok {
			return
		}
		report, err := svc.UploadSuccessRate(c.Request.Context(), appID, fileName, data)
		if err != nil {
			writeUploadError(c, err)
			return
		}
		c.JSON(http.StatusOK, response.OK("Success rate data uploaded successfully", report))
	}
}

// readUpload pulls the multipart file and applicationId out of the request,
// answering the response itself when either is unusable.
func readUpload(c *gin.Context, field string, maxBytes int64) (appID int64, fileName string, data []byte, ok bool) {
	fh, err := c.FormFile(field)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.Fail("No file uploaded"))
		return 0, "", nil, false
	}
	appID, err = strconv.ParseInt(c.PostForm("applicationId"), 10, 64)
	if err != nil || appID <= 0 {
		c.JSON(http.StatusBadRequest, response.Fail("Valid applicationId is required"))
		return 0, "", nil, false
	}
	if maxBytes > 0 && fh.Size > maxBytes {
		c.JSON(http.StatusBadRequest, response.Fail("File is too large"))
		return 0, "", nil, false
	}

	f, err := fh.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Fail("Failed to read uploaded file"))
		return 0, "", nil, false
	}
	defer f.Close()
	data, err = io.ReadAll(f)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Fail("Failed to read uploaded file"))
		return 0, "", nil, false
	}
	return appID, fh.Filename, data, true
}

func writeUploadError(c *gin.Context, err error) {
	var (
		colCount   *ingest.ColumnCountError
		colMissing *ingest.MissingColumnsError
		validation *ingest.ValidationError
	)
	switch {
	case errors.Is(err, ingest.ErrApplicationNotFound):
		c.JSON(http.StatusNotFound, response.Fail(err.Error()))
	case errors.As(err, &validation):
		c.JSON(http.StatusBadRequest, response.FailT("Upload rejected: file contains invalid rows", uploadRejection{
			SkippedRows:    validation.SkippedRows,
			TotalSkipped:   len(validation.SkippedRows),
			TotalProcessed: validation.TotalProcessed,
		}))
	case errors.As(err, &colCount), errors.As(err, &colMissing),
		errors.Is(err, ingest.ErrEmptyFile),
		errors.Is(err, ingest.ErrNoWorksheet),
		errors.Is(err, ingest.ErrUnsupportedFile):
		c.JSON(http.StatusBadRequest, response.Fail(err.Error()))
	default:
		c.JSON(http.StatusInternalServerError, response.Fail(err.Error()))
	}
}

func RegisterUploadRoutes(r gin.IRouter, svc *ingest.Service, cfg *cfgpkg.Config) {
	r.POST("/upload/dictionary", ApiUploadDictionary(svc, cfg))
	r.POST("/upload/success-rate", ApiUploadSuccessRate(svc, cfg))
}
