package api

import (
	"bytes"
	"encoding/json"
	"image/color"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"document-converter/internal/apperr"
	"document-converter/internal/archive"
	"document-converter/internal/config"
	"document-converter/internal/converter"
	"document-converter/internal/logging"
	"document-converter/internal/storage"
	"document-converter/internal/util"
)

type upload struct {
	name string
	data []byte
}

func newTestServer(t *testing.T, store storage.Store) http.Handler {
	t.Helper()
	cfg := config.Default()
	logger := logging.Discard()
	mgr := converter.CreateDefaultManager(cfg.Images, logger)
	return NewServer(mgr, store, cfg.Server, logger).Handler()
}

func multipartRequest(t *testing.T, path string, files []upload, fields map[string]string) *http.Request {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	for _, f := range files {
		part, err := mw.CreateFormFile("file", f.name)
		require.NoError(t, err)
		_, err = part.Write(f.data)
		require.NoError(t, err)
	}
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, path, &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func serve(h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()
	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	return resp
}

func TestHealthCheck(t *testing.T) {
	rec := serve(newTestServer(t, nil), httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"healthy"}`, rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}

func TestRequestIDIsEchoed(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	rec := serve(newTestServer(t, nil), req)
	assert.Equal(t, "abc-123", rec.Header().Get("X-Request-ID"))
}

func TestServiceInfo(t *testing.T) {
	rec := serve(newTestServer(t, nil), httptest.NewRequest(http.MethodGet, "/service-info", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var info map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &info))
	assert.Equal(t, ServiceName, info["service"])
	assert.Equal(t, "none", info["storage"])
}

func TestListConversions(t *testing.T) {
	rec := serve(newTestServer(t, nil), httptest.NewRequest(http.MethodGet, "/api/conversions", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp ConversionsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Len(t, resp.Conversions, 15)
	assert.Equal(t, converter.KindPDFMerge, resp.Conversions[0].Kind)
	assert.Equal(t, 2, resp.Conversions[0].MinFiles)
}

func TestDetectFormat(t *testing.T) {
	pdf, err := util.CreateTestPDF("hello")
	require.NoError(t, err)

	rec := serve(newTestServer(t, nil), multipartRequest(t, "/api/detect", []upload{{"x.bin", pdf}}, nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp DetectResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "pdf", resp.Format)
	assert.Equal(t, "PDF Document", resp.FormatName)
}

func TestDetectFormat_ImageSize(t *testing.T) {
	png, err := util.CreateTestPNG(30, 20, color.White)
	require.NoError(t, err)

	rec := serve(newTestServer(t, nil), multipartRequest(t, "/api/detect", []upload{{"pic", png}}, nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp DetectResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "png", resp.Format)
	assert.Equal(t, 30, resp.Width)
	assert.Equal(t, 20, resp.Height)
}

func TestConvertToPDF_DetectsMissingExtension(t *testing.T) {
	rec := serve(newTestServer(t, nil), multipartRequest(t, "/api/convert",
		[]upload{{"notes", []byte("plain words on a line")}}, nil))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "notes.pdf")
	assert.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte("%PDF-")))
}

func TestConvert_Merge(t *testing.T) {
	a, err := util.CreateTestPDF("a")
	require.NoError(t, err)
	b, err := util.CreateTestPDF("b1", "b2")
	require.NoError(t, err)

	rec := serve(newTestServer(t, nil), multipartRequest(t, "/api/convert/pdf-merge",
		[]upload{{"a.pdf", a}, {"b.pdf", b}}, nil))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, `attachment; filename=merged_document.pdf`, rec.Header().Get("Content-Disposition"))
	assert.Equal(t, strconv.Itoa(rec.Body.Len()), rec.Header().Get("Content-Length"))
}

func TestConvert_Errors(t *testing.T) {
	h := newTestServer(t, nil)
	pdf, err := util.CreateTestPDF("only page")
	require.NoError(t, err)

	tests := []struct {
		name   string
		req    *http.Request
		status int
		code   string
	}{
		{
			name:   "unknown kind",
			req:    multipartRequest(t, "/api/convert/pdf-to-gif", []upload{{"a.pdf", pdf}}, nil),
			status: http.StatusNotFound,
			code:   apperr.CodeUnknownConversion,
		},
		{
			name:   "no file",
			req:    multipartRequest(t, "/api/convert/pdf-compress", nil, map[string]string{"x": "1"}),
			status: http.StatusBadRequest,
			code:   apperr.CodeNoFile,
		},
		{
			name:   "wrong extension",
			req:    multipartRequest(t, "/api/convert/word-to-pdf", []upload{{"a.pdf", pdf}}, nil),
			status: http.StatusBadRequest,
			code:   apperr.CodeInvalidFileType,
		},
		{
			name:   "one page split",
			req:    multipartRequest(t, "/api/convert/pdf-split", []upload{{"a.pdf", pdf}}, nil),
			status: http.StatusBadRequest,
			code:   apperr.CodeTooFewPages,
		},
		{
			name:   "unsupported edit",
			req:    multipartRequest(t, "/api/convert/pdf-edit", []upload{{"a.pdf", pdf}}, map[string]string{"editType": "blur"}),
			status: http.StatusBadRequest,
			code:   apperr.CodeUnsupportedOperation,
		},
		{
			name:   "no content",
			req:    multipartRequest(t, "/api/convert/text-to-pdf", []upload{{"a.txt", []byte("\n\n")}}, nil),
			status: http.StatusUnprocessableEntity,
			code:   apperr.CodeNoContent,
		},
		{
			name:   "save without store",
			req:    multipartRequest(t, "/api/convert/txt-csv", []upload{{"a.txt", []byte("x\ty")}}, map[string]string{"save": "true"}),
			status: http.StatusInternalServerError,
			code:   apperr.CodeStorageUnavailable,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(h, tt.req)
			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, tt.code, decodeError(t, rec).Code)
		})
	}
}

func TestConvert_NotMultipart(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/convert/pdf-compress", strings.NewReader("{}"))
	req.Header.Set("Content-Type", "application/json")
	rec := serve(newTestServer(t, nil), req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, apperr.CodeNoFile, decodeError(t, rec).Code)
}

func TestConvert_TooLarge(t *testing.T) {
	cfg := config.Default()
	cfg.Server.MaxUploadMB = 1
	logger := logging.Discard()
	h := NewServer(converter.CreateDefaultManager(cfg.Images, logger), nil, cfg.Server, logger).Handler()

	big := bytes.Repeat([]byte("a"), 2<<20)
	rec := serve(h, multipartRequest(t, "/api/convert/txt-csv", []upload{{"big.txt", big}}, nil))
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	assert.Equal(t, apperr.CodeFileTooLarge, decodeError(t, rec).Code)
}

func TestMethodNotAllowed(t *testing.T) {
	h := newTestServer(t, nil)
	for _, req := range []*http.Request{
		httptest.NewRequest(http.MethodGet, "/api/convert/pdf-merge", nil),
		httptest.NewRequest(http.MethodGet, "/api/convert", nil),
		httptest.NewRequest(http.MethodPost, "/api/conversions", nil),
		httptest.NewRequest(http.MethodPost, "/health", nil),
	} {
		rec := serve(h, req)
		assert.Equal(t, http.StatusMethodNotAllowed, rec.Code, req.Method+" "+req.URL.Path)

		var resp ErrorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "METHOD_NOT_ALLOWED", resp.Code)
	}
}

func TestSaveAndDownload(t *testing.T) {
	store, err := storage.NewLocalStore(t.TempDir())
	require.NoError(t, err)
	h := newTestServer(t, store)

	pdf, err := util.CreateTestPDF("p1", "p2")
	require.NoError(t, err)
	rec := serve(h, multipartRequest(t, "/api/convert/pdf-split", []upload{{"doc.pdf", pdf}}, map[string]string{"save": "true"}))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp ConversionResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "doc_split.zip", resp.ResultName)
	assert.Equal(t, "/api/files/"+resp.Key, resp.Location)

	dl := serve(h, httptest.NewRequest(http.MethodGet, resp.Location, nil))
	require.Equal(t, http.StatusOK, dl.Code)
	assert.Equal(t, "application/zip", dl.Header().Get("Content-Type"))
	assert.Contains(t, dl.Header().Get("Content-Disposition"), "doc_split.zip")

	entries, err := archive.Unzip(dl.Body.Bytes())
	require.NoError(t, err)
	assert.Len(t, entries, 2)

	missing := serve(h, httptest.NewRequest(http.MethodGet, "/api/files/nothing-here.pdf", nil))
	assert.Equal(t, http.StatusNotFound, missing.Code)
	assert.Equal(t, apperr.CodeNotFound, decodeError(t, missing).Code)
}

func TestDownload_NoStore(t *testing.T) {
	rec := serve(newTestServer(t, nil), httptest.NewRequest(http.MethodGet, "/api/files/x.pdf", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, apperr.CodeStorageUnavailable, decodeError(t, rec).Code)
}

func TestStoredName(t *testing.T) {
	assert.Equal(t, "report.pdf", storedName("123e4567-e89b-12d3-a456-426614174000-report.pdf"))
	assert.Equal(t, "short.pdf", storedName("short.pdf"))
}

func TestRecoverer(t *testing.T) {
	h := recoverer(logging.Discard())(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))
	rec := serve(h, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, apperr.CodeConversionFailed, decodeError(t, rec).Code)
}

func TestCORS(t *testing.T) {
	req := httptest.NewRequest(http.MethodOptions, "/api/convert/pdf-merge", nil)
	req.Header.Set("Origin", "http://example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := serve(newTestServer(t, nil), req)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}
