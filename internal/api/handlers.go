package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"document-converter/internal/apperr"
	"document-converter/internal/converter"
	"document-converter/internal/model"
	"document-converter/internal/storage"
	"document-converter/internal/util"
)

// multipartMemory is the part of a form kept in memory; larger files spill
// to disk
const multipartMemory = 10 << 20

// ListConversionsHandler describes every conversion kind
func (s *Server) ListConversionsHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, ConversionsResponse{Conversions: s.converterMgr.List()})
}

// DetectFormatHandler handles requests to detect a file's format
func (s *Server) DetectFormatHandler(w http.ResponseWriter, r *http.Request) {
	docs, _, err := s.readUploads(w, r)
	if err != nil {
		writeError(w, err)
		return
	}

	// Detect format
	format, err := s.formatDetector.DetectFormatFromBytes(docs[0].Data)
	if err != nil {
		writeError(w, apperr.Wrap(err, apperr.CodeInvalidParameter, "failed to detect format"))
		return
	}

	// Create the response
	response := DetectResponse{
		Success:    format != "",
		Format:     string(format),
		FormatName: FormatInfo[format],
	}
	if format == "" {
		response.Error = "Unknown format"
	}
	if format == model.FormatJPEG || format == model.FormatPNG {
		if width, height, err := util.GetImageDimensions(docs[0].Data); err == nil {
			response.Width, response.Height = width, height
		}
	}
	writeJSON(w, http.StatusOK, response)
}

// ConvertToPDFHandler converts a single upload to PDF, choosing the
// converter from the file's format
func (s *Server) ConvertToPDFHandler(w http.ResponseWriter, r *http.Request) {
	docs, params, err := s.readUploads(w, r)
	if err != nil {
		writeError(w, err)
		return
	}
	document := docs[0]

	// Detect the format if the name does not carry one
	if document.Format == "" {
		format, err := s.formatDetector.DetectFormatFromBytes(document.Data)
		if err == nil && format != "" {
			document.Format = format
			document.Name += format.Extension()
		}
	}

	result, err := s.converterMgr.ConvertToPDF(r.Context(), document)
	if err != nil {
		writeError(w, err)
		return
	}
	s.respond(w, r, "convert", document.Name, result, params)
}

// ConvertHandler runs the conversion named in the path
func (s *Server) ConvertHandler(w http.ResponseWriter, r *http.Request) {
	kind := mux.Vars(r)["kind"]
	if _, err := s.converterMgr.Get(kind); err != nil {
		writeError(w, err)
		return
	}

	docs, params, err := s.readUploads(w, r)
	if err != nil {
		writeError(w, err)
		return
	}

	result, err := s.converterMgr.Convert(r.Context(), kind, &converter.Request{Files: docs, Params: params})
	if err != nil {
		writeError(w, err)
		return
	}
	s.respond(w, r, kind, docs[0].Name, result, params)
}

// DownloadHandler streams a stored result
func (s *Server) DownloadHandler(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		writeError(w, apperr.StorageUnavailable("result storage is not configured"))
		return
	}

	key := mux.Vars(r)["key"]
	obj, err := s.store.Open(r.Context(), key)
	switch {
	case errors.Is(err, storage.ErrNotFound), errors.Is(err, storage.ErrInvalidKey):
		writeError(w, apperr.NotFound(key))
		return
	case err != nil:
		writeError(w, apperr.Wrap(err, apperr.CodeStorageUnavailable, "failed to load stored file"))
		return
	}

	writeFile(w, s.logger, storedName(obj.Key), obj.ContentType, obj.Data)
}

// storedName strips the unique prefix that storage.NewKey adds
func storedName(key string) string {
	// uuid.NewString is 36 characters followed by "-"
	if len(key) > 37 && key[36] == '-' {
		return key[37:]
	}
	return key
}

// respond streams the result back, or stores it when the form asked for
// save=true
func (s *Server) respond(w http.ResponseWriter, r *http.Request, kind, original string, result *converter.Result, params map[string]string) {
	if params["save"] != "true" {
		writeFile(w, s.logger, result.Name, result.ContentType, result.Data)
		return
	}
	if s.store == nil {
		writeError(w, apperr.StorageUnavailable("result storage is not configured"))
		return
	}

	key, err := s.store.Save(r.Context(), result.Name, result.Data)
	if err != nil {
		writeError(w, apperr.Wrap(err, apperr.CodeStorageUnavailable, "failed to save result"))
		return
	}

	writeJSON(w, http.StatusOK, ConversionResponse{
		Success:      true,
		Kind:         kind,
		OriginalName: original,
		ResultName:   result.Name,
		ContentType:  result.ContentType,
		Size:         result.Size(),
		Key:          key,
		Location:     "/api/files/" + key,
	})
}

// readUploads parses the multipart form and returns every "file" part as a
// document along with the other form values
func (s *Server) readUploads(w http.ResponseWriter, r *http.Request) ([]*model.Document, map[string]string, error) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadMB<<20)

	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		if isTooLarge(err) {
			return nil, nil, apperr.FileTooLarge(s.cfg.MaxUploadMB)
		}
		if errors.Is(err, http.ErrNotMultipart) || errors.Is(err, http.ErrMissingBoundary) {
			return nil, nil, apperr.NoFile()
		}
		return nil, nil, apperr.InvalidParameter("form", err.Error())
	}

	params := make(map[string]string, len(r.MultipartForm.Value))
	for name, values := range r.MultipartForm.Value {
		if len(values) > 0 {
			params[name] = values[0]
		}
	}

	headers := r.MultipartForm.File["file"]
	if len(headers) == 0 {
		return nil, nil, apperr.NoFile()
	}

	docs := make([]*model.Document, 0, len(headers))
	for _, h := range headers {
		f, err := h.Open()
		if err != nil {
			return nil, nil, apperr.Wrap(err, apperr.CodeInvalidParameter, "failed to open upload")
		}
		doc, err := model.ReadDocument(h.Filename, f)
		f.Close()
		if err != nil {
			return nil, nil, apperr.Wrap(err, apperr.CodeInvalidParameter, "failed to read upload")
		}
		docs = append(docs, doc)
	}
	return docs, params, nil
}

func isTooLarge(err error) bool {
	var maxErr *http.MaxBytesError
	return errors.As(err, &maxErr) || strings.Contains(err.Error(), "request body too large")
}

// writeFile streams data back as a download
func writeFile(w http.ResponseWriter, logger logrus.FieldLogger, name, contentType string, data []byte) {
	w.Header().Set("Content-Disposition", util.ContentDisposition(name))
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)

	if _, err := w.Write(data); err != nil {
		// We can't return an error to the client at this point
		logger.WithError(err).Warn("Error writing response")
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError renders err as a JSON error with the status of its code
func writeError(w http.ResponseWriter, err error) {
	e := apperr.From(err)
	writeJSON(w, e.Status, ErrorResponse{Success: false, Error: e.Message, Code: e.Code})
}
