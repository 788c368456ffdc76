package importhandler

import (
	"io"
	"log"
	"net/http"
	"strings"

	"dirtrack/internal/domain/audit"
	"dirtrack/internal/domain/csvimport"
	"dirtrack/internal/transport/http/api"
	"dirtrack/internal/transport/http/middleware"
	"dirtrack/internal/transport/http/shared"
)

const maxImportBytes = 10 << 20

type Handler struct {
	Importer *csvimport.Importer
	Audit    *audit.Service
}

func NewHandler(importer *csvimport.Importer, auditSvc *audit.Service) *Handler {
	return &Handler{Importer: importer, Audit: auditSvc}
}

// HandleImport accepts a timesheet CSV either as a multipart "file" field or
// as a raw text body, runs the importer, and reports counts plus per-row
// failures. A header-level problem rejects the whole upload; row and person
// level problems are recorded and the batch continues.
func (h *Handler) HandleImport(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	csvText, err := readCSV(r)
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_upload", err.Error(), reqID)
		return
	}
	if strings.TrimSpace(csvText) == "" {
		api.Fail(w, http.StatusBadRequest, "invalid_upload", "empty CSV upload", reqID)
		return
	}

	result, err := h.Importer.Run(r.Context(), csvText)
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "import_rejected", err.Error(), reqID)
		return
	}

	user, _ := middleware.GetUser(r.Context())
	if err := h.Audit.Record(r.Context(), user.EmployeeID, "import.completed", "import", "", reqID,
		shared.ClientIP(r), nil, result); err != nil {
		log.Printf("audit record failed: %v (requestId=%s)", err, reqID)
	}

	api.Success(w, result, reqID)
}

func readCSV(r *http.Request) (string, error) {
	contentType := r.Header.Get("Content-Type")
	if strings.HasPrefix(contentType, "multipart/form-data") {
		if err := r.ParseMultipartForm(maxImportBytes); err != nil {
			return "", err
		}
		file, _, err := r.FormFile("file")
		if err != nil {
			return "", err
		}
		defer file.Close()
		body, err := io.ReadAll(io.LimitReader(file, maxImportBytes))
		if err != nil {
			return "", err
		}
		return string(body), nil
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, maxImportBytes))
	if err != nil {
		return "", err
	}
	return string(body), nil
}
