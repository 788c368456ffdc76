package tickethandler

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"dirtrack/internal/domain/audit"
	"dirtrack/internal/domain/dirxml"
	"dirtrack/internal/domain/payperiod"
	"dirtrack/internal/domain/payroll"
	"dirtrack/internal/domain/ticket"
	"dirtrack/internal/domain/wage"
	"dirtrack/internal/platform/storage"
	"dirtrack/internal/transport/http/api"
	"dirtrack/internal/transport/http/middleware"
	"dirtrack/internal/transport/http/shared"
)

const maxDocumentBytes = 10 << 20

type Handler struct {
	Tickets *ticket.Store
	Periods *payroll.Store
	Storage *storage.Store
	Audit   *audit.Service
}

func NewHandler(tickets *ticket.Store, periods *payroll.Store, store *storage.Store, auditSvc *audit.Service) *Handler {
	return &Handler{Tickets: tickets, Periods: periods, Storage: store, Audit: auditSvc}
}

type createPayload struct {
	DIRNumber    string  `json:"dirNumber"`
	ProjectTitle string  `json:"projectTitle"`
	DateWorked   string  `json:"dateWorked"`
	HoursWorked  float64 `json:"hoursWorked"`
}

// HandleCreate records a work ticket for the authenticated employee.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", reqID)
		return
	}

	var payload createPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", reqID)
		return
	}

	v := shared.NewValidator()
	v.Required("dirNumber", payload.DIRNumber, "DIR number is required")
	v.Required("projectTitle", payload.ProjectTitle, "project title is required")
	v.Positive("hoursWorked", payload.HoursWorked, "hours worked must be greater than zero")
	dateWorked, dateOK := v.Date("dateWorked", payload.DateWorked)
	if v.Reject(w, reqID) || !dateOK {
		return
	}

	id, err := h.Tickets.Create(r.Context(), user.EmployeeID, payload.DIRNumber, payload.ProjectTitle, dateWorked, payload.HoursWorked)
	if errors.Is(err, ticket.ErrInvalidHours) {
		api.Fail(w, http.StatusBadRequest, "invalid_hours", "hours worked must be greater than zero", reqID)
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "create_failed", "failed to create ticket", reqID)
		return
	}

	api.Created(w, map[string]string{"id": id, "periodKey": payperiod.FromDate(dateWorked).Key()}, reqID)
}

// HandleListOwn returns the authenticated employee's tickets, newest first.
func (h *Handler) HandleListOwn(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", reqID)
		return
	}

	tickets, err := h.Tickets.ListByEmployee(r.Context(), user.EmployeeID)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "list_failed", "failed to list tickets", reqID)
		return
	}
	api.Success(w, tickets, reqID)
}

type adminTicketView struct {
	ticket.Ticket
	EmployeeName string   `json:"employeeName"`
	AdjustedPay  *float64 `json:"adjustedPay"`
	CACCost      float64  `json:"cacCost"`
	PeriodKey    string   `json:"periodKey"`
	PeriodStatus string   `json:"periodStatus"`
}

// HandleListAll returns every ticket decorated with its computed pay and the
// workflow status of its (employee, period) tuple. AdjustedPay is null until
// the employee's salary is set.
func (h *Handler) HandleListAll(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	tickets, err := h.Tickets.ListAll(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "list_failed", "failed to list tickets", reqID)
		return
	}
	periods, err := h.Periods.List(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "list_failed", "failed to load period records", reqID)
		return
	}

	statusByTuple := make(map[string]string, len(periods))
	for _, ep := range periods {
		key := ep.EmployeeID + "|" + payperiod.Period{Year: ep.Year, Month: ep.Month, Half: ep.Half}.Key()
		statusByTuple[key] = ep.Status
	}

	views := make([]adminTicketView, 0, len(tickets))
	for _, t := range tickets {
		period := payperiod.FromDate(t.DateWorked)
		status := payroll.StatusPending
		if recorded, ok := statusByTuple[t.EmployeeID+"|"+period.Key()]; ok {
			status = recorded
		}
		views = append(views, adminTicketView{
			Ticket:       t.Ticket,
			EmployeeName: t.Employee.DisplayName(),
			AdjustedPay:  wage.AdjustedPay(t.HoursWorked, t.Employee.Salary),
			CACCost:      wage.CACCost(t.HoursWorked),
			PeriodKey:    period.Key(),
			PeriodStatus: status,
		})
	}
	api.Success(w, views, reqID)
}

// HandleUploadDocument stores a supporting document for a ticket and marks
// the ticket completed.
func (h *Handler) HandleUploadDocument(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	ticketID := chi.URLParam(r, "ticketID")

	existing, err := h.Tickets.Get(r.Context(), ticketID)
	if errors.Is(err, ticket.ErrNotFound) {
		api.Fail(w, http.StatusNotFound, "not_found", "ticket not found", reqID)
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "upload_failed", "failed to load ticket", reqID)
		return
	}

	if err := r.ParseMultipartForm(maxDocumentBytes); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_upload", "expected multipart form with a file field", reqID)
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_upload", "file field is required", reqID)
		return
	}
	defer file.Close()

	url, err := h.Storage.Save(ticketID, header.Filename, file)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "upload_failed", "failed to store document", reqID)
		return
	}
	if err := h.Tickets.AttachDocument(r.Context(), ticketID, url); err != nil {
		api.Fail(w, http.StatusInternalServerError, "upload_failed", "failed to attach document", reqID)
		return
	}

	user, _ := middleware.GetUser(r.Context())
	if err := h.Audit.Record(r.Context(), user.EmployeeID, "ticket.document_uploaded", "ticket", ticketID, reqID,
		shared.ClientIP(r), map[string]any{"documentUrl": existing.DocumentURL}, map[string]any{"documentUrl": url}); err != nil {
		log.Printf("audit record failed: %v (requestId=%s)", err, reqID)
	}

	api.Success(w, map[string]string{"documentUrl": url, "status": ticket.StatusCompleted}, reqID)
}

// HandleExportXML renders the single-ticket DIR document as a download.
func (h *Handler) HandleExportXML(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	ticketID := chi.URLParam(r, "ticketID")

	t, err := h.Tickets.Get(r.Context(), ticketID)
	if errors.Is(err, ticket.ErrNotFound) {
		api.Fail(w, http.StatusNotFound, "not_found", "ticket not found", reqID)
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "export_failed", "failed to load ticket", reqID)
		return
	}

	body, err := dirxml.GenerateTicket(t, time.Now())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "export_failed", "failed to generate document", reqID)
		return
	}

	user, _ := middleware.GetUser(r.Context())
	if err := h.Audit.Record(r.Context(), user.EmployeeID, "ticket.xml_generated", "ticket", ticketID, reqID,
		shared.ClientIP(r), nil, map[string]any{"dirNumber": t.DIRNumber}); err != nil {
		log.Printf("audit record failed: %v (requestId=%s)", err, reqID)
	}

	w.Header().Set("Content-Type", "application/xml; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="dir-ticket-%s.xml"`, ticketID))
	w.WriteHeader(http.StatusOK)
	w.Write(body)
}
