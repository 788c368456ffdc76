package periodhandler

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
	"dirtrack/internal/domain/employee"
	"dirtrack/internal/domain/payperiod"
	"dirtrack/internal/domain/payroll"
	"dirtrack/internal/domain/ticket"
	"dirtrack/internal/domain/wage"
	"dirtrack/internal/transport/http/api"
	"dirtrack/internal/transport/http/middleware"
	"dirtrack/internal/transport/http/shared"
)

type Handler struct {
	Employees *employee.Store
	Tickets   *ticket.Store
	Periods   *payroll.Store
	Audit     *audit.Service
}

func NewHandler(employees *employee.Store, tickets *ticket.Store, periods *payroll.Store, auditSvc *audit.Service) *Handler {
	return &Handler{Employees: employees, Tickets: tickets, Periods: periods, Audit: auditSvc}
}

// HandleList returns every pay period that has at least one ticket, newest
// first, with per-employee and per-period aggregates.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	tickets, err := h.Tickets.ListAll(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "list_failed", "failed to list tickets", reqID)
		return
	}
	records, err := h.Periods.List(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "list_failed", "failed to load period records", reqID)
		return
	}

	api.Success(w, payroll.BuildPeriods(tickets, records), reqID)
}

type detailResponse struct {
	Period payroll.PeriodGroup   `json:"period"`
	Group  payroll.EmployeeGroup `json:"group"`
}

// HandleDetail returns one employee's aggregate for one period.
func (h *Handler) HandleDetail(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	period, emp, tickets, record, ok := h.loadTuple(w, r, reqID)
	if !ok {
		return
	}

	group := payroll.GroupFor(emp, tickets, record)
	api.Success(w, detailResponse{
		Period: payroll.PeriodGroup{
			Period:           period,
			Key:              period.Key(),
			Label:            period.Label(),
			Employees:        []payroll.EmployeeGroup{group},
			TotalHours:       group.TotalHours,
			TotalAdjustedPay: group.TotalAdjustedPay,
			TotalCACCost:     group.TotalCACCost,
		},
		Group: group,
	}, reqID)
}

type statusPayload struct {
	PeriodKey  string `json:"periodKey"`
	EmployeeID string `json:"employeeId"`
	Status     string `json:"status"`
}

// HandleSetStatus records a workflow transition for (employee, period),
// creating the record on first touch.
func (h *Handler) HandleSetStatus(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	var payload statusPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", reqID)
		return
	}

	v := shared.NewValidator()
	v.Required("periodKey", payload.PeriodKey, "period key is required")
	v.Required("employeeId", payload.EmployeeID, "employee id is required")
	if !payroll.ValidStatus(payload.Status) {
		v.Add("status", "must be one of pending, awaiting_pay, ready_for_dir")
	}
	if v.Reject(w, reqID) {
		return
	}

	period, err := payperiod.ParseKey(payload.PeriodKey)
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_period", "period key must look like 2024-03-1", reqID)
		return
	}
	if _, err := h.Employees.GetByID(r.Context(), payload.EmployeeID); err != nil {
		if errors.Is(err, employee.ErrNotFound) {
			api.Fail(w, http.StatusNotFound, "not_found", "employee not found", reqID)
			return
		}
		api.Fail(w, http.StatusInternalServerError, "status_failed", "failed to load employee", reqID)
		return
	}

	beforeStatus := payroll.StatusPending
	if existing, err := h.Periods.Get(r.Context(), payload.EmployeeID, period); err == nil {
		beforeStatus = existing.Status
	}

	record, err := h.Periods.UpsertStatus(r.Context(), payload.EmployeeID, period, payload.Status, nil)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "status_failed", "failed to record status", reqID)
		return
	}

	user, _ := middleware.GetUser(r.Context())
	if err := h.Audit.Record(r.Context(), user.EmployeeID, "period.status_changed", "employee_period", record.ID, reqID,
		shared.ClientIP(r),
		map[string]any{"status": beforeStatus},
		map[string]any{"status": record.Status, "periodKey": period.Key(), "employeeId": payload.EmployeeID},
	); err != nil {
		log.Printf("audit record failed: %v (requestId=%s)", err, reqID)
	}

	api.Success(w, record, reqID)
}

type xmlPayload struct {
	PeriodKey  string              `json:"periodKey"`
	EmployeeID string              `json:"employeeId"`
	Check      *dirxml.CheckFields `json:"check,omitempty"`
}

// HandleGenerateXML renders the period-level DIR submission and, as a side
// effect, upserts the (employee, period) record to ready_for_dir with the
// hourly wage snapshot used for the figures. Regenerating is idempotent:
// the same tuple updates in place and never duplicates.
func (h *Handler) HandleGenerateXML(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	var payload xmlPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", reqID)
		return
	}

	period, err := payperiod.ParseKey(payload.PeriodKey)
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_period", "period key must look like 2024-03-1", reqID)
		return
	}
	emp, err := h.Employees.GetByID(r.Context(), payload.EmployeeID)
	if errors.Is(err, employee.ErrNotFound) {
		api.Fail(w, http.StatusNotFound, "not_found", "employee not found", reqID)
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "export_failed", "failed to load employee", reqID)
		return
	}

	tickets, err := h.Tickets.ListForEmployeePeriod(r.Context(), emp.ID, period.Start(), period.End())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "export_failed", "failed to load tickets", reqID)
		return
	}
	if len(tickets) == 0 {
		api.Fail(w, http.StatusNotFound, "no_tickets", "no tickets in this period for this employee", reqID)
		return
	}

	body, err := dirxml.Generate(period, emp, tickets, payload.Check, time.Now())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "export_failed", "failed to generate document", reqID)
		return
	}

	record, err := h.Periods.UpsertStatus(r.Context(), emp.ID, period, payroll.StatusReadyForDIR, wage.HourlyRate(emp.Salary))
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "export_failed", "failed to record period state", reqID)
		return
	}

	user, _ := middleware.GetUser(r.Context())
	if err := h.Audit.Record(r.Context(), user.EmployeeID, "period.xml_generated", "employee_period", record.ID, reqID,
		shared.ClientIP(r), nil,
		map[string]any{"periodKey": period.Key(), "employeeId": emp.ID, "status": record.Status, "hourlyWage": record.HourlyWage},
	); err != nil {
		log.Printf("audit record failed: %v (requestId=%s)", err, reqID)
	}

	w.Header().Set("Content-Type", "application/xml; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="dir-%s-%s.xml"`, period.Key(), emp.ID))
	w.WriteHeader(http.StatusOK)
	w.Write(body)
}

// HandleExportPDF streams the printable summary for one employee's period.
func (h *Handler) HandleExportPDF(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	period, emp, tickets, record, ok := h.loadTuple(w, r, reqID)
	if !ok {
		return
	}

	group := payroll.GroupFor(emp, tickets, record)
	body, err := payroll.PeriodPDF(period, group)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "export_failed", "failed to render pdf", reqID)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="period-%s-%s.pdf"`, period.Key(), emp.ID))
	w.WriteHeader(http.StatusOK)
	w.Write(body)
}

// loadTuple resolves the {periodKey}/{employeeID} route pair, writing the
// error response itself when anything is missing.
func (h *Handler) loadTuple(w http.ResponseWriter, r *http.Request, reqID string) (payperiod.Period, employee.Employee, []ticket.Ticket, *payroll.EmployeePeriod, bool) {
	period, err := payperiod.ParseKey(chi.URLParam(r, "periodKey"))
	if err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_period", "period key must look like 2024-03-1", reqID)
		return payperiod.Period{}, employee.Employee{}, nil, nil, false
	}
	emp, err := h.Employees.GetByID(r.Context(), chi.URLParam(r, "employeeID"))
	if errors.Is(err, employee.ErrNotFound) {
		api.Fail(w, http.StatusNotFound, "not_found", "employee not found", reqID)
		return payperiod.Period{}, employee.Employee{}, nil, nil, false
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "load_failed", "failed to load employee", reqID)
		return payperiod.Period{}, employee.Employee{}, nil, nil, false
	}
	tickets, err := h.Tickets.ListForEmployeePeriod(r.Context(), emp.ID, period.Start(), period.End())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "load_failed", "failed to load tickets", reqID)
		return payperiod.Period{}, employee.Employee{}, nil, nil, false
	}

	var record *payroll.EmployeePeriod
	if existing, err := h.Periods.Get(r.Context(), emp.ID, period); err == nil {
		record = &existing
	} else if !errors.Is(err, payroll.ErrNotFound) {
		api.Fail(w, http.StatusInternalServerError, "load_failed", "failed to load period record", reqID)
		return payperiod.Period{}, employee.Employee{}, nil, nil, false
	}
	return period, emp, tickets, record, true
}
