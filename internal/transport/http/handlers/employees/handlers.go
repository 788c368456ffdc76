package employeehandler

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"dirtrack/internal/domain/audit"
	"dirtrack/internal/domain/employee"
	"dirtrack/internal/domain/wage"
	"dirtrack/internal/transport/http/api"
	"dirtrack/internal/transport/http/middleware"
	"dirtrack/internal/transport/http/shared"
)

type Handler struct {
	Employees *employee.Store
	Audit     *audit.Service
}

func NewHandler(employees *employee.Store, auditSvc *audit.Service) *Handler {
	return &Handler{Employees: employees, Audit: auditSvc}
}

type employeeView struct {
	employee.Employee
	HourlyRate *float64 `json:"hourlyRate"`
}

func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	employees, err := h.Employees.List(r.Context())
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "list_failed", "failed to list employees", reqID)
		return
	}

	views := make([]employeeView, 0, len(employees))
	for _, emp := range employees {
		views = append(views, employeeView{
			Employee:   emp,
			HourlyRate: wage.HourlyRate(emp.Salary),
		})
	}
	api.Success(w, views, reqID)
}

type salaryPayload struct {
	Salary *float64 `json:"salary"`
}

// HandleUpdateSalary sets or clears an employee's yearly salary. Clearing
// (salary: null) returns every derived figure for that employee to the
// pending-salary state.
func (h *Handler) HandleUpdateSalary(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	employeeID := chi.URLParam(r, "employeeID")

	var payload salaryPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", reqID)
		return
	}

	before, err := h.Employees.GetByID(r.Context(), employeeID)
	if errors.Is(err, employee.ErrNotFound) {
		api.Fail(w, http.StatusNotFound, "not_found", "employee not found", reqID)
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "update_failed", "failed to load employee", reqID)
		return
	}

	if err := h.Employees.UpdateSalary(r.Context(), employeeID, payload.Salary); err != nil {
		if errors.Is(err, employee.ErrInvalidSalary) {
			api.Fail(w, http.StatusBadRequest, "invalid_salary", "salary must not be negative", reqID)
			return
		}
		api.Fail(w, http.StatusInternalServerError, "update_failed", "failed to update salary", reqID)
		return
	}

	user, _ := middleware.GetUser(r.Context())
	if err := h.Audit.Record(r.Context(), user.EmployeeID, "employee.salary_updated", "employee", employeeID, reqID,
		shared.ClientIP(r), map[string]any{"salary": before.Salary}, map[string]any{"salary": payload.Salary}); err != nil {
		log.Printf("audit record failed: %v (requestId=%s)", err, reqID)
	}

	updated, err := h.Employees.GetByID(r.Context(), employeeID)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "update_failed", "failed to load employee", reqID)
		return
	}
	api.Success(w, employeeView{Employee: updated, HourlyRate: wage.HourlyRate(updated.Salary)}, reqID)
}
