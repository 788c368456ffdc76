package authhandler

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"dirtrack/internal/auth"
	"dirtrack/internal/domain/employee"
	"dirtrack/internal/transport/http/api"
	"dirtrack/internal/transport/http/middleware"
	"dirtrack/internal/transport/http/shared"
)

const tokenTTL = 12 * time.Hour

type Handler struct {
	Employees   *employee.Store
	JWTSecret   string
	AllowSignup bool
}

func NewHandler(employees *employee.Store, jwtSecret string, allowSignup bool) *Handler {
	return &Handler{Employees: employees, JWTSecret: jwtSecret, AllowSignup: allowSignup}
}

type loginPayload struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type signupPayload struct {
	Email    string `json:"email"`
	FullName string `json:"fullName"`
	Password string `json:"password"`
}

type sessionResponse struct {
	Token    string            `json:"token"`
	Employee employee.Employee `json:"employee"`
}

func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	var payload loginPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", reqID)
		return
	}

	id, role, hash, err := h.Employees.CredentialsByEmail(r.Context(), payload.Email)
	if err != nil || auth.CheckPassword(hash, payload.Password) != nil {
		api.Fail(w, http.StatusUnauthorized, "invalid_credentials", "invalid email or password", reqID)
		return
	}

	emp, err := h.Employees.GetByID(r.Context(), id)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "login_failed", "failed to load profile", reqID)
		return
	}

	token, err := auth.GenerateToken(h.JWTSecret, auth.Claims{
		EmployeeID: id,
		Email:      emp.Email,
		Role:       role,
	}, tokenTTL)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "login_failed", "failed to issue token", reqID)
		return
	}

	api.Success(w, sessionResponse{Token: token, Employee: emp}, reqID)
}

func (h *Handler) HandleSignup(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	if !h.AllowSignup {
		api.Fail(w, http.StatusForbidden, "signup_disabled", "self signup is disabled", reqID)
		return
	}

	var payload signupPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", reqID)
		return
	}

	v := shared.NewValidator()
	v.Required("email", payload.Email, "email is required")
	if !strings.Contains(payload.Email, "@") {
		v.Add("email", "must be a valid email address")
	}
	if len(payload.Password) < 8 {
		v.Add("password", "must be at least 8 characters")
	}
	if v.Reject(w, reqID) {
		return
	}

	hash, err := auth.HashPassword(payload.Password)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "signup_failed", "failed to create account", reqID)
		return
	}

	id := uuid.NewString()
	err = h.Employees.Create(r.Context(), id, strings.TrimSpace(payload.Email), strings.TrimSpace(payload.FullName), employee.RoleEmployee, hash)
	if err == employee.ErrEmailTaken {
		api.Fail(w, http.StatusConflict, "email_taken", "email already registered", reqID)
		return
	}
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "signup_failed", "failed to create account", reqID)
		return
	}

	api.Created(w, map[string]string{"id": id}, reqID)
}
