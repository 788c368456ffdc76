package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"dirtrack/internal/app/server"
	"dirtrack/internal/platform/config"
)

type envelope struct {
	Data  json.RawMessage `json:"data"`
	Error any             `json:"error"`
}

func testConfig(t *testing.T, dbURL string) config.Config {
	t.Helper()
	return config.Config{
		DatabaseURL:       dbURL,
		JWTSecret:         "test-secret",
		Environment:       "test",
		SeedAdminEmail:    "admin@test.local",
		SeedAdminPassword: "ChangeMe123!",
		SeedAdminName:     "Test Admin",
		AllowSelfSignup:   true,
		StorageDir:        t.TempDir(),
		PublicStoragePath: "/storage",
		RunMigrations:     true,
		MigrationsDir:     "../../../../migrations",
		RunSeed:           true,
		MaxBodyBytes:      10485760,
	}
}

func TestTimesheetToDIRJourney(t *testing.T) {
	dbURL := os.Getenv("TEST_DATABASE_URL")
	if dbURL == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	cfg := testConfig(t, dbURL)
	app, err := server.New(context.Background(), cfg)
	if err != nil {
		t.Fatalf("failed to start app: %v", err)
	}
	defer app.Close()

	ts := httptest.NewServer(app.Router)
	defer ts.Close()
	client := ts.Client()

	adminToken := login(t, client, ts.URL, cfg.SeedAdminEmail, cfg.SeedAdminPassword)

	email := fmt.Sprintf("journey-%d@example.com", time.Now().UnixNano())
	employeeID := signup(t, client, ts.URL, email, "Journey Worker", "Password123!")

	// salary 104000 -> hourly 50, adjusted pay for 16h comes to ~309.85
	patchJSON(t, client, ts.URL+"/api/v1/admin/employees/"+employeeID+"/salary", adminToken,
		map[string]any{"salary": 104000.0}, http.StatusOK)

	workerToken := login(t, client, ts.URL, email, "Password123!")
	postJSON(t, client, ts.URL+"/api/v1/tickets", workerToken, map[string]any{
		"dirNumber":    "DIR-2024-100",
		"projectTitle": "Bridge Retrofit",
		"dateWorked":   "2024-03-05",
		"hoursWorked":  16.0,
	}, http.StatusCreated)

	periods := getPeriods(t, client, ts.URL, adminToken)
	group := findGroup(t, periods, "2024-03-1", employeeID)
	if group.TotalHours != 16 {
		t.Fatalf("expected 16 hours, got %v", group.TotalHours)
	}
	if group.TotalAdjustedPay == nil || math.Abs(*group.TotalAdjustedPay-309.85) > 0.01 {
		t.Fatalf("unexpected adjusted pay: %v", group.TotalAdjustedPay)
	}
	if group.Status != "pending" {
		t.Fatalf("expected initial status pending, got %s", group.Status)
	}

	postJSON(t, client, ts.URL+"/api/v1/admin/periods/status", adminToken, map[string]any{
		"periodKey":  "2024-03-1",
		"employeeId": employeeID,
		"status":     "awaiting_pay",
	}, http.StatusOK)

	xmlBody := generateXML(t, client, ts.URL, adminToken, employeeID)
	if !strings.Contains(xmlBody, "<DIRSubmission>") {
		t.Fatalf("expected DIRSubmission root, got: %.200s", xmlBody)
	}
	if !strings.Contains(xmlBody, "DIR-2024-100") {
		t.Fatal("expected ticket DIR number in document")
	}
	if strings.Contains(xmlBody, "Pending Salary") {
		t.Fatal("salary is set, document must not carry pending markers")
	}

	periods = getPeriods(t, client, ts.URL, adminToken)
	group = findGroup(t, periods, "2024-03-1", employeeID)
	if group.Status != "ready_for_dir" {
		t.Fatalf("expected ready_for_dir after generation, got %s", group.Status)
	}
	firstRecordID := group.EmployeePeriodID

	// regenerating must update the same record, never create a second one
	generateXML(t, client, ts.URL, adminToken, employeeID)
	periods = getPeriods(t, client, ts.URL, adminToken)
	group = findGroup(t, periods, "2024-03-1", employeeID)
	if group.EmployeePeriodID != firstRecordID {
		t.Fatalf("regeneration changed record identity: %s vs %s", firstRecordID, group.EmployeePeriodID)
	}
}

func TestCSVImportJourney(t *testing.T) {
	dbURL := os.Getenv("TEST_DATABASE_URL")
	if dbURL == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	cfg := testConfig(t, dbURL)
	app, err := server.New(context.Background(), cfg)
	if err != nil {
		t.Fatalf("failed to start app: %v", err)
	}
	defer app.Close()

	ts := httptest.NewServer(app.Router)
	defer ts.Close()
	client := ts.Client()

	adminToken := login(t, client, ts.URL, cfg.SeedAdminEmail, cfg.SeedAdminPassword)

	suffix := time.Now().UnixNano()
	csvText := strings.Join([]string{
		"Ticket #,Ticket Name,DIR #,Deliverable Due Date,Total Man Hours,People",
		fmt.Sprintf(`T-1,Survey,DIR-2024-7,3/4/24,8,"Alice Import%d, Bob Import%d"`, suffix, suffix),
	}, "\n")

	req, err := http.NewRequest(http.MethodPost, ts.URL+"/api/v1/admin/import", strings.NewReader(csvText))
	if err != nil {
		t.Fatalf("failed to build request: %v", err)
	}
	req.Header.Set("Content-Type", "text/csv")
	req.Header.Set("Authorization", "Bearer "+adminToken)
	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("import request failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		t.Fatalf("expected 200, got %d: %s", resp.StatusCode, body)
	}

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	var result struct {
		RowsParsed       int `json:"rowsParsed"`
		TicketsCreated   int `json:"ticketsCreated"`
		EmployeesCreated int `json:"employeesCreated"`
	}
	if err := json.Unmarshal(env.Data, &result); err != nil {
		t.Fatalf("failed to decode import result: %v", err)
	}
	if result.RowsParsed != 1 || result.TicketsCreated != 2 || result.EmployeesCreated != 2 {
		t.Fatalf("unexpected import result: %+v", result)
	}
}

type periodGroupJSON struct {
	Key       string `json:"key"`
	Employees []struct {
		Employee struct {
			ID string `json:"id"`
		} `json:"employee"`
		TotalHours       float64  `json:"totalHours"`
		TotalAdjustedPay *float64 `json:"totalAdjustedPay"`
		Status           string   `json:"status"`
		EmployeePeriodID string   `json:"employeePeriodId"`
	} `json:"employees"`
}

type employeeGroupJSON struct {
	TotalHours       float64
	TotalAdjustedPay *float64
	Status           string
	EmployeePeriodID string
}

func findGroup(t *testing.T, periods []periodGroupJSON, key, employeeID string) employeeGroupJSON {
	t.Helper()
	for _, p := range periods {
		if p.Key != key {
			continue
		}
		for _, e := range p.Employees {
			if e.Employee.ID == employeeID {
				return employeeGroupJSON{
					TotalHours:       e.TotalHours,
					TotalAdjustedPay: e.TotalAdjustedPay,
					Status:           e.Status,
					EmployeePeriodID: e.EmployeePeriodID,
				}
			}
		}
	}
	t.Fatalf("no group for period %s employee %s", key, employeeID)
	return employeeGroupJSON{}
}

func getPeriods(t *testing.T, client *http.Client, baseURL, token string) []periodGroupJSON {
	t.Helper()
	env := doJSON(t, client, http.MethodGet, baseURL+"/api/v1/admin/periods", token, nil, http.StatusOK)
	var periods []periodGroupJSON
	if err := json.Unmarshal(env.Data, &periods); err != nil {
		t.Fatalf("failed to decode periods: %v", err)
	}
	return periods
}

func generateXML(t *testing.T, client *http.Client, baseURL, token, employeeID string) string {
	t.Helper()
	payload, _ := json.Marshal(map[string]any{"periodKey": "2024-03-1", "employeeId": employeeID})
	req, err := http.NewRequest(http.MethodPost, baseURL+"/api/v1/admin/periods/xml", bytes.NewReader(payload))
	if err != nil {
		t.Fatalf("failed to build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("xml request failed: %v", err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.StatusCode, body)
	}
	if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "application/xml") {
		t.Fatalf("expected xml content type, got %s", ct)
	}
	return string(body)
}

func login(t *testing.T, client *http.Client, baseURL, email, password string) string {
	t.Helper()
	env := doJSON(t, client, http.MethodPost, baseURL+"/api/v1/auth/login", "",
		map[string]any{"email": email, "password": password}, http.StatusOK)
	var session struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(env.Data, &session); err != nil {
		t.Fatalf("failed to decode session: %v", err)
	}
	if session.Token == "" {
		t.Fatal("expected a session token")
	}
	return session.Token
}

func signup(t *testing.T, client *http.Client, baseURL, email, fullName, password string) string {
	t.Helper()
	env := doJSON(t, client, http.MethodPost, baseURL+"/api/v1/auth/signup", "",
		map[string]any{"email": email, "fullName": fullName, "password": password}, http.StatusCreated)
	var created struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(env.Data, &created); err != nil {
		t.Fatalf("failed to decode signup response: %v", err)
	}
	return created.ID
}

func postJSON(t *testing.T, client *http.Client, url, token string, payload any, wantStatus int) envelope {
	t.Helper()
	return doJSON(t, client, http.MethodPost, url, token, payload, wantStatus)
}

func patchJSON(t *testing.T, client *http.Client, url, token string, payload any, wantStatus int) envelope {
	t.Helper()
	return doJSON(t, client, http.MethodPatch, url, token, payload, wantStatus)
}

func doJSON(t *testing.T, client *http.Client, method, url, token string, payload any, wantStatus int) envelope {
	t.Helper()
	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("failed to marshal payload: %v", err)
		}
		body = bytes.NewReader(raw)
	}
	req, err := http.NewRequest(method, url, body)
	if err != nil {
		t.Fatalf("failed to build request: %v", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("request %s %s failed: %v", method, url, err)
	}
	defer resp.Body.Close()
	raw, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != wantStatus {
		t.Fatalf("%s %s: expected %d, got %d: %s", method, url, wantStatus, resp.StatusCode, raw)
	}
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		t.Fatalf("failed to decode envelope: %v", err)
	}
	return env
}
