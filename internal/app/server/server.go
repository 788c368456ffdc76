package server

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"dirtrack/internal/db"
	"dirtrack/internal/domain/audit"
	"dirtrack/internal/domain/csvimport"
	"dirtrack/internal/domain/employee"
	"dirtrack/internal/domain/payroll"
	"dirtrack/internal/domain/ticket"
	"dirtrack/internal/platform/config"
	"dirtrack/internal/platform/metrics"
	"dirtrack/internal/platform/storage"
	"dirtrack/internal/transport/http/api"
	authhandler "dirtrack/internal/transport/http/handlers/auth"
	employeehandler "dirtrack/internal/transport/http/handlers/employees"
	importhandler "dirtrack/internal/transport/http/handlers/importer"
	periodhandler "dirtrack/internal/transport/http/handlers/periods"
	tickethandler "dirtrack/internal/transport/http/handlers/tickets"
	"dirtrack/internal/transport/http/middleware"
)

type App struct {
	Config  config.Config
	DB      *pgxpool.Pool
	Router  http.Handler
	Metrics *metrics.Collector
}

// New connects, migrates, seeds, and wires the router. The returned App owns
// the pool; call Close when done.
func New(ctx context.Context, cfg config.Config) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	pool, err := db.Connect(ctx, cfg)
	if err != nil {
		return nil, err
	}

	if cfg.RunMigrations {
		if err := db.Migrate(ctx, pool, cfg.MigrationsDir); err != nil {
			pool.Close()
			return nil, err
		}
	}
	if cfg.RunSeed {
		if err := db.Seed(ctx, pool, cfg); err != nil {
			pool.Close()
			return nil, err
		}
	}

	app := &App{Config: cfg, DB: pool, Metrics: metrics.New()}
	app.Router = app.buildRouter()
	return app, nil
}

func (a *App) Close() {
	a.DB.Close()
}

func (a *App) buildRouter() http.Handler {
	employees := employee.NewStore(a.DB)
	tickets := ticket.NewStore(a.DB)
	periods := payroll.NewStore(a.DB)
	auditSvc := audit.New(a.DB)
	blobs := storage.New(a.Config.StorageDir, a.Config.PublicStoragePath)

	authH := authhandler.NewHandler(employees, a.Config.JWTSecret, a.Config.AllowSelfSignup)
	employeeH := employeehandler.NewHandler(employees, auditSvc)
	ticketH := tickethandler.NewHandler(tickets, periods, blobs, auditSvc)
	periodH := periodhandler.NewHandler(employees, tickets, periods, auditSvc)
	importH := importhandler.NewHandler(csvimport.NewImporter(employees, tickets), auditSvc)

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger(a.Metrics))
	router.Use(middleware.Recoverer)
	router.Use(middleware.SecureHeaders(a.Config.Environment == "production"))
	router.Use(middleware.BodyLimit(a.Config.MaxBodyBytes))
	router.Use(middleware.Auth(a.Config.JWTSecret))

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	router.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := a.DB.Ping(ctx); err != nil {
			http.Error(w, "db not ready", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	router.Route("/api/v1", func(r chi.Router) {
		r.Post("/auth/login", authH.HandleLogin)
		r.Post("/auth/signup", authH.HandleSignup)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth)
			r.Get("/tickets", ticketH.HandleListOwn)
			r.Post("/tickets", ticketH.HandleCreate)
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(middleware.RequireAuth)
			r.Use(middleware.RequireAdmin)

			r.Get("/tickets", ticketH.HandleListAll)
			r.Post("/tickets/{ticketID}/document", ticketH.HandleUploadDocument)
			r.Get("/tickets/{ticketID}/xml", ticketH.HandleExportXML)

			r.Get("/employees", employeeH.HandleList)
			r.Patch("/employees/{employeeID}/salary", employeeH.HandleUpdateSalary)

			r.Get("/periods", periodH.HandleList)
			r.Get("/periods/{periodKey}/{employeeID}", periodH.HandleDetail)
			r.Get("/periods/{periodKey}/{employeeID}/pdf", periodH.HandleExportPDF)
			r.Post("/periods/status", periodH.HandleSetStatus)
			r.Post("/periods/xml", periodH.HandleGenerateXML)

			r.Post("/import", importH.HandleImport)

			if a.Config.MetricsEnabled {
				r.Get("/metrics", func(w http.ResponseWriter, req *http.Request) {
					api.Success(w, a.Metrics.Snapshot(), middleware.GetRequestID(req.Context()))
				})
			}
		})
	})

	// uploaded ticket documents, served read-only
	fileServer := http.StripPrefix(a.Config.PublicStoragePath+"/", http.FileServer(http.Dir(blobs.Dir())))
	router.Get(a.Config.PublicStoragePath+"/*", func(w http.ResponseWriter, r *http.Request) {
		fileServer.ServeHTTP(w, r)
	})

	return router
}

// Run blocks serving HTTP until the listener fails.
func (a *App) Run() error {
	log.Printf("dirtrack server listening on %s", a.Config.Addr)
	return http.ListenAndServe(a.Config.Addr, a.Router)
}
