package http

import (
	"database/sql"
	"net/http"

	"github.com/gorilla/mux"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gorilla/mux/otelmux"

	"github.com/mediassist/clinical-service/internal/assistant"
	"github.com/mediassist/clinical-service/internal/audit"
	"github.com/mediassist/clinical-service/internal/auth"
	"github.com/mediassist/clinical-service/internal/document"
	"github.com/mediassist/clinical-service/internal/messaging"
	"github.com/mediassist/clinical-service/internal/patient"
	"github.com/mediassist/clinical-service/internal/pdfrender"
	"github.com/mediassist/clinical-service/internal/practitioner"
	"github.com/mediassist/clinical-service/internal/records"
	"github.com/mediassist/clinical-service/internal/store"
	"github.com/mediassist/clinical-service/internal/study"
	"github.com/mediassist/clinical-service/internal/telemetry"
)

// Dependencies carries everything the router needs to wire the handlers.
// DB and Metrics are optional; the corresponding routes and middleware
// degrade gracefully when they are nil.
type Dependencies struct {
	Store     *store.Store
	DB        *sql.DB
	Verifier  *auth.Verifier
	Perms     auth.Permissions
	Runner    assistant.RunnerInterface
	Publisher messaging.PublisherInterface
	Metrics   *telemetry.Metrics
}

// SetupRouter initializes all routes for the application
func SetupRouter(deps Dependencies) *mux.Router {
	practitionerRepo := practitioner.NewRepository(deps.Store)
	practitionerService := practitioner.NewService(practitionerRepo, deps.Verifier)
	practitionerHandler := practitioner.NewHandler(practitionerService).WithPublisher(deps.Publisher)

	patientRepo := patient.NewRepository(deps.Store)
	patientService := patient.NewService(patientRepo)
	patientHandler := patient.NewHandler(patientService).WithPublisher(deps.Publisher)

	studyRepo := study.NewRepository(deps.Store)
	studyService := study.NewService(studyRepo)
	studyHandler := study.NewHandler(studyService)

	documentRepo := document.NewRepository(deps.Store)
	documentService := document.NewService(documentRepo)
	documentHandler := document.NewHandler(documentService)

	auditRepo := audit.NewRepository(deps.Store)
	auditService := audit.NewService(auditRepo)
	auditHandler := audit.NewHandler(auditService).WithPublisher(deps.Publisher)

	assistantService := assistant.NewService(deps.Runner)
	assistantHandler := assistant.NewHandler(
		assistantService,
		patientService,
		studyService,
		documentService,
		auditService,
		deps.Publisher,
	)

	var recordsRepo records.RepositoryInterface
	var recordsHandler *records.Handler
	if deps.DB != nil {
		repo := records.NewRepository(deps.DB)
		recordsRepo = repo
		recordsHandler = records.NewHandler(repo)
	}

	pdfHandler := pdfrender.NewHandler(pdfrender.NewRenderer(), patientService, practitionerService, recordsRepo)

	authMiddleware := auth.Middleware(deps.Verifier)
	if deps.Metrics != nil {
		authMiddleware = auth.MiddlewareWithMetrics(deps.Verifier, deps.Metrics)
	}

	requirePermission := func(per string) func(http.Handler) http.Handler {
		if deps.Metrics != nil {
			return auth.RequirePermissionWithMetrics(per, deps.Perms, deps.Metrics)
		}
		return auth.RequirePermission(per, deps.Perms)
	}

	protected := func(per string, h http.HandlerFunc) http.Handler {
		return authMiddleware(requirePermission(per)(h))
	}

	r := mux.NewRouter()
	r.Use(otelmux.Middleware("clinical-service"))

	// Public health endpoint
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok","service":"clinical-service"}`))
	}).Methods("GET")

	// Account routes
	r.HandleFunc("/auth/signup", practitionerHandler.Signup).Methods("POST")
	r.HandleFunc("/auth/login", practitionerHandler.Login).Methods("POST")
	r.Handle("/auth/logout", protected("account:manage", http.HandlerFunc(practitionerHandler.Logout))).Methods("POST")
	r.Handle("/auth/me", protected("account:manage", http.HandlerFunc(practitionerHandler.GetMe))).Methods("GET")
	r.Handle("/auth/reverify", protected("account:manage", http.HandlerFunc(practitionerHandler.Reverify))).Methods("POST")

	// Patient record routes
	r.Handle("/patients", protected("patient:create", http.HandlerFunc(patientHandler.CreatePatient))).Methods("POST")
	r.Handle("/patients", protected("patient:view", http.HandlerFunc(patientHandler.ListPatients))).Methods("GET")
	r.Handle("/patients/{id}", protected("patient:view", http.HandlerFunc(patientHandler.GetPatient))).Methods("GET")
	r.Handle("/patients/{id}", protected("patient:update", http.HandlerFunc(patientHandler.UpdatePatient))).Methods("PUT")
	r.Handle("/patients/{id}", protected("patient:delete", http.HandlerFunc(patientHandler.DeletePatient))).Methods("DELETE")
	r.Handle("/patients/{id}/vitals", protected("patient:update", http.HandlerFunc(patientHandler.RecordVitals))).Methods("POST")
	r.Handle("/patients/{id}/appointments", protected("patient:update", http.HandlerFunc(patientHandler.AddAppointment))).Methods("POST")
	r.Handle("/patients/{id}/documents", protected("patient:update", http.HandlerFunc(patientHandler.AttachDocument))).Methods("POST")
	r.Handle("/patients/{id}/export", protected("patient:view", http.HandlerFunc(patientHandler.ExportPatient))).Methods("GET")
	r.Handle("/patients/{id}/report.pdf", protected("patient:view", http.HandlerFunc(pdfHandler.PrintPatientReport))).Methods("GET")

	// Assistant routes
	r.Handle("/assistant/consult", protected("assistant:use", http.HandlerFunc(assistantHandler.Consult))).Methods("POST")
	r.Handle("/assistant/summary", protected("assistant:use", http.HandlerFunc(assistantHandler.Summarize))).Methods("POST")
	r.Handle("/assistant/guidelines", protected("assistant:use", http.HandlerFunc(assistantHandler.SearchGuidelines))).Methods("POST")
	r.Handle("/assistant/analyze", protected("assistant:use", http.HandlerFunc(assistantHandler.AnalyzeDocument))).Methods("POST")
	r.Handle("/assistant/transcript/clean", protected("assistant:use", http.HandlerFunc(assistantHandler.CleanTranscript))).Methods("POST")
	r.Handle("/assistant/transcript/soap", protected("assistant:use", http.HandlerFunc(assistantHandler.GenerateSOAPNote))).Methods("POST")
	r.Handle("/assistant/review", protected("assistant:use", http.HandlerFunc(assistantHandler.ReviewReport))).Methods("POST")

	// Study pool routes
	r.Handle("/studies", protected("study:import", http.HandlerFunc(studyHandler.ImportStudy))).Methods("POST")
	r.Handle("/studies", protected("study:view", http.HandlerFunc(studyHandler.SearchStudies))).Methods("GET")
	r.Handle("/studies/{id}", protected("study:view", http.HandlerFunc(studyHandler.GetStudy))).Methods("GET")

	// Reference library routes
	r.Handle("/documents", protected("document:upload", http.HandlerFunc(documentHandler.UploadDocument))).Methods("POST")
	r.Handle("/documents", protected("document:view", http.HandlerFunc(documentHandler.ListDocuments))).Methods("GET")
	r.Handle("/documents/{id}", protected("document:view", http.HandlerFunc(documentHandler.GetDocument))).Methods("GET")

	// Audit trail routes
	r.Handle("/audit", protected("audit:record", http.HandlerFunc(auditHandler.RecordEntry))).Methods("POST")
	r.Handle("/audit", protected("audit:view", http.HandlerFunc(auditHandler.GetTrail))).Methods("GET")
	r.Handle("/audit/export", protected("audit:view", http.HandlerFunc(auditHandler.ExportTrail))).Methods("GET")

	// PDF routes
	r.Handle("/pdf/prescription", protected("patient:update", http.HandlerFunc(pdfHandler.PrintPrescription))).Methods("POST")

	// Auxiliary relational records, only when a database is configured
	if recordsHandler != nil {
		r.Handle("/records", protected("record:manage", http.HandlerFunc(recordsHandler.CreateMedicalRecord))).Methods("POST")
		r.Handle("/records", protected("record:view", http.HandlerFunc(recordsHandler.ListMedicalRecords))).Methods("GET")
		r.Handle("/prescriptions", protected("record:manage", http.HandlerFunc(recordsHandler.CreatePrescription))).Methods("POST")
		r.Handle("/prescriptions", protected("record:view", http.HandlerFunc(recordsHandler.ListPrescriptions))).Methods("GET")
	}

	return r
}
