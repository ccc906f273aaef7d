package api_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/patasfelizes/clinic-api/internal/email"
	appointmentHandler "github.com/patasfelizes/clinic-api/internal/handler/appointment"
	auditHandler "github.com/patasfelizes/clinic-api/internal/handler/audit"
	authHandler "github.com/patasfelizes/clinic-api/internal/handler/auth"
	dashboardHandler "github.com/patasfelizes/clinic-api/internal/handler/dashboard"
	healthHandler "github.com/patasfelizes/clinic-api/internal/handler/health"
	inventoryHandler "github.com/patasfelizes/clinic-api/internal/handler/inventory"
	medicalHandler "github.com/patasfelizes/clinic-api/internal/handler/medical"
	notificationHandler "github.com/patasfelizes/clinic-api/internal/handler/notification"
	patientHandler "github.com/patasfelizes/clinic-api/internal/handler/patient"
	saleHandler "github.com/patasfelizes/clinic-api/internal/handler/sale"
	tutorHandler "github.com/patasfelizes/clinic-api/internal/handler/tutor"
	"github.com/patasfelizes/clinic-api/internal/middleware"
	"github.com/patasfelizes/clinic-api/internal/repository/memory"
	"github.com/patasfelizes/clinic-api/internal/router"
	appointmentService "github.com/patasfelizes/clinic-api/internal/service/appointment"
	auditService "github.com/patasfelizes/clinic-api/internal/service/audit"
	authService "github.com/patasfelizes/clinic-api/internal/service/auth"
	dashboardService "github.com/patasfelizes/clinic-api/internal/service/dashboard"
	inventoryService "github.com/patasfelizes/clinic-api/internal/service/inventory"
	medicalService "github.com/patasfelizes/clinic-api/internal/service/medical"
	notificationService "github.com/patasfelizes/clinic-api/internal/service/notification"
	patientService "github.com/patasfelizes/clinic-api/internal/service/patient"
	saleService "github.com/patasfelizes/clinic-api/internal/service/sale"
	tutorService "github.com/patasfelizes/clinic-api/internal/service/tutor"
	"github.com/patasfelizes/clinic-api/pkg/auth"
	"github.com/patasfelizes/clinic-api/pkg/logger"
	"github.com/patasfelizes/clinic-api/pkg/messaging"
	"github.com/patasfelizes/clinic-api/pkg/metrics"
	"github.com/patasfelizes/clinic-api/pkg/security"
	"github.com/patasfelizes/clinic-api/pkg/validator"
)

var (
	setupOnce   sync.Once
	testMetrics *metrics.Metrics
)

// newTestServer builds the whole application in-process over a fresh
// seeded registry. Metrics are shared across tests: prometheus
// registration is once per process.
func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	setupOnce.Do(func() {
		validator.RegisterBindings()
		testMetrics = metrics.NewMetrics("clinic_test")
	})

	store, err := memory.NewStore()
	require.NoError(t, err)
	store.SetMetrics(testMetrics)

	appLogger := logger.NewLogger(&logger.Config{Output: io.Discard})

	tutorRepo := memory.NewTutorRepository(store)
	patientRepo := memory.NewPatientRepository(store)
	appointmentRepo := memory.NewAppointmentRepository(store)
	medicalRepo := memory.NewMedicalRecordRepository(store)
	productRepo := memory.NewProductRepository(store)
	saleRepo := memory.NewSaleRepository(store)
	notificationRepo := memory.NewNotificationRepository(store)
	userRepo := memory.NewUserRepository(store)
	auditRepo := memory.NewAuditRepository()

	broker := messaging.NewInProcBroker()
	emailSvc := email.NewService(email.Config{}, appLogger)
	jwtSvc := auth.NewJWTService(auth.Config{Secret: "test-secret", Expiry: time.Hour})

	auditSvc := auditService.NewService(auditRepo, appLogger)
	notificationSvc := notificationService.NewService(notificationRepo, broker, testMetrics, appLogger)
	tutorSvc := tutorService.NewService(tutorRepo, auditSvc)
	patientSvc := patientService.NewService(patientRepo, tutorRepo, auditSvc)
	appointmentSvc := appointmentService.NewService(appointmentRepo, patientRepo, tutorRepo, userRepo, emailSvc, auditSvc, appLogger)
	medicalSvc := medicalService.NewService(medicalRepo, patientRepo, appointmentRepo, auditSvc)
	inventorySvc := inventoryService.NewService(productRepo, notificationSvc, auditSvc, testMetrics)
	saleSvc := saleService.NewService(saleRepo, productRepo, tutorRepo, patientRepo, notificationSvc, auditSvc, testMetrics)
	authSvc := authService.NewService(userRepo, jwtSvc, security.NewBcryptHasher(4), auditSvc)
	dashboardSvc := dashboardService.NewService(patientRepo, appointmentRepo, productRepo, saleRepo, notificationRepo)

	handlers := router.Handlers{
		Health:       healthHandler.NewHandler(),
		Auth:         authHandler.NewHandler(authSvc),
		Tutor:        tutorHandler.NewHandler(tutorSvc, patientSvc),
		Patient:      patientHandler.NewHandler(patientSvc, appointmentSvc, medicalSvc),
		Appointment:  appointmentHandler.NewHandler(appointmentSvc),
		Medical:      medicalHandler.NewHandler(medicalSvc),
		Inventory:    inventoryHandler.NewHandler(inventorySvc),
		Sale:         saleHandler.NewHandler(saleSvc),
		Notification: notificationHandler.NewHandler(notificationSvc),
		Dashboard:    dashboardHandler.NewHandler(dashboardSvc),
		Audit:        auditHandler.NewHandler(auditSvc),
	}

	r := router.NewRouter(middleware.NewAuthMiddleware(authSvc), handlers, testMetrics, router.Config{
		CORSConfig: middleware.DefaultCORSConfig(),
	})
	r.Setup()

	srv := httptest.NewServer(r.Engine())
	t.Cleanup(srv.Close)
	return srv
}

type apiResponse struct {
	Status  string          `json:"status"`
	Message string          `json:"message,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
}

func doRequest(t *testing.T, srv *httptest.Server, method, path string, body interface{}, token string) (int, apiResponse) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, srv.URL+"/api/v1"+path, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var parsed apiResponse
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &parsed))
	}
	return resp.StatusCode, parsed
}

func login(t *testing.T, srv *httptest.Server, emailAddr, password string) string {
	t.Helper()

	status, resp := doRequest(t, srv, http.MethodPost, "/auth/login", map[string]string{
		"email":    emailAddr,
		"password": password,
	}, "")
	require.Equal(t, http.StatusOK, status, resp.Message)

	var tokens struct {
		AccessToken string `json:"access_token"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &tokens))
	require.NotEmpty(t, tokens.AccessToken)
	return tokens.AccessToken
}
