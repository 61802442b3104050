package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"medicore/config"
	"medicore/internal/delivery/http/handler"
	"medicore/internal/delivery/http/middleware"
	"medicore/internal/repository"
	"medicore/internal/seed"
	"medicore/internal/service"
	"medicore/internal/store"
	"medicore/internal/usecase"
	"medicore/pkg/jwt"
	"medicore/pkg/validator"

	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
)

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	log := logrus.New()
	log.SetOutput(io.Discard)

	s, err := store.Open(context.Background(), store.Options{Seed: seed.Defaults(log), Log: log})
	if err != nil {
		t.Fatalf("store.Open() error = %v", err)
	}
	t.Cleanup(func() { s.Close() })
	locks := service.NewKeyedMutex(log)
	t.Cleanup(locks.Stop)

	appointmentRepo := repository.NewAppointmentRepository()
	doctorRepo := repository.NewDoctorRepository()
	patientRepo := repository.NewPatientRepository()
	userRepo := repository.NewUserRepository()
	settingsRepo := repository.NewSettingsRepository()
	notificationRepo := repository.NewNotificationLogRepository()

	engine := service.NewScheduleEngine(log, doctorRepo, appointmentRepo)
	queue := service.NewQueueAllocator(service.QueueScopeDoctor, appointmentRepo)
	mailer := service.NewLogMailer(log, notificationRepo)
	sweep := service.NewReminderSweep(log, locks, appointmentRepo, doctorRepo, patientRepo, settingsRepo, mailer)
	jwtService := jwt.NewJWTService(config.JWTConfig{Secret: "router-test", AccessExpiry: time.Hour})
	v := validator.NewValidator()

	r := NewRouter(
		log,
		handler.NewAuthHandler(usecase.NewAuthUsecase(s, log, userRepo, jwtService), v),
		handler.NewAppointmentHandler(usecase.NewAppointmentUsecase(s, log, locks, appointmentRepo, doctorRepo, patientRepo, engine, queue), v),
		handler.NewDoctorHandler(usecase.NewDoctorUsecase(s, log, doctorRepo, appointmentRepo), v),
		handler.NewPatientHandler(usecase.NewPatientUsecase(s, log, locks, patientRepo, appointmentRepo), v),
		handler.NewUserHandler(usecase.NewUserUsecase(s, log, locks, userRepo, doctorRepo), v),
		handler.NewSettingsHandler(usecase.NewSettingsUsecase(s, log, settingsRepo), v),
		handler.NewNotificationHandler(usecase.NewNotificationUsecase(s, log, notificationRepo, patientRepo, doctorRepo, appointmentRepo, settingsRepo, mailer), v),
		handler.NewDashboardHandler(
			usecase.NewDashboardUsecase(s, log, sweep, appointmentRepo, doctorRepo, patientRepo),
			usecase.NewFinanceUsecase(s, log, appointmentRepo, doctorRepo),
			v,
		),
		handler.NewBackupHandler(usecase.NewBackupUsecase(s, log, afero.NewMemMapFs())),
		middleware.NewAuthMiddleware(jwtService),
		middleware.NewCORSMiddleware(""),
	)
	srv := httptest.NewServer(r.Setup())
	t.Cleanup(srv.Close)
	return srv
}

func call(t *testing.T, srv *httptest.Server, method, path, token string, body interface{}) (*http.Response, envelope) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatal(err)
		}
	}
	req, err := http.NewRequest(method, srv.URL+path, &buf)
	if err != nil {
		t.Fatal(err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := srv.Client().Do(req)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	var env envelope
	if strings.HasPrefix(resp.Header.Get("Content-Type"), "application/json") {
		json.NewDecoder(resp.Body).Decode(&env)
	}
	return resp, env
}

func login(t *testing.T, srv *httptest.Server, username, password string) string {
	t.Helper()
	resp, env := call(t, srv, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"username": username,
		"password": password,
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login %s status = %d", username, resp.StatusCode)
	}
	var tok struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.Unmarshal(env.Data, &tok); err != nil || tok.AccessToken == "" {
		t.Fatalf("login %s token missing: %v", username, err)
	}
	return tok.AccessToken
}

func TestRouterBookingFlow(t *testing.T) {
	srv := newTestServer(t)

	if resp, _ := call(t, srv, http.MethodGet, "/api/v1/health", "", nil); resp.StatusCode != http.StatusOK {
		t.Fatalf("health status = %d", resp.StatusCode)
	}
	if resp, _ := call(t, srv, http.MethodGet, "/api/v1/appointments", "", nil); resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("anonymous list status = %d, want 401", resp.StatusCode)
	}
	if resp, _ := call(t, srv, http.MethodPost, "/api/v1/auth/login", "", map[string]string{"username": "reception", "password": "nope"}); resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("bad login status = %d, want 401", resp.StatusCode)
	}

	desk := login(t, srv, "reception", "user123")
	booking := map[string]interface{}{
		"doctor_id":  "d1",
		"patient_id": "p1",
		"date":       "2024-06-10",
		"time":       "09:00",
	}

	tests := []struct {
		name   string
		method string
		path   string
		body   interface{}
		want   int
	}{
		{"book", http.MethodPost, "/api/v1/appointments", booking, http.StatusCreated},
		{"double book", http.MethodPost, "/api/v1/appointments", booking, http.StatusConflict},
		{"off-grid time", http.MethodPost, "/api/v1/appointments", map[string]interface{}{
			"doctor_id": "d1", "patient_id": "p1", "date": "2024-06-10", "time": "09:15",
		}, http.StatusUnprocessableEntity},
		{"bad date", http.MethodPost, "/api/v1/appointments", map[string]interface{}{
			"doctor_id": "d1", "patient_id": "p1", "date": "10/06/2024", "time": "09:00",
		}, http.StatusBadRequest},
		{"unknown doctor", http.MethodPost, "/api/v1/appointments", map[string]interface{}{
			"doctor_id": "nope", "patient_id": "p1", "date": "2024-06-10", "time": "09:00",
		}, http.StatusNotFound},
		{"admin only", http.MethodGet, "/api/v1/admin/users", nil, http.StatusForbidden},
		{"slots", http.MethodGet, "/api/v1/appointments/slots?doctor_id=d1&date=2024-06-10", nil, http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, env := call(t, srv, tt.method, tt.path, desk, tt.body)
			if resp.StatusCode != tt.want {
				t.Errorf("status = %d, want %d (%s)", resp.StatusCode, tt.want, env.Message)
			}
		})
	}

	_, env := call(t, srv, http.MethodGet, "/api/v1/appointments/slots?doctor_id=d1&date=2024-06-10", desk, nil)
	var slots struct {
		Slots []string `json:"slots"`
	}
	json.Unmarshal(env.Data, &slots)
	for _, s := range slots.Slots {
		if s == "09:00" {
			t.Error("booked slot 09:00 still listed as free")
		}
	}
}

func TestRouterBackupDownload(t *testing.T) {
	srv := newTestServer(t)
	admin := login(t, srv, "admin", "admin123")

	resp, _ := call(t, srv, http.MethodGet, "/api/v1/admin/backup", admin, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("export status = %d", resp.StatusCode)
	}
	if cd := resp.Header.Get("Content-Disposition"); !strings.Contains(cd, "medicore_backup_") {
		t.Errorf("Content-Disposition = %q", cd)
	}

	resp, _ = call(t, srv, http.MethodPost, "/api/v1/admin/backup", admin, nil)
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("empty import status = %d, want 400", resp.StatusCode)
	}
}
