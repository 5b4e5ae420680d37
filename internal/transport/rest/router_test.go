package rest_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/frahmantamala/hr-management/internal/admin"
	adminPostgres "github.com/frahmantamala/hr-management/internal/admin/postgres"
	"github.com/frahmantamala/hr-management/internal/attendance"
	attendancePostgres "github.com/frahmantamala/hr-management/internal/attendance/postgres"
	"github.com/frahmantamala/hr-management/internal/auth"
	authPostgres "github.com/frahmantamala/hr-management/internal/auth/postgres"
	"github.com/frahmantamala/hr-management/internal/database"
	"github.com/frahmantamala/hr-management/internal/employee"
	employeePostgres "github.com/frahmantamala/hr-management/internal/employee/postgres"
	"github.com/frahmantamala/hr-management/internal/leave"
	leavePostgres "github.com/frahmantamala/hr-management/internal/leave/postgres"
	"github.com/frahmantamala/hr-management/internal/membership"
	membershipPostgres "github.com/frahmantamala/hr-management/internal/membership/postgres"
	"github.com/frahmantamala/hr-management/internal/team"
	teamPostgres "github.com/frahmantamala/hr-management/internal/team/postgres"
	"github.com/frahmantamala/hr-management/internal/transport/rest"
	"github.com/go-chi/chi"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"golang.org/x/crypto/bcrypt"
)

func TestRest(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "REST Router Suite")
}

const testSecret = "router-test-secret-0123456789abcdef"

var _ = Describe("Router", func() {
	var (
		db     *database.DB
		router *chi.Mux
	)

	do := func(method, path, token string, body interface{}) *httptest.ResponseRecorder {
		var reader io.Reader
		if body != nil {
			raw, err := json.Marshal(body)
			Expect(err).NotTo(HaveOccurred())
			reader = bytes.NewReader(raw)
		}
		req := httptest.NewRequest(method, path, reader)
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	login := func(path, username, password string) string {
		w := do(http.MethodPost, path, "", map[string]string{"username": username, "password": password})
		Expect(w.Code).To(Equal(http.StatusOK), w.Body.String())

		var tokens auth.TokenResponse
		Expect(json.NewDecoder(w.Body).Decode(&tokens)).To(Succeed())
		Expect(tokens.TokenType).To(Equal("Bearer"))
		return tokens.AccessToken
	}

	BeforeEach(func() {
		var err error
		db, err = database.OpenSQLite(":memory:")
		Expect(err).NotTo(HaveOccurred())

		quiet := slog.New(slog.NewTextHandler(io.Discard, nil))
		tokenGen := auth.NewJWTTokenGenerator(testSecret, 30*time.Minute, auth.SystemClock{})
		authService := auth.NewService(authPostgres.NewRepository(db.Gorm), tokenGen, bcrypt.MinCost, quiet)
		manager := membership.NewManager(
			membershipPostgres.NewMembershipRepository(db.Gorm),
			membershipPostgres.NewAuditRepository(db.SQL),
			database.NewTransactionManager(db.Gorm),
			nil,
			quiet,
		)
		adminService := admin.NewService(adminPostgres.NewAdminRepository(db.Gorm), authService, quiet)

		handlers := rest.Handlers{
			Auth:       auth.NewHandler(authService),
			Admin:      admin.NewHandler(adminService),
			Team:       team.NewHandler(team.NewService(teamPostgres.NewTeamRepository(db.Gorm), manager, quiet)),
			Employee:   employee.NewHandler(employee.NewService(employeePostgres.NewEmployeeRepository(db.Gorm), manager, authService, quiet)),
			Attendance: attendance.NewHandler(attendance.NewService(attendancePostgres.NewAttendanceRepository(db.Gorm), quiet)),
			Leave:      leave.NewHandler(leave.NewService(leavePostgres.NewLeaveRepository(db.Gorm), quiet)),
		}

		router = chi.NewRouter()
		rest.RegisterAllRoutes(router, db, handlers, rest.Options{
			AllowedOrigins:  []string{"http://localhost:3000"},
			HealthComponent: db.Driver,
		}, quiet)

		created, err := adminService.EnsureAdmin(context.Background(), admin.CreateAdminDTO{Username: "root", Password: "rootpassword"})
		Expect(err).NotTo(HaveOccurred())
		Expect(created).To(BeTrue())
	})

	AfterEach(func() {
		Expect(db.Close()).To(Succeed())
	})

	It("should answer liveness and readiness probes without a token", func() {
		Expect(do(http.MethodGet, "/api/v1/ping", "", nil).Code).To(Equal(http.StatusOK))

		w := do(http.MethodGet, "/api/v1/health", "", nil)
		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(w.Body.String()).To(ContainSubstring(`"sqlite"`))
	})

	It("should reject protected routes without a token", func() {
		w := do(http.MethodGet, "/api/v1/teams", "", nil)

		Expect(w.Code).To(Equal(http.StatusUnauthorized))
		Expect(w.Body.String()).To(ContainSubstring("MISSING_TOKEN"))
	})

	It("should reject a wrong admin password", func() {
		w := do(http.MethodPost, "/api/v1/auth/admin/login", "", map[string]string{"username": "root", "password": "nope"})

		Expect(w.Code).To(Equal(http.StatusUnauthorized))
		Expect(w.Body.String()).To(ContainSubstring("INVALID_CREDENTIALS"))
	})

	It("should run the admin and employee flow end to end", func() {
		adminToken := login("/api/v1/auth/admin/login", "root", "rootpassword")

		By("creating a team and an employee in it")
		w := do(http.MethodPost, "/api/v1/teams", adminToken, map[string]interface{}{"name": "Eng"})
		Expect(w.Code).To(Equal(http.StatusCreated), w.Body.String())

		w = do(http.MethodPost, "/api/v1/employees", adminToken, map[string]interface{}{
			"team_id":    1,
			"first_name": "Ada",
			"last_name":  "Lovelace",
			"username":   "ada",
			"password":   "analytical",
		})
		Expect(w.Code).To(Equal(http.StatusCreated), w.Body.String())
		var created employee.CreateEmployeeResponse
		Expect(json.NewDecoder(w.Body).Decode(&created)).To(Succeed())

		w = do(http.MethodGet, "/api/v1/teams/1", adminToken, nil)
		Expect(w.Body.String()).To(ContainSubstring(`"total_members":1`))

		By("logging in as the employee")
		employeeToken := login("/api/v1/auth/employee/login", "ada", "analytical")

		w = do(http.MethodGet, "/api/v1/employees/me", employeeToken, nil)
		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(w.Body.String()).To(ContainSubstring(`"username":"ada"`))
		Expect(w.Body.String()).NotTo(ContainSubstring("password"))

		By("keeping the two token namespaces apart")
		w = do(http.MethodGet, "/api/v1/teams", employeeToken, nil)
		Expect(w.Code).To(Equal(http.StatusUnauthorized))
		Expect(w.Body.String()).To(ContainSubstring("ROLE_MISMATCH"))

		w = do(http.MethodGet, "/api/v1/employees/me", adminToken, nil)
		Expect(w.Code).To(Equal(http.StatusUnauthorized))
		Expect(w.Body.String()).To(ContainSubstring("ROLE_MISMATCH"))

		By("writing attendance for self but not for others")
		w = do(http.MethodPost, "/api/v1/attendance-logs", employeeToken, map[string]interface{}{
			"employee_id": created.ID,
			"time_entry":  "2024-03-04T09:00:00Z",
			"time_leave":  "2024-03-04T17:00:00Z",
		})
		Expect(w.Code).To(Equal(http.StatusCreated), w.Body.String())

		w = do(http.MethodPost, "/api/v1/attendance-logs", employeeToken, map[string]interface{}{
			"employee_id": created.ID + 1,
			"time_entry":  "2024-03-04T09:00:00Z",
			"time_leave":  "2024-03-04T17:00:00Z",
		})
		Expect(w.Code).To(Equal(http.StatusForbidden))

		w = do(http.MethodGet, "/api/v1/attendance-logs/range?start_date=2024-03-01&end_date=2024-03-31", adminToken, nil)
		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(w.Body.String()).To(ContainSubstring(`"attendance_logs"`))

		By("deleting the employee and releasing the team seat")
		w = do(http.MethodDelete, "/api/v1/employees/1", adminToken, nil)
		Expect(w.Code).To(Equal(http.StatusOK))

		w = do(http.MethodGet, "/api/v1/teams/1", adminToken, nil)
		Expect(w.Body.String()).To(ContainSubstring(`"total_members":0`))

		By("refusing the token of a deleted employee")
		w = do(http.MethodGet, "/api/v1/employees/me", employeeToken, nil)
		Expect(w.Code).To(Equal(http.StatusUnauthorized))
		Expect(w.Body.String()).To(ContainSubstring("UNKNOWN_SUBJECT"))
	})

	It("should answer CORS preflight for an allowed origin", func() {
		req := httptest.NewRequest(http.MethodOptions, "/api/v1/teams", nil)
		req.Header.Set("Origin", "http://localhost:3000")
		req.Header.Set("Access-Control-Request-Method", http.MethodPost)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		Expect(w.Code).To(BeNumerically("<", 300))
		Expect(w.Header().Get("Access-Control-Allow-Origin")).To(Equal("http://localhost:3000"))
		Expect(w.Header().Values("Vary")).To(ContainElement("Origin"))
	})

	It("should return a JSON 404 for unknown routes", func() {
		w := do(http.MethodGet, "/api/v1/payroll", "", nil)

		Expect(w.Code).To(Equal(http.StatusNotFound))
		Expect(w.Body.String()).To(ContainSubstring("ROUTE_NOT_FOUND"))
	})

	It("should tag every response with a trace id", func() {
		w := do(http.MethodGet, "/api/v1/ping", "", nil)

		Expect(w.Header().Get("X-Trace-ID")).NotTo(BeEmpty())
	})
})
