package leave_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/frahmantamala/hr-management/internal"
	employeeDatamodel "github.com/frahmantamala/hr-management/internal/core/datamodel/employee"
	leaveDatamodel "github.com/frahmantamala/hr-management/internal/core/datamodel/leave"
	"github.com/frahmantamala/hr-management/internal/database"
	"github.com/frahmantamala/hr-management/internal/leave"
	leavePostgres "github.com/frahmantamala/hr-management/internal/leave/postgres"
	"github.com/go-chi/chi"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/datatypes"
)

var _ = Describe("Leave Handler Integration", func() {
	var (
		db        *database.DB
		router    *chi.Mux
		principal *internal.Principal
	)

	do := func(method, path string, body interface{}) *httptest.ResponseRecorder {
		var reader io.Reader
		if body != nil {
			raw, err := json.Marshal(body)
			Expect(err).NotTo(HaveOccurred())
			reader = bytes.NewReader(raw)
		}
		req := httptest.NewRequest(method, path, reader)
		req = req.WithContext(internal.ContextWithPrincipal(req.Context(), principal))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	BeforeEach(func() {
		var err error
		db, err = database.OpenSQLite(":memory:")
		Expect(err).NotTo(HaveOccurred())

		for _, username := range []string{"ada", "grace"} {
			emp := &employeeDatamodel.Employee{FirstName: username, LastName: "Test", Username: username, PasswordHash: "x"}
			Expect(db.Gorm.Create(emp).Error).To(Succeed())
		}

		service := leave.NewService(leavePostgres.NewLeaveRepository(db.Gorm), slog.New(slog.NewTextHandler(io.Discard, nil)))
		handler := leave.NewHandler(service)

		router = chi.NewRouter()
		router.Post("/daily-leave-records", handler.CreateDailyLeave)
		router.Get("/daily-leave-records/range", handler.GetDailyLeaveInRange)
		router.Post("/hourly-leave-records", handler.CreateHourlyLeave)
		router.Get("/hourly-leave-records/range", handler.GetHourlyLeaveInRange)

		principal = &internal.Principal{ID: 1, Username: "ada", Role: internal.RoleEmployee}
	})

	AfterEach(func() {
		Expect(db.Close()).To(Succeed())
	})

	It("should report a missing employee when the foreign key rejects an insert", func() {
		repo := leavePostgres.NewLeaveRepository(db.Gorm)
		start := time.Date(2024, 3, 4, 9, 0, 0, 0, time.UTC)

		err := repo.CreateHourly(context.Background(), &leaveDatamodel.HourlyLeaveRecord{
			EmployeeID:  404,
			TimeStarted: start,
			TimeEnd:     start.Add(time.Hour),
		})
		Expect(errors.Is(err, internal.ErrEmployeeNotFound)).To(BeTrue())

		err = repo.CreateDaily(context.Background(), &leaveDatamodel.DailyLeaveRecord{
			EmployeeID:  404,
			TimeStarted: datatypes.Date(start),
			TimeEnd:     datatypes.Date(start),
		})
		Expect(errors.Is(err, internal.ErrEmployeeNotFound)).To(BeTrue())
	})

	Context("daily leave", func() {
		It("should create a record and find it by date range", func() {
			w := do(http.MethodPost, "/daily-leave-records", map[string]interface{}{
				"employee_id":  1,
				"time_started": "2024-07-01",
				"time_end":     "2024-07-02",
			})
			Expect(w.Code).To(Equal(http.StatusCreated))

			w = do(http.MethodGet, "/daily-leave-records/range?start_date=2024-07-01&end_date=2024-07-31", nil)
			Expect(w.Code).To(Equal(http.StatusOK))

			var resp leave.DailyLeaveRecordsResponse
			Expect(json.NewDecoder(w.Body).Decode(&resp)).To(Succeed())
			Expect(resp.DailyLeaveRecords).To(HaveLen(1))
			Expect(resp.DailyLeaveRecords[0].TimeStarted).To(Equal("2024-07-01"))
			Expect(resp.DailyLeaveRecords[0].TimeEnd).To(Equal("2024-07-02"))
		})

		It("should exclude records that end after the range", func() {
			w := do(http.MethodPost, "/daily-leave-records", map[string]interface{}{
				"employee_id":  1,
				"time_started": "2024-07-30",
				"time_end":     "2024-08-02",
			})
			Expect(w.Code).To(Equal(http.StatusCreated))

			w = do(http.MethodGet, "/daily-leave-records/range?start_date=2024-07-01&end_date=2024-07-31", nil)
			Expect(w.Code).To(Equal(http.StatusNotFound))
			Expect(w.Body.String()).To(ContainSubstring("NO_RECORDS_FOUND"))
		})

		It("should forbid an employee recording for a colleague", func() {
			w := do(http.MethodPost, "/daily-leave-records", map[string]interface{}{
				"employee_id":  2,
				"time_started": "2024-07-01",
				"time_end":     "2024-07-01",
			})

			Expect(w.Code).To(Equal(http.StatusForbidden))
			Expect(w.Body.String()).To(ContainSubstring("FOREIGN_EMPLOYEE"))
		})

		It("should require both range parameters", func() {
			w := do(http.MethodGet, "/daily-leave-records/range?start_date=2024-07-01", nil)

			Expect(w.Code).To(Equal(http.StatusBadRequest))
			Expect(w.Body.String()).To(ContainSubstring("end_date"))
		})
	})

	Context("hourly leave", func() {
		It("should create a record and find it by time range", func() {
			w := do(http.MethodPost, "/hourly-leave-records", map[string]interface{}{
				"employee_id":  1,
				"time_started": "2024-07-01T10:00:00Z",
				"time_end":     "2024-07-01T12:00:00Z",
			})
			Expect(w.Code).To(Equal(http.StatusCreated))

			w = do(http.MethodGet, "/hourly-leave-records/range?start_date=2024-07-01T09:00:00Z&end_date=2024-07-01T18:00:00Z", nil)
			Expect(w.Code).To(Equal(http.StatusOK))

			var resp leave.HourlyLeaveRecordsResponse
			Expect(json.NewDecoder(w.Body).Decode(&resp)).To(Succeed())
			Expect(resp.HourlyLeaveRecords).To(HaveLen(1))
			Expect(resp.HourlyLeaveRecords[0].Duration().Hours()).To(BeNumerically("==", 2))
		})

		It("should let an admin record for any employee", func() {
			principal = &internal.Principal{ID: 1, Username: "root", Role: internal.RoleAdmin}

			w := do(http.MethodPost, "/hourly-leave-records", map[string]interface{}{
				"employee_id":  2,
				"time_started": "2024-07-01T10:00:00Z",
				"time_end":     "2024-07-01T11:00:00Z",
			})

			Expect(w.Code).To(Equal(http.StatusCreated))
		})

		It("should reject an inverted interval", func() {
			w := do(http.MethodPost, "/hourly-leave-records", map[string]interface{}{
				"employee_id":  1,
				"time_started": "2024-07-01T12:00:00Z",
				"time_end":     "2024-07-01T10:00:00Z",
			})

			Expect(w.Code).To(Equal(http.StatusBadRequest))
			Expect(w.Body.String()).To(ContainSubstring("INVALID_TIME_RANGE"))
		})
	})
})
