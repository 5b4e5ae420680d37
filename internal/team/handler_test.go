package team_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"

	"github.com/frahmantamala/hr-management/internal/database"
	"github.com/frahmantamala/hr-management/internal/membership"
	membershipPostgres "github.com/frahmantamala/hr-management/internal/membership/postgres"
	"github.com/frahmantamala/hr-management/internal/team"
	teamPostgres "github.com/frahmantamala/hr-management/internal/team/postgres"
	"github.com/go-chi/chi"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Team Handler Integration", func() {
	var (
		db     *database.DB
		router *chi.Mux
	)

	do := func(method, path string, body interface{}) *httptest.ResponseRecorder {
		var reader io.Reader
		if body != nil {
			raw, err := json.Marshal(body)
			Expect(err).NotTo(HaveOccurred())
			reader = bytes.NewReader(raw)
		}
		req := httptest.NewRequest(method, path, reader)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	BeforeEach(func() {
		var err error
		db, err = database.OpenSQLite(":memory:")
		Expect(err).NotTo(HaveOccurred())

		slogger := slog.New(slog.NewTextHandler(io.Discard, nil))
		manager := membership.NewManager(
			membershipPostgres.NewMembershipRepository(db.Gorm),
			membershipPostgres.NewAuditRepository(db.SQL),
			database.NewTransactionManager(db.Gorm),
			nil,
			slogger,
		)
		service := team.NewService(teamPostgres.NewTeamRepository(db.Gorm), manager, slogger)
		handler := team.NewHandler(service)

		router = chi.NewRouter()
		router.Get("/teams", handler.ListTeams)
		router.Post("/teams", handler.CreateTeam)
		router.Get("/teams/audit", handler.Audit)
		router.Get("/teams/{id}", handler.GetTeam)
		router.Put("/teams/{id}", handler.RenameTeam)
		router.Delete("/teams/{id}", handler.DeleteTeam)
		router.Post("/teams/{id}/reconcile", handler.Reconcile)
	})

	AfterEach(func() {
		Expect(db.Close()).To(Succeed())
	})

	It("should return 404 for an empty team list", func() {
		w := do(http.MethodGet, "/teams", nil)

		Expect(w.Code).To(Equal(http.StatusNotFound))
		Expect(w.Body.String()).To(ContainSubstring("NO_RECORDS_FOUND"))
	})

	It("should create, fetch and rename a team", func() {
		w := do(http.MethodPost, "/teams", map[string]interface{}{"name": "Eng"})
		Expect(w.Code).To(Equal(http.StatusCreated))

		var created team.Team
		Expect(json.NewDecoder(w.Body).Decode(&created)).To(Succeed())
		Expect(created.TotalMembers).To(BeZero())

		w = do(http.MethodPut, "/teams/1", map[string]interface{}{"name": "Platform"})
		Expect(w.Code).To(Equal(http.StatusOK))

		w = do(http.MethodGet, "/teams/1", nil)
		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(w.Body.String()).To(ContainSubstring("Platform"))
	})

	It("should reject a body with unknown fields", func() {
		w := do(http.MethodPost, "/teams", map[string]interface{}{"name": "Eng", "leader": 1})

		Expect(w.Code).To(Equal(http.StatusBadRequest))
		Expect(w.Body.String()).To(ContainSubstring("INVALID_REQUEST_BODY"))
	})

	It("should reject a non numeric id", func() {
		w := do(http.MethodGet, "/teams/abc", nil)

		Expect(w.Code).To(Equal(http.StatusBadRequest))
		Expect(w.Body.String()).To(ContainSubstring("INVALID_ID"))
	})

	It("should return 404 when deleting a missing team", func() {
		w := do(http.MethodDelete, "/teams/7", nil)

		Expect(w.Code).To(Equal(http.StatusNotFound))
		Expect(w.Body.String()).To(ContainSubstring("TEAM_NOT_FOUND"))
	})

	It("should keep a seeded team consistent and reconcile back to its seed", func() {
		// Given a team seeded with two members
		w := do(http.MethodPost, "/teams", map[string]interface{}{"name": "Eng", "total_members": 2})
		Expect(w.Code).To(Equal(http.StatusCreated))

		w = do(http.MethodGet, "/teams/audit", nil)
		Expect(w.Code).To(Equal(http.StatusOK))
		var report membership.AuditReport
		Expect(json.NewDecoder(w.Body).Decode(&report)).To(Succeed())
		Expect(report.Inconsistent).To(BeZero())
		Expect(report.Teams[0].SeedMembers).To(Equal(int64(2)))

		// When the stored counter drifts
		Expect(db.Gorm.Exec("UPDATE teams SET total_members = 5 WHERE id = 1").Error).To(Succeed())

		w = do(http.MethodGet, "/teams/audit", nil)
		report = membership.AuditReport{}
		Expect(json.NewDecoder(w.Body).Decode(&report)).To(Succeed())
		Expect(report.Inconsistent).To(Equal(1))
		Expect(report.Teams[0].Drift()).To(Equal(int64(3)))

		// Then reconcile restores the seed
		w = do(http.MethodPost, "/teams/1/reconcile", nil)
		Expect(w.Code).To(Equal(http.StatusOK))

		w = do(http.MethodGet, "/teams/1", nil)
		var reloaded team.Team
		Expect(json.NewDecoder(w.Body).Decode(&reloaded)).To(Succeed())
		Expect(reloaded.TotalMembers).To(Equal(2))
		Expect(reloaded.MemberSeed).To(Equal(2))
	})
})
