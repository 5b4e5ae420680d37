package postgres_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/frahmantamala/hr-management/internal"
	"github.com/frahmantamala/hr-management/internal/attendance"
	attendancePostgres "github.com/frahmantamala/hr-management/internal/attendance/postgres"
	attendanceDatamodel "github.com/frahmantamala/hr-management/internal/core/datamodel/attendance"
	employeeDatamodel "github.com/frahmantamala/hr-management/internal/core/datamodel/employee"
	"github.com/frahmantamala/hr-management/internal/database"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestAttendancePostgres(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Attendance Postgres Suite")
}

var _ = Describe("Attendance PostgreSQL Repository", func() {
	var (
		ctx        context.Context
		db         *database.DB
		repo       attendance.RepositoryAPI
		employeeID int64
		monday     time.Time
	)

	BeforeEach(func() {
		var err error
		ctx = context.Background()
		db, err = database.OpenSQLite(":memory:")
		Expect(err).NotTo(HaveOccurred())
		repo = attendancePostgres.NewAttendanceRepository(db.Gorm)

		emp := &employeeDatamodel.Employee{FirstName: "Ada", LastName: "Lovelace", Username: "ada", PasswordHash: "x"}
		Expect(db.Gorm.Create(emp).Error).To(Succeed())
		employeeID = emp.ID

		monday = time.Date(2024, 3, 4, 9, 0, 0, 0, time.UTC)
	})

	AfterEach(func() {
		Expect(db.Close()).To(Succeed())
	})

	insert := func(entry time.Time, hours int) {
		Expect(repo.Create(ctx, &attendanceDatamodel.AttendanceLog{
			EmployeeID: employeeID,
			TimeEntry:  entry,
			TimeLeave:  entry.Add(time.Duration(hours) * time.Hour),
		})).To(Succeed())
	}

	It("should select logs whose entry and leave fall inside the range", func() {
		insert(monday, 8)
		insert(monday.AddDate(0, 0, 1), 8)
		insert(monday.AddDate(0, 0, 2), 8)

		logs, err := repo.GetInRange(ctx, monday, monday.AddDate(0, 0, 1).Add(8*time.Hour))

		Expect(err).NotTo(HaveOccurred())
		Expect(logs).To(HaveLen(2))
		Expect(logs[0].TimeEntry.Equal(monday)).To(BeTrue())
	})

	It("should exclude a log that leaves after the range end", func() {
		insert(monday, 10)

		logs, err := repo.GetInRange(ctx, monday, monday.Add(8*time.Hour))

		Expect(err).NotTo(HaveOccurred())
		Expect(logs).To(BeEmpty())
	})

	It("should report a missing employee when the foreign key rejects the insert", func() {
		err := repo.Create(ctx, &attendanceDatamodel.AttendanceLog{
			EmployeeID: employeeID + 100,
			TimeEntry:  monday,
			TimeLeave:  monday.Add(time.Hour),
		})

		Expect(errors.Is(err, internal.ErrEmployeeNotFound)).To(BeTrue())
	})

	It("should list logs by employee", func() {
		insert(monday, 8)

		logs, err := repo.GetByEmployee(ctx, employeeID)
		Expect(err).NotTo(HaveOccurred())
		Expect(logs).To(HaveLen(1))

		logs, err = repo.GetByEmployee(ctx, employeeID+1)
		Expect(err).NotTo(HaveOccurred())
		Expect(logs).To(BeEmpty())
	})

	It("should report employee existence", func() {
		exists, err := repo.EmployeeExists(ctx, employeeID)
		Expect(err).NotTo(HaveOccurred())
		Expect(exists).To(BeTrue())

		exists, err = repo.EmployeeExists(ctx, 999)
		Expect(err).NotTo(HaveOccurred())
		Expect(exists).To(BeFalse())
	})

	It("should cascade when the employee row is deleted", func() {
		insert(monday, 8)

		Expect(db.Gorm.Delete(&employeeDatamodel.Employee{}, employeeID).Error).To(Succeed())

		var count int64
		Expect(db.Gorm.Model(&attendanceDatamodel.AttendanceLog{}).Count(&count).Error).To(Succeed())
		Expect(count).To(BeZero())
	})
})
