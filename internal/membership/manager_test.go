package membership

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"runtime"
	"sort"
	"strconv"
	"sync"

	"github.com/frahmantamala/hr-management/internal"
	employeeDatamodel "github.com/frahmantamala/hr-management/internal/core/datamodel/employee"
	teamDatamodel "github.com/frahmantamala/hr-management/internal/core/datamodel/team"
	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
)

type heldLocksKey struct{}

type heldLocks struct {
	keys    map[string]bool
	mutexes []*sync.Mutex
}

// rowLockStore behaves like postgres under READ COMMITTED: row locks taken
// inside a transaction are held until it returns and every write is visible
// immediately. Unlike the sqlite test database it lets transactions overlap.
type rowLockStore struct {
	mu        sync.Mutex
	rows      map[string]*sync.Mutex
	teams     map[int64]*teamDatamodel.Team
	employees map[int64]*int64
	nextID    int64
}

func newRowLockStore(teamIDs ...int64) *rowLockStore {
	s := &rowLockStore{
		rows:      make(map[string]*sync.Mutex),
		teams:     make(map[int64]*teamDatamodel.Team),
		employees: make(map[int64]*int64),
		nextID:    100,
	}
	for _, id := range teamIDs {
		s.teams[id] = &teamDatamodel.Team{ID: id, Name: "team-" + strconv.FormatInt(id, 10)}
	}
	return s
}

func (s *rowLockStore) WithinTransaction(ctx context.Context, fn func(context.Context) error) error {
	if _, ok := ctx.Value(heldLocksKey{}).(*heldLocks); ok {
		return fn(ctx)
	}
	held := &heldLocks{keys: make(map[string]bool)}
	defer func() {
		for i := len(held.mutexes) - 1; i >= 0; i-- {
			held.mutexes[i].Unlock()
		}
	}()
	return fn(context.WithValue(ctx, heldLocksKey{}, held))
}

func (s *rowLockStore) lock(ctx context.Context, key string) {
	held := ctx.Value(heldLocksKey{}).(*heldLocks)
	if held.keys[key] {
		return
	}
	s.mu.Lock()
	m, ok := s.rows[key]
	if !ok {
		m = &sync.Mutex{}
		s.rows[key] = m
	}
	s.mu.Unlock()

	runtime.Gosched()
	m.Lock()
	held.keys[key] = true
	held.mutexes = append(held.mutexes, m)
}

func (s *rowLockStore) LockTeam(ctx context.Context, teamID int64) (*teamDatamodel.Team, error) {
	s.lock(ctx, "team:"+strconv.FormatInt(teamID, 10))
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.teams[teamID]
	if !ok {
		return nil, nil
	}
	cp := *t
	return &cp, nil
}

func (s *rowLockStore) LockEmployee(ctx context.Context, employeeID int64) (*employeeDatamodel.Employee, error) {
	s.lock(ctx, "employee:"+strconv.FormatInt(employeeID, 10))
	s.mu.Lock()
	defer s.mu.Unlock()
	teamID, ok := s.employees[employeeID]
	if !ok {
		return nil, nil
	}
	return &employeeDatamodel.Employee{ID: employeeID, TeamID: copyID(teamID)}, nil
}

func (s *rowLockStore) LockTeamMembers(ctx context.Context, teamID int64) error {
	s.mu.Lock()
	var ids []int64
	for id, t := range s.employees {
		if t != nil && *t == teamID {
			ids = append(ids, id)
		}
	}
	s.mu.Unlock()

	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	for _, id := range ids {
		s.lock(ctx, "employee:"+strconv.FormatInt(id, 10))
	}
	return nil
}

func (s *rowLockStore) CreateEmployee(_ context.Context, employee *employeeDatamodel.Employee) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	employee.ID = s.nextID
	s.employees[employee.ID] = copyID(employee.TeamID)
	return nil
}

func (s *rowLockStore) SetEmployeeTeam(_ context.Context, employeeID int64, teamID *int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.employees[employeeID]; !ok {
		return internal.ErrEmployeeNotFound
	}
	s.employees[employeeID] = copyID(teamID)
	return nil
}

func (s *rowLockStore) DetachTeamMembers(_ context.Context, teamID int64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int64
	for id, t := range s.employees {
		if t != nil && *t == teamID {
			s.employees[id] = nil
			n++
		}
	}
	return n, nil
}

func (s *rowLockStore) DeleteEmployeeRecords(context.Context, int64) error {
	return nil
}

func (s *rowLockStore) DeleteEmployee(_ context.Context, employeeID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.employees[employeeID]; !ok {
		return internal.ErrEmployeeNotFound
	}
	delete(s.employees, employeeID)
	return nil
}

func (s *rowLockStore) DeleteTeam(_ context.Context, teamID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.teams, teamID)
	return nil
}

func (s *rowLockStore) IncrementMembers(_ context.Context, teamID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if t, ok := s.teams[teamID]; ok {
		t.TotalMembers++
	}
	return nil
}

func (s *rowLockStore) DecrementMembers(_ context.Context, teamID int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.teams[teamID]
	if !ok || t.TotalMembers == 0 {
		return false, nil
	}
	t.TotalMembers--
	return true, nil
}

func (s *rowLockStore) CountMembers(_ context.Context, teamID int64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.live(teamID), nil
}

func (s *rowLockStore) SetMembers(_ context.Context, teamID int64, total int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if t, ok := s.teams[teamID]; ok {
		t.TotalMembers = int(total)
	}
	return nil
}

func (s *rowLockStore) Audit(context.Context) ([]TeamAudit, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]TeamAudit, 0, len(s.teams))
	for id, t := range s.teams {
		out = append(out, TeamAudit{
			TeamID:        id,
			Name:          t.Name,
			StoredMembers: int64(t.TotalMembers),
			SeedMembers:   int64(t.MemberSeed),
			LiveMembers:   s.live(id),
		})
	}
	return out, nil
}

// live must be called with mu held.
func (s *rowLockStore) live(teamID int64) int64 {
	var n int64
	for _, t := range s.employees {
		if t != nil && *t == teamID {
			n++
		}
	}
	return n
}

func copyID(id *int64) *int64 {
	if id == nil {
		return nil
	}
	v := *id
	return &v
}

// race starts every fn at once and waits for all of them.
func race(fns ...func()) {
	start := make(chan struct{})
	var wg sync.WaitGroup
	for _, fn := range fns {
		wg.Add(1)
		go func(fn func()) {
			defer ginkgo.GinkgoRecover()
			defer wg.Done()
			<-start
			fn()
		}(fn)
	}
	close(start)
	wg.Wait()
}

var _ = ginkgo.Describe("Manager under overlapping transactions", func() {
	const rounds = 200

	var (
		ctx   context.Context
		quiet *slog.Logger
	)

	ginkgo.BeforeEach(func() {
		ctx = context.Background()
		quiet = slog.New(slog.NewTextHandler(io.Discard, nil))
	})

	newManager := func(store *rowLockStore) *Manager {
		return NewManager(store, store, store, nil, quiet)
	}

	expectConsistent := func(manager *Manager) {
		report, err := manager.Audit(ctx)
		gomega.Expect(err).NotTo(gomega.HaveOccurred())
		for _, t := range report.Teams {
			gomega.Expect(t.StoredMembers).To(gomega.Equal(t.Expected()), "team %d", t.TeamID)
		}
		gomega.Expect(report.Inconsistent).To(gomega.BeZero())
	}

	createIn := func(manager *Manager, teamID int64) int64 {
		employee := &employeeDatamodel.Employee{TeamID: &teamID}
		gomega.Expect(manager.OnEmployeeCreate(ctx, employee)).To(gomega.Succeed())
		return employee.ID
	}

	ginkgo.It("should count one employee once when two moves race", func() {
		for i := 0; i < rounds; i++ {
			// Given one employee in team 1
			store := newRowLockStore(1, 2, 3)
			manager := newManager(store)
			id := createIn(manager, 1)

			// When it is moved to 2 and to 3 at the same time
			var errA, errB error
			race(
				func() { _, errA = manager.Assign(ctx, id, 2) },
				func() { _, errB = manager.Assign(ctx, id, 3) },
			)

			// Then exactly one team holds it
			gomega.Expect(errA).NotTo(gomega.HaveOccurred())
			gomega.Expect(errB).NotTo(gomega.HaveOccurred())
			expectConsistent(manager)
			gomega.Expect(store.teams[1].TotalMembers).To(gomega.BeZero())
			gomega.Expect(store.teams[2].TotalMembers + store.teams[3].TotalMembers).To(gomega.Equal(1))
		}
	})

	ginkgo.It("should not leave a phantom member when a move races a delete", func() {
		for i := 0; i < rounds; i++ {
			store := newRowLockStore(1, 2)
			manager := newManager(store)
			id := createIn(manager, 1)

			var assignErr, deleteErr error
			race(
				func() { _, assignErr = manager.Assign(ctx, id, 2) },
				func() { deleteErr = manager.OnEmployeeDelete(ctx, id) },
			)

			gomega.Expect(deleteErr).NotTo(gomega.HaveOccurred())
			if assignErr != nil {
				gomega.Expect(errors.Is(assignErr, internal.ErrEmployeeNotFound)).To(gomega.BeTrue())
			}
			expectConsistent(manager)
			gomega.Expect(store.teams[1].TotalMembers).To(gomega.BeZero())
			gomega.Expect(store.teams[2].TotalMembers).To(gomega.BeZero())
		}
	})

	ginkgo.It("should keep every counter exact while many employees move at once", func() {
		store := newRowLockStore(1, 2, 3, 4, 5)
		manager := newManager(store)

		var ids []int64
		for i := 0; i < 20; i++ {
			ids = append(ids, createIn(manager, int64(i%5)+1))
		}

		var fns []func()
		for i := 0; i < 100; i++ {
			id := ids[i%len(ids)]
			target := int64((i*7)%5) + 1
			fns = append(fns, func() {
				_, err := manager.Assign(ctx, id, target)
				if err != nil {
					gomega.Expect(errors.Is(err, internal.ErrEmployeeNotFound)).To(gomega.BeTrue())
				}
			})
		}
		for _, id := range ids[:5] {
			id := id
			fns = append(fns, func() {
				gomega.Expect(manager.OnEmployeeDelete(ctx, id)).To(gomega.Succeed())
			})
		}
		race(fns...)

		expectConsistent(manager)
		total := 0
		for _, t := range store.teams {
			total += t.TotalMembers
		}
		gomega.Expect(total).To(gomega.Equal(15))
	})
})
