package membership

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/frahmantamala/hr-management/internal/core/events"
	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
)

func TestMembership(t *testing.T) {
	gomega.RegisterFailHandler(ginkgo.Fail)
	ginkgo.RunSpecs(t, "Membership Module Suite")
}

type countingAuditor struct {
	calls  atomic.Int32
	report *AuditReport
	err    error
}

func (a *countingAuditor) Audit(_ context.Context) (*AuditReport, error) {
	a.calls.Add(1)
	return a.report, a.err
}

var _ = ginkgo.Describe("EventHandler", func() {
	var (
		auditor *countingAuditor
		handler *EventHandler
		bus     *events.EventBus
		quiet   *slog.Logger
	)

	ginkgo.BeforeEach(func() {
		quiet = slog.New(slog.NewTextHandler(io.Discard, nil))
		auditor = &countingAuditor{report: &AuditReport{}}
		handler = NewEventHandler(auditor, quiet)
		bus = events.NewEventBus(quiet)
	})

	ginkgo.It("should subscribe to every membership event", func() {
		handler.RegisterEventHandlers(bus)

		gomega.Expect(bus.HandlerCount(events.EventTypeEmployeeCreated)).To(gomega.Equal(1))
		gomega.Expect(bus.HandlerCount(events.EventTypeEmployeeTeamChanged)).To(gomega.Equal(1))
		gomega.Expect(bus.HandlerCount(events.EventTypeEmployeeDeleted)).To(gomega.Equal(1))
	})

	ginkgo.It("should audit once per published event", func() {
		// Given
		handler.RegisterEventHandlers(bus)
		teamID := int64(3)

		// When
		gomega.Expect(bus.Publish(context.Background(), events.NewEmployeeCreatedEvent(1, &teamID))).To(gomega.Succeed())
		gomega.Expect(bus.Publish(context.Background(), events.NewEmployeeTeamChangedEvent(1, &teamID, 4))).To(gomega.Succeed())

		// Then
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		gomega.Expect(bus.Drain(ctx)).To(gomega.Succeed())
		gomega.Expect(auditor.calls.Load()).To(gomega.Equal(int32(2)))
	})

	ginkgo.It("should return the audit failure", func() {
		auditor.err = errors.New("connection reset")

		err := handler.HandleMembershipChanged(context.Background(), events.NewEmployeeDeletedEvent(1, nil))

		gomega.Expect(err).To(gomega.MatchError("connection reset"))
	})
})
