package unit

import (
	"context"
	"fmt"
	"time"

	auditservice "pledgewall/contexts/donation-pledges/audit-service"
	auditkv "pledgewall/contexts/donation-pledges/audit-service/adapters/kv"
	pledgeservice "pledgewall/contexts/donation-pledges/pledge-service"
	pledgekv "pledgewall/contexts/donation-pledges/pledge-service/adapters/kv"
	"pledgewall/internal/platform/kv/memory"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.now = c.now.Add(d)
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)}
}

type sequenceIDs struct {
	prefix string
	next   int
}

func (g *sequenceIDs) NewID(_ context.Context) (string, error) {
	g.next++
	return fmt.Sprintf("%s-%d", g.prefix, g.next), nil
}

func newTestStack(clock *fakeClock) (*memory.Store, pledgeservice.Module, auditservice.Module) {
	store := memory.NewStore()
	audit := auditservice.NewModule(auditservice.Dependencies{
		Repo:  auditkv.NewRepository(store, nil),
		Clock: clock,
		IDGen: &sequenceIDs{prefix: "audit"},
	})
	pledges := pledgeservice.NewModule(pledgeservice.Dependencies{
		Pledges: pledgekv.NewRepository(store, nil),
		Audit:   audit.Service,
		Clock:   clock,
		IDGen:   &sequenceIDs{prefix: "pledge"},
	})
	return store, pledges, audit
}
