// README: Appointment service tests (flow + invalid requests).
package appointment

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"

	"garagehub/internal/infra"
	"garagehub/internal/modules/points"
	"garagehub/internal/modules/user"
	"garagehub/internal/modules/vehicle"
	"garagehub/internal/types"
)

var testNow = time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

// TestCanTransition verifies the state machine transition table without a database.
func TestCanTransition(t *testing.T) {
	cases := []struct {
		from, to Status
		want     bool
	}{
		{StatusNone, StatusScheduled, true},
		{StatusScheduled, StatusConfirmed, true},
		{StatusConfirmed, StatusCompleted, true},
		// cancels from every open state
		{StatusScheduled, StatusCancelled, true},
		{StatusConfirmed, StatusCancelled, true},
		// terminal states have no outgoing transitions
		{StatusCompleted, StatusCancelled, false},
		{StatusCancelled, StatusScheduled, false},
		{StatusCompleted, StatusConfirmed, false},
		// skipping states
		{StatusScheduled, StatusCompleted, false},
		{StatusNone, StatusConfirmed, false},
		{StatusConfirmed, StatusScheduled, false},
	}
	for _, tc := range cases {
		got := CanTransition(tc.from, tc.to)
		if got != tc.want {
			t.Errorf("CanTransition(%s, %s) = %v, want %v", tc.from, tc.to, got, tc.want)
		}
	}
}

type fixture struct {
	svc      *Service
	store    Repository
	mechanic *user.User
	owner    *user.User
	vehicle  *vehicle.Vehicle
}

func newFixture(t *testing.T, store Repository) fixture {
	t.Helper()
	ctx := context.Background()
	log := logrus.New()
	log.SetOutput(io.Discard)

	users := user.NewService(user.NewMemoryStore(), user.NewMemoryLeaderboard(), log)
	mechanic, err := users.Register(ctx, user.RegisterCommand{Name: "Mike", Email: "mike@example.com", Role: points.RoleMechanic})
	if err != nil {
		t.Fatalf("register mechanic: %v", err)
	}
	owner, err := users.Register(ctx, user.RegisterCommand{Name: "Olga", Email: "olga@example.com", Role: points.RoleVehicleOwner})
	if err != nil {
		t.Fatalf("register owner: %v", err)
	}
	vehicles := vehicle.NewMemoryStore()
	v := &vehicle.Vehicle{ID: "car", OwnerID: owner.ID, FuelType: vehicle.FuelGasoline}
	if err := vehicles.Upsert(ctx, v); err != nil {
		t.Fatalf("seed vehicle: %v", err)
	}

	svc := NewService(store, users, vehicles, log)
	svc.now = func() time.Time { return testNow }
	return fixture{svc: svc, store: store, mechanic: mechanic, owner: owner, vehicle: v}
}

func (f fixture) command() ScheduleCommand {
	return ScheduleCommand{
		VehicleID:      f.vehicle.ID,
		MechanicID:     f.mechanic.ID,
		OwnerID:        f.owner.ID,
		ScheduledAt:    testNow.Add(48 * time.Hour),
		ServiceType:    "Oil change",
		EstimatedCost:  60,
		EstimatedHours: 0.5,
	}
}

func mustSchedule(t *testing.T, f fixture) types.ID {
	t.Helper()
	a, err := f.svc.Schedule(context.Background(), f.command())
	if err != nil {
		t.Fatalf("schedule: %v", err)
	}
	return a.ID
}

func assertStatus(t *testing.T, svc *Service, id types.ID, want Status) {
	t.Helper()
	a, err := svc.Get(context.Background(), id)
	if err != nil {
		t.Fatalf("get appointment: %v", err)
	}
	if a.Status != want {
		t.Fatalf("expected status %s, got %s", want, a.Status)
	}
}

func TestAppointmentFlowHappyPath(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	f := newFixture(t, store)
	id := mustSchedule(t, f)
	assertStatus(t, f.svc, id, StatusScheduled)

	if _, err := f.svc.Confirm(ctx, id, &f.mechanic.ID); err != nil {
		t.Fatalf("confirm: %v", err)
	}
	assertStatus(t, f.svc, id, StatusConfirmed)

	a, err := f.svc.Complete(ctx, id, &f.mechanic.ID)
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if a.Status != StatusCompleted || a.StatusVersion != 2 {
		t.Fatalf("unexpected appointment after complete: %+v", a)
	}

	events := store.Events(id)
	want := []Status{StatusScheduled, StatusConfirmed, StatusCompleted}
	if len(events) != len(want) {
		t.Fatalf("expected %d events, got %d", len(want), len(events))
	}
	for i, e := range events {
		if e.ToStatus != want[i] {
			t.Errorf("event %d: to=%s, want %s", i, e.ToStatus, want[i])
		}
	}
	if events[0].FromStatus != StatusNone || *events[0].ActorID != f.owner.ID {
		t.Errorf("unexpected first event: %+v", events[0])
	}
}

func TestAppointmentCancel(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, NewMemoryStore())

	scheduled := mustSchedule(t, f)
	if _, err := f.svc.Cancel(ctx, scheduled, &f.owner.ID); err != nil {
		t.Fatalf("cancel scheduled: %v", err)
	}
	assertStatus(t, f.svc, scheduled, StatusCancelled)

	confirmed := mustSchedule(t, f)
	if _, err := f.svc.Confirm(ctx, confirmed, nil); err != nil {
		t.Fatalf("confirm: %v", err)
	}
	if _, err := f.svc.Cancel(ctx, confirmed, nil); err != nil {
		t.Fatalf("cancel confirmed: %v", err)
	}
	assertStatus(t, f.svc, confirmed, StatusCancelled)
}

func TestAppointmentInvalidTransitions(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, NewMemoryStore())
	id := mustSchedule(t, f)

	if _, err := f.svc.Complete(ctx, id, nil); !errors.Is(err, ErrInvalidState) {
		t.Fatalf("complete from scheduled: expected ErrInvalidState, got %v", err)
	}
	if _, err := f.svc.Cancel(ctx, id, nil); err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if _, err := f.svc.Confirm(ctx, id, nil); !errors.Is(err, ErrInvalidState) {
		t.Fatalf("confirm after cancel: expected ErrInvalidState, got %v", err)
	}
	if _, err := f.svc.Cancel(ctx, id, nil); !errors.Is(err, ErrInvalidState) {
		t.Fatalf("cancel twice: expected ErrInvalidState, got %v", err)
	}
	if _, err := f.svc.Confirm(ctx, "missing", nil); !errors.Is(err, ErrNotFound) {
		t.Fatalf("confirm unknown: expected ErrNotFound, got %v", err)
	}
}

// eventlessStore commits status changes but cannot write the audit trail.
type eventlessStore struct {
	*MemoryStore
}

func (eventlessStore) AppendEvent(context.Context, *Event) error {
	return errors.New("event table unavailable")
}

func TestEventFailureIsLoggedNotReturned(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, eventlessStore{NewMemoryStore()})
	log, hook := test.NewNullLogger()
	f.svc.log = log

	id := mustSchedule(t, f)
	if _, err := f.svc.Confirm(ctx, id, &f.mechanic.ID); err != nil {
		t.Fatalf("confirm: %v", err)
	}
	assertStatus(t, f.svc, id, StatusConfirmed)

	warnings := 0
	for _, e := range hook.AllEntries() {
		if e.Level != logrus.WarnLevel {
			continue
		}
		warnings++
		if e.Data["appointment_id"] != id || e.Data[logrus.ErrorKey] == nil {
			t.Errorf("warning missing context: %+v", e.Data)
		}
	}
	if warnings != 2 {
		t.Fatalf("expected a warning per dropped event, got %d", warnings)
	}
}

func TestScheduleValidation(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, NewMemoryStore())

	cases := map[string]func(c *ScheduleCommand){
		"missing service type": func(c *ScheduleCommand) { c.ServiceType = "" },
		"in the past":          func(c *ScheduleCommand) { c.ScheduledAt = testNow.Add(-time.Hour) },
		"right now":            func(c *ScheduleCommand) { c.ScheduledAt = testNow },
		"negative cost":        func(c *ScheduleCommand) { c.EstimatedCost = -1 },
		"unknown mechanic":     func(c *ScheduleCommand) { c.MechanicID = "ghost" },
		"owner as mechanic":    func(c *ScheduleCommand) { c.MechanicID = f.owner.ID },
		"unknown vehicle":      func(c *ScheduleCommand) { c.VehicleID = "ghost" },
		"someone else's car":   func(c *ScheduleCommand) { c.OwnerID = f.mechanic.ID },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			cmd := f.command()
			mutate(&cmd)
			if _, err := f.svc.Schedule(ctx, cmd); !errors.Is(err, ErrBadRequest) {
				t.Fatalf("expected ErrBadRequest, got %v", err)
			}
		})
	}
}

func TestListSoonestFirst(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, NewMemoryStore())

	late := f.command()
	late.ScheduledAt = testNow.Add(72 * time.Hour)
	early := f.command()
	early.ScheduledAt = testNow.Add(2 * time.Hour)
	for _, cmd := range []ScheduleCommand{late, early} {
		if _, err := f.svc.Schedule(ctx, cmd); err != nil {
			t.Fatalf("schedule: %v", err)
		}
	}

	mine, err := f.svc.List(ctx, f.mechanic.ID, points.RoleMechanic)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(mine) != 2 || !mine[0].ScheduledAt.Equal(early.ScheduledAt) {
		t.Fatalf("unexpected order: %+v", mine)
	}
	theirs, err := f.svc.List(ctx, f.mechanic.ID, points.RoleVehicleOwner)
	if err != nil {
		t.Fatalf("list as owner: %v", err)
	}
	if len(theirs) != 0 {
		t.Fatalf("mechanic owns no appointments, got %d", len(theirs))
	}
	if _, err := f.svc.List(ctx, "", points.RoleMechanic); !errors.Is(err, ErrBadRequest) {
		t.Fatalf("expected ErrBadRequest for empty user, got %v", err)
	}
}

func TestConcurrentConfirmSameAppointment(t *testing.T) {
	runConcurrentConfirm(t, newFixture(t, NewMemoryStore()))
}

func TestConcurrentConfirmPostgres(t *testing.T) {
	runConcurrentConfirm(t, newFixture(t, setupTestStore(t)))
}

func runConcurrentConfirm(t *testing.T, f fixture) {
	t.Helper()
	ctx := context.Background()
	id := mustSchedule(t, f)

	var wg sync.WaitGroup
	errs := make(chan error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.svc.Confirm(ctx, id, &f.mechanic.ID)
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	success := 0
	for err := range errs {
		if err == nil {
			success++
			continue
		}
		if !errors.Is(err, ErrConflict) && !errors.Is(err, ErrInvalidState) {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if success != 1 {
		t.Fatalf("expected exactly one confirm to win, got %d", success)
	}
	assertStatus(t, f.svc, id, StatusConfirmed)
}

func setupTestStore(t *testing.T) *Store {
	t.Helper()

	dsn := os.Getenv("GARAGEHUB_TEST_DSN")
	if dsn == "" {
		t.Skip("GARAGEHUB_TEST_DSN not set; skipping DB-backed tests")
	}

	ctx := context.Background()
	db, err := pgxpool.New(ctx, dsn)
	if err != nil {
		t.Fatalf("connect db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	root, err := repoRoot()
	if err != nil {
		t.Fatalf("find repo root: %v", err)
	}
	if err := infra.Migrate(db, filepath.Join(root, "migrations")); err != nil {
		t.Fatalf("apply migration: %v", err)
	}
	if _, err := db.Exec(ctx, "TRUNCATE TABLE appointment_events, appointments"); err != nil {
		t.Fatalf("truncate tables: %v", err)
	}
	return NewStore(db)
}

func repoRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}
	for i := 0; i < 6; i++ {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", os.ErrNotExist
}
