// Package scheduler arms in-process timers backed by the persisted trigger
// table. At startup the table is reloaded and every trigger is re-armed, so
// reminders survive restarts. One-shot triggers whose instant elapsed while
// the process was down fire immediately, flagged as late.
package scheduler

import (
	"context"
	"fmt"
	e "remindbot/internal/core/domain/errors"
	"remindbot/internal/core/domain/logging"
	"remindbot/internal/core/domain/reminder"
	"remindbot/internal/core/domain/trigger"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

// FireFunc is invoked when a trigger fires. It must not panic the scheduler:
// panics are recovered and logged.
type FireFunc func(ctx context.Context, triggerID reminder.TriggerID, reminderID reminder.ID, late bool)

type DurableScheduler struct {
	log      logging.Logger
	triggers trigger.Repository
	fire     FireFunc
	now      func() time.Time
	cron     *cron.Cron

	mu      sync.Mutex
	timers  map[reminder.TriggerID]*time.Timer
	entries map[reminder.TriggerID]cron.EntryID
	started bool
}

func New(
	log logging.Logger,
	triggers trigger.Repository,
	fire FireFunc,
	now func() time.Time,
	location *time.Location,
) *DurableScheduler {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if triggers == nil {
		panic(e.NewNilArgumentError("triggers"))
	}
	if fire == nil {
		panic(e.NewNilArgumentError("fire"))
	}
	if now == nil {
		panic(e.NewNilArgumentError("now"))
	}
	if location == nil {
		panic(e.NewNilArgumentError("location"))
	}
	return &DurableScheduler{
		log:      log,
		triggers: triggers,
		fire:     fire,
		now:      now,
		cron:     cron.New(cron.WithLocation(location)),
		timers:   make(map[reminder.TriggerID]*time.Timer),
		entries:  make(map[reminder.TriggerID]cron.EntryID),
	}
}

// Start reloads the trigger table and re-arms every trigger. It must be
// called before the transport starts accepting commands.
func (s *DurableScheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.started {
		return e.NewInvalidStateError("scheduler is already started")
	}

	triggers, err := s.triggers.ReadAll(ctx)
	if err != nil {
		return err
	}
	elapsedCount := 0
	for _, t := range triggers {
		if t.Fires.Kind() == reminder.KindOneShot && !t.Fires.At().After(s.now()) {
			elapsedCount++
			go s.fireOneShot(t, true)
			continue
		}
		if err := s.armLocked(t); err != nil {
			return err
		}
	}
	s.cron.Start()
	s.started = true

	s.log.Info(
		ctx,
		"Scheduler started.",
		logging.Entry("triggerCount", len(triggers)),
		logging.Entry("elapsedCount", elapsedCount),
	)
	return nil
}

// Stop disarms all in-memory timers. Trigger rows stay in the table and are
// re-armed on the next Start.
func (s *DurableScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cron.Stop()
	for id, timer := range s.timers {
		timer.Stop()
		delete(s.timers, id)
	}
	// The cron instance outlives Stop, so the entries must be removed from
	// it too or the next Start would register every daily trigger twice.
	for id, entryID := range s.entries {
		s.cron.Remove(entryID)
		delete(s.entries, id)
	}
	s.started = false
}

// Arm persists the trigger first and arms the timer second, so a crash in
// between leaves a trigger that is re-armed on restart rather than a timer
// that is lost.
func (s *DurableScheduler) Arm(ctx context.Context, r reminder.Reminder) (reminder.TriggerID, error) {
	t, err := s.triggers.Create(
		ctx,
		trigger.CreateInput{
			ReminderID: r.ID,
			Fires:      r.Fires,
			CreatedAt:  s.now(),
		},
	)
	if err != nil {
		return 0, err
	}

	s.mu.Lock()
	err = s.armLocked(t)
	s.mu.Unlock()
	if err != nil {
		return 0, err
	}

	s.log.Info(
		ctx,
		"Trigger armed.",
		logging.Entry("triggerID", t.ID),
		logging.Entry("reminderID", t.ReminderID),
		logging.Entry("nextFireAt", t.Fires.NextFireAt(s.now())),
	)
	return t.ID, nil
}

func (s *DurableScheduler) Cancel(ctx context.Context, triggerID reminder.TriggerID) error {
	s.mu.Lock()
	s.disarmLocked(triggerID)
	s.mu.Unlock()
	return s.triggers.Delete(ctx, triggerID)
}

func (s *DurableScheduler) armLocked(t trigger.Trigger) error {
	switch t.Fires.Kind() {
	case reminder.KindOneShot:
		s.timers[t.ID] = time.AfterFunc(
			t.Fires.At().Sub(s.now()),
			func() { s.fireOneShot(t, false) },
		)
	case reminder.KindDaily:
		tod := t.Fires.TimeOfDay()
		entryID, err := s.cron.AddFunc(
			fmt.Sprintf("%d %d * * *", tod.Minute, tod.Hour),
			func() { s.fireDaily(t) },
		)
		if err != nil {
			return err
		}
		s.entries[t.ID] = entryID
	default:
		return e.NewInvalidStateError("trigger has an unknown fire spec kind")
	}
	return nil
}

func (s *DurableScheduler) disarmLocked(triggerID reminder.TriggerID) {
	if timer, ok := s.timers[triggerID]; ok {
		timer.Stop()
		delete(s.timers, triggerID)
	}
	if entryID, ok := s.entries[triggerID]; ok {
		s.cron.Remove(entryID)
		delete(s.entries, triggerID)
	}
}

// fireOneShot dispatches the callback and then retires the trigger: its only
// occurrence is spent whatever the delivery outcome was.
func (s *DurableScheduler) fireOneShot(t trigger.Trigger, late bool) {
	ctx := context.Background()
	defer s.recoverPanic(ctx, t)

	s.fire(ctx, t.ID, t.ReminderID, late)

	s.mu.Lock()
	delete(s.timers, t.ID)
	s.mu.Unlock()
	if err := s.triggers.Delete(ctx, t.ID); err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("triggerID", t.ID))
	}
}

func (s *DurableScheduler) fireDaily(t trigger.Trigger) {
	ctx := context.Background()
	defer s.recoverPanic(ctx, t)
	s.fire(ctx, t.ID, t.ReminderID, false)
}

func (s *DurableScheduler) recoverPanic(ctx context.Context, t trigger.Trigger) {
	if r := recover(); r != nil {
		s.log.Error(
			ctx,
			"Recovered from a panic in trigger dispatch.",
			logging.Entry("triggerID", t.ID),
			logging.Entry("reminderID", t.ReminderID),
			logging.Entry("panic", r),
		)
	}
}
