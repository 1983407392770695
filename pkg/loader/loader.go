// Package loader fetches record collections from the API into the store.
// Concurrent refreshes of a kind share one request, transient failures are
// retried, and a failed refresh leaves the previously cached collection in
// place.
package loader

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/vuet/vuet-client/pkg/api"
	"github.com/vuet/vuet-client/pkg/apperrors"
	"github.com/vuet/vuet-client/pkg/logging"
	"github.com/vuet/vuet-client/pkg/metrics"
	"github.com/vuet/vuet-client/pkg/models"
	"github.com/vuet/vuet-client/pkg/normalize"
	"github.com/vuet/vuet-client/pkg/retry"
	"github.com/vuet/vuet-client/pkg/store"
)

// API is the subset of the REST client the loader uses.
type API interface {
	ListTasks(ctx context.Context) ([]models.Task, error)
	ListEntities(ctx context.Context) ([]models.Entity, error)
	ListCategories(ctx context.Context) ([]models.Category, error)
	ListAlerts(ctx context.Context) ([]models.Alert, error)
	ListActionAlerts(ctx context.Context) ([]models.ActionAlert, error)
	ListTaskActions(ctx context.Context) ([]models.TaskAction, error)
	ListReferences(ctx context.Context) ([]models.Reference, error)
	ListReferenceGroups(ctx context.Context) ([]models.ReferenceGroup, error)
	ListSchoolYears(ctx context.Context) ([]models.SchoolYear, error)
	ListSchoolTerms(ctx context.Context) ([]models.SchoolTerm, error)
	ListSchoolBreaks(ctx context.Context) ([]models.SchoolBreak, error)
	ListRoutines(ctx context.Context) ([]models.Routine, error)
	ListMembers(ctx context.Context) ([]models.Member, error)

	CreateTask(ctx context.Context, in api.TaskInput) (models.Task, error)
	UpdateTask(ctx context.Context, id int, patch map[string]any) (models.Task, error)
	DeleteTask(ctx context.Context, id int) error
	MarkAlertsRead(ctx context.Context, ids []int) error
}

var _ API = (*api.Client)(nil)

// Config tunes a Loader.
type Config struct {
	Retry       *retry.Config // nil uses retry.DefaultConfig
	Concurrency int           // kinds fetched at once by RefreshAll; < 1 means 1
}

// fetchFunc fetches one kind and returns the store update to apply.
type fetchFunc func(ctx context.Context) (func() normalize.Stats, error)

func fetchInto[T any](list func(context.Context) ([]T, error), replace func([]T) normalize.Stats) fetchFunc {
	return func(ctx context.Context) (func() normalize.Stats, error) {
		records, err := list(ctx)
		if err != nil {
			return nil, err
		}
		return func() normalize.Stats { return replace(records) }, nil
	}
}

// Loader coordinates fetches for every record kind.
type Loader struct {
	api      API
	store    *store.Store
	cfg      Config
	recorder metrics.Recorder
	logger   *zap.Logger
	fetchers map[models.Kind]fetchFunc
	group    singleflight.Group
	now      func() time.Time

	mu     sync.RWMutex
	states map[models.Kind]State

	// commitMu orders fetch results against each other and against Logout.
	commitMu sync.Mutex
	session  uint64
	issued   map[models.Kind]uint64
	applied  map[models.Kind]uint64
}

// ticket identifies one fetch: the session it started in and its position
// among fetches of the same kind.
type ticket struct {
	session uint64
	seq     uint64
}

// ErrLoggedOut is returned by a refresh whose session ended while it ran.
// Its result is discarded.
var ErrLoggedOut = errors.New("session ended during refresh")

// New creates a Loader. recorder may be nil.
func New(client API, st *store.Store, cfg Config, recorder metrics.Recorder, logger *zap.Logger) *Loader {
	if cfg.Retry == nil {
		cfg.Retry = retry.DefaultConfig()
	}
	if cfg.Concurrency < 1 {
		cfg.Concurrency = 1
	}
	if recorder == nil {
		recorder = metrics.Nop()
	}
	l := &Loader{
		api:      client,
		store:    st,
		cfg:      cfg,
		recorder: recorder,
		logger:   logger.Named("loader"),
		now:      time.Now,
		states:   make(map[models.Kind]State),
		issued:   make(map[models.Kind]uint64),
		applied:  make(map[models.Kind]uint64),
	}
	l.fetchers = map[models.Kind]fetchFunc{
		models.KindTask:           fetchInto(client.ListTasks, st.ReplaceTasks),
		models.KindEntity:         fetchInto(client.ListEntities, st.ReplaceEntities),
		models.KindCategory:       fetchInto(client.ListCategories, st.ReplaceCategories),
		models.KindAlert:          fetchInto(client.ListAlerts, st.ReplaceAlerts),
		models.KindActionAlert:    fetchInto(client.ListActionAlerts, st.ReplaceActionAlerts),
		models.KindTaskAction:     fetchInto(client.ListTaskActions, st.ReplaceTaskActions),
		models.KindReference:      fetchInto(client.ListReferences, st.ReplaceReferences),
		models.KindReferenceGroup: fetchInto(client.ListReferenceGroups, st.ReplaceReferenceGroups),
		models.KindSchoolYear:     fetchInto(client.ListSchoolYears, st.ReplaceSchoolYears),
		models.KindSchoolTerm:     fetchInto(client.ListSchoolTerms, st.ReplaceSchoolTerms),
		models.KindSchoolBreak:    fetchInto(client.ListSchoolBreaks, st.ReplaceSchoolBreaks),
		models.KindRoutine:        fetchInto(client.ListRoutines, st.ReplaceRoutines),
		models.KindMember:         fetchInto(client.ListMembers, st.ReplaceMembers),
	}
	return l
}

// State returns the fetch state of kind.
func (l *Loader) State(kind models.Kind) State {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if s, ok := l.states[kind]; ok {
		return s
	}
	return State{Status: StatusIdle}
}

// States returns the fetch state of every kind.
func (l *Loader) States() map[models.Kind]State {
	out := make(map[models.Kind]State, len(l.fetchers))
	for _, kind := range models.AllKinds() {
		out[kind] = l.State(kind)
	}
	return out
}

func (l *Loader) setState(kind models.Kind, update func(*State)) {
	l.mu.Lock()
	defer l.mu.Unlock()
	s, ok := l.states[kind]
	if !ok {
		s = State{Status: StatusIdle}
	}
	update(&s)
	l.states[kind] = s
}

// Refresh fetches kind and replaces its collection. Calls for a kind that is
// already being fetched wait for that fetch instead of issuing another; the
// shared fetch runs under the context of the caller that started it, so
// cancelling that caller fails every caller waiting on it.
func (l *Loader) Refresh(ctx context.Context, kind models.Kind) error {
	fetch, ok := l.fetchers[kind]
	if !ok {
		return fmt.Errorf("%w: %q", apperrors.ErrUnknownKind, kind)
	}
	return l.do(ctx, kind, fetch)
}

// refetch is Refresh without joining a fetch already in flight, whose
// response may predate a mutation.
func (l *Loader) refetch(ctx context.Context, kind models.Kind) error {
	l.group.Forget(string(kind))
	return l.Refresh(ctx, kind)
}

func (l *Loader) do(ctx context.Context, kind models.Kind, fetch fetchFunc) error {
	_, err, shared := l.group.Do(string(kind), func() (any, error) {
		return nil, l.refresh(ctx, kind, fetch)
	})
	if shared {
		l.logger.Debug("Joined in-flight refresh", zap.String("kind", string(kind)))
	}
	return err
}

// begin issues a ticket for a fetch of kind and marks the kind loading.
func (l *Loader) begin(kind models.Kind) ticket {
	l.commitMu.Lock()
	defer l.commitMu.Unlock()
	l.issued[kind]++
	l.setState(kind, func(s *State) {
		s.Status = StatusLoading
		s.Err = nil
	})
	return ticket{session: l.session, seq: l.issued[kind]}
}

// commit runs fn unless the session ended or a later fetch of kind already
// committed. It reports whether fn ran and, if not, whether the session ended.
func (l *Loader) commit(kind models.Kind, t ticket, fn func()) (ran, loggedOut bool) {
	l.commitMu.Lock()
	defer l.commitMu.Unlock()
	if t.session != l.session {
		return false, true
	}
	if t.seq < l.applied[kind] {
		return false, false
	}
	l.applied[kind] = t.seq
	fn()
	return true, false
}

func (l *Loader) refresh(ctx context.Context, kind models.Kind, fetch fetchFunc) error {
	t := l.begin(kind)
	started := l.now()

	apply, err := retry.DoIfRetryableWithResult(ctx, l.cfg.Retry, func() (func() normalize.Stats, error) {
		return fetch(ctx)
	})
	l.recorder.ObserveFetch(kind, err == nil, l.now().Sub(started))

	if err != nil {
		ran, loggedOut := l.commit(kind, t, func() {
			l.setState(kind, func(s *State) {
				s.Status = StatusError
				s.Err = err
			})
		})
		if loggedOut {
			return fmt.Errorf("failed to refresh %s: %w", kind, ErrLoggedOut)
		}
		if ran {
			l.logger.Warn("Failed to refresh records",
				zap.String("kind", string(kind)),
				zap.String("error", logging.SanitizeError(err)))
		}
		return fmt.Errorf("failed to refresh %s: %w", kind, err)
	}

	var stats normalize.Stats
	var count int
	ran, loggedOut := l.commit(kind, t, func() {
		stats = apply()
		count = l.store.Snapshot().Count(kind)
		l.setState(kind, func(s *State) {
			s.Status = StatusSuccess
			s.Err = nil
			s.UpdatedAt = l.now()
			s.Records = count
		})
	})
	switch {
	case loggedOut:
		l.logger.Debug("Discarded refresh from ended session", zap.String("kind", string(kind)))
		return fmt.Errorf("failed to refresh %s: %w", kind, ErrLoggedOut)
	case !ran:
		l.logger.Debug("Discarded superseded refresh", zap.String("kind", string(kind)))
		return nil
	}
	l.logger.Debug("Refreshed records",
		zap.String("kind", string(kind)),
		zap.Int("received", stats.Input),
		zap.Int("records", count),
		zap.Duration("duration", l.now().Sub(started)))
	return nil
}

// RefreshAll refreshes every kind, at most Config.Concurrency at a time. A
// failing kind does not stop the others; all failures are returned joined.
func (l *Loader) RefreshAll(ctx context.Context) error {
	return l.refreshKinds(ctx, models.AllKinds())
}

func (l *Loader) refreshKinds(ctx context.Context, kinds []models.Kind) error {
	return l.eachKind(kinds, func(kind models.Kind) error { return l.Refresh(ctx, kind) })
}

func (l *Loader) eachKind(kinds []models.Kind, fn func(models.Kind) error) error {
	errs := make([]error, len(kinds))

	var g errgroup.Group
	g.SetLimit(l.cfg.Concurrency)
	for i, kind := range kinds {
		i, kind := i, kind
		g.Go(func() error {
			errs[i] = fn(kind)
			return nil
		})
	}
	_ = g.Wait()

	return errors.Join(errs...)
}

// taskKinds are refetched after any task mutation: alerts and actions are
// derived from tasks on the server.
var taskKinds = []models.Kind{models.KindTask, models.KindTaskAction, models.KindAlert, models.KindActionAlert}

// invalidate refetches kinds after a successful mutation. A failed refetch
// is logged and recorded in the kind's State; the mutation itself succeeded.
func (l *Loader) invalidate(ctx context.Context, kinds ...models.Kind) {
	err := l.eachKind(kinds, func(kind models.Kind) error { return l.refetch(ctx, kind) })
	if err != nil {
		l.logger.Warn("Failed to refetch after mutation", zap.String("error", logging.SanitizeError(err)))
	}
}

// CreateTask creates a task and refetches the task kinds.
func (l *Loader) CreateTask(ctx context.Context, in api.TaskInput) (models.Task, error) {
	task, err := l.api.CreateTask(ctx, in)
	if err != nil {
		return models.Task{}, fmt.Errorf("failed to create task: %w", err)
	}
	l.invalidate(ctx, taskKinds...)
	return task, nil
}

// UpdateTask patches a task and refetches the task kinds.
func (l *Loader) UpdateTask(ctx context.Context, id int, patch map[string]any) (models.Task, error) {
	task, err := l.api.UpdateTask(ctx, id, patch)
	if err != nil {
		return models.Task{}, fmt.Errorf("failed to update task %d: %w", id, err)
	}
	l.invalidate(ctx, taskKinds...)
	return task, nil
}

// DeleteTask deletes a task and refetches the task kinds.
func (l *Loader) DeleteTask(ctx context.Context, id int) error {
	if err := l.api.DeleteTask(ctx, id); err != nil {
		return fmt.Errorf("failed to delete task %d: %w", id, err)
	}
	l.invalidate(ctx, taskKinds...)
	return nil
}

// MarkAlertsRead marks alerts read and refetches alerts.
func (l *Loader) MarkAlertsRead(ctx context.Context, ids []int) error {
	if len(ids) == 0 {
		return nil
	}
	if err := l.api.MarkAlertsRead(ctx, ids); err != nil {
		return fmt.Errorf("failed to mark alerts read: %w", err)
	}
	l.invalidate(ctx, models.KindAlert)
	return nil
}

// Logout drops every cached collection and resets all states to idle.
// Fetches still in flight finish without touching the store.
func (l *Loader) Logout() {
	l.commitMu.Lock()
	l.session++
	for kind := range l.fetchers {
		l.group.Forget(string(kind))
	}
	l.store.Clear()
	l.mu.Lock()
	l.states = make(map[models.Kind]State)
	l.mu.Unlock()
	l.commitMu.Unlock()

	l.logger.Info("Logged out; cache cleared")
}
