package ordering_test

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iota-uz/sitecms/pkg/auth"
	"github.com/iota-uz/sitecms/pkg/eventbus"
	"github.com/iota-uz/sitecms/pkg/ordering"
	"github.com/iota-uz/sitecms/pkg/ordering/memstore"
)

type item struct {
	ID        uuid.UUID
	Name      string
	Order     int
	Active    bool
	Primary   bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (i item) RecordID() uuid.UUID      { return i.ID }
func (i item) RecordOrder() int         { return i.Order }
func (i item) RecordActive() bool       { return i.Active }
func (i item) WithID(id uuid.UUID) item { i.ID = id; return i }
func (i item) WithOrder(order int) item { i.Order = order; return i }
func (i item) Touch(now time.Time) item {
	if i.CreatedAt.IsZero() {
		i.CreatedAt = now
	}
	i.UpdatedAt = now
	return i
}

var (
	jobs      = ordering.RootScope("jobs")
	solutions = "solutions"
)

func admin() auth.Context {
	return auth.Context{UserID: uuid.New(), Email: "admin@example.com", SessionToken: "token", ExpiresAt: time.Now().Add(time.Hour)}
}

func newManager(opts ...ordering.Option[item]) (*ordering.Manager[item], *memstore.Store[item]) {
	store := memstore.New[item]()
	return ordering.NewManager[item]("jobs", store, opts...), store
}

func seed(t *testing.T, m *ordering.Manager[item], scope ordering.Scope, names ...string) []item {
	t.Helper()
	out := make([]item, 0, len(names))
	for _, name := range names {
		created, err := m.Create(context.Background(), admin(), scope, item{Name: name, Active: true}, nil)
		require.NoError(t, err)
		out = append(out, created)
	}
	return out
}

func names(items []item) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.Name
	}
	return out
}

func orders(items []item) []int {
	out := make([]int, len(items))
	for i, it := range items {
		out[i] = it.Order
	}
	return out
}

func TestManager_ReorderPermutation(t *testing.T) {
	t.Parallel()
	m, _ := newManager()
	ctx := context.Background()
	seeded := seed(t, m, jobs, "A", "B", "C")
	a, b, c := seeded[0], seeded[1], seeded[2]

	require.NoError(t, m.Reorder(ctx, admin(), jobs, []uuid.UUID{c.ID, a.ID, b.ID}))

	list, err := m.List(ctx, admin(), jobs)
	require.NoError(t, err)
	assert.Equal(t, []string{"C", "A", "B"}, names(list))
	assert.Equal(t, []int{0, 1, 2}, orders(list))
}

func TestManager_ReorderIsContiguousAfterGaps(t *testing.T) {
	t.Parallel()
	m, _ := newManager()
	ctx := context.Background()
	seeded := seed(t, m, jobs, "A", "B", "C", "D")

	require.NoError(t, m.Delete(ctx, admin(), jobs, seeded[1].ID))
	list, err := m.List(ctx, admin(), jobs)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 2, 3}, orders(list), "delete must not renumber siblings")

	require.NoError(t, m.Reorder(ctx, admin(), jobs, []uuid.UUID{seeded[3].ID, seeded[0].ID, seeded[2].ID}))
	list, err = m.List(ctx, admin(), jobs)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 2}, orders(list))
	assert.Equal(t, []string{"D", "A", "C"}, names(list))
}

func TestManager_CreateAppends(t *testing.T) {
	t.Parallel()
	store := memstore.New[item]()
	m := ordering.NewManager[item]("locations", store)
	scope := ordering.RootScope("locations")
	ctx := context.Background()

	dubai, err := m.Create(ctx, admin(), scope, item{Name: "Dubai", Active: true}, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, dubai.Order)
	assert.NotEqual(t, uuid.Nil, dubai.ID)
	assert.False(t, dubai.CreatedAt.IsZero())

	karachi, err := m.Create(ctx, admin(), scope, item{Name: "Karachi", Active: true}, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, karachi.Order)

	explicit := 10
	lahore, err := m.Create(ctx, admin(), scope, item{Name: "Lahore"}, &explicit)
	require.NoError(t, err)
	assert.Equal(t, 10, lahore.Order)

	next, err := m.Create(ctx, admin(), scope, item{Name: "Riyadh"}, nil)
	require.NoError(t, err)
	assert.Equal(t, 11, next.Order, "append is max+1, not count")
}

func TestManager_CreateRejectsNegativeOrder(t *testing.T) {
	t.Parallel()
	m, store := newManager()
	negative := -1

	_, err := m.Create(context.Background(), admin(), jobs, item{Name: "A"}, &negative)
	require.ErrorIs(t, err, ordering.ErrInvalidInput)

	maxOrder, err := store.MaxOrder(context.Background(), jobs)
	require.NoError(t, err)
	assert.Equal(t, -1, maxOrder)
}

func TestManager_ReorderIdempotent(t *testing.T) {
	t.Parallel()
	m, _ := newManager()
	ctx := context.Background()
	seeded := seed(t, m, jobs, "A", "B", "C")
	perm := []uuid.UUID{seeded[1].ID, seeded[2].ID, seeded[0].ID}

	require.NoError(t, m.Reorder(ctx, admin(), jobs, perm))
	once, err := m.List(ctx, admin(), jobs)
	require.NoError(t, err)

	require.NoError(t, m.Reorder(ctx, admin(), jobs, perm))
	twice, err := m.List(ctx, admin(), jobs)
	require.NoError(t, err)

	assert.Equal(t, once, twice)
}

func TestManager_PublicListFiltersInactive(t *testing.T) {
	t.Parallel()
	store := memstore.New[item]()
	m := ordering.NewManager[item]("pricing-plans", store)
	scope := ordering.RootScope("pricing-plans")
	ctx := context.Background()

	_, err := m.Create(ctx, admin(), scope, item{Name: "Starter", Active: true}, nil)
	require.NoError(t, err)
	_, err = m.Create(ctx, admin(), scope, item{Name: "Legacy", Active: false}, nil)
	require.NoError(t, err)
	_, err = m.Create(ctx, admin(), scope, item{Name: "Pro", Active: true}, nil)
	require.NoError(t, err)

	public, err := m.ListPublic(ctx, scope)
	require.NoError(t, err)
	assert.Equal(t, []string{"Starter", "Pro"}, names(public))
	for _, p := range public {
		assert.True(t, p.Active)
	}

	all, err := m.List(ctx, admin(), scope)
	require.NoError(t, err)
	assert.Equal(t, []string{"Starter", "Legacy", "Pro"}, names(all))
}

func TestManager_GetPublicHidesInactive(t *testing.T) {
	t.Parallel()
	m, _ := newManager()
	ctx := context.Background()
	hidden, err := m.Create(ctx, admin(), jobs, item{Name: "Hidden"}, nil)
	require.NoError(t, err)

	_, err = m.GetPublic(ctx, jobs, hidden.ID)
	require.ErrorIs(t, err, ordering.ErrNotFound)

	got, err := m.Get(ctx, admin(), jobs, hidden.ID)
	require.NoError(t, err)
	assert.Equal(t, "Hidden", got.Name)
}

func TestManager_PublicPriority(t *testing.T) {
	t.Parallel()
	store := memstore.New[item]()
	m := ordering.NewManager[item]("locations", store,
		ordering.WithPublicPriority[item](func(a, b item) int {
			if a.Primary == b.Primary {
				return 0
			}
			if a.Primary {
				return -1
			}
			return 1
		}),
	)
	scope := ordering.RootScope("locations")
	ctx := context.Background()
	for _, it := range []item{
		{Name: "Karachi", Active: true},
		{Name: "Lahore", Active: true},
		{Name: "Dubai", Active: true, Primary: true},
		{Name: "Riyadh", Active: true},
	} {
		_, err := m.Create(ctx, admin(), scope, it, nil)
		require.NoError(t, err)
	}

	public, err := m.ListPublic(ctx, scope)
	require.NoError(t, err)
	assert.Equal(t, []string{"Dubai", "Karachi", "Lahore", "Riyadh"}, names(public))

	all, err := m.List(ctx, admin(), scope)
	require.NoError(t, err)
	assert.Equal(t, []string{"Karachi", "Lahore", "Dubai", "Riyadh"}, names(all), "admin list is by order only")
}

func TestManager_ScopeIsolation(t *testing.T) {
	t.Parallel()
	store := memstore.New[item]()
	m := ordering.NewManager[item](solutions, store)
	ctx := context.Background()
	banking := ordering.ChildScope(solutions, uuid.New())
	logistics := ordering.ChildScope(solutions, uuid.New())

	bank := seed(t, m, banking, "S1", "S2")
	logi := seed(t, m, logistics, "S3")
	assert.Equal(t, 0, logi[0].Order)

	require.NoError(t, m.Reorder(ctx, admin(), banking, []uuid.UUID{bank[1].ID, bank[0].ID}))

	logList, err := m.List(ctx, admin(), logistics)
	require.NoError(t, err)
	require.Len(t, logList, 1)
	assert.Equal(t, 0, logList[0].Order)

	bankList, err := m.List(ctx, admin(), banking)
	require.NoError(t, err)
	assert.Equal(t, []string{"S2", "S1"}, names(bankList))

	err = m.Reorder(ctx, admin(), logistics, []uuid.UUID{logi[0].ID, bank[0].ID})
	require.ErrorIs(t, err, ordering.ErrInvalidInput, "ids from a sibling scope are foreign")
}

// spyStore records whether any method was reached.
type spyStore struct {
	ordering.Store[item]
	mu    sync.Mutex
	calls []string
}

func (s *spyStore) mark(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, name)
}

func (s *spyStore) ListByScope(ctx context.Context, scope ordering.Scope, activeOnly bool) ([]item, error) {
	s.mark("ListByScope")
	return s.Store.ListByScope(ctx, scope, activeOnly)
}

func (s *spyStore) MaxOrder(ctx context.Context, scope ordering.Scope) (int, error) {
	s.mark("MaxOrder")
	return s.Store.MaxOrder(ctx, scope)
}

func (s *spyStore) BulkSetOrder(ctx context.Context, scope ordering.Scope, positions []ordering.Position) error {
	s.mark("BulkSetOrder")
	return s.Store.BulkSetOrder(ctx, scope, positions)
}

func (s *spyStore) GetByID(ctx context.Context, scope ordering.Scope, id uuid.UUID) (item, error) {
	s.mark("GetByID")
	return s.Store.GetByID(ctx, scope, id)
}

func (s *spyStore) Create(ctx context.Context, scope ordering.Scope, record item) (item, error) {
	s.mark("Create")
	return s.Store.Create(ctx, scope, record)
}

func (s *spyStore) Update(ctx context.Context, scope ordering.Scope, record item) (item, error) {
	s.mark("Update")
	return s.Store.Update(ctx, scope, record)
}

func (s *spyStore) Delete(ctx context.Context, scope ordering.Scope, id uuid.UUID) error {
	s.mark("Delete")
	return s.Store.Delete(ctx, scope, id)
}

func TestManager_AuthGate(t *testing.T) {
	t.Parallel()
	inner := memstore.New[item]()
	seeder := ordering.NewManager[item]("jobs", inner)
	seeded := seed(t, seeder, jobs, "A", "B")
	before, err := inner.ListByScope(context.Background(), jobs, false)
	require.NoError(t, err)

	expired := admin()
	expired.ExpiresAt = time.Now().Add(-time.Minute)

	for name, caller := range map[string]auth.Context{
		"anonymous": auth.Anonymous(),
		"expired":   expired,
	} {
		t.Run(name, func(t *testing.T) {
			spy := &spyStore{Store: inner}
			m := ordering.NewManager[item]("jobs", spy)
			ctx := context.Background()

			err := m.Reorder(ctx, caller, jobs, []uuid.UUID{seeded[1].ID, seeded[0].ID})
			require.ErrorIs(t, err, ordering.ErrUnauthorized)

			_, err = m.Create(ctx, caller, jobs, item{Name: "X"}, nil)
			require.ErrorIs(t, err, ordering.ErrUnauthorized)

			_, err = m.Update(ctx, caller, jobs, seeded[0].ID, func(i item) (item, error) { return i, nil }, nil)
			require.ErrorIs(t, err, ordering.ErrUnauthorized)

			require.ErrorIs(t, m.Delete(ctx, caller, jobs, seeded[0].ID), ordering.ErrUnauthorized)

			_, err = m.List(ctx, caller, jobs)
			require.ErrorIs(t, err, ordering.ErrUnauthorized)

			_, err = m.Normalize(ctx, caller, jobs)
			require.ErrorIs(t, err, ordering.ErrUnauthorized)

			assert.Empty(t, spy.calls, "store must not be touched without a session")
		})
	}

	after, err := inner.ListByScope(context.Background(), jobs, false)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestManager_ReorderRejectsBadPermutations(t *testing.T) {
	t.Parallel()
	m, store := newManager()
	ctx := context.Background()
	seeded := seed(t, m, jobs, "A", "B", "C")
	a, b, c := seeded[0].ID, seeded[1].ID, seeded[2].ID

	cases := map[string][]uuid.UUID{
		"empty":     {},
		"duplicate": {a, a, b, c},
		"missing":   {c, a},
		"foreign":   {a, b, c, uuid.New()},
	}
	for name, ids := range cases {
		t.Run(name, func(t *testing.T) {
			err := m.Reorder(ctx, admin(), jobs, ids)
			require.ErrorIs(t, err, ordering.ErrInvalidInput)

			var invalid *ordering.InvalidInputError
			require.ErrorAs(t, err, &invalid)
			assert.Equal(t, "orderedIds", invalid.Field)

			list, err := store.ListByScope(ctx, jobs, false)
			require.NoError(t, err)
			assert.Equal(t, []string{"A", "B", "C"}, names(list))
		})
	}
}

func TestManager_ReorderStoreFailure(t *testing.T) {
	t.Parallel()
	m, store := newManager()
	ctx := context.Background()
	seeded := seed(t, m, jobs, "A", "B")

	cause := errors.New("connection reset")
	store.FailWrites(cause)

	err := m.Reorder(ctx, admin(), jobs, []uuid.UUID{seeded[1].ID, seeded[0].ID})
	require.ErrorIs(t, err, ordering.ErrStoreFailure)
	require.ErrorIs(t, err, cause)

	store.FailWrites(nil)
	list, err := m.List(ctx, admin(), jobs)
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B"}, names(list))
}

// blockingStore parks BulkSetOrder until release is closed.
type blockingStore struct {
	*memstore.Store[item]
	entered chan struct{}
	release chan struct{}
}

func (s *blockingStore) BulkSetOrder(ctx context.Context, scope ordering.Scope, positions []ordering.Position) error {
	close(s.entered)
	<-s.release
	return s.Store.BulkSetOrder(ctx, scope, positions)
}

func TestManager_ConcurrentReorderConflict(t *testing.T) {
	t.Parallel()
	inner := memstore.New[item]()
	seeded := seed(t, ordering.NewManager[item]("jobs", inner), jobs, "A", "B")
	store := &blockingStore{Store: inner, entered: make(chan struct{}), release: make(chan struct{})}
	m := ordering.NewManager[item]("jobs", store, ordering.WithLockTimeout[item](50*time.Millisecond))
	ctx := context.Background()

	first := make(chan error, 1)
	go func() {
		first <- m.Reorder(ctx, admin(), jobs, []uuid.UUID{seeded[1].ID, seeded[0].ID})
	}()
	<-store.entered

	err := m.Reorder(ctx, admin(), jobs, []uuid.UUID{seeded[0].ID, seeded[1].ID})
	require.ErrorIs(t, err, ordering.ErrConflict)

	close(store.release)
	require.NoError(t, <-first)

	list, err := m.List(ctx, admin(), jobs)
	require.NoError(t, err)
	assert.Equal(t, []string{"B", "A"}, names(list))
}

func TestManager_UpdatePreservesOrder(t *testing.T) {
	t.Parallel()
	m, _ := newManager()
	ctx := context.Background()
	seeded := seed(t, m, jobs, "A", "B")

	updated, err := m.Update(ctx, admin(), jobs, seeded[1].ID, func(i item) (item, error) {
		i.Name = "B2"
		i.Order = 99 // ignored without an explicit order
		return i, nil
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, updated.Order)
	assert.Equal(t, "B2", updated.Name)
	assert.Equal(t, seeded[1].CreatedAt, updated.CreatedAt)

	explicit := 5
	updated, err = m.Update(ctx, admin(), jobs, seeded[1].ID, func(i item) (item, error) { return i, nil }, &explicit)
	require.NoError(t, err)
	assert.Equal(t, 5, updated.Order)

	_, err = m.Update(ctx, admin(), jobs, uuid.New(), func(i item) (item, error) { return i, nil }, nil)
	require.ErrorIs(t, err, ordering.ErrNotFound)

	mutateErr := errors.New("bad payload")
	_, err = m.Update(ctx, admin(), jobs, seeded[0].ID, func(i item) (item, error) { return i, mutateErr }, nil)
	require.ErrorIs(t, err, mutateErr)
}

func TestManager_WriteCheck(t *testing.T) {
	t.Parallel()
	errDuplicate := errors.New("duplicate name")
	m, _ := newManager(ordering.WithWriteCheck(func(record item, siblings []item) error {
		for _, s := range siblings {
			if s.Name == record.Name {
				return errDuplicate
			}
		}
		return nil
	}))
	ctx := context.Background()
	seeded := seed(t, m, jobs, "A", "B")

	_, err := m.Create(ctx, admin(), jobs, item{Name: "A", Active: true}, nil)
	require.ErrorIs(t, err, errDuplicate)

	_, err = m.Update(ctx, admin(), jobs, seeded[1].ID, func(i item) (item, error) {
		i.Name = "A"
		return i, nil
	}, nil)
	require.ErrorIs(t, err, errDuplicate)

	_, err = m.Update(ctx, admin(), jobs, seeded[0].ID, func(i item) (item, error) { return i, nil }, nil)
	require.NoError(t, err, "a record does not collide with itself")
}

func TestManager_Normalize(t *testing.T) {
	t.Parallel()
	m, _ := newManager()
	ctx := context.Background()
	seeded := seed(t, m, jobs, "A", "B", "C", "D")
	require.NoError(t, m.Delete(ctx, admin(), jobs, seeded[0].ID))
	require.NoError(t, m.Delete(ctx, admin(), jobs, seeded[2].ID))

	changed, err := m.Normalize(ctx, admin(), jobs)
	require.NoError(t, err)
	assert.Equal(t, 2, changed)

	list, err := m.List(ctx, admin(), jobs)
	require.NoError(t, err)
	assert.Equal(t, []string{"B", "D"}, names(list))
	assert.Equal(t, []int{0, 1}, orders(list))

	changed, err = m.Normalize(ctx, admin(), jobs)
	require.NoError(t, err)
	assert.Zero(t, changed)
}

func TestManager_WrongCollection(t *testing.T) {
	t.Parallel()
	m, _ := newManager()

	_, err := m.ListPublic(context.Background(), ordering.RootScope("partners"))
	require.ErrorIs(t, err, ordering.ErrInvalidInput)
}

func TestManager_PublishesEvents(t *testing.T) {
	t.Parallel()
	bus := eventbus.NewEventPublisher(nil)
	var (
		created   []*ordering.CreatedEvent
		reordered []*ordering.ReorderedEvent
		deleted   []*ordering.DeletedEvent
	)
	bus.Subscribe(func(e *ordering.CreatedEvent) { created = append(created, e) })
	bus.Subscribe(func(e *ordering.ReorderedEvent) { reordered = append(reordered, e) })
	bus.Subscribe(func(e *ordering.DeletedEvent) { deleted = append(deleted, e) })

	m, _ := newManager(ordering.WithPublisher[item](bus))
	ctx := context.Background()
	caller := admin()
	a, err := m.Create(ctx, caller, jobs, item{Name: "A"}, nil)
	require.NoError(t, err)
	b, err := m.Create(ctx, caller, jobs, item{Name: "B"}, nil)
	require.NoError(t, err)
	require.NoError(t, m.Reorder(ctx, caller, jobs, []uuid.UUID{b.ID, a.ID}))
	require.NoError(t, m.Delete(ctx, caller, jobs, a.ID))

	require.Len(t, created, 2)
	assert.Equal(t, caller.UserID, created[0].Actor)
	require.Len(t, reordered, 1)
	assert.Equal(t, []uuid.UUID{b.ID, a.ID}, reordered[0].OrderedIDs)
	require.Len(t, deleted, 1)
	assert.Equal(t, a.ID, deleted[0].ID)
}

type recordingObserver struct {
	mu       sync.Mutex
	reorders []error
	writes   []string
}

func (o *recordingObserver) ObserveReorder(_ ordering.Scope, _ int, _ time.Duration, err error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.reorders = append(o.reorders, err)
}

func (o *recordingObserver) ObserveWrite(_ ordering.Scope, op string, _ error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.writes = append(o.writes, op)
}

func TestManager_Observer(t *testing.T) {
	t.Parallel()
	obs := &recordingObserver{}
	m, _ := newManager(ordering.WithObserver[item](obs))
	ctx := context.Background()
	seeded := seed(t, m, jobs, "A", "B")

	require.NoError(t, m.Reorder(ctx, admin(), jobs, []uuid.UUID{seeded[1].ID, seeded[0].ID}))
	require.Error(t, m.Reorder(ctx, admin(), jobs, []uuid.UUID{seeded[1].ID}))

	assert.Equal(t, []string{"create", "create"}, obs.writes)
	require.Len(t, obs.reorders, 2)
	assert.NoError(t, obs.reorders[0])
	assert.ErrorIs(t, obs.reorders[1], ordering.ErrInvalidInput)
}

func TestManager_ObserverSeesLockConflicts(t *testing.T) {
	t.Parallel()
	inner := memstore.New[item]()
	seeded := seed(t, ordering.NewManager[item]("jobs", inner), jobs, "A", "B")
	store := &blockingStore{Store: inner, entered: make(chan struct{}), release: make(chan struct{})}
	obs := &recordingObserver{}
	m := ordering.NewManager[item]("jobs", store,
		ordering.WithLockTimeout[item](50*time.Millisecond),
		ordering.WithObserver[item](obs),
	)
	ctx := context.Background()

	first := make(chan error, 1)
	go func() {
		first <- m.Reorder(ctx, admin(), jobs, []uuid.UUID{seeded[1].ID, seeded[0].ID})
	}()
	<-store.entered

	require.ErrorIs(t, m.Reorder(ctx, admin(), jobs, []uuid.UUID{seeded[0].ID, seeded[1].ID}), ordering.ErrConflict)
	close(store.release)
	require.NoError(t, <-first)
	require.ErrorIs(t, m.Reorder(ctx, admin(), jobs, nil), ordering.ErrInvalidInput)

	obs.mu.Lock()
	defer obs.mu.Unlock()
	require.Len(t, obs.reorders, 3)
	assert.ErrorIs(t, obs.reorders[0], ordering.ErrConflict)
	assert.NoError(t, obs.reorders[1])
	assert.ErrorIs(t, obs.reorders[2], ordering.ErrInvalidInput)
}

func TestParseReorderRequest(t *testing.T) {
	t.Parallel()
	id1, id2 := uuid.New(), uuid.New()

	ids, err := ordering.ParseReorderRequest(strings.NewReader(`{"orderedIds":["` + id1.String() + `","` + id2.String() + `"]}`))
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{id1, id2}, ids)

	bad := map[string]string{
		"not a list":    `{"orderedIds":"not-a-list"}`,
		"object":        `{"orderedIds":{"a":1}}`,
		"number":        `{"orderedIds":42}`,
		"missing":       `{}`,
		"null":          `{"orderedIds":null}`,
		"empty":         `{"orderedIds":[]}`,
		"non string id": `{"orderedIds":[1,2]}`,
		"bad uuid":      `{"orderedIds":["nope"]}`,
		"malformed":     `{"orderedIds":[`,
	}
	for name, body := range bad {
		t.Run(name, func(t *testing.T) {
			_, err := ordering.ParseReorderRequest(strings.NewReader(body))
			require.ErrorIs(t, err, ordering.ErrInvalidInput)
		})
	}
}

func TestValidatePermutation(t *testing.T) {
	t.Parallel()
	a, b, c := uuid.New(), uuid.New(), uuid.New()

	require.NoError(t, ordering.ValidatePermutation([]uuid.UUID{a, b, c}, []uuid.UUID{c, b, a}))

	err := ordering.ValidatePermutation([]uuid.UUID{a, b, c}, []uuid.UUID{a, b})
	var invalid *ordering.InvalidInputError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, []uuid.UUID{c}, invalid.IDs)
	assert.Contains(t, err.Error(), c.String())
}

func TestMove(t *testing.T) {
	t.Parallel()
	in := []string{"a", "b", "c", "d"}

	assert.Equal(t, []string{"b", "c", "a", "d"}, ordering.Move(in, 0, 2))
	assert.Equal(t, []string{"d", "a", "b", "c"}, ordering.Move(in, 3, 0))
	assert.Equal(t, []string{"a", "c", "b", "d"}, ordering.Move(in, 1, 2))
	assert.Equal(t, in, ordering.Move(in, 1, 1))
	assert.Equal(t, in, ordering.Move(in, 1, 9))
	assert.Equal(t, []string{"a", "b", "c", "d"}, in, "input is not mutated")
}

func TestScope_String(t *testing.T) {
	t.Parallel()
	parent := uuid.New()
	assert.Equal(t, "jobs", jobs.String())
	assert.Equal(t, "solutions/"+parent.String(), ordering.ChildScope(solutions, parent).String())
}
