package draws

import (
	"context"
	"errors"
	"math/rand/v2"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stampcard/internal/announce"
	"stampcard/internal/notifications"
	"stampcard/internal/roster"
	"stampcard/pkg/cache/cachetest"
	"stampcard/pkg/logger"
)

const (
	alice = `{"name":"Alice","team":"CMG","stamps":7}`
	bob   = `{"name":"Bob","team":"OE","stamps":6}`
	carol = `{"name":"Carol","team":"POD","stamps":9}`
	dave  = `{"name":"Dave","team":"Legal","stamps":2}`
)

type dummyRepository struct {
	mu      sync.Mutex
	results []DrawResult
	fail    error
}

func (r *dummyRepository) Create(_ context.Context, result *DrawResult) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.fail != nil {
		return r.fail
	}
	r.results = append([]DrawResult{*result}, r.results...)
	return nil
}

func (r *dummyRepository) List(_ context.Context, limit int) ([]DrawResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.results) < limit {
		limit = len(r.results)
	}
	return append([]DrawResult(nil), r.results[:limit]...), nil
}

type fixedAnnouncer struct{ calls int }

func (a *fixedAnnouncer) Announce(_ context.Context, winners []string) announce.Announcement {
	a.calls++
	return announce.Announcement{Text: announce.FallbackText(winners)}
}

type recordingPublisher struct {
	events []*notifications.DrawEvent
	fail   error
}

func (p *recordingPublisher) PublishDrawEvent(_ context.Context, event *notifications.DrawEvent) error {
	p.events = append(p.events, event)
	return p.fail
}

func (p *recordingPublisher) Close() error { return nil }

type staticSource string

func (s staticSource) EligibleRoster(context.Context) (string, error) { return string(s), nil }

type fixture struct {
	svc       Service
	store     SessionStore
	repo      *dummyRepository
	announcer *fixedAnnouncer
	publisher *recordingPublisher
}

func newFixture(t *testing.T, source RosterSource) *fixture {
	t.Helper()
	mem := cachetest.NewMemory()
	f := &fixture{
		store:     NewSessionStore(mem, time.Hour, time.Minute, logger.Discard()),
		repo:      &dummyRepository{},
		announcer: &fixedAnnouncer{},
		publisher: &recordingPublisher{},
	}
	drawer := roster.NewDrawerWithSource(rand.NewPCG(1, 2))
	f.svc = NewService(f.store, f.repo, drawer, f.announcer, f.publisher, source, mem,
		Options{MinStamps: 6, DefaultWinnerCount: 2}, logger.Discard())
	return f
}

func (f *fixture) session(t *testing.T, lines ...string) string {
	t.Helper()
	ctx := context.Background()
	s, err := f.svc.CreateSession(ctx)
	require.NoError(t, err)
	if len(lines) > 0 {
		_, err = f.svc.ReplaceRoster(ctx, s.ID, strings.Join(lines, "\n"))
		require.NoError(t, err)
	}
	return s.ID
}

func TestSessionValueSemantics(t *testing.T) {
	now := time.Now()
	s := NewSession(now)
	s2 := s.WithRoster("  "+alice+"\n", now)
	assert.Empty(t, s.RosterText)
	assert.Equal(t, alice, s2.RosterText)

	s3 := s2.WithResult([]string{"Alice"}, announce.Announcement{Text: "x"}, now)
	assert.Nil(t, s2.Winners)
	assert.Equal(t, []string{"Alice"}, s3.Winners)

	cleared := s3.Cleared(now)
	assert.Empty(t, cleared.RosterText)
	assert.Nil(t, cleared.Winners)
	assert.Nil(t, cleared.Announcement)
	assert.Equal(t, s.ID, cleared.ID)
}

func TestSessionScan(t *testing.T) {
	now := time.Now()
	s := NewSession(now).WithRoster(alice, now)

	next, status, rec, err := s.Scan(bob, 6, now)
	require.NoError(t, err)
	assert.Equal(t, ScanStatusAdded, status)
	assert.Equal(t, "Bob", rec.Name)
	assert.Equal(t, alice+"\n"+bob, next.RosterText)

	same, status, _, err := next.Scan(`{"name":"Bob","team":"Other","stamps":8}`, 6, now)
	require.NoError(t, err)
	assert.Equal(t, ScanStatusDuplicate, status)
	assert.Equal(t, next.RosterText, same.RosterText)

	_, _, _, err = s.Scan(dave, 6, now)
	assert.ErrorIs(t, err, ErrIneligibleEntry)
	assert.Contains(t, err.Error(), "Dave has only 2 stamps")

	_, _, _, err = s.Scan("hello", 6, now)
	assert.ErrorIs(t, err, roster.ErrInvalidRecord)
}

func TestGetSessionSplitsRoster(t *testing.T) {
	f := newFixture(t, nil)
	id := f.session(t, alice, "garbage", dave, bob)

	s, err := f.svc.GetSession(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, 2, s.EligibleCount)
	assert.Equal(t, 1, s.IneligibleCount)
	assert.Equal(t, []string{"Alice", "Bob"}, roster.Names(s.Eligible))
	assert.Equal(t, "Dave", s.Ineligible[0].Name)
	assert.Equal(t, 6, s.MinStamps)

	_, err = f.svc.GetSession(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestDraw(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	id := f.session(t, alice, bob, carol, dave)

	res, err := f.svc.Draw(ctx, id, nil)
	require.NoError(t, err)
	require.Len(t, res.Winners, 2)
	assert.NotEqual(t, res.Winners[0], res.Winners[1])
	for _, w := range res.Winners {
		assert.Contains(t, []string{"Alice", "Bob", "Carol"}, w)
	}
	assert.Equal(t, 3, res.PoolSize)
	assert.Equal(t, "Dave", res.Excluded[0].Name)
	assert.Equal(t, announce.FallbackText(res.Winners), res.Announcement.Text)

	s, err := f.svc.GetSession(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, res.Winners, s.Winners)
	require.NotNil(t, s.Announcement)

	require.Len(t, f.repo.results, 1)
	assert.Equal(t, res.DrawID, f.repo.results[0].ID)
	require.Len(t, f.publisher.events, 1)
	assert.Equal(t, notifications.EventTypeWinnersAnnounced, f.publisher.events[0].Type)
	assert.Equal(t, id, f.publisher.events[0].SessionID)
}

func TestDrawErrorsLeaveSessionUntouched(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	empty := f.session(t, dave)
	_, err := f.svc.Draw(ctx, empty, nil)
	assert.ErrorIs(t, err, roster.ErrEmptyPool)

	id := f.session(t, alice, bob)
	zero := 0
	_, err = f.svc.Draw(ctx, id, &zero)
	assert.ErrorIs(t, err, roster.ErrInvalidCount)

	three := 3
	_, err = f.svc.Draw(ctx, id, &three)
	assert.ErrorIs(t, err, roster.ErrInsufficientPool)

	s, err := f.svc.GetSession(ctx, id)
	require.NoError(t, err)
	assert.Nil(t, s.Winners)
	assert.Zero(t, f.announcer.calls)
	assert.Empty(t, f.repo.results)
	assert.Empty(t, f.publisher.events)
}

func TestDrawSideEffectFailuresDoNotFailDraw(t *testing.T) {
	f := newFixture(t, nil)
	f.repo.fail = errors.New("db down")
	f.publisher.fail = errors.New("kafka down")
	id := f.session(t, alice, bob)

	res, err := f.svc.Draw(context.Background(), id, nil)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"Alice", "Bob"}, res.Winners)
}

func TestConcurrentDrawRejected(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	id := f.session(t, alice, bob)

	release, err := f.store.Lock(ctx, id)
	require.NoError(t, err)

	_, err = f.svc.Draw(ctx, id, nil)
	assert.ErrorIs(t, err, ErrDrawInProgress)
	_, err = f.svc.ReplaceRoster(ctx, id, carol)
	assert.ErrorIs(t, err, ErrSessionBusy)

	release()
	_, err = f.svc.Draw(ctx, id, nil)
	assert.NoError(t, err)
}

func TestScanAndImport(t *testing.T) {
	f := newFixture(t, staticSource(alice+"\n"+carol+"\n"))
	ctx := context.Background()
	id := f.session(t)

	res, err := f.svc.Scan(ctx, id, alice)
	require.NoError(t, err)
	assert.Equal(t, ScanStatusAdded, res.Status)
	assert.Equal(t, "Added Alice!", res.Message)

	res, err = f.svc.Scan(ctx, id, alice)
	require.NoError(t, err)
	assert.Equal(t, ScanStatusDuplicate, res.Status)

	_, err = f.svc.Scan(ctx, id, dave)
	assert.ErrorIs(t, err, ErrIneligibleEntry)

	imported, err := f.svc.ImportCards(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 1, imported.Added)
	assert.Equal(t, 1, imported.Duplicates)
	assert.Equal(t, []string{"Alice", "Carol"}, roster.Names(imported.Session.Eligible))

	noSource := newFixture(t, nil)
	_, err = noSource.svc.ImportCards(ctx, noSource.session(t))
	assert.ErrorIs(t, err, ErrNoRosterSource)
}

func TestExportCSV(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	id := f.session(t, `{"name":"Bob \"B\"","team":"OE","stamps":6}`, dave)
	csv, err := f.svc.ExportCSV(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Name,Team,Stamps\n\"Bob \"\"B\"\"\",\"OE\",\"6\"", csv)

	_, err = f.svc.ExportCSV(ctx, f.session(t, dave))
	assert.ErrorIs(t, err, ErrNothingToExport)
}

func TestClearResetDelete(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	id := f.session(t, alice, bob)

	_, err := f.svc.Draw(ctx, id, nil)
	require.NoError(t, err)

	s, err := f.svc.ClearRoster(ctx, id)
	require.NoError(t, err)
	assert.Empty(t, s.RosterText)
	assert.NotEmpty(t, s.Winners)

	s, err = f.svc.Reset(ctx, id)
	require.NoError(t, err)
	assert.Nil(t, s.Winners)
	assert.Nil(t, s.Announcement)

	require.NoError(t, f.svc.DeleteSession(ctx, id))
	assert.ErrorIs(t, f.svc.DeleteSession(ctx, id), ErrSessionNotFound)
}

func TestHistoryCacheInvalidatedByDraw(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	h, err := f.svc.History(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, 0, h.Total)

	_, err = f.svc.Draw(ctx, f.session(t, alice, bob), nil)
	require.NoError(t, err)

	h, err = f.svc.History(ctx, 0)
	require.NoError(t, err)
	require.Equal(t, 1, h.Total)
	assert.Len(t, h.Draws[0].Winners, 2)
}

func TestDrawEndpoints(t *testing.T) {
	gin.SetMode(gin.TestMode)
	f := newFixture(t, nil)
	r := gin.New()
	SetupDrawRoutes(r.Group("/api/v1"), NewController(f.svc))

	do := func(method, path, body string) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)
		return w
	}

	w := do(http.MethodPost, "/api/v1/admin/draws/sessions", "")
	require.Equal(t, http.StatusCreated, w.Code)
	var created struct {
		Data SessionResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	base := "/api/v1/admin/draws/sessions/" + created.Data.ID

	assert.Equal(t, http.StatusNotFound, do(http.MethodGet, "/api/v1/admin/draws/sessions/nope", "").Code)
	assert.Equal(t, http.StatusUnprocessableEntity, do(http.MethodPost, base+"/draw", "").Code)
	assert.Equal(t, http.StatusUnprocessableEntity, do(http.MethodGet, base+"/export", "").Code)
	assert.Equal(t, http.StatusBadRequest, do(http.MethodPost, base+"/scan", `{}`).Code)

	body, err := json.Marshal(ReplaceRosterRequest{Roster: alice + "\n" + bob + "\n" + dave})
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, do(http.MethodPut, base+"/roster", string(body)).Code)

	body, err = json.Marshal(ScanRequest{Token: dave})
	require.NoError(t, err)
	w = do(http.MethodPost, base+"/scan", string(body))
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "Dave has only 2 stamps")

	assert.Equal(t, http.StatusUnprocessableEntity, do(http.MethodPost, base+"/draw", `{"winners":3}`).Code)
	w = do(http.MethodPost, base+"/draw", `{"winners":1}`)
	require.Equal(t, http.StatusOK, w.Code)
	var drawn struct {
		Data DrawResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &drawn))
	assert.Len(t, drawn.Data.Winners, 1)

	w = do(http.MethodGet, base+"/export", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.HasPrefix(w.Body.String(), "Name,Team,Stamps\n"))

	assert.Equal(t, http.StatusOK, do(http.MethodGet, "/api/v1/admin/draws/history?limit=5", "").Code)
	assert.Equal(t, http.StatusBadRequest, do(http.MethodGet, "/api/v1/admin/draws/history?limit=x", "").Code)
	assert.Equal(t, http.StatusOK, do(http.MethodPost, base+"/reset", "").Code)
	assert.Equal(t, http.StatusOK, do(http.MethodDelete, base, "").Code)
}

func TestSessionStoreLock(t *testing.T) {
	ctx := context.Background()
	mem := cachetest.NewMemory()
	store := NewSessionStore(mem, 0, 0, logger.Discard())

	release, err := store.Lock(ctx, "s1")
	require.NoError(t, err)

	_, err = store.Lock(ctx, "s1")
	assert.ErrorIs(t, err, errLocked)

	other, err := store.Lock(ctx, "s2")
	require.NoError(t, err)
	other()

	release()
	again, err := store.Lock(ctx, "s1")
	require.NoError(t, err)
	again()

	mem.FailSetNX = true
	_, err = store.Lock(ctx, "s1")
	require.Error(t, err)
	assert.NotErrorIs(t, err, errLocked)

	f := newFixture(t, nil)
	_, err = f.store.Get(ctx, "nope")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

type blockingGenerator struct{ started chan struct{} }

func (g blockingGenerator) Generate(ctx context.Context, _ []string) (string, error) {
	close(g.started)
	<-ctx.Done()
	return "", ctx.Err()
}

func TestSlowAnnouncementIsCutOffWhileLockIsHeld(t *testing.T) {
	const lockTTL = 2 * time.Second
	ctx := context.Background()
	mem := cachetest.NewMemory()
	store := NewSessionStore(mem, time.Hour, lockTTL, logger.Discard())
	gen := blockingGenerator{started: make(chan struct{})}
	svc := NewService(store, &dummyRepository{}, roster.NewDrawerWithSource(rand.NewPCG(1, 2)),
		announce.NewService(gen, 100*time.Millisecond, logger.Discard()),
		&recordingPublisher{}, nil, mem, Options{MinStamps: 6, DefaultWinnerCount: 1}, logger.Discard())

	s, err := svc.CreateSession(ctx)
	require.NoError(t, err)
	_, err = svc.ReplaceRoster(ctx, s.ID, alice+"\n"+bob)
	require.NoError(t, err)

	type outcome struct {
		res *DrawResponse
		err error
	}
	done := make(chan outcome, 1)
	start := time.Now()
	go func() {
		res, err := svc.Draw(ctx, s.ID, nil)
		done <- outcome{res, err}
	}()

	<-gen.started
	_, err = svc.Draw(ctx, s.ID, nil)
	assert.ErrorIs(t, err, ErrDrawInProgress)

	first := <-done
	require.NoError(t, first.err)
	assert.Less(t, time.Since(start), lockTTL)
	assert.False(t, first.res.Announcement.Generated)
	assert.Equal(t, announce.FallbackText(first.res.Winners), first.res.Announcement.Text)
}
