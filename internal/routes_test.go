package internal

import (
	"net/http"
	"net/http/httptest"
	"reviewreminder/internal/controllers"
	"reviewreminder/internal/providers"
	"reviewreminder/internal/services"
	"reviewreminder/internal/structures"
	"reviewreminder/internal/testutil"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSession(conf *structures.Config, store *testutil.MockStore, metadata *testutil.MockMetadata) (services.PromptControllerInterface, *providers.HeadlessPresenter, *providers.StoreLinkProvider, *providers.ReachabilityProvider, services.UsageTrackerInterface) {
	logger := &testutil.MockLogger{}
	metrics := testutil.NewMockMetrics()
	clock := testutil.NewMockClock(time.Date(2024, time.June, 3, 8, 0, 0, 0, time.UTC))

	presenter := providers.NewHeadlessPresenter(logger)
	links := providers.NewStoreLinkProvider(conf, logger)
	network := providers.NewReachabilityProvider(conf, logger)
	tracker := services.NewUsageTracker(conf, store, clock, logger, metrics)

	session := services.NewPromptController(
		tracker,
		services.NewEligibilityEvaluator(clock),
		services.NewReachabilityMonitor(network, logger, metrics),
		presenter,
		links,
		metadata,
		services.NewInlineExecutors(),
		logger,
		metrics,
	)
	return session, presenter, links, network, tracker
}

func TestInitRoutes_RegistersSevenRoutes(t *testing.T) {
	conf := &structures.Config{AppID: "1"}
	session, presenter, links, network, _ := newTestSession(conf, testutil.NewMockStore(), testutil.NewMockMetadata("1"))
	ac := controllers.NewApiController(&testutil.MockLogger{}, session, presenter, links, network)

	router := InitRoutes(ac)
	routes := router.GetRoutes()

	require.Len(t, routes, 7)

	urls := make([]string, len(routes))
	for i, r := range routes {
		urls[i] = r.Url
	}

	for _, url := range []string{"/launch", "/foreground", "/resign", "/prompt", "/prompt/respond", "/reachability", "/state"} {
		assert.Contains(t, urls, url)
	}
}

func TestInitRoutes_MethodEnforcement(t *testing.T) {
	conf := &structures.Config{AppID: "1"}
	session, presenter, links, network, _ := newTestSession(conf, testutil.NewMockStore(), testutil.NewMockMetadata("1"))
	ac := controllers.NewApiController(&testutil.MockLogger{}, session, presenter, links, network)

	mux := http.NewServeMux()
	InitRoutes(ac).Mount(mux)

	req := httptest.NewRequest(http.MethodGet, "/launch", nil)
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
	assert.Equal(t, http.MethodPost, rr.Header().Get("Allow"))

	req = httptest.NewRequest(http.MethodPost, "/state", nil)
	rr = httptest.NewRecorder()
	mux.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
}

func TestNewApp_StartsSession(t *testing.T) {
	conf := &structures.Config{
		AppName:   "ReviewReminderDaemon",
		AppID:     "284882215",
		Reminder:  structures.DefaultReminderConfig(),
		WebServer: structures.Server{Host: "127.0.0.1", Port: 8089},
	}
	store := testutil.NewMockStore()
	session, presenter, links, network, _ := newTestSession(conf, store, testutil.NewMockMetadata("5"))
	ac := controllers.NewApiController(&testutil.MockLogger{}, session, presenter, links, network)
	scheduler := &testScheduler{}

	app, err := NewApp(InitRoutes(ac), controllers.NewHealthController(session), session, scheduler, conf, &testutil.MockLogger{}, testutil.NewMockMetrics())
	require.NoError(t, err)
	assert.True(t, session.Started())
	assert.Equal(t, "127.0.0.1:8089", app.WebServer.Addr)

	req := httptest.NewRequest(http.MethodPost, "/launch", nil)
	rr := httptest.NewRecorder()
	app.WebServer.Handler.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusAccepted, rr.Code)
	assert.Equal(t, 1, session.State().UseCount)

	req = httptest.NewRequest(http.MethodGet, "/health", nil)
	rr = httptest.NewRecorder()
	app.WebServer.Handler.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusOK, rr.Code)

	req = httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rr = httptest.NewRecorder()
	app.WebServer.Handler.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusNotFound, rr.Code, "metrics endpoint is off unless enabled")
}

func TestNewApp_MissingAppID(t *testing.T) {
	conf := &structures.Config{Reminder: structures.DefaultReminderConfig()}
	session, presenter, links, network, _ := newTestSession(conf, testutil.NewMockStore(), testutil.NewMockMetadata("5"))
	ac := controllers.NewApiController(&testutil.MockLogger{}, session, presenter, links, network)

	_, err := NewApp(InitRoutes(ac), controllers.NewHealthController(session), session, &testScheduler{}, conf, &testutil.MockLogger{}, testutil.NewMockMetrics())
	assert.ErrorIs(t, err, services.ErrMissingAppID)
}

func TestMaintenance(t *testing.T) {
	conf := &structures.Config{AppID: "9", Reminder: structures.DefaultReminderConfig()}
	store := testutil.NewMockStore()
	metadata := testutil.NewMockMetadata("3.0")
	_, _, _, _, tracker := newTestSession(conf, store, metadata)
	m := NewMaintenance(conf, tracker, metadata)

	for i := 0; i < 3; i++ {
		_, err := tracker.RecordUse("3.0")
		require.NoError(t, err)
	}
	tracker.MarkDeclined()

	assert.Equal(t, "9", m.AppID())
	assert.Equal(t, "3.0", m.CurrentVersion())
	assert.Equal(t, 3, m.State().UseCount)

	snap, err := m.Reset()
	require.NoError(t, err)
	assert.Equal(t, 1, snap.UseCount)
	assert.False(t, m.State().DeclinedToRate)
}

type testScheduler struct {
	inits, stops, persists int
}

func (s *testScheduler) Init()          { s.inits++ }
func (s *testScheduler) Stop()          { s.stops++ }
func (s *testScheduler) Persist() error { s.persists++; return nil }
