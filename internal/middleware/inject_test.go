package middleware

import (
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"talentflow-backend/internal/config"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func testInjectorConfig() config.InjectorConfig {
	return config.InjectorConfig{
		MinLatency: 200 * time.Millisecond,
		MaxLatency: 1200 * time.Millisecond,
		FaultRate:  0.10,
	}
}

// injectTestRouter mounts a trivial handler on every verb behind the
// injector. handled reports whether the request reached the handler.
func injectTestRouter(cfg config.InjectorConfig, handled *bool, opts ...InjectOption) *gin.Engine {
	r := gin.New()
	r.Use(Inject(cfg, opts...))
	ok := func(c *gin.Context) {
		*handled = true
		c.JSON(http.StatusOK, gin.H{"message": "ok"})
	}
	r.GET("/api/jobs", ok)
	r.POST("/api/jobs", ok)
	r.PATCH("/api/jobs/j1", ok)
	r.DELETE("/api/jobs/j1", ok)
	r.POST("/api/login", ok)
	return r
}

func perform(r *gin.Engine, method, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, nil)
	r.ServeHTTP(w, req)
	return w
}

func TestInject_delaysEveryRequest(t *testing.T) {
	var slept []time.Duration
	var handled bool
	r := injectTestRouter(testInjectorConfig(), &handled,
		WithRandFunc(func() float64 { return 0.5 }),
		WithSleepFunc(func(d time.Duration) { slept = append(slept, d) }))

	w := perform(r, http.MethodGet, "/api/jobs")

	assert.Equal(t, http.StatusOK, w.Code)
	require.Len(t, slept, 1)
	assert.Equal(t, 700*time.Millisecond, slept[0])
}

func TestInject_delayStaysInBounds(t *testing.T) {
	cfg := testInjectorConfig()
	var handled bool

	for _, frac := range []float64{0, 0.25, 0.999} {
		var slept time.Duration
		r := injectTestRouter(cfg, &handled,
			WithRandFunc(func() float64 { return frac }),
			WithSleepFunc(func(d time.Duration) { slept = d }))
		perform(r, http.MethodGet, "/api/jobs")

		assert.GreaterOrEqual(t, slept, cfg.MinLatency)
		assert.Less(t, slept, cfg.MaxLatency)
	}
}

func TestInject_neverFaultsReads(t *testing.T) {
	var handled bool
	// A rand source that always lands under the fault rate.
	r := injectTestRouter(testInjectorConfig(), &handled,
		WithRandFunc(func() float64 { return 0.0 }),
		WithSleepFunc(func(time.Duration) {}))

	w := perform(r, http.MethodGet, "/api/jobs")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, handled)
}

func TestInject_faultsMutationsBeforeHandler(t *testing.T) {
	for _, method := range []string{http.MethodPost, http.MethodPatch, http.MethodDelete} {
		t.Run(method, func(t *testing.T) {
			var handled bool
			r := injectTestRouter(testInjectorConfig(), &handled,
				WithRandFunc(func() float64 { return 0.0 }),
				WithSleepFunc(func(time.Duration) {}))

			path := "/api/jobs"
			if method != http.MethodPost {
				path = "/api/jobs/j1"
			}
			w := perform(r, method, path)

			assert.Equal(t, http.StatusInternalServerError, w.Code)
			assert.JSONEq(t, `{"error":"artificial server error"}`, w.Body.String())
			assert.False(t, handled, "handler must not run on the fault path")
		})
	}
}

func TestInject_mutationPassesWhenDrawMisses(t *testing.T) {
	var handled bool
	r := injectTestRouter(testInjectorConfig(), &handled,
		WithRandFunc(func() float64 { return 0.99 }),
		WithSleepFunc(func(time.Duration) {}))

	w := perform(r, http.MethodPost, "/api/jobs")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, handled)
}

func TestInject_exemptPathTakesLatencyButNoFault(t *testing.T) {
	var handled bool
	var slept int
	r := injectTestRouter(testInjectorConfig(), &handled,
		WithRandFunc(func() float64 { return 0.0 }),
		WithSleepFunc(func(time.Duration) { slept++ }),
		WithFaultExempt("/api/login"))

	w := perform(r, http.MethodPost, "/api/login")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, handled)
	assert.Equal(t, 1, slept)
}

func TestInject_zeroFaultRateNeverFails(t *testing.T) {
	cfg := testInjectorConfig()
	cfg.FaultRate = 0

	var handled bool
	r := injectTestRouter(cfg, &handled,
		WithRandFunc(func() float64 { return 0.0 }),
		WithSleepFunc(func(time.Duration) {}))

	w := perform(r, http.MethodDelete, "/api/jobs/j1")
	assert.Equal(t, http.StatusOK, w.Code)
}
