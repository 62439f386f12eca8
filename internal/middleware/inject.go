// Package middleware contain the latency and fault injector wrapped around
// every simulated route.
package middleware

import (
	"math/rand"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"talentflow-backend/internal/config"
	"talentflow-backend/internal/utilities"
)

// FaultMessage is the body of an injected server error.
const FaultMessage = "artificial server error"

type injector struct {
	cfg    config.InjectorConfig
	rand   func() float64
	sleep  func(time.Duration)
	exempt map[string]bool
}

// InjectOption overrides an injector seam, mainly so tests can force
// deterministic delay and fault outcomes.
type InjectOption func(*injector)

// WithRandFunc replaces the uniform [0,1) source.
func WithRandFunc(f func() float64) InjectOption {
	return func(i *injector) { i.rand = f }
}

// WithSleepFunc replaces the delay sleeper.
func WithSleepFunc(f func(time.Duration)) InjectOption {
	return func(i *injector) { i.sleep = f }
}

// WithFaultExempt marks request paths that take the latency but never the
// injected failure. Login qualifies: it has no state side effect to roll
// back.
func WithFaultExempt(paths ...string) InjectOption {
	return func(i *injector) {
		for _, p := range paths {
			i.exempt[p] = true
		}
	}
}

// Inject returns the middleware modelling an unreliable network: every
// request waits a uniform [MinLatency,MaxLatency) delay, and mutating
// requests additionally fail with probability FaultRate before their handler
// runs, so the mutation never happens on the fault path. Reads are delayed
// but never faulted.
func Inject(cfg config.InjectorConfig, opts ...InjectOption) gin.HandlerFunc {
	inj := &injector{
		cfg:    cfg,
		rand:   rand.Float64,
		sleep:  time.Sleep,
		exempt: map[string]bool{},
	}
	for _, opt := range opts {
		opt(inj)
	}

	return func(c *gin.Context) {
		span := float64(inj.cfg.MaxLatency - inj.cfg.MinLatency)
		inj.sleep(inj.cfg.MinLatency + time.Duration(inj.rand()*span))

		if mutating(c.Request.Method) && !inj.exempt[c.Request.URL.Path] {
			if inj.rand() < inj.cfg.FaultRate {
				c.AbortWithStatusJSON(http.StatusInternalServerError,
					utilities.ErrorResponse{Error: FaultMessage})
				return
			}
		}

		c.Next()
	}
}

func mutating(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
		return true
	}
	return false
}
