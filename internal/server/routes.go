// Package server contain implementation of go-gin-server and each route handlers
package server

import (
	"net/http"
	"os"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"talentflow-backend/internal/auth"
	"talentflow-backend/internal/controller/assessment"
	"talentflow-backend/internal/controller/candidate"
	"talentflow-backend/internal/controller/job"
	"talentflow-backend/internal/middleware"
)

// RegisterRoutes will register each http endpoint routes to bound Server
// instance. Every /api route passes through the latency injector; mutating
// routes additionally pass through the fault injector, with login exempted.
// Extra inject options let tests force deterministic delay and fault draws.
func (s *Server) RegisterRoutes(injectOpts ...middleware.InjectOption) http.Handler {
	r := gin.Default()

	corsCfg := cors.DefaultConfig()
	if allowOriginsStr := os.Getenv("ALLOW_ORIGIN"); allowOriginsStr != "" {
		corsCfg.AllowOrigins = strings.Split(allowOriginsStr, ",")
	} else {
		corsCfg.AllowAllOrigins = true
	}
	corsCfg.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"}
	corsCfg.AllowHeaders = []string{"Accept", "Authorization", "Content-Type"}
	r.Use(cors.New(corsCfg))

	r.GET("/health", s.healthHandler)

	lAuth := auth.NewLoginHandler(s.store)
	jobCtrl := job.NewController(s.store)
	candCtrl := candidate.NewController(s.store)
	assessCtrl := assessment.NewController(s.store)

	opts := append([]middleware.InjectOption{middleware.WithFaultExempt("/api/login")}, injectOpts...)

	api := r.Group("/api")
	api.Use(middleware.Inject(s.cfg.Injector, opts...))
	{
		api.POST("/login", lAuth.Login)

		api.GET("/jobs", jobCtrl.GetJobs)
		api.POST("/jobs", jobCtrl.CreateJob)
		api.PATCH("/jobs/:id", jobCtrl.EditJob)
		api.DELETE("/jobs/:id", jobCtrl.DeleteJob)

		api.GET("/candidates", candCtrl.GetCandidates)
		api.POST("/candidates", candCtrl.CreateCandidate)
		api.GET("/candidates/:id", candCtrl.GetCandidateByID)
		api.PATCH("/candidates/:id", candCtrl.EditCandidate)
		api.GET("/candidates/:id/timeline", candCtrl.GetTimeline)

		api.GET("/assessments", assessCtrl.GetAll)
		api.GET("/assessments/:jobId", assessCtrl.GetByJob)
		api.PUT("/assessments/:jobId", assessCtrl.Upsert)
		api.POST("/assessments/:jobId/submit", assessCtrl.Submit)
	}

	return r
}

func (s *Server) healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "up",
		"counts": s.store.Counts(),
	})
}
