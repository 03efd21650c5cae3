package http

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/skillsage/skillsage-backend/internal/delivery/http/handler"
	"github.com/skillsage/skillsage-backend/internal/delivery/http/middleware"
)

type Router struct {
	authHandler      *handler.AuthHandler
	profileHandler   *handler.ProfileHandler
	peerHandler      *handler.PeerHandler
	interviewHandler *handler.InterviewHandler
	courseHandler    *handler.CourseHandler
	dashboardHandler *handler.DashboardHandler
	resumeHandler    *handler.ResumeHandler
	visualizeHandler *handler.VisualizeHandler
	authMiddleware   *middleware.AuthMiddleware
}

func NewRouter(
	authHandler *handler.AuthHandler,
	profileHandler *handler.ProfileHandler,
	peerHandler *handler.PeerHandler,
	interviewHandler *handler.InterviewHandler,
	courseHandler *handler.CourseHandler,
	dashboardHandler *handler.DashboardHandler,
	resumeHandler *handler.ResumeHandler,
	visualizeHandler *handler.VisualizeHandler,
	authMiddleware *middleware.AuthMiddleware,
) *Router {
	return &Router{
		authHandler:      authHandler,
		profileHandler:   profileHandler,
		peerHandler:      peerHandler,
		interviewHandler: interviewHandler,
		courseHandler:    courseHandler,
		dashboardHandler: dashboardHandler,
		resumeHandler:    resumeHandler,
		visualizeHandler: visualizeHandler,
		authMiddleware:   authMiddleware,
	}
}

func (r *Router) Setup() *gin.Engine {
	router := gin.Default()

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", "Accept"}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"}
	router.Use(cors.New(corsConfig))

	// Health check (supports both GET and HEAD)
	healthHandler := func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "ok",
		})
	}
	router.GET("/health", healthHandler)
	router.HEAD("/health", healthHandler)

	// API v1
	v1 := router.Group("/api/v1")
	{
		// Auth routes (public)
		auth := v1.Group("/auth")
		{
			auth.POST("/register", r.authHandler.Register)
			auth.POST("/login", r.authHandler.Login)
			auth.GET("/me", r.authMiddleware.RequireAuth(), r.authHandler.Me)
		}

		// Protected routes
		protected := v1.Group("")
		protected.Use(r.authMiddleware.RequireAuth())
		{
			// Profile routes
			profile := protected.Group("/profile")
			{
				profile.GET("", r.profileHandler.GetProfile)
				profile.PUT("", r.profileHandler.UpdateProfile)
				profile.GET("/gamification", r.profileHandler.GetGamification)
			}

			// Peer interview routes (polling based signaling)
			p2p := protected.Group("/p2p")
			{
				p2p.POST("/find-partner", r.peerHandler.FindPartner)
				p2p.GET("/status", r.peerHandler.PollStatus)
				p2p.POST("/signal", r.peerHandler.SendSignal)
				p2p.POST("/feedback", r.peerHandler.CompleteRound)
				p2p.POST("/cancel", r.peerHandler.CancelSearch)
			}

			// Solo interview routes
			interviews := protected.Group("/interviews")
			{
				interviews.POST("", r.interviewHandler.Start)
				interviews.POST("/answer", r.interviewHandler.SubmitAnswer)
				interviews.GET("/:id/summary", r.interviewHandler.Summary)
			}

			// Course routes
			courses := protected.Group("/courses")
			{
				courses.GET("", r.courseHandler.ListCourses)
				courses.POST("/start", r.courseHandler.StartCourse)
				courses.POST("/module", r.courseHandler.CompleteModule)
			}

			// Resume analysis
			resumeGroup := protected.Group("/resume")
			{
				resumeGroup.POST("/analyze", r.resumeHandler.Analyze)
				resumeGroup.GET("/stats", r.resumeHandler.Stats)
			}

			// Content visualization
			protected.POST("/visualize", r.visualizeHandler.Visualize)

			// Dashboard
			protected.GET("/dashboard", r.dashboardHandler.Get)
		}
	}

	return router
}
