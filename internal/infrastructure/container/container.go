package container

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	"github.com/skillsage/skillsage-backend/internal/config"
	"github.com/skillsage/skillsage-backend/internal/delivery/http"
	"github.com/skillsage/skillsage-backend/internal/delivery/http/handler"
	"github.com/skillsage/skillsage-backend/internal/delivery/http/middleware"
	"github.com/skillsage/skillsage-backend/internal/infrastructure/database"
	"github.com/skillsage/skillsage-backend/internal/infrastructure/gemini"
	"github.com/skillsage/skillsage-backend/internal/infrastructure/server"
	"github.com/skillsage/skillsage-backend/internal/repository"
	"github.com/skillsage/skillsage-backend/internal/repository/memory"
	"github.com/skillsage/skillsage-backend/internal/repository/postgres"
	"github.com/skillsage/skillsage-backend/internal/repository/redisrepo"
	"github.com/skillsage/skillsage-backend/internal/usecase/auth"
	"github.com/skillsage/skillsage-backend/internal/usecase/course"
	"github.com/skillsage/skillsage-backend/internal/usecase/dashboard"
	"github.com/skillsage/skillsage-backend/internal/usecase/interview"
	"github.com/skillsage/skillsage-backend/internal/usecase/peer"
	"github.com/skillsage/skillsage-backend/internal/usecase/profile"
	"github.com/skillsage/skillsage-backend/internal/usecase/resume"
	"github.com/skillsage/skillsage-backend/internal/usecase/visualize"
)

// Container holds all application dependencies
type Container struct {
	Config *config.Config
	DB     *sqlx.DB
	Redis  *redis.Client
	Server *server.Server
	Gemini *gemini.GeminiClient
}

// NewContainer creates a new dependency injection container
func NewContainer(cfg *config.Config) (*Container, error) {
	// Initialize database
	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	// Initialize Redis
	redisClient, err := database.NewRedisClient(&cfg.Redis)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize redis: %w", err)
	}

	// Initialize Gemini Client
	geminiClient, err := gemini.NewGeminiClient(cfg.Gemini.APIKey, cfg.Gemini.Model)
	if err != nil {
		fmt.Printf("Warning: Failed to initialize Gemini client: %v\n", err)
		// Don't fail, just continue without AI features
	}

	// Initialize repositories
	userRepo := postgres.NewUserRepository(db)
	profileRepo := postgres.NewProfileRepository(db)
	interviewRepo := postgres.NewInterviewRepository(db)
	courseRepo := postgres.NewCourseRepository(db)
	resumeRepo := postgres.NewResumeRepository(db)
	activityRepo := redisrepo.NewActivityRepository(redisClient)

	// Matchmaking state lives in postgres by default; STORAGE_TYPE=memory
	// keeps the waiting pool and matches in process memory instead.
	var matchRepo repository.PeerMatchRepository
	if cfg.Storage.Type == "memory" {
		matchRepo = memory.NewPeerMatchRepository()
	} else {
		matchRepo = postgres.NewPeerMatchRepository(db)
	}

	// A failed Gemini init leaves the typed pointer nil; keep the
	// interfaces nil too so use cases take their degraded paths.
	var scorer peer.AnswerScorer
	var generator interview.Generator
	var analyzer resume.Analyzer
	var diagrammer visualize.Diagrammer
	if geminiClient != nil {
		scorer = geminiClient
		generator = geminiClient
		analyzer = geminiClient
		diagrammer = geminiClient
	}

	// Initialize use cases
	authUseCase := auth.NewAuthUseCase(
		userRepo,
		profileRepo,
		cfg.JWT.AccessSecret,
		cfg.JWT.AccessExpiryMin,
	)

	profileUseCase := profile.NewProfileUseCase(profileRepo)

	peerUseCase := peer.NewPeerUseCase(
		matchRepo,
		userRepo,
		scorer,
		cfg.Gemini.Timeout,
	)

	interviewUseCase := interview.NewInterviewUseCase(
		interviewRepo,
		userRepo,
		generator,
		cfg.Gemini.Timeout,
	)

	courseUseCase := course.NewCourseUseCase(courseRepo, profileUseCase)

	resumeUseCase := resume.NewResumeUseCase(resumeRepo, analyzer, cfg.Gemini.Timeout)

	visualizeUseCase := visualize.NewVisualizeUseCase(diagrammer, cfg.Gemini.Timeout)

	dashboardUseCase := dashboard.NewDashboardUseCase(
		interviewRepo,
		courseRepo,
		activityRepo,
		userRepo,
	)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authUseCase)
	profileHandler := handler.NewProfileHandler(profileUseCase)
	peerHandler := handler.NewPeerHandler(peerUseCase)
	interviewHandler := handler.NewInterviewHandler(interviewUseCase)
	courseHandler := handler.NewCourseHandler(courseUseCase)
	dashboardHandler := handler.NewDashboardHandler(dashboardUseCase)
	resumeHandler := handler.NewResumeHandler(resumeUseCase)
	visualizeHandler := handler.NewVisualizeHandler(visualizeUseCase)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(authUseCase)

	// Initialize router
	router := http.NewRouter(
		authHandler,
		profileHandler,
		peerHandler,
		interviewHandler,
		courseHandler,
		dashboardHandler,
		resumeHandler,
		visualizeHandler,
		authMiddleware,
	)

	// Setup routes
	ginRouter := router.Setup()

	// Initialize server
	srv := server.NewServer(&cfg.Server, ginRouter)

	return &Container{
		Config: cfg,
		DB:     db,
		Redis:  redisClient,
		Server: srv,
		Gemini: geminiClient,
	}, nil
}

// Close closes all connections
func (c *Container) Close() error {
	// Close Redis
	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			fmt.Printf("Error closing Redis: %v\n", err)
		}
	}

	// Close database
	if c.DB != nil {
		if err := c.DB.Close(); err != nil {
			return fmt.Errorf("failed to close database: %w", err)
		}
	}

	return nil
}
