package server

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"resumerank/internal/analyses"
	googleauth "resumerank/internal/auth"
	"resumerank/internal/candidate"
	"resumerank/internal/llm"
	"resumerank/internal/llm/openai"
	"resumerank/internal/resumes"
	"resumerank/internal/services/health"
	"resumerank/internal/shared/config"
	"resumerank/internal/shared/metrics"
	"resumerank/internal/shared/server/middleware"
	"resumerank/internal/shared/server/respond"
	"resumerank/internal/shared/storage/db"
	"resumerank/internal/shared/storage/object"
	localstore "resumerank/internal/shared/storage/object/local"
	s3store "resumerank/internal/shared/storage/object/s3"
)

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(cfg config.Config) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(cfg.CORSAllowOrigin),
		middleware.Auth(cfg.Env),
		middleware.RateLimit(middleware.RateLimitConfig{
			Rules: map[string]middleware.RateLimitRule{
				"rank":  {Rate: 0.2, Burst: 3},
				"write": {Rate: 2, Burst: 10},
			},
			GroupFor: rateLimitGroup,
		}),
	)

	// Dependencies
	store := newObjectStore(cfg)
	var sqlDB *sql.DB
	if cfg.DatabaseURL != "" {
		dbConn, err := db.Connect(context.Background(), cfg.DatabaseURL, db.OptionsFromEnv(db.DefaultServerOptions()))
		if err != nil {
			log.Printf("failed to connect database, falling back to memory: %v", err)
		} else {
			if err := db.RunMigrations(context.Background(), dbConn); err != nil {
				log.Printf("failed to run migrations, falling back to memory: %v", err)
				dbConn = nil
			}
		}
		sqlDB = dbConn
	}

	scorer, extractor := newOracle(cfg)

	var resumeRepo resumes.ResumesRepo
	if sqlDB != nil {
		resumeRepo = &resumes.PGRepo{DB: sqlDB}
	} else {
		resumeRepo = resumes.NewMemoryRepo()
	}
	resumeSvc := &resumes.Service{
		Repo:       resumeRepo,
		Store:      store,
		Candidates: candidate.NewExtractor(extractor),
	}
	resumeHandler := resumes.NewHandler(resumeSvc)

	var analysisRepo analyses.Repo
	if sqlDB != nil {
		analysisRepo = &analyses.PGRepo{DB: sqlDB}
	} else {
		analysisRepo = analyses.NewMemoryRepo()
	}
	analysisSvc := &analyses.Service{
		Repo:       analysisRepo,
		Resumes:    resumeRepo,
		Scorer:     scorer,
		BatchSize:  cfg.RankBatchSize,
		BatchDelay: cfg.RankBatchDelay,
	}
	analysisHandler := analyses.NewHandler(analysisSvc)

	var usersRepo googleauth.UsersRepo
	if sqlDB != nil {
		usersRepo = &googleauth.PGUsersRepo{DB: sqlDB}
	} else {
		usersRepo = googleauth.NewMemoryUsersRepo()
	}
	googleAuthSvc := googleauth.NewGoogleService(cfg.GoogleClientID, cfg.GoogleClientSecret, cfg.GoogleRedirectURL, cfg.UIRedirectURL, usersRepo)

	healthSvc := health.NewService(sqlDB)

	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		respond.OK(c, healthSvc.Status())
	})
	api.GET("/ready", func(c *gin.Context) {
		out := healthSvc.Ready(c.Request.Context())
		status := http.StatusOK
		if ok, _ := out["ok"].(bool); !ok {
			status = http.StatusServiceUnavailable
		}
		respond.JSON(c, status, out)
	})
	api.GET("/metrics", metrics.Handler())
	googleAuthSvc.RegisterRoutes(api)
	registerMeRoutes(api)
	resumeHandler.RegisterRoutes(api)
	analysisHandler.RegisterRoutes(api)

	return r
}

func newObjectStore(cfg config.Config) object.ObjectStore {
	if cfg.ObjectStoreType == "s3" && cfg.S3Bucket != "" {
		store, err := s3store.New(context.Background(), cfg.AWSRegion, cfg.S3Bucket, cfg.S3Prefix)
		if err != nil {
			log.Printf("failed to init s3 store, falling back to local: %v", err)
		} else {
			return store
		}
	}
	return localstore.New(cfg.LocalStoreDir)
}

// newOracle wires the OpenAI adapter when a key is configured, otherwise the
// deterministic fallback scorer. Candidate extraction has no fallback here;
// the candidate package degrades to regex on its own.
func newOracle(cfg config.Config) (llm.Scorer, llm.CandidateExtractor) {
	if cfg.OpenAIAPIKey == "" {
		log.Printf("OPENAI_API_KEY not set, using fallback scorer")
		return llm.FallbackScorer{}, nil
	}
	client, err := openai.NewClient(cfg.OpenAIAPIKey, cfg.LLMModel)
	if err != nil {
		log.Printf("openai client init failed, using fallback scorer: %v", err)
		return llm.FallbackScorer{}, nil
	}
	return client, client
}

func rateLimitGroup(c *gin.Context) string {
	path := c.FullPath()
	switch {
	case strings.HasSuffix(path, "/resumes/rank"):
		return "rank"
	case c.Request.Method == http.MethodPost || c.Request.Method == http.MethodDelete:
		return "write"
	}
	return ""
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
