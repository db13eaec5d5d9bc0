package analyses

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"resumerank/internal/llm"
	"resumerank/internal/resumes"
	"resumerank/internal/shared/server/middleware"
)

func setupRankRouter(t *testing.T, scorer llm.Scorer) (*gin.Engine, *resumes.MemoryRepo) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	resumeRepo := resumes.NewMemoryRepo()
	svc := &Service{
		Repo:      NewMemoryRepo(),
		Resumes:   resumeRepo,
		Scorer:    scorer,
		BatchSize: 5,
	}

	router := gin.New()
	router.Use(middleware.Auth("dev"))
	api := router.Group("/api/v1")
	NewHandler(svc).RegisterRoutes(api)
	return router, resumeRepo
}

func addGuestHeader(req *http.Request) {
	req.Header.Set("X-Guest-Id", "test-guest")
}

func seedGuestResumes(t *testing.T, repo *resumes.MemoryRepo, names ...string) {
	t.Helper()
	base := time.Now().UTC()
	for i, name := range names {
		err := repo.Create(context.Background(), resumes.Resume{
			ID:            name,
			UserID:        "guest:test-guest",
			CandidateName: name,
			ExtractedText: "resume text for " + name,
			FetchedAt:     base.Add(-time.Duration(i) * time.Minute),
		})
		if err != nil {
			t.Fatalf("seed %s: %v", name, err)
		}
	}
}

func TestRankEndpointReturnsRankedResults(t *testing.T) {
	scorer := &recordingScorer{fn: func(text string) (llm.ResumeScore, error) {
		return llm.ResumeScore{Score: len(text) % 101, Summary: "s"}, nil
	}}
	router, resumeRepo := setupRankRouter(t, scorer)
	seedGuestResumes(t, resumeRepo, "Short", "A much longer name")

	body, _ := json.Marshal(map[string]string{"jobPrompt": "backend engineer"})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/resumes/rank", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	addGuestHeader(req)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", resp.Code, resp.Body.String())
	}

	var created AnalysisResponse
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if created.AnalysisID == "" {
		t.Fatal("expected analysisId")
	}
	if len(created.Results) != 2 {
		t.Fatalf("results = %d, want 2", len(created.Results))
	}
	for i, res := range created.Results {
		if res.Rank != i+1 {
			t.Errorf("results[%d].Rank = %d, want %d", i, res.Rank, i+1)
		}
		if res.Strengths == nil || res.Weaknesses == nil {
			t.Errorf("results[%d] has nil list fields", i)
		}
	}
}

func TestRankEndpointEmptyPrompt(t *testing.T) {
	scorer := &recordingScorer{}
	router, resumeRepo := setupRankRouter(t, scorer)
	seedGuestResumes(t, resumeRepo, "A")

	body, _ := json.Marshal(map[string]string{"jobPrompt": "   "})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/resumes/rank", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	addGuestHeader(req)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
	if scorer.callCount() != 0 {
		t.Errorf("scorer calls = %d, want 0", scorer.callCount())
	}
}

func TestRankEndpointNoResumes(t *testing.T) {
	router, _ := setupRankRouter(t, &recordingScorer{})

	body, _ := json.Marshal(map[string]string{"jobPrompt": "prompt"})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/resumes/rank", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	addGuestHeader(req)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
}

func TestRankEndpointScoringUnavailable(t *testing.T) {
	scorer := &recordingScorer{fn: func(string) (llm.ResumeScore, error) {
		return llm.ResumeScore{}, llm.ErrScoringUnavailable
	}}
	router, resumeRepo := setupRankRouter(t, scorer)
	seedGuestResumes(t, resumeRepo, "A")

	body, _ := json.Marshal(map[string]string{"jobPrompt": "prompt"})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/resumes/rank", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	addGuestHeader(req)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", resp.Code)
	}
}

func TestLatestAnalysisEndpoint(t *testing.T) {
	scorer := &recordingScorer{fn: func(string) (llm.ResumeScore, error) {
		return llm.ResumeScore{Score: 70}, nil
	}}
	router, resumeRepo := setupRankRouter(t, scorer)
	seedGuestResumes(t, resumeRepo, "Jane Doe")

	body, _ := json.Marshal(map[string]string{"jobPrompt": "prompt"})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/resumes/rank", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	addGuestHeader(req)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusCreated {
		t.Fatalf("rank: expected 201, got %d", resp.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/v1/resumes/latest-analysis", nil)
	addGuestHeader(req)
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("latest: expected 200, got %d", resp.Code)
	}
	var latest AnalysisResponse
	if err := json.NewDecoder(resp.Body).Decode(&latest); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(latest.Results) != 1 || latest.Results[0].CandidateName != "Jane Doe" {
		t.Fatalf("results = %+v", latest.Results)
	}
}

func TestLatestAnalysisBeforeFirstRankIsNull(t *testing.T) {
	router, _ := setupRankRouter(t, &recordingScorer{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/resumes/latest-analysis", nil)
	addGuestHeader(req)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if body := strings.TrimSpace(resp.Body.String()); body != "null" {
		t.Fatalf("expected null body, got %q", body)
	}
}
