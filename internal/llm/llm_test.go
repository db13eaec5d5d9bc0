package llm

import (
	"context"
	"math"
	"strings"
	"testing"
)

func TestClampScore(t *testing.T) {
	cases := []struct {
		in   float64
		want int
	}{
		{-10, 0},
		{0, 0},
		{42.4, 42},
		{42.5, 43},
		{100, 100},
		{150, 100},
		{math.NaN(), 0},
	}
	for _, tc := range cases {
		if got := ClampScore(tc.in); got != tc.want {
			t.Errorf("ClampScore(%v) = %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestNormalizeDefaults(t *testing.T) {
	out := Normalize(RawScore{Score: 250})
	if out.Score != 100 {
		t.Errorf("score = %d, want 100", out.Score)
	}
	if out.Summary != "No summary available" {
		t.Errorf("summary = %q", out.Summary)
	}
	if out.Strengths == nil || out.Weaknesses == nil {
		t.Error("list fields must never be nil")
	}
}

func TestNormalizeCapsLists(t *testing.T) {
	out := Normalize(RawScore{
		Score:     70,
		Strengths: []string{"a", "b", "c", "d", "e"},
	})
	if len(out.Strengths) != MaxListItems {
		t.Errorf("strengths = %d, want %d", len(out.Strengths), MaxListItems)
	}
}

func TestFallbackScorerDeterministic(t *testing.T) {
	text := "Experienced and skilled engineer with professional certification."
	first, err := FallbackScorer{}.ScoreResume(context.Background(), text, "any prompt")
	if err != nil {
		t.Fatalf("ScoreResume: %v", err)
	}
	for i := 0; i < 5; i++ {
		got, err := FallbackScorer{}.ScoreResume(context.Background(), text, "other prompt")
		if err != nil {
			t.Fatal(err)
		}
		if got.Score != first.Score {
			t.Fatalf("run %d: score %d != %d", i, got.Score, first.Score)
		}
	}
}

func TestFallbackScorerKeywordBonus(t *testing.T) {
	plain, _ := FallbackScorer{}.ScoreResume(context.Background(), "nothing notable here", "p")
	rich, _ := FallbackScorer{}.ScoreResume(context.Background(), "experienced skilled proficient", "p")
	if rich.Score <= plain.Score {
		t.Errorf("keyword-rich score %d not above plain %d", rich.Score, plain.Score)
	}
}

func TestFallbackScorerRange(t *testing.T) {
	long := strings.Repeat("experienced skilled proficient expertise professional certification award achievement ", 500)
	out, _ := FallbackScorer{}.ScoreResume(context.Background(), long, "p")
	if out.Score < 0 || out.Score > 100 {
		t.Errorf("score = %d out of range", out.Score)
	}
}

func TestFallbackScorerSummaryMarksFallback(t *testing.T) {
	out, _ := FallbackScorer{}.ScoreResume(context.Background(), "abc", "p")
	if !strings.HasPrefix(out.Summary, FallbackSummaryPrefix) {
		t.Errorf("summary = %q", out.Summary)
	}
	if !strings.Contains(out.Summary, "3 characters") {
		t.Errorf("summary = %q, want character count", out.Summary)
	}
}
