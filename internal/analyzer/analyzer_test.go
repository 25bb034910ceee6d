package analyzer

import (
	"errors"
	"math"
	"testing"

	"github.com/LexTOliver/web-scraping/internal/model"
	"github.com/LexTOliver/web-scraping/internal/nlp"
)

const tolerance = 1e-9

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < tolerance
}

func doc(url, text string) model.Document {
	return model.Document{URL: url, Text: text}
}

// TestKeywords tests keyword pair validation and normalization.
func TestKeywords(t *testing.T) {
	t.Parallel()

	a := New()

	t.Run("normalizes case and diacritics", func(t *testing.T) {
		t.Parallel()

		pair, err := a.Keywords("Python", "Programação")
		if err != nil {
			t.Fatalf("Keywords() error: %v", err)
		}
		if pair[0].Normalized != "python" {
			t.Errorf("first normalized = %q, want python", pair[0].Normalized)
		}
		if pair[1].Normalized != "programacao" {
			t.Errorf("second normalized = %q, want programacao", pair[1].Normalized)
		}
		if pair[0].Text != "Python" || pair[1].Text != "Programação" {
			t.Error("original keyword text must be preserved")
		}
	})

	t.Run("rejects empty keyword", func(t *testing.T) {
		t.Parallel()

		for _, kw := range []string{"", "   ", "!!!"} {
			if _, err := a.Keywords(kw, "python"); !errors.Is(err, nlp.ErrEmptyKeyword) {
				t.Errorf("keyword %q: expected ErrEmptyKeyword, got %v", kw, err)
			}
		}
	})

	t.Run("rejects stop word keyword", func(t *testing.T) {
		t.Parallel()

		if _, err := a.Keywords("para", "python"); !errors.Is(err, nlp.ErrEmptyKeyword) {
			t.Errorf("expected ErrEmptyKeyword, got %v", err)
		}
	})

	t.Run("rejects multi-word keyword", func(t *testing.T) {
		t.Parallel()

		if _, err := a.Keywords("machine learning", "python"); !errors.Is(err, ErrMultiWordKeyword) {
			t.Errorf("expected ErrMultiWordKeyword, got %v", err)
		}
	})

	t.Run("rejects keywords equal after normalization", func(t *testing.T) {
		t.Parallel()

		if _, err := a.Keywords("Programação", "programacao"); !errors.Is(err, ErrEqualKeywords) {
			t.Errorf("expected ErrEqualKeywords, got %v", err)
		}
	})
}

// TestWeightedSum tests weight validation and combination.
func TestWeightedSum(t *testing.T) {
	t.Parallel()

	t.Run("nil weights select the defaults", func(t *testing.T) {
		t.Parallel()

		w, err := NewWeightedSum(nil)
		if err != nil {
			t.Fatalf("NewWeightedSum(nil) error: %v", err)
		}

		scores := model.Subscores{
			model.ScorePresence: 1,
			model.ScorePosition: 1,
			model.ScoreDistance: 1,
		}
		// Similarity is zero, so the defaults cap the composite at 0.6.
		if got := w.Combine(scores); !almostEqual(got, 0.6) {
			t.Errorf("Combine() = %g, want 0.6", got)
		}
	})

	t.Run("rejects invalid weights", func(t *testing.T) {
		t.Parallel()

		cases := map[string]map[string]float64{
			"empty":           {},
			"negative weight": {model.ScorePresence: -0.5, model.ScorePosition: 1.5},
			"weight above 1":  {model.ScorePresence: 1.5},
			"sum below 1":     {model.ScorePresence: 0.5},
			"sum above 1":     {model.ScorePresence: 0.7, model.ScorePosition: 0.7},
		}
		for name, weights := range cases {
			t.Run(name, func(t *testing.T) {
				if _, err := NewWeightedSum(weights); !errors.Is(err, ErrInvalidWeights) {
					t.Errorf("expected ErrInvalidWeights, got %v", err)
				}
			})
		}
	})

	t.Run("missing sub-scores contribute zero", func(t *testing.T) {
		t.Parallel()

		w, err := NewWeightedSum(map[string]float64{
			model.ScorePresence: 0.5,
			model.ScorePosition: 0.5,
		})
		if err != nil {
			t.Fatalf("NewWeightedSum() error: %v", err)
		}

		if got := w.Combine(model.Subscores{model.ScorePresence: 0.8}); !almostEqual(got, 0.4) {
			t.Errorf("Combine() = %g, want 0.4", got)
		}
	})
}

// TestAnalyze tests document scoring and ranking.
func TestAnalyze(t *testing.T) {
	t.Parallel()

	a := New()

	t.Run("scores a document containing both keywords", func(t *testing.T) {
		t.Parallel()

		docs := []model.Document{
			doc("https://example.com/pt", "Python é ótimo para Programação"),
		}

		scored, err := a.Analyze(docs, "python", "Programação")
		if err != nil {
			t.Fatalf("Analyze() error: %v", err)
		}
		if len(scored) != 1 {
			t.Fatalf("expected 1 scored document, got %d", len(scored))
		}

		got := scored[0]
		// Token stream: python(0) otimo(1) programacao(2).
		if !almostEqual(got.Presence, 2.0/3.0) {
			t.Errorf("presence = %g, want 2/3", got.Presence)
		}
		if !almostEqual(got.Position, 1.0/3.0) {
			t.Errorf("position = %g, want 1/3", got.Position)
		}
		if !almostEqual(got.Distance, 1.0/3.0) {
			t.Errorf("distance = %g, want 1/3", got.Distance)
		}
		if got.Similarity != 0 {
			t.Errorf("similarity = %g, want 0", got.Similarity)
		}
		// 0.3*2/3 + 0.2*1/3 + 0.1*1/3 = 0.3
		if !almostEqual(got.Composite, 0.3) {
			t.Errorf("composite = %g, want 0.3", got.Composite)
		}
	})

	t.Run("records keyword positions", func(t *testing.T) {
		t.Parallel()

		docs := []model.Document{
			doc("https://example.com/p", "python code and more python code"),
		}

		scored, err := a.Analyze(docs, "python", "code")
		if err != nil {
			t.Fatalf("Analyze() error: %v", err)
		}
		if len(scored) != 1 {
			t.Fatalf("expected 1 scored document, got %d", len(scored))
		}

		// Token stream: python(0) code(1) python(2) code(3).
		positions := scored[0].KeywordPositions
		if got := positions["python"]; len(got) != 2 || got[0] != 0 || got[1] != 2 {
			t.Errorf("python positions = %v, want [0 2]", got)
		}
		if got := positions["code"]; len(got) != 2 || got[0] != 1 || got[1] != 3 {
			t.Errorf("code positions = %v, want [1 3]", got)
		}
	})

	t.Run("excludes documents without either keyword", func(t *testing.T) {
		t.Parallel()

		docs := []model.Document{
			doc("https://example.com/match", "python tutorial"),
			doc("https://example.com/none", "completely unrelated content"),
		}

		scored, err := a.Analyze(docs, "python", "tutorial")
		if err != nil {
			t.Fatalf("Analyze() error: %v", err)
		}
		if len(scored) != 1 {
			t.Fatalf("expected 1 scored document, got %d", len(scored))
		}
		if scored[0].URL != "https://example.com/match" {
			t.Errorf("scored URL = %q", scored[0].URL)
		}
	})

	t.Run("single keyword gives zero pair scores", func(t *testing.T) {
		t.Parallel()

		docs := []model.Document{
			doc("https://example.com/one", "python python python"),
		}

		scored, err := a.Analyze(docs, "python", "tutorial")
		if err != nil {
			t.Fatalf("Analyze() error: %v", err)
		}
		if len(scored) != 1 {
			t.Fatalf("expected 1 scored document, got %d", len(scored))
		}

		got := scored[0]
		if !almostEqual(got.Presence, 3.0/4.0) {
			t.Errorf("presence = %g, want 3/4", got.Presence)
		}
		if got.Position != 0 || got.Distance != 0 {
			t.Errorf("pair scores = (%g, %g), want (0, 0)", got.Position, got.Distance)
		}
	})

	t.Run("ranks adjacent early pair above distant pair", func(t *testing.T) {
		t.Parallel()

		docs := []model.Document{
			doc("https://example.com/far", "python filler filler filler filler filler filler tutorial"),
			doc("https://example.com/near", "python tutorial"),
		}

		scored, err := a.Analyze(docs, "python", "tutorial")
		if err != nil {
			t.Fatalf("Analyze() error: %v", err)
		}
		if len(scored) != 2 {
			t.Fatalf("expected 2 scored documents, got %d", len(scored))
		}
		if scored[0].URL != "https://example.com/near" {
			t.Errorf("top result = %q, want the near document", scored[0].URL)
		}
		if scored[0].Composite <= scored[1].Composite {
			t.Errorf("composites not descending: %g <= %g", scored[0].Composite, scored[1].Composite)
		}
	})

	t.Run("ties break by URL ascending", func(t *testing.T) {
		t.Parallel()

		docs := []model.Document{
			doc("https://example.com/b", "python tutorial"),
			doc("https://example.com/a", "python tutorial"),
		}

		scored, err := a.Analyze(docs, "python", "tutorial")
		if err != nil {
			t.Fatalf("Analyze() error: %v", err)
		}
		if len(scored) != 2 {
			t.Fatalf("expected 2 scored documents, got %d", len(scored))
		}
		if scored[0].URL != "https://example.com/a" {
			t.Errorf("top result = %q, want /a first on tie", scored[0].URL)
		}
	})

	t.Run("more occurrences raise presence", func(t *testing.T) {
		t.Parallel()

		few := []model.Document{doc("u", "python tutorial")}
		many := []model.Document{doc("u", "python tutorial python tutorial python")}

		fewScored, err := a.Analyze(few, "python", "tutorial")
		if err != nil {
			t.Fatalf("Analyze() error: %v", err)
		}
		manyScored, err := a.Analyze(many, "python", "tutorial")
		if err != nil {
			t.Fatalf("Analyze() error: %v", err)
		}

		if manyScored[0].Presence <= fewScored[0].Presence {
			t.Errorf("presence did not increase: %g <= %g",
				manyScored[0].Presence, fewScored[0].Presence)
		}
	})

	t.Run("empty document set yields empty ranking", func(t *testing.T) {
		t.Parallel()

		for _, docs := range [][]model.Document{nil, {}} {
			results, err := a.Analyze(docs, "python", "tutorial")
			if err != nil {
				t.Fatalf("Analyze() error: %v", err)
			}
			if len(results) != 0 {
				t.Errorf("expected empty ranking, got %v", results)
			}
		}
	})

	t.Run("invalid keywords fail before scoring", func(t *testing.T) {
		t.Parallel()

		if _, err := a.Analyze(nil, "", "python"); !errors.Is(err, nlp.ErrEmptyKeyword) {
			t.Errorf("expected ErrEmptyKeyword, got %v", err)
		}
	})
}

// TestMinDistance tests the closest-pair scan.
func TestMinDistance(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		first  []int
		second []int
		want   int
	}{
		{name: "adjacent", first: []int{0}, second: []int{1}, want: 1},
		{name: "interleaved", first: []int{0, 10}, second: []int{8, 20}, want: 2},
		{name: "same position streams", first: []int{3}, second: []int{7}, want: 4},
		{name: "closest pair late", first: []int{1, 50}, second: []int{30, 51}, want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := minDistance(tt.first, tt.second); got != tt.want {
				t.Errorf("minDistance(%v, %v) = %d, want %d", tt.first, tt.second, got, tt.want)
			}
		})
	}
}
