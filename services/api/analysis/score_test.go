package analysis

import (
	"reflect"
	"testing"
)

func TestPenaltyScoreClamps(t *testing.T) {
	if got := PenaltyScore(100, 15, 15, 15, 15, 15, 15, 15); got != 0 {
		t.Fatalf("score = %v, want 0", got)
	}
	if got := PenaltyScore(100, -20); got != 100 {
		t.Fatalf("score = %v, want 100", got)
	}
	if got := PenaltyScore(100, 15, 7); got != 78 {
		t.Fatalf("score = %v, want 78", got)
	}
}

func TestGradeFor(t *testing.T) {
	tests := map[float64]string{100: "A", 90: "A", 89.9: "B", 75: "B", 60: "C", 40: "D", 39.9: "F", 0: "F"}
	for score, want := range tests {
		if got := GradeFor(score).Letter; got != want {
			t.Errorf("GradeFor(%v) = %s, want %s", score, got, want)
		}
	}
	if got := GradeFor(10).Label; got != "Unsafe" {
		t.Errorf("F label = %s", got)
	}
}

func TestRound(t *testing.T) {
	if got := Round(0.12345, 3); got != 0.123 {
		t.Fatalf("Round = %v", got)
	}
	if got := Round(78.125, 1); got != 78.1 {
		t.Fatalf("Round = %v", got)
	}
}

type recCtx struct {
	peak, avg float64
}

func TestRecommendEvaluatesRulesInOrder(t *testing.T) {
	rules := []Rule[recCtx]{
		{When: func(c recCtx) bool { return c.peak > 0.9 }, Say: Line(func(recCtx) string { return "peak" })},
		{When: func(c recCtx) bool { return c.avg > 0.75 }, Say: Line(func(recCtx) string { return "audit" })},
	}

	if got := Recommend(recCtx{peak: 0.95, avg: 0.8}, rules, "ok"); !reflect.DeepEqual(got, []string{"peak", "audit"}) {
		t.Fatalf("both rules: %v", got)
	}
	if got := Recommend(recCtx{peak: 0.5, avg: 0.8}, rules, "ok"); !reflect.DeepEqual(got, []string{"audit"}) {
		t.Fatalf("one rule: %v", got)
	}
	if got := Recommend(recCtx{}, rules, "ok"); !reflect.DeepEqual(got, []string{"ok"}) {
		t.Fatalf("fallback: %v", got)
	}

	first := Recommend(recCtx{peak: 0.95}, rules, "ok")
	second := Recommend(recCtx{peak: 0.95}, rules, "ok")
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("not deterministic: %v vs %v", first, second)
	}
}
