package analysis

import (
	"errors"
	"reflect"
	"testing"

	"github.com/02loveslollipop/campus-pulse/services/api/signal"
)

var turbidity = Threshold{Parameter: "turbidity_ntu", Min: 0, Max: 4.0}
var ph = Threshold{Parameter: "ph", Min: 6.5, Max: 8.5}

func TestClassifyBoundaries(t *testing.T) {
	c := DefaultClassifier()

	tests := []struct {
		name     string
		value    float64
		th       Threshold
		wantNone bool
		want     Severity
	}{
		{name: "at upper bound", value: 4.0, th: turbidity, wantNone: true},
		{name: "at lower bound", value: 6.5, th: ph, wantNone: true},
		{name: "just above", value: 4.01, th: turbidity, want: SeverityWarning},
		{name: "just below", value: 6.49, th: ph, want: SeverityWarning},
		{name: "at 150 percent", value: 6.0, th: turbidity, want: SeverityWarning},
		{name: "far above", value: 9.0, th: turbidity, want: SeverityCritical},
		{name: "far below", value: 4.5, th: ph, want: SeverityCritical},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := c.Classify(signal.Sample{tc.th.Parameter: tc.value}, []Threshold{tc.th})
			if tc.wantNone {
				if len(got) != 0 {
					t.Fatalf("expected no anomaly, got %+v", got)
				}
				return
			}
			if len(got) != 1 {
				t.Fatalf("expected one anomaly, got %+v", got)
			}
			if got[0].Severity != tc.want {
				t.Fatalf("severity = %s, want %s", got[0].Severity, tc.want)
			}
		})
	}
}

func TestClassifyKeepsThresholdOrderAndDeviation(t *testing.T) {
	sample := signal.Sample{"turbidity_ntu": 9.0, "ph": 6.0, "tds_ppm": 300}
	got := DefaultClassifier().Classify(sample, []Threshold{ph, turbidity, {Parameter: "tds_ppm", Min: 0, Max: 500}})

	if len(got) != 2 {
		t.Fatalf("anomalies = %+v", got)
	}
	if got[0].Parameter != "ph" || got[1].Parameter != "turbidity_ntu" {
		t.Fatalf("order = %s, %s", got[0].Parameter, got[1].Parameter)
	}
	if got[0].Deviation != 0.5 || got[1].Deviation != 5.0 {
		t.Fatalf("deviations = %v, %v", got[0].Deviation, got[1].Deviation)
	}
	if got[0].Severity != SeverityWarning || got[1].Severity != SeverityCritical {
		t.Fatalf("severities = %s, %s", got[0].Severity, got[1].Severity)
	}
}

func TestClassifySkipsMissingParameters(t *testing.T) {
	got := DefaultClassifier().Classify(signal.Sample{}, []Threshold{ph})
	if got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", got)
	}
}

func TestRiskTier(t *testing.T) {
	for n, want := range map[int]string{0: RiskLow, 1: RiskMedium, 2: RiskMedium, 3: RiskHigh, 7: RiskHigh} {
		if got := RiskTier(n); got != want {
			t.Errorf("RiskTier(%d) = %s, want %s", n, got, want)
		}
	}
}

func TestCountBySeverity(t *testing.T) {
	counts := CountBySeverity([]Anomaly{{Severity: SeverityCritical}, {Severity: SeverityWarning}, {Severity: SeverityCritical}})
	want := map[Severity]int{SeverityCritical: 2, SeverityWarning: 1}
	if !reflect.DeepEqual(counts, want) {
		t.Fatalf("counts = %v", counts)
	}
}

func TestValidationErrorUnwraps(t *testing.T) {
	err := CheckRange("hours", 0, 1, 168)
	if !errors.Is(err, ErrInvalidOption) {
		t.Fatalf("expected ErrInvalidOption, got %v", err)
	}
	var ve *ValidationError
	if !errors.As(err, &ve) || ve.Option != "hours" {
		t.Fatalf("expected ValidationError for hours, got %v", err)
	}
	if CheckRange("hours", 24, 1, 168) != nil {
		t.Fatalf("24 hours should be valid")
	}
}
