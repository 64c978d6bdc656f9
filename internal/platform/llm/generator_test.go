package llm

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/dmehra2102/prod-golang-projects/medcanvas/internal/config"
	"github.com/dmehra2102/prod-golang-projects/medcanvas/internal/domain/assessment"
	"github.com/dmehra2102/prod-golang-projects/medcanvas/internal/domain/intake"
)

func TestGenerate_MissingAPIKeyFailsFast(t *testing.T) {
	g := NewGenerator(config.GenerationConfig{Model: "gpt-4o-mini"}, zap.NewNop())

	_, err := g.Generate(context.Background(), &intake.PatientIntake{}, "context")
	if !errors.Is(err, assessment.ErrNotConfigured) {
		t.Fatalf("expected ErrNotConfigured, got %v", err)
	}
}

func TestAssessmentSchema_RequiredFields(t *testing.T) {
	schema := assessmentSchema()

	required, ok := schema["required"].([]string)
	if !ok {
		t.Fatalf("missing required list: %v", schema)
	}

	want := map[string]bool{"probable_conditions": false, "rx": false, "safety_flags": false}
	for _, f := range required {
		if _, known := want[f]; !known {
			t.Fatalf("unexpected required field %q", f)
		}
		want[f] = true
	}
	for f, seen := range want {
		if !seen {
			t.Fatalf("field %q must be required", f)
		}
	}

	props, ok := schema["properties"].(map[string]any)
	if !ok {
		t.Fatalf("missing properties: %v", schema)
	}
	for _, f := range []string{"probable_conditions", "recommended_tests", "rx", "safety_flags"} {
		if _, ok := props[f]; !ok {
			t.Fatalf("schema missing property %q", f)
		}
	}
}
