package assessment

import (
	"reflect"
	"testing"
)

func TestFinalize_AttachesSourcesInOrder(t *testing.T) {
	draft := Draft{
		ProbableConditions: []string{"bronchitis"},
		RecommendedTests:   []string{"chest x-ray"},
		Rx:                 []Prescription{{Drug: "dextromethorphan", Dosage: "20mg", Frequency: "every 6h", Duration: "5 days"}},
		Safety:             ParseSafetyFlags("rest and hydrate").Enforce(false),
	}
	sources := []string{"https://cdc.gov/a", "https://who.int/b", "https://nejm.org/c"}

	result := draft.Finalize(sources)

	if !reflect.DeepEqual(result.Sources, sources) {
		t.Fatalf("source order not preserved: %v", result.Sources)
	}
	if len(result.Rx) != 1 || result.Rx[0].Drug != "dextromethorphan" {
		t.Fatalf("prescriptions not carried through: %+v", result.Rx)
	}
}

func TestFinalize_NilSlicesBecomeEmpty(t *testing.T) {
	result := Draft{Safety: ParseSafetyFlags("")}.Finalize(nil)

	if result.ProbableConditions == nil || result.RecommendedTests == nil || result.Rx == nil || result.Sources == nil {
		t.Fatalf("expected empty slices, got %+v", result)
	}
}

func TestInsufficientEvidence_FixedBody(t *testing.T) {
	result := InsufficientEvidence()

	if !reflect.DeepEqual(result.ProbableConditions, []string{"Insufficient medical evidence available"}) {
		t.Fatalf("unexpected conditions: %v", result.ProbableConditions)
	}
	if len(result.Rx) != 0 {
		t.Fatalf("degraded response must carry no prescriptions, got %v", result.Rx)
	}
	if len(result.Sources) != 0 {
		t.Fatalf("degraded response must carry no sources, got %v", result.Sources)
	}
	if result.SafetyFlags == "" {
		t.Fatal("degraded response must instruct the user to consult a provider")
	}
}
