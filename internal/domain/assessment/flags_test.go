package assessment

import "testing"

const disclaimer = ". This assessment is for educational purposes only and is not a substitute for professional medical advice."

func TestRender_EmergencyForcedOverGeneratorOutput(t *testing.T) {
	flags := ParseSafetyFlags("monitor symptoms").Enforce(true)

	want := "CALL EMERGENCY SERVICES IMMEDIATELY - monitor symptoms" + disclaimer
	if got := flags.Render(); got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestRender_NoEmergencyDetected(t *testing.T) {
	flags := ParseSafetyFlags("monitor symptoms").Enforce(false)

	want := "monitor symptoms" + disclaimer
	if got := flags.Render(); got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestRender_GeneratorAlreadyFlaggedEmergency(t *testing.T) {
	raw := "CALL EMERGENCY SERVICES IMMEDIATELY"
	flags := ParseSafetyFlags(raw).Enforce(true)

	want := raw + disclaimer
	if got := flags.Render(); got != want {
		t.Fatalf("expected no duplicate prefix, got %q", got)
	}
}

func TestRender_GeneratorAlreadyIncludedDisclaimer(t *testing.T) {
	raw := "monitor symptoms; educational use only"
	flags := ParseSafetyFlags(raw).Enforce(false)

	if got := flags.Render(); got != raw {
		t.Fatalf("expected no duplicate disclaimer, got %q", got)
	}
}

func TestEnforce_Idempotent(t *testing.T) {
	once := ParseSafetyFlags("monitor symptoms").Enforce(true)
	twice := once.Enforce(true)

	if once.Render() != twice.Render() {
		t.Fatalf("double enforcement changed output: %q vs %q", once.Render(), twice.Render())
	}
}

func TestEnforce_StableThroughReparse(t *testing.T) {
	rendered := ParseSafetyFlags("monitor symptoms").Enforce(true).Render()
	again := ParseSafetyFlags(rendered).Enforce(true).Render()

	if rendered != again {
		t.Fatalf("re-applying to rendered output changed it: %q vs %q", rendered, again)
	}
}

func TestEnforce_NeverClearsEmergency(t *testing.T) {
	flags := ParseSafetyFlags("CALL EMERGENCY SERVICES IMMEDIATELY - go now").Enforce(false)
	if !flags.Emergency {
		t.Fatal("expected emergency flag to survive enforcement with no detection")
	}
}
