package assessment

import "strings"

const (
	// emergencyMarker is the substring whose presence means the text already
	// carries an emergency warning, whoever put it there.
	emergencyMarker = "EMERGENCY"
	emergencyPrefix = "CALL EMERGENCY SERVICES IMMEDIATELY - "

	disclaimerMarker = "educational"
	disclaimerText   = ". This assessment is for educational purposes only and is not a substitute for professional medical advice."
)

// SafetyFlags is a structured flag set plus the generator's free-text notes.
// The flags are rendered into a single string at the response boundary;
// keeping them structured until then makes enforcement order-independent and
// idempotent instead of relying on repeated string surgery.
type SafetyFlags struct {
	Emergency  bool
	Disclaimer bool
	Notes      string
}

// ParseSafetyFlags wraps the generator's raw safety text. Marker substrings
// the generator already included count as the corresponding flag being set.
func ParseSafetyFlags(raw string) SafetyFlags {
	return SafetyFlags{
		Emergency:  strings.Contains(raw, emergencyMarker),
		Disclaimer: strings.Contains(raw, disclaimerMarker),
		Notes:      raw,
	}
}

// Enforce applies the deterministic safety rules: a detected emergency forces
// the emergency flag regardless of the generator's judgment, and the
// educational disclaimer is always required. Enforce never clears a flag and
// applying it twice is a no-op.
func (f SafetyFlags) Enforce(emergencyDetected bool) SafetyFlags {
	if emergencyDetected {
		f.Emergency = true
	}
	f.Disclaimer = true
	return f
}

// Render produces the caller-visible safety text. A marker already present in
// the notes suppresses the matching addition, so rendering is stable even if
// the output is parsed and rendered again.
func (f SafetyFlags) Render() string {
	text := f.Notes
	if f.Emergency && !strings.Contains(text, emergencyMarker) {
		text = emergencyPrefix + text
	}
	if f.Disclaimer && !strings.Contains(text, disclaimerMarker) {
		text += disclaimerText
	}
	return text
}
