package intake

import "strings"

// emergencyPhrases is the fixed vocabulary the pre-screener matches against.
// Matching is deliberately dumb: case-insensitive substring containment, so
// "crushing chest pain" and "Chest Pain at rest" both trip it.
var emergencyPhrases = []string{
	"chest pain",
	"difficulty breathing",
	"shortness of breath",
	"severe allergic reaction",
	"anaphylaxis",
	"loss of consciousness",
	"severe head injury",
	"stroke symptoms",
	"heart attack",
}

// DetectEmergency scans the chief complaint and each symptom independently
// for emergency phrases. The result is advisory: the pipeline still runs, but
// safety post-processing must never end up weaker than this signal.
func (p *PatientIntake) DetectEmergency() bool {
	if containsEmergencyPhrase(p.ChiefComplaint) {
		return true
	}
	for _, s := range p.Symptoms {
		if containsEmergencyPhrase(s) {
			return true
		}
	}
	return false
}

func containsEmergencyPhrase(text string) bool {
	lower := strings.ToLower(text)
	for _, phrase := range emergencyPhrases {
		if strings.Contains(lower, phrase) {
			return true
		}
	}
	return false
}
