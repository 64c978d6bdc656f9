package assessment

// Prescription fields are free text straight from the generator. No medical
// validation is performed on the values.
type Prescription struct {
	Drug      string `json:"drug"`
	Dosage    string `json:"dosage"`
	Frequency string `json:"frequency"`
	Duration  string `json:"duration"`
	Notes     string `json:"notes,omitempty"`
}

// Draft is the generator's output before safety enforcement and source
// attachment. It is created once per request and mutated only by the safety
// post-processing step.
type Draft struct {
	ProbableConditions []string
	RecommendedTests   []string
	Rx                 []Prescription
	Safety             SafetyFlags
}

// Result is the wire-level assessment returned to the caller. Wire names
// match the original client contract.
type Result struct {
	ProbableConditions []string       `json:"probable_conditions"`
	RecommendedTests   []string       `json:"recommended_tests"`
	Rx                 []Prescription `json:"rx"`
	SafetyFlags        string         `json:"safety_flags"`
	Sources            []string       `json:"sources"`
}

// Finalize renders the safety flag set and attaches evidence sources in the
// order the retriever produced them. Sources are never re-ranked here.
func (d Draft) Finalize(sources []string) Result {
	if sources == nil {
		sources = []string{}
	}
	return Result{
		ProbableConditions: orEmpty(d.ProbableConditions),
		RecommendedTests:   orEmpty(d.RecommendedTests),
		Rx:                 orEmptyRx(d.Rx),
		SafetyFlags:        d.Safety.Render(),
		Sources:            sources,
	}
}

// InsufficientEvidence is the fixed degraded response used when the evidence
// service returns zero results. The generator is never consulted for it.
func InsufficientEvidence() Result {
	return Result{
		ProbableConditions: []string{"Insufficient medical evidence available"},
		RecommendedTests:   []string{"Consult with healthcare provider for proper evaluation"},
		Rx:                 []Prescription{},
		SafetyFlags:        "Unable to locate sufficient evidence. Please consult with a qualified healthcare provider for proper medical assessment.",
		Sources:            []string{},
	}
}

func orEmpty(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func orEmptyRx(rx []Prescription) []Prescription {
	if rx == nil {
		return []Prescription{}
	}
	return rx
}
