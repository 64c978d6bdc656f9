package intake

import "strings"

type Sex string

const (
	SexMale   Sex = "male"
	SexFemale Sex = "female"
	SexOther  Sex = "other"
)

func (s Sex) IsValid() bool {
	switch s {
	case SexMale, SexFemale, SexOther:
		return true
	}
	return false
}

type PregnancyStatus string

const (
	PregnancyYes      PregnancyStatus = "yes"
	PregnancyNo       PregnancyStatus = "no"
	PregnancyPossible PregnancyStatus = "possible"
)

// PatientIntake is the untrusted per-request payload. It is built once from
// the request body and never mutated downstream.
type PatientIntake struct {
	Age             int             `json:"age"`
	Sex             Sex             `json:"sex"`
	PregnancyStatus PregnancyStatus `json:"pregnancyStatus,omitempty"`
	ChiefComplaint  string          `json:"chiefComplaint"`
	Symptoms        []string        `json:"symptoms"`
	Duration        string          `json:"duration"`
	Severity        int             `json:"severity"`
	Medications     []string        `json:"medications"`
	Allergies       []string        `json:"allergies"`
}

// Validate checks the fields the pipeline cannot proceed without. It runs
// before any external call so retrieval and generation budget is never spent
// on unusable input.
func (p *PatientIntake) Validate() error {
	var missing []string

	if strings.TrimSpace(p.ChiefComplaint) == "" {
		missing = append(missing, "chiefComplaint")
	}
	if p.Age <= 0 {
		missing = append(missing, "age")
	}
	if p.Sex == "" || !p.Sex.IsValid() {
		missing = append(missing, "sex")
	}

	if len(missing) > 0 {
		return &ValidationError{Fields: missing}
	}
	return nil
}

// EvidenceQuery derives the search string sent to the evidence service:
// the chief complaint followed by the symptoms, space-joined.
func (p *PatientIntake) EvidenceQuery() string {
	parts := make([]string, 0, len(p.Symptoms)+1)
	parts = append(parts, p.ChiefComplaint)
	parts = append(parts, p.Symptoms...)
	return strings.Join(parts, " ")
}
