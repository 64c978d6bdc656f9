package intake

import (
	"errors"
	"testing"
)

func validIntake() PatientIntake {
	return PatientIntake{
		Age:            54,
		Sex:            SexMale,
		ChiefComplaint: "persistent cough",
		Symptoms:       []string{"fatigue", "mild fever"},
		Duration:       "1-2 weeks",
		Severity:       3,
	}
}

func TestValidate_OK(t *testing.T) {
	p := validIntake()
	if err := p.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_MissingFields(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*PatientIntake)
		field  string
	}{
		{"no complaint", func(p *PatientIntake) { p.ChiefComplaint = "  " }, "chiefComplaint"},
		{"zero age", func(p *PatientIntake) { p.Age = 0 }, "age"},
		{"negative age", func(p *PatientIntake) { p.Age = -3 }, "age"},
		{"empty sex", func(p *PatientIntake) { p.Sex = "" }, "sex"},
		{"bogus sex", func(p *PatientIntake) { p.Sex = "robot" }, "sex"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := validIntake()
			tc.mutate(&p)

			var verr *ValidationError
			if err := p.Validate(); !errors.As(err, &verr) {
				t.Fatalf("expected ValidationError, got %v", err)
			} else if len(verr.Fields) != 1 || verr.Fields[0] != tc.field {
				t.Fatalf("expected field %q, got %v", tc.field, verr.Fields)
			}
		})
	}
}

func TestValidate_ReportsAllMissingFields(t *testing.T) {
	p := PatientIntake{}
	var verr *ValidationError
	if err := p.Validate(); !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	} else if len(verr.Fields) != 3 {
		t.Fatalf("expected 3 missing fields, got %v", verr.Fields)
	}
}

func TestEvidenceQuery(t *testing.T) {
	p := validIntake()
	got := p.EvidenceQuery()
	want := "persistent cough fatigue mild fever"
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestDetectEmergency(t *testing.T) {
	cases := []struct {
		name      string
		complaint string
		symptoms  []string
		want      bool
	}{
		{"benign", "mild headache", []string{"fatigue"}, false},
		{"complaint match", "severe chest pain", nil, true},
		{"complaint match mixed case", "Crushing CHEST PAIN at rest", nil, true},
		{"symptom match", "feeling unwell", []string{"shortness of breath"}, true},
		{"symptom substring", "dizzy", []string{"sudden Loss of Consciousness episode"}, true},
		{"anaphylaxis", "swelling after bee sting", []string{"anaphylaxis"}, true},
		{"no partial word match", "chess pains me", []string{"short breaths"}, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := PatientIntake{ChiefComplaint: tc.complaint, Symptoms: tc.symptoms}
			if got := p.DetectEmergency(); got != tc.want {
				t.Fatalf("expected %v, got %v", tc.want, got)
			}
		})
	}
}
