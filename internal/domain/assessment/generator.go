package assessment

import (
	"context"

	"github.com/dmehra2102/prod-golang-projects/medcanvas/internal/domain/intake"
)

// Generator is the narrow capability the pipeline needs from the structured-
// generation service. Implementations return a Draft whose shape is bound by
// the service's schema contract; the pipeline still treats it as untrusted
// and re-validates through safety enforcement.
type Generator interface {
	Generate(ctx context.Context, patient *intake.PatientIntake, evidenceContext string) (*Draft, error)
}
