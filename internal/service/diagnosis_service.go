package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/dmehra2102/prod-golang-projects/medcanvas/internal/domain/assessment"
	"github.com/dmehra2102/prod-golang-projects/medcanvas/internal/domain/evidence"
	"github.com/dmehra2102/prod-golang-projects/medcanvas/internal/domain/intake"
	"github.com/dmehra2102/prod-golang-projects/medcanvas/pkg/metrics"
	"github.com/dmehra2102/prod-golang-projects/medcanvas/pkg/retry"
)

type DiagnosisService struct {
	searcher  evidence.Searcher
	generator assessment.Generator
	retry     *retry.Policy
	metrics   *metrics.Collector
	log       *zap.Logger
	tracer    trace.Tracer
}

func NewDiagnosisService(
	searcher evidence.Searcher,
	generator assessment.Generator,
	retryPolicy *retry.Policy,
	collector *metrics.Collector,
	log *zap.Logger,
) *DiagnosisService {
	return &DiagnosisService{
		searcher:  searcher,
		generator: generator,
		retry:     retryPolicy,
		metrics:   collector,
		log:       log,
		tracer:    otel.Tracer("medcanvas/diagnosis"),
	}
}

// Diagnose runs the full pipeline: validate, emergency pre-check, evidence
// retrieval, structured generation, safety enforcement, source attachment.
// Per-request state lives entirely on the stack; nothing survives the return.
//
// Failures before generation abort the request, with one recovery path: zero
// evidence results become a fixed degraded success instead of an error, and
// the generator is never invoked for them.
func (s *DiagnosisService) Diagnose(ctx context.Context, patient *intake.PatientIntake) (*assessment.Result, error) {
	ctx, span := s.tracer.Start(ctx, "pipeline.diagnose")
	defer span.End()

	if err := patient.Validate(); err != nil {
		s.metrics.DiagnosesTotal.WithLabelValues("validation_failed").Inc()
		return nil, err
	}

	emergencyDetected := patient.DetectEmergency()
	if emergencyDetected {
		s.metrics.EmergencyFlagsForced.Inc()
		s.log.Warn("emergency symptoms detected in intake",
			zap.Int("age", patient.Age),
			zap.String("sex", string(patient.Sex)),
		)
	}
	span.SetAttributes(attribute.Bool("pipeline.emergency_detected", emergencyDetected))

	evCtx, err := s.retrieveEvidence(ctx, patient.EvidenceQuery())
	if err != nil {
		if errors.Is(err, evidence.ErrInsufficientEvidence) {
			s.metrics.DiagnosesTotal.WithLabelValues("degraded").Inc()
			s.metrics.DegradedResponsesTotal.Inc()
			s.log.Info("no evidence found, serving degraded assessment")
			result := assessment.InsufficientEvidence()
			return &result, nil
		}
		s.countFailure(err)
		return nil, fmt.Errorf("retrieving evidence: %w", err)
	}

	draft, err := s.generateAssessment(ctx, patient, evCtx)
	if err != nil {
		s.countFailure(err)
		return nil, fmt.Errorf("generating assessment: %w", err)
	}

	draft.Safety = draft.Safety.Enforce(emergencyDetected)

	result := draft.Finalize(evCtx.SourceURLs())

	s.metrics.DiagnosesTotal.WithLabelValues("completed").Inc()
	s.log.Info("diagnosis completed",
		zap.Int("conditions", len(result.ProbableConditions)),
		zap.Int("sources", len(result.Sources)),
		zap.Bool("emergency", emergencyDetected),
	)
	return &result, nil
}

func (s *DiagnosisService) retrieveEvidence(ctx context.Context, query string) (*evidence.Context, error) {
	ctx, span := s.tracer.Start(ctx, "pipeline.retrieve_evidence")
	defer span.End()

	start := time.Now()
	defer func() {
		s.metrics.ExternalCallDuration.WithLabelValues("evidence").Observe(time.Since(start).Seconds())
	}()

	attempts := 0
	return retry.Do(ctx, s.retry, IsRateLimited, func(ctx context.Context) (*evidence.Context, error) {
		attempts++
		if attempts > 1 {
			s.metrics.RetryAttemptsTotal.WithLabelValues("evidence").Inc()
			s.log.Warn("retrying evidence search after rate limit", zap.Int("attempt", attempts))
		}
		return s.searcher.Search(ctx, query)
	})
}

func (s *DiagnosisService) generateAssessment(ctx context.Context, patient *intake.PatientIntake, evCtx *evidence.Context) (*assessment.Draft, error) {
	ctx, span := s.tracer.Start(ctx, "pipeline.generate_assessment")
	defer span.End()

	start := time.Now()
	defer func() {
		s.metrics.ExternalCallDuration.WithLabelValues("generation").Observe(time.Since(start).Seconds())
	}()

	formatted := evCtx.FormatContext()

	attempts := 0
	return retry.Do(ctx, s.retry, IsRateLimited, func(ctx context.Context) (*assessment.Draft, error) {
		attempts++
		if attempts > 1 {
			s.metrics.RetryAttemptsTotal.WithLabelValues("generation").Inc()
			s.log.Warn("retrying generation after rate limit", zap.Int("attempt", attempts))
		}
		return s.generator.Generate(ctx, patient, formatted)
	})
}

func (s *DiagnosisService) countFailure(err error) {
	switch {
	case IsRateLimited(err):
		s.metrics.DiagnosesTotal.WithLabelValues("rate_limited").Inc()
	default:
		s.metrics.DiagnosesTotal.WithLabelValues("error").Inc()
	}
}
