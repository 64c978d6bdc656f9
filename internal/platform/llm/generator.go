package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	openai "github.com/openai/openai-go/v2"
	"github.com/openai/openai-go/v2/option"
	"go.uber.org/zap"

	"github.com/dmehra2102/prod-golang-projects/medcanvas/internal/config"
	"github.com/dmehra2102/prod-golang-projects/medcanvas/internal/domain/assessment"
	"github.com/dmehra2102/prod-golang-projects/medcanvas/internal/domain/intake"
)

const assessmentTool = "create_assessment"

const systemPromptTemplate = `You are an expert medical AI assistant. Based on the patient data and medical context provided, generate a structured medical assessment.

IMPORTANT SAFETY GUIDELINES:
- If symptoms suggest emergency conditions (chest pain, difficulty breathing, severe allergic reactions, etc.), set safety_flags to "CALL EMERGENCY SERVICES IMMEDIATELY"
- Always emphasize this is educational only and not a substitute for professional medical advice
- Include relevant medical sources and evidence-based recommendations

Patient Data: %s
Medical Context: %s

Provide a comprehensive assessment with probable conditions, recommended tests, and treatment suggestions.`

// Generator calls the OpenAI chat completions API with a forced function-tool
// result so the response is schema-bound rather than free text. It implements
// assessment.Generator.
type Generator struct {
	cfg    config.GenerationConfig
	client openai.Client
	log    *zap.Logger
}

func NewGenerator(cfg config.GenerationConfig, log *zap.Logger) *Generator {
	opts := []option.RequestOption{option.WithAPIKey(cfg.APIKey)}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	return &Generator{
		cfg:    cfg,
		client: openai.NewClient(opts...),
		log:    log,
	}
}

// draftPayload mirrors the tool schema. safety_flags stays a plain string on
// the wire; it is parsed into the structured flag set after decoding.
type draftPayload struct {
	ProbableConditions []string                  `json:"probable_conditions"`
	RecommendedTests   []string                  `json:"recommended_tests"`
	Rx                 []assessment.Prescription `json:"rx"`
	SafetyFlags        string                    `json:"safety_flags"`
}

func (g *Generator) Generate(ctx context.Context, patient *intake.PatientIntake, evidenceContext string) (*assessment.Draft, error) {
	if g.cfg.APIKey == "" {
		return nil, assessment.ErrNotConfigured
	}

	patientJSON, err := json.Marshal(patient)
	if err != nil {
		return nil, fmt.Errorf("encoding patient data: %w", err)
	}

	params := openai.ChatCompletionNewParams{
		Model: openai.ChatModel(g.cfg.Model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(fmt.Sprintf(systemPromptTemplate, patientJSON, evidenceContext)),
			openai.UserMessage("Please analyze the patient data and provide a medical assessment."),
		},
		Tools: []openai.ChatCompletionToolUnionParam{
			openai.ChatCompletionFunctionTool(openai.FunctionDefinitionParam{
				Name:        assessmentTool,
				Description: openai.String("Create a structured medical assessment with prescriptions"),
				Parameters:  assessmentSchema(),
			}),
		},
		ToolChoice: openai.ChatCompletionToolChoiceOptionUnionParam{
			OfFunctionToolChoice: &openai.ChatCompletionNamedToolChoiceParam{
				Function: openai.ChatCompletionNamedToolChoiceFunctionParam{Name: assessmentTool},
			},
		},
		// Low temperature biases toward conservative, repeatable output.
		Temperature: openai.Float(g.cfg.Temperature),
	}

	resp, err := g.client.Chat.Completions.New(ctx, params)
	if err != nil {
		var apierr *openai.Error
		if errors.As(err, &apierr) {
			g.log.Warn("generation service error", zap.Int("status", apierr.StatusCode))
			return nil, &StatusError{StatusCode: apierr.StatusCode}
		}
		return nil, fmt.Errorf("calling generation service: %w", err)
	}

	args := toolArguments(resp)
	if args == "" {
		return nil, assessment.ErrNoStructuredOutput
	}

	var payload draftPayload
	if err := json.Unmarshal([]byte(args), &payload); err != nil {
		return nil, fmt.Errorf("%w: %v", assessment.ErrNoStructuredOutput, err)
	}

	return &assessment.Draft{
		ProbableConditions: payload.ProbableConditions,
		RecommendedTests:   payload.RecommendedTests,
		Rx:                 payload.Rx,
		Safety:             assessment.ParseSafetyFlags(payload.SafetyFlags),
	}, nil
}

func toolArguments(resp *openai.ChatCompletion) string {
	if resp == nil || len(resp.Choices) == 0 {
		return ""
	}
	calls := resp.Choices[0].Message.ToolCalls
	if len(calls) == 0 {
		return ""
	}
	return calls[0].Function.Arguments
}

func assessmentSchema() openai.FunctionParameters {
	return openai.FunctionParameters{
		"type": "object",
		"properties": map[string]any{
			"probable_conditions": map[string]any{
				"type":        "array",
				"items":       map[string]any{"type": "string"},
				"description": "List of probable medical conditions",
			},
			"recommended_tests": map[string]any{
				"type":        "array",
				"items":       map[string]any{"type": "string"},
				"description": "Recommended diagnostic tests",
			},
			"rx": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"drug":      map[string]any{"type": "string"},
						"dosage":    map[string]any{"type": "string"},
						"frequency": map[string]any{"type": "string"},
						"duration":  map[string]any{"type": "string"},
						"notes":     map[string]any{"type": "string"},
					},
				},
			},
			"safety_flags": map[string]any{
				"type":        "string",
				"description": "Safety warnings or emergency flags",
			},
		},
		"required": []string{"probable_conditions", "rx", "safety_flags"},
	}
}
