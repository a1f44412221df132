package ai

import (
	"context"
	"encoding/json"
	"fmt"

	"agritrace/internal/core"

	"github.com/invopop/jsonschema"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/packages/param"
	"github.com/openai/openai-go/responses"
	"github.com/openai/openai-go/shared"
	"github.com/openai/openai-go/shared/constant"
)

// GradeRequest is the input to the crop grading collaborator. PhotoDataURI is
// a data: URI (jpeg/png/webp) captured by the farmer.
type GradeRequest struct {
	CropName     string
	FarmerName   string
	Location     string
	PhotoDataURI string
}

// ConflictRequest is the input to the transport conflict-detection
// collaborator. LotJSON is the existing lot record, serialized.
type ConflictRequest struct {
	LotJSON        string
	VehicleNumber  string
	Condition      core.TransportCondition
	WarehouseEntry string
}

// AgentService is the AI collaborator surface the application layer depends
// on. Failures propagate unmodified; callers surface them to the user and do
// not retry.
type AgentService interface {
	GradeCrop(ctx context.Context, req GradeRequest) (*core.GradeReport, error)
	DetectTransportConflict(ctx context.Context, req ConflictRequest) (*core.ConflictReport, error)
}

type Agent struct {
	client *openai.Client
}

func NewAgent(apiKey string) *Agent {
	client := openai.NewClient(option.WithAPIKey(apiKey))
	return &Agent{client: &client}
}

// GradeCrop sends the crop photo plus context to the vision model and parses
// a strict-schema GradeReport from the structured output.
func (a *Agent) GradeCrop(ctx context.Context, req GradeRequest) (*core.GradeReport, error) {
	prompt := fmt.Sprintf(`You are an agricultural quality inspector.
Assess the harvested crop in the attached photo and produce a quality certificate.
Rules:
1. Estimate moisture and impurities as percentage strings.
2. Describe size and color in a short phrase each.
3. The overall grade MUST be exactly one of: Premium, Standard, Basic.

Crop: %s
Farmer: %s
Location: %s`, req.CropName, req.FarmerName, req.Location)

	schemaMap, err := schemaFor(core.GradeReport{})
	if err != nil {
		return nil, err
	}

	params := responses.ResponseNewParams{
		Model: shared.ResponsesModel(shared.ChatModelGPT4o),
		Input: responses.ResponseNewParamsInputUnion{
			OfInputItemList: responses.ResponseInputParam{
				responses.ResponseInputItemUnionParam{
					OfMessage: &responses.EasyInputMessageParam{
						Role: responses.EasyInputMessageRoleUser,
						Content: responses.EasyInputMessageContentUnionParam{
							OfInputItemContentList: responses.ResponseInputMessageContentListParam{
								responses.ResponseInputContentUnionParam{
									OfInputText: &responses.ResponseInputTextParam{Text: prompt},
								},
								responses.ResponseInputContentUnionParam{
									OfInputImage: &responses.ResponseInputImageParam{
										ImageURL: param.NewOpt(req.PhotoDataURI),
										Detail:   responses.ResponseInputImageDetailAuto,
									},
								},
							},
						},
					},
				},
			},
		},
		Text: responses.ResponseTextConfigParam{
			Format: responses.ResponseFormatTextConfigUnionParam{
				OfJSONSchema: &responses.ResponseFormatTextJSONSchemaConfigParam{
					Type:        constant.JSONSchema("json_schema"),
					Name:        "crop_grade_report",
					Strict:      param.NewOpt(true),
					Schema:      schemaMap,
					Description: param.NewOpt("A quality grading certificate for a harvested crop lot"),
				},
			},
		},
	}

	resp, err := a.client.Responses.New(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("openai responses error: %w", err)
	}

	content := resp.OutputText()
	if content == "" {
		return nil, fmt.Errorf("empty response content")
	}

	var report core.GradeReport
	if err := json.Unmarshal([]byte(content), &report); err != nil {
		return nil, fmt.Errorf("failed to parse grade report: %w", err)
	}

	report.Normalize()
	if err := report.Validate(); err != nil {
		return nil, fmt.Errorf("grade report validation failed: %w", err)
	}
	return &report, nil
}

// DetectTransportConflict asks the model whether the proposed transport
// record contradicts the lot's existing details (crop type vs. storage
// condition, impossible timing, and the like).
func (a *Agent) DetectTransportConflict(ctx context.Context, req ConflictRequest) (*core.ConflictReport, error) {
	prompt := fmt.Sprintf(`You are a supply-chain auditor.
Given an existing crop lot record and a proposed transport event, decide whether
the event contradicts the record. Examples of conflicts: a perishable crop moved
under Normal condition when Cold Storage is required, a warehouse entry before
the harvest date, or a vehicle number that already appears in the lot's history
with overlapping timing.
If there is no contradiction, report conflict_detected = false and leave the
other fields empty.

Existing lot record:
%s

Proposed transport event:
- Vehicle number: %s
- Transport condition: %s
- Warehouse entry: %s`, req.LotJSON, req.VehicleNumber, req.Condition, req.WarehouseEntry)

	schemaMap, err := schemaFor(core.ConflictReport{})
	if err != nil {
		return nil, err
	}

	params := responses.ResponseNewParams{
		Model: shared.ResponsesModel(shared.ChatModelGPT4o),
		Input: responses.ResponseNewParamsInputUnion{
			OfString: param.NewOpt(prompt),
		},
		Text: responses.ResponseTextConfigParam{
			Format: responses.ResponseFormatTextConfigUnionParam{
				OfJSONSchema: &responses.ResponseFormatTextJSONSchemaConfigParam{
					Type:        constant.JSONSchema("json_schema"),
					Name:        "transport_conflict_report",
					Strict:      param.NewOpt(true),
					Schema:      schemaMap,
					Description: param.NewOpt("Conflict analysis for a proposed transport event"),
				},
			},
		},
	}

	resp, err := a.client.Responses.New(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("openai responses error: %w", err)
	}

	content := resp.OutputText()
	if content == "" {
		return nil, fmt.Errorf("empty response content")
	}

	var report core.ConflictReport
	if err := json.Unmarshal([]byte(content), &report); err != nil {
		return nil, fmt.Errorf("failed to parse conflict report: %w", err)
	}
	return &report, nil
}

// schemaFor reflects a strict JSON schema from the given struct, as a plain
// map for the Responses API payload.
func schemaFor(v any) (map[string]any, error) {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
	}
	schemaJSON, err := json.Marshal(reflector.Reflect(v))
	if err != nil {
		return nil, fmt.Errorf("failed to marshal schema: %w", err)
	}
	var schemaMap map[string]any
	if err := json.Unmarshal(schemaJSON, &schemaMap); err != nil {
		return nil, fmt.Errorf("failed to unmarshal schema to map: %w", err)
	}
	return schemaMap, nil
}
