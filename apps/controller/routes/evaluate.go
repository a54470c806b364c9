package routes

import (
	"context"
	"fmt"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/mdexhq/mdex/apps/controller/schemas"
	"github.com/mdexhq/mdex/apps/controller/services"
	"github.com/mdexhq/mdex/apps/controller/services/gate"
	"github.com/mdexhq/mdex/pkg/llm"
)

type EvaluateInput struct {
	Body struct {
		Text           string                  `json:"text,omitempty" doc:"Data to evaluate against the schema"`
		Schema         string                  `json:"schema" doc:"JSON schema describing the target shape"`
		SystemPrompt   string                  `json:"system_prompt,omitempty" doc:"Override for the default evaluation prompt"`
		FileReferences []schemas.FileReference `json:"file_references,omitempty" doc:"Uploaded files to include"`
		Model          string                  `json:"model,omitempty" doc:"Override for the configured model"`
		APIKey         string                  `json:"api_key,omitempty" doc:"Override for the configured provider key"`
	}
}

func RegisterEvaluate(api huma.API, svcs *services.Container) {
	huma.Register(api, huma.Operation{
		OperationID: "submit-evaluation",
		Method:      http.MethodPost,
		Path:        "/api/evaluate",
		Summary:     "Submit a schema-fit evaluation",
		Description: "Starts a background job judging whether the data fits the schema",
		Tags:        []string{TagExtraction.String()},
		Security:    BearerAuth,
	}, func(ctx context.Context, input *EvaluateInput) (*schemas.SubmissionResponse, error) {
		if !gate.Authenticated(ctx) {
			return nil, huma.Error401Unauthorized("authentication required")
		}
		if input.Body.Text == "" && len(input.Body.FileReferences) == 0 {
			return nil, huma.Error400BadRequest("text or file_references is required")
		}
		if input.Body.Schema == "" {
			return nil, huma.Error400BadRequest("schema is required")
		}

		id, err := svcs.LLM.SubmitEvaluation(ctx, llm.SubmitRequest{
			Text:           input.Body.Text,
			Schema:         input.Body.Schema,
			SystemPrompt:   input.Body.SystemPrompt,
			FileReferences: toLLMReferences(input.Body.FileReferences),
			Model:          input.Body.Model,
			APIKey:         input.Body.APIKey,
		})
		if err != nil {
			return nil, huma.Error500InternalServerError(fmt.Sprintf("submission failed: %v", err))
		}

		resp := &schemas.SubmissionResponse{}
		resp.Body.ResponseID = id
		return resp, nil
	})
}

func toLLMReferences(refs []schemas.FileReference) []llm.FileReference {
	if len(refs) == 0 {
		return nil
	}
	out := make([]llm.FileReference, len(refs))
	for i, r := range refs {
		out[i] = llm.FileReference{FileID: r.FileID, InputType: r.InputType}
	}
	return out
}
