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

type ExtractInput struct {
	Body struct {
		Text            string                  `json:"text,omitempty" doc:"Data to extract from"`
		Schema          string                  `json:"schema" doc:"JSON schema the output must conform to"`
		MultipleOutputs bool                    `json:"multiple_outputs,omitempty" doc:"Extract every matching instance instead of one"`
		SystemPrompt    string                  `json:"system_prompt,omitempty" doc:"Override for the default extraction prompt"`
		FileReferences  []schemas.FileReference `json:"file_references,omitempty" doc:"Uploaded files to include"`
		Model           string                  `json:"model,omitempty" doc:"Override for the configured model"`
		APIKey          string                  `json:"api_key,omitempty" doc:"Override for the configured provider key"`
	}
}

func RegisterExtract(api huma.API, svcs *services.Container) {
	huma.Register(api, huma.Operation{
		OperationID: "submit-extraction",
		Method:      http.MethodPost,
		Path:        "/api/extract",
		Summary:     "Submit a structured extraction",
		Description: "Starts a background job extracting schema-conformant JSON from the data",
		Tags:        []string{TagExtraction.String()},
		Security:    BearerAuth,
	}, func(ctx context.Context, input *ExtractInput) (*schemas.SubmissionResponse, error) {
		if !gate.Authenticated(ctx) {
			return nil, huma.Error401Unauthorized("authentication required")
		}
		if input.Body.Text == "" && len(input.Body.FileReferences) == 0 {
			return nil, huma.Error400BadRequest("text or file_references is required")
		}
		if input.Body.Schema == "" {
			return nil, huma.Error400BadRequest("schema is required")
		}

		id, err := svcs.LLM.SubmitExtraction(ctx, llm.SubmitRequest{
			Text:            input.Body.Text,
			Schema:          input.Body.Schema,
			MultipleOutputs: input.Body.MultipleOutputs,
			SystemPrompt:    input.Body.SystemPrompt,
			FileReferences:  toLLMReferences(input.Body.FileReferences),
			Model:           input.Body.Model,
			APIKey:          input.Body.APIKey,
		})
		if err != nil {
			return nil, huma.Error500InternalServerError(fmt.Sprintf("submission failed: %v", err))
		}

		resp := &schemas.SubmissionResponse{}
		resp.Body.ResponseID = id
		return resp, nil
	})
}
