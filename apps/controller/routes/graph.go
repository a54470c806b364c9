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

type GraphInput struct {
	Body struct {
		Prompt         string                  `json:"prompt,omitempty" doc:"Data to derive the knowledge graph from"`
		FileReferences []schemas.FileReference `json:"file_references,omitempty" doc:"Uploaded files to include"`
		Model          string                  `json:"model,omitempty" doc:"Override for the configured model"`
		APIKey         string                  `json:"api_key,omitempty" doc:"Override for the configured provider key"`
	}
}

func RegisterGraph(api huma.API, svcs *services.Container) {
	huma.Register(api, huma.Operation{
		OperationID: "submit-graph",
		Method:      http.MethodPost,
		Path:        "/api/graph",
		Summary:     "Submit a knowledge-graph extraction",
		Description: "Starts a background job deriving subject-predicate-object triplets from the data",
		Tags:        []string{TagExtraction.String()},
		Security:    BearerAuth,
	}, func(ctx context.Context, input *GraphInput) (*schemas.SubmissionResponse, error) {
		if !gate.Authenticated(ctx) {
			return nil, huma.Error401Unauthorized("authentication required")
		}
		if input.Body.Prompt == "" && len(input.Body.FileReferences) == 0 {
			return nil, huma.Error400BadRequest("prompt or file_references is required")
		}

		id, err := svcs.LLM.SubmitGraph(ctx, llm.SubmitRequest{
			Text:           input.Body.Prompt,
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
