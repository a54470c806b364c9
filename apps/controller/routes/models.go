package routes

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/mdexhq/mdex/apps/controller/services"
	"github.com/mdexhq/mdex/apps/controller/services/gate"
)

type ModelsOutput struct {
	Body json.RawMessage `doc:"Provider model list, passed through unmodified"`
}

func RegisterModels(api huma.API, svcs *services.Container) {
	huma.Register(api, huma.Operation{
		OperationID: "list-models",
		Method:      http.MethodPost,
		Path:        "/api/models",
		Summary:     "List provider models",
		Description: "Passes through the provider's model list",
		Tags:        []string{TagExtraction.String()},
		Security:    BearerAuth,
	}, func(ctx context.Context, input *struct{}) (*ModelsOutput, error) {
		if !gate.Authenticated(ctx) {
			return nil, huma.Error401Unauthorized("authentication required")
		}

		raw, err := svcs.LLM.ListModels(ctx)
		if err != nil {
			return nil, huma.Error500InternalServerError(fmt.Sprintf("listing models failed: %v", err))
		}
		return &ModelsOutput{Body: raw}, nil
	})
}
