package routes

import (
	"context"
	"fmt"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/mdexhq/mdex/apps/controller/schemas"
	"github.com/mdexhq/mdex/apps/controller/services"
	"github.com/mdexhq/mdex/apps/controller/services/gate"
)

type PollInput struct {
	Body struct {
		ResponseID string `json:"responseId" doc:"Background job id from a submission endpoint"`
	}
}

func RegisterPoll(api huma.API, svcs *services.Container) {
	huma.Register(api, huma.Operation{
		OperationID: "poll-response",
		Method:      http.MethodPost,
		Path:        "/api/poll",
		Summary:     "Check a background job",
		Description: "Returns the job's completion state and, once finished, its output records",
		Tags:        []string{TagExtraction.String()},
		Security:    BearerAuth,
	}, func(ctx context.Context, input *PollInput) (*schemas.PollResponse, error) {
		if !gate.Authenticated(ctx) {
			return nil, huma.Error401Unauthorized("authentication required")
		}
		if input.Body.ResponseID == "" {
			return nil, huma.Error400BadRequest("responseId is required")
		}

		status, err := svcs.LLM.Retrieve(ctx, input.Body.ResponseID)
		if err != nil {
			return nil, huma.Error500InternalServerError(fmt.Sprintf("poll failed: %v", err))
		}

		resp := &schemas.PollResponse{}
		resp.Body.Completed = status.Completed
		for _, item := range status.Output {
			out := schemas.OutputItem{Type: item.Type, Role: item.Role}
			for _, c := range item.Content {
				out.Content = append(out.Content, schemas.OutputContent{Type: c.Type, Text: c.Text})
			}
			resp.Body.Output = append(resp.Body.Output, out)
		}
		return resp, nil
	})
}
