package routes

import (
	"context"
	"fmt"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/mdexhq/mdex/apps/controller/services/gate"
)

type AuthOutput struct {
	SetCookie string `header:"Set-Cookie" doc:"Session token cookie"`
	Body      struct {
		Token string `json:"token" doc:"Signed session token"`
	}
}

type LoginInput struct {
	Secret string `query:"secret" doc:"Shared secret for the password wall"`
}

type LoginOutput struct {
	Body struct {
		OK bool `json:"ok" doc:"Whether the secret was accepted"`
	}
}

func RegisterAuth(api huma.API, svc *gate.Service) {
	huma.Register(api, huma.Operation{
		OperationID: "auth-token",
		Method:      http.MethodGet,
		Path:        "/api/auth",
		Summary:     "Issue a session token",
		Description: "Mints a short-lived signed token and sets it as a cookie",
		Tags:        []string{TagAuth.String()},
	}, func(ctx context.Context, input *struct{}) (*AuthOutput, error) {
		token, err := svc.IssueToken()
		if err != nil {
			return nil, huma.Error500InternalServerError(fmt.Sprintf("failed to issue token: %v", err))
		}

		cookie := http.Cookie{
			Name:     "token",
			Value:    token,
			Path:     "/",
			MaxAge:   int(svc.TokenTTL().Seconds()),
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		}

		resp := &AuthOutput{SetCookie: cookie.String()}
		resp.Body.Token = token
		return resp, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "auth-login",
		Method:      http.MethodPost,
		Path:        "/api/login",
		Summary:     "Check the password wall",
		Description: "Validates the shared secret. Controllers without a configured secret accept any value",
		Tags:        []string{TagAuth.String()},
	}, func(ctx context.Context, input *LoginInput) (*LoginOutput, error) {
		if !svc.CheckSecret(input.Secret) {
			return nil, huma.Error401Unauthorized("wrong secret")
		}
		resp := &LoginOutput{}
		resp.Body.OK = true
		return resp, nil
	})
}
