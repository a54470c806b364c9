package routes

import (
	"context"
	"fmt"
	"mime"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"sort"

	"github.com/danielgtaylor/huma/v2"
	"github.com/google/uuid"
	"github.com/mdexhq/mdex/apps/controller/schemas"
	"github.com/mdexhq/mdex/apps/controller/services"
	"github.com/mdexhq/mdex/apps/controller/services/gate"
	"github.com/mdexhq/mdex/pkg/llm"
)

type UploadFilesInput struct {
	RawBody multipart.Form
}

func RegisterUploadFiles(api huma.API, svcs *services.Container) {
	huma.Register(api, huma.Operation{
		OperationID: "upload-files",
		Method:      http.MethodPost,
		Path:        "/api/upload-files",
		Summary:     "Upload attachment files",
		Description: "Forwards PDF and image attachments to the provider and returns their references",
		Tags:        []string{TagFiles.String()},
		Security:    BearerAuth,
	}, func(ctx context.Context, input *UploadFilesInput) (*schemas.UploadFilesResponse, error) {
		if !gate.Authenticated(ctx) {
			return nil, huma.Error401Unauthorized("authentication required")
		}
		if len(input.RawBody.File) == 0 {
			return nil, huma.Error400BadRequest("no files in request")
		}

		// Parts arrive as file_0, file_1, …; keep submission order stable.
		fields := make([]string, 0, len(input.RawBody.File))
		for field := range input.RawBody.File {
			fields = append(fields, field)
		}
		sort.Strings(fields)

		resp := &schemas.UploadFilesResponse{}
		for _, field := range fields {
			for _, header := range input.RawBody.File[field] {
				uploaded, err := uploadOne(ctx, svcs, header)
				if err != nil {
					return nil, err
				}
				resp.Body.Files = append(resp.Body.Files, *uploaded)
			}
		}
		return resp, nil
	})
}

func uploadOne(ctx context.Context, svcs *services.Container, header *multipart.FileHeader) (*schemas.UploadedFile, error) {
	f, err := header.Open()
	if err != nil {
		return nil, huma.Error400BadRequest(fmt.Sprintf("opening %s: %v", header.Filename, err))
	}
	defer f.Close()

	mimeType := header.Header.Get("Content-Type")
	if mimeType == "" || mimeType == "application/octet-stream" {
		if byExt := mime.TypeByExtension(filepath.Ext(header.Filename)); byExt != "" {
			mimeType = byExt
		}
	}
	if _, _, err := llm.ClassifyMIME(mimeType); err != nil {
		return nil, huma.Error400BadRequest(fmt.Sprintf("%s: %v", header.Filename, err))
	}

	fileID, inputType, err := svcs.LLM.UploadFile(ctx, header.Filename, mimeType, f)
	if err != nil {
		return nil, huma.Error500InternalServerError(fmt.Sprintf("uploading %s: %v", header.Filename, err))
	}

	return &schemas.UploadedFile{
		ID:        uuid.New().String(),
		FileID:    fileID,
		InputType: inputType,
		Name:      header.Filename,
		Type:      mimeType,
		Size:      header.Size,
	}, nil
}
