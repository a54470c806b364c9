package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
)

// ClassifyMIME maps a MIME type onto the provider upload purpose and the
// content input type. PDFs become document inputs, images become vision
// inputs; everything else is rejected.
func ClassifyMIME(mimeType string) (purpose, inputType string, err error) {
	switch {
	case mimeType == "application/pdf":
		return "user_data", InputTypeFile, nil
	case strings.HasPrefix(mimeType, "image/"):
		return "vision", InputTypeImage, nil
	default:
		return "", "", fmt.Errorf("llm: unsupported file type: %s", mimeType)
	}
}

// UploadFile uploads a single file to the provider and returns its file id
// together with the input-type classification. There is no deletion path;
// provider-side retention handles cleanup.
func (c *Client) UploadFile(ctx context.Context, name, mimeType string, data io.Reader) (fileID, inputType string, err error) {
	purpose, inputType, err := ClassifyMIME(mimeType)
	if err != nil {
		return "", "", err
	}

	key, err := c.key("")
	if err != nil {
		return "", "", err
	}

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if err := mw.WriteField("purpose", purpose); err != nil {
		return "", "", err
	}
	part, err := mw.CreateFormFile("file", name)
	if err != nil {
		return "", "", err
	}
	if _, err := io.Copy(part, data); err != nil {
		return "", "", err
	}
	if err := mw.Close(); err != nil {
		return "", "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+"/files", &buf)
	if err != nil {
		return "", "", err
	}
	req.Header.Set("Authorization", "Bearer "+key)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := c.client.Do(req)
	if err != nil {
		return "", "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", "", err
	}
	if resp.StatusCode != http.StatusOK {
		return "", "", fmt.Errorf("llm: file upload failed (status %d): %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var uploaded struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(body, &uploaded); err != nil {
		return "", "", fmt.Errorf("llm: decoding upload response: %w", err)
	}
	if uploaded.ID == "" {
		return "", "", fmt.Errorf("llm: provider returned no file id")
	}

	return uploaded.ID, inputType, nil
}
