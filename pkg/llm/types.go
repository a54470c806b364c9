package llm

import "encoding/json"

// Input type tags used by the Responses API for user content blocks.
const (
	InputTypeText  = "input_text"
	InputTypeFile  = "input_file"
	InputTypeImage = "input_image"
)

// FileReference pairs a provider-assigned file id with its input-type tag.
// References are created by UploadFile and consumed by job submissions;
// they are immutable once created.
type FileReference struct {
	FileID    string `json:"openaiFileId"`
	InputType string `json:"inputType"`
}

// UploadedFile describes one uploaded file: the caller-facing id, the
// provider file id, the input-type classification, and original metadata.
type UploadedFile struct {
	ID        string `json:"id"`
	FileID    string `json:"openaiFileId"`
	InputType string `json:"inputType"`
	Name      string `json:"name"`
	Type      string `json:"type"`
	Size      int64  `json:"size"`
}

// Status is the distilled status of a background response. Output is only
// populated once Completed is true.
type Status struct {
	Completed bool         `json:"completed"`
	Output    []OutputItem `json:"output,omitempty"`
}

// OutputItem is one message-like record of a completed response.
type OutputItem struct {
	Type    string          `json:"type,omitempty"`
	Role    string          `json:"role,omitempty"`
	Content []OutputContent `json:"content,omitempty"`
}

// OutputContent is one content element of an output record.
type OutputContent struct {
	Type string `json:"type,omitempty"`
	Text string `json:"text,omitempty"`
}

// submission is the wire body of a background response creation.
type submission struct {
	Model        string             `json:"model"`
	Input        []inputItem        `json:"input"`
	Instructions string             `json:"instructions,omitempty"`
	Tools        []tool             `json:"tools"`
	Temperature  *float64           `json:"temperature,omitempty"`
	Background   bool               `json:"background"`
	Text         *textFormatWrapper `json:"text,omitempty"`
}

type inputItem struct {
	Role    string         `json:"role"`
	Content []contentBlock `json:"content"`
}

type contentBlock struct {
	Type   string `json:"type"`
	Text   string `json:"text,omitempty"`
	FileID string `json:"file_id,omitempty"`
	Detail string `json:"detail,omitempty"`
}

type tool struct {
	Type string `json:"type"`
}

type textFormatWrapper struct {
	Format responseFormat `json:"format"`
}

type responseFormat struct {
	Name   string          `json:"name"`
	Strict bool            `json:"strict"`
	Type   string          `json:"type"`
	Schema json.RawMessage `json:"schema"`
}

// assembleContent builds the ordered user content: file and image blocks
// first, then the text block.
func assembleContent(text string, refs []FileReference) []contentBlock {
	content := make([]contentBlock, 0, len(refs)+1)
	for _, ref := range refs {
		block := contentBlock{Type: ref.InputType, FileID: ref.FileID}
		if ref.InputType == InputTypeImage {
			block.Detail = "auto"
		}
		content = append(content, block)
	}
	return append(content, contentBlock{Type: InputTypeText, Text: text})
}
