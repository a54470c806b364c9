package schemas

// FileReference points a submission at a previously uploaded file.
type FileReference struct {
	FileID    string `json:"openaiFileId" doc:"Provider file id from the upload endpoint"`
	InputType string `json:"inputType" enum:"input_file,input_image" doc:"How the file enters the prompt"`
}

// SubmissionResponse is the common response of the three submission
// endpoints: the id of the background job to poll.
type SubmissionResponse struct {
	Body struct {
		ResponseID string `json:"responseId" doc:"Background job id for polling"`
	}
}

type PollResponse struct {
	Body struct {
		Completed bool         `json:"completed" doc:"Whether the job has finished"`
		Output    []OutputItem `json:"output,omitempty" doc:"Output records of a completed job"`
	}
}

type OutputItem struct {
	Type    string          `json:"type,omitempty"`
	Role    string          `json:"role,omitempty"`
	Content []OutputContent `json:"content,omitempty"`
}

type OutputContent struct {
	Type string `json:"type,omitempty"`
	Text string `json:"text,omitempty"`
}

type UploadedFile struct {
	ID        string `json:"id" doc:"Upload record id"`
	FileID    string `json:"openaiFileId" doc:"Provider file id"`
	InputType string `json:"inputType" enum:"input_file,input_image" doc:"How the file enters the prompt"`
	Name      string `json:"name" doc:"Original file name"`
	Type      string `json:"type" doc:"MIME type"`
	Size      int64  `json:"size" doc:"Size in bytes"`
}

type UploadFilesResponse struct {
	Body struct {
		Files []UploadedFile `json:"files"`
	}
}
