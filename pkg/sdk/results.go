package sdk

import (
	"encoding/json"
	"strings"

	"github.com/mdexhq/mdex/pkg/sdk/sdkerr"
)

// Evaluation is the parsed result of a schema-fit evaluation: the verdict
// plus the model's prose report with the verdict markers stripped.
type Evaluation struct {
	Fits   bool   `json:"fits"`
	Report string `json:"report"`
}

// ParseEvaluation reads the verdict markers out of an evaluation report.
// A <FIT> marker anywhere in the text means the data fits the schema; a
// report with no marker is treated as not fitting.
func ParseEvaluation(text string) Evaluation {
	fits := strings.Contains(text, "<FIT>")
	report := strings.ReplaceAll(text, "<FIT>", "")
	report = strings.ReplaceAll(report, "<UNFIT>", "")
	return Evaluation{
		Fits:   fits,
		Report: strings.TrimSpace(report),
	}
}

// Triplet is one subject-predicate-object edge of a knowledge graph.
type Triplet struct {
	Subject   string `json:"subject"`
	Predicate string `json:"predicate"`
	Object    string `json:"object"`
}

// KnowledgeGraph is the parsed triplet list of a graph extraction.
type KnowledgeGraph struct {
	Triplets []Triplet `json:"triplets"`
}

// ParseKnowledgeGraph decodes a completed graph job's JSON output.
func ParseKnowledgeGraph(raw json.RawMessage) (*KnowledgeGraph, error) {
	var graph KnowledgeGraph
	if err := json.Unmarshal(raw, &graph); err != nil {
		return nil, sdkerr.New(sdkerr.CodeBadPayload, err)
	}
	return &graph, nil
}
