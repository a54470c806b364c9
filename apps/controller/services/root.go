package services

import (
	"github.com/mdexhq/mdex/apps/controller/services/gate"
	"github.com/mdexhq/mdex/pkg/llm"
)

type Container struct {
	Gate *gate.Service
	LLM  *llm.Client
}
