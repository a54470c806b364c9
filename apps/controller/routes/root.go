package routes

import (
	"github.com/danielgtaylor/huma/v2"
	"github.com/mdexhq/mdex/apps/controller/services"
)

func RegisterRoutes(api huma.API, svcs *services.Container) {
	RegisterIndex(api)
	RegisterHealth(api)
	RegisterAuth(api, svcs.Gate)
	RegisterEvaluate(api, svcs)
	RegisterGraph(api, svcs)
	RegisterExtract(api, svcs)
	RegisterPoll(api, svcs)
	RegisterModels(api, svcs)
	RegisterUploadFiles(api, svcs)
}
