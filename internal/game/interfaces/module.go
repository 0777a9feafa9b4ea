package interfaces

import (
	"EraRealms/internal/game/interfaces/handler"
	transporthttp "EraRealms/internal/shared/transport/http"
	"EraRealms/modules/kit/logx"

	"github.com/asynkron/protoactor-go/actor"
	"github.com/gin-gonic/gin"
)

type Module struct {
	api *handler.GameAPI
}

func New(root *actor.RootContext, manager *actor.PID, board handler.LeaderboardStore, log logx.Logger) *Module {
	return &Module{api: handler.NewGameAPI(root, manager, board, log)}
}

func (m *Module) HttpRegister(g *gin.RouterGroup) {
	m.api.RegisterRoutes(g)
}

var _ transporthttp.Registrar = (*Module)(nil)
