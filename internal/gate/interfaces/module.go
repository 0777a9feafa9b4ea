package interfaces

import (
	"EraRealms/internal/gate/app"
	"EraRealms/internal/gate/interfaces/handler"
	gatehttp "EraRealms/internal/gate/interfaces/handler/http"
	gatews "EraRealms/internal/gate/interfaces/handler/ws"
	"EraRealms/internal/shared/session"
	transporthttp "EraRealms/internal/shared/transport/http"
	"EraRealms/internal/shared/transport/ws"
	"EraRealms/modules/kit/logx"

	"github.com/gin-gonic/gin"
)

type Module struct {
	wsHandler   *gatews.WsHandler
	httpHandler *gatehttp.HttpHandler
}

func New(s session.Manager, account app.AccountClient, game app.GameClient, log logx.Logger) *Module {
	gate := handler.NewGate(s, app.NewGateService(account, game), log)
	return &Module{
		wsHandler:   gatews.NewWsHandler(gate),
		httpHandler: gatehttp.NewHttpHandler(gate),
	}
}

func (m *Module) WsRegister(r *ws.Router) {
	m.wsHandler.RegisterRoutes(r)
}

func (m *Module) HttpRegister(g *gin.RouterGroup) {
	m.httpHandler.RegisterRoutes(g)
}

var _ ws.Registrar = (*Module)(nil)
var _ transporthttp.Registrar = (*Module)(nil)
