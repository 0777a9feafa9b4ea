package interfaces

import (
	"EraRealms/internal/account/app"
	"EraRealms/internal/account/interfaces/handler"
	"EraRealms/modules/kit/logx"

	"github.com/gin-gonic/gin"
)

type Module struct {
	svc *app.UserService
	log logx.Logger
}

func New(svc *app.UserService, log logx.Logger) *Module {
	return &Module{svc: svc, log: log}
}

func (m *Module) Register(g *gin.RouterGroup) {
	handler.NewAccount(m.svc, m.log).RegisterRoutes(g)
}
