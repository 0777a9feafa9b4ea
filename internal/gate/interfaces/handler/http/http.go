package http

import (
	"EraRealms/internal/gate/app/model"
	"EraRealms/internal/gate/interfaces/handler"
	"EraRealms/internal/shared/transport"
	"context"
	nethttp "net/http"

	"github.com/gin-gonic/gin"
)

// HttpHandler 给不走 ws 的客户端（运维脚本、网页端）开的账号入口，
// 协议与 login 服务一致，gate 只做转发。
type HttpHandler struct {
	gate *handler.Gate
}

func NewHttpHandler(g *handler.Gate) *HttpHandler {
	return &HttpHandler{gate: g}
}

func (h *HttpHandler) RegisterRoutes(group *gin.RouterGroup) {
	accountGroup := group.Group("/account")
	accountGroup.POST("/register", h.Register)
	accountGroup.POST("/login", h.Login)
}

func (h *HttpHandler) Register(c *gin.Context) {
	ctx := c.Request.Context()

	var req model.RegisterReq
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, transport.InvalidParam, "参数有误")
		return
	}

	if err := h.gate.GateService.Register(ctx, req); err != nil {
		h.error(ctx, c, err)
		return
	}
	h.ok(c, nil)
}

func (h *HttpHandler) Login(c *gin.Context) {
	ctx := c.Request.Context()

	var req model.LoginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, transport.InvalidParam, "参数有误")
		return
	}
	if req.Ip == "" {
		req.Ip = c.ClientIP()
	}

	resp, err := h.gate.GateService.Login(ctx, req)
	if err != nil {
		h.error(ctx, c, err)
		return
	}
	h.ok(c, resp)
}

func (h *HttpHandler) ok(c *gin.Context, data any) {
	c.JSON(nethttp.StatusOK, gin.H{
		"code":    transport.OK,
		"message": "",
		"data":    data,
	})
}

func (h *HttpHandler) fail(c *gin.Context, code int, msg string) {
	c.JSON(nethttp.StatusOK, gin.H{
		"code":    code,
		"message": msg,
	})
}

func (h *HttpHandler) error(ctx context.Context, c *gin.Context, err error) {
	code, msg := handler.HandleError(ctx, err)
	h.fail(c, code, msg)
}
