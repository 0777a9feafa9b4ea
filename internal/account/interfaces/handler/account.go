package handler

import (
	"context"
	nethttp "net/http"
	"strings"

	"EraRealms/internal/account/app"
	"EraRealms/internal/account/dto"
	"EraRealms/internal/shared/security"
	"EraRealms/internal/shared/transport"
	"EraRealms/modules/kit/logx"
	"EraRealms/modules/kit/tracex"

	"github.com/gin-gonic/gin"
)

type Account struct {
	userService *app.UserService
	log         logx.Logger
}

func NewAccount(svc *app.UserService, log logx.Logger) *Account {
	return &Account{
		userService: svc,
		log:         log,
	}
}

func (a *Account) RegisterRoutes(g *gin.RouterGroup) {
	ag := g.Group("/account")
	ag.POST("/login", a.login)
	ag.POST("/register", a.register)
	ag.GET("/profile", a.auth, a.profile)
	ag.POST("/profile", a.auth, a.saveProfile)
	ag.POST("/bindgame", a.auth, a.bindGame)
}

func (a *Account) login(c *gin.Context) {
	ctx := tracex.WithSpanID(c.Request.Context(), "account")

	var req dto.LoginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		respond(c, transport.InvalidParam, "请求参数错误", nil)
		return
	}
	if req.Ip == "" {
		req.Ip = c.ClientIP()
	}

	resp, err := a.userService.Login(ctx, req)
	if err != nil {
		a.reject(c, ctx, "account login", err)
		return
	}
	respond(c, transport.OK, "", resp)
}

func (a *Account) register(c *gin.Context) {
	ctx := tracex.WithSpanID(c.Request.Context(), "account")

	var req dto.RegisterReq
	if err := c.ShouldBindJSON(&req); err != nil {
		respond(c, transport.InvalidParam, "请求参数错误", nil)
		return
	}

	if err := a.userService.Register(ctx, req); err != nil {
		a.reject(c, ctx, "account register", err)
		return
	}
	respond(c, transport.OK, "", nil)
}

func (a *Account) profile(c *gin.Context) {
	ctx := tracex.WithSpanID(c.Request.Context(), "account")

	resp, err := a.userService.Profile(ctx, c.GetInt(ctxUid))
	if err != nil {
		a.reject(c, ctx, "account profile", err)
		return
	}
	respond(c, transport.OK, "", resp)
}

func (a *Account) saveProfile(c *gin.Context) {
	ctx := tracex.WithSpanID(c.Request.Context(), "account")

	var req dto.ProfileReq
	if err := c.ShouldBindJSON(&req); err != nil {
		respond(c, transport.InvalidParam, "请求参数错误", nil)
		return
	}

	if err := a.userService.SaveProfile(ctx, c.GetInt(ctxUid), req); err != nil {
		a.reject(c, ctx, "account save profile", err)
		return
	}
	respond(c, transport.OK, "", nil)
}

// bindGame 由 gate 在玩家入场成功后调用，把对局和帝国回写进档案。
func (a *Account) bindGame(c *gin.Context) {
	ctx := tracex.WithSpanID(c.Request.Context(), "account")

	var req dto.BindGameReq
	if err := c.ShouldBindJSON(&req); err != nil || req.GameId <= 0 || req.EmpireId <= 0 {
		respond(c, transport.InvalidParam, "请求参数错误", nil)
		return
	}

	if err := a.userService.BindGame(ctx, c.GetInt(ctxUid), req.GameId, req.EmpireId); err != nil {
		a.reject(c, ctx, "account bind game", err)
		return
	}
	respond(c, transport.OK, "", nil)
}

const ctxUid = "uid"

// auth 校验 Bearer token，通过后把 uid 放进请求上下文。
func (a *Account) auth(c *gin.Context) {
	token := strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer ")
	if token == "" {
		respond(c, transport.InvalidParam, "缺少凭证", nil)
		c.Abort()
		return
	}
	_, claims, err := security.ParseToken(token)
	if err != nil {
		respond(c, transport.PwdIncorrect, "凭证无效", nil)
		c.Abort()
		return
	}
	c.Set(ctxUid, claims.Uid)
	c.Next()
}

// reject 业务拒绝打 INFO，技术错误打 ERROR 带栈，每个请求只打一次。
func (a *Account) reject(c *gin.Context, ctx context.Context, action string, err error) {
	code, msg := toBizCode(err)
	if code >= transport.SystemError {
		logx.ReportSysErrorWithLoggerContext(ctx, a.log, logx.NewSysLog(action, err))
	} else {
		logx.ReportBizWithLoggerContext(ctx, a.log, logx.NewBizLog(action, "", msg))
	}
	respond(c, code, msg, nil)
}

func respond(c *gin.Context, code int, msg string, data any) {
	c.JSON(nethttp.StatusOK, gin.H{
		"code":    code,
		"message": msg,
		"data":    data,
	})
}
