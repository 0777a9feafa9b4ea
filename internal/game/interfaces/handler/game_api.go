package handler

import (
	"context"
	nethttp "net/http"
	"strconv"
	"time"

	"EraRealms/internal/empire/infra/persistence/model"
	"EraRealms/internal/shared/actor/messages"
	"EraRealms/internal/shared/transport"
	"EraRealms/modules/kit/logx"

	"github.com/asynkron/protoactor-go/actor"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// askTimeout 盖过对局内一次最重的结算（整轮机器人行动）。
const askTimeout = 8 * time.Second

// LeaderboardStore 查对局榜单，走归档库，不经过 actor。
type LeaderboardStore interface {
	TopByNetworth(ctx context.Context, gameId int64, round, limit int) ([]model.RoundArchive, error)
}

// GameAPI 把 HTTP 请求投进对局 actor 系统：一条路由对应一种消息，
// 结算结果由 actor 回包，这里只做绑定和转码。
type GameAPI struct {
	root    *actor.RootContext
	manager *actor.PID
	board   LeaderboardStore
	log     logx.Logger
}

func NewGameAPI(root *actor.RootContext, manager *actor.PID, board LeaderboardStore, log logx.Logger) *GameAPI {
	return &GameAPI{
		root:    root,
		manager: manager,
		board:   board,
		log:     log,
	}
}

func (a *GameAPI) RegisterRoutes(g *gin.RouterGroup) {
	gg := g.Group("/game")
	gg.POST("/join", ask[messages.GJoinGame](a))
	gg.POST("/status", ask[messages.GGameStatus](a))
	gg.POST("/empire", ask[messages.GEmpireStatus](a))
	gg.POST("/prices", ask[messages.GPrices](a))
	gg.POST("/action", ask[messages.GApplyAction](a))
	gg.POST("/market", ask[messages.GTransactMarket](a))
	gg.POST("/bank", ask[messages.GTransactBank](a))
	gg.POST("/spell", ask[messages.GCastSpell](a))
	gg.POST("/attack", ask[messages.GAttack](a))
	gg.POST("/draftAdvisor", ask[messages.GDraftAdvisor](a))
	gg.POST("/dismissAdvisor", ask[messages.GDismissAdvisor](a))
	gg.POST("/mastery", ask[messages.GRaiseMastery](a))
	gg.POST("/policy", ask[messages.GAdoptPolicy](a))
	gg.POST("/endPhase", ask[messages.GEndPhase](a))
	gg.GET("/leaderboard", a.leaderboard)
}

// leaderboard 读的是收盘归档，不含当期未结算的变动。
func (a *GameAPI) leaderboard(c *gin.Context) {
	gameId, _ := strconv.ParseInt(c.Query("game_id"), 10, 64)
	round, _ := strconv.Atoi(c.Query("round"))
	if gameId <= 0 || round <= 0 {
		respond(c, transport.InvalidParam, "缺少对局号或回合数", nil)
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if limit <= 0 || limit > 100 {
		limit = 10
	}

	rows, err := a.board.TopByNetworth(c.Request.Context(), gameId, round, limit)
	if err != nil {
		a.log.Error("leaderboard query failed", zap.Int64("game_id", gameId), zap.Error(err))
		respond(c, transport.SystemError, "榜单查询失败", nil)
		return
	}
	respond(c, transport.OK, "", rows)
}

// ask 生成一条路由的处理函数：绑定进 T，RequestFuture 给 manager，
// manager 按 game_id 把消息转给对局 actor。
func ask[T any](a *GameAPI) gin.HandlerFunc {
	return func(c *gin.Context) {
		var msg T
		if err := c.ShouldBindJSON(&msg); err != nil {
			respond(c, transport.InvalidParam, "请求参数错误", nil)
			return
		}
		gm, ok := any(&msg).(messages.GameMessage)
		if !ok || gm.GameID() <= 0 {
			respond(c, transport.InvalidParam, "缺少对局号", nil)
			return
		}

		result, err := a.root.RequestFuture(a.manager, &msg, askTimeout).Result()
		if err != nil {
			a.log.Error("game actor ask failed",
				zap.String("path", c.FullPath()),
				zap.Int64("game_id", gm.GameID()),
				zap.Error(err),
			)
			respond(c, transport.UpstreamTimeout, "对局繁忙，请稍后重试", nil)
			return
		}

		reply, ok := result.(*messages.GameReply)
		if !ok {
			a.log.Error("game actor bad reply",
				zap.String("path", c.FullPath()),
				zap.Int64("game_id", gm.GameID()),
			)
			respond(c, transport.SystemError, "对局回包异常", nil)
			return
		}
		respond(c, reply.Code, reply.Message, reply.Payload)
	}
}

func respond(c *gin.Context, code int, msg string, data any) {
	c.JSON(nethttp.StatusOK, gin.H{
		"code":    code,
		"message": msg,
		"data":    data,
	})
}
