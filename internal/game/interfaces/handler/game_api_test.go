package handler

import (
	"context"
	"encoding/json"
	nethttp "net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"EraRealms/internal/empire/infra/persistence/model"
	"EraRealms/internal/shared/actor/messages"
	"EraRealms/internal/shared/transport"
	"EraRealms/modules/kit/logx"

	protoactor "github.com/asynkron/protoactor-go/actor"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// echoActor 按消息类型回固定回包，校验路由到消息的绑定是否正确。
type echoActor struct{}

func (a *echoActor) Receive(ctx protoactor.Context) {
	switch msg := ctx.Message().(type) {
	case *messages.GGameStatus:
		ctx.Respond(&messages.GameReply{Code: transport.OK, Payload: messages.GameStatus{
			GameId: msg.GameId,
			Round:  2,
			Phase:  "player",
		}})
	case *messages.GApplyAction:
		if msg.Action == "farm" && msg.Turns == 2 && msg.EmpireId == 9 {
			ctx.Respond(&messages.GameReply{Code: transport.OK})
			return
		}
		ctx.Respond(&messages.GameReply{Code: transport.InvalidParam, Message: "绑定字段不符"})
	case messages.GameMessage:
		ctx.Respond(&messages.GameReply{Code: transport.RuleRejected, Message: "拒绝"})
	}
}

type fakeBoard struct {
	rows []model.RoundArchive
}

func (f *fakeBoard) TopByNetworth(ctx context.Context, gameId int64, round, limit int) ([]model.RoundArchive, error) {
	return f.rows, nil
}

func newTestAPI(t *testing.T, board LeaderboardStore) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	system := protoactor.NewActorSystem()
	pid := system.Root.Spawn(protoactor.PropsFromProducer(func() protoactor.Actor {
		return &echoActor{}
	}))
	t.Cleanup(system.Shutdown)

	engine := gin.New()
	NewGameAPI(system.Root, pid, board, logx.NewZapLogger(zap.NewNop())).RegisterRoutes(engine.Group(""))
	return engine
}

func do(t *testing.T, engine *gin.Engine, method, path, body string) (int, json.RawMessage, string) {
	t.Helper()
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	engine.ServeHTTP(w, req)
	if w.Code != nethttp.StatusOK {
		t.Fatalf("http status=%d", w.Code)
	}

	var env struct {
		Code    int             `json:"code"`
		Message string          `json:"message"`
		Data    json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode envelope failed: %v", err)
	}
	return env.Code, env.Data, env.Message
}

func Test对局状态_经actor问答(t *testing.T) {
	engine := newTestAPI(t, &fakeBoard{})

	code, data, _ := do(t, engine, nethttp.MethodPost, "/game/status", `{"game_id":3}`)
	if code != transport.OK {
		t.Fatalf("期望成功: code=%d", code)
	}
	var status messages.GameStatus
	if err := json.Unmarshal(data, &status); err != nil {
		t.Fatalf("decode status failed: %v", err)
	}
	if status.GameId != 3 || status.Round != 2 || status.Phase != "player" {
		t.Fatalf("回包不符: %+v", status)
	}
}

func Test行动请求_字段完整绑定(t *testing.T) {
	engine := newTestAPI(t, &fakeBoard{})

	code, _, msg := do(t, engine, nethttp.MethodPost, "/game/action",
		`{"game_id":3,"empire_id":9,"action":"farm","turns":2}`)
	if code != transport.OK {
		t.Fatalf("期望成功: code=%d msg=%s", code, msg)
	}
}

func Test缺少对局号_参数错误(t *testing.T) {
	engine := newTestAPI(t, &fakeBoard{})

	code, _, _ := do(t, engine, nethttp.MethodPost, "/game/action", `{"action":"farm"}`)
	if code != transport.InvalidParam {
		t.Fatalf("期望 InvalidParam: code=%d", code)
	}
}

func Test榜单_走归档库不经actor(t *testing.T) {
	board := &fakeBoard{rows: []model.RoundArchive{
		{GameId: 3, Round: 2, EmpireId: 9, Networth: 5000},
	}}
	engine := newTestAPI(t, board)

	code, data, _ := do(t, engine, nethttp.MethodGet, "/game/leaderboard?game_id=3&round=2", "")
	if code != transport.OK {
		t.Fatalf("期望成功: code=%d", code)
	}
	var rows []model.RoundArchive
	if err := json.Unmarshal(data, &rows); err != nil || len(rows) != 1 {
		t.Fatalf("榜单回包不符: %v %+v", err, rows)
	}
	if rows[0].EmpireId != 9 || rows[0].Networth != 5000 {
		t.Fatalf("榜单行不符: %+v", rows[0])
	}
}

func Test榜单_缺参数被拒(t *testing.T) {
	engine := newTestAPI(t, &fakeBoard{})

	code, _, _ := do(t, engine, nethttp.MethodGet, "/game/leaderboard", "")
	if code != transport.InvalidParam {
		t.Fatalf("期望 InvalidParam: code=%d", code)
	}
}
