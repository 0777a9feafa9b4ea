package ws

import (
	"EraRealms/internal/gate/app/model"
	"EraRealms/internal/gate/interfaces/handler"
	"EraRealms/internal/shared/actor/messages"
	"EraRealms/internal/shared/transport"
	"EraRealms/internal/shared/transport/ws"
	"context"
	"encoding/json"

	"go.uber.org/zap"
)

type WsHandler struct {
	gate *handler.Gate
}

func NewWsHandler(g *handler.Gate) *WsHandler {
	return &WsHandler{gate: g}
}

func (h *WsHandler) RegisterRoutes(r *ws.Router) {
	accountGroup := r.Group("account")
	accountGroup.Handle("login", h.login)
	accountGroup.Handle("register", h.register)
	accountGroup.Handle("profile", h.profile)
	accountGroup.Handle("saveProfile", h.saveProfile)

	gameGroup := r.Group("game")
	gameGroup.Handle("join", h.joinGame)
	gameGroup.Handle("status", h.gameStatus)
	gameGroup.Handle("empire", h.empireStatus)
	gameGroup.Handle("prices", h.prices)
	gameGroup.Handle("action", h.applyAction)
	gameGroup.Handle("market", h.transactMarket)
	gameGroup.Handle("bank", h.transactBank)
	gameGroup.Handle("spell", h.castSpell)
	gameGroup.Handle("attack", h.attack)
	gameGroup.Handle("draftAdvisor", h.draftAdvisor)
	gameGroup.Handle("dismissAdvisor", h.dismissAdvisor)
	gameGroup.Handle("mastery", h.raiseMastery)
	gameGroup.Handle("policy", h.adoptPolicy)
	gameGroup.Handle("endPhase", h.endPhase)
}

// ============ 账号 ============

func (h *WsHandler) login(ctx context.Context, wsReq *ws.WsMsgReq, wsResp *ws.WsMsgResp) {
	if !validMsg(wsReq, wsResp) {
		h.fail(wsResp, transport.InvalidParam, "参数有误")
		return
	}

	var req model.LoginReq
	if err := ws.BindJSON(wsReq, &req); err != nil {
		h.fail(wsResp, transport.InvalidParam, "参数有误")
		return
	}

	loginResp, err := h.gate.GateService.Login(ctx, req)
	if err != nil {
		h.error(ctx, wsResp, err)
		return
	}

	conn := wsReq.Conn
	conn.SetProperty(ws.ConnKeyUID, loginResp.UId)
	conn.SetProperty(handler.ConnKeySession, loginResp.Session)
	h.gate.Session.Bind(loginResp.UId, loginResp.Session, conn)

	// 档案里挂着上次的对局就直接恢复绑定，断线重连不用重新 join。
	if p := loginResp.Profile; p != nil && p.GameId > 0 && p.EmpireId > 0 {
		conn.SetProperty(handler.ConnKeyGameID, p.GameId)
		conn.SetProperty(handler.ConnKeyEmpireID, p.EmpireId)
	}
	h.ok(wsResp, loginResp)
}

func (h *WsHandler) register(ctx context.Context, wsReq *ws.WsMsgReq, wsResp *ws.WsMsgResp) {
	if !validMsg(wsReq, wsResp) {
		h.fail(wsResp, transport.InvalidParam, "参数有误")
		return
	}

	var req model.RegisterReq
	if err := ws.BindJSON(wsReq, &req); err != nil {
		h.fail(wsResp, transport.InvalidParam, "参数有误")
		return
	}

	if err := h.gate.GateService.Register(ctx, req); err != nil {
		h.error(ctx, wsResp, err)
		return
	}
	h.ok(wsResp, nil)
}

func (h *WsHandler) profile(ctx context.Context, wsReq *ws.WsMsgReq, wsResp *ws.WsMsgResp) {
	session, ok := h.connSession(wsReq, wsResp)
	if !ok {
		return
	}

	p, err := h.gate.GateService.Profile(ctx, session)
	if err != nil {
		h.error(ctx, wsResp, err)
		return
	}
	h.ok(wsResp, p)
}

func (h *WsHandler) saveProfile(ctx context.Context, wsReq *ws.WsMsgReq, wsResp *ws.WsMsgResp) {
	session, ok := h.connSession(wsReq, wsResp)
	if !ok {
		return
	}

	var req model.Profile
	if err := ws.BindJSON(wsReq, &req); err != nil {
		h.fail(wsResp, transport.InvalidParam, "参数有误")
		return
	}

	if err := h.gate.GateService.SaveProfile(ctx, session, req); err != nil {
		h.error(ctx, wsResp, err)
		return
	}
	h.ok(wsResp, nil)
}

// ============ 对局 ============

func (h *WsHandler) joinGame(ctx context.Context, wsReq *ws.WsMsgReq, wsResp *ws.WsMsgResp) {
	session, ok := h.connSession(wsReq, wsResp)
	if !ok {
		return
	}

	var msg messages.GJoinGame
	if err := ws.BindJSON(wsReq, &msg); err != nil || msg.GameId <= 0 {
		h.fail(wsResp, transport.InvalidParam, "参数有误")
		return
	}
	msg.EmpireId = 0

	result := h.callGame(ctx, wsResp, "join", &msg)
	if result == nil || !result.OK() {
		return
	}

	var summary messages.EmpireSummary
	if err := json.Unmarshal(result.Data, &summary); err != nil || summary.Id <= 0 {
		h.fail(wsResp, transport.UpstreamInternal, "对局回包异常")
		return
	}
	wsReq.Conn.SetProperty(handler.ConnKeyGameID, msg.GameId)
	wsReq.Conn.SetProperty(handler.ConnKeyEmpireID, summary.Id)

	// 把对局写回档案失败只影响下次重连，不值得打断入场。
	if err := h.gate.GateService.BindGame(ctx, session, msg.GameId, summary.Id); err != nil {
		h.gate.Log.Warn("bind game to profile failed",
			zap.Int64("game_id", msg.GameId),
			zap.Int64("empire_id", summary.Id),
			zap.Error(err),
		)
	}
}

func (h *WsHandler) gameStatus(ctx context.Context, wsReq *ws.WsMsgReq, wsResp *ws.WsMsgResp) {
	base, ok := h.boundGame(wsReq, wsResp)
	if !ok {
		return
	}
	h.callGame(ctx, wsResp, "status", &messages.GGameStatus{GameBaseMessage: base})
}

func (h *WsHandler) empireStatus(ctx context.Context, wsReq *ws.WsMsgReq, wsResp *ws.WsMsgResp) {
	base, ok := h.boundGame(wsReq, wsResp)
	if !ok {
		return
	}
	h.callGame(ctx, wsResp, "empire", &messages.GEmpireStatus{GameBaseMessage: base})
}

func (h *WsHandler) prices(ctx context.Context, wsReq *ws.WsMsgReq, wsResp *ws.WsMsgResp) {
	base, ok := h.boundGame(wsReq, wsResp)
	if !ok {
		return
	}
	h.callGame(ctx, wsResp, "prices", &messages.GPrices{GameBaseMessage: base})
}

func (h *WsHandler) applyAction(ctx context.Context, wsReq *ws.WsMsgReq, wsResp *ws.WsMsgResp) {
	base, ok := h.boundGame(wsReq, wsResp)
	if !ok {
		return
	}
	var msg messages.GApplyAction
	if err := ws.BindJSON(wsReq, &msg); err != nil {
		h.fail(wsResp, transport.InvalidParam, "参数有误")
		return
	}
	msg.GameBaseMessage = base
	h.callGame(ctx, wsResp, "action", &msg)
}

func (h *WsHandler) transactMarket(ctx context.Context, wsReq *ws.WsMsgReq, wsResp *ws.WsMsgResp) {
	base, ok := h.boundGame(wsReq, wsResp)
	if !ok {
		return
	}
	var msg messages.GTransactMarket
	if err := ws.BindJSON(wsReq, &msg); err != nil {
		h.fail(wsResp, transport.InvalidParam, "参数有误")
		return
	}
	msg.GameBaseMessage = base
	h.callGame(ctx, wsResp, "market", &msg)
}

func (h *WsHandler) transactBank(ctx context.Context, wsReq *ws.WsMsgReq, wsResp *ws.WsMsgResp) {
	base, ok := h.boundGame(wsReq, wsResp)
	if !ok {
		return
	}
	var msg messages.GTransactBank
	if err := ws.BindJSON(wsReq, &msg); err != nil {
		h.fail(wsResp, transport.InvalidParam, "参数有误")
		return
	}
	msg.GameBaseMessage = base
	h.callGame(ctx, wsResp, "bank", &msg)
}

func (h *WsHandler) castSpell(ctx context.Context, wsReq *ws.WsMsgReq, wsResp *ws.WsMsgResp) {
	base, ok := h.boundGame(wsReq, wsResp)
	if !ok {
		return
	}
	var msg messages.GCastSpell
	if err := ws.BindJSON(wsReq, &msg); err != nil {
		h.fail(wsResp, transport.InvalidParam, "参数有误")
		return
	}
	msg.GameBaseMessage = base
	h.callGame(ctx, wsResp, "spell", &msg)
}

func (h *WsHandler) attack(ctx context.Context, wsReq *ws.WsMsgReq, wsResp *ws.WsMsgResp) {
	base, ok := h.boundGame(wsReq, wsResp)
	if !ok {
		return
	}
	var msg messages.GAttack
	if err := ws.BindJSON(wsReq, &msg); err != nil {
		h.fail(wsResp, transport.InvalidParam, "参数有误")
		return
	}
	msg.GameBaseMessage = base
	h.callGame(ctx, wsResp, "attack", &msg)
}

func (h *WsHandler) draftAdvisor(ctx context.Context, wsReq *ws.WsMsgReq, wsResp *ws.WsMsgResp) {
	base, ok := h.boundGame(wsReq, wsResp)
	if !ok {
		return
	}
	h.callGame(ctx, wsResp, "draftAdvisor", &messages.GDraftAdvisor{GameBaseMessage: base})
}

func (h *WsHandler) dismissAdvisor(ctx context.Context, wsReq *ws.WsMsgReq, wsResp *ws.WsMsgResp) {
	base, ok := h.boundGame(wsReq, wsResp)
	if !ok {
		return
	}
	var msg messages.GDismissAdvisor
	if err := ws.BindJSON(wsReq, &msg); err != nil {
		h.fail(wsResp, transport.InvalidParam, "参数有误")
		return
	}
	msg.GameBaseMessage = base
	h.callGame(ctx, wsResp, "dismissAdvisor", &msg)
}

func (h *WsHandler) raiseMastery(ctx context.Context, wsReq *ws.WsMsgReq, wsResp *ws.WsMsgResp) {
	base, ok := h.boundGame(wsReq, wsResp)
	if !ok {
		return
	}
	var msg messages.GRaiseMastery
	if err := ws.BindJSON(wsReq, &msg); err != nil {
		h.fail(wsResp, transport.InvalidParam, "参数有误")
		return
	}
	msg.GameBaseMessage = base
	h.callGame(ctx, wsResp, "mastery", &msg)
}

func (h *WsHandler) adoptPolicy(ctx context.Context, wsReq *ws.WsMsgReq, wsResp *ws.WsMsgResp) {
	base, ok := h.boundGame(wsReq, wsResp)
	if !ok {
		return
	}
	var msg messages.GAdoptPolicy
	if err := ws.BindJSON(wsReq, &msg); err != nil {
		h.fail(wsResp, transport.InvalidParam, "参数有误")
		return
	}
	msg.GameBaseMessage = base
	h.callGame(ctx, wsResp, "policy", &msg)
}

func (h *WsHandler) endPhase(ctx context.Context, wsReq *ws.WsMsgReq, wsResp *ws.WsMsgResp) {
	base, ok := h.boundGame(wsReq, wsResp)
	if !ok {
		return
	}
	h.callGame(ctx, wsResp, "endPhase", &messages.GEndPhase{GameBaseMessage: base})
}

// ============ 公共逻辑 ============

func validMsg(wsReq *ws.WsMsgReq, wsResp *ws.WsMsgResp) bool {
	return wsReq != nil && wsReq.Body != nil && wsReq.Conn != nil && wsResp != nil && wsResp.Body != nil
}

// connSession 取连接上的登录态，没有就拒掉。
func (h *WsHandler) connSession(wsReq *ws.WsMsgReq, wsResp *ws.WsMsgResp) (string, bool) {
	if !validMsg(wsReq, wsResp) {
		h.fail(wsResp, transport.InvalidParam, "参数有误")
		return "", false
	}
	session, _ := wsReq.Conn.GetProperty(handler.ConnKeySession).(string)
	if session == "" {
		h.fail(wsResp, transport.SessionInvalid, "session 无效")
		return "", false
	}
	if _, ok := h.gate.Session.GetUID(wsReq.Conn); !ok {
		h.fail(wsResp, transport.SessionInvalid, "session 无效")
		return "", false
	}
	return session, true
}

// boundGame 取连接上绑定的对局身份，未入场的连接拒掉。
func (h *WsHandler) boundGame(wsReq *ws.WsMsgReq, wsResp *ws.WsMsgResp) (messages.GameBaseMessage, bool) {
	if _, ok := h.connSession(wsReq, wsResp); !ok {
		return messages.GameBaseMessage{}, false
	}
	gameId, _ := wsReq.Conn.GetProperty(handler.ConnKeyGameID).(int64)
	empireId, _ := wsReq.Conn.GetProperty(handler.ConnKeyEmpireID).(int64)
	if gameId <= 0 || empireId <= 0 {
		h.fail(wsResp, transport.RuleRejected, "尚未加入对局")
		return messages.GameBaseMessage{}, false
	}
	return messages.GameBaseMessage{GameId: gameId, EmpireId: empireId}, true
}

// callGame 转发对局操作并把回包原样透传：code 与提示语都由 game 服务裁定。
func (h *WsHandler) callGame(ctx context.Context, wsResp *ws.WsMsgResp, op string, msg messages.GameMessage) *model.GameResult {
	result, err := h.gate.GateService.GameCall(ctx, op, msg)
	if err != nil {
		h.error(ctx, wsResp, err)
		return nil
	}
	if wsResp != nil && wsResp.Body != nil {
		wsResp.Body.Code = result.Code
		if result.OK() {
			wsResp.Body.Msg = result.Data
		} else {
			wsResp.Body.Msg = result.Message
		}
	}
	return result
}

func (h *WsHandler) ok(resp *ws.WsMsgResp, data any) {
	if resp == nil || resp.Body == nil {
		return
	}
	resp.Body.Code = transport.OK
	resp.Body.Msg = data
}

func (h *WsHandler) fail(resp *ws.WsMsgResp, code int, msg string) {
	if resp == nil || resp.Body == nil {
		return
	}
	resp.Body.Code = code
	if msg != "" {
		resp.Body.Msg = msg
	}
}

func (h *WsHandler) error(ctx context.Context, resp *ws.WsMsgResp, err error) {
	code, msg := handler.HandleError(ctx, err)
	h.fail(resp, code, msg)
}
