package actors

import (
	"context"
	"errors"
	"sort"

	empireapp "EraRealms/internal/empire/app"
	"EraRealms/internal/empire/entity/domain"
	empiresvc "EraRealms/internal/empire/service"
	"EraRealms/internal/shared/actor/messages"
	"EraRealms/internal/shared/reasoncode"
	"EraRealms/internal/shared/transport"
	"EraRealms/modules/kit/errx"

	"github.com/asynkron/protoactor-go/actor"
	"go.uber.org/zap"
)

type GameHandler struct{}

var GH = &GameHandler{}

// HandleJoinGame 入场：建帝国、登记名单、拉起持久化子 actor。
func (h *GameHandler) HandleJoinGame(ctx actor.Context, g *GameActor, req *messages.GJoinGame) {
	gs := g.game.State()
	if gs.Finished {
		ctx.Respond(codeReply(transport.RuleRejected, "对局已结束"))
		return
	}

	id := g.deps.IdGen()
	e, err := empiresvc.NewEmpire(domain.EmpireID(id), req.Name, req.Race)
	if err != nil {
		ctx.Respond(errReply(err))
		return
	}

	gs.EmpireIds = append(gs.EmpireIds, id)
	g.game.MarkDirty()
	g.adoptEmpire(ctx, e)
	ctx.Respond(okReply(summaryOf(e, false)))
}

func (h *GameHandler) HandleGameStatus(ctx actor.Context, g *GameActor, req *messages.GGameStatus) {
	ctx.Respond(okReply(h.statusOf(g)))
}

func (h *GameHandler) HandleEmpireStatus(ctx actor.Context, g *GameActor, req *messages.GEmpireStatus) {
	e := g.empires[req.EmpireID()]
	if e == nil {
		ctx.Respond(codeReply(transport.RoleNotExist, "帝国不在对局中"))
		return
	}
	ctx.Respond(okReply(e.Clone()))
}

func (h *GameHandler) HandlePrices(ctx actor.Context, g *GameActor, req *messages.GPrices) {
	e := g.empires[req.EmpireID()]
	if e == nil {
		ctx.Respond(codeReply(transport.RoleNotExist, "帝国不在对局中"))
		return
	}
	ctx.Respond(okReply(empiresvc.PricesOf(e, g.game.State().Market)))
}

func (h *GameHandler) HandleApplyAction(ctx actor.Context, g *GameActor, req *messages.GApplyAction) {
	e, reply := h.actingEmpire(g, req.EmpireID(), domain.PhasePlayer)
	if reply != nil {
		ctx.Respond(reply)
		return
	}

	res, err := g.deps.Ops.ApplyAction(context.TODO(), e, req.Action, req.Turns, empireapp.ActionParams{
		Buildings:  req.Buildings,
		Allocation: req.Allocation,
	})
	if err != nil {
		ctx.Respond(errReply(err))
		return
	}
	g.commit(ctx, res.Empire)
	ctx.Respond(okReply(res))
}

func (h *GameHandler) HandleTransactMarket(ctx actor.Context, g *GameActor, req *messages.GTransactMarket) {
	gs := g.game.State()
	if gs.Phase == domain.PhaseBot {
		ctx.Respond(codeReply(transport.RuleRejected, "机器人行动期市场关闭"))
		return
	}
	e := g.empires[req.EmpireID()]
	if e == nil {
		ctx.Respond(codeReply(transport.RoleNotExist, "帝国不在对局中"))
		return
	}

	ne, nms, err := g.deps.Ops.TransactMarket(context.TODO(), e, gs.Market, empiresvc.Trade{
		Kind:     req.Kind,
		Item:     req.Item,
		Quantity: req.Quantity,
	})
	if err != nil {
		ctx.Respond(errReply(err))
		return
	}
	g.commit(ctx, ne)
	gs.Market = nms
	g.game.MarkDirty()
	ctx.Respond(okReply(ne))
}

func (h *GameHandler) HandleTransactBank(ctx actor.Context, g *GameActor, req *messages.GTransactBank) {
	e, reply := h.actingEmpire(g, req.EmpireID(), domain.PhasePlayer)
	if reply != nil {
		ctx.Respond(reply)
		return
	}

	ne, info, err := g.deps.Ops.TransactBank(context.TODO(), e, empireapp.BankTx{
		Kind:   req.Kind,
		Amount: req.Amount,
	})
	if err != nil {
		ctx.Respond(errReply(err))
		return
	}
	g.commit(ctx, ne)
	ctx.Respond(okReply(info))
}

func (h *GameHandler) HandleCastSpell(ctx actor.Context, g *GameActor, req *messages.GCastSpell) {
	caster, reply := h.actingEmpire(g, req.EmpireID(), domain.PhasePlayer)
	if reply != nil {
		ctx.Respond(reply)
		return
	}

	gs := g.game.State()
	var target *domain.Empire
	if req.TargetId != 0 {
		target = g.empires[req.TargetId]
	}

	nc, nt, res, err := g.deps.Ops.CastSpell(context.TODO(), caster, target, req.Spell, gs.Round, g.rng)
	g.game.MarkDirty() // 进攻法术消耗随机流，成败都要记下来
	if err != nil {
		ctx.Respond(errReply(err))
		return
	}
	g.commit(ctx, nc)
	g.commit(ctx, nt)
	ctx.Respond(okReply(res))
}

func (h *GameHandler) HandleAttack(ctx actor.Context, g *GameActor, req *messages.GAttack) {
	attacker, reply := h.actingEmpire(g, req.EmpireID(), domain.PhasePlayer)
	if reply != nil {
		ctx.Respond(reply)
		return
	}
	defender := g.empires[req.TargetId]
	if defender == nil {
		ctx.Respond(codeReply(transport.TargetInvalid, "目标帝国不在对局中"))
		return
	}

	gs := g.game.State()
	na, nd, res, err := g.deps.Ops.ResolveCombat(context.TODO(), attacker, defender, req.AttackType, gs.Round, g.rng)
	g.game.MarkDirty()
	if err != nil {
		ctx.Respond(errReply(err))
		return
	}
	g.commit(ctx, na)
	g.commit(ctx, nd)
	ctx.Respond(okReply(res))
}

// HandleDraftAdvisor 只在商店期开放。
func (h *GameHandler) HandleDraftAdvisor(ctx actor.Context, g *GameActor, req *messages.GDraftAdvisor) {
	e, reply := h.actingEmpire(g, req.EmpireID(), domain.PhaseShop)
	if reply != nil {
		ctx.Respond(reply)
		return
	}

	ne, drafted, err := g.deps.Ops.DraftAdvisor(context.TODO(), e, g.rng, g.deps.IdGen)
	g.game.MarkDirty()
	if err != nil {
		ctx.Respond(errReply(err))
		return
	}
	g.commit(ctx, ne)
	ctx.Respond(okReply(drafted))
}

func (h *GameHandler) HandleDismissAdvisor(ctx actor.Context, g *GameActor, req *messages.GDismissAdvisor) {
	e, reply := h.actingEmpire(g, req.EmpireID(), domain.PhaseShop)
	if reply != nil {
		ctx.Respond(reply)
		return
	}

	ne, err := g.deps.Ops.DismissAdvisor(context.TODO(), e, req.AdvisorId)
	if err != nil {
		ctx.Respond(errReply(err))
		return
	}
	g.commit(ctx, ne)
	ctx.Respond(okReply(ne.Advisors))
}

func (h *GameHandler) HandleRaiseMastery(ctx actor.Context, g *GameActor, req *messages.GRaiseMastery) {
	e, reply := h.actingEmpire(g, req.EmpireID(), domain.PhaseShop)
	if reply != nil {
		ctx.Respond(reply)
		return
	}

	ne, err := g.deps.Ops.RaiseMastery(context.TODO(), e, req.Action)
	if err != nil {
		ctx.Respond(errReply(err))
		return
	}
	g.commit(ctx, ne)
	ctx.Respond(okReply(ne.Masteries))
}

func (h *GameHandler) HandleAdoptPolicy(ctx actor.Context, g *GameActor, req *messages.GAdoptPolicy) {
	e, reply := h.actingEmpire(g, req.EmpireID(), domain.PhaseShop)
	if reply != nil {
		ctx.Respond(reply)
		return
	}

	ne, err := g.deps.Ops.AdoptPolicy(context.TODO(), e, req.Policy)
	if err != nil {
		ctx.Respond(errReply(err))
		return
	}
	g.commit(ctx, ne)
	ctx.Respond(okReply(ne.Policies))
}

// HandleEndPhase 阶段机推进：player→shop→bot，bot 期收盘翻回合并归档。
func (h *GameHandler) HandleEndPhase(ctx actor.Context, g *GameActor, req *messages.GEndPhase) {
	gs := g.game.State()
	if gs.Finished {
		ctx.Respond(codeReply(transport.RuleRejected, "对局已结束"))
		return
	}

	switch gs.Phase {
	case domain.PhasePlayer:
		g.deps.Rounds.BeginShopPhase(gs, g.rng)
	case domain.PhaseShop:
		g.deps.Rounds.BeginBotPhase(gs)
		g.deps.Rounds.RunBotPhase(context.TODO(), gs, g.empires)
		g.syncAll(ctx)
	case domain.PhaseBot:
		round := gs.Round
		g.deps.Rounds.AdvanceRound(context.TODO(), gs, g.empires)
		g.syncAll(ctx)
		h.archiveRound(g, round)
	default:
		ctx.Respond(failReply("unknown phase"))
		return
	}

	g.game.MarkDirty()
	ctx.Respond(okReply(h.statusOf(g)))
}

// archiveRound 归档失败只告警，不能因为榜单写库拖死回合推进。
func (h *GameHandler) archiveRound(g *GameActor, round int) {
	if g.deps.Archive == nil {
		return
	}
	gs := g.game.State()
	roster := make([]*domain.Empire, 0, len(g.empires))
	ids := sortedIds(g.empires)
	for _, id := range ids {
		roster = append(roster, g.empires[id])
	}
	if err := g.deps.Archive.ArchiveRound(context.TODO(), int64(gs.Id), round, roster); err != nil {
		g.deps.Log.Warn("round archive failed",
			zap.Int64("game_id", int64(gs.Id)), zap.Int("round", round), zap.Error(err))
	}
}

// actingEmpire 主动操作的公共门槛：帝国在场 + 阶段匹配。判负由应用层拒。
func (h *GameHandler) actingEmpire(g *GameActor, empireId int64, phase string) (*domain.Empire, *messages.GameReply) {
	gs := g.game.State()
	if gs.Phase != phase {
		return nil, codeReply(transport.RuleRejected, "当前阶段不允许该操作")
	}
	e := g.empires[empireId]
	if e == nil {
		return nil, codeReply(transport.RoleNotExist, "帝国不在对局中")
	}
	return e, nil
}

func (h *GameHandler) statusOf(g *GameActor) *messages.GameStatus {
	gs := g.game.State()
	st := &messages.GameStatus{
		GameId:   int64(gs.Id),
		Round:    gs.Round,
		Phase:    gs.Phase,
		Finished: gs.Finished,
		Winner:   gs.Winner,
		Empires:  make([]messages.EmpireSummary, 0, len(g.empires)),
	}
	for _, id := range sortedIds(g.empires) {
		e := g.empires[id]
		if e == nil {
			continue
		}
		st.Empires = append(st.Empires, summaryOf(e, gs.IsBot(id)))
	}
	return st
}

func summaryOf(e *domain.Empire, bot bool) messages.EmpireSummary {
	return messages.EmpireSummary{
		Id:       int64(e.Id),
		Name:     e.Name,
		Race:     e.Race,
		Era:      e.Era,
		Networth: e.Networth,
		Land:     e.Resources.Land,
		Bot:      bot,
		Defeated: e.Defeated,
	}
}

func sortedIds(empires map[int64]*domain.Empire) []int64 {
	ids := make([]int64, 0, len(empires))
	for id := range empires {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func okReply(payload any) *messages.GameReply {
	return &messages.GameReply{Code: transport.OK, Payload: payload}
}

func codeReply(code int, msg string) *messages.GameReply {
	return &messages.GameReply{Code: code, Message: msg}
}

func failReply(msg string) *messages.GameReply {
	return &messages.GameReply{Code: transport.SystemError, Message: msg}
}

// errReply 把核心规则层的 errx 错误映射为客户端业务码。
func errReply(err error) *messages.GameReply {
	var ex *errx.Error
	if !errors.As(err, &ex) {
		return failReply("internal error")
	}

	code := transport.SystemError
	switch ex.Code() {
	case empiresvc.CodeValidation:
		code = transport.InvalidParam
	case empiresvc.CodeInsufficient:
		code = transport.Insufficient
	case empiresvc.CodeRuleGate:
		code = transport.RuleRejected
	case empiresvc.CodeDefeated:
		code = transport.EmpireLost
	}
	switch ex.Reason() {
	case reasoncode.EmpireTargetGone, reasoncode.EmpireSelfTarget, reasoncode.EmpireTargetTruce:
		code = transport.TargetInvalid
	}

	msg := ex.Msg()
	if r := ex.Reason(); r != "" {
		msg = msg + " (" + r + ")"
	}
	return &messages.GameReply{Code: code, Message: msg}
}
