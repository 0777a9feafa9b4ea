package app

import (
	"context"
	"math/rand"

	"EraRealms/internal/empire/entity/domain"
	"EraRealms/internal/empire/service"
	"EraRealms/internal/shared/gameconfig/basic"
	"EraRealms/internal/shared/gameconfig/spell"
	"EraRealms/internal/shared/gameconfig/unit"
	"EraRealms/modules/kit/logx"

	"go.uber.org/zap"
)

// ActionParams 行动附加参数：build/demolish 带建筑清单，industry 可顺带调整产能分配。
type ActionParams struct {
	Buildings  map[string]int64
	Allocation map[string]int
}

// BankTx 一笔银行操作。
type BankTx struct {
	Kind   string
	Amount int64
}

const (
	BankDeposit  = "deposit"
	BankWithdraw = "withdraw"
	BankLoan     = "loan"
	BankRepay    = "repay"
)

// OpsService 是核心规则的应用层入口。
// 所有入口都是整单生效：先在副本上结算，全部通过后才返回新实体；
// 任何校验失败都返回原实体未动。
type OpsService struct {
	log Logger
}

func NewOpsService(log Logger) *OpsService {
	return &OpsService{log: log}
}

// ApplyAction 结算一批经济行动（farm/cash/explore/industry/meditate/build/demolish）。
// attack/spell 不走这里，见 ResolveCombat / CastSpell。
func (s *OpsService) ApplyAction(ctx context.Context, e *domain.Empire, action string, turns int, params ActionParams) (*domain.TurnActionResult, error) {
	if e.Defeated {
		return nil, service.ErrDefeated.WithReason(service.ReasonDefeated)
	}

	work := e.Clone()
	if action == domain.ActionIndustry && params.Allocation != nil {
		if err := applyAllocation(work, params.Allocation); err != nil {
			return nil, err
		}
	}

	var res *domain.TurnActionResult
	var err error
	switch action {
	case domain.ActionBuild, domain.ActionDemolish:
		res, err = s.applyConstruction(work, action, params.Buildings)
	default:
		res, err = service.RunTurns(work, action, turns)
		if res != nil {
			res.TurnsRequested = turns
		}
	}
	if err != nil {
		return nil, err
	}

	service.RecomputeNetworth(work)
	if service.EvaluateDefeat(work) {
		logx.ReportBizWithLoggerContext(ctx, s.log, logx.NewBizLog("apply_action", work.DefeatReason, "帝国判负"),
			zap.Int64("empire_id", int64(work.Id)))
	}
	res.Empire = work
	return res, nil
}

// applyConstruction 建筑改动整单生效后，再按完工所需消耗行动点。
func (s *OpsService) applyConstruction(work *domain.Empire, action string, counts map[string]int64) (*domain.TurnActionResult, error) {
	res := &domain.TurnActionResult{Action: action}

	if action == domain.ActionBuild {
		var total int64
		for _, n := range counts {
			total += n
		}
		needed := service.BuildTurns(total, work.Resources.Land)
		if needed > work.TurnsRemaining {
			return nil, service.ErrInsufficient.WithReason(service.ReasonTurnsShort).
				WithData("needed", needed).WithData("remaining", work.TurnsRemaining)
		}
		_, turns, err := service.Build(work, counts)
		if err != nil {
			return nil, err
		}
		res.BuildingsBuilt = total
		res.TurnsRequested = turns
		service.RunBuildTurns(work, action, turns, res)
		return res, nil
	}

	if work.TurnsRemaining < 1 {
		return nil, service.ErrInsufficient.WithReason(service.ReasonTurnsShort)
	}
	if _, err := service.Demolish(work, counts); err != nil {
		return nil, err
	}
	res.TurnsRequested = 1
	service.RunBuildTurns(work, action, 1, res)
	return res, nil
}

// TransactMarket 结算一笔市场交易，返回新帝国与新市场状态。
func (s *OpsService) TransactMarket(ctx context.Context, e *domain.Empire, ms *domain.MarketState, tx service.Trade) (*domain.Empire, *domain.MarketState, error) {
	if e.Defeated {
		return nil, nil, service.ErrDefeated.WithReason(service.ReasonDefeated)
	}
	work := e.Clone()
	workMs := ms.Clone()
	if err := service.Transact(work, workMs, tx); err != nil {
		return nil, nil, err
	}
	service.RecomputeNetworth(work)
	service.EvaluateDefeat(work)
	return work, workMs, nil
}

// TransactBank 结算一笔银行操作，返回新帝国与操作后的银行快照。
func (s *OpsService) TransactBank(ctx context.Context, e *domain.Empire, tx BankTx) (*domain.Empire, domain.BankInfo, error) {
	if e.Defeated {
		return nil, domain.BankInfo{}, service.ErrDefeated.WithReason(service.ReasonDefeated)
	}
	work := e.Clone()
	var err error
	switch tx.Kind {
	case BankDeposit:
		err = service.Deposit(work, tx.Amount)
	case BankWithdraw:
		err = service.Withdraw(work, tx.Amount)
	case BankLoan:
		err = service.TakeLoan(work, tx.Amount)
	case BankRepay:
		_, err = service.PayLoan(work, tx.Amount)
	default:
		err = service.ErrValidation.WithReason(service.ReasonUnknownAction).WithData("kind", tx.Kind)
	}
	if err != nil {
		return nil, domain.BankInfo{}, err
	}
	service.RecomputeNetworth(work)
	service.EvaluateDefeat(work)
	return work, service.BankInfoOf(work), nil
}

// CastSpell 施法。self/era 法术 target 传 nil；进攻法术返回双方新实体。
// 不论成败都消耗 2 行动点，进攻法术额外扣 5 点健康。
func (s *OpsService) CastSpell(ctx context.Context, caster, target *domain.Empire, name string, round int, rng *rand.Rand) (*domain.Empire, *domain.Empire, *domain.SpellResult, error) {
	if err := service.CanCastSpell(caster, name, round); err != nil {
		return nil, nil, nil, err
	}
	sc := basic.BasicConf.Spells
	if caster.TurnsRemaining < sc.Turns {
		return nil, nil, nil, service.ErrInsufficient.WithReason(service.ReasonTurnsShort).
			WithData("needed", sc.Turns).WithData("remaining", caster.TurnsRemaining)
	}

	workCaster := caster.Clone()
	var workTarget *domain.Empire
	var res *domain.SpellResult

	if spell.Kind(name) == spell.KindOffensive {
		if target == nil || target.Defeated {
			return nil, nil, nil, service.ErrRuleGate.WithReason(service.ReasonTargetGone)
		}
		if caster.Id == target.Id {
			return nil, nil, nil, service.ErrValidation.WithReason(service.ReasonSelfTarget)
		}
		workTarget = target.Clone()
		res = service.CastOffensive(workCaster, workTarget, name, round, rng)
		workCaster.Health -= sc.OffensiveHealth
		if workCaster.Health < 0 {
			workCaster.Health = 0
		}
	} else {
		res = service.CastSelf(workCaster, name, round)
	}
	workCaster.TurnsRemaining -= sc.Turns

	service.RecomputeNetworth(workCaster)
	service.EvaluateDefeat(workCaster)
	if workTarget != nil {
		service.RecomputeNetworth(workTarget)
		service.EvaluateDefeat(workTarget)
	}
	return workCaster, workTarget, res, nil
}

// ResolveCombat 结算一次进攻，固定消耗 2 行动点。
func (s *OpsService) ResolveCombat(ctx context.Context, attacker, defender *domain.Empire, attackType string, round int, rng *rand.Rand) (*domain.Empire, *domain.Empire, *domain.CombatResult, error) {
	if err := service.CanAttack(attacker, defender, attackType, round); err != nil {
		return nil, nil, nil, err
	}
	const attackTurns = 2
	if attacker.TurnsRemaining < attackTurns {
		return nil, nil, nil, service.ErrInsufficient.WithReason(service.ReasonTurnsShort).
			WithData("needed", attackTurns).WithData("remaining", attacker.TurnsRemaining)
	}

	workAtk := attacker.Clone()
	workDef := defender.Clone()
	res := service.ResolveAttack(workAtk, workDef, attackType, round, rng)
	workAtk.TurnsRemaining -= attackTurns

	service.RecomputeNetworth(workAtk)
	service.RecomputeNetworth(workDef)
	service.EvaluateDefeat(workAtk)
	if service.EvaluateDefeat(workDef) {
		logx.ReportBizWithLoggerContext(ctx, s.log, logx.NewBizLog("resolve_combat", workDef.DefeatReason, "帝国判负"),
			zap.Int64("empire_id", int64(workDef.Id)))
	}
	return workAtk, workDef, res, nil
}

// AdvanceRound 回合推进：计息、攻击计数清零、行动点恢复、清理过期效果。
func (s *OpsService) AdvanceRound(ctx context.Context, e *domain.Empire, nextRound int) *domain.Empire {
	work := e.Clone()
	service.AdvanceRound(work, nextRound)
	service.EvaluateDefeat(work)
	return work
}

// applyAllocation 产能分配必须合计 100，且只能分给可生产兵种。
func applyAllocation(e *domain.Empire, alloc map[string]int) error {
	sum := 0
	for name, pct := range alloc {
		if !unit.Exists(name) || unit.IndustryPoints(name) <= 0 {
			return service.ErrValidation.WithReason(service.ReasonBadAllocation).WithData("unit", name)
		}
		if pct < 0 {
			return service.ErrValidation.WithReason(service.ReasonBadAllocation).WithData("unit", name)
		}
		sum += pct
	}
	if sum != 100 {
		return service.ErrValidation.WithReason(service.ReasonBadAllocation).WithData("sum", sum)
	}
	next := make(map[string]int, len(alloc))
	for name, pct := range alloc {
		next[name] = pct
	}
	e.IndustryAllocation = next
	return nil
}
