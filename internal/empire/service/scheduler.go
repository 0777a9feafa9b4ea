package service

import (
	"EraRealms/internal/empire/entity/domain"
)

// 提前停原因，直接进 TurnActionResult.StoppedEarly
const (
	StopFood = "food"
	StopLoan = "loan"
)

// StepResult 每消耗一回合得到一个明确的结果枚举，不用哨兵值。
type StepResult int

const (
	StepContinue StepResult = iota
	StepStopFood
	StepStopLoan
	StepExhausted
)

func (s StepResult) String() string {
	switch s {
	case StepContinue:
		return "continue"
	case StepStopFood:
		return "stop_food"
	case StepStopLoan:
		return "stop_loan"
	case StepExhausted:
		return "exhausted"
	}
	return "unknown"
}

// economicAction 是可以循环消耗行动点的行动；attack/spell 固定 2 点原子结算，不走循环。
func economicAction(action string) bool {
	switch action {
	case domain.ActionFarm, domain.ActionCash, domain.ActionExplore,
		domain.ActionIndustry, domain.ActionMeditate:
		return true
	}
	return false
}

// RunTurns 把同一经济行动连续结算最多 turns 个回合。
// 每次迭代：算账 → 检查提前停 → 落账 → 扣行动点。
// 提前停（断粮/断贷）不是错误，通过结果上的 StoppedEarly 上报。
func RunTurns(e *domain.Empire, action string, turns int) (*domain.TurnActionResult, error) {
	if !economicAction(action) {
		return nil, ErrValidation.WithReason(ReasonUnknownAction).WithData("action", action)
	}
	if turns <= 0 {
		return nil, ErrValidation.WithReason(ReasonNonPositiveAmount).WithData("turns", turns)
	}
	if e.Defeated {
		return nil, ErrDefeated.WithReason(ReasonDefeated)
	}
	if e.TurnsRemaining <= 0 {
		return nil, ErrInsufficient.WithReason(ReasonTurnsShort)
	}

	res := &domain.TurnActionResult{
		Action:         action,
		TurnsRequested: turns,
	}

	for i := 0; i < turns; i++ {
		step := stepOnce(e, action, res)
		if step != StepContinue {
			if step == StepStopFood {
				res.StoppedEarly = StopFood
			} else if step == StepStopLoan {
				res.StoppedEarly = StopLoan
			}
			break
		}
	}

	res.TurnsRemaining = e.TurnsRemaining
	res.Empire = e
	return res, nil
}

// stepOnce 结算一个回合并累计到结果上。
func stepOnce(e *domain.Empire, action string, res *domain.TurnActionResult) StepResult {
	if e.TurnsRemaining <= 0 {
		return StepExhausted
	}
	delta, stop := EvaluateTurn(e, action)
	switch stop {
	case StopFood:
		return StepStopFood
	case StopLoan:
		return StepStopLoan
	}

	ApplyTurn(e, delta)
	e.TurnsRemaining--
	res.TurnsSpent++
	res.Income += delta.Income
	res.Expenses += delta.Expenses
	res.FoodProduced += delta.FoodProduced
	res.FoodConsumed += delta.FoodConsumed
	res.RuneDelta += delta.RuneDelta
	res.LoanPayment += delta.LoanPayment
	res.LandGained += delta.LandGained
	for name, count := range delta.Troops {
		if res.TroopsProduced == nil {
			res.TroopsProduced = make(map[string]int64)
		}
		res.TroopsProduced[name] += count
	}
	return StepContinue
}

// RunBuildTurns 建造/拆除后消耗对应行动点，期间账本照常运转。
// 建筑改动在进入这里之前已经整单生效。
func RunBuildTurns(e *domain.Empire, action string, turns int, res *domain.TurnActionResult) {
	for i := 0; i < turns; i++ {
		step := stepOnce(e, action, res)
		if step != StepContinue {
			if step == StepStopFood {
				res.StoppedEarly = StopFood
			} else if step == StepStopLoan {
				res.StoppedEarly = StopLoan
			}
			break
		}
	}
	res.TurnsRemaining = e.TurnsRemaining
}
