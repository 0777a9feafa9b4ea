package app

import (
	"context"
	"math/rand"

	"EraRealms/internal/empire/entity/domain"
	"EraRealms/internal/empire/service"
	"EraRealms/internal/shared/gameconfig/advisor"
	"EraRealms/internal/shared/gameconfig/basic"
	"EraRealms/internal/shared/gameconfig/policy"
	"EraRealms/internal/shared/reasoncode"
)

// IdGen 顾问实例 id 生成器，线上用 snowflake，测试里给固定序列。
type IdGen func() int64

var (
	reasonAdvisorsFull = service.NewReason(reasoncode.EmpireAdvisorsFull, "顾问席位已满")
	reasonMasteryMaxed = service.NewReason(reasoncode.EmpireMasteryMaxed, "专精已满级")
)

// DraftAdvisor 商店期按掉率抽一名顾问入队，席位满则拒绝。
func (s *OpsService) DraftAdvisor(ctx context.Context, e *domain.Empire, rng *rand.Rand, idGen IdGen) (*domain.Empire, *domain.Advisor, error) {
	if e.Defeated {
		return nil, nil, service.ErrDefeated.WithReason(service.ReasonDefeated)
	}
	capacity := e.AdvisorCapacity(basic.BasicConf.Empire.AdvisorSlots)
	if len(e.Advisors) >= capacity {
		return nil, nil, service.ErrRuleGate.WithReason(reasonAdvisorsFull).WithData("capacity", capacity)
	}

	cfgId := advisor.Rand(rng)
	cfg, ok := advisor.Get(cfgId)
	if !ok {
		return nil, nil, service.ErrValidation.WithReason(service.ReasonUnknownItem).WithData("cfgId", cfgId)
	}

	work := e.Clone()
	drafted := domain.Advisor{
		Id:     idGen(),
		CfgId:  cfg.CfgId,
		Name:   cfg.Name,
		Rarity: cfg.Rarity,
	}
	work.Advisors = append(work.Advisors, drafted)
	return work, &drafted, nil
}

// DismissAdvisor 解雇顾问，实例随帝国销毁，不可转让。
func (s *OpsService) DismissAdvisor(ctx context.Context, e *domain.Empire, advisorId int64) (*domain.Empire, error) {
	if e.Defeated {
		return nil, service.ErrDefeated.WithReason(service.ReasonDefeated)
	}
	work := e.Clone()
	for i, a := range work.Advisors {
		if a.Id == advisorId {
			work.Advisors = append(work.Advisors[:i], work.Advisors[i+1:]...)
			return work, nil
		}
	}
	return nil, service.ErrValidation.WithReason(service.ReasonUnknownItem).WithData("advisor_id", advisorId)
}

// RaiseMastery 专精 +1 级，上限 5 级。
func (s *OpsService) RaiseMastery(ctx context.Context, e *domain.Empire, action string) (*domain.Empire, error) {
	if e.Defeated {
		return nil, service.ErrDefeated.WithReason(service.ReasonDefeated)
	}
	if !masteryAction(action) {
		return nil, service.ErrValidation.WithReason(service.ReasonUnknownAction).WithData("action", action)
	}
	if e.MasteryLevel(action) >= 5 {
		return nil, service.ErrRuleGate.WithReason(reasonMasteryMaxed).WithData("action", action)
	}
	work := e.Clone()
	if work.Masteries == nil {
		work.Masteries = make(map[string]int)
	}
	work.Masteries[action]++
	return work, nil
}

// AdoptPolicy 采纳政策，重复采纳视为入参错误。
func (s *OpsService) AdoptPolicy(ctx context.Context, e *domain.Empire, name string) (*domain.Empire, error) {
	if e.Defeated {
		return nil, service.ErrDefeated.WithReason(service.ReasonDefeated)
	}
	if !policy.Exists(name) {
		return nil, service.ErrValidation.WithReason(service.ReasonUnknownItem).WithData("policy", name)
	}
	if e.HasPolicy(name) {
		return nil, service.ErrValidation.WithReason(service.ReasonUnknownItem).WithData("policy", name)
	}
	work := e.Clone()
	work.Policies = append(work.Policies, name)
	return work, nil
}

func masteryAction(action string) bool {
	for _, a := range domain.MasteryActions {
		if a == action {
			return true
		}
	}
	return false
}
