package service

import (
	"math"

	"EraRealms/internal/empire/entity/domain"
	"EraRealms/internal/shared/gameconfig/basic"
)

// BuildingBaseCost 基础造价只随土地走：floor(1500 + land×0.05)。
func BuildingBaseCost(land int64) int64 {
	bc := basic.BasicConf.Building
	return int64(math.Floor(bc.BaseCost + float64(land)*bc.LandCostRate))
}

// BuildingCost 实际造价：基础造价 × 顾问乘法折扣 ÷ 建造成本修正。
func BuildingCost(e *domain.Empire) int64 {
	base := float64(BuildingBaseCost(e.Resources.Land))
	cost := int64(math.Floor(base * AdvisorCostMultiplier(e) / CostDivisor(e, CategoryBuildCost)))
	if cost < 0 {
		cost = 0
	}
	return cost
}

// DemolishRefund 拆除返还只按基础造价算，不吃任何折扣，堵死折扣套利。
func DemolishRefund(land int64) int64 {
	return int64(math.Floor(float64(BuildingBaseCost(land)) * basic.BasicConf.Building.RefundRate))
}

// BuildRate 每回合完工数随土地规模走：max(1, floor(land/20))。
func BuildRate(land int64) int64 {
	rate := land / basic.BasicConf.Building.BuildRateDivisor
	if rate < 1 {
		rate = 1
	}
	return rate
}

// BuildTurns 建 n 座需要的回合数：max(1, ceil(n/rate))。
func BuildTurns(n, land int64) int {
	if n <= 0 {
		return 0
	}
	turns := int(math.Ceil(float64(n) / float64(BuildRate(land))))
	if turns < 1 {
		turns = 1
	}
	return turns
}

// Build 全量成功或全量失败：空地、金币任一不够就整单拒绝。
// 返回花费与需要消耗的回合数，回合扣减由调度器执行。
func Build(e *domain.Empire, counts map[string]int64) (goldSpent int64, turns int, err error) {
	total, err := validateBuildingCounts(counts)
	if err != nil {
		return 0, 0, err
	}
	if total > e.Resources.Freeland {
		return 0, 0, ErrInsufficient.WithReason(ReasonFreelandShort).
			WithData("requested", total).WithData("freeland", e.Resources.Freeland)
	}
	cost := BuildingCost(e) * total
	if cost > e.Resources.Gold {
		return 0, 0, ErrInsufficient.WithReason(ReasonGoldShort).
			WithData("cost", cost).WithData("gold", e.Resources.Gold)
	}

	e.Resources.Gold -= cost
	e.Resources.Freeland -= total
	if e.Buildings == nil {
		e.Buildings = make(map[string]int64)
	}
	for name, n := range counts {
		if n > 0 {
			e.Buildings[name] += n
		}
	}
	return cost, BuildTurns(total, e.Resources.Land), nil
}

// Demolish 全量成功或全量失败：任一类型持有不足就整单拒绝。
func Demolish(e *domain.Empire, counts map[string]int64) (refund int64, err error) {
	total, err := validateBuildingCounts(counts)
	if err != nil {
		return 0, err
	}
	for name, n := range counts {
		if n > e.Buildings[name] {
			return 0, ErrInsufficient.WithReason(ReasonBuildingShort).
				WithData("building", name).WithData("requested", n).WithData("owned", e.Buildings[name])
		}
	}

	refund = DemolishRefund(e.Resources.Land) * total
	for name, n := range counts {
		if n > 0 {
			e.Buildings[name] -= n
		}
	}
	e.Resources.Freeland += total
	e.Resources.Gold += refund
	return refund, nil
}

func validateBuildingCounts(counts map[string]int64) (total int64, err error) {
	for name, n := range counts {
		if !knownBuilding(name) {
			return 0, ErrValidation.WithReason(ReasonUnknownBuilding).WithData("building", name)
		}
		if n < 0 {
			return 0, ErrValidation.WithReason(ReasonNonPositiveAmount).WithData("building", name)
		}
		total += n
	}
	if total <= 0 {
		return 0, ErrValidation.WithReason(ReasonNonPositiveAmount)
	}
	return total, nil
}

func knownBuilding(name string) bool {
	for _, b := range domain.BuildingTypes {
		if b == name {
			return true
		}
	}
	return false
}
