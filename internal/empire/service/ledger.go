package service

import (
	"math"
	"sort"

	"EraRealms/internal/empire/entity/domain"
	"EraRealms/internal/shared/gameconfig/basic"
	"EraRealms/internal/shared/gameconfig/unit"
)

// TurnDelta 一次行动回合对账本的全部改动，先算后用，账本本身不截断。
type TurnDelta struct {
	Income       int64
	Expenses     int64
	LoanPayment  int64
	FoodProduced int64
	FoodConsumed int64
	RuneDelta    int64
	LandGained   int64
	Troops       map[string]int64
}

// FoodProduction 每回合粮食产量：空地 ×10 + 农田 ×85×sqrt(max(0, 1−0.75×农田/土地))。
// 农田密度越高，边际产量越低。
func FoodProduction(e *domain.Empire) float64 {
	lc := basic.BasicConf.Ledger
	land := float64(e.Resources.Land)
	if land <= 0 {
		return 0
	}
	farms := float64(e.Buildings[domain.BuildingFarm])
	density := 1 - lc.FarmDensityFalloff*farms/land
	if density < 0 {
		density = 0
	}
	base := float64(e.Resources.Freeland)*lc.FreelandFood + farms*lc.FarmFood*math.Sqrt(density)
	return base * GainMultiplier(e, CategoryFood)
}

// FoodConsumption 每回合粮食消耗：平民 + 各兵种按单位口粮。
func FoodConsumption(e *domain.Empire) float64 {
	total := float64(e.Peasants) * basic.BasicConf.Ledger.PeasantFoodRate
	for name, count := range e.Troops {
		total += float64(count) * unit.FoodRate(name)
	}
	return total
}

// SizeBonus 按身价查阶梯表：身价越高，分母越大，收入越低。
func SizeBonus(networth int64) float64 {
	for _, step := range basic.BasicConf.Ledger.SizeBonus {
		if step.Networth == -1 || networth <= step.Networth {
			return step.Bonus
		}
	}
	return 1
}

// Income 每回合税收：(人均收入 × 税率 × 健康度 × 平民 + 市场 ×500) / 身价阶梯。
func Income(e *domain.Empire) float64 {
	lc := basic.BasicConf.Ledger
	land := float64(e.Resources.Land)
	if land <= 0 {
		return 0
	}
	markets := float64(e.Buildings[domain.BuildingMarket])
	pci := lc.PCIBase * (1 + markets/land)
	gross := pci*float64(e.TaxRate)/100*float64(e.Health)/100*float64(e.Peasants) + markets*lc.MarketFlatIncome
	gross /= SizeBonus(e.Networth)
	return gross * GainMultiplier(e, CategoryIncome)
}

// Expenses 每回合开销：兵种维护费 + 土地维护费，交易所按占地比例抵扣，上限 50%。
func Expenses(e *domain.Empire) float64 {
	lc := basic.BasicConf.Ledger
	land := float64(e.Resources.Land)
	upkeep := land * lc.LandUpkeep
	for name, count := range e.Troops {
		upkeep += float64(count) * unit.Upkeep(name)
	}
	if land > 0 {
		reduce := float64(e.Buildings[domain.BuildingExchange]) / land
		if reduce > lc.ExpenseReduceCap {
			reduce = lc.ExpenseReduceCap
		}
		upkeep *= 1 - reduce
	}
	return upkeep
}

// LoanPayment 每回合强制还款额：loan/200，优先于其他开销扣除。
func LoanPayment(e *domain.Empire) int64 {
	if e.Loan <= 0 {
		return 0
	}
	pay := int64(math.Floor(float64(e.Loan) / basic.BasicConf.Ledger.LoanPaymentDivisor))
	if pay > e.Loan {
		pay = e.Loan
	}
	return pay
}

// PeasantCapacity 人口容量：土地 ×2 + 民居 ×50。
func PeasantCapacity(e *domain.Empire) int64 {
	lc := basic.BasicConf.Ledger
	return int64(float64(e.Resources.Land)*lc.PopLandCapacity + float64(e.Buildings[domain.BuildingHome])*lc.PopHomeCapacity)
}

// EvaluateTurn 计算一回合行动的账本改动，不落到实体上。
// 返回的 stop 非空表示这回合不能结算：资金链断（loan）或粮食耗尽（food）。
func EvaluateTurn(e *domain.Empire, action string) (TurnDelta, string) {
	ac := basic.BasicConf.Actions
	var d TurnDelta

	foodProd := FoodProduction(e)
	if action == domain.ActionFarm {
		foodProd *= ac.FarmFocus
	}
	income := Income(e)
	if action == domain.ActionCash {
		income *= ac.CashFocus
	}

	d.Income = int64(math.Floor(income))
	d.Expenses = int64(math.Floor(Expenses(e)))
	d.LoanPayment = LoanPayment(e)
	d.FoodProduced = int64(math.Floor(foodProd))
	d.FoodConsumed = int64(math.Floor(FoodConsumption(e)))

	// 账本不截断：结算后任一资源会变负就提前停，这回合整体不生效
	if e.Resources.Gold+d.Income-d.Expenses-d.LoanPayment < 0 {
		return TurnDelta{}, StopLoan
	}
	if e.Resources.Food+d.FoodProduced-d.FoodConsumed < 0 {
		return TurnDelta{}, StopFood
	}

	switch action {
	case domain.ActionExplore:
		d.LandGained = exploreGain(e)
	case domain.ActionIndustry:
		d.Troops = industryOutput(e)
	case domain.ActionMeditate:
		d.RuneDelta = meditateGain(e)
	}
	return d, ""
}

// ApplyTurn 把一回合改动落到实体上，并结算健康恢复与人口增长。
func ApplyTurn(e *domain.Empire, d TurnDelta) {
	e.Resources.Gold += d.Income - d.Expenses - d.LoanPayment
	e.Loan -= d.LoanPayment
	e.Resources.Food += d.FoodProduced - d.FoodConsumed
	e.Resources.Runes += d.RuneDelta
	if d.LandGained > 0 {
		e.Resources.Land += d.LandGained
		e.Resources.Freeland += d.LandGained
	}
	for name, count := range d.Troops {
		if e.Troops == nil {
			e.Troops = make(map[string]int64)
		}
		e.Troops[name] += count
	}

	if e.Health < 100 {
		e.Health++
	}
	growPeasants(e)
}

// exploreGain 土地越多探索收益越低：max(1, floor(1500/sqrt(land))) × 探索修正。
func exploreGain(e *domain.Empire) int64 {
	land := float64(e.Resources.Land)
	if land < 1 {
		land = 1
	}
	gain := math.Floor(basic.BasicConf.Actions.ExploreBase / math.Sqrt(land))
	if gain < 1 {
		gain = 1
	}
	return int64(math.Floor(gain * GainMultiplier(e, CategoryExplore)))
}

// industryOutput 工业产能按分配比例换算成各兵种产量，产能不可结转。
func industryOutput(e *domain.Empire) map[string]int64 {
	points := float64(e.Buildings[domain.BuildingIndustry]) *
		basic.BasicConf.Actions.IndustryPointsPerBld *
		GainMultiplier(e, CategoryIndustry)
	if points <= 0 || len(e.IndustryAllocation) == 0 {
		return nil
	}

	// 遍历顺序固定，保证 bot 期结算可复现
	names := make([]string, 0, len(e.IndustryAllocation))
	for name := range e.IndustryAllocation {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make(map[string]int64, len(names))
	for _, name := range names {
		pct := e.IndustryAllocation[name]
		perUnit := unit.IndustryPoints(name)
		if pct <= 0 || perUnit <= 0 {
			continue
		}
		count := int64(math.Floor(points * float64(pct) / 100 / perUnit))
		if count > 0 {
			out[name] = count
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// meditateGain 冥想产出符文：(法师塔 ×12 + 土地 ×0.05) × 魔法修正。
func meditateGain(e *domain.Empire) int64 {
	ac := basic.BasicConf.Actions
	raw := float64(e.Buildings[domain.BuildingTower])*ac.MeditateTowerRunes +
		float64(e.Resources.Land)*ac.MeditateLandRunes
	return int64(math.Floor(raw * GainMultiplier(e, CategoryMagic)))
}

// growPeasants 人口以 5% 的速度向容量回归，超容（比如丢地后）同样回落。
func growPeasants(e *domain.Empire) {
	capacity := PeasantCapacity(e)
	rate := basic.BasicConf.Ledger.PopGrowth
	gap := capacity - e.Peasants
	if gap == 0 {
		return
	}
	step := int64(math.Floor(math.Abs(float64(gap)) * rate))
	if step < 1 {
		step = 1
	}
	if gap > 0 {
		e.Peasants += step
		if e.Peasants > capacity {
			e.Peasants = capacity
		}
	} else {
		e.Peasants -= step
		if e.Peasants < capacity {
			e.Peasants = capacity
		}
	}
}
