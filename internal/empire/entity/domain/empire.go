package domain

type EmpireID int64

// 行动类型：经济行动按回合循环结算，attack/spell 固定 2 回合原子结算
const (
	ActionFarm     = "farm"
	ActionCash     = "cash"
	ActionExplore  = "explore"
	ActionIndustry = "industry"
	ActionMeditate = "meditate"
	ActionBuild    = "build"
	ActionDemolish = "demolish"
	ActionAttack   = "attack"
	ActionSpell    = "spell"
)

// MasteryActions 是可以通过 draft 提升专精的行动。
var MasteryActions = []string{ActionFarm, ActionCash, ActionExplore, ActionIndustry, ActionMeditate}

const (
	BuildingHome     = "home"
	BuildingFarm     = "farm"
	BuildingIndustry = "industry"
	BuildingMarket   = "market"
	BuildingExchange = "exchange"
	BuildingTower    = "tower"
)

var BuildingTypes = []string{BuildingHome, BuildingFarm, BuildingIndustry, BuildingMarket, BuildingExchange, BuildingTower}

const (
	DefeatNoLand        = "no_land"
	DefeatNoPeasants    = "no_peasants"
	DefeatExcessiveLoan = "excessive_loan"
	DefeatAbandoned     = "abandoned"
)

type Resources struct {
	Gold     int64 `json:"gold"`
	Food     int64 `json:"food"`
	Runes    int64 `json:"runes"`
	Land     int64 `json:"land"`
	Freeland int64 `json:"freeland"`
}

type CombatTally struct {
	OffenseAttempts  int   `json:"offense_attempts"`
	OffenseSuccesses int   `json:"offense_successes"`
	DefenseAttempts  int   `json:"defense_attempts"`
	DefenseSuccesses int   `json:"defense_successes"`
	Kills            int64 `json:"kills"`
}

// TimedEffects 按回合号记过期时间：current round <= expiry 即生效。
type TimedEffects struct {
	Shield           int `json:"shield"`
	Gate             int `json:"gate"`
	Pacification     int `json:"pacification"`
	DivineProtection int `json:"divine_protection"`
}

// entity
type Empire struct {
	Id              EmpireID `json:"id"`
	Name            string   `json:"name"`
	Race            string   `json:"race"` // 创建后不可变
	Era             string   `json:"era"`
	EraChangedRound int      `json:"era_changed_round"`

	Resources Resources        `json:"resources"`
	Buildings map[string]int64 `json:"buildings"`
	Troops    map[string]int64 `json:"troops"`

	// 产能分配：兵种 -> 百分比，合计必须等于 100
	IndustryAllocation map[string]int `json:"industry_allocation"`

	Peasants int64 `json:"peasants"`
	Health   int   `json:"health"`
	TaxRate  int   `json:"tax_rate"`

	Savings  int64 `json:"savings"`
	Loan     int64 `json:"loan"`
	Networth int64 `json:"networth"` // 派生值，每回合重算

	TurnsRemaining   int `json:"turns_remaining"`
	BonusTurns       int `json:"bonus_turns"` // 存到下回合的奖励行动点
	AttacksThisRound int `json:"attacks_this_round"`

	Tally   CombatTally  `json:"tally"`
	Effects TimedEffects `json:"effects"`

	Advisors   []Advisor      `json:"advisors"`
	BonusSlots int            `json:"bonus_slots"`
	Masteries  map[string]int `json:"masteries"` // action -> level 1..5
	Policies   []string       `json:"policies"`

	Defeated     bool   `json:"defeated"`
	DefeatReason string `json:"defeat_reason"`
}

func (e *Empire) TotalBuildings() int64 {
	var total int64
	for _, n := range e.Buildings {
		total += n
	}
	return total
}

func (e *Empire) TotalTroops() int64 {
	var total int64
	for _, n := range e.Troops {
		total += n
	}
	return total
}

// ShieldActive / GateActive / DivineActive：按当前回合判断限时效果
func (e *Empire) ShieldActive(round int) bool { return round <= e.Effects.Shield }

func (e *Empire) GateActive(round int) bool { return round <= e.Effects.Gate }

func (e *Empire) DivineActive(round int) bool { return round <= e.Effects.DivineProtection }

func (e *Empire) PacificationActive(round int) bool { return round <= e.Effects.Pacification }

func (e *Empire) HasPolicy(name string) bool {
	for _, p := range e.Policies {
		if p == name {
			return true
		}
	}
	return false
}

func (e *Empire) MasteryLevel(action string) int {
	return e.Masteries[action]
}

func (e *Empire) AdvisorCapacity(baseSlots int) int {
	return baseSlots + e.BonusSlots
}

// Clone 深拷贝，服务层用它保证多步操作的原子性。
func (e *Empire) Clone() *Empire {
	if e == nil {
		return nil
	}
	c := *e
	c.Buildings = cloneCountMap(e.Buildings)
	c.Troops = cloneCountMap(e.Troops)
	c.IndustryAllocation = cloneIntMap(e.IndustryAllocation)
	c.Masteries = cloneIntMap(e.Masteries)
	c.Advisors = append([]Advisor(nil), e.Advisors...)
	c.Policies = append([]string(nil), e.Policies...)
	return &c
}

func cloneCountMap(m map[string]int64) map[string]int64 {
	if m == nil {
		return nil
	}
	out := make(map[string]int64, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func cloneIntMap(m map[string]int) map[string]int {
	if m == nil {
		return nil
	}
	out := make(map[string]int, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
