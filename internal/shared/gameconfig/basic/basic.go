package basic

import (
	"EraRealms/internal/shared/config"
	"path/filepath"
	"runtime"
)

type GameConf struct {
	Rounds              int `json:"rounds"`
	TurnsPerRound       int `json:"turns_per_round"`
	BonusTurnsCap       int `json:"bonus_turns_cap"` // 单回合最多存入下回合的行动点
	AttackLimitPerRound int `json:"attack_limit_per_round"`
	HealthActionGate    int `json:"health_action_gate"`
}

type EmpireConf struct {
	Land         int64 `json:"land"`
	Gold         int64 `json:"gold"`
	Food         int64 `json:"food"`
	Runes        int64 `json:"runes"`
	Peasants     int64 `json:"peasants"`
	Health       int   `json:"health"`
	TaxRate      int   `json:"tax_rate"`
	AdvisorSlots int   `json:"advisor_slots"`
}

type SizeBonusStep struct {
	Networth int64   `json:"networth"` // -1 表示最后一档，无上限
	Bonus    float64 `json:"bonus"`
}

type LedgerConf struct {
	FreelandFood       float64         `json:"freeland_food"`
	FarmFood           float64         `json:"farm_food"`
	FarmDensityFalloff float64         `json:"farm_density_falloff"`
	PCIBase            float64         `json:"pci_base"`
	MarketFlatIncome   float64         `json:"market_flat_income"`
	LandUpkeep         float64         `json:"land_upkeep"`
	ExpenseReduceCap   float64         `json:"expense_reduce_cap"`
	LoanPaymentDivisor float64         `json:"loan_payment_divisor"`
	PeasantFoodRate    float64         `json:"peasant_food_rate"`
	PopLandCapacity    float64         `json:"pop_land_capacity"`
	PopHomeCapacity    float64         `json:"pop_home_capacity"`
	PopGrowth          float64         `json:"pop_growth"`
	SizeBonus          []SizeBonusStep `json:"size_bonus"`
}

type BuildingConf struct {
	BaseCost         float64 `json:"base_cost"`
	LandCostRate     float64 `json:"land_cost_rate"`
	RefundRate       float64 `json:"refund_rate"`
	BuildRateDivisor int64   `json:"build_rate_divisor"`
}

type BankConf struct {
	SavingsRate             float64 `json:"savings_rate"` // 每回合百分比
	LoanRate                float64 `json:"loan_rate"`
	LoanCapNetworthRatio    float64 `json:"loan_cap_networth_ratio"`
	LoanDefeatFloor         int64   `json:"loan_defeat_floor"`
	LoanDefeatNetworthRatio float64 `json:"loan_defeat_networth_ratio"`
}

type MarketConf struct {
	PrivateFoodBuy       int64   `json:"private_food_buy"`
	PrivateFoodSell      int64   `json:"private_food_sell"`
	PrivateRuneBuy       int64   `json:"private_rune_buy"`
	PrivateRuneSell      int64   `json:"private_rune_sell"`
	PrivateTroopBuyRate  float64 `json:"private_troop_buy_rate"`
	PrivateTroopSellRate float64 `json:"private_troop_sell_rate"`
	ShopSellCap          float64 `json:"shop_sell_cap"`
}

type ActionConf struct {
	FarmFocus            float64 `json:"farm_focus"`
	CashFocus            float64 `json:"cash_focus"`
	ExploreBase          float64 `json:"explore_base"`
	IndustryPointsPerBld float64 `json:"industry_points_per_building"`
	MeditateTowerRunes   float64 `json:"meditate_tower_runes"`
	MeditateLandRunes    float64 `json:"meditate_land_runes"`
}

type CombatConf struct {
	WinMargin           float64 `json:"win_margin"`
	StandardLandBonus   float64 `json:"standard_land_bonus"`
	StandardHealthCost  int     `json:"standard_health_cost"`
	SingleHealthCost    int     `json:"single_health_cost"`
	CaptureMin          float64 `json:"capture_min"`
	CaptureMax          float64 `json:"capture_max"`
	BuildingCaptureMin  float64 `json:"building_capture_min"`
	BuildingCaptureMax  float64 `json:"building_capture_max"`
	BuildingDestroyRate float64 `json:"building_destroy_rate"`
	FreelandDestroyRate float64 `json:"freeland_destroy_rate"`
	StandardLossRate    float64 `json:"standard_loss_rate"`
	SingleLossRate      float64 `json:"single_loss_rate"`
	DefenderLossRate    float64 `json:"defender_loss_rate"`
}

type SpellConf struct {
	BaseCost           float64 `json:"base_cost"`
	LandCostRate       float64 `json:"land_cost_rate"`
	TowerCostRate      float64 `json:"tower_cost_rate"`
	Turns              int     `json:"turns"`
	OffensiveHealth    int     `json:"offensive_health_cost"`
	ShieldRatioPenalty float64 `json:"shield_ratio_penalty"`
	FailWizardLossMin  float64 `json:"fail_wizard_loss_min"`
	FailWizardLossMax  float64 `json:"fail_wizard_loss_max"`
}

type NetworthConf struct {
	Land     float64 `json:"land"`
	Building float64 `json:"building"`
	Rune     float64 `json:"rune"`
}

type ShopConf struct {
	MultiplierMin float64 `json:"multiplier_min"`
	MultiplierMax float64 `json:"multiplier_max"`
	TroopStockMin int64   `json:"troop_stock_min"`
	TroopStockMax int64   `json:"troop_stock_max"`
	FoodStock     int64   `json:"food_stock"`
	RuneStock     int64   `json:"rune_stock"`
}

type BotPlanStep struct {
	Action string `json:"action"`
	Turns  int    `json:"turns"`
}

type BotConf struct {
	Count       int           `json:"count"`
	Races       []string      `json:"races"`
	FoodReserve int64         `json:"food_reserve"`
	Plan        []BotPlanStep `json:"plan"` // 循环执行直到行动点花光
}

type basicConf struct {
	Title    string       `json:"title"`
	Game     GameConf     `json:"game"`
	Empire   EmpireConf   `json:"empire"`
	Ledger   LedgerConf   `json:"ledger"`
	Building BuildingConf `json:"building"`
	Bank     BankConf     `json:"bank"`
	Market   MarketConf   `json:"market"`
	Actions  ActionConf   `json:"actions"`
	Combat   CombatConf   `json:"combat"`
	Spells   SpellConf    `json:"spells"`
	Networth NetworthConf `json:"networth"`
	Shop     ShopConf     `json:"shop"`
	Bot      BotConf      `json:"bot"`
}

var BasicConf = &basicConf{}

func Load() {
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		panic("load basic config failed: runtime.Caller(0) error")
	}
	configPath := filepath.Join(filepath.Dir(file), "basic.json")
	config.Load(configPath, BasicConf)

	if BasicConf.Game.Rounds <= 0 || BasicConf.Game.TurnsPerRound <= 0 {
		panic("load basic config failed: game rounds/turns must be positive")
	}
	if len(BasicConf.Ledger.SizeBonus) == 0 {
		panic("load basic config failed: ledger size_bonus table is empty")
	}
	last := BasicConf.Ledger.SizeBonus[len(BasicConf.Ledger.SizeBonus)-1]
	if last.Networth != -1 {
		panic("load basic config failed: size_bonus last step must be open ended (networth=-1)")
	}
	if BasicConf.Shop.MultiplierMin <= 0 || BasicConf.Shop.MultiplierMax < BasicConf.Shop.MultiplierMin {
		panic("load basic config failed: shop multiplier range is invalid")
	}
	if BasicConf.Bot.Count > 0 && len(BasicConf.Bot.Races) == 0 {
		panic("load basic config failed: bot races table is empty")
	}
	planTurns := 0
	for _, step := range BasicConf.Bot.Plan {
		if step.Turns <= 0 {
			panic("load basic config failed: bot plan step turns must be positive")
		}
		planTurns += step.Turns
	}
	if BasicConf.Bot.Count > 0 && planTurns == 0 {
		panic("load basic config failed: bot plan is empty")
	}
	if planTurns > BasicConf.Game.TurnsPerRound {
		panic("load basic config failed: bot plan cycle exceeds turns per round")
	}
}
