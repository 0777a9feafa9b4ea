package domain

// TurnActionResult 一次行动批次的结算结果，产出后不再修改。
type TurnActionResult struct {
	Action         string `json:"action"`
	TurnsRequested int    `json:"turns_requested"`
	TurnsSpent     int    `json:"turns_spent"`
	TurnsRemaining int    `json:"turns_remaining"`

	Income          int64 `json:"income"`
	Expenses        int64 `json:"expenses"`
	FoodProduced    int64 `json:"food_produced"`
	FoodConsumed    int64 `json:"food_consumed"`
	RuneDelta       int64 `json:"rune_delta"`
	LoanPayment     int64 `json:"loan_payment"`
	TroopsProduced  map[string]int64 `json:"troops_produced,omitempty"`
	LandGained      int64 `json:"land_gained,omitempty"`
	BuildingsBuilt  int64 `json:"buildings_built,omitempty"`

	StoppedEarly string `json:"stopped_early,omitempty"` // "food" | "loan"，空串表示没有提前停

	Combat *CombatResult `json:"combat,omitempty"`
	Spell  *SpellResult  `json:"spell,omitempty"`

	Empire *Empire `json:"empire"`
}

// CombatResult 只在行动响应里出现，不落库。
type CombatResult struct {
	Won bool `json:"won"`

	AttackerLosses map[string]int64 `json:"attacker_losses,omitempty"`
	DefenderLosses map[string]int64 `json:"defender_losses,omitempty"`

	LandGained         int64 `json:"land_gained"`
	BuildingsGained    map[string]int64 `json:"buildings_gained,omitempty"`
	BuildingsDestroyed map[string]int64 `json:"buildings_destroyed,omitempty"`

	OffensePower float64 `json:"offense_power"`
	DefensePower float64 `json:"defense_power"`
}

type SpellResult struct {
	Spell   string `json:"spell"`
	Success bool   `json:"success"`

	RunesSpent int64 `json:"runes_spent"`

	// self 类收益
	GoldGained  int64 `json:"gold_gained,omitempty"`
	FoodGained  int64 `json:"food_gained,omitempty"`
	RunesGained int64 `json:"runes_gained,omitempty"`
	NewEra      string `json:"new_era,omitempty"`

	// offensive 类战果
	TroopsDestroyed    map[string]int64 `json:"troops_destroyed,omitempty"`
	BuildingsDestroyed map[string]int64 `json:"buildings_destroyed,omitempty"`
	FoodDestroyed      int64            `json:"food_destroyed,omitempty"`
	CashDestroyed      int64            `json:"cash_destroyed,omitempty"`
	GoldStolen         int64            `json:"gold_stolen,omitempty"`
	WizardsLost        int64            `json:"wizards_lost,omitempty"`

	Intel *Intel `json:"intel,omitempty"`
}

// Intel Spy 法术抓取的目标快照，带抓取回合号。
type Intel struct {
	Round    int              `json:"round"`
	Name     string           `json:"name"`
	Race     string           `json:"race"`
	Era      string           `json:"era"`
	Land     int64            `json:"land"`
	Gold     int64            `json:"gold"`
	Food     int64            `json:"food"`
	Runes    int64            `json:"runes"`
	Peasants int64            `json:"peasants"`
	Networth int64            `json:"networth"`
	Troops   map[string]int64 `json:"troops"`
}

// BankInfo 按需重算的只读快照。
type BankInfo struct {
	Savings         int64   `json:"savings"`
	Loan            int64   `json:"loan"`
	MaxLoan         int64   `json:"max_loan"`
	AvailableCredit int64   `json:"available_credit"`
	SavingsRate     float64 `json:"savings_rate"`
	LoanRate        float64 `json:"loan_rate"`
}

type MarketPrices struct {
	FoodBuy   int64            `json:"food_buy"`
	FoodSell  int64            `json:"food_sell"`
	RuneBuy   int64            `json:"rune_buy"`
	RuneSell  int64            `json:"rune_sell"`
	TroopBuy  map[string]int64 `json:"troop_buy"`
	TroopSell map[string]int64 `json:"troop_sell"`
}

type ShopStock struct {
	Items map[string]int64 `json:"items"` // item -> 剩余件数，商店期内只减不补
}
