package spell

import (
	"EraRealms/internal/shared/config"
	"path/filepath"
	"runtime"
)

const (
	KindSelf      = "self"
	KindEra       = "era"
	KindOffensive = "offensive"
)

const (
	Shield  = "shield"
	Food    = "food"
	Cash    = "cash"
	Runes   = "runes"
	Gate    = "gate"
	Regress = "regress"
	Advance = "advance"
	Spy     = "spy"
	Blast   = "blast"
	Storm   = "storm"
	Struct  = "struct"
	Steal   = "steal"
	Fight   = "fight"
)

type spellDetail struct {
	Name       string  `json:"name"`
	Title      string  `json:"title"`
	Kind       string  `json:"kind"`
	Multiplier float64 `json:"multiplier"`

	// self 类
	YieldPerLand   float64 `json:"yield_per_land"`   // food/cash/runes：每地产出
	DurationRounds int     `json:"duration_rounds"` // shield/gate：持续回合数

	// offensive 类
	Threshold      float64 `json:"threshold"`       // 法力比值门槛
	TroopDamage    float64 `json:"troop_damage"`    // blast：兵力损毁比例
	FoodDamage     float64 `json:"food_damage"`     // storm
	CashDamage     float64 `json:"cash_damage"`     // storm
	BuildingDamage float64 `json:"building_damage"` // struct
	StealRate      float64 `json:"steal_rate"`      // steal
	WizardDamage   float64 `json:"wizard_damage"`   // fight
}

type spellConf struct {
	Title  string        `json:"title"`
	List   []spellDetail `json:"list"`
	byName map[string]spellDetail
}

var SpellConf = &spellConf{}

func Load() {
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		panic("load spell config failed: runtime.Caller(0) error")
	}
	configPath := filepath.Join(filepath.Dir(file), "spell.json")
	config.Load(configPath, SpellConf)

	SpellConf.byName = make(map[string]spellDetail, len(SpellConf.List))
	for _, s := range SpellConf.List {
		switch s.Kind {
		case KindSelf, KindEra, KindOffensive:
		default:
			panic("load spell config failed: spell " + s.Name + " has unknown kind " + s.Kind)
		}
		if s.Multiplier <= 0 {
			panic("load spell config failed: spell " + s.Name + " multiplier must be positive")
		}
		if s.Kind == KindOffensive && s.Threshold <= 0 {
			panic("load spell config failed: offensive spell " + s.Name + " needs a threshold")
		}
		if _, exists := SpellConf.byName[s.Name]; exists {
			panic("load spell config failed: duplicate spell " + s.Name)
		}
		SpellConf.byName[s.Name] = s
	}
	for _, name := range []string{Shield, Food, Cash, Runes, Gate, Regress, Advance, Spy, Blast, Storm, Struct, Steal, Fight} {
		if _, ok := SpellConf.byName[name]; !ok {
			panic("load spell config failed: missing spell " + name)
		}
	}
}

func Exists(name string) bool {
	_, ok := SpellConf.byName[name]
	return ok
}

func Get(name string) (spellDetail, bool) {
	s, ok := SpellConf.byName[name]
	return s, ok
}

func Kind(name string) string { return SpellConf.byName[name].Kind }

func Multiplier(name string) float64 { return SpellConf.byName[name].Multiplier }
