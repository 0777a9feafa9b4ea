package advisor

import (
	"EraRealms/internal/shared/config"
	"math/rand"
	"path/filepath"
	"runtime"
)

const (
	RarityCommon    = "common"
	RarityUncommon  = "uncommon"
	RarityRare      = "rare"
	RarityLegendary = "legendary"
)

const (
	EffectPercent        = "percent"         // category + percent
	EffectFlat           = "flat"            // category + amount
	EffectCostDiscount   = "cost_discount"   // discount（乘法折扣，0.20 表示减 20%）
	EffectUnitSpecialist = "unit_specialist" // boost_unit/penalty_unit
)

type Effect struct {
	Kind     string  `json:"kind"`
	Category string  `json:"category"`
	Percent  float64 `json:"percent"`
	Amount   float64 `json:"amount"`
	Discount float64 `json:"discount"`

	// unit_specialist 专用：提升一类兵种攻击、惩罚另一类兵种防御
	BoostUnit      string  `json:"boost_unit"`
	BoostPercent   float64 `json:"boost_percent"`
	PenaltyUnit    string  `json:"penalty_unit"`
	PenaltyPercent float64 `json:"penalty_percent"`
}

type advisorDetail struct {
	CfgId       int    `json:"cfgId"`
	Name        string `json:"name"`
	Title       string `json:"title"`
	Rarity      string `json:"rarity"`
	Probability int    `json:"probability"`
	Effect      Effect `json:"effect"`
}

type advisorConf struct {
	Title            string          `json:"title"`
	List             []advisorDetail `json:"list"`
	byId             map[int]advisorDetail
	totalProbability int
}

var AdvisorConf = &advisorConf{}

func Load() {
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		panic("load advisor config failed: runtime.Caller(0) error")
	}
	configPath := filepath.Join(filepath.Dir(file), "advisor.json")
	config.Load(configPath, AdvisorConf)

	AdvisorConf.byId = make(map[int]advisorDetail, len(AdvisorConf.List))
	AdvisorConf.totalProbability = 0
	for _, a := range AdvisorConf.List {
		if a.CfgId <= 0 {
			panic("load advisor config failed: advisor " + a.Name + " needs a positive cfgId")
		}
		if _, exists := AdvisorConf.byId[a.CfgId]; exists {
			panic("load advisor config failed: duplicate advisor cfgId")
		}
		switch a.Rarity {
		case RarityCommon, RarityUncommon, RarityRare, RarityLegendary:
		default:
			panic("load advisor config failed: advisor " + a.Name + " has unknown rarity " + a.Rarity)
		}
		switch a.Effect.Kind {
		case EffectPercent, EffectFlat:
			if a.Effect.Category == "" {
				panic("load advisor config failed: advisor " + a.Name + " effect needs a category")
			}
		case EffectCostDiscount:
			if a.Effect.Discount <= 0 || a.Effect.Discount >= 1 {
				panic("load advisor config failed: advisor " + a.Name + " discount must be in (0,1)")
			}
		case EffectUnitSpecialist:
			if a.Effect.BoostUnit == "" || a.Effect.PenaltyUnit == "" {
				panic("load advisor config failed: advisor " + a.Name + " specialist needs both units")
			}
		default:
			panic("load advisor config failed: advisor " + a.Name + " has unknown effect kind " + a.Effect.Kind)
		}
		AdvisorConf.byId[a.CfgId] = a
		AdvisorConf.totalProbability += a.Probability
	}
	if AdvisorConf.totalProbability <= 0 {
		panic("load advisor config failed: total probability must be positive")
	}
}

func Get(cfgId int) (advisorDetail, bool) {
	a, ok := AdvisorConf.byId[cfgId]
	return a, ok
}

// Rand 按掉率权重随机一个顾问，draft 用。
func Rand(rng *rand.Rand) int {
	if len(AdvisorConf.List) == 0 {
		return 0
	}
	rate := rng.Intn(AdvisorConf.totalProbability)
	current := 0
	for _, a := range AdvisorConf.List {
		if rate < current+a.Probability {
			return a.CfgId
		}
		current += a.Probability
	}
	return AdvisorConf.List[len(AdvisorConf.List)-1].CfgId
}
