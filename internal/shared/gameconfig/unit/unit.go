package unit

import (
	"EraRealms/internal/shared/config"
	"path/filepath"
	"runtime"
)

const (
	Infantry = "infantry"
	Cavalry  = "cavalry"
	Air      = "air"
	Naval    = "naval"
	Wizard   = "wizard"
)

// CombatTypes 是可以单独领军出战的兵种（法师只参与法术战）。
var CombatTypes = []string{Infantry, Cavalry, Air, Naval}

type EraStats struct {
	Offense float64 `json:"offense"`
	Defense float64 `json:"defense"`
	Magic   float64 `json:"magic"`
}

type unitDetail struct {
	Name           string              `json:"name"`
	FoodRate       float64             `json:"food_rate"`
	Upkeep         float64             `json:"upkeep"`
	BaseCost       int64               `json:"base_cost"`
	IndustryPoints float64             `json:"industry_points"` // 生产 1 个所需产能，0 表示不可生产
	Networth       float64             `json:"networth"`
	Stats          map[string]EraStats `json:"stats"` // era -> 属性
}

type unitConf struct {
	Title  string       `json:"title"`
	List   []unitDetail `json:"list"`
	byName map[string]unitDetail
}

var UnitConf = &unitConf{}

func Load() {
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		panic("load unit config failed: runtime.Caller(0) error")
	}
	configPath := filepath.Join(filepath.Dir(file), "unit.json")
	config.Load(configPath, UnitConf)

	UnitConf.byName = make(map[string]unitDetail, len(UnitConf.List))
	for _, u := range UnitConf.List {
		if _, exists := UnitConf.byName[u.Name]; exists {
			panic("load unit config failed: duplicate unit " + u.Name)
		}
		UnitConf.byName[u.Name] = u
	}
	for _, name := range []string{Infantry, Cavalry, Air, Naval, Wizard} {
		u, ok := UnitConf.byName[name]
		if !ok {
			panic("load unit config failed: missing unit " + name)
		}
		for _, eraName := range []string{"past", "present", "future"} {
			if _, ok := u.Stats[eraName]; !ok {
				panic("load unit config failed: unit " + name + " missing stats for era " + eraName)
			}
		}
	}
}

func Exists(name string) bool {
	_, ok := UnitConf.byName[name]
	return ok
}

func FoodRate(name string) float64 { return UnitConf.byName[name].FoodRate }

func Upkeep(name string) float64 { return UnitConf.byName[name].Upkeep }

func BaseCost(name string) int64 { return UnitConf.byName[name].BaseCost }

func IndustryPoints(name string) float64 { return UnitConf.byName[name].IndustryPoints }

func Networth(name string) float64 { return UnitConf.byName[name].Networth }

func Stats(name, eraName string) EraStats { return UnitConf.byName[name].Stats[eraName] }
