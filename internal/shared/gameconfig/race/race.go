package race

import (
	"EraRealms/internal/shared/config"
	"path/filepath"
	"runtime"
)

type raceDetail struct {
	Name      string             `json:"name"`
	Title     string             `json:"title"`
	Modifiers map[string]float64 `json:"modifiers"` // category -> 百分比
}

type raceConf struct {
	Title string       `json:"title"`
	List  []raceDetail `json:"list"`
	byName map[string]raceDetail
}

var RaceConf = &raceConf{}

func Load() {
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		panic("load race config failed: runtime.Caller(0) error")
	}
	configPath := filepath.Join(filepath.Dir(file), "race.json")
	config.Load(configPath, RaceConf)

	if len(RaceConf.List) == 0 {
		panic("load race config failed: race list is empty")
	}
	RaceConf.byName = make(map[string]raceDetail, len(RaceConf.List))
	for _, r := range RaceConf.List {
		if r.Name == "" {
			panic("load race config failed: race without name")
		}
		if _, exists := RaceConf.byName[r.Name]; exists {
			panic("load race config failed: duplicate race " + r.Name)
		}
		for cat := range r.Modifiers {
			if !knownCategory(cat) {
				panic("load race config failed: race " + r.Name + " has unknown category " + cat)
			}
		}
		RaceConf.byName[r.Name] = r
	}
}

// Modifier 返回该种族在某个效果类目上的基础百分比，未配置视为 0。
func Modifier(raceName, category string) float64 {
	r, ok := RaceConf.byName[raceName]
	if !ok {
		return 0
	}
	return r.Modifiers[category]
}

func Exists(raceName string) bool {
	_, ok := RaceConf.byName[raceName]
	return ok
}

func Names() []string {
	names := make([]string, 0, len(RaceConf.List))
	for _, r := range RaceConf.List {
		names = append(names, r.Name)
	}
	return names
}

func knownCategory(cat string) bool {
	switch cat {
	case "income", "food", "industry", "explore", "magic",
		"offense", "defense", "build_cost", "spell_cost", "market", "casualties":
		return true
	}
	return false
}
