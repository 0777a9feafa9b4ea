package era

import (
	"EraRealms/internal/shared/config"
	"path/filepath"
	"runtime"
)

const (
	Past    = "past"
	Present = "present"
	Future  = "future"
)

type eraDetail struct {
	Name      string             `json:"name"`
	Title     string             `json:"title"`
	Modifiers map[string]float64 `json:"modifiers"`
}

type eraConf struct {
	Title  string      `json:"title"`
	List   []eraDetail `json:"list"`
	byName map[string]eraDetail
}

var EraConf = &eraConf{}

func Load() {
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		panic("load era config failed: runtime.Caller(0) error")
	}
	configPath := filepath.Join(filepath.Dir(file), "era.json")
	config.Load(configPath, EraConf)

	EraConf.byName = make(map[string]eraDetail, len(EraConf.List))
	for _, e := range EraConf.List {
		EraConf.byName[e.Name] = e
	}
	// 三个时代是固定的，表里少一个就是配置错误
	for _, name := range []string{Past, Present, Future} {
		if _, ok := EraConf.byName[name]; !ok {
			panic("load era config failed: missing era " + name)
		}
	}
}

// Modifier 返回时代在某个效果类目上的百分比加成，未配置视为 0。
func Modifier(eraName, category string) float64 {
	e, ok := EraConf.byName[eraName]
	if !ok {
		return 0
	}
	return e.Modifiers[category]
}

func Exists(eraName string) bool {
	_, ok := EraConf.byName[eraName]
	return ok
}

// Next 返回 advance 的目标时代；已是 future 时返回空串。
func Next(eraName string) string {
	switch eraName {
	case Past:
		return Present
	case Present:
		return Future
	}
	return ""
}

// Prev 返回 regress 的目标时代；已是 past 时返回空串。
func Prev(eraName string) string {
	switch eraName {
	case Future:
		return Present
	case Present:
		return Past
	}
	return ""
}
