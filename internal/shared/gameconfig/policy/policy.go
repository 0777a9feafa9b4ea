package policy

import (
	"EraRealms/internal/shared/config"
	"path/filepath"
	"runtime"
)

type policyDetail struct {
	Name      string             `json:"name"`
	Title     string             `json:"title"`
	Modifiers map[string]float64 `json:"modifiers"`
}

type policyConf struct {
	Title  string         `json:"title"`
	List   []policyDetail `json:"list"`
	byName map[string]policyDetail
}

var PolicyConf = &policyConf{}

func Load() {
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		panic("load policy config failed: runtime.Caller(0) error")
	}
	configPath := filepath.Join(filepath.Dir(file), "policy.json")
	config.Load(configPath, PolicyConf)

	PolicyConf.byName = make(map[string]policyDetail, len(PolicyConf.List))
	for _, p := range PolicyConf.List {
		if _, exists := PolicyConf.byName[p.Name]; exists {
			panic("load policy config failed: duplicate policy " + p.Name)
		}
		PolicyConf.byName[p.Name] = p
	}
}

func Exists(name string) bool {
	_, ok := PolicyConf.byName[name]
	return ok
}

// Modifier 返回政策在某个效果类目上的百分比，未配置视为 0。
func Modifier(policyName, category string) float64 {
	p, ok := PolicyConf.byName[policyName]
	if !ok {
		return 0
	}
	return p.Modifiers[category]
}
