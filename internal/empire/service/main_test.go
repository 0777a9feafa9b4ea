package service

import (
	"os"
	"testing"

	"EraRealms/internal/shared/gameconfig/advisor"
	"EraRealms/internal/shared/gameconfig/basic"
	"EraRealms/internal/shared/gameconfig/era"
	"EraRealms/internal/shared/gameconfig/policy"
	"EraRealms/internal/shared/gameconfig/race"
	"EraRealms/internal/shared/gameconfig/spell"
	"EraRealms/internal/shared/gameconfig/unit"

	"EraRealms/internal/empire/entity/domain"
)

func TestMain(m *testing.M) {
	basic.Load()
	race.Load()
	era.Load()
	unit.Load()
	spell.Load()
	advisor.Load()
	policy.Load()
	os.Exit(m.Run())
}

// testEmpire 开局帝国，按表起步：土地 2000 全空地、金币 50000、平民 500。
func testEmpire(t *testing.T, raceName string) *domain.Empire {
	t.Helper()
	e, err := NewEmpire(1, "测试帝国", raceName)
	if err != nil {
		t.Fatalf("创建帝国失败: %v", err)
	}
	return e
}

// checkLandInvariant 任何操作后都必须满足 freeland + Σbuildings == land。
func checkLandInvariant(t *testing.T, e *domain.Empire) {
	t.Helper()
	if got := e.Resources.Freeland + e.TotalBuildings(); got != e.Resources.Land {
		t.Fatalf("土地不变式被破坏: freeland(%d)+buildings(%d) != land(%d)",
			e.Resources.Freeland, e.TotalBuildings(), e.Resources.Land)
	}
}
