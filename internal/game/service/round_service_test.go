package service

import (
	"context"
	"os"
	"reflect"
	"testing"

	"EraRealms/internal/empire/app"
	"EraRealms/internal/empire/entity/domain"
	empiresvc "EraRealms/internal/empire/service"
	"EraRealms/internal/game/entity"
	"EraRealms/internal/shared/gameconfig/advisor"
	"EraRealms/internal/shared/gameconfig/basic"
	"EraRealms/internal/shared/gameconfig/era"
	"EraRealms/internal/shared/gameconfig/policy"
	"EraRealms/internal/shared/gameconfig/race"
	"EraRealms/internal/shared/gameconfig/spell"
	"EraRealms/internal/shared/gameconfig/unit"
	"EraRealms/modules/kit/logx"

	"go.uber.org/zap"
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

type nopLogger struct{}

func (nopLogger) Info(msg string, fields ...zap.Field)        {}
func (nopLogger) Error(msg string, fields ...zap.Field)       {}
func (nopLogger) Debug(msg string, fields ...zap.Field)       {}
func (nopLogger) Warn(msg string, fields ...zap.Field)        {}
func (nopLogger) WithContext(ctx context.Context) logx.Logger { return nopLogger{} }

func newRounds() *RoundService {
	return NewRoundService(app.NewOpsService(nopLogger{}), nopLogger{})
}

// seqIdGen 从 start 起步的递增 id 序列。
func seqIdGen(start int64) app.IdGen {
	next := start
	return func() int64 {
		id := next
		next++
		return id
	}
}

func TestGameRand_按计数快进随机流(t *testing.T) {
	gsA := &entity.GameState{Seed: 99}
	rA := GameRand(gsA)
	var a [5]int64
	for i := range a {
		a[i] = rA.Int63()
	}
	if gsA.RandUses != 5 {
		t.Fatalf("期望随机计数 5，got=%d", gsA.RandUses)
	}

	// 从计数 2 处恢复，后续抽取必须与原流第 3~5 次一致
	gsB := &entity.GameState{Seed: 99, RandUses: 2}
	rB := GameRand(gsB)
	for i := 2; i < 5; i++ {
		if got := rB.Int63(); got != a[i] {
			t.Fatalf("期望第 %d 次抽取 %d，got=%d", i+1, a[i], got)
		}
	}
	if gsB.RandUses != 5 {
		t.Fatalf("期望恢复后计数续到 5，got=%d", gsB.RandUses)
	}
}

func TestBeginShopPhase_同种子同盘面(t *testing.T) {
	s := newRounds()
	sc := basic.BasicConf.Shop

	gs1 := NewGameState(1, 7)
	gs2 := NewGameState(2, 7)
	s.BeginShopPhase(gs1, GameRand(gs1))
	s.BeginShopPhase(gs2, GameRand(gs2))

	if gs1.Phase != domain.PhaseShop {
		t.Fatalf("期望进入商店期，got=%s", gs1.Phase)
	}
	if !reflect.DeepEqual(gs1.Market.Multipliers, gs2.Market.Multipliers) {
		t.Fatalf("期望同种子掷出同一份倍率表")
	}
	if !reflect.DeepEqual(gs1.Market.Stock, gs2.Market.Stock) {
		t.Fatalf("期望同种子掷出同一份库存表")
	}

	for _, name := range unit.CombatTypes {
		m := gs1.Market.Multipliers[name]
		if m < sc.MultiplierMin || m > sc.MultiplierMax {
			t.Fatalf("期望 %s 倍率落在 [%v,%v]，got=%v", name, sc.MultiplierMin, sc.MultiplierMax, m)
		}
		stock := gs1.Market.Stock[name]
		if stock < sc.TroopStockMin || stock > sc.TroopStockMax {
			t.Fatalf("期望 %s 库存落在 [%d,%d]，got=%d", name, sc.TroopStockMin, sc.TroopStockMax, stock)
		}
	}
	if gs1.Market.Stock[empiresvc.ItemFood] != sc.FoodStock {
		t.Fatalf("期望粮食库存固定 %d，got=%d", sc.FoodStock, gs1.Market.Stock[empiresvc.ItemFood])
	}
	if gs1.Market.Stock[empiresvc.ItemRunes] != sc.RuneStock {
		t.Fatalf("期望符文库存固定 %d，got=%d", sc.RuneStock, gs1.Market.Stock[empiresvc.ItemRunes])
	}
}

func TestSpawnBots_按表生成且登记名单(t *testing.T) {
	bc := basic.BasicConf.Bot
	gs := NewGameState(1, 3)
	bots, err := SpawnBots(gs, seqIdGen(5001))
	if err != nil {
		t.Fatalf("生成机器人失败: %v", err)
	}
	if len(bots) != bc.Count || len(gs.BotIds) != bc.Count {
		t.Fatalf("期望生成 %d 个机器人，got=%d/%d", bc.Count, len(bots), len(gs.BotIds))
	}
	for i, b := range bots {
		if int64(b.Id) != 5001+int64(i) {
			t.Fatalf("期望机器人 id 连续，got=%d", b.Id)
		}
		if b.Race != bc.Races[i%len(bc.Races)] {
			t.Fatalf("期望种族按表轮转，got=%s", b.Race)
		}
		if !gs.IsBot(int64(b.Id)) {
			t.Fatalf("期望机器人 %d 被记入名单", b.Id)
		}
	}
}

func TestRunBotPhase_跑满计划行动点(t *testing.T) {
	s := newRounds()
	gs := NewGameState(1, 11)
	bots, err := SpawnBots(gs, seqIdGen(5001))
	if err != nil {
		t.Fatalf("生成机器人失败: %v", err)
	}
	empires := make(map[int64]*domain.Empire, len(bots))
	for _, b := range bots {
		empires[int64(b.Id)] = b
	}

	s.BeginBotPhase(gs)
	s.RunBotPhase(context.Background(), gs, empires)

	for id, e := range empires {
		if e.TurnsRemaining != 0 {
			t.Fatalf("期望机器人 %d 行动点花光，got=%d", id, e.TurnsRemaining)
		}
		if e.Defeated {
			t.Fatalf("期望机器人 %d 行动后未判负", id)
		}
		if e.Resources.Gold < 0 {
			t.Fatalf("机器人 %d 资金不应为负，got=%d", id, e.Resources.Gold)
		}
	}
}

func TestRunBotPhase_同种子同结果(t *testing.T) {
	s := newRounds()
	run := func() map[int64]*domain.Empire {
		gs := NewGameState(1, 17)
		bots, err := SpawnBots(gs, seqIdGen(5001))
		if err != nil {
			t.Fatalf("生成机器人失败: %v", err)
		}
		empires := make(map[int64]*domain.Empire, len(bots))
		for _, b := range bots {
			empires[int64(b.Id)] = b
		}
		s.BeginBotPhase(gs)
		s.RunBotPhase(context.Background(), gs, empires)
		return empires
	}

	first := run()
	second := run()
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("期望同种子跑出完全一致的盘面")
	}
}

func TestAdvanceRound_翻回合重开私市(t *testing.T) {
	s := newRounds()
	gs := NewGameState(1, 23)
	a := mustEmpire(t, 1, "human")
	b := mustEmpire(t, 2, "orc")
	empires := map[int64]*domain.Empire{1: a, 2: b}
	a.TurnsRemaining, b.TurnsRemaining = 0, 0 // 上回合行动点已花光

	gs.Phase = domain.PhaseBot
	s.AdvanceRound(context.Background(), gs, empires)

	if gs.Round != 2 || gs.Phase != domain.PhasePlayer {
		t.Fatalf("期望翻到第 2 回合玩家期，got=round %d phase %s", gs.Round, gs.Phase)
	}
	if gs.Market == nil || gs.Market.Phase != domain.PhasePlayer {
		t.Fatalf("期望私市重新开盘")
	}
	if gs.Finished {
		t.Fatalf("非末回合不应收官")
	}
	if empires[1].TurnsRemaining != basic.BasicConf.Game.TurnsPerRound {
		t.Fatalf("期望帝国行动点恢复，got=%d", empires[1].TurnsRemaining)
	}
}

func TestAdvanceRound_末回合收官定胜者(t *testing.T) {
	s := newRounds()
	gs := NewGameState(1, 29)
	gs.Round = basic.BasicConf.Game.Rounds
	gs.Phase = domain.PhaseBot

	a := mustEmpire(t, 1, "human")
	b := mustEmpire(t, 2, "orc")
	b.Resources.Gold += 1000000 // 身价拉开
	empiresvcRecompute(a, b)
	empires := map[int64]*domain.Empire{1: a, 2: b}

	s.AdvanceRound(context.Background(), gs, empires)

	if !gs.Finished {
		t.Fatalf("期望末回合收官")
	}
	if gs.Winner != 2 {
		t.Fatalf("期望身价更高的 2 号获胜，got=%d", gs.Winner)
	}
	if gs.Round != basic.BasicConf.Game.Rounds {
		t.Fatalf("收官后回合号不应再前进，got=%d", gs.Round)
	}
}

func TestWinner_排除判负同值取小id(t *testing.T) {
	a := mustEmpire(t, 1, "human")
	b := mustEmpire(t, 2, "orc")
	c := mustEmpire(t, 3, "elf")
	a.Networth = 100
	b.Networth = 100
	c.Networth = 999
	c.Defeated = true

	got := Winner(map[int64]*domain.Empire{1: a, 2: b, 3: c})
	if got != 1 {
		t.Fatalf("期望判负者出局、同身价取小 id，got=%d", got)
	}
}

func mustEmpire(t *testing.T, id int64, raceName string) *domain.Empire {
	t.Helper()
	e, err := empiresvc.NewEmpire(domain.EmpireID(id), "测试帝国", raceName)
	if err != nil {
		t.Fatalf("创建帝国失败: %v", err)
	}
	return e
}

func empiresvcRecompute(es ...*domain.Empire) {
	for _, e := range es {
		empiresvc.RecomputeNetworth(e)
	}
}
