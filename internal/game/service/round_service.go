package service

import (
	"context"
	"fmt"
	"math/rand"
	"sort"

	"EraRealms/internal/empire/app"
	"EraRealms/internal/empire/entity/domain"
	empiresvc "EraRealms/internal/empire/service"
	"EraRealms/internal/game/entity"
	"EraRealms/internal/shared/gameconfig/basic"
	"EraRealms/internal/shared/gameconfig/unit"
	"EraRealms/modules/kit/logx"

	"go.uber.org/zap"
)

// RoundService 驱动对局的阶段机：player → shop → bot → 下一回合。
// 所有随机都走对局自己的 rng，同一种子 + 同一操作序列必然得到同一盘面。
type RoundService struct {
	ops *app.OpsService
	log logx.Logger
}

func NewRoundService(ops *app.OpsService, log logx.Logger) *RoundService {
	return &RoundService{ops: ops, log: log}
}

// NewGameState 开局：第 1 回合玩家期，私市开盘。
func NewGameState(id entity.GameID, seed int64) *entity.GameState {
	return &entity.GameState{
		Id:     id,
		Round:  1,
		Phase:  domain.PhasePlayer,
		Market: &domain.MarketState{Phase: domain.PhasePlayer},
		Seed:   seed,
	}
}

// SpawnBots 按配置生成机器人帝国，名字和种族都取自表，保证可复现。
func SpawnBots(gs *entity.GameState, idGen app.IdGen) ([]*domain.Empire, error) {
	bc := basic.BasicConf.Bot
	bots := make([]*domain.Empire, 0, bc.Count)
	for i := 0; i < bc.Count; i++ {
		race := bc.Races[i%len(bc.Races)]
		id := domain.EmpireID(idGen())
		e, err := empiresvc.NewEmpire(id, fmt.Sprintf("守备军团-%d", i+1), race)
		if err != nil {
			return nil, err
		}
		bots = append(bots, e)
		gs.BotIds = append(gs.BotIds, int64(id))
	}
	return bots, nil
}

// BeginShopPhase 收玩家期、开商店：按区间掷每个兵种的价格倍率与限量库存。
func (s *RoundService) BeginShopPhase(gs *entity.GameState, rng *rand.Rand) {
	sc := basic.BasicConf.Shop

	multipliers := make(map[string]float64, len(unit.CombatTypes))
	stock := make(map[string]int64, len(unit.CombatTypes)+2)
	for _, name := range unit.CombatTypes {
		multipliers[name] = sc.MultiplierMin + rng.Float64()*(sc.MultiplierMax-sc.MultiplierMin)
		stock[name] = sc.TroopStockMin + rng.Int63n(sc.TroopStockMax-sc.TroopStockMin+1)
	}
	stock[empiresvc.ItemFood] = sc.FoodStock
	stock[empiresvc.ItemRunes] = sc.RuneStock

	gs.Phase = domain.PhaseShop
	gs.Market = &domain.MarketState{
		Phase:       domain.PhaseShop,
		Multipliers: multipliers,
		Stock:       stock,
	}
}

// BeginBotPhase 收商店、轮到机器人行动，市场对双方都关闭。
func (s *RoundService) BeginBotPhase(gs *entity.GameState) {
	gs.Phase = domain.PhaseBot
	gs.Market = &domain.MarketState{Phase: domain.PhaseBot}
}

// RunBotPhase 机器人按固定顺序跑经济行动：计划是一个循环，
// 跑完一轮从头再来，直到行动点花光。每步之前把余粮卖给私市换维护费，
// 不卖粮的帝国几回合就会断贷。行动失败只记日志不中断。
func (s *RoundService) RunBotPhase(ctx context.Context, gs *entity.GameState, empires map[int64]*domain.Empire) {
	ids := append([]int64(nil), gs.BotIds...)
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	for _, id := range ids {
		bot := empires[id]
		if bot == nil || bot.Defeated {
			continue
		}
		empires[id] = s.runBotPlan(ctx, id, bot)
	}
}

func (s *RoundService) runBotPlan(ctx context.Context, id int64, bot *domain.Empire) *domain.Empire {
	for bot.TurnsRemaining > 0 {
		progressed := false
		for _, step := range basic.BasicConf.Bot.Plan {
			if bot.TurnsRemaining <= 0 {
				break
			}
			bot = s.botSellSurplus(ctx, id, bot)

			turns := step.Turns
			if turns > bot.TurnsRemaining {
				turns = bot.TurnsRemaining
			}
			res, err := s.ops.ApplyAction(ctx, bot, step.Action, turns, app.ActionParams{})
			if err != nil {
				s.log.Warn("bot action rejected",
					zap.Int64("empire_id", id), zap.String("action", step.Action), zap.Error(err))
				return bot
			}
			bot = res.Empire
			if res.TurnsSpent > 0 {
				progressed = true
			}
			// 提前停（断粮/断贷）换下一个行动接着试
		}
		if !progressed {
			break
		}
	}
	return bot
}

// botSellSurplus 把保底之上的余粮按私市价出掉。卖不掉不致命，记日志继续。
func (s *RoundService) botSellSurplus(ctx context.Context, id int64, bot *domain.Empire) *domain.Empire {
	surplus := bot.Resources.Food - basic.BasicConf.Bot.FoodReserve
	if surplus <= 0 {
		return bot
	}
	private := &domain.MarketState{Phase: domain.PhasePlayer}
	ne, _, err := s.ops.TransactMarket(ctx, bot, private, empiresvc.Trade{
		Kind:     empiresvc.TradeSell,
		Item:     empiresvc.ItemFood,
		Quantity: surplus,
	})
	if err != nil {
		s.log.Warn("bot food sale rejected", zap.Int64("empire_id", id), zap.Error(err))
		return bot
	}
	return ne
}

// AdvanceRound 回合收盘：按 id 序推进每个帝国，然后翻到下一回合玩家期。
// 最后一回合收盘后对局结束，胜者是未判负里身价最高的。
func (s *RoundService) AdvanceRound(ctx context.Context, gs *entity.GameState, empires map[int64]*domain.Empire) {
	nextRound := gs.Round + 1

	ids := make([]int64, 0, len(empires))
	for id := range empires {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	for _, id := range ids {
		empires[id] = s.ops.AdvanceRound(ctx, empires[id], nextRound)
	}

	if gs.Round >= basic.BasicConf.Game.Rounds {
		gs.Finished = true
		gs.Winner = Winner(empires)
		return
	}

	gs.Round = nextRound
	gs.Phase = domain.PhasePlayer
	gs.Market = &domain.MarketState{Phase: domain.PhasePlayer}
}

// Winner 未判负里身价最高者；同身价取 id 小的，保证结果稳定。
func Winner(empires map[int64]*domain.Empire) int64 {
	ids := make([]int64, 0, len(empires))
	for id := range empires {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	var winner int64
	var best int64 = -1
	for _, id := range ids {
		e := empires[id]
		if e == nil || e.Defeated {
			continue
		}
		if e.Networth > best {
			best = e.Networth
			winner = id
		}
	}
	return winner
}
