package service

import (
	"math/rand"

	"EraRealms/internal/game/entity"
)

// trackedSource 给随机源记账：每取一个数就把对局状态里的计数 +1。
// 对局重放时按计数快进随机流，保证商店掷点、战斗掷点完全一致。
type trackedSource struct {
	src  rand.Source64
	uses *int64
}

func (t *trackedSource) Int63() int64 {
	*t.uses++
	return t.src.Int63()
}

func (t *trackedSource) Uint64() uint64 {
	*t.uses++
	return t.src.Uint64()
}

func (t *trackedSource) Seed(seed int64) {
	t.src.Seed(seed)
}

// GameRand 从对局种子构造 rng，并快进到上次停下的位置。
func GameRand(gs *entity.GameState) *rand.Rand {
	src := rand.NewSource(gs.Seed).(rand.Source64)
	for i := int64(0); i < gs.RandUses; i++ {
		src.Uint64()
	}
	return rand.New(&trackedSource{src: src, uses: &gs.RandUses})
}
