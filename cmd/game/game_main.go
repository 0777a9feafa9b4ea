package main

import (
	"context"
	"errors"
	"fmt"
	nethttp "net/http"
	"os/signal"
	"syscall"
	"time"

	empiremongo "EraRealms/internal/empire/infra/persistence/mongodb"
	empiremysql "EraRealms/internal/empire/infra/persistence/mysql"
	gameactors "EraRealms/internal/game/actors"
	gamemongo "EraRealms/internal/game/infra/persistence/mongodb"
	"EraRealms/internal/game/interfaces"
	gamesvc "EraRealms/internal/game/service"
	"EraRealms/internal/shared/gameconfig/advisor"
	"EraRealms/internal/shared/gameconfig/basic"
	"EraRealms/internal/shared/gameconfig/era"
	"EraRealms/internal/shared/gameconfig/policy"
	"EraRealms/internal/shared/gameconfig/race"
	"EraRealms/internal/shared/gameconfig/spell"
	"EraRealms/internal/shared/gameconfig/unit"
	"EraRealms/internal/shared/infrastructure/db"
	sharedmongo "EraRealms/internal/shared/infrastructure/mongo"
	"EraRealms/internal/shared/logs"
	"EraRealms/internal/shared/serverconfig"
	transporthttp "EraRealms/internal/shared/transport/http"
	"EraRealms/internal/shared/utils"
	empireapp "EraRealms/internal/empire/app"
	"EraRealms/modules/kit/logx"

	protoactor "github.com/asynkron/protoactor-go/actor"
	"go.uber.org/zap"
)

const managerActorName = "games"

func main() {
	serverconfig.Load()
	if err := logs.Init("game", serverconfig.Conf.Log); err != nil {
		panic(err)
	}
	logs.Info("conf", zap.Any("conf", serverconfig.Conf))

	loadGameConfig()

	gameHost := serverconfig.Conf.GameServer.Host
	if gameHost == "" {
		gameHost = "0.0.0.0"
	}
	gameServerAddr := fmt.Sprintf("%s:%d", gameHost, serverconfig.Conf.GameServer.Port)

	gormDB, err := db.Open(serverconfig.Conf.MySQL)
	if err != nil {
		logs.Fatal("open db failed", zap.Error(err))
	}

	mongoClient, err := sharedmongo.Open(serverconfig.Conf.MongoDB, logs.Logger())
	if err != nil {
		logs.Fatal("open mongodb failed", zap.Error(err))
	}
	defer func() {
		_ = mongoClient.Disconnect(context.Background())
	}()
	mongoDB := mongoClient.Database(serverconfig.Conf.MongoDB.Database)

	sf, err := utils.NewSnowflake(int64(serverconfig.Conf.Logic.ServerID))
	if err != nil {
		logs.Fatal("init snowflake failed", zap.Error(err))
	}

	baseLogger := logx.NewZapLogger(logs.Logger())
	ops := empireapp.NewOpsService(baseLogger)
	archive := empiremysql.NewArchiveRepo(gormDB)

	deps := gameactors.Deps{
		GameRepo:   gamemongo.NewGameRepo(mongoDB),
		EmpireRepo: empiremongo.NewEmpireRepo(mongoDB),
		Archive:    archive,
		Ops:        ops,
		Rounds:     gamesvc.NewRoundService(ops, baseLogger),
		IdGen:      sf.NextID,
		Seed:       serverconfig.Conf.Logic.RandSeed,
		Log:        baseLogger,
	}

	system := protoactor.NewActorSystem()
	root := system.Root
	props := protoactor.PropsFromProducer(func() protoactor.Actor {
		return gameactors.NewManagerActor(deps)
	})
	managerPID, err := root.SpawnNamed(props, managerActorName)
	if err != nil {
		logs.Fatal("spawn game manager actor failed", zap.Error(err))
	}
	logs.Info("game manager actor started", zap.String("pid", managerPID.String()))

	httpServer := transporthttp.NewHttpServer(gameServerAddr, nil, baseLogger)
	interfaces.New(root, managerPID, archive, baseLogger).HttpRegister(httpServer.Group())

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logs.Info("game server started", zap.String("addr", gameServerAddr))
		if err := httpServer.Start(); err != nil && !errors.Is(err, nethttp.ErrServerClosed) {
			errCh <- fmt.Errorf("game server start failed: %w", err)
			return
		}
		errCh <- nil
	}()

	select {
	case <-ctx.Done():
		logs.Info("收到退出信号，准备优雅退出")
	case err := <-errCh:
		if err != nil {
			logs.Error("服务异常退出", zap.Error(err))
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = httpServer.Shutdown(shutdownCtx)

	// 先停 HTTP 再停 actor：停 actor 会触发各对局的收尾落盘。
	system.Shutdown()
}

func loadGameConfig() {
	basic.Load()
	race.Load()
	era.Load()
	unit.Load()
	spell.Load()
	advisor.Load()
	policy.Load()

	// 运维配置里的机器人数量优先于玩法表，便于小环境联调。
	if n := serverconfig.Conf.Logic.BotCount; n > 0 {
		basic.BasicConf.Bot.Count = n
	}
}
