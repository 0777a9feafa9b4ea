package main

import (
	"context"
	"errors"
	"fmt"
	nethttp "net/http"
	"os/signal"
	"syscall"
	"time"

	"EraRealms/internal/account/app"
	"EraRealms/internal/account/infra/repo"
	"EraRealms/internal/account/interfaces"
	"EraRealms/internal/shared/infrastructure/db"
	"EraRealms/internal/shared/logs"
	"EraRealms/internal/shared/security"
	"EraRealms/internal/shared/serverconfig"
	transporthttp "EraRealms/internal/shared/transport/http"
	"EraRealms/internal/shared/utils"
	"EraRealms/modules/kit/logx"

	"go.uber.org/zap"
)

func main() {
	serverconfig.Load()
	if err := logs.Init("login", serverconfig.Conf.Log); err != nil {
		panic(err)
	}
	logs.Info("conf", zap.Any("conf", serverconfig.Conf))

	loginServerHost := serverconfig.Conf.LoginServer.Host
	if loginServerHost == "" {
		loginServerHost = "0.0.0.0"
	}
	loginServerAddr := fmt.Sprintf("%s:%d", loginServerHost, serverconfig.Conf.LoginServer.Port)

	gormDB, err := db.Open(serverconfig.Conf.MySQL)
	if err != nil {
		logs.Fatal("open db failed", zap.Error(err))
	}

	baseLogger := logx.NewZapLogger(logs.Logger())
	userService := app.NewUserService(
		repo.NewUserRepo(gormDB),
		security.Password,
		baseLogger,
		repo.NewLoginHistoryRepo(gormDB),
		repo.NewLoginLastRepo(gormDB),
		repo.NewProfileRepo(gormDB),
		utils.RandSeq,
	)

	httpServer := transporthttp.NewHttpServer(loginServerAddr, nil, baseLogger)
	interfaces.New(userService, baseLogger).Register(httpServer.Group())

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logs.Info("login server started", zap.String("addr", loginServerAddr))
		if err := httpServer.Start(); err != nil && !errors.Is(err, nethttp.ErrServerClosed) {
			errCh <- fmt.Errorf("login server start failed: %w", err)
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
}
