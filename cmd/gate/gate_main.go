package main

import (
	"context"
	"errors"
	"fmt"
	nethttp "net/http"
	"os/signal"
	"syscall"
	"time"

	"EraRealms/internal/gate/infra/upstream"
	"EraRealms/internal/gate/interfaces"
	"EraRealms/internal/shared/logs"
	"EraRealms/internal/shared/serverconfig"
	"EraRealms/internal/shared/session"
	transporthttp "EraRealms/internal/shared/transport/http"
	"EraRealms/internal/shared/transport/ws"
	"EraRealms/modules/kit/logx"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	serverconfig.Load()
	if err := logs.Init("gate", serverconfig.Conf.Log); err != nil {
		panic(err)
	}
	logs.Info("conf", zap.Any("conf", serverconfig.Conf))

	serverConfig := serverconfig.Conf.GateServer
	gateHost := serverConfig.Host
	if gateHost == "" {
		gateHost = "0.0.0.0"
	}
	gateServerAddr := fmt.Sprintf("%s:%d", gateHost, serverConfig.Port)

	loginProxy := serverConfig.LoginProxy
	if loginProxy == "" {
		loginProxy = fmt.Sprintf("http://127.0.0.1:%d", serverconfig.Conf.LoginServer.Port)
	}
	gameProxy := serverConfig.GameProxy
	if gameProxy == "" {
		gameProxy = fmt.Sprintf("http://127.0.0.1:%d", serverconfig.Conf.GameServer.Port)
	}

	sessMgr := session.NewSessMgr()
	baseLogger := logx.NewZapLogger(logs.Logger())
	wsRouter := ws.NewRouter(baseLogger)

	gateModule := interfaces.New(
		sessMgr,
		upstream.NewLoginClient(loginProxy),
		upstream.NewGameClient(gameProxy),
		baseLogger,
	)
	wsModules := []ws.Registrar{
		gateModule,
	}
	for _, m := range wsModules {
		m.WsRegister(wsRouter)
	}

	httpServer := transporthttp.NewHttpServer(gateServerAddr, nil, baseLogger)
	httpModules := []transporthttp.Registrar{
		gateModule,
	}
	for _, m := range httpModules {
		m.HttpRegister(httpServer.Group())
	}

	wsServer := ws.NewServer(wsRouter, baseLogger)
	httpServer.Engine().Any("/ws", gin.WrapH(wsServer))
	httpServer.Engine().Any("/ws/*any", gin.WrapH(wsServer))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logs.Info("gate server started",
			zap.String("addr", gateServerAddr),
			zap.String("login_proxy", loginProxy),
			zap.String("game_proxy", gameProxy),
		)
		if err := httpServer.Start(); err != nil && !errors.Is(err, nethttp.ErrServerClosed) {
			errCh <- fmt.Errorf("gate server start failed: %w", err)
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
