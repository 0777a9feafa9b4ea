package serverconfig

import (
	"EraRealms/internal/shared/config"
	"os"
)

var Conf Config

func Load() {
	wd, err := os.Getwd()
	if err != nil {
		panic(err)
	}
	config.Load(config.FindUpward(wd), &Conf)
	// 环境变量优先；若未设置则回填配置中的 jwt_secret，兼容本地开发场景。
	if os.Getenv("JWT_SECRET") == "" && Conf.JWTSecret != "" {
		_ = os.Setenv("JWT_SECRET", Conf.JWTSecret)
	}
}
