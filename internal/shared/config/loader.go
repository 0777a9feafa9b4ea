package config

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// Load 读取配置文件并反序列化到 out：
// - .json：游戏数值表，一次性读入（encoding/json），表内容错误由调用方校验后 panic
// - 其他（yml 等）：服务配置，走 viper 并监听热更新
func Load(configPath string, out any) {
	if !fileExist(configPath) {
		panic(fmt.Sprintf("config file not exist, configPath=%v", configPath))
	}

	if filepath.Ext(configPath) == ".json" {
		raw, err := os.ReadFile(configPath)
		if err != nil {
			panic(fmt.Errorf("read config %q: %w", configPath, err))
		}
		if err := json.Unmarshal(raw, out); err != nil {
			panic(fmt.Errorf("unmarshal config %q: %w", configPath, err))
		}
		return
	}

	v := viper.New()
	v.SetConfigFile(configPath)
	// todo 确认热更新时并发读取问题
	v.OnConfigChange(func(e fsnotify.Event) {
		log.Println("config file changed:", e.Name)
		if err := v.Unmarshal(out); err != nil {
			log.Printf("viper unmarshal changed config failed, err=%v", err)
		}
	})
	v.WatchConfig()

	if err := v.ReadInConfig(); err != nil {
		panic(err)
	}
	if err := v.Unmarshal(out); err != nil {
		panic(err)
	}
}
