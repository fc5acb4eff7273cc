package main

import (
	"context"
	"time"

	"github.com/Tarrras/CurrencyDashboard/config"
	"github.com/Tarrras/CurrencyDashboard/controllers"
	"github.com/Tarrras/CurrencyDashboard/global"
	"github.com/Tarrras/CurrencyDashboard/log"
	"github.com/Tarrras/CurrencyDashboard/router"
	"github.com/Tarrras/CurrencyDashboard/services"
	"github.com/Tarrras/CurrencyDashboard/state"

	"go.uber.org/zap"
)

// @title       CurrencyDashboard API
// @version     0.1.0
// @description 汇率看板接口文档
// @BasePath    /api
func main() {
	// 初始化日志
	if err := log.Init(false); err != nil { // false 表示开发模式
		panic(err)
	}
	defer log.Sync()
	log.L().Info("The currency dashboard has started!")

	//配置初始化-只对包里的全局变量初始化
	config.InitConfig()

	// 响应式状态中心
	hub, err := state.New()
	if err != nil {
		log.L().Fatal("state hub init failed", zap.Error(err))
	}

	// 依赖按构造函数显式传入
	ex := config.AppConfig.Exchange
	api := services.NewExchangeAPI(
		ex.BaseURL,
		ex.AccessKey,
		time.Duration(ex.TimeoutSeconds)*time.Second,
		ex.RatePerSecond,
	)
	store := services.NewGormAssetStore(global.DB, hub)
	settings := services.NewRedisSettingsStore(hub)
	repo := services.NewAssetRepository(api, store, settings, ex.BaseCurrency)
	controllers.Init(repo, hub)

	// 周期刷新汇率
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	services.NewRefresher(repo, time.Duration(ex.RefreshSeconds)*time.Second).Start(ctx)

	// 运行时长监控
	monitor := log.NewMonitor()
	monitor.StartMonitor()
	defer monitor.StopMonitor()

	r := router.SetupRouter() // 单独的路由设置
	port := config.GetPort()  // 获取端口-这里config是包名
	if err := r.Run(port); err != nil { // 监听端口并启动服务
		log.L().Fatal("server exited", zap.Error(err))
	}
}
