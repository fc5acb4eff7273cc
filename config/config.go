package config // 建立包

import (
	"fmt"
	"log"

	"github.com/spf13/viper"
)

const Version string = "0.1.0"

type Config struct { //标明这个配置文件是可以全局使用的
	App struct {
		Name string
		Port string
	}
	Database struct {
		Driver               string // mysql 或 sqlite
		Dsn                  string
		MaxIdleConns         int
		MaxOpenConns         int
		ConnMaxLifetimeHours int
	}
	Redis struct {
		Addr     string
		DB       int
		Password string
	}
	Exchange struct {
		BaseURL        string // 汇率 API 根地址
		AccessKey      string // 每个请求都会带上 access_key
		BaseCurrency   string // 固定的基准货币
		RefreshSeconds int    // 自动刷新间隔
		TimeoutSeconds int    // 单次请求超时
		RatePerSecond  int    // 上游限流
	}
	Auth struct {
		Secret        string
		TokenTTLHours int
	}
}

var AppConfig *Config //配置句柄-指针全局可以修改并且避免拷贝

// 使用viper读取配置文件，读不到就全部走默认值
func InitConfig() {
	viper.SetConfigName("config") //无extension
	viper.SetConfigType("yml")
	viper.AddConfigPath("./config")
	setDefaults()
	if err := viper.ReadInConfig(); err != nil {
		log.Printf("Warning: config file not found, using defaults: %v", err)
	}

	AppConfig = &Config{}
	if err := viper.Unmarshal(AppConfig); err != nil { //将配置文件中的内容解析到结构体中
		log.Fatalf("Error unmarshalling config file: %v", err)
	}
	initDB()
	initRedis()
	runMigrations()
	initUserCache(1024)
	ensureCleanupRunning()
	printURL()
}

func setDefaults() {
	viper.SetDefault("app.name", "CurrencyDashboard")
	viper.SetDefault("app.port", ":8080")
	viper.SetDefault("database.driver", "sqlite")
	viper.SetDefault("database.dsn", "dashboard.db")
	viper.SetDefault("database.maxIdleConns", 10)
	viper.SetDefault("database.maxOpenConns", 50)
	viper.SetDefault("database.connMaxLifetimeHours", 1)
	viper.SetDefault("redis.addr", "localhost:6379")
	viper.SetDefault("exchange.baseURL", "https://api.exchangerate.host")
	viper.SetDefault("exchange.baseCurrency", "USD")
	viper.SetDefault("exchange.refreshSeconds", 3)
	viper.SetDefault("exchange.timeoutSeconds", 10)
	viper.SetDefault("exchange.ratePerSecond", 5)
	viper.SetDefault("auth.secret", "secret")
	viper.SetDefault("auth.tokenTTLHours", 72)
}

func GetPort() string {
	if AppConfig == nil || AppConfig.App.Port == "" { //要么配置为空要么端口无
		log.Println("Warning: Port is not set in config file, using default port 8080")
		return ":8080"
	}
	// 确保端口格式正确
	port := AppConfig.App.Port
	if port[0] != ':' {
		port = ":" + port
	}
	return port
}

func printURL() {
	fmt.Printf("Dashboard:http://localhost%s/api/assets\n", GetPort())
}
