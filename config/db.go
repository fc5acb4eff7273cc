package config

import (
	"fmt"
	"time"

	"github.com/Tarrras/CurrencyDashboard/global"
	"github.com/Tarrras/CurrencyDashboard/log"
	"github.com/Tarrras/CurrencyDashboard/models"

	"github.com/glebarez/sqlite"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func initDB() { //注意这个是小写只能在当前包使用
	dsn := AppConfig.Database.Dsn
	var (
		db  *gorm.DB
		err error
	)
	// sqlite 便于本地跑通，线上用 mysql
	switch AppConfig.Database.Driver {
	case "mysql":
		db, err = gorm.Open(mysql.Open(dsn), &gorm.Config{})
	default:
		db, err = gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	}
	if err != nil {
		log.L().Fatal("DataBase connection failed",
			zap.Error(err),
			zap.String("driver", AppConfig.Database.Driver),
		)
	}
	sqlDB, err := db.DB()
	if err != nil {
		log.L().Error("DataBase connection failed ,got error:", zap.Error(err))
	}
	sqlDB.SetMaxIdleConns(AppConfig.Database.MaxIdleConns)
	sqlDB.SetMaxOpenConns(AppConfig.Database.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(time.Duration(AppConfig.Database.ConnMaxLifetimeHours) * time.Hour) // 连接到时就断开
	global.DB = db
	fmt.Println("1. DataBase connection success!")
}

func runMigrations() {
	if err := global.DB.AutoMigrate(
		&models.Users{},
		&models.Asset{},
	); err != nil {
		log.L().Error("DataBase migration failed ,got error:", zap.Error(err))
	}
}
