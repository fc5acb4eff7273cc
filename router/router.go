package router

//路由组-分组
import (
	"github.com/Tarrras/CurrencyDashboard/controllers"
	"github.com/Tarrras/CurrencyDashboard/middlewares"

	"github.com/gin-gonic/gin"
)

func SetupRouter() *gin.Engine {
	r := gin.New()
	r.Use(middlewares.GinLogger(), middlewares.GinRecovery())
	mountSwagger(r)

	auth := r.Group("/api/auth") //给出路由组的路径
	auth.POST("/register", controllers.Register)
	auth.POST("/login", controllers.Login)
	auth.POST("/logout", controllers.Logout)

	// 受保护的 API（数据接口，需要登录）
	api := r.Group("/api", middlewares.AuthMiddleWare())
	{
		// 基本信息获取模块
		api.GET("/me", controllers.GetUserName)

		// 资产模块
		api.GET("/assets", controllers.GetAssets)             // 首页：已启用资产
		api.GET("/assets/all", controllers.SearchAssets)      // 搜索/浏览页：合并视图
		api.GET("/assets/:code", controllers.GetAssetByCode)  // 单个资产
		api.PUT("/assets/:code/enabled", controllers.ToggleAsset)

		// 汇率模块
		api.POST("/rates/refresh", controllers.RefreshRates) // 手动刷新
		api.GET("/ws/rates", controllers.StreamRates)        // 实时推送
	}

	return r //返回路由组
}
