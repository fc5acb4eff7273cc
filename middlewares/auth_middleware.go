package middlewares

import (
	"net/http"
	"strings"

	"github.com/Tarrras/CurrencyDashboard/config"
	"github.com/Tarrras/CurrencyDashboard/global"
	"github.com/Tarrras/CurrencyDashboard/utils"

	"github.com/gin-gonic/gin"
)

// 自定义中间件-先查 Header 再查 Cookie
func AuthMiddleWare() gin.HandlerFunc { //返回的是gin下的函数类型
	return func(c *gin.Context) {
		token := strings.TrimSpace(c.GetHeader("Authorization")) // 这里的键是Authorization
		if token == "" {
			if ck, err := c.Cookie(utils.CookieName); err == nil {
				token = ck
			}
		}
		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			c.Abort()
			return
		}
		username, err := utils.ParseJWT(token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			c.Abort()
			return
		}
		// 先走本地LRU，未命中再查库
		u, ok := config.LocalUserCache.Get(username)
		if !ok {
			if err := global.DB.Select("id", "username").
				Where("username = ?", username).
				First(&u).Error; err != nil {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
				c.Abort()
				return
			}
			config.LocalUserCache.Add(username, u)
		}
		c.Set("user_id", u.ID)
		c.Set("username", username)
		c.Next() //调用后面的处理函数
	}
}
