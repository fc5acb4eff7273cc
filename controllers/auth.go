package controllers

// auth 身份认证 -包含各种对应路由的操作函数
import (
	"net/http"

	"github.com/Tarrras/CurrencyDashboard/config"
	"github.com/Tarrras/CurrencyDashboard/global"
	"github.com/Tarrras/CurrencyDashboard/models"
	"github.com/Tarrras/CurrencyDashboard/utils"

	"github.com/gin-gonic/gin"
)

// Register godoc
// @Summary     注册新用户
// @Tags        Auth
// @Accept      json
// @Produce     json
// @Success     200   {object}  map[string]string
// @Router      /auth/register [post]
func Register(c *gin.Context) {
	var user models.Users
	if err := c.ShouldBindJSON(&user); err != nil { // 请求体是Body，对应的数据传入user中
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !config.AllowLogin(user.Username) { // 注册也走同一个限流桶
		c.JSON(http.StatusTooManyRequests, gin.H{"error": "too many attempts, slow down"})
		return
	}
	hashedPwd, err := utils.HashPassword(user.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	user.Password = hashedPwd
	if err := global.DB.Create(&user).Error; err != nil {
		// 用户名唯一键冲突会走到这里
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	token, err := utils.GenerateJWT(user.Username)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	utils.SetAuthCookie(c, token)
	c.JSON(http.StatusOK, gin.H{"token": token}) //返回token数据-标明创建成功
}

// Login godoc
// @Summary     登录
// @Tags        Auth
// @Accept      json
// @Produce     json
// @Success     200   {object}  map[string]string
// @Router      /auth/login [post]
func Login(c *gin.Context) {
	var input struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !config.AllowLogin(input.Username) {
		c.JSON(http.StatusTooManyRequests, gin.H{"error": "too many attempts, slow down"})
		return
	}
	var u models.Users
	if err := global.DB.Where("username = ?", input.Username).First(&u).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid username or password"})
		return
	}
	if !utils.CheckPassword(u.Password, input.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid username or password"})
		return
	}
	token, err := utils.GenerateJWT(u.Username)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	utils.SetAuthCookie(c, token)
	c.JSON(http.StatusOK, gin.H{"token": token})
}

// Logout 清理cookie和本地缓存
func Logout(c *gin.Context) {
	if username := c.GetString("username"); username != "" {
		config.ClearUserCache(username)
	}
	utils.ClearAuthCookie(c)
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// GetUserName 展示当前界面的用户名称
func GetUserName(c *gin.Context) {
	name, flag := c.Get("username")
	if flag {
		c.JSON(http.StatusOK, gin.H{"username": name})
	} else {
		c.JSON(http.StatusOK, gin.H{"username": "unknown"})
	}
}
