package utils

// 登录态相关的辅助工具函数
import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/Tarrras/CurrencyDashboard/config"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const (
	cipher_number = 12 //bcrypt cost
	CookieName    = "Authorization"
)

func HashPassword(pwd string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(pwd), cipher_number)
	return string(hash), err
}

func CheckPassword(hash, pwd string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(pwd)) == nil
}

func secret() []byte {
	if config.AppConfig != nil && config.AppConfig.Auth.Secret != "" {
		return []byte(config.AppConfig.Auth.Secret)
	}
	return []byte("secret")
}

func tokenTTL() time.Duration {
	hours := 72
	if config.AppConfig != nil && config.AppConfig.Auth.TokenTTLHours > 0 {
		hours = config.AppConfig.Auth.TokenTTLHours
	}
	return time.Duration(hours) * time.Hour
}

func GenerateJWT(username string) (string, error) {
	claims := jwt.MapClaims{
		"username": username,
		"exp":      time.Now().Add(tokenTTL()).Unix(), // 过期时间（秒）
		"iat":      time.Now().Unix(),                 // 签发时间
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString(secret())
	return "Bearer " + signedToken, err // 注意 Bearer 后面要有空格
}

// ParseJWT 兼容带不带 "Bearer " 前缀两种写法
func ParseJWT(tk string) (string, error) {
	tk = strings.TrimSpace(tk)
	if low := strings.ToLower(tk); strings.HasPrefix(low, "bearer ") {
		tk = strings.TrimSpace(tk[7:])
	}
	if tk == "" {
		return "", errors.New("empty token")
	}
	token, err := jwt.Parse(tk, func(token *jwt.Token) (interface{}, error) {
		// 固定算法族
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenUnverifiable
		}
		return secret(), nil
	})
	if err != nil {
		return "", err
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", jwt.ErrTokenInvalidClaims
	}
	username, _ := claims["username"].(string)
	if username == "" {
		return "", errors.New("token missing username")
	}
	return username, nil
}

func SetAuthCookie(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteLaxMode) // 防大多数 CSRF，站内导航会带上
	// dev 下 secure=false；生产 https 请设为 true
	c.SetCookie(CookieName, token, int(tokenTTL().Seconds()), "/", "", false, true) // HttpOnly
}

func ClearAuthCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(CookieName, "", -1, "/", "", false, true) //手动设置为空
}
