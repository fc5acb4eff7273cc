package controllers

// websocket 实时推送：连上先发当前快照，之后状态每变一次推一次
import (
	"net/http"

	"github.com/Tarrras/CurrencyDashboard/log"
	"github.com/Tarrras/CurrencyDashboard/state/data"
	"github.com/Tarrras/CurrencyDashboard/utils"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/johnsiilver/boutique"
	"go.uber.org/zap"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true }, // 登录态已在中间件校验过
}

type statePayload struct {
	Base        string      `json:"base"`
	LastUpdated string      `json:"last_updated"`
	Assets      []assetView `json:"assets"`
}

func toPayload(st data.State) statePayload {
	// 推送只关心已启用的资产，和首页保持一致
	enabled := make([]assetView, 0, len(st.Assets))
	for _, a := range st.Assets {
		if a.IsEnabled {
			enabled = append(enabled, toView(a))
		}
	}
	return statePayload{
		Base:        repo.BaseCurrency(),
		LastUpdated: utils.FormatTimestamp(st.LastRefresh),
		Assets:      enabled,
	}
}

// StreamRates godoc
// @Summary     汇率实时流
// @Tags        Exchange
// @Security    Bearer
// @Router      /ws/rates [get]
func StreamRates(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// Upgrade 失败时它自己已经写了响应
		log.L().Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	sig, cancel, err := hub.Store.Subscribe(boutique.Any)
	if err != nil {
		log.L().Error("state subscribe failed", zap.Error(err))
		return
	}
	defer cancel()

	// 新订阅先拿到当前值
	if err := conn.WriteJSON(toPayload(hub.Snapshot())); err != nil {
		return
	}

	// 读循环只为感知客户端断开
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				conn.Close()
				return
			}
		}
	}()

	for s := range sig {
		st := s.State.Data.(data.State)
		if err := conn.WriteJSON(toPayload(st)); err != nil {
			return
		}
	}
}
