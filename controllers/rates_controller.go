package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RefreshRates godoc
// @Summary     手动刷新已启用资产的汇率
// @Tags        Exchange
// @Security    Bearer
// @Produce     json
// @Success     200   {object}  map[string]interface{}
// @Router      /rates/refresh [post]
func RefreshRates(c *gin.Context) {
	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := repo.RefreshRates(ctx); err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"ok":           true,
		"base":         repo.BaseCurrency(),
		"last_refresh": repo.LastRefresh(),
	})
}
