package controllers

import (
	"context"
	"net/http"
	"strings"

	"github.com/Tarrras/CurrencyDashboard/global"
	"github.com/Tarrras/CurrencyDashboard/models"
	"github.com/Tarrras/CurrencyDashboard/services"
	"github.com/Tarrras/CurrencyDashboard/state"
	"github.com/Tarrras/CurrencyDashboard/utils"

	"github.com/gin-gonic/gin"
)

// 启动时注入一次，处理函数共用
var (
	repo *services.AssetRepository
	hub  *state.Hub
)

func Init(r *services.AssetRepository, h *state.Hub) {
	repo = r
	hub = h
}

// 返回给前端的资产数据-数值字符串化，避免前端精度/地区格式问题
type assetView struct {
	Code    string `json:"code"`
	Name    string `json:"name"`
	Symbol  string `json:"symbol"`
	Rate    string `json:"rate"`
	Change  string `json:"change"`
	Enabled bool   `json:"enabled"`
}

func toView(a models.Asset) assetView {
	return assetView{
		Code:    a.Code,
		Name:    a.Name,
		Symbol:  utils.CurrencySymbol(a.Code),
		Rate:    utils.FormatRate(a.Rate),
		Change:  utils.FormatChange(a.Change),
		Enabled: a.IsEnabled,
	}
}

func toViews(assets []models.Asset) []assetView {
	out := make([]assetView, 0, len(assets))
	for _, a := range assets {
		out = append(out, toView(a))
	}
	return out
}

func reqCtx(c *gin.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request.Context(), global.FetchTimeout)
}

// GetAssets godoc
// @Summary     首页数据：已启用资产 + 最近刷新时间
// @Tags        Assets
// @Security    Bearer
// @Produce     json
// @Success     200   {object}  map[string]interface{}
// @Router      /assets [get]
func GetAssets(c *gin.Context) {
	ctx, cancel := reqCtx(c)
	defer cancel()

	// 首次访问顺手建表，失败不拦截读取（和后台刷新是同一条兜底路径）
	_ = repo.InitializeIfEmpty(ctx)

	assets, err := repo.EnabledAssets(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"base":         repo.BaseCurrency(),
		"last_updated": utils.FormatTimestamp(repo.LastRefresh()),
		"assets":       toViews(assets),
	})
}

// SearchAssets godoc
// @Summary     搜索/浏览页：远端全集与本地状态合并后的列表
// @Tags        Assets
// @Security    Bearer
// @Produce     json
// @Param       query  query  string  false  "按 code 或名称过滤，大小写无关"
// @Success     200   {array}   map[string]interface{}
// @Router      /assets/all [get]
func SearchAssets(c *gin.Context) {
	ctx, cancel := reqCtx(c)
	defer cancel()

	assets, err := repo.GetMergedAssets(ctx, c.Query("query"))
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, toViews(assets))
}

// GetAssetByCode 单个资产
func GetAssetByCode(c *gin.Context) {
	ctx, cancel := reqCtx(c)
	defer cancel()

	code := strings.ToUpper(strings.TrimSpace(c.Param("code")))
	asset, err := repo.AssetByCode(ctx, code)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if asset == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "asset not found: " + code})
		return
	}
	c.JSON(http.StatusOK, toView(*asset))
}

// ToggleAsset godoc
// @Summary     启用/停用资产；启用会立刻拉一次该资产的汇率
// @Tags        Assets
// @Security    Bearer
// @Accept      json
// @Produce     json
// @Param       code  path  string  true  "币种代码"
// @Success     200   {object}  map[string]interface{}
// @Router      /assets/{code}/enabled [put]
func ToggleAsset(c *gin.Context) {
	var input struct {
		Enabled *bool `json:"enabled" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil { //导入请求体数据
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	code := strings.ToUpper(strings.TrimSpace(c.Param("code")))
	if err := repo.ToggleAsset(ctx, code, *input.Enabled); err != nil {
		// 开关已经落库，只是这一次汇率没拿到
		c.JSON(http.StatusBadGateway, gin.H{
			"error":   err.Error(),
			"code":    code,
			"enabled": *input.Enabled,
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "code": code, "enabled": *input.Enabled})
}
