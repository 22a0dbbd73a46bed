package api_router

import (
	"github.com/haierkeys/quick-notes-service/internal/app"
	pkgapp "github.com/haierkeys/quick-notes-service/pkg/app"
	"github.com/haierkeys/quick-notes-service/pkg/code"

	"github.com/gin-gonic/gin"
)

// HealthHandler 健康检查处理器
type HealthHandler struct {
	*Handler
}

// NewHealthHandler 创建健康检查处理器实例
func NewHealthHandler(a *app.App) *HealthHandler {
	return &HealthHandler{Handler: NewHandler(a)}
}

// Check 健康检查接口
// 存储探测失败时 database 字段降级为 disconnected，HTTP 状态保持 200
func (h *HealthHandler) Check(c *gin.Context) {
	health := h.App.NoteService.Health(c.Request.Context(), h.App.Version().Version)

	pkgapp.NewResponse(c).ToResponse(code.SuccessHealth.WithData(health))
}
