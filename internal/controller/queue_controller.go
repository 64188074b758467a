package controller

import (
	"qa_judge_backend/internal/service"
	"qa_judge_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type QueueController struct {
	Service *service.QueueService
}

func NewQueueController(svc *service.QueueService) *QueueController {
	return &QueueController{Service: svc}
}

// @Summary 获取 queue 列表
// @Description queue 是 submission 上的自由分组标签，列表为去重结果
// @Tags Queue
// @Produce json
// @Success 200 {object} util.Response
// @Router /api/queues [get]
func (c *QueueController) List(ctx *gin.Context) {
	queues, err := c.Service.ListQueues(ctx.Request.Context())
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, queues)
}

// @Summary 获取 queue 下的 submissions
// @Tags Queue
// @Produce json
// @Param queueId path string true "Queue 标签"
// @Success 200 {object} util.Response
// @Router /api/queues/{queueId}/submissions [get]
func (c *QueueController) ListSubmissions(ctx *gin.Context) {
	subs, err := c.Service.ListSubmissions(ctx.Param("queueId"))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, subs)
}
