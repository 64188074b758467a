package controller

import (
	"errors"

	"qa_judge_backend/internal/service"
	"qa_judge_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type JudgingController struct {
	Service *service.JudgingService
}

func NewJudgingController(svc *service.JudgingService) *JudgingController {
	return &JudgingController{Service: svc}
}

// @Summary 运行评审流水线
// @Description 对指定 queue 扇出 (question × judge) 任务并串行执行；部分失败不报错，计数与失败原因在响应体中
// @Tags 评审
// @Produce json
// @Param queueId path string true "Queue 标签"
// @Success 200 {object} util.Response
// @Router /api/queues/{queueId}/run [post]
func (c *JudgingController) Run(ctx *gin.Context) {
	queueID := ctx.Param("queueId")
	if queueID == "" {
		util.BadRequest(ctx, util.ErrEmptyQueueID.Error())
		return
	}

	result, err := c.Service.RunJudges(ctx.Request.Context(), queueID)
	if err != nil {
		// 配置级前置错误与运行期任务失败分开呈现
		if errors.Is(err, util.ErrMissingAPIKey) {
			util.Error(ctx, 500, err.Error())
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, result)
}

// @Summary 评审预检诊断
// @Description 只读检查：回答「为什么 planned 会是 0」，含各环节计数与提示消息
// @Tags 评审
// @Produce json
// @Param queueId path string true "Queue 标签"
// @Success 200 {object} util.Response
// @Router /api/queues/{queueId}/diagnostics [get]
func (c *JudgingController) Diagnostics(ctx *gin.Context) {
	queueID := ctx.Param("queueId")
	if queueID == "" {
		util.BadRequest(ctx, util.ErrEmptyQueueID.Error())
		return
	}

	util.Success(ctx, c.Service.Diagnostics(ctx.Request.Context(), queueID))
}
