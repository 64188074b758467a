package controller

import (
	"qa_judge_backend/internal/repository"
	"qa_judge_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type EvaluationController struct {
	Repo *repository.EvaluationRepository
}

func NewEvaluationController(repo *repository.EvaluationRepository) *EvaluationController {
	return &EvaluationController{Repo: repo}
}

// @Summary 获取 queue 的评审结果
// @Tags 评审结果
// @Produce json
// @Param queueId path string true "Queue 标签"
// @Success 200 {object} util.Response
// @Router /api/queues/{queueId}/evaluations [get]
func (c *EvaluationController) ListByQueue(ctx *gin.Context) {
	evaluations, err := c.Repo.ListByQueue(ctx.Param("queueId"))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, evaluations)
}

// @Summary 获取 submission 的评审结果
// @Tags 评审结果
// @Produce json
// @Param id path string true "Submission ID"
// @Success 200 {object} util.Response
// @Router /api/submissions/{id}/evaluations [get]
func (c *EvaluationController) ListBySubmission(ctx *gin.Context) {
	evaluations, err := c.Repo.ListBySubmission(ctx.Param("id"))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, evaluations)
}
