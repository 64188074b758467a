package controller

import (
	"qa_judge_backend/internal/service"
	"qa_judge_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type JudgeController struct {
	Service *service.JudgeService
}

func NewJudgeController(svc *service.JudgeService) *JudgeController {
	return &JudgeController{Service: svc}
}

// @Summary 创建 Judge
// @Tags Judge管理
// @Accept json
// @Produce json
// @Param body body service.JudgeRequest true "Judge信息"
// @Success 201 {object} util.Response
// @Router /api/judges [post]
func (c *JudgeController) Create(ctx *gin.Context) {
	var req service.JudgeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	judge, err := c.Service.CreateJudge(req)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Created(ctx, judge)
}

// @Summary 获取 Judge 列表
// @Tags Judge管理
// @Produce json
// @Success 200 {object} util.Response
// @Router /api/judges [get]
func (c *JudgeController) List(ctx *gin.Context) {
	judges, err := c.Service.ListJudges()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, judges)
}

// @Summary 获取 Judge 详情
// @Tags Judge管理
// @Produce json
// @Param id path string true "Judge ID"
// @Success 200 {object} util.Response
// @Router /api/judges/{id} [get]
func (c *JudgeController) Get(ctx *gin.Context) {
	judge, err := c.Service.GetJudge(ctx.Param("id"))
	if err != nil {
		util.NotFound(ctx)
		return
	}

	util.Success(ctx, judge)
}

// @Summary 更新 Judge
// @Tags Judge管理
// @Accept json
// @Produce json
// @Param id path string true "Judge ID"
// @Param body body service.JudgeRequest true "Judge信息"
// @Success 200 {object} util.Response
// @Router /api/judges/{id} [put]
func (c *JudgeController) Update(ctx *gin.Context) {
	var req service.JudgeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	judge, err := c.Service.UpdateJudge(ctx.Param("id"), req)
	if err != nil {
		util.NotFound(ctx)
		return
	}

	util.Success(ctx, judge)
}

// @Summary 停用 Judge
// @Description 软停用：不删除历史评审结果和分配，仅排除出后续任务生成
// @Tags Judge管理
// @Produce json
// @Param id path string true "Judge ID"
// @Success 200 {object} util.Response
// @Router /api/judges/{id} [delete]
func (c *JudgeController) Deactivate(ctx *gin.Context) {
	if err := c.Service.DeactivateJudge(ctx.Param("id")); err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, nil)
}
