package controller

import (
	"qa_judge_backend/internal/service"
	"qa_judge_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AssignmentController struct {
	Service *service.JudgeService
}

func NewAssignmentController(svc *service.JudgeService) *AssignmentController {
	return &AssignmentController{Service: svc}
}

// @Summary 获取模板的 Judge 分配
// @Tags Judge分配
// @Produce json
// @Param id path string true "模板 ID"
// @Success 200 {object} util.Response
// @Router /api/question-templates/{id}/assignments [get]
func (c *AssignmentController) ListForTemplate(ctx *gin.Context) {
	assignments, err := c.Service.ListAssignments(ctx.Param("id"))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, assignments)
}

type setAssignmentsRequest struct {
	JudgeIDs []string `json:"judgeIds"`
}

// @Summary 整体替换模板的 Judge 分配
// @Description 先删后插，空数组表示清空该模板的全部分配
// @Tags Judge分配
// @Accept json
// @Produce json
// @Param id path string true "模板 ID"
// @Param body body setAssignmentsRequest true "Judge ID 列表"
// @Success 200 {object} util.Response
// @Router /api/question-templates/{id}/assignments [put]
func (c *AssignmentController) ReplaceForTemplate(ctx *gin.Context) {
	var req setAssignmentsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if err := c.Service.SetAssignmentsForTemplate(ctx.Param("id"), req.JudgeIDs); err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, nil)
}
