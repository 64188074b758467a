package controller

import (
	"qa_judge_backend/internal/repository"
	"qa_judge_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type TemplateController struct {
	Repo *repository.QuestionTemplateRepository
}

func NewTemplateController(repo *repository.QuestionTemplateRepository) *TemplateController {
	return &TemplateController{Repo: repo}
}

// @Summary 获取题目模板列表
// @Tags 题目模板
// @Produce json
// @Success 200 {object} util.Response
// @Router /api/question-templates [get]
func (c *TemplateController) List(ctx *gin.Context) {
	templates, err := c.Repo.List()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, templates)
}
