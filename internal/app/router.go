package app

import (
	"qa_judge_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers) {
	router.GET("/metrics", monitoring.PrometheusHandler())

	api := router.Group("/api")
	{
		api.GET("/health", c.health.HealthCheck)

		// 导入
		api.POST("/import", c.upload.ImportFile)

		// Queue 与评审
		api.GET("/queues", c.queue.List)
		api.GET("/queues/:queueId/submissions", c.queue.ListSubmissions)
		api.GET("/queues/:queueId/evaluations", c.evaluation.ListByQueue)
		api.GET("/queues/:queueId/diagnostics", c.judging.Diagnostics)
		api.POST("/queues/:queueId/run", c.judging.Run)

		// Submission 维度的结果
		api.GET("/submissions/:id/evaluations", c.evaluation.ListBySubmission)

		// Judge 管理
		api.GET("/judges", c.judge.List)
		api.POST("/judges", c.judge.Create)
		api.GET("/judges/:id", c.judge.Get)
		api.PUT("/judges/:id", c.judge.Update)
		api.DELETE("/judges/:id", c.judge.Deactivate)

		// 题目模板与 Judge 分配
		api.GET("/question-templates", c.template.List)
		api.GET("/question-templates/:id/assignments", c.assignment.ListForTemplate)
		api.PUT("/question-templates/:id/assignments", c.assignment.ReplaceForTemplate)
	}
}
