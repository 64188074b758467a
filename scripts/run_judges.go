// 手动触发评审流水线脚本
//
// 评审通常通过 HTTP 接口（POST /api/queues/{queueId}/run）触发。
// 此脚本用于不起服务的场景，例如批量补跑历史 queue 或在部署前验证配置。
//
// 用法: go run scripts/run_judges.go -queue <queueId>

package main

import (
	"context"
	"flag"
	"log"
	"os"

	"qa_judge_backend/internal/config"
	"qa_judge_backend/internal/repository"
	"qa_judge_backend/internal/service"
	"qa_judge_backend/pkg/database"
	"qa_judge_backend/pkg/logger"
)

func main() {
	queueID := flag.String("queue", "", "要评审的 queue 标签")
	flag.Parse()

	if *queueID == "" {
		log.Println("用法: go run scripts/run_judges.go -queue <queueId>")
		os.Exit(1)
	}

	cfg, err := config.LoadConfig("configs")
	if err != nil {
		log.Fatalf("无法读取配置文件: %v", err)
	}

	logger.InitLogger(cfg)

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		log.Fatalf("数据库连接失败: %v", err)
	}

	aiService := service.NewAIService(cfg.AI)
	judging := service.NewJudgingService(
		cfg.AI,
		aiService,
		repository.NewSubmissionRepository(db),
		repository.NewQuestionRepository(db),
		repository.NewAnswerRepository(db),
		repository.NewJudgeRepository(db),
		repository.NewJudgeAssignmentRepository(db),
		repository.NewEvaluationRepository(db),
	)

	log.Printf("开始评审 queue %s ...", *queueID)
	result, err := judging.RunJudges(context.Background(), *queueID)
	if err != nil {
		log.Fatalf("评审失败: %v", err)
	}

	log.Printf("完成：planned=%d completed=%d failed=%d", result.Planned, result.Completed, result.Failed)
	for _, reason := range result.FailureReasons {
		log.Printf("失败原因: %s", reason)
	}
	if result.Diagnostic != nil {
		log.Printf("诊断: %s", result.Diagnostic.Message)
	}
}
