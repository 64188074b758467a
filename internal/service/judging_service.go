package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"qa_judge_backend/internal/config"
	"qa_judge_backend/internal/model"
	"qa_judge_backend/internal/util"
	"qa_judge_backend/pkg/logger"
	"qa_judge_backend/pkg/monitoring"

	"go.uber.org/zap"
)

const (
	// DefaultModel Judge 未配置模型名时的回退模型
	DefaultModel = "gpt-4o-mini"

	// DefaultRubric Judge 未配置 prompt 时的回退评审准则
	DefaultRubric = `Evaluate the answer. Return JSON: { "verdict": "pass"|"fail"|"inconclusive", "reasoning": "..." }`

	userPromptTemplate = "Question: %s\n\nUser Answer: %s\n\nRespond with JSON only: { \"verdict\": \"pass\" | \"fail\" | \"inconclusive\", \"reasoning\": \"...\" }"
)

// 贪婪匹配首个 { 到最后一个 }，模型答复里夹杂的说明文字由此剥掉
var jsonObjectPattern = regexp.MustCompile(`(?s)\{.*\}`)

type submissionQueueStore interface {
	ListByQueueID(queueID string) ([]model.Submission, error)
}

type questionLister interface {
	ListBySubmission(submissionID string) ([]model.Question, error)
}

type answerLister interface {
	ListBySubmission(submissionID string) ([]model.Answer, error)
}

type judgeLister interface {
	List() ([]model.Judge, error)
}

type assignmentLister interface {
	ListByTemplate(templateID string) ([]model.JudgeAssignment, error)
}

type evaluationCreator interface {
	Create(e *model.Evaluation) error
}

type chatClient interface {
	Chat(ctx context.Context, system, user, model string) (string, error)
}

// JudgingService 评审编排核心：Resolve → Fan-out → Execute → Aggregate。
// 任务严格按扇出顺序串行执行；单任务失败只计数并记录原因，不中断批次。
type JudgingService struct {
	aiCfg       config.AIConfig
	chat        chatClient
	submissions submissionQueueStore
	questions   questionLister
	answers     answerLister
	judges      judgeLister
	assignments assignmentLister
	evaluations evaluationCreator
}

func NewJudgingService(
	aiCfg config.AIConfig,
	chat chatClient,
	submissions submissionQueueStore,
	questions questionLister,
	answers answerLister,
	judges judgeLister,
	assignments assignmentLister,
	evaluations evaluationCreator,
) *JudgingService {
	return &JudgingService{
		aiCfg:       aiCfg,
		chat:        chat,
		submissions: submissions,
		questions:   questions,
		answers:     answers,
		judges:      judges,
		assignments: assignments,
		evaluations: evaluations,
	}
}

// UpdateConfig 配置热更新回调用
func (s *JudgingService) UpdateConfig(cfg config.AIConfig) {
	s.aiCfg = cfg
}

type RunResult struct {
	Planned        int            `json:"planned"`
	Completed      int            `json:"completed"`
	Failed         int            `json:"failed"`
	FailureReasons []string       `json:"failureReasons,omitempty"`
	Diagnostic     *RunDiagnostic `json:"diagnostic,omitempty"`
}

type RunDiagnostic struct {
	SubmissionsCount          int    `json:"submissionsCount"`
	QuestionsWithAnswersCount int    `json:"questionsWithAnswersCount"`
	TotalJudgeAssignments     int    `json:"totalJudgeAssignments"`
	ActiveJudgesCount         int    `json:"activeJudgesCount"`
	Message                   string `json:"message"`
}

type judgeTask struct {
	submissionID string
	questionID   string
	judgeID      string
	questionText string
	userAnswer   string
	systemRubric string
	model        string
}

type judgeOutput struct {
	verdict   string
	reasoning string
}

// parseJudgeOutput 把模型的自由文本答复解析成结构化判定。
// 模型的三元词汇（pass/fail/inconclusive）在 mapVerdict 里映射到持久化枚举。
func parseJudgeOutput(text string) (*judgeOutput, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil, errors.New("empty response from model")
	}

	match := jsonObjectPattern.FindString(trimmed)
	if match == "" {
		return nil, errors.New("no JSON found in response")
	}

	var obj map[string]interface{}
	if err := json.Unmarshal([]byte(match), &obj); err != nil {
		return nil, fmt.Errorf("invalid JSON in response: %v", err)
	}

	verdict, _ := obj["verdict"].(string)
	switch verdict {
	case "pass", "fail", "inconclusive":
	default:
		return nil, fmt.Errorf("invalid verdict: %v", obj["verdict"])
	}

	// reasoning 缺失或非字符串时一律按空串处理
	reasoning, _ := obj["reasoning"].(string)

	return &judgeOutput{verdict: verdict, reasoning: reasoning}, nil
}

// mapVerdict 三元模型词汇 → 四元持久化枚举；pending 不会由该路径产出
func mapVerdict(v string) model.Verdict {
	if v == "inconclusive" {
		return model.VerdictPartial
	}
	return model.Verdict(v)
}

// Diagnostics 只读预检，回答「为什么 planned 是 0（或很小）」。
// 注意 totalJudgeAssignments 是跨题目的原始求和，不按模板去重：
// 一个模板挂在 N 道题上就会被计 N 次；message 里的任务数估算
// （答题数 × 分配数）也因此只是近似值，不等于真实 planned。
func (s *JudgingService) Diagnostics(ctx context.Context, queueID string) *RunDiagnostic {
	subs, _ := s.submissions.ListByQueueID(strings.TrimSpace(queueID))
	if len(subs) == 0 {
		return &RunDiagnostic{Message: "无 submissions"}
	}

	judges, _ := s.judges.List()
	activeCount := 0
	for _, j := range judges {
		if j.Active {
			activeCount++
		}
	}

	questionsWithAnswers := 0
	totalAssignments := 0

	for _, sub := range subs {
		qs, _ := s.questions.ListBySubmission(sub.ID)
		ans, _ := s.answers.ListBySubmission(sub.ID)
		for _, q := range qs {
			answer := findAnswer(ans, q.ID)
			if answer == nil || answer.Content == "" {
				continue
			}
			questionsWithAnswers++
			assignments, _ := s.assignments.ListByTemplate(q.QuestionTemplateID)
			totalAssignments += len(assignments)
		}
	}

	var message string
	switch {
	case activeCount == 0:
		message = "无 active Judge，请在 Judges 页面创建"
	case questionsWithAnswers == 0:
		message = "无带答案的 question"
	case totalAssignments == 0:
		message = "无 Judge 分配，请为每题选择 Judge 并点击「保存」"
	default:
		message = fmt.Sprintf("可运行 %d 题 × 分配数 = %d 个任务", questionsWithAnswers, totalAssignments)
	}

	return &RunDiagnostic{
		SubmissionsCount:          len(subs),
		QuestionsWithAnswersCount: questionsWithAnswers,
		TotalJudgeAssignments:     totalAssignments,
		ActiveJudgesCount:         activeCount,
		Message:                   message,
	}
}

// RunJudges 对一个 queue 执行完整评审流水线。
// 部分失败不抛错——planned/completed/failed 与去重后的失败原因都在返回值里；
// 只有前置条件（缺 LLM 凭证）和 submission 拉取失败才返回 error。
func (s *JudgingService) RunJudges(ctx context.Context, queueID string) (*RunResult, error) {
	if s.aiCfg.APIKey == "" {
		return nil, util.ErrMissingAPIKey
	}

	diagnostic := s.Diagnostics(ctx, queueID)

	subs, err := s.submissions.ListByQueueID(strings.TrimSpace(queueID))
	if err != nil {
		return nil, err
	}
	if len(subs) == 0 {
		return &RunResult{Diagnostic: diagnostic}, nil
	}

	judges, err := s.judges.List()
	if err != nil {
		return nil, err
	}
	judgeMap := make(map[string]*model.Judge, len(judges))
	for i := range judges {
		judgeMap[judges[i].ID] = &judges[i]
	}

	// Fan-out：(有答案的 question) × (该模板上 active Judge 的分配)
	var tasks []judgeTask
	for _, sub := range subs {
		qs, _ := s.questions.ListBySubmission(sub.ID)
		ans, _ := s.answers.ListBySubmission(sub.ID)
		for _, q := range qs {
			answer := findAnswer(ans, q.ID)
			if answer == nil || answer.Content == "" {
				continue
			}
			assignments, _ := s.assignments.ListByTemplate(q.QuestionTemplateID)
			for _, a := range assignments {
				judge, ok := judgeMap[a.JudgeID]
				if !ok || !judge.Active {
					continue
				}

				rubric := DefaultRubric
				if judge.Prompt != nil && strings.TrimSpace(*judge.Prompt) != "" {
					rubric = strings.TrimSpace(*judge.Prompt)
				}
				modelName := DefaultModel
				if judge.ModelName != nil && strings.TrimSpace(*judge.ModelName) != "" {
					modelName = strings.TrimSpace(*judge.ModelName)
				}

				tasks = append(tasks, judgeTask{
					submissionID: sub.ID,
					questionID:   q.ID,
					judgeID:      judge.ID,
					questionText: q.Content,
					userAnswer:   answer.Content,
					systemRubric: rubric,
					model:        modelName,
				})
			}
		}
	}

	logger.Log.Info("judging run planned",
		zap.String("queueId", queueID),
		zap.Int("tasks", len(tasks)),
	)

	// Execute：严格按扇出顺序串行，无重试、无超时、无中途取消
	completed := 0
	failed := 0
	var failureReasons []string
	seenReasons := make(map[string]bool)

	recordFailure := func(err error) {
		failed++
		monitoring.JudgingTaskCounter.WithLabelValues("failed").Inc()
		msg := err.Error()
		if !seenReasons[msg] {
			seenReasons[msg] = true
			failureReasons = append(failureReasons, msg)
		}
	}

	for _, task := range tasks {
		userPrompt := fmt.Sprintf(userPromptTemplate, task.questionText, task.userAnswer)

		raw, err := s.chat.Chat(ctx, task.systemRubric, userPrompt, task.model)
		if err != nil {
			recordFailure(err)
			continue
		}

		output, err := parseJudgeOutput(raw)
		if err != nil {
			recordFailure(err)
			continue
		}

		evaluation := &model.Evaluation{
			SubmissionID: task.submissionID,
			QuestionID:   task.questionID,
			JudgeID:      task.judgeID,
			Verdict:      mapVerdict(output.verdict),
			Reasoning:    output.reasoning,
		}
		if err := s.evaluations.Create(evaluation); err != nil {
			recordFailure(err)
			continue
		}

		completed++
		monitoring.JudgingTaskCounter.WithLabelValues("completed").Inc()
	}

	logger.Log.Info("judging run finished",
		zap.String("queueId", queueID),
		zap.Int("planned", len(tasks)),
		zap.Int("completed", completed),
		zap.Int("failed", failed),
	)

	return &RunResult{
		Planned:        len(tasks),
		Completed:      completed,
		Failed:         failed,
		FailureReasons: failureReasons,
		Diagnostic:     diagnostic,
	}, nil
}

func findAnswer(answers []model.Answer, questionID string) *model.Answer {
	for i := range answers {
		if answers[i].QuestionID == questionID {
			return &answers[i]
		}
	}
	return nil
}
