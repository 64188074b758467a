package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"qa_judge_backend/internal/model"
	"qa_judge_backend/pkg/logger"

	"go.uber.org/zap"
)

// 导入文档的规范形态。解析阶段只做结构校验，不做任何 I/O；
// 转换（答案拼接、建行）交给 Load。

type ImportAnswer struct {
	Choice    *string `json:"choice,omitempty"`
	Reasoning *string `json:"reasoning,omitempty"`
}

type ImportQuestionData struct {
	ID           string `json:"id"`
	QuestionType string `json:"questionType,omitempty"`
	QuestionText string `json:"questionText"`
}

type ImportQuestion struct {
	Rev  int                `json:"rev,omitempty"`
	Data ImportQuestionData `json:"data"`
}

type ImportSubmission struct {
	QueueID   string                  `json:"queueId"`
	Questions []ImportQuestion        `json:"questions"`
	Answers   map[string]ImportAnswer `json:"answers"`
}

type ImportResult struct {
	SubmissionsCount int      `json:"submissionsCount"`
	QuestionsCount   int      `json:"questionsCount"`
	AnswersCount     int      `json:"answersCount"`
	Errors           []string `json:"errors"`
}

// ParseImportJSON 校验并归一化外部导入文档。结构错误对整次导入是致命的：
// loader 要做一长串顺序写库，先整体校验可以避免纯粹由格式问题造成的半截导入。
func ParseImportJSON(text string) ([]ImportSubmission, error) {
	var root interface{}
	if err := json.Unmarshal([]byte(text), &root); err != nil {
		return nil, fmt.Errorf("invalid JSON: %v", err)
	}

	rawSubs, ok := root.([]interface{})
	if !ok {
		return nil, fmt.Errorf("invalid JSON: root must be an array")
	}

	subs := make([]ImportSubmission, 0, len(rawSubs))
	for i, rawSub := range rawSubs {
		subObj, ok := rawSub.(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("invalid JSON: submissions[%d] must be an object", i)
		}

		queueID, ok := subObj["queueId"].(string)
		if !ok {
			return nil, fmt.Errorf("invalid JSON: submissions[%d].queueId must be a string", i)
		}

		rawQuestions, ok := subObj["questions"].([]interface{})
		if !ok {
			return nil, fmt.Errorf("invalid JSON: submissions[%d].questions must be an array", i)
		}

		sub := ImportSubmission{
			QueueID:   queueID,
			Questions: make([]ImportQuestion, 0, len(rawQuestions)),
			Answers:   map[string]ImportAnswer{},
		}

		for j, rawQ := range rawQuestions {
			qObj, ok := rawQ.(map[string]interface{})
			if !ok {
				return nil, fmt.Errorf("invalid JSON: submissions[%d].questions[%d] must be an object", i, j)
			}
			dataObj, ok := qObj["data"].(map[string]interface{})
			if !ok {
				return nil, fmt.Errorf("invalid JSON: submissions[%d].questions[%d].data must be an object", i, j)
			}
			id, ok := dataObj["id"].(string)
			if !ok {
				return nil, fmt.Errorf("invalid JSON: submissions[%d].questions[%d].data.id must be a string", i, j)
			}
			questionText, ok := dataObj["questionText"].(string)
			if !ok {
				return nil, fmt.Errorf("invalid JSON: submissions[%d].questions[%d].data.questionText must be a string", i, j)
			}

			q := ImportQuestion{Data: ImportQuestionData{ID: id, QuestionText: questionText}}
			if qt, ok := dataObj["questionType"].(string); ok {
				q.Data.QuestionType = qt
			}
			if rev, ok := qObj["rev"].(float64); ok {
				q.Rev = int(rev)
			}
			sub.Questions = append(sub.Questions, q)
		}

		if rawAnswers, present := subObj["answers"]; present {
			ansObj, ok := rawAnswers.(map[string]interface{})
			if !ok {
				return nil, fmt.Errorf("invalid JSON: submissions[%d].answers must be an object", i)
			}
			for key, rawAns := range ansObj {
				ans := ImportAnswer{}
				if ansMap, ok := rawAns.(map[string]interface{}); ok {
					if choice, ok := ansMap["choice"].(string); ok {
						ans.Choice = &choice
					}
					if reasoning, ok := ansMap["reasoning"].(string); ok {
						ans.Reasoning = &reasoning
					}
				}
				sub.Answers[key] = ans
			}
		}

		subs = append(subs, sub)
	}

	return subs, nil
}

// FormatAnswerContent 把自由形态的答案对象压成一条内容串：
// "choice: <c>, reasoning: <r>"，缺失的部分省略，全缺为空串。
func FormatAnswerContent(ans *ImportAnswer) string {
	if ans == nil {
		return ""
	}
	var parts []string
	if ans.Choice != nil && *ans.Choice != "" {
		parts = append(parts, "choice: "+*ans.Choice)
	}
	if ans.Reasoning != nil && *ans.Reasoning != "" {
		parts = append(parts, "reasoning: "+*ans.Reasoning)
	}
	return strings.Join(parts, ", ")
}

// loader 依赖的最小写库面，仓库层的具体实现直接满足
type submissionCreator interface {
	Create(s *model.Submission) error
}

type templateCreator interface {
	Create(t *model.QuestionTemplate) error
}

type questionCreator interface {
	Create(q *model.Question) error
}

type answerCreator interface {
	Create(a *model.Answer) error
}

type queueCacheInvalidator interface {
	InvalidateCache(ctx context.Context)
}

type ImportService struct {
	submissions submissionCreator
	templates   templateCreator
	questions   questionCreator
	answers     answerCreator
	queueCache  queueCacheInvalidator
}

func NewImportService(
	submissions submissionCreator,
	templates templateCreator,
	questions questionCreator,
	answers answerCreator,
	queueCache queueCacheInvalidator,
) *ImportService {
	return &ImportService{
		submissions: submissions,
		templates:   templates,
		questions:   questions,
		answers:     answers,
		queueCache:  queueCache,
	}
}

// Load 把校验过的导入数据落库。单项失败只记录消息并跳过，不中断整体，
// 也绝不向调用方抛错——部分失败信息都在返回值里。
func (s *ImportService) Load(ctx context.Context, data []ImportSubmission) *ImportResult {
	result := &ImportResult{Errors: []string{}}

	for _, sub := range data {
		submission := &model.Submission{QueueID: sub.QueueID}
		if err := s.submissions.Create(submission); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("Submission %s: %v", sub.QueueID, err))
			continue
		}
		result.SubmissionsCount++

		for _, q := range sub.Questions {
			template := &model.QuestionTemplate{Content: q.Data.QuestionText}
			if err := s.templates.Create(template); err != nil {
				result.Errors = append(result.Errors, fmt.Sprintf("Question template: %v", err))
				continue
			}

			question := &model.Question{
				SubmissionID:       submission.ID,
				QuestionTemplateID: template.ID,
				Content:            q.Data.QuestionText,
			}
			if err := s.questions.Create(question); err != nil {
				result.Errors = append(result.Errors, fmt.Sprintf("Question: %v", err))
				continue
			}
			result.QuestionsCount++

			var content string
			if ans, ok := sub.Answers[q.Data.ID]; ok {
				content = FormatAnswerContent(&ans)
			}
			answer := &model.Answer{
				SubmissionID: submission.ID,
				QuestionID:   question.ID,
				Content:      content,
			}
			if err := s.answers.Create(answer); err != nil {
				result.Errors = append(result.Errors, fmt.Sprintf("Answer: %v", err))
				continue
			}
			result.AnswersCount++
		}
	}

	if s.queueCache != nil {
		s.queueCache.InvalidateCache(ctx)
	}

	logger.Log.Info("import completed",
		zap.Int("submissions", result.SubmissionsCount),
		zap.Int("questions", result.QuestionsCount),
		zap.Int("answers", result.AnswersCount),
		zap.Int("errors", len(result.Errors)),
	)

	return result
}
