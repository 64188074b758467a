package service

import (
	"context"
	"encoding/json"
	"time"

	"qa_judge_backend/internal/model"
	"qa_judge_backend/pkg/logger"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const (
	queueListCacheKey = "qa_judge:queues"
	queueListCacheTTL = 30 * time.Second
)

type queueStore interface {
	ListByQueueID(queueID string) ([]model.Submission, error)
	ListQueueIDs() ([]string, error)
}

// QueueService queue 是派生标签而非实体：列表来自 submissions 的去重
// queue_id。列表带短 TTL 的 redis 缓存，导入落库后失效。
type QueueService struct {
	submissions queueStore
	rdb         *redis.Client
}

func NewQueueService(submissions queueStore, rdb *redis.Client) *QueueService {
	return &QueueService{submissions: submissions, rdb: rdb}
}

func (s *QueueService) ListQueues(ctx context.Context) ([]string, error) {
	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, queueListCacheKey).Result(); err == nil {
			var queues []string
			if err := json.Unmarshal([]byte(cached), &queues); err == nil {
				return queues, nil
			}
		}
	}

	queues, err := s.submissions.ListQueueIDs()
	if err != nil {
		return nil, err
	}

	if s.rdb != nil {
		if data, err := json.Marshal(queues); err == nil {
			if err := s.rdb.Set(ctx, queueListCacheKey, data, queueListCacheTTL).Err(); err != nil {
				logger.Log.Warn("failed to cache queue list", zap.Error(err))
			}
		}
	}

	return queues, nil
}

func (s *QueueService) ListSubmissions(queueID string) ([]model.Submission, error) {
	return s.submissions.ListByQueueID(queueID)
}

// InvalidateCache 导入新 submission 后调用
func (s *QueueService) InvalidateCache(ctx context.Context) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, queueListCacheKey).Err(); err != nil {
		logger.Log.Warn("failed to invalidate queue cache", zap.Error(err))
	}
}
