package util

import "errors"

var (
	// ErrMissingAPIKey 配置级错误：未配置 LLM 凭证时评审运行前直接失败
	ErrMissingAPIKey  = errors.New("missing AI_API_KEY or OPENAI_API_KEY in config")
	ErrEmptyQueueID   = errors.New("queue id must not be empty")
	ErrEmptyImportDoc = errors.New("import document must not be empty")
)
