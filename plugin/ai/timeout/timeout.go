// Package timeout defines centralized timeout constants for AI operations.
// Package timeout 定义 AI 操作的集中式超时常量。
package timeout

import "time"

// AI operation timeout constants.
// AI 操作超时常量。
const (
	// EmbeddingTimeout is the default budget for one embedding call on the request path.
	// EmbeddingTimeout 是请求路径上单次向量生成的默认超时时间。
	EmbeddingTimeout = 900 * time.Millisecond

	// MinEmbeddingTimeout is the lower clamp for a configured embedding timeout.
	MinEmbeddingTimeout = 300 * time.Millisecond

	// MaxEmbeddingTimeout is the upper clamp for a configured embedding timeout.
	MaxEmbeddingTimeout = 3 * time.Second

	// ServerReadTimeout is the HTTP read timeout for the chat server.
	ServerReadTimeout = 10 * time.Second

	// ServerWriteTimeout is the HTTP write timeout for the chat server.
	ServerWriteTimeout = 15 * time.Second

	// ShutdownTimeout is the graceful shutdown budget.
	// ShutdownTimeout 是优雅关闭的超时时间。
	ShutdownTimeout = 5 * time.Second

	// MaxTruncateLength is the maximum length for truncating strings in logs.
	// MaxTruncateLength 是日志中字符串截断的最大长度。
	MaxTruncateLength = 50
)

// ClampEmbedding bounds d to [MinEmbeddingTimeout, MaxEmbeddingTimeout].
func ClampEmbedding(d time.Duration) time.Duration {
	if d < MinEmbeddingTimeout {
		return MinEmbeddingTimeout
	}
	if d > MaxEmbeddingTimeout {
		return MaxEmbeddingTimeout
	}
	return d
}
