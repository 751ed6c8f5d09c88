package middleware

import (
	"bytes"
	"log"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ochiengk/dineqr-api/internal/domain/entity"
	"github.com/ochiengk/dineqr-api/internal/domain/repository"
	"github.com/ochiengk/dineqr-api/internal/presentation/http/dto/response"
)

// responseWriter wraps gin.ResponseWriter to capture the response body
type responseWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w *responseWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

// IdempotencyRequired rejects mutating requests that do not carry an
// Idempotency-Key header. Guests retrying a failed order placement must
// not end up with duplicate orders, so the key is mandatory there.
func IdempotencyRequired(repo repository.IdempotencyRepository, ttl time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.GetHeader("Idempotency-Key")
		if key == "" {
			response.BadRequest(c, "Idempotency-Key header is required")
			c.Abort()
			return
		}
		handleIdempotency(c, repo, key, ttl)
	}
}

// Idempotency replays cached responses for requests carrying an
// Idempotency-Key header, and passes through when the header is absent
func Idempotency(repo repository.IdempotencyRepository, ttl time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.GetHeader("Idempotency-Key")
		if key == "" {
			c.Next()
			return
		}
		handleIdempotency(c, repo, key, ttl)
	}
}

func handleIdempotency(c *gin.Context, repo repository.IdempotencyRepository, key string, ttl time.Duration) {
	ctx := c.Request.Context()
	endpoint := c.Request.Method + " " + c.FullPath()

	existing, err := repo.GetByKey(ctx, key)
	if err != nil {
		log.Printf("idempotency lookup failed: %v", err)
	}
	if existing != nil && !existing.IsExpired() {
		if existing.Endpoint != endpoint {
			response.ErrorWithCode(c, 422, "Idempotency key was used for a different endpoint")
			c.Abort()
			return
		}
		c.Header("X-Idempotency-Replayed", "true")
		c.Data(existing.StatusCode, "application/json", []byte(existing.Response))
		c.Abort()
		return
	}

	writer := &responseWriter{
		ResponseWriter: c.Writer,
		body:           &bytes.Buffer{},
	}
	c.Writer = writer

	c.Next()

	status := c.Writer.Status()
	if status >= 200 && status < 300 {
		record := &entity.IdempotencyKey{
			Key:        key,
			Endpoint:   endpoint,
			StatusCode: status,
			Response:   writer.body.String(),
			ExpiresAt:  time.Now().Add(ttl),
		}
		if err := repo.Create(ctx, record); err != nil {
			log.Printf("idempotency store failed: %v", err)
		}
	}
}
