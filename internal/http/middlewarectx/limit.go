package middlewarectx

import (
	"log/slog"
	"net"
	"net/http"
	"sync"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"golang.org/x/time/rate"

	"github.com/magabrotheeeer/daily-diet/internal/http/response"
)

// maxClients — после этого числа адресов из таблицы выбрасываются клиенты с полным запасом токенов.
const maxClients = 10000

// ClientLimiters хранит отдельный rate.Limiter на каждый адрес клиента.
type ClientLimiters struct {
	mu       sync.Mutex
	limit    rate.Limit
	burst    int
	limiters map[string]*rate.Limiter
}

// NewClientLimiters создаёт таблицу limiter'ов с общими параметрами limit и burst.
func NewClientLimiters(limit rate.Limit, burst int) *ClientLimiters {
	return &ClientLimiters{
		limit:    limit,
		burst:    burst,
		limiters: make(map[string]*rate.Limiter),
	}
}

// Allow расходует токен клиента key.
func (c *ClientLimiters) Allow(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	l, ok := c.limiters[key]
	if !ok {
		if len(c.limiters) >= maxClients {
			c.prune()
		}
		l = rate.NewLimiter(c.limit, c.burst)
		c.limiters[key] = l
	}
	return l.Allow()
}

func (c *ClientLimiters) prune() {
	for k, l := range c.limiters {
		if l.Tokens() >= float64(c.burst) {
			delete(c.limiters, k)
		}
	}
}

// RateLimit ограничивает частоту запросов каждого клиента.
// Клиент определяется по RemoteAddr (после middleware.RealIP, если он подключён).
// Запрос сверх лимита получает 429.
func RateLimit(log *slog.Logger, limiters *ClientLimiters) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			client := clientKey(r)
			if !limiters.Allow(client) {
				log.Warn("too many requests",
					slog.String("path", r.URL.Path),
					slog.String("client", client),
					slog.String("request_id", middleware.GetReqID(r.Context())),
				)
				render.Status(r, http.StatusTooManyRequests)
				render.JSON(w, r, response.Error(response.MsgTooManyRequests))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func clientKey(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
