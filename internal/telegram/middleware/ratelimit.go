package middleware

import (
	"sync"
	"time"

	"github.com/futig/wanderlust-backend/internal/pkg/metrics"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const (
	warningInterval   = 30 * time.Second
	inactiveThreshold = time.Hour
	cleanupInterval   = 10 * time.Minute
)

// userLimit tracks rate limit state for a single user
type userLimit struct {
	limiter       *rate.Limiter
	lastSeen      time.Time
	warningsSent  int
	lastWarningAt time.Time
}

// RateLimiterMiddleware implements token bucket rate limiting per user
type RateLimiterMiddleware struct {
	mu     sync.Mutex
	limits map[int64]*userLimit
	rate   rate.Limit
	burst  int
	now    func() time.Time
	logger *zap.Logger
	bot    Sender
	done   chan struct{}
	once   sync.Once
	wg     sync.WaitGroup
}

// NewRateLimiterMiddleware creates a rate limiter; Close stops its cleanup loop
func NewRateLimiterMiddleware(
	requestsPerMinute int,
	burstSize int,
	logger *zap.Logger,
	bot Sender,
) *RateLimiterMiddleware {
	rl := &RateLimiterMiddleware{
		limits: make(map[int64]*userLimit),
		rate:   rate.Limit(float64(requestsPerMinute) / 60.0),
		burst:  burstSize,
		now:    time.Now,
		logger: logger,
		bot:    bot,
		done:   make(chan struct{}),
	}

	rl.wg.Add(1)
	go rl.cleanupInactiveUsers()

	return rl
}

// Handle processes the update through rate limiting
func (rl *RateLimiterMiddleware) Handle(update tgbotapi.Update, next func(tgbotapi.Update)) {
	userID, chatID := Who(update)
	if userID == 0 {
		// Unknown update type, allow it
		next(update)
		return
	}

	allowed, warning := rl.allowRequest(userID)
	if !allowed {
		metrics.TelegramUpdatesTotal.WithLabelValues(Kind(update), "rate_limited").Inc()
		rl.logger.Warn("rate limit exceeded",
			zap.Int64("user_id", userID),
			zap.Int64("chat_id", chatID),
		)
		if warning > 0 && chatID != 0 {
			rl.sendRateLimitWarning(chatID, warning)
		}
		return
	}

	next(update)
}

// allowRequest reports whether the user may proceed and, when not, which warning to send (0 for none)
func (rl *RateLimiterMiddleware) allowRequest(userID int64) (bool, int) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	limit, exists := rl.limits[userID]
	if !exists {
		limit = &userLimit{limiter: rate.NewLimiter(rl.rate, rl.burst)}
		rl.limits[userID] = limit
	}
	limit.lastSeen = now

	if limit.limiter.AllowN(now, 1) {
		limit.warningsSent = 0
		return true, 0
	}

	if now.Sub(limit.lastWarningAt) <= warningInterval {
		return false, 0
	}
	limit.warningsSent++
	limit.lastWarningAt = now
	return false, limit.warningsSent
}

// sendRateLimitWarning sends a warning message to the user
func (rl *RateLimiterMiddleware) sendRateLimitWarning(chatID int64, warningCount int) {
	var text string

	switch {
	case warningCount == 1:
		text = "⚠️ Too many requests. Please wait a moment."
	case warningCount == 2:
		text = "⚠️ Request limit exceeded. Wait about 30 seconds before trying again."
	default:
		text = "🛑 You are sending requests too often. Please wait a minute."
	}

	if _, err := rl.bot.Send(tgbotapi.NewMessage(chatID, text)); err != nil {
		rl.logger.Error("failed to send rate limit warning",
			zap.Error(err),
			zap.Int64("chat_id", chatID),
		)
	}
}

// cleanupInactiveUsers removes users that haven't sent requests for inactiveThreshold
func (rl *RateLimiterMiddleware) cleanupInactiveUsers() {
	defer rl.wg.Done()

	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.cleanup()
		case <-rl.done:
			return
		}
	}
}

func (rl *RateLimiterMiddleware) cleanup() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	for userID, limit := range rl.limits {
		if now.Sub(limit.lastSeen) > inactiveThreshold {
			delete(rl.limits, userID)
			rl.logger.Debug("cleaned up inactive user from rate limiter",
				zap.Int64("user_id", userID),
			)
		}
	}
}

// Close stops the cleanup loop
func (rl *RateLimiterMiddleware) Close() {
	rl.once.Do(func() { close(rl.done) })
	rl.wg.Wait()
}
