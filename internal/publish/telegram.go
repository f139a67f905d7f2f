package publish

// Chart delivery to a Telegram chat.
// Uploads go through a rate limiter, a circuit breaker and retry with backoff.

import (
	"context"
	"errors"
	"fmt"
	"time"

	"hyperboard/internal/infra/config"
	"hyperboard/internal/infra/fs"
	logging "hyperboard/internal/infra/log"
	"hyperboard/internal/infra/retry"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sony/gobreaker"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const (
	fileWaitTimeout = 5 * time.Second
	// Telegram photo captions are limited to 1024 characters (runes, not bytes)
	maxCaptionLen = 1024
)

// Sender is the part of *tgbotapi.BotAPI used here
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

type Options struct {
	RequestsPerSecond float64
	Burst             int
	MaxRetries        int
	BaseDelay         time.Duration
	MaxDelay          time.Duration
}

func DefaultOptions() Options {
	return Options{
		RequestsPerSecond: 1,
		Burst:             1,
		MaxRetries:        3,
		BaseDelay:         500 * time.Millisecond,
		MaxDelay:          30 * time.Second,
	}
}

// Publisher sends rendered charts to one chat
type Publisher struct {
	sender         Sender
	chatID         int64
	rateLimiter    *rate.Limiter
	circuitBreaker *gobreaker.CircuitBreaker
	retry          retry.Options
}

func NewPublisher(sender Sender, chatID int64, opts Options) *Publisher {
	if opts.RequestsPerSecond <= 0 {
		opts.RequestsPerSecond = 1
	}
	if opts.Burst <= 0 {
		opts.Burst = 1
	}

	circuitBreaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "TelegramUpload",
		MaxRequests: 1,
		Interval:    60 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures > 3
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logging.LogWarn("Circuit breaker state changed",
				zap.String("name", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()))
		},
	})

	return &Publisher{
		sender:         sender,
		chatID:         chatID,
		rateLimiter:    rate.NewLimiter(rate.Limit(opts.RequestsPerSecond), opts.Burst),
		circuitBreaker: circuitBreaker,
		retry: retry.Options{
			MaxRetries: opts.MaxRetries,
			BaseDelay:  opts.BaseDelay,
			MaxDelay:   opts.MaxDelay,
			Classify:   classifyTelegramError,
		},
	}
}

// NewBotPublisher authorises a bot with the configured token
func NewBotPublisher(cfg config.TelegramConfig) (*Publisher, error) {
	if cfg.BotToken == "" {
		return nil, fmt.Errorf("telegram.bot_token is required to send charts")
	}
	chatID, err := cfg.ParseChatID()
	if err != nil {
		return nil, err
	}

	bot, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize telegram bot: %w", err)
	}
	logging.LogSuccess("Telegram bot authorized", zap.String("username", bot.Self.UserName))

	opts := DefaultOptions()
	opts.RequestsPerSecond = cfg.RequestsPerSecond
	opts.MaxRetries = cfg.MaxRetries
	return NewPublisher(bot, chatID, opts), nil
}

// SendChart uploads the PNG at pngPath as a photo with caption
func (p *Publisher) SendChart(ctx context.Context, pngPath, caption string) error {
	requestID := logging.GenerateRequestID()
	log := logging.RequestLogger(requestID)
	startTime := time.Now()

	if err := fs.WaitForFile(ctx, pngPath, fileWaitTimeout); err != nil {
		return fmt.Errorf("chart file not ready: %w", err)
	}

	if r := []rune(caption); len(r) > maxCaptionLen {
		caption = string(r[:maxCaptionLen])
	}

	err := retry.Do(ctx, p.retry, func() error {
		if err := p.rateLimiter.Wait(ctx); err != nil {
			return fmt.Errorf("rate limiter wait failed: %w", err)
		}
		_, err := p.circuitBreaker.Execute(func() (interface{}, error) {
			photo := tgbotapi.NewPhoto(p.chatID, tgbotapi.FilePath(pngPath))
			photo.Caption = caption
			return p.sender.Send(photo)
		})
		if err != nil {
			log.Warn("Chart upload attempt failed", zap.String("path", pngPath), zap.Error(err))
		}
		return err
	})

	durationMs := time.Since(startTime).Milliseconds()
	if err != nil {
		logging.LogError("Failed to send chart", zap.String("request_id", requestID), zap.Int64("chat_id", p.chatID), zap.Error(err))
		return fmt.Errorf("failed to send chart: %w", err)
	}

	logging.LogSuccess("Chart sent",
		zap.String("request_id", requestID),
		zap.Int64("chat_id", p.chatID),
		zap.Int64("duration_ms", durationMs))
	return nil
}

// classifyTelegramError retries rate limiting and server errors, honouring retry_after
func classifyTelegramError(err error) (bool, time.Duration) {
	var apiErr *tgbotapi.Error
	if !errors.As(err, &apiErr) {
		var valErr tgbotapi.Error
		if !errors.As(err, &valErr) {
			// open breaker or transport failure
			return !errors.Is(err, gobreaker.ErrOpenState) && !errors.Is(err, context.Canceled), 0
		}
		apiErr = &valErr
	}

	switch {
	case apiErr.Code == 429:
		return true, time.Duration(apiErr.RetryAfter) * time.Second
	case apiErr.Code >= 500:
		return true, 0
	default:
		return false, 0
	}
}
