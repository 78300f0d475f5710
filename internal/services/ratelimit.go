package services

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/MinghowYooo/nexus/internal/config"
)

// RateLimitInfo describes the caller's remaining budget in the current window.
type RateLimitInfo struct {
	Limit     int   `json:"limit"`
	Remaining int   `json:"remaining"`
	ResetTime int64 `json:"reset_time"`
}

// RateLimitService enforces a sliding-window limit per client IP. There is
// no account tier concept; every caller gets the same budget.
type RateLimitService struct {
	config      *config.Config
	logger      *logrus.Logger
	redisClient *redis.Client
}

func NewRateLimitService(cfg *config.Config, logger *logrus.Logger, redisClient *redis.Client) *RateLimitService {
	return &RateLimitService{
		config:      cfg,
		logger:      logger,
		redisClient: redisClient,
	}
}

func (s *RateLimitService) CheckLimit(clientIP string) (*RateLimitInfo, error) {
	limit := s.config.RateLimit.Requests
	window := s.config.RateLimit.Window

	key := fmt.Sprintf("rate_limit:ip:%s", clientIP)

	now := time.Now()
	windowStart := now.Add(-window)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// Redis pipeline for atomic operations
	pipe := s.redisClient.Pipeline()

	// Remove expired entries
	pipe.ZRemRangeByScore(ctx, key, "0", strconv.FormatInt(windowStart.Unix(), 10))

	// Count current requests in window
	countCmd := pipe.ZCard(ctx, key)

	// Add current request
	pipe.ZAdd(ctx, key, redis.Z{
		Score:  float64(now.Unix()),
		Member: fmt.Sprintf("%d", now.UnixNano()),
	})

	// Set expiration
	pipe.Expire(ctx, key, window)

	_, err := pipe.Exec(ctx)
	if err != nil {
		s.logger.WithError(err).Error("Failed to execute rate limit pipeline")
		// Return permissive result if Redis is down
		return &RateLimitInfo{
			Limit:     limit,
			Remaining: limit - 1,
			ResetTime: now.Add(window).Unix(),
		}, nil
	}

	currentCount := int(countCmd.Val())
	remaining := limit - currentCount
	if remaining < 0 {
		remaining = 0
	}

	return &RateLimitInfo{
		Limit:     limit,
		Remaining: remaining,
		ResetTime: now.Add(window).Unix(),
	}, nil
}

func (s *RateLimitService) IsAllowed(clientIP string) (bool, *RateLimitInfo, error) {
	info, err := s.CheckLimit(clientIP)
	if err != nil {
		return false, nil, err
	}

	allowed := info.Remaining > 0
	return allowed, info, nil
}
