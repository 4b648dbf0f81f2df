package services

import (
	"context"
	"fmt"

	"github.com/casadecultura/backend/internal/infrastructure/logger"
	"github.com/casadecultura/backend/internal/ports"
)

// StatsService aggregates collection counts for the admin dashboard.
type StatsService struct {
	eventRepo   ports.EventRepository
	newsRepo    ports.NewsRepository
	messageRepo ports.MessageRepository
	adminRepo   ports.AdminRepository
	backups     *BackupService
	logger      *logger.Logger
}

// NewStatsService creates a new stats service.
func NewStatsService(eventRepo ports.EventRepository, newsRepo ports.NewsRepository, messageRepo ports.MessageRepository, adminRepo ports.AdminRepository, backups *BackupService, logger *logger.Logger) *StatsService {
	return &StatsService{
		eventRepo:   eventRepo,
		newsRepo:    newsRepo,
		messageRepo: messageRepo,
		adminRepo:   adminRepo,
		backups:     backups,
		logger:      logger,
	}
}

// Dashboard computes the dashboard counters from the live collections.
func (s *StatsService) Dashboard(ctx context.Context) (*ports.DashboardStats, error) {
	stats := &ports.DashboardStats{}

	events, err := s.eventRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("stats: %w", err)
	}
	stats.Events.Total = len(events)
	for _, e := range events {
		if e.Active {
			stats.Events.Active++
		}
	}

	news, err := s.newsRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("stats: %w", err)
	}
	stats.News.Total = len(news)
	for _, n := range news {
		if n.Active {
			stats.News.Active++
		}
	}

	messages, err := s.messageRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("stats: %w", err)
	}
	stats.Messages.Total = len(messages)
	for _, m := range messages {
		if !m.Read {
			stats.Messages.Unread++
		}
	}

	admins, err := s.adminRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("stats: %w", err)
	}
	stats.Admins.Total = len(admins)
	for _, a := range admins {
		if a.Active {
			stats.Admins.Active++
		}
	}

	backups, err := s.backups.ListBackups(ctx)
	if err != nil {
		return nil, fmt.Errorf("stats: %w", err)
	}
	stats.Backups = len(backups)

	return stats, nil
}
