package services

import (
	"context"
	"fmt"

	"github.com/casadecultura/backend/internal/domain/entities"
	"github.com/casadecultura/backend/internal/infrastructure/logger"
	"github.com/casadecultura/backend/internal/ports"
)

// NewsService handles news-related operations
type NewsService struct {
	newsRepo ports.NewsRepository
	logger   *logger.Logger
}

// NewNewsService creates a new news service
func NewNewsService(newsRepo ports.NewsRepository, logger *logger.Logger) *NewsService {
	return &NewsService{
		newsRepo: newsRepo,
		logger:   logger,
	}
}

// ListPublicNews returns active news items, newest date first
func (s *NewsService) ListPublicNews(ctx context.Context) ([]entities.News, error) {
	items, err := s.newsRepo.ListPublic(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list news: %w", err)
	}
	return items, nil
}

// ListAllNews returns every news item for the admin panel
func (s *NewsService) ListAllNews(ctx context.Context) ([]entities.News, error) {
	items, err := s.newsRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list news: %w", err)
	}
	return items, nil
}

// GetNews retrieves a news item by ID
func (s *NewsService) GetNews(ctx context.Context, id int) (*entities.News, error) {
	return s.newsRepo.GetByID(ctx, id)
}

// CreateNews creates a new news item
func (s *NewsService) CreateNews(ctx context.Context, req ports.CreateNewsRequest) (*entities.News, error) {
	item := &entities.News{
		Title:    req.Title,
		Summary:  req.Summary,
		Content:  req.Content,
		Date:     req.Date,
		Author:   req.Author,
		Category: req.Category,
		Image:    req.Image,
		Link:     req.Link,
		Featured: req.Featured,
	}

	if err := s.newsRepo.Create(ctx, item); err != nil {
		return nil, err
	}

	s.logger.Info("News item created", "news_id", item.ID, "title", item.Title)

	return item, nil
}

// UpdateNews applies a partial update to a news item
func (s *NewsService) UpdateNews(ctx context.Context, id int, upd ports.NewsUpdate) (*entities.News, error) {
	item, err := s.newsRepo.Update(ctx, id, upd)
	if err != nil {
		return nil, err
	}

	s.logger.Info("News item updated", "news_id", item.ID)

	return item, nil
}

// DeleteNews soft-deletes a news item
func (s *NewsService) DeleteNews(ctx context.Context, id int) error {
	if err := s.newsRepo.SoftDelete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("News item deactivated", "news_id", id)

	return nil
}
