package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/absolutekim/FFYYPP/internal/models"
	"github.com/absolutekim/FFYYPP/internal/nlp"
	"github.com/absolutekim/FFYYPP/internal/recommend"
	"github.com/absolutekim/FFYYPP/internal/repository"
	"github.com/absolutekim/FFYYPP/internal/search"
)

const (
	searchDefaultLimit = 20
	searchMinLimit     = 5
	searchMaxLimit     = 200

	reviewKeywordCount = 5

	searchCacheTTL      = 5 * time.Minute
	destinationCacheTTL = 30 * time.Minute
)

// DestinationStore is the persistence surface the service depends on,
// implemented by repository.DestinationRepository.
type DestinationStore interface {
	GetAll() ([]models.Destination, error)
	GetByID(id int) (*models.Destination, error)
	GetByTag(tag string) ([]models.Destination, error)
	GetMostLoved(limit int) ([]models.Destination, error)
	GetDistinctTags() ([]string, error)
	CreateLike(userID, destinationID int) (int, error)
	DeleteLike(userID, destinationID int) error
	GetUserLikes(userID int) ([]models.Like, error)
	CreateReview(review *models.Review) error
	GetUserReviews(userID int) ([]models.Review, error)
	GetDestinationReviews(destinationID int) ([]models.Review, error)
}

// DestinationService handles business logic for destinations, search,
// recommendations, likes and reviews.
type DestinationService struct {
	repo      DestinationStore
	users     *repository.UserRepository
	processor *nlp.Processor
	search    *search.Engine
	recommend *recommend.Engine
	redis     *redis.Client
}

// NewDestinationService creates a new DestinationService.
func NewDestinationService(
	repo DestinationStore,
	users *repository.UserRepository,
	processor *nlp.Processor,
	searchEngine *search.Engine,
	recEngine *recommend.Engine,
	rdb *redis.Client,
) *DestinationService {
	return &DestinationService{
		repo:      repo,
		users:     users,
		processor: processor,
		search:    searchEngine,
		recommend: recEngine,
		redis:     rdb,
	}
}

// clampLimit applies the search limit bounds. Zero means "use the default".
func clampLimit(limit int) int {
	if limit == 0 {
		return searchDefaultLimit
	}
	if limit < searchMinLimit {
		return searchMinLimit
	}
	if limit > searchMaxLimit {
		return searchMaxLimit
	}
	return limit
}

// Search runs semantic search over the full corpus. force bypasses both the
// Redis response cache and the engine's result cache.
func (s *DestinationService) Search(ctx context.Context, query string, limit int, force bool) (*models.SearchResponse, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, validationErrorf("query is required")
	}
	limit = clampLimit(limit)

	cacheKey := fmt.Sprintf("search:%s:%d", query, limit)
	if force {
		s.invalidateKey(cacheKey)
		s.search.Cache().Invalidate(search.CacheKey(query, limit))
	} else if cached, err := s.getFromCache(cacheKey); err == nil {
		var resp models.SearchResponse
		if json.Unmarshal([]byte(cached), &resp) == nil {
			slog.Debug("cache hit", "key", cacheKey)
			return &resp, nil
		}
	}

	corpus, err := s.corpusSnapshot()
	if err != nil {
		return nil, err
	}

	scored, degraded := s.search.Search(ctx, query, corpus, limit)
	resp := buildSearchResponse(query, limit, scored, degraded)

	if data, err := json.Marshal(resp); err == nil {
		s.setCache(cacheKey, string(data), searchCacheTTL)
	}
	return resp, nil
}

// KeywordSearch runs the keyword/synonym ranking directly, skipping the
// semantic pipeline.
func (s *DestinationService) KeywordSearch(query string, limit int) (*models.SearchResponse, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, validationErrorf("query is required")
	}
	limit = clampLimit(limit)

	corpus, err := s.corpusSnapshot()
	if err != nil {
		return nil, err
	}

	scored, degraded := s.search.KeywordSearch(query, corpus, limit)
	return buildSearchResponse(query, limit, scored, degraded), nil
}

func buildSearchResponse(query string, limit int, scored []models.ScoredDestination, degraded bool) *models.SearchResponse {
	results := make([]models.SearchResult, 0, len(scored))
	for _, sd := range scored {
		results = append(results, models.NewSearchResult(sd))
	}
	return &models.SearchResponse{
		Query:        query,
		Limit:        limit,
		ResultsCount: len(results),
		Degraded:     degraded,
		Results:      results,
	}
}

// Recommend builds the personalized payload for a user.
func (s *DestinationService) Recommend(ctx context.Context, userID int, recentlyViewed []models.RecentlyViewedItem, limit int) (*models.RecommendationResponse, error) {
	limit = clampLimit(limit)

	user, err := s.users.GetByID(userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	likes, err := s.repo.GetUserLikes(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load likes: %w", err)
	}
	reviews, err := s.repo.GetUserReviews(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load reviews: %w", err)
	}

	activity := recommend.UserActivity{
		Likes:        make([]*models.Like, 0, len(likes)),
		Reviews:      make([]*models.Review, 0, len(reviews)),
		SelectedTags: user.SelectedTags,
	}
	for i := range likes {
		activity.Likes = append(activity.Likes, &likes[i])
	}
	for i := range reviews {
		activity.Reviews = append(activity.Reviews, &reviews[i])
	}

	corpus, err := s.corpusSnapshot()
	if err != nil {
		return nil, err
	}

	return s.recommend.Recommend(activity, recentlyViewed, corpus, limit), nil
}

// ---- Destination reads ----

// List returns all destinations, cached.
func (s *DestinationService) List() ([]models.Destination, error) {
	cacheKey := "destinations:all"
	if cached, err := s.getFromCache(cacheKey); err == nil {
		var result []models.Destination
		if json.Unmarshal([]byte(cached), &result) == nil {
			slog.Debug("cache hit", "key", cacheKey)
			return result, nil
		}
	}

	result, err := s.repo.GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to list destinations: %w", err)
	}

	if data, err := json.Marshal(result); err == nil {
		s.setCache(cacheKey, string(data), destinationCacheTTL)
	}
	return result, nil
}

// Get returns a single destination by ID.
func (s *DestinationService) Get(id int) (*models.Destination, error) {
	dest, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get destination: %w", err)
	}
	return dest, nil
}

// GetByTag returns destinations tagged with the given subcategory.
func (s *DestinationService) GetByTag(tag string) ([]models.Destination, error) {
	tag = strings.TrimSpace(tag)
	if tag == "" {
		return nil, validationErrorf("tag is required")
	}
	result, err := s.repo.GetByTag(tag)
	if err != nil {
		return nil, fmt.Errorf("failed to list destinations by tag: %w", err)
	}
	return result, nil
}

// MostLoved returns the destinations with the highest like counts.
func (s *DestinationService) MostLoved(limit int) ([]models.Destination, error) {
	limit = clampLimit(limit)

	cacheKey := fmt.Sprintf("destinations:most-loved:%d", limit)
	if cached, err := s.getFromCache(cacheKey); err == nil {
		var result []models.Destination
		if json.Unmarshal([]byte(cached), &result) == nil {
			return result, nil
		}
	}

	result, err := s.repo.GetMostLoved(limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list most loved destinations: %w", err)
	}

	if data, err := json.Marshal(result); err == nil {
		s.setCache(cacheKey, string(data), searchCacheTTL)
	}
	return result, nil
}

// Tags returns the signup tag catalogue.
func (s *DestinationService) Tags() ([]string, error) {
	tags, err := s.repo.GetDistinctTags()
	if err != nil {
		return nil, fmt.Errorf("failed to list tags: %w", err)
	}
	return tags, nil
}

// ---- Likes ----

// Like records a like and returns the new like count.
func (s *DestinationService) Like(userID, destinationID int) (int, error) {
	if _, err := s.Get(destinationID); err != nil {
		return 0, err
	}
	count, err := s.repo.CreateLike(userID, destinationID)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateLike) {
			return 0, fmt.Errorf("%w: destination already liked", ErrAlreadyExists)
		}
		return 0, err
	}
	s.invalidateDestinationCaches()
	return count, nil
}

// Unlike removes a like.
func (s *DestinationService) Unlike(userID, destinationID int) error {
	if err := s.repo.DeleteLike(userID, destinationID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	s.invalidateDestinationCaches()
	return nil
}

// UserLikes returns all of a user's likes with destinations attached.
func (s *DestinationService) UserLikes(userID int) ([]models.Like, error) {
	return s.repo.GetUserLikes(userID)
}

// ---- Reviews ----

// CreateReview analyzes the review text once and stores the derived
// sentiment and keywords alongside it.
func (s *DestinationService) CreateReview(ctx context.Context, userID int, req models.CreateReviewRequest) (*models.Review, error) {
	if req.Rating < 1 || req.Rating > 5 {
		return nil, validationErrorf("rating must be between 1 and 5")
	}
	if strings.TrimSpace(req.Content) == "" {
		return nil, validationErrorf("content is required")
	}
	if _, err := s.Get(req.DestinationID); err != nil {
		return nil, err
	}

	sentiment := s.processor.AnalyzeSentiment(ctx, req.Content)

	review := &models.Review{
		UserID:         userID,
		DestinationID:  req.DestinationID,
		Content:        req.Content,
		Rating:         req.Rating,
		Sentiment:      sentiment.Label,
		SentimentScore: sentiment.Confidence,
		Keywords:       nlp.ExtractKeywords(req.Content, reviewKeywordCount),
	}
	if err := s.repo.CreateReview(review); err != nil {
		if errors.Is(err, repository.ErrDuplicateReview) {
			return nil, fmt.Errorf("%w: destination already reviewed", ErrAlreadyExists)
		}
		return nil, err
	}
	return review, nil
}

// UserReviews returns all reviews written by a user.
func (s *DestinationService) UserReviews(userID int) ([]models.Review, error) {
	return s.repo.GetUserReviews(userID)
}

// DestinationReviews returns all reviews of a destination.
func (s *DestinationService) DestinationReviews(destinationID int) ([]models.Review, error) {
	return s.repo.GetDestinationReviews(destinationID)
}

// corpusSnapshot loads all destinations and hands the engines a stable
// pointer slice to score.
func (s *DestinationService) corpusSnapshot() ([]*models.Destination, error) {
	all, err := s.List()
	if err != nil {
		return nil, err
	}
	corpus := make([]*models.Destination, 0, len(all))
	for i := range all {
		corpus = append(corpus, &all[i])
	}
	return corpus, nil
}

// ---- Redis Helpers ----

func (s *DestinationService) getFromCache(key string) (string, error) {
	if s.redis == nil {
		return "", fmt.Errorf("redis not available")
	}
	return s.redis.Get(context.Background(), key).Result()
}

func (s *DestinationService) setCache(key, value string, ttl time.Duration) {
	if s.redis == nil {
		return
	}
	if err := s.redis.Set(context.Background(), key, value, ttl).Err(); err != nil {
		slog.Error("failed to set cache", "key", key, "error", err)
	}
}

func (s *DestinationService) invalidateKey(key string) {
	if s.redis == nil {
		return
	}
	s.redis.Del(context.Background(), key)
}

// invalidateDestinationCaches drops cached destination lists after a like
// changes a like counter.
func (s *DestinationService) invalidateDestinationCaches() {
	if s.redis == nil {
		return
	}
	ctx := context.Background()
	iter := s.redis.Scan(ctx, 0, "destinations:*", 0).Iterator()
	for iter.Next(ctx) {
		s.redis.Del(ctx, iter.Val())
	}
	slog.Debug("destination caches invalidated")
}
