package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/dietcoach/backend/internal/models"
	"github.com/dietcoach/backend/internal/repo"
	"github.com/dietcoach/backend/internal/util"
	"github.com/dietcoach/backend/pkg/events"
	"github.com/dietcoach/backend/pkg/genai"
	"github.com/dietcoach/backend/pkg/logging"
)

const (
	QueryTypeDiet  = "diet"
	previewLength  = 50
	historyPerPage = 20
)

var dietKeywords = []string{
	"diet", "food", "meal", "nutrition", "calorie", "protein",
	"carb", "fat", "vitamin", "eat", "recipe", "ingredient",
}

type ChatService struct {
	Repo      *repo.GormRepo
	AI        genai.Generator
	Events    events.Publisher
	AITimeout time.Duration
	Now       func() time.Time
}

type HistoryFilter struct {
	Page      int
	PerPage   int
	QueryType string
	Days      int
}

type QueryPreview struct {
	ID        uint
	Question  string
	CreatedAt time.Time
}

type ChatStats struct {
	TotalQueries  int64
	QueriesByType map[string]int64
	TodayQueries  int64
	LatestQuery   *QueryPreview
}

func (s *ChatService) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

func isDietQuestion(q string) bool {
	q = strings.ToLower(q)
	for _, kw := range dietKeywords {
		if strings.Contains(q, kw) {
			return true
		}
	}
	return false
}

func chatPrompt(question string) string {
	return "As a professional nutritionist, answer this question:\n" +
		question +
		"\n\nProvide accurate, helpful information about diet and nutrition.\n"
}

func preview(q string) string {
	if utf8.RuneCountInString(q) <= previewLength {
		return q
	}
	r := []rune(q)
	return string(r[:previewLength]) + "..."
}

func (s *ChatService) Ask(ctx context.Context, userID uint, question, queryType string) (*models.ChatbotQuery, error) {
	l := logging.FromContext(ctx).With("svc", "chat.ask", "user_id", userID)

	question = strings.TrimSpace(question)
	if question == "" {
		return nil, invalid("Question is required")
	}
	if queryType == "" {
		queryType = QueryTypeDiet
	}
	if queryType != QueryTypeDiet {
		return nil, withDetail(invalid("Only diet-related queries are supported"),
			"Please ask questions about nutrition, meal planning, or dietary advice")
	}
	if !isDietQuestion(question) {
		return nil, withDetail(invalid("Question must be diet-related"),
			"I can only answer questions about diet and nutrition")
	}

	answer, err := generate(ctx, s.AI, s.AITimeout, chatPrompt(question), "chat")
	if err != nil {
		return nil, err
	}

	q := &models.ChatbotQuery{
		UserID:    userID,
		Question:  question,
		Answer:    answer,
		QueryType: queryType,
	}
	if err := s.Repo.CreateQuery(ctx, q); err != nil {
		l.Error("chat_query_save_failed", "status", 500, "error", err)
		return nil, fmt.Errorf("save query: %w", err)
	}

	publish(ctx, s.Events, events.TopicDiet, events.Event{Type: "chat_query_answered", UserID: userID, EntityID: q.ID})
	return q, nil
}

// QuickAsk answers without storing anything.
func (s *ChatService) QuickAsk(ctx context.Context, question string) (string, string, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return "", "", invalid("Question is required")
	}
	answer, err := generate(ctx, s.AI, s.AITimeout, chatPrompt(question), "quick_ask")
	if err != nil {
		return "", "", err
	}
	return question, answer, nil
}

func (s *ChatService) History(ctx context.Context, userID uint, f HistoryFilter) (*Paged[models.ChatbotQuery], error) {
	p := util.NewPage(f.Page, f.PerPage, historyPerPage)
	filter := repo.QueryFilter{UserID: userID, QueryType: f.QueryType}
	if filter.QueryType == "" {
		filter.QueryType = QueryTypeDiet
	}
	if f.Days > 0 {
		filter.Since = s.now().AddDate(0, 0, -f.Days)
	}

	items, total, err := s.Repo.ListQueries(ctx, filter, p.Offset(), p.PerPage)
	if err != nil {
		return nil, fmt.Errorf("list queries: %w", err)
	}
	return &Paged[models.ChatbotQuery]{Items: items, Total: total, Page: p.Page, PerPage: p.PerPage, Pages: p.Pages(total)}, nil
}

func (s *ChatService) Get(ctx context.Context, userID, id uint) (*models.ChatbotQuery, error) {
	q, err := s.Repo.QueryByID(ctx, userID, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, notFound("Query not found")
		}
		return nil, fmt.Errorf("load query: %w", err)
	}
	return q, nil
}

func (s *ChatService) Delete(ctx context.Context, userID, id uint) error {
	if err := s.Repo.DeleteQuery(ctx, userID, id); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return notFound("Query not found")
		}
		return fmt.Errorf("delete query: %w", err)
	}
	return nil
}

// ClearHistory deletes every stored query, or only those of queryType.
func (s *ChatService) ClearHistory(ctx context.Context, userID uint, queryType string) (int64, error) {
	n, err := s.Repo.ClearQueries(ctx, userID, queryType)
	if err != nil {
		return 0, fmt.Errorf("clear history: %w", err)
	}
	logging.FromContext(ctx).Info("chat_history_cleared", "user_id", userID, "deleted", n)
	return n, nil
}

func (s *ChatService) Statistics(ctx context.Context, userID uint) (*ChatStats, error) {
	total, err := s.Repo.CountQueries(ctx, userID, time.Time{})
	if err != nil {
		return nil, fmt.Errorf("count queries: %w", err)
	}
	byType, err := s.Repo.QueryCountsByType(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("count by type: %w", err)
	}
	now := s.now()
	today, err := s.Repo.CountQueries(ctx, userID, time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC))
	if err != nil {
		return nil, fmt.Errorf("count today: %w", err)
	}

	stats := &ChatStats{TotalQueries: total, QueriesByType: byType, TodayQueries: today}
	latest, err := s.Repo.LatestQuery(ctx, userID)
	switch {
	case err == nil:
		stats.LatestQuery = &QueryPreview{ID: latest.ID, Question: preview(latest.Question), CreatedAt: latest.CreatedAt}
	case !errors.Is(err, repo.ErrNotFound):
		return nil, fmt.Errorf("latest query: %w", err)
	}
	return stats, nil
}
