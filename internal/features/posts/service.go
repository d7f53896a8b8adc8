package posts

import (
	"context"
	"time"

	"github.com/xyz-asif/safetrip/internal/features/auth"
	"github.com/xyz-asif/safetrip/internal/features/content"
	"github.com/xyz-asif/safetrip/internal/pkg/logger"
	"github.com/xyz-asif/safetrip/internal/pkg/pagination"
	apperrors "github.com/xyz-asif/safetrip/pkg/errors"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type Service struct {
	repo     *Repository
	activity content.ActivityRecorder
	now      content.Clock
}

func NewService(repo *Repository, activity content.ActivityRecorder, now content.Clock) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{repo: repo, activity: activity, now: now}
}

func (s *Service) Create(ctx context.Context, session *auth.Session, req CreatePostRequest) (string, error) {
	if !session.Authenticated() {
		return "", apperrors.ErrUnauthenticated
	}
	category, err := ValidateCreate(&req)
	if err != nil {
		return "", err
	}

	author := session.Author()
	post := &Post{
		ID:           primitive.NewObjectID(),
		AuthorID:     author.ID,
		AuthorName:   author.Name,
		AuthorAvatar: author.Avatar,
		Title:        req.Title,
		Body:         req.Body,
		Category:     category,
		Tags:         req.Tags,
		Votes:        content.NewVotes(),
		CreatedAt:    s.now().UTC().Truncate(time.Millisecond),
	}
	if err := s.repo.Create(ctx, post); err != nil {
		return "", err
	}

	logger.Info("post created", zap.String("id", post.ID.Hex()), zap.String("category", string(category)))

	if s.activity != nil {
		s.activity.RecordActivity(ctx, author.ID, content.ActivityPost)
	}
	return post.ID.Hex(), nil
}

func (s *Service) List(ctx context.Context, category string, p pagination.Pagination) ([]Post, error) {
	var c Category
	if category != "" {
		parsed, err := ParseCategory(category)
		if err != nil {
			return nil, err
		}
		c = parsed
	}
	return s.repo.List(ctx, c, p)
}

func (s *Service) Get(ctx context.Context, id string) (*Post, error) {
	oid, err := content.ParseID(id)
	if err != nil {
		return nil, err
	}
	return s.repo.Get(ctx, oid)
}

// Open counts a detail view and returns the post.
func (s *Service) Open(ctx context.Context, id string) (*Post, error) {
	oid, err := content.ParseID(id)
	if err != nil {
		return nil, err
	}
	s.repo.IncrementViewCount(ctx, oid)
	return s.repo.Get(ctx, oid)
}

func (s *Service) Vote(ctx context.Context, session *auth.Session, id string, dir content.Direction) error {
	if !session.Authenticated() {
		return apperrors.ErrUnauthenticated
	}
	oid, err := content.ParseID(id)
	if err != nil {
		return err
	}
	return s.repo.Vote(ctx, oid, session.UID(), dir)
}

func (s *Service) Exists(ctx context.Context, id string) error {
	_, err := s.Get(ctx, id)
	return err
}

func (s *Service) IncrementCommentCount(ctx context.Context, id string) error {
	oid, err := content.ParseID(id)
	if err != nil {
		return err
	}
	return s.repo.IncrementCommentCount(ctx, oid)
}
