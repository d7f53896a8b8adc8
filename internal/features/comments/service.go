package comments

import (
	"context"
	"time"

	"github.com/xyz-asif/safetrip/internal/features/auth"
	"github.com/xyz-asif/safetrip/internal/features/content"
	"github.com/xyz-asif/safetrip/internal/pkg/logger"
	"github.com/xyz-asif/safetrip/internal/pkg/metrics"
	"github.com/xyz-asif/safetrip/internal/pkg/pagination"
	apperrors "github.com/xyz-asif/safetrip/pkg/errors"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type Service struct {
	repo     *Repository
	parents  map[ParentType]Parent
	activity content.ActivityRecorder
	now      content.Clock
}

func NewService(repo *Repository, parents map[ParentType]Parent, activity content.ActivityRecorder, now content.Clock) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{repo: repo, parents: parents, activity: activity, now: now}
}

func (s *Service) parent(parentType ParentType) (Parent, error) {
	p, ok := s.parents[parentType]
	if !ok {
		return nil, apperrors.Invalid("parentType", "Comments can only be added to incidents or posts")
	}
	return p, nil
}

// Create stores a comment on an existing parent and bumps the parent's commentCount. The two
// writes are independent: if the increment fails the comment stays and the count is understated.
func (s *Service) Create(ctx context.Context, session *auth.Session, parentType ParentType, parentID string, req CreateCommentRequest) (string, error) {
	if !session.Authenticated() {
		return "", apperrors.ErrUnauthenticated
	}
	body, err := ValidateBody(req.Body)
	if err != nil {
		return "", err
	}
	parent, err := s.parent(parentType)
	if err != nil {
		return "", err
	}
	if err := parent.Exists(ctx, parentID); err != nil {
		return "", err
	}

	author := session.Author()
	comment := &Comment{
		ID:           primitive.NewObjectID(),
		ParentType:   parentType,
		ParentID:     parentID,
		AuthorID:     author.ID,
		AuthorName:   author.Name,
		AuthorAvatar: author.Avatar,
		Body:         body,
		Votes:        content.NewVotes(),
		CreatedAt:    s.now().UTC().Truncate(time.Millisecond),
	}
	if err := s.repo.CreateComment(ctx, comment); err != nil {
		return "", err
	}

	if err := parent.IncrementCommentCount(ctx, parentID); err != nil {
		metrics.CommentCountFailures.WithLabelValues(string(parentType)).Inc()
		logger.Warn("comment stored but parent count not incremented",
			zap.String("comment", comment.ID.Hex()),
			zap.String("parentType", string(parentType)),
			zap.String("parentId", parentID),
			zap.Error(err))
	}

	if s.activity != nil {
		s.activity.RecordActivity(ctx, author.ID, content.ActivityComment)
	}
	return comment.ID.Hex(), nil
}

func (s *Service) List(ctx context.Context, parentType ParentType, parentID string, p pagination.Pagination) ([]Comment, error) {
	if _, err := s.parent(parentType); err != nil {
		return nil, err
	}
	return s.repo.ListByParent(ctx, parentType, parentID, p)
}

func (s *Service) Get(ctx context.Context, id string) (*Comment, error) {
	oid, err := content.ParseID(id)
	if err != nil {
		return nil, err
	}
	return s.repo.GetCommentByID(ctx, oid)
}

// Edit replaces the body of the caller's own comment.
func (s *Service) Edit(ctx context.Context, session *auth.Session, id string, req UpdateCommentRequest) (*Comment, error) {
	if !session.Authenticated() {
		return nil, apperrors.ErrUnauthenticated
	}
	body, err := ValidateBody(req.Body)
	if err != nil {
		return nil, err
	}
	oid, err := content.ParseID(id)
	if err != nil {
		return nil, err
	}

	comment, err := s.repo.GetCommentByID(ctx, oid)
	if err != nil {
		return nil, err
	}
	if comment.AuthorID != session.UID() {
		return nil, apperrors.ErrForbidden
	}
	if comment.Body == body {
		return comment, nil
	}

	at := s.now().UTC().Truncate(time.Millisecond)
	if err := s.repo.UpdateBody(ctx, oid, body, at); err != nil {
		return nil, err
	}
	comment.Body = body
	comment.Edited = true
	comment.UpdatedAt = &at
	return comment, nil
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
