package incidents

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

// NewService wires the incident service. activity may be nil.
func NewService(repo *Repository, activity content.ActivityRecorder, now content.Clock) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{repo: repo, activity: activity, now: now}
}

// Create files a report for the session's user and returns its id.
func (s *Service) Create(ctx context.Context, session *auth.Session, req CreateIncidentRequest) (string, error) {
	if !session.Authenticated() {
		return "", apperrors.ErrUnauthenticated
	}
	category, severity, err := ValidateCreate(&req)
	if err != nil {
		return "", err
	}

	reporter := session.Author()
	incident := &Incident{
		ID:             primitive.NewObjectID(),
		ReporterID:     reporter.ID,
		ReporterName:   reporter.Name,
		ReporterAvatar: reporter.Avatar,
		Title:          req.Title,
		Description:    req.Description,
		Category:       category,
		Severity:       severity,
		Location:       Location{Address: req.Address, Coordinates: req.Coordinates},
		PhotoURL:       req.PhotoURL,
		Votes:          content.NewVotes(),
		CreatedAt:      s.now().UTC().Truncate(time.Millisecond),
	}
	if err := s.repo.Create(ctx, incident); err != nil {
		return "", err
	}

	logger.Info("incident reported",
		zap.String("id", incident.ID.Hex()),
		zap.String("category", string(category)),
		zap.String("severity", string(severity)))

	if s.activity != nil {
		s.activity.RecordActivity(ctx, reporter.ID, content.ActivityReport)
	}
	return incident.ID.Hex(), nil
}

// List returns a page of incidents. category may be empty.
func (s *Service) List(ctx context.Context, category string, p pagination.Pagination) ([]Incident, error) {
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

func (s *Service) Get(ctx context.Context, id string) (*Incident, error) {
	oid, err := content.ParseID(id)
	if err != nil {
		return nil, err
	}
	return s.repo.Get(ctx, oid)
}

// Open counts a detail view and returns the incident.
func (s *Service) Open(ctx context.Context, id string) (*Incident, error) {
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

// Exists reports ErrNotFound when no incident has the id.
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
