package content

import (
	"context"
	"errors"
	"fmt"

	"github.com/xyz-asif/safetrip/internal/pkg/docstore"
	"github.com/xyz-asif/safetrip/internal/pkg/logger"
	"github.com/xyz-asif/safetrip/internal/pkg/metrics"
	"github.com/xyz-asif/safetrip/internal/pkg/pagination"
	apperrors "github.com/xyz-asif/safetrip/pkg/errors"
	"go.uber.org/zap"
)

// Newest orders by creation time, newest first, with the id as tie-break.
var Newest = []docstore.SortKey{
	{Field: "createdAt", Desc: true},
	{Field: "_id", Desc: true},
}

// CreatedIndex backs the Newest ordering.
var CreatedIndex = docstore.Index{Keys: Newest}

const maxVoteAttempts = 5

var errVoteContention = errors.New("vote kept losing to concurrent updates")

// Votable is satisfied by any entity embedding Votes.
type Votable interface {
	Tally() Votes
}

// List runs the ordered, filtered page query. When the store rejects it, the whole collection is
// scanned and filtered, ordered and paged in process so no stored entity is dropped.
func List[T any](ctx context.Context, coll docstore.Collection[T], filter docstore.Filter, p pagination.Pagination) ([]T, error) {
	q := docstore.Query{
		Filter: filter,
		Sort:   Newest,
		Skip:   p.Offset(),
		Limit:  p.Limit,
	}

	items, err := coll.Find(ctx, q)
	if err == nil {
		return items, nil
	}
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	logger.Warn("ordered list query failed, falling back to collection scan",
		zap.String("collection", coll.Name()), zap.Error(err))
	metrics.ListFallbacks.WithLabelValues(coll.Name()).Inc()

	all, scanErr := coll.All(ctx)
	if scanErr != nil {
		if errors.Is(scanErr, apperrors.ErrUnavailable) {
			return nil, scanErr
		}
		return nil, apperrors.Unavailable("list "+coll.Name(), scanErr)
	}
	return docstore.Select(all, q)
}

// IncrementViews bumps viewCount by one. Failures are logged and dropped.
func IncrementViews[T any](ctx context.Context, coll docstore.Collection[T], id interface{}) {
	_, err := coll.Update(ctx, id, docstore.Update{Inc: map[string]int{"viewCount": 1}})
	if err != nil {
		metrics.ViewCountFailures.WithLabelValues(coll.Name()).Inc()
		logger.Warn("view count increment failed",
			zap.String("collection", coll.Name()), zap.Any("id", id), zap.Error(err))
	}
}

// IncrementField adds delta to a counter and reports ErrNotFound when no document has the id.
func IncrementField[T any](ctx context.Context, coll docstore.Collection[T], id interface{}, field string, delta int) error {
	ok, err := coll.Update(ctx, id, docstore.Update{Inc: map[string]int{field: delta}})
	if err != nil {
		return err
	}
	if !ok {
		return apperrors.ErrNotFound
	}
	return nil
}

// CastVote records voter's vote. A repeat of the recorded direction is a no-op; the opposite
// direction moves the voter and shifts one vote between the counters. Every transition is one
// conditional update guarded on the state it was computed from; a lost race re-reads and retries.
func CastVote[T Votable](ctx context.Context, coll docstore.Collection[T], id interface{}, voter string, dir Direction) error {
	if voter == "" {
		return apperrors.ErrUnauthenticated
	}
	if dir != Up && dir != Down {
		return apperrors.Invalid("direction", "Vote direction must be up or down")
	}

	for attempt := 0; attempt < maxVoteAttempts; attempt++ {
		doc, err := coll.Get(ctx, id)
		if err != nil {
			return err
		}

		prior := (*doc).Tally().DirectionOf(voter)
		if prior == dir {
			return nil
		}

		ok, err := coll.Update(ctx, id, voteTransition(voter, prior, dir))
		if err != nil {
			return err
		}
		if ok {
			return nil
		}
		logger.Debug("vote lost a race, retrying",
			zap.String("collection", coll.Name()), zap.Int("attempt", attempt+1))
	}

	return apperrors.Unavailable(fmt.Sprintf("vote %s", coll.Name()), errVoteContention)
}

func voteTransition(voter string, prior, dir Direction) docstore.Update {
	if prior == "" {
		return docstore.Update{
			Exclude:  map[string]string{Up.votersField(): voter, Down.votersField(): voter},
			AddToSet: map[string]string{dir.votersField(): voter},
			Inc:      map[string]int{dir.countField(): 1},
		}
	}

	return docstore.Update{
		Require:  map[string]string{prior.votersField(): voter},
		Exclude:  map[string]string{dir.votersField(): voter},
		Pull:     map[string]string{prior.votersField(): voter},
		AddToSet: map[string]string{dir.votersField(): voter},
		Inc:      map[string]int{dir.countField(): 1, prior.countField(): -1},
	}
}
