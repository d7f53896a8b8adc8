package content

import (
	"context"
	"strings"
	"time"

	apperrors "github.com/xyz-asif/safetrip/pkg/errors"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Direction is the direction of a vote.
type Direction string

const (
	Up   Direction = "up"
	Down Direction = "down"
)

// ParseDirection accepts "up" or "down" in any case.
func ParseDirection(s string) (Direction, error) {
	switch d := Direction(strings.ToLower(strings.TrimSpace(s))); d {
	case Up, Down:
		return d, nil
	}
	return "", apperrors.Invalid("direction", "Vote direction must be up or down")
}

func (d Direction) votersField() string { return string(d) + "voters" }
func (d Direction) countField() string  { return string(d) + "votes" }

// Author is the display snapshot copied onto content at creation. It is never re-synced.
type Author struct {
	ID     string
	Name   string
	Avatar string
}

// Votes is embedded in every votable entity. A voter appears in at most one of the two sets.
type Votes struct {
	Upvotes    int      `bson:"upvotes" json:"upvotes"`
	Downvotes  int      `bson:"downvotes" json:"downvotes"`
	Upvoters   []string `bson:"upvoters" json:"upvoters"`
	Downvoters []string `bson:"downvoters" json:"downvoters"`
}

// NewVotes returns a zeroed tally with empty voter sets.
func NewVotes() Votes {
	return Votes{Upvoters: []string{}, Downvoters: []string{}}
}

// Tally exposes the vote state of whatever embeds Votes.
func (v Votes) Tally() Votes { return v }

// DirectionOf returns the recorded direction of voter, or "" if they have not voted.
func (v Votes) DirectionOf(voter string) Direction {
	for _, id := range v.Upvoters {
		if id == voter {
			return Up
		}
	}
	for _, id := range v.Downvoters {
		if id == voter {
			return Down
		}
	}
	return ""
}

// Activity is a content action that earns reputation.
type Activity string

const (
	ActivityReport  Activity = "report"
	ActivityPost    Activity = "post"
	ActivityComment Activity = "comment"
)

// Clock returns the server timestamp stamped onto new content.
type Clock func() time.Time

// ParseID converts a hex id from a URL. Malformed ids can never exist, so they are not found.
func ParseID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, apperrors.ErrNotFound
	}
	return oid, nil
}

// ActivityRecorder credits the author of a content action. Implementations never fail the caller.
type ActivityRecorder interface {
	RecordActivity(ctx context.Context, uid string, activity Activity)
}

// VoteRequest is the body of every vote endpoint.
type VoteRequest struct {
	Direction string `json:"direction" binding:"required" example:"up"`
}
