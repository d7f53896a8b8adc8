// Package pages holds the page controllers behind the list views. A controller keeps the
// view's local state, drives the repository and re-fetches after every change instead of
// patching what it already holds.
package pages

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/xyz-asif/safetrip/internal/features/auth"
	"github.com/xyz-asif/safetrip/internal/features/content"
	"github.com/xyz-asif/safetrip/internal/pkg/pagination"
	apperrors "github.com/xyz-asif/safetrip/pkg/errors"
)

// ErrDiscarded is returned when a result arrives after the controller closed or a newer
// request superseded it. The result is not applied.
var ErrDiscarded = errors.New("result discarded")

// Source is the repository surface a page controller drives. D is the create draft.
type Source[T any, D any] interface {
	List(ctx context.Context, category string, p pagination.Pagination) ([]T, error)
	Create(ctx context.Context, session *auth.Session, draft D) (string, error)
	Vote(ctx context.Context, session *auth.Session, id string, dir content.Direction) error
	// Open returns the entity for a detail view and counts the view.
	Open(ctx context.Context, id string) (*T, error)
}

// Searchable exposes the text client-side search runs over.
type Searchable interface {
	SearchFields() []string
}

// State is a copy of the controller's view state.
type State[T any] struct {
	Items       []T               `json:"items"`
	Loaded      int               `json:"loaded"`
	Category    string            `json:"category,omitempty"`
	Search      string            `json:"search,omitempty"`
	Page        int               `json:"page"`
	Limit       int               `json:"limit"`
	Loading     bool              `json:"loading"`
	DialogOpen  bool              `json:"dialogOpen"`
	FieldErrors map[string]string `json:"fieldErrors,omitempty"`
	NeedsLogin  bool              `json:"needsLogin"`
	Banner      string            `json:"banner,omitempty"`
	Retryable   bool              `json:"retryable"`
	Selected    *T                `json:"selected,omitempty"`
}

type Controller[T Searchable, D any] struct {
	source  Source[T, D]
	session *auth.Session

	mu         sync.Mutex
	state      State[T]
	loaded     []T
	generation uint64
	closed     bool
}

// New builds a controller for one mounted view. session may be anonymous.
func New[T Searchable, D any](source Source[T, D], session *auth.Session, p pagination.Pagination) *Controller[T, D] {
	if session == nil {
		session = auth.Anonymous()
	}
	return &Controller[T, D]{
		source:  source,
		session: session,
		state:   State[T]{Page: p.Page, Limit: p.Limit, Items: []T{}},
	}
}

// Load fetches the current page with the current filter.
func (c *Controller[T, D]) Load(ctx context.Context) error {
	return c.fetch(ctx)
}

// SetCategory changes the filter and replaces the whole loaded set. The page resets to 1.
func (c *Controller[T, D]) SetCategory(ctx context.Context, category string) error {
	c.mu.Lock()
	c.state.Category = category
	c.state.Page = 1
	c.mu.Unlock()
	return c.fetch(ctx)
}

// Show sets the filter and the page together and fetches once. Used when both arrive in the
// same request, where SetCategory would drop the requested page.
func (c *Controller[T, D]) Show(ctx context.Context, category string, page int) error {
	c.mu.Lock()
	c.state.Category = category
	c.state.Page = pagination.New(page, c.state.Limit).Page
	c.mu.Unlock()
	return c.fetch(ctx)
}

func (c *Controller[T, D]) SetPage(ctx context.Context, page int) error {
	c.mu.Lock()
	c.state.Page = pagination.New(page, c.state.Limit).Page
	c.mu.Unlock()
	return c.fetch(ctx)
}

// SetSearch filters the loaded page in place. It never hits the repository.
func (c *Controller[T, D]) SetSearch(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.Search = text
	c.applySearch()
}

func (c *Controller[T, D]) OpenDialog() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.DialogOpen = true
	c.state.FieldErrors = nil
}

func (c *Controller[T, D]) CloseDialog() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.DialogOpen = false
	c.state.FieldErrors = nil
}

func (c *Controller[T, D]) DismissBanner() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.Banner = ""
	c.state.Retryable = false
}

// Submit creates an entity from draft. On success the dialog closes and the list is re-fetched;
// on failure the error is surfaced in the state and nothing else changes.
func (c *Controller[T, D]) Submit(ctx context.Context, draft D) (string, error) {
	id, err := c.source.Create(ctx, c.session, draft)
	if !c.settleWrite(err, func() {
		c.state.DialogOpen = false
		c.state.FieldErrors = nil
	}) {
		return id, errOr(err)
	}
	if err != nil {
		return "", err
	}
	c.refetch(ctx)
	return id, nil
}

// Vote casts the session's vote and re-fetches.
func (c *Controller[T, D]) Vote(ctx context.Context, id string, dir content.Direction) error {
	err := c.source.Vote(ctx, c.session, id, dir)
	if !c.settleWrite(err, nil) {
		return errOr(err)
	}
	if err != nil {
		return err
	}
	c.refetch(ctx)
	return nil
}

// Open loads the detail view of id and re-fetches so the list shows the new view count.
func (c *Controller[T, D]) Open(ctx context.Context, id string) (*T, error) {
	item, err := c.source.Open(ctx, id)
	if !c.settleWrite(err, func() { c.state.Selected = item }) {
		return nil, errOr(err)
	}
	if err != nil {
		return nil, err
	}
	c.refetch(ctx)
	return item, nil
}

// Close unmounts the controller. Requests still in flight complete but their results are dropped.
func (c *Controller[T, D]) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
}

func (c *Controller[T, D]) State() State[T] {
	c.mu.Lock()
	defer c.mu.Unlock()
	s := c.state
	s.Items = append([]T(nil), c.state.Items...)
	if c.state.FieldErrors != nil {
		s.FieldErrors = make(map[string]string, len(c.state.FieldErrors))
		for k, v := range c.state.FieldErrors {
			s.FieldErrors[k] = v
		}
	}
	return s
}

func (c *Controller[T, D]) fetch(ctx context.Context) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrDiscarded
	}
	c.generation++
	gen := c.generation
	category := c.state.Category
	p := pagination.New(c.state.Page, c.state.Limit)
	c.state.Loading = true
	c.mu.Unlock()

	items, err := c.source.List(ctx, category, p)

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed || gen != c.generation {
		return ErrDiscarded
	}
	c.state.Loading = false
	if err != nil {
		c.state.Banner = "Could not load the list: " + err.Error()
		c.state.Retryable = errors.Is(err, apperrors.ErrUnavailable)
		return err
	}

	c.loaded = items
	c.state.Loaded = len(items)
	c.state.Banner = ""
	c.state.Retryable = false
	c.applySearch()
	return nil
}

// refetch reloads after a successful write. A failed reload only shows in the banner; the
// write itself succeeded.
func (c *Controller[T, D]) refetch(ctx context.Context) {
	_ = c.fetch(ctx)
}

// settleWrite applies the outcome of a write to the state and reports whether the controller
// is still mounted. onSuccess runs under the lock.
func (c *Controller[T, D]) settleWrite(err error, onSuccess func()) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return false
	}

	switch {
	case err == nil:
		c.state.NeedsLogin = false
		if onSuccess != nil {
			onSuccess()
		}
	case errors.Is(err, apperrors.ErrValidation):
		c.state.FieldErrors = map[string]string{apperrors.FieldOf(err): apperrors.MessageOf(err)}
	case errors.Is(err, apperrors.ErrUnauthenticated):
		c.state.NeedsLogin = true
	case errors.Is(err, apperrors.ErrNotFound):
		c.state.Banner = "This item is no longer available"
		c.state.Retryable = false
	default:
		c.state.Banner = "Something went wrong, please try again"
		c.state.Retryable = true
	}
	return true
}

func (c *Controller[T, D]) applySearch() {
	needle := strings.ToLower(strings.TrimSpace(c.state.Search))
	visible := make([]T, 0, len(c.loaded))
	for _, item := range c.loaded {
		if needle == "" || matches(item.SearchFields(), needle) {
			visible = append(visible, item)
		}
	}
	c.state.Items = visible
}

func matches(fields []string, needle string) bool {
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), needle) {
			return true
		}
	}
	return false
}

func errOr(err error) error {
	if err != nil {
		return err
	}
	return ErrDiscarded
}
