package docstore

import (
	"context"
	"sync"

	apperrors "github.com/xyz-asif/safetrip/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type memoryData struct {
	mu   sync.RWMutex
	keys []string
	docs map[string]bson.Raw
}

func newMemoryData() *memoryData {
	return &memoryData{docs: make(map[string]bson.Raw)}
}

// Memory keeps documents as raw BSON so reads decode through the same codecs the
// MongoDB driver uses. Every Update runs under one lock, which makes it atomic.
type Memory[T any] struct {
	name string
	data *memoryData
}

func NewMemory[T any](name string) *Memory[T] {
	return &Memory[T]{name: name, data: newMemoryData()}
}

func (m *Memory[T]) Name() string { return m.name }

func (m *Memory[T]) Insert(ctx context.Context, doc *T) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	b, err := bson.Marshal(doc)
	if err != nil {
		return err
	}
	raw := bson.Raw(b)
	idVal, err := raw.LookupErr("_id")
	if err != nil || idVal.Type == 0 {
		return ErrNoID
	}
	key := string(append([]byte{byte(idVal.Type)}, idVal.Value...))

	m.data.mu.Lock()
	defer m.data.mu.Unlock()
	if _, ok := m.data.docs[key]; ok {
		return apperrors.ErrDuplicate
	}
	m.data.docs[key] = raw
	m.data.keys = append(m.data.keys, key)
	return nil
}

func (m *Memory[T]) Get(ctx context.Context, id interface{}) (*T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	key, err := idKey(id)
	if err != nil {
		return nil, err
	}

	m.data.mu.RLock()
	raw, ok := m.data.docs[key]
	m.data.mu.RUnlock()
	if !ok {
		return nil, apperrors.ErrNotFound
	}

	var doc T
	if err := bson.Unmarshal(raw, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

func (m *Memory[T]) Find(ctx context.Context, q Query) ([]T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	raws := m.snapshot()
	idx, err := selectRaw(raws, q)
	if err != nil {
		return nil, err
	}

	out := make([]T, 0, len(idx))
	for _, i := range idx {
		var doc T
		if err := bson.Unmarshal(raws[i], &doc); err != nil {
			return nil, err
		}
		out = append(out, doc)
	}
	return out, nil
}

func (m *Memory[T]) All(ctx context.Context) ([]T, error) {
	return m.Find(ctx, Query{})
}

func (m *Memory[T]) Count(ctx context.Context, f Filter) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	idx, err := selectRaw(m.snapshot(), Query{Filter: f})
	if err != nil {
		return 0, err
	}
	return int64(len(idx)), nil
}

func (m *Memory[T]) Update(ctx context.Context, id interface{}, u Update) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	key, err := idKey(id)
	if err != nil {
		return false, err
	}

	m.data.mu.Lock()
	defer m.data.mu.Unlock()

	raw, ok := m.data.docs[key]
	if !ok {
		return false, nil
	}

	doc := bson.M{}
	if err := bson.Unmarshal(raw, &doc); err != nil {
		return false, err
	}

	for field, member := range u.Require {
		if !containsString(doc[field], member) {
			return false, nil
		}
	}
	for field, member := range u.Exclude {
		if containsString(doc[field], member) {
			return false, nil
		}
	}
	if u.empty() {
		return true, nil
	}

	for field, member := range u.Pull {
		doc[field] = pullString(doc[field], member)
	}
	for field, member := range u.AddToSet {
		if !containsString(doc[field], member) {
			doc[field] = append(toArray(doc[field]), member)
		}
	}
	for field, delta := range u.Inc {
		doc[field] = toInt64(doc[field]) + int64(delta)
	}
	for field, value := range u.Set {
		doc[field] = value
	}

	updated, err := bson.Marshal(doc)
	if err != nil {
		return false, err
	}
	m.data.docs[key] = updated
	return true, nil
}

func (m *Memory[T]) snapshot() []bson.Raw {
	m.data.mu.RLock()
	defer m.data.mu.RUnlock()
	raws := make([]bson.Raw, 0, len(m.data.keys))
	for _, k := range m.data.keys {
		raws = append(raws, m.data.docs[k])
	}
	return raws
}

func idKey(id interface{}) (string, error) {
	t, data, err := bson.MarshalValue(id)
	if err != nil {
		return "", err
	}
	return string(append([]byte{byte(t)}, data...)), nil
}

func toArray(v interface{}) primitive.A {
	if arr, ok := v.(primitive.A); ok {
		return arr
	}
	return primitive.A{}
}

func containsString(v interface{}, member string) bool {
	for _, item := range toArray(v) {
		if s, ok := item.(string); ok && s == member {
			return true
		}
	}
	return false
}

func pullString(v interface{}, member string) primitive.A {
	out := primitive.A{}
	for _, item := range toArray(v) {
		if s, ok := item.(string); ok && s == member {
			continue
		}
		out = append(out, item)
	}
	return out
}

func toInt64(v interface{}) int64 {
	switch n := v.(type) {
	case int32:
		return int64(n)
	case int64:
		return n
	case float64:
		return int64(n)
	case int:
		return int64(n)
	}
	return 0
}
