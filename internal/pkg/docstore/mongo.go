package docstore

import (
	"context"
	"errors"
	"time"

	"github.com/xyz-asif/safetrip/internal/pkg/logger"
	"github.com/xyz-asif/safetrip/internal/pkg/metrics"
	apperrors "github.com/xyz-asif/safetrip/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

type Mongo[T any] struct {
	coll *mongo.Collection
}

func NewMongo[T any](db *mongo.Database, name string, indexes ...Index) *Mongo[T] {
	m := &Mongo[T]{coll: db.Collection(name)}
	m.createIndexes(indexes)
	return m
}

func (m *Mongo[T]) createIndexes(indexes []Index) {
	if len(indexes) == 0 {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	models := make([]mongo.IndexModel, 0, len(indexes))
	for _, idx := range indexes {
		model := mongo.IndexModel{Keys: sortDoc(idx.Keys)}
		if idx.Unique {
			model.Options = options.Index().SetUnique(true)
		}
		models = append(models, model)
	}
	if _, err := m.coll.Indexes().CreateMany(ctx, models); err != nil {
		logger.Warn("index creation failed", zap.String("collection", m.coll.Name()), zap.Error(err))
	}
}

func (m *Mongo[T]) Name() string { return m.coll.Name() }

func (m *Mongo[T]) Insert(ctx context.Context, doc *T) (err error) {
	defer m.observe("insert", time.Now(), &err)

	if _, err = m.coll.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return apperrors.ErrDuplicate
		}
		return apperrors.Unavailable("insert "+m.coll.Name(), err)
	}
	return nil
}

func (m *Mongo[T]) Get(ctx context.Context, id interface{}) (_ *T, err error) {
	defer m.observe("get", time.Now(), &err)

	var doc T
	if err = m.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.Unavailable("get "+m.coll.Name(), err)
	}
	return &doc, nil
}

func (m *Mongo[T]) Find(ctx context.Context, q Query) (_ []T, err error) {
	defer m.observe("find", time.Now(), &err)

	opts := options.Find()
	if len(q.Sort) > 0 {
		opts.SetSort(sortDoc(q.Sort))
	}
	if q.Skip > 0 {
		opts.SetSkip(int64(q.Skip))
	}
	if q.Limit > 0 {
		opts.SetLimit(int64(q.Limit))
	}

	return m.find(ctx, filterDoc(q.Filter), opts)
}

func (m *Mongo[T]) All(ctx context.Context) (_ []T, err error) {
	defer m.observe("scan", time.Now(), &err)
	return m.find(ctx, bson.M{}, options.Find())
}

func (m *Mongo[T]) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]T, error) {
	cursor, err := m.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, apperrors.Unavailable("find "+m.coll.Name(), err)
	}
	defer cursor.Close(ctx)

	docs := []T{}
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, apperrors.Unavailable("decode "+m.coll.Name(), err)
	}
	return docs, nil
}

func (m *Mongo[T]) Count(ctx context.Context, f Filter) (_ int64, err error) {
	defer m.observe("count", time.Now(), &err)

	n, err := m.coll.CountDocuments(ctx, filterDoc(f))
	if err != nil {
		return 0, apperrors.Unavailable("count "+m.coll.Name(), err)
	}
	return n, nil
}

func (m *Mongo[T]) Update(ctx context.Context, id interface{}, u Update) (_ bool, err error) {
	defer m.observe("update", time.Now(), &err)

	filter := bson.M{"_id": id}
	for field, member := range u.Require {
		filter[field] = member
	}
	for field, member := range u.Exclude {
		filter[field] = bson.M{"$ne": member}
	}

	// An empty update document is rejected by the server; report the match only.
	if u.empty() {
		n, err := m.coll.CountDocuments(ctx, filter, options.Count().SetLimit(1))
		if err != nil {
			return false, apperrors.Unavailable("update "+m.coll.Name(), err)
		}
		return n > 0, nil
	}

	res, err := m.coll.UpdateOne(ctx, filter, updateDoc(u))
	if err != nil {
		return false, apperrors.Unavailable("update "+m.coll.Name(), err)
	}
	return res.MatchedCount > 0, nil
}

func (m *Mongo[T]) observe(op string, start time.Time, errp *error) {
	err := *errp
	if errors.Is(err, apperrors.ErrNotFound) || errors.Is(err, apperrors.ErrDuplicate) {
		err = nil
	}
	metrics.ObserveStore(m.coll.Name(), op, start, err)
}

func filterDoc(f Filter) bson.M {
	filter := bson.M{}
	for k, v := range f {
		filter[k] = v
	}
	return filter
}

func sortDoc(keys []SortKey) bson.D {
	d := bson.D{}
	for _, k := range keys {
		dir := 1
		if k.Desc {
			dir = -1
		}
		d = append(d, bson.E{Key: k.Field, Value: dir})
	}
	return d
}

func updateDoc(u Update) bson.M {
	update := bson.M{}
	if len(u.AddToSet) > 0 {
		set := bson.M{}
		for k, v := range u.AddToSet {
			set[k] = v
		}
		update["$addToSet"] = set
	}
	if len(u.Pull) > 0 {
		pull := bson.M{}
		for k, v := range u.Pull {
			pull[k] = v
		}
		update["$pull"] = pull
	}
	if len(u.Inc) > 0 {
		inc := bson.M{}
		for k, v := range u.Inc {
			inc[k] = v
		}
		update["$inc"] = inc
	}
	if len(u.Set) > 0 {
		set := bson.M{}
		for k, v := range u.Set {
			set[k] = v
		}
		update["$set"] = set
	}
	return update
}
