package docstore

import (
	"bytes"
	"sort"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
)

// Select filters, orders and pages docs in process with the same semantics Find has on
// the server. The list fallback uses it after a full scan.
func Select[T any](docs []T, q Query) ([]T, error) {
	raws := make([]bson.Raw, len(docs))
	for i := range docs {
		raw, err := bson.Marshal(&docs[i])
		if err != nil {
			return nil, err
		}
		raws[i] = raw
	}

	idx, err := selectRaw(raws, q)
	if err != nil {
		return nil, err
	}

	out := make([]T, 0, len(idx))
	for _, i := range idx {
		out = append(out, docs[i])
	}
	return out, nil
}

// selectRaw returns the positions of the selected documents in result order.
func selectRaw(raws []bson.Raw, q Query) ([]int, error) {
	idx := make([]int, 0, len(raws))
	for i, raw := range raws {
		ok, err := matches(raw, q.Filter)
		if err != nil {
			return nil, err
		}
		if ok {
			idx = append(idx, i)
		}
	}

	if len(q.Sort) > 0 {
		sort.SliceStable(idx, func(a, b int) bool {
			for _, key := range q.Sort {
				c := compareValues(lookup(raws[idx[a]], key.Field), lookup(raws[idx[b]], key.Field))
				if c == 0 {
					continue
				}
				if key.Desc {
					return c > 0
				}
				return c < 0
			}
			return false
		})
	}

	if q.Skip > 0 {
		if q.Skip >= len(idx) {
			return []int{}, nil
		}
		idx = idx[q.Skip:]
	}
	if q.Limit > 0 && len(idx) > q.Limit {
		idx = idx[:q.Limit]
	}
	return idx, nil
}

func matches(raw bson.Raw, f Filter) (bool, error) {
	for field, want := range f {
		t, data, err := bson.MarshalValue(want)
		if err != nil {
			return false, err
		}
		got := lookup(raw, field)
		if got.Type == 0 {
			return false, nil
		}
		if got.Type == t && bytes.Equal(got.Value, data) {
			continue
		}
		if got.Type == bsontype.Array && arrayContains(got.Array(), t, data) {
			continue
		}
		return false, nil
	}
	return true, nil
}

func lookup(raw bson.Raw, field string) bson.RawValue {
	v, err := raw.LookupErr(strings.Split(field, ".")...)
	if err != nil {
		return bson.RawValue{}
	}
	return v
}

func arrayContains(arr bson.Raw, t bsontype.Type, data []byte) bool {
	values, err := arr.Values()
	if err != nil {
		return false
	}
	for _, v := range values {
		if v.Type == t && bytes.Equal(v.Value, data) {
			return true
		}
	}
	return false
}

// compareValues orders missing values first, then numbers, strings, ids and dates.
func compareValues(a, b bson.RawValue) int {
	ra, rb := rank(a.Type), rank(b.Type)
	if ra != rb {
		return ra - rb
	}

	switch ra {
	case 1:
		return compareFloat(number(a), number(b))
	case 2:
		return strings.Compare(a.StringValue(), b.StringValue())
	case 3:
		oa, ob := a.ObjectID(), b.ObjectID()
		return bytes.Compare(oa[:], ob[:])
	case 4:
		return compareFloat(float64(a.DateTime()), float64(b.DateTime()))
	case 5:
		return boolInt(a.Boolean()) - boolInt(b.Boolean())
	}
	return 0
}

func rank(t bsontype.Type) int {
	switch t {
	case bsontype.Int32, bsontype.Int64, bsontype.Double:
		return 1
	case bsontype.String:
		return 2
	case bsontype.ObjectID:
		return 3
	case bsontype.DateTime:
		return 4
	case bsontype.Boolean:
		return 5
	}
	return 0
}

func number(v bson.RawValue) float64 {
	switch v.Type {
	case bsontype.Int32:
		return float64(v.Int32())
	case bsontype.Int64:
		return float64(v.Int64())
	default:
		return v.Double()
	}
}

func compareFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
