package database

import (
	"maps"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Filter is a small query builder shared by every repository implementation.
// It covers the shapes this API actually queries: equality conditions, a sort
// order, pagination and a projection.
type Filter struct {
	where  bson.M
	sort   bson.D
	limit  *int64
	skip   *int64
	fields bson.M
}

func NewFilter() *Filter {
	return &Filter{where: bson.M{}}
}

func (f *Filter) Eq(field string, value any) *Filter {
	f.where[field] = value
	return f
}

func (f *Filter) SortAsc(field string) *Filter {
	f.sort = append(f.sort, bson.E{Key: field, Value: 1})
	return f
}

func (f *Filter) SortDesc(field string) *Filter {
	f.sort = append(f.sort, bson.E{Key: field, Value: -1})
	return f
}

func (f *Filter) Limit(n int64) *Filter {
	f.limit = &n
	return f
}

func (f *Filter) Skip(n int64) *Filter {
	f.skip = &n
	return f
}

// Project restricts the returned fields. true includes a field, false
// excludes it; inclusion and exclusion must not be mixed (Mongo rule).
func (f *Filter) Project(fields map[string]bool) *Filter {
	projection := bson.M{}
	for field, include := range fields {
		if include {
			projection[field] = 1
		} else {
			projection[field] = 0
		}
	}
	f.fields = projection
	return f
}

func (f *Filter) Where() bson.M {
	where := bson.M{}
	maps.Copy(where, f.where)
	return where
}

func (f *Filter) Sort() bson.D {
	return f.sort
}

func (f *Filter) GetLimit() *int64 {
	return f.limit
}

func (f *Filter) GetSkip() *int64 {
	return f.skip
}

func (f *Filter) Fields() bson.M {
	return f.fields
}
