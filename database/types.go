package database

import "go.mongodb.org/mongo-driver/v2/bson"

type IModel interface {
	GetTableName() string
	GetModelName() string
	GetConnectorName() string
	GetId() any
}

type BeforeCreateHook interface {
	BeforeCreate() error
}

type BeforeUpdateHook interface {
	BeforeUpdate() error
}

// IndexDefinition describes a collection index a model requires. Unique
// indexes are how the store enforces its uniqueness invariants (usernames,
// emails); the repository layer never re-checks them.
type IndexDefinition struct {
	Name   string
	Keys   bson.D
	Unique bool
}

// IndexedModel is implemented by models that declare indexes. The datasource
// ensures them at startup.
type IndexedModel interface {
	Indexes() []IndexDefinition
}
