package database

import (
	"context"
	"errors"

	"github.com/xompass/gradebook-api/http_errors"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

const (
	ID  = "_id"
	SET = "$set"
)

// Error codes for the mongo repository
const (
	MONGO_CONNECTOR_TYPE_MISMATCH = "MONGO_CONNECTOR_TYPE_MISMATCH"
	MONGO_CLIENT_NOT_INITIALIZED  = "MONGO_CLIENT_NOT_INITIALIZED"
	MONGO_DATABASE_NAME_REQUIRED  = "MONGO_DATABASE_NAME_REQUIRED"
	MONGO_ID_CANNOT_BE_NIL        = "MONGO_ID_CANNOT_BE_NIL"
	MONGO_UPDATE_CANNOT_BE_NIL    = "MONGO_UPDATE_CANNOT_BE_NIL"
	MONGO_NO_DOCUMENTS_FOUND      = "MONGO_NO_DOCUMENTS_FOUND"
	MONGO_DUPLICATE_KEY           = "MONGO_DUPLICATE_KEY"
	MONGO_OPERATION_FAILED        = "MONGO_OPERATION_FAILED"
	MONGO_CONNECTION_ERROR        = "MONGO_CONNECTION_ERROR"
	MONGO_VALIDATION_ERROR        = "MONGO_VALIDATION_ERROR"
)

// mapMongoError maps MongoDB driver errors to standardized http_errors
func mapMongoError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, mongo.ErrNoDocuments) {
		return http_errors.NotFoundErrorWithCode(MONGO_NO_DOCUMENTS_FOUND, "document not found")
	}

	var writeErr mongo.WriteException
	if errors.As(err, &writeErr) {
		for _, writeError := range writeErr.WriteErrors {
			switch writeError.Code {
			case 11000, 11001: // Duplicate key
				return http_errors.ConflictErrorWithCode(MONGO_DUPLICATE_KEY, "duplicate key error: "+writeError.Message)
			case 121: // Document validation failure
				return http_errors.BadRequestErrorWithCode(MONGO_VALIDATION_ERROR, "validation error: "+writeError.Message)
			default:
				return http_errors.BadRequestErrorWithCode(MONGO_OPERATION_FAILED, "write operation failed: "+writeError.Message)
			}
		}
	}

	var commandErr mongo.CommandError
	if errors.As(err, &commandErr) {
		switch commandErr.Code {
		case 11000, 11001:
			return http_errors.ConflictErrorWithCode(MONGO_DUPLICATE_KEY, "duplicate key error: "+commandErr.Message)
		default:
			return http_errors.BadRequestErrorWithCode(MONGO_OPERATION_FAILED, "command failed: "+commandErr.Message)
		}
	}

	if mongo.IsNetworkError(err) || mongo.IsTimeout(err) {
		return http_errors.InternalServerErrorWithCode(MONGO_CONNECTION_ERROR, "database connection error")
	}

	return http_errors.InternalServerErrorWithCode(MONGO_OPERATION_FAILED, "database operation failed: "+err.Error())
}

type MongoRepository[T IModel] struct {
	collection *mongo.Collection
	connector  *MongoConnector
	datasource *Datasource
}

func NewMongoRepository[T IModel](ds *Datasource) (Repository[T], error) {
	var instance T
	collectionName := instance.GetTableName()

	if err := ds.RegisterModel(instance); err != nil {
		return nil, err
	}

	tmp, err := ds.GetModelConnector(instance)
	if err != nil {
		return nil, err
	}

	connector, ok := tmp.(*MongoConnector)
	if !ok {
		return nil, http_errors.InternalServerErrorWithCode(MONGO_CONNECTOR_TYPE_MISMATCH, "the connector for model "+instance.GetModelName()+" is not a MongoConnector")
	}

	client, ok := connector.GetDriver().(*mongo.Client)
	if !ok {
		return nil, http_errors.InternalServerErrorWithCode(MONGO_CLIENT_NOT_INITIALIZED, "the MongoDB client is not initialized correctly")
	}

	databaseName := connector.GetDatabaseName()
	if databaseName == "" {
		return nil, http_errors.BadRequestErrorWithCode(MONGO_DATABASE_NAME_REQUIRED, "database name is required")
	}

	return &MongoRepository[T]{
		collection: client.Database(databaseName).Collection(collectionName),
		connector:  connector,
		datasource: ds,
	}, nil
}

func (repository *MongoRepository[T]) GetCollection() *mongo.Collection {
	return repository.collection
}

func (repository *MongoRepository[T]) GetConnector() Connector {
	return repository.connector
}

func (repository *MongoRepository[T]) Find(ctx context.Context, filter *Filter) ([]T, error) {
	if filter == nil {
		filter = NewFilter()
	}

	findOpts := options.Find()
	if filter.Sort() != nil {
		findOpts.SetSort(filter.Sort())
	}
	if filter.GetLimit() != nil {
		findOpts.SetLimit(*filter.GetLimit())
	}
	if filter.GetSkip() != nil {
		findOpts.SetSkip(*filter.GetSkip())
	}
	if filter.Fields() != nil {
		findOpts.SetProjection(filter.Fields())
	}

	cursor, err := repository.collection.Find(ctx, filter.Where(), findOpts)
	if err != nil {
		return nil, mapMongoError(err)
	}

	var receiver []T
	if err = cursor.All(ctx, &receiver); err != nil {
		return nil, mapMongoError(err)
	}

	if receiver == nil {
		return []T{}, nil
	}
	return receiver, nil
}

func (repository *MongoRepository[T]) FindOne(ctx context.Context, filter *Filter) (*T, error) {
	if filter == nil {
		filter = NewFilter()
	}

	findOneOpts := options.FindOne()
	if filter.Sort() != nil {
		findOneOpts.SetSort(filter.Sort())
	}
	if filter.Fields() != nil {
		findOneOpts.SetProjection(filter.Fields())
	}

	result := repository.collection.FindOne(ctx, filter.Where(), findOneOpts)
	if result.Err() != nil {
		if errors.Is(result.Err(), mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, mapMongoError(result.Err())
	}

	receiver := new(T)
	if err := result.Decode(receiver); err != nil {
		return nil, mapMongoError(err)
	}

	return receiver, nil
}

func (repository *MongoRepository[T]) FindById(ctx context.Context, id any) (*T, error) {
	if id == nil {
		return nil, http_errors.BadRequestErrorWithCode(MONGO_ID_CANNOT_BE_NIL, "id cannot be nil")
	}

	return repository.FindOne(ctx, NewFilter().Eq(ID, id))
}

func (repository *MongoRepository[T]) Create(ctx context.Context, doc T) (*T, error) {
	if hook, ok := any(&doc).(BeforeCreateHook); ok {
		if err := hook.BeforeCreate(); err != nil {
			return nil, err
		}
	}

	insertedResult, err := repository.collection.InsertOne(ctx, doc)
	if err != nil {
		return nil, mapMongoError(err)
	}

	return repository.FindById(ctx, insertedResult.InsertedID)
}

func (repository *MongoRepository[T]) UpdateById(ctx context.Context, id any, update any) error {
	if id == nil {
		return http_errors.BadRequestErrorWithCode(MONGO_ID_CANNOT_BE_NIL, "id cannot be nil")
	}
	if update == nil {
		return http_errors.BadRequestErrorWithCode(MONGO_UPDATE_CANNOT_BE_NIL, "update cannot be nil")
	}

	result, err := repository.collection.UpdateOne(ctx, bson.M{ID: id}, bson.M{SET: update})
	if err != nil {
		return mapMongoError(err)
	}
	if result.MatchedCount == 0 {
		return http_errors.NotFoundErrorWithCode(MONGO_NO_DOCUMENTS_FOUND, "document not found")
	}

	return nil
}

func (repository *MongoRepository[T]) DeleteById(ctx context.Context, id any) error {
	if id == nil {
		return http_errors.BadRequestErrorWithCode(MONGO_ID_CANNOT_BE_NIL, "id cannot be nil")
	}

	result, err := repository.collection.DeleteOne(ctx, bson.M{ID: id})
	if err != nil {
		return mapMongoError(err)
	}
	if result.DeletedCount == 0 {
		return http_errors.NotFoundErrorWithCode(MONGO_NO_DOCUMENTS_FOUND, "document not found")
	}

	return nil
}

func (repository *MongoRepository[T]) Count(ctx context.Context, filter *Filter) (int64, error) {
	if filter == nil {
		filter = NewFilter()
	}

	count, err := repository.collection.CountDocuments(ctx, filter.Where())
	if err != nil {
		return 0, mapMongoError(err)
	}
	return count, nil
}

func (repository *MongoRepository[T]) Exists(ctx context.Context, id any) (bool, error) {
	if id == nil {
		return false, http_errors.BadRequestErrorWithCode(MONGO_ID_CANNOT_BE_NIL, "id cannot be nil")
	}

	doc, err := repository.FindOne(ctx, NewFilter().Eq(ID, id).Project(map[string]bool{ID: true}))
	if err != nil {
		return false, err
	}

	return doc != nil, nil
}
