package database

import (
	"context"

	"github.com/go-errors/errors"
	"github.com/xompass/gradebook-api/helpers"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/x/mongo/driver/connstring"
)

type MongoConnectorOpts struct {
	options.ClientOptions
	Name     string
	Database string
}

type MongoConnector struct {
	ctx     context.Context
	client  *mongo.Client
	options *MongoConnectorOpts
}

/**
 * NewMongoConnector creates a new MongoDB connector.
 * It initializes the MongoDB client with the provided options and checks the connection.
 */
func NewMongoConnector(opts *MongoConnectorOpts) (*MongoConnector, error) {
	connector := &MongoConnector{
		ctx:     context.Background(),
		options: opts,
	}

	if err := connector.connect(); err != nil {
		return nil, err
	}

	if err := connector.Ping(); err != nil {
		return nil, err
	}

	return connector, nil
}

// NewDefaultMongoConnector builds a connector from MONGO_URI / MONGO_DATABASE.
func NewDefaultMongoConnector() (*MongoConnector, error) {
	uri := helpers.GetEnv("MONGO_URI", "mongodb://localhost:27017")

	clientOptions := (&options.ClientOptions{}).ApplyURI(uri)

	conn, err := connstring.Parse(uri)
	if err != nil {
		return nil, err
	}

	dbName := conn.Database
	if dbName == "" {
		dbName = "gradebook"
	}

	opts := MongoConnectorOpts{
		ClientOptions: *clientOptions,
		Name:          "mongodb",
		Database:      helpers.GetEnv("MONGO_DATABASE", dbName),
	}

	return NewMongoConnector(&opts)
}

func (receiver *MongoConnector) connect() error {
	opts := receiver.options.ClientOptions

	client, err := mongo.Connect(&opts)
	if err != nil {
		return err
	}

	receiver.client = client
	return nil
}

func (receiver *MongoConnector) Ping() error {
	if receiver.client == nil {
		return errors.New("mongo client not initialized")
	}
	return receiver.client.Ping(receiver.ctx, nil)
}

func (receiver *MongoConnector) Disconnect() error {
	if receiver.client == nil {
		return errors.New("mongo client not initialized")
	}
	return receiver.client.Disconnect(receiver.ctx)
}

func (receiver *MongoConnector) GetDriver() any {
	return receiver.client
}

func (receiver *MongoConnector) GetName() string {
	return receiver.options.Name
}

func (receiver *MongoConnector) GetDatabaseName() string {
	return receiver.options.Database
}

func (receiver *MongoConnector) GetOptions() MongoConnectorOpts {
	return *receiver.options
}

// EnsureIndexes creates the given indexes on the model's collection.
// Existing indexes with the same definition are a no-op on the server side.
func (receiver *MongoConnector) EnsureIndexes(model IModel, indexes []IndexDefinition) error {
	if len(indexes) == 0 {
		return nil
	}

	if receiver.client == nil {
		return errors.New("mongo client not initialized")
	}

	collection := receiver.client.Database(receiver.options.Database).Collection(model.GetTableName())

	indexModels := make([]mongo.IndexModel, 0, len(indexes))
	for _, index := range indexes {
		indexOpts := options.Index()
		if index.Name != "" {
			indexOpts.SetName(index.Name)
		}
		if index.Unique {
			indexOpts.SetUnique(true)
		}

		indexModels = append(indexModels, mongo.IndexModel{
			Keys:    index.Keys,
			Options: indexOpts,
		})
	}

	_, err := collection.Indexes().CreateMany(receiver.ctx, indexModels)
	return err
}
