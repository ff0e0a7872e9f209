package database

import (
	"github.com/go-errors/errors"
)

// Connector es una interfaz genérica para cualquier tipo de conector de base de datos
type Connector interface {
	Ping() error
	Disconnect() error
	GetName() string
	GetDatabaseName() string
	GetDriver() any
}

type Datasource struct {
	connectors           map[string]Connector
	models               map[string]IModel
	connectorByModelName map[string]Connector
}

func (receiver *Datasource) AddConnector(connector Connector) error {
	if receiver == nil {
		return errors.New("datasource is nil")
	}

	if receiver.connectors == nil {
		receiver.connectors = make(map[string]Connector)
	}

	receiver.connectors[connector.GetName()] = connector
	return nil
}

func (receiver *Datasource) Destroy() {
	for _, connector := range receiver.connectors {
		if connector != nil {
			_ = connector.Disconnect()
		}
	}
}

func (receiver *Datasource) RegisterModel(model IModel) error {
	if receiver == nil {
		return errors.New("datasource is nil")
	}

	connectorName := model.GetConnectorName()
	modelName := model.GetModelName()
	connector, err := receiver.GetConnector(connectorName)
	if err != nil {
		return err
	}

	if receiver.models == nil {
		receiver.models = make(map[string]IModel)
	}

	if receiver.connectorByModelName == nil {
		receiver.connectorByModelName = make(map[string]Connector)
	}

	if existing, ok := receiver.connectorByModelName[modelName]; ok && existing != connector {
		return errors.Errorf("the model %s is already registered with connector %s", modelName, existing.GetName())
	}

	receiver.models[modelName] = model
	receiver.connectorByModelName[modelName] = connector
	return nil
}

func (receiver *Datasource) GetModelConnector(model IModel) (Connector, error) {
	if receiver == nil {
		return nil, errors.New("datasource is nil")
	}

	connector, ok := receiver.connectorByModelName[model.GetModelName()]
	if !ok {
		return nil, errors.Errorf("the model %s is not registered", model.GetModelName())
	}

	return connector, nil
}

func (receiver *Datasource) GetConnector(name string) (Connector, error) {
	if receiver == nil {
		return nil, errors.New("datasource is nil")
	}

	connector, ok := receiver.connectors[name]
	if !ok {
		return nil, errors.Errorf("the connector %s is not registered", name)
	}

	return connector, nil
}

// EnsureIndexes creates the indexes declared by every registered model.
// Call it after all repositories are constructed.
func (receiver *Datasource) EnsureIndexes() error {
	if receiver == nil {
		return errors.New("datasource is nil")
	}

	for modelName, model := range receiver.models {
		indexed, ok := model.(IndexedModel)
		if !ok {
			continue
		}

		connector, err := receiver.GetModelConnector(model)
		if err != nil {
			return errors.Errorf("failed to get connector for model %s: %v", modelName, err)
		}

		if mongoConnector, ok := connector.(*MongoConnector); ok {
			if err := mongoConnector.EnsureIndexes(model, indexed.Indexes()); err != nil {
				return errors.Errorf("failed to ensure indexes for model %s: %v", modelName, err)
			}
		}
	}

	return nil
}
