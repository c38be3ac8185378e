package memory

import (
	"fmt"
	"os"
	"sync"

	"relmap/src/commands"
	"relmap/src/settings"

	"go.uber.org/zap"
)

// AdapterID is the identifier the memory adapter registers under.
const AdapterID = "memory"

// Gateway owns the in-memory datasets backing relations. Datasets are
// created on demand and can be snapshotted to BSON data files in the
// configured data directory.
type Gateway struct {
	mu       sync.RWMutex
	datasets map[string]*Dataset
	settings *settings.Arguments
	logger   *zap.SugaredLogger
}

// NewGateway creates a memory gateway.
func NewGateway(args *settings.Arguments, logger *zap.SugaredLogger) *Gateway {
	return &Gateway{
		datasets: make(map[string]*Dataset),
		settings: args,
		logger:   logger,
	}
}

// Dataset returns the dataset with the given name, creating it when it
// does not exist yet.
func (g *Gateway) Dataset(name string) *Dataset {
	g.mu.Lock()
	defer g.mu.Unlock()

	dataset, exists := g.datasets[name]
	if !exists {
		dataset = NewDataset(name, g.logger)
		g.datasets[name] = dataset
		if g.settings.Debug {
			g.logger.Debugf("Created memory dataset '%s'", name)
		}
	}
	return dataset
}

// ExtendCommandClass records the dataset identity and its currently
// observed field names into the command definition before instantiation.
func (g *Gateway) ExtendCommandClass(def *commands.Definition, dataset interface{}) error {
	ds, ok := dataset.(*Dataset)
	if !ok {
		return fmt.Errorf("relation for command '%s' is not backed by a memory dataset", def.RegisteredName())
	}
	def.Meta["dataset"] = ds.Name()
	def.Meta["fields"] = ds.FieldNames()
	return nil
}

// SaveAll snapshots every dataset to the data directory.
func (g *Gateway) SaveAll() error {
	g.mu.RLock()
	defer g.mu.RUnlock()

	if err := os.MkdirAll(g.settings.DataDir, 0755); err != nil {
		return fmt.Errorf("could not create data directory: %w", err)
	}
	for name, dataset := range g.datasets {
		if err := dataset.Save(g.settings.DataDir); err != nil {
			return fmt.Errorf("failed to save dataset '%s': %w", name, err)
		}
	}
	return nil
}

// LoadDataset loads a dataset snapshot from the data directory, creating
// the dataset when needed.
func (g *Gateway) LoadDataset(name string) (*Dataset, error) {
	dataset := g.Dataset(name)
	if err := dataset.Load(g.settings.DataDir); err != nil {
		return nil, fmt.Errorf("failed to load dataset '%s': %w", name, err)
	}
	return dataset, nil
}

// Register installs the memory adapter's command namespace into the
// resolver.
func Register(resolver *commands.Resolver) {
	resolver.Register(commands.VerbCreate, AdapterID, NewCreateCommand)
	resolver.Register(commands.VerbUpdate, AdapterID, NewUpdateCommand)
	resolver.Register(commands.VerbDelete, AdapterID, NewDeleteCommand)
}
