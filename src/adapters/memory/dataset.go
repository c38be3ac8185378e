package memory

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"relmap/src/helpers"
	"relmap/src/models"

	"go.uber.org/zap"
)

// Dataset is an ordered, in-memory tuple collection owned by the memory
// gateway. Insertion order is preserved; relations iterate tuples in
// that order.
type Dataset struct {
	name   string
	mu     sync.RWMutex
	tuples []models.Tuple
	logger *zap.SugaredLogger
}

// NewDataset creates an empty dataset.
func NewDataset(name string, logger *zap.SugaredLogger) *Dataset {
	return &Dataset{
		name:   name,
		logger: logger,
	}
}

// Name returns the dataset name.
func (d *Dataset) Name() string {
	return d.name
}

// Tuples returns the dataset's tuples in insertion order.
func (d *Dataset) Tuples() []models.Tuple {
	d.mu.RLock()
	defer d.mu.RUnlock()

	tuples := make([]models.Tuple, len(d.tuples))
	copy(tuples, d.tuples)
	return tuples
}

// Len returns the number of tuples in the dataset.
func (d *Dataset) Len() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.tuples)
}

// Insert appends a tuple, assigning an identifier when the tuple has
// none, and returns the stored tuple.
func (d *Dataset) Insert(tuple models.Tuple) models.Tuple {
	stored := tuple.Clone()
	if stored.ID() == "" {
		stored[models.IDField] = helpers.GenerateUUID()
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	d.tuples = append(d.tuples, stored)
	return stored.Clone()
}

// Update merges the attributes into the tuple with the given identifier
// and returns the mutated tuple.
func (d *Dataset) Update(id string, attrs models.Tuple) (models.Tuple, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	for i, tuple := range d.tuples {
		if tuple.ID() == id {
			d.tuples[i] = tuple.Merge(attrs)
			return d.tuples[i].Clone(), true
		}
	}
	return nil, false
}

// Delete removes the tuple with the given identifier and returns it.
func (d *Dataset) Delete(id string) (models.Tuple, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	for i, tuple := range d.tuples {
		if tuple.ID() == id {
			d.tuples = append(d.tuples[:i], d.tuples[i+1:]...)
			return tuple, true
		}
	}
	return nil, false
}

// FieldNames returns the union of attribute names currently present in
// the dataset.
func (d *Dataset) FieldNames() []string {
	d.mu.RLock()
	defer d.mu.RUnlock()

	seen := make(map[string]bool)
	var names []string
	for _, tuple := range d.tuples {
		for field := range tuple {
			if !seen[field] {
				seen[field] = true
				names = append(names, field)
			}
		}
	}
	return names
}

// datasetFile is the on-disk shape of a dataset snapshot.
type datasetFile struct {
	Name   string         `bson:"name"`
	Tuples []models.Tuple `bson:"tuples"`
}

// Save writes a BSON snapshot of the dataset into the data directory.
func (d *Dataset) Save(dataDir string) error {
	d.mu.RLock()
	snapshot := datasetFile{Name: d.name, Tuples: d.tuples}
	d.mu.RUnlock()

	data, err := helpers.EncodeBSON(snapshot)
	if err != nil {
		return fmt.Errorf("error encoding dataset '%s': %w", d.name, err)
	}

	filePath := filepath.Join(dataDir, fmt.Sprintf("%s.dst", d.name))
	if err := os.WriteFile(filePath, data, 0644); err != nil {
		return fmt.Errorf("error writing dataset file %s: %w", filePath, err)
	}
	return nil
}

// Load replaces the dataset contents from a BSON snapshot file.
func (d *Dataset) Load(dataDir string) error {
	filePath := filepath.Join(dataDir, fmt.Sprintf("%s.dst", d.name))
	data, err := os.ReadFile(filePath)
	if err != nil {
		return fmt.Errorf("error reading dataset file %s: %w", filePath, err)
	}

	var snapshot datasetFile
	if err := helpers.DecodeBSON(data, &snapshot); err != nil {
		return fmt.Errorf("error decoding dataset '%s': %w", d.name, err)
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	d.tuples = snapshot.Tuples
	return nil
}
