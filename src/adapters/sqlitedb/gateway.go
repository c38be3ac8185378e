package sqlitedb

import (
	"database/sql"
	"fmt"
	"sync"

	"relmap/src/commands"

	// Registers the sqlite3 driver with database/sql.
	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"
)

// AdapterID is the identifier the sqlite adapter registers under.
const AdapterID = "sqlite"

// Gateway owns one sqlite database and hands out table-backed datasets.
type Gateway struct {
	db     *sql.DB
	mu     sync.RWMutex
	tables map[string]*TableSource
	logger *zap.SugaredLogger
}

// NewGateway opens the sqlite database at the given path. Use ":memory:"
// for an in-process throwaway database.
func NewGateway(path string, logger *zap.SugaredLogger) (*Gateway, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("error opening sqlite database %s: %w", path, err)
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("error connecting to sqlite database %s: %w", path, err)
	}
	return &Gateway{
		db:     db,
		tables: make(map[string]*TableSource),
		logger: logger,
	}, nil
}

// DB exposes the underlying handle for schema setup.
func (g *Gateway) DB() *sql.DB {
	return g.db
}

// Close closes the underlying database.
func (g *Gateway) Close() error {
	return g.db.Close()
}

// Table returns the dataset handle for a table, creating the handle on
// first use. The table itself must already exist.
func (g *Gateway) Table(name string) *TableSource {
	g.mu.Lock()
	defer g.mu.Unlock()

	table, exists := g.tables[name]
	if !exists {
		table = &TableSource{db: g.db, table: name, logger: g.logger}
		g.tables[name] = table
	}
	return table
}

// ExtendCommandClass injects the table's column metadata into the
// command definition so the command variants can shape their statements
// to the dataset before any instance is built.
func (g *Gateway) ExtendCommandClass(def *commands.Definition, dataset interface{}) error {
	table, ok := dataset.(*TableSource)
	if !ok {
		return fmt.Errorf("relation for command '%s' is not backed by a sqlite table", def.RegisteredName())
	}

	columns, err := table.Columns()
	if err != nil {
		return fmt.Errorf("error reading columns for table '%s': %w", table.table, err)
	}
	def.Meta["table"] = table.table
	def.Meta["columns"] = columns
	return nil
}

// Register installs the sqlite adapter's command namespace into the
// resolver.
func Register(resolver *commands.Resolver) {
	resolver.Register(commands.VerbCreate, AdapterID, NewCreateCommand)
	resolver.Register(commands.VerbUpdate, AdapterID, NewUpdateCommand)
	resolver.Register(commands.VerbDelete, AdapterID, NewDeleteCommand)
}
