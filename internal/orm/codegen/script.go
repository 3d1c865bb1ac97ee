package codegen

import (
	"io"

	"go.uber.org/zap"

	"github.com/adeccscholar/adecc-DataDictionary-sub000/internal/orm/schema"
)

// ScriptGenerator drives a StatementWriter over a whole dictionary in
// dependency order
type ScriptGenerator struct {
	dict   *schema.Dictionary
	logger *zap.Logger
}

// NewScriptGenerator creates a script generator. A nil logger disables
// logging.
func NewScriptGenerator(dict *schema.Dictionary, logger *zap.Logger) *ScriptGenerator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ScriptGenerator{dict: dict, logger: logger}
}

// CreateScript writes the statements creating the whole dictionary: tables
// in topological order with their keys, indices and checks, then foreign
// keys, seed values, views and post conditions
func (g *ScriptGenerator) CreateScript(w io.Writer) error {
	order, err := g.dict.TopologicalSequence()
	if err != nil {
		return err
	}
	g.logger.Info("writing create script",
		zap.String("dictionary", g.dict.Name()),
		zap.Int("tables", len(order)),
	)

	sw := NewStatementWriter(w, g.dict)
	tables, views := g.split(order)

	for _, name := range tables {
		g.logger.Debug("create table", zap.String("table", name))
		sw.Use(name).
			WriteCreateTable().
			WriteAlterTable().
			WritePrimaryKey().
			WriteUniqueKeys().
			WriteCreateIndices().
			WriteCreateCheckConditions()
	}
	for _, name := range tables {
		sw.Use(name).WriteForeignKeys()
	}
	for _, name := range tables {
		sw.Use(name).WriteRangeValues()
	}
	for _, name := range views {
		g.logger.Debug("create view", zap.String("view", name))
		sw.Use(name).WriteCreateTable()
	}
	for _, name := range tables {
		sw.Use(name).WriteCreatePostConditions()
	}

	if err := sw.Err(); err != nil {
		g.logger.Error("create script failed", zap.Error(err))
		return err
	}
	return nil
}

// DropScript writes the statements removing the whole dictionary: views,
// foreign keys, then cleanup and DROP TABLE in reverse topological order
func (g *ScriptGenerator) DropScript(w io.Writer) error {
	order, err := g.dict.TopologicalSequence()
	if err != nil {
		return err
	}
	g.logger.Info("writing drop script",
		zap.String("dictionary", g.dict.Name()),
		zap.Int("tables", len(order)),
	)

	sw := NewStatementWriter(w, g.dict)
	tables, views := g.split(order)

	for _, name := range views {
		sw.Use(name).WriteCleanupStatements().WriteDropTable()
	}
	for _, name := range tables {
		sw.Use(name).WriteDropForeignKeys()
	}
	for i := len(tables) - 1; i >= 0; i-- {
		g.logger.Debug("drop table", zap.String("table", tables[i]))
		sw.Use(tables[i]).WriteCleanupStatements().WriteDropTable()
	}

	if err := sw.Err(); err != nil {
		g.logger.Error("drop script failed", zap.Error(err))
		return err
	}
	return nil
}

// StatementsScript writes every applicable query of every table, tables in
// name order
func (g *ScriptGenerator) StatementsScript(w io.Writer) error {
	sw := NewStatementWriter(w, g.dict)
	queries := NewQueryGenerator(g.dict)

	count := 0
	for _, table := range g.dict.Tables() {
		sw.Use(table.Name)
		for _, req := range queries.Requests(table) {
			sw.WriteQuery(req.Type, req.Name)
			count++
		}
	}

	if err := sw.Err(); err != nil {
		g.logger.Error("statements script failed", zap.Error(err))
		return err
	}
	g.logger.Info("wrote statements",
		zap.String("dictionary", g.dict.Name()),
		zap.Int("statements", count),
	)
	return nil
}

// split separates views from tables keeping the given order
func (g *ScriptGenerator) split(order []string) (tables, views []string) {
	for _, name := range order {
		table, err := g.dict.FindTable(name)
		if err == nil && table.IsView() {
			views = append(views, name)
			continue
		}
		tables = append(tables, name)
	}
	return tables, views
}
