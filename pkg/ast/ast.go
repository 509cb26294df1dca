// Package ast defines the abstract syntax tree produced from SQL text.
//
// Every node is built once from a single CST node and never mutated
// afterwards. Optional scalars use their zero value for "absent": an empty
// string for a missing schema, alias or savepoint name and a nil interface
// for a missing expression or clause.
package ast

// Node is implemented by every top-level result of a parse: DML and DDL
// statements as well as transaction-control statements.
type Node interface {
	node()
}

// Statement is the closed set of DML and DDL statements.
type Statement interface {
	Node
	statementNode()
}

// DML is the subset of statements allowed in a trigger body.
type DML interface {
	Statement
	dmlNode()
}

// TransactionStatement is implemented by BEGIN, COMMIT, ROLLBACK, SAVEPOINT and RELEASE.
type TransactionStatement interface {
	Node
	transactionNode()
}

// SchemaObject names a table, index, view or trigger, optionally schema-qualified.
type SchemaObject struct {
	Schema string
	Name   string
}

// ConflictResolution is the ON CONFLICT / OR policy. The zero value is ConflictAbort.
type ConflictResolution int

const (
	ConflictAbort ConflictResolution = iota
	ConflictFail
	ConflictIgnore
	ConflictReplace
	ConflictRollback
)

func (c ConflictResolution) String() string {
	switch c {
	case ConflictAbort:
		return "ABORT"
	case ConflictFail:
		return "FAIL"
	case ConflictIgnore:
		return "IGNORE"
	case ConflictReplace:
		return "REPLACE"
	case ConflictRollback:
		return "ROLLBACK"
	default:
		return "UNKNOWN"
	}
}

// IndexedColumn is a column in an index, table constraint or conflict target.
type IndexedColumn struct {
	Name string
	Asc  bool // default true
}

// StatementKind returns a short upper-case name for a top-level node,
// e.g. "CREATE INDEX" or "SAVEPOINT".
func StatementKind(n Node) string {
	switch n.(type) {
	case *SelectStmt:
		return "SELECT"
	case *InsertStmt:
		return "INSERT"
	case *UpdateStmt:
		return "UPDATE"
	case *DeleteStmt:
		return "DELETE"
	case *CreateTableStmt:
		return "CREATE TABLE"
	case *CreateIndexStmt:
		return "CREATE INDEX"
	case *CreateViewStmt:
		return "CREATE VIEW"
	case *CreateTriggerStmt:
		return "CREATE TRIGGER"
	case *AlterTableStmt:
		return "ALTER TABLE"
	case *DropTableStmt:
		return "DROP TABLE"
	case *DropIndexStmt:
		return "DROP INDEX"
	case *DropViewStmt:
		return "DROP VIEW"
	case *DropTriggerStmt:
		return "DROP TRIGGER"
	case *BeginStmt:
		return "BEGIN"
	case *CommitStmt:
		return "COMMIT"
	case *RollbackStmt:
		return "ROLLBACK"
	case *SavepointStmt:
		return "SAVEPOINT"
	case *ReleaseStmt:
		return "RELEASE"
	}
	return "UNKNOWN"
}
