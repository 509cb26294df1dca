package ast

import "strings"

// CreateTableStmt is CREATE [TEMP] TABLE [IF NOT EXISTS] name (...) | AS SELECT.
type CreateTableStmt struct {
	Temp        bool
	IfNotExists bool
	Table       SchemaObject
	Body        CreateTableBody
}

func (s *CreateTableStmt) node()          {}
func (s *CreateTableStmt) statementNode() {}

// CreateTableBody is *TableDefinition or *AsSelect.
type CreateTableBody interface {
	createTableBody()
}

// TableDefinition is the parenthesized column and constraint list plus
// trailing table options.
type TableDefinition struct {
	Columns     []ColumnDef
	Constraints []TableConstraint
	Options     []TableOption
}

func (b *TableDefinition) createTableBody() {}

// AsSelect is CREATE TABLE ... AS SELECT.
type AsSelect struct {
	Select *SelectStmt
}

func (b *AsSelect) createTableBody() {}

// TableOption is a trailing table option.
type TableOption int

const (
	WithoutRowid TableOption = iota
	Strict
)

func (o TableOption) String() string {
	switch o {
	case WithoutRowid:
		return "WITHOUT ROWID"
	case Strict:
		return "STRICT"
	default:
		return "UNKNOWN"
	}
}

// ColumnDef is a column name, optional type and constraints.
type ColumnDef struct {
	Name        string
	Type        *TypeName
	Constraints []ColumnConstraint
}

// TypeName is a column type. Name is lower-cased; multi-word names are
// joined by single spaces.
type TypeName struct {
	Name string
	Size TypeSize
}

func (t *TypeName) String() string {
	switch s := t.Size.(type) {
	case *MaxSize:
		return t.Name + "(" + s.Size + ")"
	case *PrecisionScale:
		return t.Name + "(" + s.Precision + ", " + s.Scale + ")"
	}
	return t.Name
}

// TypeSize is *MaxSize or *PrecisionScale.
type TypeSize interface {
	typeSize()
}

// MaxSize is a single size argument, e.g. varchar(255).
type MaxSize struct {
	Size string
}

func (s *MaxSize) typeSize() {}

// PrecisionScale is a two-argument size, e.g. decimal(10, 2).
type PrecisionScale struct {
	Precision string
	Scale     string
}

func (s *PrecisionScale) typeSize() {}

// ColumnConstraint is an optionally named column constraint.
type ColumnConstraint struct {
	Name       string
	Constraint ColumnConstraintKind
}

// ColumnConstraintKind is one of the column constraint types below.
type ColumnConstraintKind interface {
	columnConstraint()
}

// PrimaryKeyConstraint defaults to ascending without AUTOINCREMENT.
type PrimaryKeyConstraint struct {
	Asc           bool
	AutoIncrement bool
}

type NotNullConstraint struct{}

type UniqueConstraint struct{}

type CheckConstraint struct {
	Expr Expr
}

type DefaultConstraint struct {
	Value *Literal
}

func (c *PrimaryKeyConstraint) columnConstraint() {}
func (c *NotNullConstraint) columnConstraint()    {}
func (c *UniqueConstraint) columnConstraint()     {}
func (c *CheckConstraint) columnConstraint()      {}
func (c *DefaultConstraint) columnConstraint()    {}

// TableConstraintType distinguishes table-level constraints.
type TableConstraintType int

const (
	TablePrimaryKey TableConstraintType = iota
	TableUnique
)

func (t TableConstraintType) String() string {
	if t == TableUnique {
		return "UNIQUE"
	}
	return "PRIMARY KEY"
}

// TableConstraint is [CONSTRAINT name] PRIMARY KEY|UNIQUE (cols).
type TableConstraint struct {
	Name    string
	Type    TableConstraintType
	Columns []IndexedColumn
}

// CreateIndexStmt is CREATE [UNIQUE] INDEX.
type CreateIndexStmt struct {
	Unique      bool
	IfNotExists bool
	Index       SchemaObject
	Table       string
	Columns     []IndexedColumn
	Where       Expr
}

func (s *CreateIndexStmt) node()          {}
func (s *CreateIndexStmt) statementNode() {}

// CreateViewStmt is CREATE [TEMP] VIEW.
type CreateViewStmt struct {
	Temp        bool
	IfNotExists bool
	View        SchemaObject
	Columns     []string
	Select      *SelectStmt
}

func (s *CreateViewStmt) node()          {}
func (s *CreateViewStmt) statementNode() {}

// TriggerTiming is when a trigger fires relative to its event.
type TriggerTiming int

const (
	TriggerBefore TriggerTiming = iota
	TriggerAfter
	TriggerInsteadOf
)

func (t TriggerTiming) String() string {
	switch t {
	case TriggerBefore:
		return "BEFORE"
	case TriggerAfter:
		return "AFTER"
	case TriggerInsteadOf:
		return "INSTEAD OF"
	default:
		return "UNKNOWN"
	}
}

// TriggerEventKind is the statement kind a trigger listens for.
type TriggerEventKind int

const (
	TriggerDelete TriggerEventKind = iota
	TriggerInsert
	TriggerUpdate
)

func (k TriggerEventKind) String() string {
	switch k {
	case TriggerDelete:
		return "DELETE"
	case TriggerInsert:
		return "INSERT"
	case TriggerUpdate:
		return "UPDATE"
	default:
		return "UNKNOWN"
	}
}

// TriggerEvent is DELETE, INSERT or UPDATE [OF cols].
type TriggerEvent struct {
	Kind    TriggerEventKind
	Columns []string
}

func (e TriggerEvent) String() string {
	if e.Kind == TriggerUpdate && len(e.Columns) > 0 {
		return "UPDATE OF " + strings.Join(e.Columns, ", ")
	}
	return e.Kind.String()
}

// CreateTriggerStmt is CREATE [TEMP] TRIGGER.
type CreateTriggerStmt struct {
	Temp        bool
	IfNotExists bool
	Trigger     SchemaObject
	Timing      TriggerTiming
	Event       TriggerEvent
	Table       string
	When        Expr
	Body        []DML
}

func (s *CreateTriggerStmt) node()          {}
func (s *CreateTriggerStmt) statementNode() {}

// AlterTableStmt is ALTER TABLE name <action>.
type AlterTableStmt struct {
	Table  SchemaObject
	Action AlterTableAction
}

func (s *AlterTableStmt) node()          {}
func (s *AlterTableStmt) statementNode() {}

// AlterTableAction is *RenameTable, *RenameColumn, *AddColumn or *DropColumn.
type AlterTableAction interface {
	alterAction()
}

type RenameTable struct {
	To string
}

type RenameColumn struct {
	From string
	To   string
}

type AddColumn struct {
	Column ColumnDef
}

type DropColumn struct {
	Name string
}

func (a *RenameTable) alterAction()  {}
func (a *RenameColumn) alterAction() {}
func (a *AddColumn) alterAction()    {}
func (a *DropColumn) alterAction()   {}

// DropTableStmt is DROP TABLE [IF EXISTS] name.
type DropTableStmt struct {
	IfExists bool
	Table    SchemaObject
}

// DropIndexStmt is DROP INDEX [IF EXISTS] name.
type DropIndexStmt struct {
	IfExists bool
	Index    SchemaObject
}

// DropViewStmt is DROP VIEW [IF EXISTS] name.
type DropViewStmt struct {
	IfExists bool
	View     SchemaObject
}

// DropTriggerStmt is DROP TRIGGER [IF EXISTS] name.
type DropTriggerStmt struct {
	IfExists bool
	Trigger  SchemaObject
}

func (s *DropTableStmt) node()            {}
func (s *DropTableStmt) statementNode()   {}
func (s *DropIndexStmt) node()            {}
func (s *DropIndexStmt) statementNode()   {}
func (s *DropViewStmt) node()             {}
func (s *DropViewStmt) statementNode()    {}
func (s *DropTriggerStmt) node()          {}
func (s *DropTriggerStmt) statementNode() {}
