package ast

// SelectStmt is a SELECT, possibly compounded with further cores. ORDER BY,
// LIMIT and OFFSET apply to the whole compound result.
type SelectStmt struct {
	Core      SelectCore
	Compounds []CompoundSelect
	OrderBy   []OrderingTerm
	Limit     Expr
	Offset    Expr
}

func (s *SelectStmt) node()          {}
func (s *SelectStmt) statementNode() {}
func (s *SelectStmt) dmlNode()       {}

// SelectCore is either a *SelectQuery or a *SelectValues.
type SelectCore interface {
	selectCore()
}

// SelectQuery is the row-producing SELECT ... FROM ... WHERE ... core.
type SelectQuery struct {
	Distinct bool
	Columns  []ResultColumn
	From     FromClause
	Where    Expr
	GroupBy  []Expr
	Having   Expr
}

func (c *SelectQuery) selectCore() {}

// SelectValues is a VALUES (...), (...) core.
type SelectValues struct {
	Rows [][]Expr
}

func (c *SelectValues) selectCore() {}

// CompoundOperator joins two select cores.
type CompoundOperator int

const (
	CompoundUnion CompoundOperator = iota
	CompoundUnionAll
	CompoundIntersect
	CompoundExcept
)

func (op CompoundOperator) String() string {
	switch op {
	case CompoundUnion:
		return "UNION"
	case CompoundUnionAll:
		return "UNION ALL"
	case CompoundIntersect:
		return "INTERSECT"
	case CompoundExcept:
		return "EXCEPT"
	default:
		return "UNKNOWN"
	}
}

// CompoundSelect is one (operator, core) link of a compound select.
type CompoundSelect struct {
	Op   CompoundOperator
	Core SelectCore
}

// ResultColumn is one entry of the select list: either * or an expression
// with an optional alias.
type ResultColumn struct {
	Star  bool
	Expr  Expr
	Alias string
}

// ReturningColumn is one entry of a RETURNING clause.
type ReturningColumn struct {
	Star  bool
	Expr  Expr
	Alias string
}

// OrderingTerm is one ORDER BY entry. Asc and NullsFirst default to true.
type OrderingTerm struct {
	Expr       Expr
	Asc        bool
	NullsFirst bool
}

// FromClause is either a *TableList (comma-separated tables without join
// constraints) or a *JoinClause.
type FromClause interface {
	fromClause()
}

// TableList is FROM a, b, c.
type TableList struct {
	Tables []QualifiedTable
}

func (f *TableList) fromClause() {}

// JoinClause is a leading table followed by join links.
type JoinClause struct {
	Table QualifiedTable
	Joins []JoinSubClause
}

func (f *JoinClause) fromClause() {}

// JoinSubClause is one "<op> table [ON expr | USING (cols)]" link.
type JoinSubClause struct {
	Op         JoinOperator
	Table      QualifiedTable
	Constraint *JoinConstraint
}

// JoinKind classifies a join operator.
type JoinKind int

const (
	JoinComma JoinKind = iota
	JoinCross
	JoinInner
	JoinOuter
)

func (k JoinKind) String() string {
	switch k {
	case JoinComma:
		return "COMMA"
	case JoinCross:
		return "CROSS"
	case JoinInner:
		return "INNER"
	case JoinOuter:
		return "OUTER"
	default:
		return "UNKNOWN"
	}
}

// OuterJoinType is the side of an outer join.
type OuterJoinType int

const (
	OuterLeft OuterJoinType = iota
	OuterRight
	OuterFull
)

func (t OuterJoinType) String() string {
	switch t {
	case OuterLeft:
		return "LEFT"
	case OuterRight:
		return "RIGHT"
	case OuterFull:
		return "FULL"
	default:
		return "UNKNOWN"
	}
}

// JoinOperator describes how two tables are joined. Natural applies to
// inner and outer joins; Outer is only meaningful when Kind is JoinOuter.
type JoinOperator struct {
	Kind    JoinKind
	Natural bool
	Outer   OuterJoinType
}

func (op JoinOperator) String() string {
	var s string
	switch op.Kind {
	case JoinComma:
		return ","
	case JoinCross:
		return "CROSS JOIN"
	case JoinInner:
		s = "INNER JOIN"
	case JoinOuter:
		s = op.Outer.String() + " OUTER JOIN"
	default:
		return "UNKNOWN"
	}
	if op.Natural {
		s = "NATURAL " + s
	}
	return s
}

// JoinConstraint is ON expr or USING (columns). Exactly one is set.
type JoinConstraint struct {
	On    Expr
	Using []string
}

// QualifiedTable is a table reference with optional alias and index hint.
type QualifiedTable struct {
	Table   SchemaObject
	Alias   string
	Indexed *Indexed
}

// Indexed is INDEXED BY name or NOT INDEXED.
type Indexed struct {
	NotIndexed bool
	Index      string
}

// InsertStmt is INSERT or REPLACE.
type InsertStmt struct {
	Header    InsertHeader
	Table     SchemaObject
	Alias     string
	Columns   []string
	Source    InsertSource
	Returning []ReturningColumn
}

func (s *InsertStmt) node()          {}
func (s *InsertStmt) statementNode() {}
func (s *InsertStmt) dmlNode()       {}

// InsertHeader is "INSERT [OR conflict]" or "REPLACE". Conflict is
// meaningful only when Replace is false.
type InsertHeader struct {
	Replace  bool
	Conflict ConflictResolution
}

// InsertSource is *ValuesSource, *SelectSource or *DefaultValues.
type InsertSource interface {
	insertSource()
}

// ValuesSource is VALUES (...), (...) with an optional upsert clause.
type ValuesSource struct {
	Rows   [][]Expr
	Upsert *Upsert
}

func (s *ValuesSource) insertSource() {}

// SelectSource is INSERT ... SELECT with an optional upsert clause.
type SelectSource struct {
	Select *SelectStmt
	Upsert *Upsert
}

func (s *SelectSource) insertSource() {}

// DefaultValues is DEFAULT VALUES.
type DefaultValues struct{}

func (s *DefaultValues) insertSource() {}

// Upsert is ON CONFLICT [(target) [WHERE ...]] DO NOTHING | DO UPDATE.
type Upsert struct {
	Target      []IndexedColumn
	TargetWhere Expr
	Action      UpsertAction
}

// UpsertAction is *DoNothing or *DoUpdate.
type UpsertAction interface {
	upsertAction()
}

type DoNothing struct{}

func (a *DoNothing) upsertAction() {}

type DoUpdate struct {
	Set   []SetClause
	Where Expr
}

func (a *DoUpdate) upsertAction() {}

// SetClause assigns Value to one column or, for "(a, b) = ...", to a list.
type SetClause struct {
	Columns []string
	List    bool
	Value   Expr
}

// UpdateStmt is UPDATE [OR conflict] table SET ... .
type UpdateStmt struct {
	Conflict  ConflictResolution
	Table     QualifiedTable
	Set       []SetClause
	From      FromClause
	Where     Expr
	Returning []ReturningColumn
}

func (s *UpdateStmt) node()          {}
func (s *UpdateStmt) statementNode() {}
func (s *UpdateStmt) dmlNode()       {}

// DeleteStmt is DELETE FROM table [WHERE ...] [RETURNING ...].
type DeleteStmt struct {
	Table     QualifiedTable
	Where     Expr
	Returning []ReturningColumn
}

func (s *DeleteStmt) node()          {}
func (s *DeleteStmt) statementNode() {}
func (s *DeleteStmt) dmlNode()       {}
