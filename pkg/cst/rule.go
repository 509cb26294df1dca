package cst

import "strconv"

// Rule tags a CST node with the grammar rule that produced it.
// The set is closed: builders switch over it exhaustively.
type Rule int

const (
	RuleUnknown Rule = iota

	// Identifier and literal leaves
	RuleIdentBare
	RuleIdentQuoted
	RuleNumber
	RuleString
	RuleBlob
	RuleNull
	RuleTrue
	RuleFalse
	RuleTypeIdent

	// Prefix operators
	RuleLogicalNot
	RuleBitwiseNot
	RulePositive
	RuleNegative

	// Infix operators
	RuleLogicalOr
	RuleLogicalAnd
	RuleIs
	RuleIsNot
	RuleEq
	RuleNe
	RuleLt
	RuleLe
	RuleGt
	RuleGe
	RuleBitwiseAnd
	RuleBitwiseOr
	RuleRightShift
	RuleLeftShift
	RulePlus
	RuleMinus
	RuleMul
	RuleDiv
	RuleMod
	RuleConcat

	// Flag leaves
	RuleDistinct
	RuleAll
	RuleStar
	RuleTemp
	RuleIfNotExists
	RuleIfExists
	RuleUnique
	RuleAsc
	RuleDesc
	RuleNullsFirst
	RuleNullsLast
	RuleUnion
	RuleUnionAll
	RuleIntersect
	RuleExcept
	RuleComma
	RuleCross
	RuleNatural
	RuleInner
	RuleLeft
	RuleRight
	RuleFull
	RuleNotIndexed
	RuleConflictAbort
	RuleConflictFail
	RuleConflictIgnore
	RuleConflictReplace
	RuleConflictRollback
	RuleReplaceHeader
	RuleInsertDefault
	RuleDoNothing
	RuleAutoIncrement
	RuleWithoutRowid
	RuleStrict
	RuleBefore
	RuleAfter
	RuleInsteadOf
	RuleTriggerDelete
	RuleTriggerInsert
	RuleDeferred
	RuleImmediate
	RuleExclusive

	// Shared non-terminals
	RuleIdent
	RuleIdents
	RuleLiteral
	RuleExpr
	RuleExprs
	RuleQualifiedColumn
	RuleSchemaObject
	RuleConflictResolution
	RuleIndexedColumns
	RuleIndexedColumn
	RuleWhereClause

	// DML
	RuleSelect
	RuleSelectQuery
	RuleSelectValues
	RuleValuesRows
	RuleResultColumns
	RuleResultColumn
	RuleCompoundOperator
	RuleOrderingTerms
	RuleOrderingTerm
	RuleLimit
	RuleOffset
	RuleGroupBy
	RuleHaving
	RuleFromClause
	RuleTableList
	RuleJoinClause
	RuleJoinSubClause
	RuleJoinOperator
	RuleJoinConstraint
	RuleQualifiedTable
	RuleIndexedBy
	RuleInsert
	RuleInsertHeader
	RuleInsertValues
	RuleInsertSelect
	RuleUpsert
	RuleConflictTarget
	RuleUpsertUpdate
	RuleSetClauses
	RuleSetClause
	RuleReturning
	RuleReturningColumn
	RuleUpdate
	RuleDelete

	// DDL
	RuleCreateTable
	RuleCreateTableBody
	RuleColumnDefs
	RuleColumnDef
	RuleTypeName
	RuleColumnConstraints
	RuleColumnConstraint
	RulePrimaryKeyConstraint
	RuleNotNullConstraint
	RuleUniqueConstraint
	RuleCheckConstraint
	RuleDefaultConstraint
	RuleTableConstraints
	RuleTableConstraint
	RuleTablePrimaryKey
	RuleTableUnique
	RuleAlterTable
	RuleRenameTable
	RuleRenameColumn
	RuleAddColumn
	RuleDropColumn
	RuleDropTable
	RuleCreateIndex
	RuleDropIndex
	RuleCreateView
	RuleDropView
	RuleCreateTrigger
	RuleTriggerUpdate
	RuleWhenClause
	RuleDropTrigger

	// TCL
	RuleBegin
	RuleCommit
	RuleRollback
	RuleSavepoint
	RuleRelease

	ruleCount
)

var ruleNames = [...]string{
	RuleUnknown: "unknown",

	RuleIdentBare:   "ident_bare",
	RuleIdentQuoted: "ident_quoted",
	RuleNumber:      "number",
	RuleString:      "string",
	RuleBlob:        "blob",
	RuleNull:        "null",
	RuleTrue:        "true",
	RuleFalse:       "false",
	RuleTypeIdent:   "type_ident",

	RuleLogicalNot: "logical_not",
	RuleBitwiseNot: "bitwise_not",
	RulePositive:   "positive",
	RuleNegative:   "negative",

	RuleLogicalOr:  "logical_or",
	RuleLogicalAnd: "logical_and",
	RuleIs:         "is",
	RuleIsNot:      "is_not",
	RuleEq:         "eq",
	RuleNe:         "ne",
	RuleLt:         "lt",
	RuleLe:         "le",
	RuleGt:         "gt",
	RuleGe:         "ge",
	RuleBitwiseAnd: "bitwise_and",
	RuleBitwiseOr:  "bitwise_or",
	RuleRightShift: "right_shift",
	RuleLeftShift:  "left_shift",
	RulePlus:       "plus",
	RuleMinus:      "minus",
	RuleMul:        "mul",
	RuleDiv:        "div",
	RuleMod:        "mod",
	RuleConcat:     "concat",

	RuleDistinct:         "distinct",
	RuleAll:              "all",
	RuleStar:             "star",
	RuleTemp:             "temp",
	RuleIfNotExists:      "if_not_exists",
	RuleIfExists:         "if_exists",
	RuleUnique:           "unique",
	RuleAsc:              "asc",
	RuleDesc:             "desc",
	RuleNullsFirst:       "nulls_first",
	RuleNullsLast:        "nulls_last",
	RuleUnion:            "union",
	RuleUnionAll:         "union_all",
	RuleIntersect:        "intersect",
	RuleExcept:           "except",
	RuleComma:            "comma",
	RuleCross:            "cross",
	RuleNatural:          "natural",
	RuleInner:            "inner",
	RuleLeft:             "left",
	RuleRight:            "right",
	RuleFull:             "full",
	RuleNotIndexed:       "not_indexed",
	RuleConflictAbort:    "abort",
	RuleConflictFail:     "fail",
	RuleConflictIgnore:   "ignore",
	RuleConflictReplace:  "replace",
	RuleConflictRollback: "rollback",
	RuleReplaceHeader:    "replace_header",
	RuleInsertDefault:    "insert_default",
	RuleDoNothing:        "do_nothing",
	RuleAutoIncrement:    "autoincrement",
	RuleWithoutRowid:     "without_rowid",
	RuleStrict:           "strict",
	RuleBefore:           "before",
	RuleAfter:            "after",
	RuleInsteadOf:        "instead_of",
	RuleTriggerDelete:    "trigger_delete",
	RuleTriggerInsert:    "trigger_insert",
	RuleDeferred:         "deferred",
	RuleImmediate:        "immediate",
	RuleExclusive:        "exclusive",

	RuleIdent:              "ident",
	RuleIdents:             "idents",
	RuleLiteral:            "literal",
	RuleExpr:               "expr",
	RuleExprs:              "exprs",
	RuleQualifiedColumn:    "qualified_column",
	RuleSchemaObject:       "schema_object",
	RuleConflictResolution: "conflict_resolution",
	RuleIndexedColumns:     "indexed_columns",
	RuleIndexedColumn:      "indexed_column",
	RuleWhereClause:        "where_clause",

	RuleSelect:           "select",
	RuleSelectQuery:      "select_query",
	RuleSelectValues:     "select_values",
	RuleValuesRows:       "values_rows",
	RuleResultColumns:    "result_columns",
	RuleResultColumn:     "result_column",
	RuleCompoundOperator: "compound_operator",
	RuleOrderingTerms:    "ordering_terms",
	RuleOrderingTerm:     "ordering_term",
	RuleLimit:            "limit",
	RuleOffset:           "offset",
	RuleGroupBy:          "group_by",
	RuleHaving:           "having",
	RuleFromClause:       "from_clause",
	RuleTableList:        "table_list",
	RuleJoinClause:       "join_clause",
	RuleJoinSubClause:    "join_sub_clause",
	RuleJoinOperator:     "join_operator",
	RuleJoinConstraint:   "join_constraint",
	RuleQualifiedTable:   "qualified_table",
	RuleIndexedBy:        "indexed_by",
	RuleInsert:           "insert",
	RuleInsertHeader:     "insert_header",
	RuleInsertValues:     "insert_values",
	RuleInsertSelect:     "insert_select",
	RuleUpsert:           "upsert",
	RuleConflictTarget:   "conflict_target",
	RuleUpsertUpdate:     "upsert_update",
	RuleSetClauses:       "set_clauses",
	RuleSetClause:        "set_clause",
	RuleReturning:        "returning",
	RuleReturningColumn:  "returning_column",
	RuleUpdate:           "update",
	RuleDelete:           "delete",

	RuleCreateTable:          "create_table",
	RuleCreateTableBody:      "create_table_body",
	RuleColumnDefs:           "column_defs",
	RuleColumnDef:            "column_def",
	RuleTypeName:             "type_name",
	RuleColumnConstraints:    "column_constraints",
	RuleColumnConstraint:     "column_constraint",
	RulePrimaryKeyConstraint: "primary_key_constraint",
	RuleNotNullConstraint:    "not_null_constraint",
	RuleUniqueConstraint:     "unique_constraint",
	RuleCheckConstraint:      "check_constraint",
	RuleDefaultConstraint:    "default_constraint",
	RuleTableConstraints:     "table_constraints",
	RuleTableConstraint:      "table_constraint",
	RuleTablePrimaryKey:      "table_primary_key",
	RuleTableUnique:          "table_unique",
	RuleAlterTable:           "alter_table",
	RuleRenameTable:          "rename_table",
	RuleRenameColumn:         "rename_column",
	RuleAddColumn:            "add_column",
	RuleDropColumn:           "drop_column",
	RuleDropTable:            "drop_table",
	RuleCreateIndex:          "create_index",
	RuleDropIndex:            "drop_index",
	RuleCreateView:           "create_view",
	RuleDropView:             "drop_view",
	RuleCreateTrigger:        "create_trigger",
	RuleTriggerUpdate:        "trigger_update",
	RuleWhenClause:           "when_clause",
	RuleDropTrigger:          "drop_trigger",

	RuleBegin:     "begin",
	RuleCommit:    "commit",
	RuleRollback:  "rollback_stmt",
	RuleSavepoint: "savepoint",
	RuleRelease:   "release",
}

// String returns the grammar name of the rule.
func (r Rule) String() string {
	if r >= 0 && r < ruleCount && ruleNames[r] != "" {
		return ruleNames[r]
	}
	return "rule(" + strconv.Itoa(int(r)) + ")"
}

// Valid reports whether r is a member of the closed rule set.
func (r Rule) Valid() bool {
	return r > RuleUnknown && r < ruleCount
}

// In reports whether r is one of rules.
func (r Rule) In(rules ...Rule) bool {
	for _, x := range rules {
		if r == x {
			return true
		}
	}
	return false
}
