package ast

import (
	"fmt"
	"testing"
)

func TestEnumNames(t *testing.T) {
	tests := []struct {
		value fmt.Stringer
		want  string
	}{
		{JoinComma, "COMMA"},
		{JoinCross, "CROSS"},
		{JoinInner, "INNER"},
		{JoinOuter, "OUTER"},
		{JoinKind(99), "UNKNOWN"},
		{TriggerDelete, "DELETE"},
		{TriggerInsert, "INSERT"},
		{TriggerUpdate, "UPDATE"},
		{TriggerEventKind(99), "UNKNOWN"},
		{Deferred, "DEFERRED"},
		{TriggerBefore, "BEFORE"},
		{CompoundUnion, "UNION"},
		{ConflictAbort, "ABORT"},
		{LiteralNull, "Null"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.value.String(); got != tt.want {
				t.Errorf("%T(%d).String() = %q, want %q", tt.value, tt.value, got, tt.want)
			}
		})
	}
}

func TestJoinOperatorString(t *testing.T) {
	tests := []struct {
		op   JoinOperator
		want string
	}{
		{JoinOperator{Kind: JoinComma}, ","},
		{JoinOperator{Kind: JoinCross}, "CROSS JOIN"},
		{JoinOperator{Kind: JoinInner}, "INNER JOIN"},
		{JoinOperator{Kind: JoinInner, Natural: true}, "NATURAL INNER JOIN"},
		{JoinOperator{Kind: JoinOuter, Outer: OuterLeft, Natural: true}, "NATURAL LEFT OUTER JOIN"},
	}
	for _, tt := range tests {
		if got := tt.op.String(); got != tt.want {
			t.Errorf("%+v.String() = %q, want %q", tt.op, got, tt.want)
		}
	}
}

func TestTriggerEventString(t *testing.T) {
	tests := []struct {
		event TriggerEvent
		want  string
	}{
		{TriggerEvent{Kind: TriggerDelete}, "DELETE"},
		{TriggerEvent{Kind: TriggerInsert}, "INSERT"},
		{TriggerEvent{Kind: TriggerUpdate}, "UPDATE"},
		{TriggerEvent{Kind: TriggerUpdate, Columns: []string{"a", "b"}}, "UPDATE OF a, b"},
	}
	for _, tt := range tests {
		if got := tt.event.String(); got != tt.want {
			t.Errorf("%+v.String() = %q, want %q", tt.event, got, tt.want)
		}
	}
}
