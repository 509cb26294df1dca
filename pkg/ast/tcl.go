package ast

// TransactionMode is the BEGIN locking mode. The zero value is Deferred.
type TransactionMode int

const (
	Deferred TransactionMode = iota
	Immediate
	Exclusive
)

func (m TransactionMode) String() string {
	switch m {
	case Deferred:
		return "DEFERRED"
	case Immediate:
		return "IMMEDIATE"
	case Exclusive:
		return "EXCLUSIVE"
	default:
		return "UNKNOWN"
	}
}

// BeginStmt represents BEGIN [mode] [TRANSACTION].
type BeginStmt struct {
	Mode TransactionMode
}

// CommitStmt represents COMMIT or END [TRANSACTION].
type CommitStmt struct{}

// RollbackStmt represents ROLLBACK [TRANSACTION] [TO [SAVEPOINT] name].
// Savepoint is empty for a full rollback.
type RollbackStmt struct {
	Savepoint string
}

// SavepointStmt represents SAVEPOINT name.
type SavepointStmt struct {
	Name string
}

// ReleaseStmt represents RELEASE [SAVEPOINT] name.
type ReleaseStmt struct {
	Name string
}

func (s *BeginStmt) node()                {}
func (s *BeginStmt) transactionNode()     {}
func (s *CommitStmt) node()               {}
func (s *CommitStmt) transactionNode()    {}
func (s *RollbackStmt) node()             {}
func (s *RollbackStmt) transactionNode()  {}
func (s *SavepointStmt) node()            {}
func (s *SavepointStmt) transactionNode() {}
func (s *ReleaseStmt) node()              {}
func (s *ReleaseStmt) transactionNode()   {}
