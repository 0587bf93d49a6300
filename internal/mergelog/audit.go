package mergelog

import (
	"github.com/javanhut/multimerge/internal/identity"
	"github.com/javanhut/multimerge/internal/store"
)

// AuditLogger persists every resolution event into the plan database,
// giving a run that is never transactional (exports cannot roll back
// partway through) a durable record of what was decided.
type AuditLogger struct {
	db *store.DB
}

// NewAuditLogger wraps an already-open plan database.
func NewAuditLogger(db *store.DB) *AuditLogger {
	return &AuditLogger{db: db}
}

func (a *AuditLogger) append(kind string, idx identity.Index, detail string) {
	_ = a.db.AppendEvent(store.Event{
		Kind:   kind,
		Path:   idx.RelPath,
		Pid:    idx.Pid.Value(),
		Detail: detail,
	})
}

func (a *AuditLogger) Add(idx identity.Index) {
	a.append("add", idx, "")
}

func (a *AuditLogger) Replace(existing, with identity.Index) {
	a.append("replace", with, existing.String())
}

func (a *AuditLogger) Merge(existing, with identity.Index) {
	a.append("merge", with, existing.String())
}

func (a *AuditLogger) Rename(existing, renamed identity.Index) {
	a.append("rename", existing, renamed.String())
}
