package domain

// AuditRecord is a best-effort trace of one executed search.
// Writes are fire-and-forget: a failed append never fails the search.
type AuditRecord struct {
	ID          string
	Actor       string
	Query       string
	Location    string
	ResultCount int
	UnixMilli   int64
}
