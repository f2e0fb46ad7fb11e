package domain

// Catalog key layout. Every key the service touches lives under KeyPrefix.
const (
	KeyPrefix = "sichr:"

	// ListingKeyPrefix prefixes listing hash keys: sichr:listing:<id>.
	ListingKeyPrefix = KeyPrefix + "listing:"
	// ListingIndexName is the search index over listing hashes.
	ListingIndexName = KeyPrefix + "listings:idx"
	// AuditStreamName is the stream receiving search audit entries.
	AuditStreamName = KeyPrefix + "audit:search"
)
