package types

// Backend stores project namespaces. Each namespace is an independent
// key-value collection of serialized object records keyed by object ID.
// Backends do not lock; callers serialize writers per namespace.
type Backend interface {
	// CreateNamespace establishes an empty namespace for name.
	// Returns ErrAlreadyExists if the namespace is already present.
	CreateNamespace(name string) (Namespace, error)

	// OpenNamespace returns the existing namespace for name.
	// Returns ErrProjectNotFound if it does not exist.
	OpenNamespace(name string) (Namespace, error)

	// Namespaces lists all namespace names in sorted order.
	Namespaces() ([]string, error)

	// Close releases backend resources. Idempotent.
	Close() error
}

// Namespace provides keyed access to the records of one project.
type Namespace interface {
	// Get returns the stored record for key.
	// Returns ErrObjectNotFound if no record exists.
	Get(key string) ([]byte, error)

	// Put replaces the record for key in one logical write. A failed Put
	// leaves the previous record intact.
	Put(key string, data []byte) error

	// Exists reports whether a record exists for key.
	Exists(key string) (bool, error)

	// Keys lists all record keys in sorted order.
	Keys() ([]string, error)
}
