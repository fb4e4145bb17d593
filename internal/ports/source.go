package ports

import "context"

// Source provides the raw bytes of one input.
type Source interface {
	// Name identifies the source in reports and logs.
	Name() string

	// Load reads the whole input. Implementations must honour ctx
	// cancellation for blocking reads and enforce their size limit.
	Load(ctx context.Context) ([]byte, error)
}
