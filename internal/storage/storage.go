package storage

import "context"

// Archive stores exported plan files (CSV/XLSX) so dealers can pull past
// runs without regenerating them.
type Archive interface {
	Put(ctx context.Context, key string, data []byte) error
	Get(ctx context.Context, key string) ([]byte, error)
	List(ctx context.Context, prefix string) ([]string, error)
}
