// internal/types/types.go
package types

type contextKey string

// DBKey stores the CLI's database handle in the command context.
const DBKey contextKey = "db"
