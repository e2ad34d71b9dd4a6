package repository

// PostgresOption applies a configuration option to the PostgresStore.
type PostgresOption func(*PostgresStore)

// WithTable overrides the saves table name.
func WithTable(name string) PostgresOption {
	return func(s *PostgresStore) {
		if name != "" {
			s.table = name
		}
	}
}
