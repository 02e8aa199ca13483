package hunt

import "context"

// Repository abstracts canonical store persistence from the pipeline.
type Repository interface {
	Load(ctx context.Context) (*Store, error)
	Save(ctx context.Context, store *Store) error
}
