package analyst

import "context"

// Repository port for persisting and querying briefs
type Repository interface {
	Save(ctx context.Context, r *Record) error
	Paginate(ctx context.Context, page, pageSize int) (Page, error)
}
