package a

import "context"

type Entry struct{ Name string }

type Resolver interface {
	Resolve(entries []Entry, threshold int) []string
}

type Store interface {
	ListStaff(ctx context.Context, includeInactive bool) ([]string, error)
	SaveStaff(ctx context.Context, names []string) error
}

func bad(ctx context.Context, entries []Entry, r Resolver, db Store) {
	for _, e := range entries {
		r.Resolve([]Entry{e}, 85)         // want "potential N\\+1: Resolve called inside loop"
		db.ListStaff(ctx, false)          // want "potential N\\+1: ListStaff called inside loop"
		db.SaveStaff(ctx, []string{e.Name}) // want "potential N\\+1: SaveStaff called inside loop"
	}
}

func good(ctx context.Context, entries []Entry, r Resolver, db Store) {
	_, _ = db.ListStaff(ctx, false)
	r.Resolve(entries, 85)

	for i := 0; i < 4; i++ {
		go func() {
			_, _ = db.ListStaff(ctx, false)
		}()
	}
}
