package bootstrap

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/arcynforge/forge-backend/internal/docstore"
)

type StoreOptions struct {
	URL       string
	ConnectTO time.Duration
}

// OpenStore selects a document store backend from the DATABASE_URL scheme
// and returns it wrapped with operation metrics. An empty URL disables
// persistence for the lifetime of the process: the service boots with a nil
// store and resource endpoints answer 503.
func OpenStore(ctx context.Context, opt StoreOptions) (docstore.Store, error) {
	if opt.URL == "" {
		return nil, nil
	}
	if opt.ConnectTO == 0 {
		opt.ConnectTO = 5 * time.Second
	}

	u, err := url.Parse(opt.URL)
	if err != nil {
		return nil, fmt.Errorf("parse DATABASE_URL: %w", err)
	}

	cctx, cancel := context.WithTimeout(ctx, opt.ConnectTO)
	defer cancel()

	switch u.Scheme {
	case "redis", "rediss":
		s, err := docstore.NewRedisStore(cctx, opt.URL)
		if err != nil {
			return nil, err
		}
		return docstore.Instrument(s), nil
	case "postgres", "postgresql":
		s, err := docstore.NewPostgresStore(cctx, opt.URL)
		if err != nil {
			return nil, err
		}
		return docstore.Instrument(s), nil
	default:
		return nil, fmt.Errorf("unsupported DATABASE_URL scheme %q", u.Scheme)
	}
}
