package sourcelist

import "ponder/internal/usecase/seed"

// New returns the source list implementation selected by the configuration:
// an HTTP loader when a URL is set, otherwise a file loader. Both entry
// points build loaders from the same Config, so SEED_SOURCE_URL switches a
// deployment to remote loading without code changes.
func New(cfg Config) seed.SourceList {
	if cfg.URL != "" {
		return NewHTTPSourceList(cfg)
	}
	return NewFileSourceList(cfg.Path)
}
