package source

import "go.uber.org/zap"

// DefaultSuffix is the file name suffix of Corsac source files.
const DefaultSuffix = ".crs"

type options struct {
	suffix   string
	skipDirs map[string]struct{}
	logger   *zap.Logger
}

// Option configures a Scanner or a Loader.
type Option func(*options)

// WithSuffix sets the file name suffix a Scanner matches. Empty values are ignored.
func WithSuffix(suffix string) Option {
	return func(o *options) {
		if suffix != "" {
			o.suffix = suffix
		}
	}
}

// WithSkipDirs names directories a Scanner never descends into.
// Names are matched against the directory's base name.
func WithSkipDirs(names ...string) Option {
	return func(o *options) {
		for _, name := range names {
			o.skipDirs[name] = struct{}{}
		}
	}
}

// WithLogger sets the logger used for debug output.
func WithLogger(logger *zap.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

func newOptions(opts []Option) *options {
	o := &options{
		suffix:   DefaultSuffix,
		skipDirs: make(map[string]struct{}),
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}
