package convert

import (
	"log/slog"

	"github.com/revelaction/tei2conllu/tei"
)

// Option configures a Converter.
type Option func(*config)

type config struct {
	namespace string
	normalize bool
	logger    *slog.Logger
}

func defaultConfig() config {
	return config{
		namespace: tei.Namespace,
		logger:    slog.Default(),
	}
}

// WithNamespace sets the namespace of the w and pc elements (default: the
// TEI namespace). An empty namespace matches un-namespaced elements.
func WithNamespace(ns string) Option {
	return func(c *config) {
		c.namespace = ns
	}
}

// WithNormalize enables Unicode NFC normalization of forms, lemmas and MISC
// values.
func WithNormalize(n bool) Option {
	return func(c *config) {
		c.normalize = n
	}
}

// WithLogger sets the logger (default: slog.Default()).
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}
