package output

import (
	"context"
	"strings"

	"github.com/kbukum/contentgen/content"
	"github.com/kbukum/contentgen/pipeline"
)

// Fanout emits every package to each sink in order and stops at the first
// failure. Sinks before the failing one keep what they wrote.
type Fanout []pipeline.Sink[*content.Package]

// Name joins the names of the wrapped sinks.
func (f Fanout) Name() string {
	names := make([]string, len(f))
	for i, s := range f {
		if n, ok := s.(interface{ Name() string }); ok {
			names[i] = n.Name()
		} else {
			names[i] = "sink"
		}
	}
	return strings.Join(names, "+")
}

// Emit forwards pkg to each sink.
func (f Fanout) Emit(ctx context.Context, pkg *content.Package) error {
	for _, s := range f {
		if err := s.Emit(ctx, pkg); err != nil {
			return err
		}
	}
	return nil
}
