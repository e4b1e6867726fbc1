package cache

import (
	"context"
	"time"
)

// Noop never stores anything (NO_CACHE=true).
type Noop struct{}

func (Noop) Get(context.Context, string) ([]byte, bool, error) { return nil, false, nil }

func (Noop) Set(context.Context, string, []byte, []string, time.Duration) error { return nil }

func (Noop) InvalidateTags(context.Context, ...string) error { return nil }

func (Noop) Clear(context.Context) error { return nil }
