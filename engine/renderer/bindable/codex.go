package bindable

import (
	"fmt"
	"strings"

	"github.com/spaghettifunk/vetro/engine/core"
)

// Codex deduplicates expensive pipeline-state resources. A key computed
// with Key uniquely determines a resource's content; the first resolve for
// a key constructs the resource, every later resolve returns the same
// shared instance and ignores whatever the caller would have constructed.
//
// Entries are owned by the codex and live until Shutdown. The codex is not
// safe for concurrent use; build and draw run on the one render thread.
type Codex struct {
	entries map[string]Bindable
}

func NewCodex() *Codex {
	return &Codex{
		entries: make(map[string]Bindable),
	}
}

// Key derives a deterministic codex key from a resource kind and its
// discriminating parts. Call sites that describe the same resource converge
// on the same entry without sharing state.
func Key(kind Kind, parts ...string) string {
	if len(parts) == 0 {
		return kind.String()
	}
	return kind.String() + "|" + strings.Join(parts, "|")
}

// Resolve returns the entry registered under key, constructing and
// registering it via build on first use. A failed construction leaves no
// entry behind, so the next resolve retries instead of caching the failure.
func (c *Codex) Resolve(key string, build func() (Bindable, error)) (Bindable, error) {
	if b, ok := c.entries[key]; ok {
		return b, nil
	}

	b, err := build()
	if err != nil {
		core.LogError("failed to construct resource '%s': %s", key, err.Error())
		return nil, err
	}
	if b == nil {
		err := fmt.Errorf("resource constructor for '%s' returned nil", key)
		core.LogError(err.Error())
		return nil, err
	}

	c.entries[key] = b
	core.LogDebug("resource '%s' registered", key)
	return b, nil
}

// ResolveAs resolves through the codex with the concrete bindable type
// preserved, so call sites never discover resources by type inspection.
func ResolveAs[T Bindable](c *Codex, key string, build func() (T, error)) (T, error) {
	var zero T
	b, err := c.Resolve(key, func() (Bindable, error) {
		return build()
	})
	if err != nil {
		return zero, err
	}
	typed, ok := b.(T)
	if !ok {
		err := fmt.Errorf("resource '%s' is registered as %s, not the requested type", key, b.Kind())
		core.LogError(err.Error())
		return zero, err
	}
	return typed, nil
}

// Has reports whether an entry exists for key without constructing anything.
func (c *Codex) Has(key string) bool {
	_, ok := c.entries[key]
	return ok
}

// Len returns the number of live entries.
func (c *Codex) Len() int {
	return len(c.entries)
}

// Shutdown drops every entry. Shared resources already held by drawables
// stay alive through those references.
func (c *Codex) Shutdown() error {
	c.entries = make(map[string]Bindable)
	return nil
}
