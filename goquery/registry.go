package goquery

import "github.com/fwojciec/threadkit"

// Registry maps page URLs to platform adapters. Detection walks the
// registered platforms in registration order and picks the first whose
// IsValidURL matches, falling back to a default platform so callers never
// have to handle an unknown site.
type Registry struct {
	fallback  Platform
	platforms []Platform
}

// NewRegistry creates a new Registry with the given fallback platform.
// The fallback is not registered for detection; register it explicitly if
// its hosts should be detected too.
func NewRegistry(fallback Platform) *Registry {
	return &Registry{fallback: fallback}
}

// NewDefaultRegistry creates a Registry with the Twitter and Weibo adapters,
// using Twitter as the fallback. Overrides are applied to the matching
// adapter's selectors.
func NewDefaultRegistry(overrides threadkit.SelectorOverrides) *Registry {
	twitter := NewTwitter(WithSelectors(overrides[threadkit.PlatformTwitter]))
	r := NewRegistry(twitter)
	r.Register(twitter)
	r.Register(NewWeibo(WithSelectors(overrides[threadkit.PlatformWeibo])))
	return r
}

// Register adds a platform. A platform with the same name is replaced in
// place, keeping its detection order.
func (r *Registry) Register(p Platform) {
	for i, existing := range r.platforms {
		if existing.Name() == p.Name() {
			r.platforms[i] = p
			return
		}
	}
	r.platforms = append(r.platforms, p)
}

// Get returns the platform registered under name, or nil.
func (r *Registry) Get(name threadkit.PlatformName) Platform {
	for _, p := range r.platforms {
		if p.Name() == name {
			return p
		}
	}
	return nil
}

// Detect returns the first registered platform that accepts rawURL, or nil.
func (r *Registry) Detect(rawURL string) Platform {
	for _, p := range r.platforms {
		if p.IsValidURL(rawURL) {
			return p
		}
	}
	return nil
}

// Default returns the fallback platform.
func (r *Registry) Default() Platform {
	return r.fallback
}

// ForURL returns the detected platform for rawURL, or the fallback.
func (r *Registry) ForURL(rawURL string) Platform {
	if p := r.Detect(rawURL); p != nil {
		return p
	}
	return r.fallback
}

// List returns the names of all registered platforms in detection order.
func (r *Registry) List() []threadkit.PlatformName {
	names := make([]threadkit.PlatformName, 0, len(r.platforms))
	for _, p := range r.platforms {
		names = append(names, p.Name())
	}
	return names
}
