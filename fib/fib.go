// Package fib implements the static forwarding-plane helpers of the lab: a
// longest-prefix-match forwarder and packet-ordering schedulers. These are
// collaborators of the simulator, not part of the round engine.
package fib

import (
	"fmt"
	"net/netip"
	"strings"
	"time"

	"github.com/gaissmai/bart"
	"github.com/jellydator/ttlcache/v3"
)

// RouteDef binds a prefix to the output link its traffic leaves on.
type RouteDef struct {
	Prefix netip.Prefix
	Link   string
}

// lookupCacheTTL bounds how long a per-address lookup result is memoised.
var lookupCacheTTL = 30 * time.Second

// Forwarder answers longest-prefix-match lookups over a fixed route set.
type Forwarder struct {
	table       bart.Table[string]
	cache       *ttlcache.Cache[netip.Addr, string]
	defaultLink string
}

// NewForwarder builds the forwarding table. defaultLink is returned for
// addresses no route covers; it may be empty, in which case such lookups
// report no match.
func NewForwarder(routes []RouteDef, defaultLink string) (*Forwarder, error) {
	f := &Forwarder{
		cache: ttlcache.New[netip.Addr, string](
			ttlcache.WithTTL[netip.Addr, string](lookupCacheTTL),
		),
		defaultLink: defaultLink,
	}
	for _, r := range routes {
		if !r.Prefix.IsValid() {
			return nil, fmt.Errorf("route to link %q has an invalid prefix", r.Link)
		}
		if r.Link == "" {
			return nil, fmt.Errorf("route %s has no output link", r.Prefix)
		}
		f.table.Insert(r.Prefix.Masked(), r.Link)
	}
	return f, nil
}

// Lookup returns the output link for dst, preferring the most specific
// matching prefix. Results are cached per address.
func (f *Forwarder) Lookup(dst netip.Addr) (string, bool) {
	if hit := f.cache.Get(dst); hit != nil {
		return hit.Value(), hit.Value() != ""
	}
	link, ok := f.table.Lookup(dst)
	if !ok {
		link = f.defaultLink
	}
	f.cache.Set(dst, link, ttlcache.DefaultTTL)
	return link, link != ""
}

// ParseRoutes converts "cidr=link" strings into route definitions.
func ParseRoutes(specs []string) ([]RouteDef, error) {
	routes := make([]RouteDef, 0, len(specs))
	for _, s := range specs {
		cidr, link, ok := strings.Cut(s, "=")
		if !ok || link == "" {
			return nil, fmt.Errorf("route %q: want \"cidr=link\"", s)
		}
		prefix, err := netip.ParsePrefix(strings.TrimSpace(cidr))
		if err != nil {
			return nil, fmt.Errorf("route %q: %w", s, err)
		}
		routes = append(routes, RouteDef{Prefix: prefix, Link: strings.TrimSpace(link)})
	}
	return routes, nil
}
