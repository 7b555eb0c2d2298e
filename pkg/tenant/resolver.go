package tenant

import (
	"net/http"
	"regexp"
	"strings"
	"time"
)

// Config controls how request hosts are mapped to tenant subdomains.
// The reserved set and the loopback rule are deployment configuration,
// not code.
type Config struct {
	ReservedSubdomains []string      `env:"TENANT_RESERVED_SUBDOMAINS" envDefault:"www,api,admin"` // Labels never resolvable to a tenant.
	LoopbackDomain     string        `env:"TENANT_LOOPBACK_DOMAIN" envDefault:"localhost"`         // Bare development domain, e.g. "localhost" for acme.localhost.
	CacheTTL           time.Duration `env:"TENANT_CACHE_TTL" envDefault:"1m"`                      // How long resolved tenants may be cached.
}

// Resolver extracts a candidate tenant subdomain from an HTTP request.
// An empty string means the request runs at platform scope.
type Resolver interface {
	Resolve(r *http.Request) string
}

// subdomainPattern matches DNS labels; anything else is treated as
// unresolvable rather than an error.
var subdomainPattern = regexp.MustCompile(`^[a-z0-9]([a-z0-9-]*[a-z0-9])?$`)

// SubdomainResolver derives the tenant label from the Host header.
//
// The rules, in order:
//  1. The port suffix is stripped and the host lowercased.
//  2. Hosts ending in the loopback domain use the first label when more
//     than one label is present (acme.localhost -> "acme"); a bare
//     loopback host is platform scope.
//  3. Any other host needs at least three labels (sub.domain.tld);
//     apex domains are platform scope.
//  4. Reserved labels are platform scope regardless of directory contents.
type SubdomainResolver struct {
	reserved map[string]struct{}
	loopback string
}

// NewSubdomainResolver builds a resolver from configuration.
func NewSubdomainResolver(cfg Config) *SubdomainResolver {
	reserved := make(map[string]struct{}, len(cfg.ReservedSubdomains))
	for _, label := range cfg.ReservedSubdomains {
		label = strings.ToLower(strings.TrimSpace(label))
		if label != "" {
			reserved[label] = struct{}{}
		}
	}
	return &SubdomainResolver{
		reserved: reserved,
		loopback: strings.ToLower(strings.TrimSpace(cfg.LoopbackDomain)),
	}
}

// Resolve is pure: one call per request, no side effects, safe to repeat.
func (r *SubdomainResolver) Resolve(req *http.Request) string {
	host := req.Host
	if idx := strings.LastIndex(host, ":"); idx != -1 {
		host = host[:idx]
	}
	host = strings.ToLower(host)
	if host == "" {
		return ""
	}

	parts := strings.Split(host, ".")

	var candidate string
	switch {
	case r.loopback != "" && strings.HasSuffix(host, r.loopback):
		if len(parts) < 2 {
			return ""
		}
		candidate = parts[0]
	case len(parts) < 3:
		return ""
	default:
		candidate = parts[0]
	}

	if _, ok := r.reserved[candidate]; ok {
		return ""
	}
	if !subdomainPattern.MatchString(candidate) {
		return ""
	}

	return candidate
}
