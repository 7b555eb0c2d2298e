package tenant_test

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gadisewa/backend/pkg/tenant"
)

func TestSubdomainResolver(t *testing.T) {
	t.Parallel()

	resolver := tenant.NewSubdomainResolver(tenant.Config{
		ReservedSubdomains: []string{"www", "api", "admin"},
		LoopbackDomain:     "localhost",
	})

	tests := []struct {
		name string
		host string
		want string
	}{
		{name: "tenant subdomain", host: "acme.gadisewa.com", want: "acme"},
		{name: "port stripped", host: "acme.gadisewa.com:8080", want: "acme"},
		{name: "uppercase host normalized", host: "ACME.Gadisewa.COM", want: "acme"},
		{name: "apex domain is platform", host: "gadisewa.com", want: ""},
		{name: "single label is platform", host: "gadisewa", want: ""},
		{name: "reserved www", host: "www.gadisewa.com", want: ""},
		{name: "reserved api", host: "api.gadisewa.com", want: ""},
		{name: "reserved admin", host: "admin.gadisewa.com", want: ""},
		{name: "reserved uppercase", host: "WWW.gadisewa.com", want: ""},
		{name: "deep subdomain uses first label", host: "acme.eu.gadisewa.com", want: "acme"},
		{name: "bare loopback is platform", host: "localhost", want: ""},
		{name: "bare loopback with port", host: "localhost:8080", want: ""},
		{name: "loopback subdomain", host: "acme.localhost", want: "acme"},
		{name: "loopback subdomain with port", host: "acme.localhost:3000", want: "acme"},
		{name: "reserved on loopback", host: "api.localhost", want: ""},
		{name: "empty host", host: "", want: ""},
		{name: "label with invalid chars", host: "ac_me.gadisewa.com", want: ""},
		{name: "label with trailing hyphen", host: "acme-.gadisewa.com", want: ""},
		{name: "numeric label", host: "42.gadisewa.com", want: "42"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			req := httptest.NewRequest("GET", "/", nil)
			req.Host = tt.host
			require.Equal(t, tt.want, resolver.Resolve(req))
		})
	}
}

func TestSubdomainResolverIsPure(t *testing.T) {
	t.Parallel()

	resolver := tenant.NewSubdomainResolver(tenant.Config{LoopbackDomain: "localhost"})

	req := httptest.NewRequest("GET", "/", nil)
	req.Host = "acme.gadisewa.com"

	first := resolver.Resolve(req)
	for range 10 {
		require.Equal(t, first, resolver.Resolve(req))
	}
}
