// Package scope is the enforcement layer between tenant-scoped tables and
// everything that reads or writes them.
//
// A bare "read everything" capability must not exist for tenant-scoped
// entities: a forgotten garage filter is the single most dangerous bug this
// system can have. Feature code therefore never holds a raw pool handle for
// these tables. It holds a Collection, whose every operation takes a
// mandatory tenant ID and fails closed with ErrMissingTenantScope when the
// ID is absent, or a Scoped accessor obtained from the request context,
// which carries the filter by construction.
//
// The guard does not decide which tenant to use; the caller supplies the
// request's resolved tenant. Its only job is to reject omission, loudly.
package scope
