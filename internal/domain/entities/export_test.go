package entities

// ResolveToken exports resolveToken for testing.
var ResolveToken = resolveToken //nolint:gochecknoglobals // test export

// NormalizeVersion exports normalizeVersion for testing.
var NormalizeVersion = normalizeVersion //nolint:gochecknoglobals // test export
