package tz

import "context"

// key is an unexported type for keys defined in this package. This prevents
// collisions with keys defined in other packages.
type key int

// zoneKey is the key for Ops values in Contexts. It is unexported; clients
// use ContextWithZone and FromContext instead of using this key directly.
//
//nolint:gochecknoglobals
var zoneKey key

// ContextWithZone returns a new Context that carries z.
func ContextWithZone(ctx context.Context, z Ops) context.Context {
	if z == nil {
		return ctx
	}
	return context.WithValue(ctx, zoneKey, z)
}

// FromContext returns the zone stored in ctx or UTC.
func FromContext(ctx context.Context) Ops {
	if z, ok := ctx.Value(zoneKey).(Ops); ok {
		return z
	}
	return utc
}
