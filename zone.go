package dtm

import (
	"strings"
	"time"

	"github.com/dtmlib/dtm/internal/zonedb"
)

// ResolveZone turns a timezone specifier into a *time.Location.
//
// Accepted specifiers are nil, "" and "local" (the host zone), an IANA name
// matched case-insensitively, or a *time.Location which is returned
// unchanged.
func ResolveZone(spec any) (*time.Location, error) {
	switch z := spec.(type) {
	case nil:
		return time.Local, nil
	case *time.Location:
		if z == nil {
			return time.Local, nil
		}
		return z, nil
	case string:
		return resolveZoneName(z)
	default:
		return nil, InvalidTimezoneError(typeName(spec), nil)
	}
}

func resolveZoneName(name string) (*time.Location, error) {
	switch strings.ToLower(name) {
	case "", "local":
		return time.Local, nil
	case "utc":
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(name)
	if err == nil {
		return loc, nil
	}
	if canonical, ok := zonedb.Lookup(name); ok {
		if loc, lerr := time.LoadLocation(canonical); lerr == nil {
			return loc, nil
		}
	}
	return nil, InvalidTimezoneError(name, err)
}

// MustResolveZone is like ResolveZone but panics on error.
func MustResolveZone(spec any) *time.Location {
	loc, err := ResolveZone(spec)
	if err != nil {
		panic(err)
	}
	return loc
}

// locOrLocal maps the nil zone of a zero Timestamp to the host zone.
func locOrLocal(loc *time.Location) *time.Location {
	if loc == nil {
		return time.Local
	}
	return loc
}
