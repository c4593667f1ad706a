package modules

import (
	"strings"
	"testing"

	"github.com/asjuices/storefront/internal/services/storefront/routepath"
	"github.com/asjuices/storefront/internal/services/storefront/storefronttest"
)

func TestDefaultModulesHaveUniqueIDsAndPrefixes(t *testing.T) {
	t.Parallel()

	env := storefronttest.New(t)
	ids := map[string]bool{}
	prefixes := map[string]bool{}
	check := func(feature Module, protected bool) {
		t.Helper()
		if ids[feature.ID()] {
			t.Fatalf("duplicate module id %q", feature.ID())
		}
		ids[feature.ID()] = true
		mount, err := feature.Mount(env.Deps)
		if err != nil {
			t.Fatalf("%s Mount() error = %v", feature.ID(), err)
		}
		if prefixes[mount.Prefix] {
			t.Fatalf("duplicate prefix %q", mount.Prefix)
		}
		prefixes[mount.Prefix] = true
		if got := strings.HasPrefix(mount.Prefix, routepath.AppPrefix); got != protected {
			t.Fatalf("%s prefix %q protected = %v, want %v", feature.ID(), mount.Prefix, got, protected)
		}
	}
	for _, feature := range DefaultPublicModules() {
		check(feature, false)
	}
	for _, feature := range DefaultProtectedModules() {
		check(feature, true)
	}
	if len(ids) != 6 {
		t.Fatalf("module count = %d, want 6", len(ids))
	}
}
