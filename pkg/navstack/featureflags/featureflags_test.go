package featureflags

import (
	"errors"
	"testing"
)

func TestResolve(t *testing.T) {
	flags, err := Resolve([]string{"deferred-commit"})
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if !flags.Enabled(FeatureDeferredCommit) {
		t.Fatalf("expected feature %s to be enabled", FeatureDeferredCommit)
	}
}

func TestResolveDefaultsOff(t *testing.T) {
	flags, err := Resolve()
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if flags.Enabled(FeatureDeferredCommit) {
		t.Fatalf("%s must be off by default", FeatureDeferredCommit)
	}
}

func TestResolveUnknown(t *testing.T) {
	_, err := Resolve([]string{"deferred-commit,not-a-real-flag"})
	if !errors.Is(err, ErrUnknownFeature) {
		t.Fatalf("expected ErrUnknownFeature, got %v", err)
	}
}

func TestEnabledFromEnv(t *testing.T) {
	env := []string{
		"NAVSTACK_FEATURE_DEFERRED_COMMIT=yes",
		"SOME_OTHER=value",
		"NAVSTACK_FEATURE_BOGUS=0",
	}
	list := EnabledFromEnv(env)
	if len(list) != 1 {
		t.Fatalf("expected one enabled flag, got %v", list)
	}
	flags, err := Resolve(list)
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if !flags.Enabled(FeatureDeferredCommit) {
		t.Fatalf("expected env to enable %s", FeatureDeferredCommit)
	}
}

func TestEnabledFromProcessEnv(t *testing.T) {
	t.Setenv("NAVSTACK_FEATURE_DEFERRED_COMMIT", "true")
	flags, err := Resolve(EnabledFromEnv(nil))
	if err != nil {
		t.Fatal(err)
	}
	if !flags.Enabled(FeatureDeferredCommit) {
		t.Fatalf("expected process env to enable flag")
	}
}

func TestEnvVar(t *testing.T) {
	def, ok := DefinitionByName(FeatureDeferredCommit)
	if !ok {
		t.Fatal("deferred-commit is not registered")
	}
	if got := def.EnvVar(); got != "NAVSTACK_FEATURE_DEFERRED_COMMIT" {
		t.Fatalf("EnvVar() = %q", got)
	}
	if len(Definitions()) == 0 {
		t.Fatal("Definitions() is empty")
	}
}
