package model

import (
	"errors"
	"testing"
)

func TestPreferencesOnboard(t *testing.T) {
	prefs := NewPreferences("aleo1xyz")
	prefs.Onboard(ProfileDAO)
	prefs.Onboard(ProfileDAO)

	if !prefs.OnboardingCompleted {
		t.Fatalf("onboarding should be completed")
	}
	if prefs.ActiveProfile != ProfileDAO {
		t.Fatalf("active profile mismatch: %s", prefs.ActiveProfile)
	}
	if len(prefs.Profiles) != 1 {
		t.Fatalf("profile should be added once, got %v", prefs.Profiles)
	}
}

func TestPreferencesSwitch(t *testing.T) {
	prefs := NewPreferences("aleo1xyz")
	prefs.Onboard(ProfileEarner)

	if err := prefs.Switch(ProfileHR); !errors.Is(err, ErrProfileNotEnabled) {
		t.Fatalf("expected ErrProfileNotEnabled, got %v", err)
	}
	if prefs.ActiveProfile != ProfileEarner {
		t.Fatalf("failed switch should keep active profile")
	}

	prefs.Onboard(ProfileHR)
	if err := prefs.Switch(ProfileEarner); err != nil {
		t.Fatalf("switch: %v", err)
	}
	if prefs.ActiveProfile != ProfileEarner {
		t.Fatalf("active profile mismatch: %s", prefs.ActiveProfile)
	}
}

func TestPreferencesSet(t *testing.T) {
	var prefs UserPreferences
	prefs.Set("theme", "dark")
	if prefs.Settings["theme"] != "dark" {
		t.Fatalf("setting not stored")
	}
	prefs.Set("theme", "")
	if _, ok := prefs.Settings["theme"]; ok {
		t.Fatalf("empty value should delete")
	}
}

func TestPreferencesValidate(t *testing.T) {
	prefs := NewPreferences("aleo1xyz")
	if err := prefs.Validate(); err != nil {
		t.Fatalf("empty record should be valid: %v", err)
	}
	prefs.Onboard(ProfileResearch)
	if err := prefs.Validate(); err != nil {
		t.Fatalf("onboarded record should be valid: %v", err)
	}

	testcases := []struct {
		name  string
		prefs UserPreferences
	}{
		{name: "no address", prefs: UserPreferences{}},
		{name: "unknown profile", prefs: UserPreferences{Address: "aleo1xyz", Profiles: []Profile{"whale"}}},
		{name: "duplicate profile", prefs: UserPreferences{Address: "aleo1xyz", Profiles: []Profile{ProfileDAO, ProfileDAO}}},
		{name: "active not enabled", prefs: UserPreferences{Address: "aleo1xyz", ActiveProfile: ProfileHR, Profiles: []Profile{ProfileDAO}}},
	}
	for _, tc := range testcases {
		if err := tc.prefs.Validate(); err == nil {
			t.Fatalf("%s: expected error", tc.name)
		}
	}

	bad := UserPreferences{Address: "aleo1xyz", ActiveProfile: ProfileHR}
	if err := bad.Validate(); !errors.Is(err, ErrProfileNotEnabled) {
		t.Fatalf("expected ErrProfileNotEnabled, got %v", err)
	}
}
