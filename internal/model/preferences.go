package model

import (
	"errors"
	"fmt"
)

// Profile is a dashboard persona.
type Profile string

const (
	ProfileDAO       Profile = "dao"
	ProfileResearch  Profile = "research"
	ProfileHR        Profile = "hr"
	ProfileCommunity Profile = "community"
	ProfileEarner    Profile = "earner"
	ProfileDeveloper Profile = "developer"
)

var profiles = map[Profile]struct{}{
	ProfileDAO:       {},
	ProfileResearch:  {},
	ProfileHR:        {},
	ProfileCommunity: {},
	ProfileEarner:    {},
	ProfileDeveloper: {},
}

// ErrProfileNotEnabled is returned when switching to a profile the user has not added.
var ErrProfileNotEnabled = errors.New("profile not enabled")

// ParseProfile validates a profile name.
func ParseProfile(name string) (Profile, error) {
	p := Profile(name)
	if _, ok := profiles[p]; !ok {
		return "", fmt.Errorf("unknown profile: %s", name)
	}
	return p, nil
}

// UserPreferences is the per-address settings record.
type UserPreferences struct {
	Address             string            `json:"address"`
	ActiveProfile       Profile           `json:"active_profile"`
	Profiles            []Profile         `json:"profiles"`
	OnboardingCompleted bool              `json:"onboarding_completed"`
	Settings            map[string]string `json:"settings"`
	UpdatedAt           string            `json:"updated_at,omitempty"`
}

// NewPreferences returns an empty record for address.
func NewPreferences(address string) UserPreferences {
	return UserPreferences{Address: address, Settings: map[string]string{}}
}

// HasProfile reports whether p is in the enabled profile list.
func (u UserPreferences) HasProfile(p Profile) bool {
	for _, existing := range u.Profiles {
		if existing == p {
			return true
		}
	}
	return false
}

// Onboard marks onboarding complete, enables profile and makes it active.
func (u *UserPreferences) Onboard(profile Profile) {
	if !u.HasProfile(profile) {
		u.Profiles = append(u.Profiles, profile)
	}
	u.ActiveProfile = profile
	u.OnboardingCompleted = true
}

// Switch changes the active profile to one already enabled.
func (u *UserPreferences) Switch(profile Profile) error {
	if !u.HasProfile(profile) {
		return fmt.Errorf("%w: %s", ErrProfileNotEnabled, profile)
	}
	u.ActiveProfile = profile
	return nil
}

// Set stores a free-form setting. An empty value deletes the key.
func (u *UserPreferences) Set(key, value string) {
	if u.Settings == nil {
		u.Settings = map[string]string{}
	}
	if value == "" {
		delete(u.Settings, key)
		return
	}
	u.Settings[key] = value
}

// Validate checks that every profile is known and listed once, and that
// the active profile, when set, is one of them.
func (u UserPreferences) Validate() error {
	if u.Address == "" {
		return fmt.Errorf("address required")
	}
	seen := make(map[Profile]struct{}, len(u.Profiles))
	for _, p := range u.Profiles {
		if _, err := ParseProfile(string(p)); err != nil {
			return err
		}
		if _, dup := seen[p]; dup {
			return fmt.Errorf("duplicate profile: %s", p)
		}
		seen[p] = struct{}{}
	}
	if u.ActiveProfile != "" && !u.HasProfile(u.ActiveProfile) {
		return fmt.Errorf("%w: %s", ErrProfileNotEnabled, u.ActiveProfile)
	}
	return nil
}
