// Artfolio - Artwork Analysis and Recommendation Engine
// Copyright 2026 Artfolio Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/artfolio/artfolio

package profile

import (
	"fmt"
	"time"
)

// InteractionType enumerates the user actions that feed preference
// learning.
type InteractionType string

const (
	InteractionView            InteractionType = "view"
	InteractionClick           InteractionType = "click"
	InteractionFavorite        InteractionType = "favorite"
	InteractionPurchaseRequest InteractionType = "purchase_request"
)

// Weight returns the fixed preference weight of an interaction type.
// Unknown types weigh zero and contribute nothing.
func (t InteractionType) Weight() int {
	switch t {
	case InteractionView:
		return 1
	case InteractionClick:
		return 2
	case InteractionFavorite:
		return 4
	case InteractionPurchaseRequest:
		return 5
	default:
		return 0
	}
}

// Valid reports whether t is a known interaction type.
func (t InteractionType) Valid() bool {
	return t.Weight() > 0
}

// Interaction is one recorded user action on an artwork. Artwork features
// are denormalized onto the record so profiles can be rebuilt from history
// alone, without a catalog lookup per event.
type Interaction struct {
	// UserID identifies the acting user.
	UserID string `json:"user_id"`

	// ArtworkID identifies the artwork acted on.
	ArtworkID string `json:"artwork_id"`

	// Type is the action kind.
	Type InteractionType `json:"type"`

	// Weight is the fixed weight derived from Type at record time.
	Weight int `json:"weight"`

	// Timestamp is when the action occurred.
	Timestamp time.Time `json:"timestamp"`

	// ArtworkStyle is the artwork's classified style at record time.
	ArtworkStyle string `json:"artwork_style,omitempty"`

	// ArtworkMood is the artwork's classified mood at record time.
	ArtworkMood string `json:"artwork_mood,omitempty"`

	// ArtworkColors are the artwork's palette names at record time.
	ArtworkColors []string `json:"artwork_colors,omitempty"`

	// Optional scalar color properties of the artwork (0-100 scale).
	ArtworkBrightness *float64 `json:"artwork_brightness,omitempty"`
	ArtworkSaturation *float64 `json:"artwork_saturation,omitempty"`
	ArtworkContrast   *float64 `json:"artwork_contrast,omitempty"`
}

// Validate checks an interaction before persistence.
func (in *Interaction) Validate() error {
	if in.UserID == "" {
		return fmt.Errorf("interaction: empty user id")
	}
	if in.ArtworkID == "" {
		return fmt.Errorf("interaction: empty artwork id")
	}
	if !in.Type.Valid() {
		return fmt.Errorf("interaction: unknown type %q", in.Type)
	}
	return nil
}

// ColorPrefs holds a user's learned scalar color-property preferences on a
// 0-100 scale. A fresh profile starts at the neutral midpoint; each
// observation halves the distance to the observed value.
type ColorPrefs struct {
	Temperature float64 `json:"temperature"`
	Brightness  float64 `json:"brightness"`
	Saturation  float64 `json:"saturation"`
	Contrast    float64 `json:"contrast"`
}

// neutralPrefs is the starting point before any observation.
func neutralPrefs() ColorPrefs {
	return ColorPrefs{Temperature: 50, Brightness: 50, Saturation: 50, Contrast: 50}
}

// UserProfile is a user's learned preference state. After normalization
// every map value is at most 1. Profiles are exclusively owned by the
// Store; callers receive snapshots that are never mutated afterwards.
type UserProfile struct {
	UserID string `json:"user_id"`

	// PreferredStyles accumulates weighted style affinity.
	PreferredStyles map[string]float64 `json:"preferred_styles"`

	// PreferredMoods accumulates weighted mood affinity.
	PreferredMoods map[string]float64 `json:"preferred_moods"`

	// PreferredColors accumulates weighted palette affinity.
	PreferredColors map[string]float64 `json:"preferred_colors"`

	// ColorPrefs are the learned scalar color-property preferences.
	ColorPrefs ColorPrefs `json:"color_prefs"`

	// TotalInteractions counts every interaction folded into the profile.
	TotalInteractions int `json:"total_interactions"`

	// LastUpdated is when the profile last absorbed an interaction.
	LastUpdated time.Time `json:"last_updated"`
}

// NewProfile returns an empty profile for a user.
func NewProfile(userID string) *UserProfile {
	return &UserProfile{
		UserID:          userID,
		PreferredStyles: make(map[string]float64),
		PreferredMoods:  make(map[string]float64),
		PreferredColors: make(map[string]float64),
		ColorPrefs:      neutralPrefs(),
	}
}

// Clone returns a deep copy. Updates clone-modify-replace so snapshots
// handed to readers stay immutable.
func (p *UserProfile) Clone() *UserProfile {
	out := &UserProfile{
		UserID:            p.UserID,
		PreferredStyles:   make(map[string]float64, len(p.PreferredStyles)),
		PreferredMoods:    make(map[string]float64, len(p.PreferredMoods)),
		PreferredColors:   make(map[string]float64, len(p.PreferredColors)),
		ColorPrefs:        p.ColorPrefs,
		TotalInteractions: p.TotalInteractions,
		LastUpdated:       p.LastUpdated,
	}
	for k, v := range p.PreferredStyles {
		out.PreferredStyles[k] = v
	}
	for k, v := range p.PreferredMoods {
		out.PreferredMoods[k] = v
	}
	for k, v := range p.PreferredColors {
		out.PreferredColors[k] = v
	}
	return out
}
