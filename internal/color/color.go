// Artfolio - Artwork Analysis and Recommendation Engine
// Copyright 2026 Artfolio Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/artfolio/artfolio

// Package color provides semantic color classification for artwork analysis.
//
// The package maps raw RGB values and hex strings onto a small fixed palette
// of semantic color names used throughout the analysis and recommendation
// pipeline, and computes scalar color properties (brightness, saturation,
// hue, contrast, temperature) on a 0-100 scale.
//
// All functions are pure and deterministic; the bucketing decision table is
// fixed and enumerable, which allows table-driven tests to cover every branch.
package color

import (
	"fmt"
	"strings"
)

// Palette is the fixed set of semantic color names produced by Bucket.
var Palette = []string{
	"black", "gray", "light gray", "white",
	"red", "orange", "yellow", "green", "blue", "purple",
	"multicolor",
}

// Grayscale spread threshold: channels closer together than this are
// treated as achromatic and bucketed by brightness alone.
const graySpread = 30

// Brightness bands for achromatic colors.
const (
	bandBlack     = 50
	bandGray      = 130
	bandLightGray = 200
)

// ParseHex parses a hex color string into RGB channels.
// Accepts "#RGB", "#RRGGBB", with or without the leading "#",
// case-insensitive.
func ParseHex(hex string) (r, g, b int, err error) {
	s := strings.TrimPrefix(strings.TrimSpace(hex), "#")

	switch len(s) {
	case 3:
		// Short form: each digit doubled (#abc -> #aabbcc)
		expanded := make([]byte, 6)
		for i := 0; i < 3; i++ {
			expanded[2*i] = s[i]
			expanded[2*i+1] = s[i]
		}
		s = string(expanded)
	case 6:
		// Full form
	default:
		return 0, 0, 0, fmt.Errorf("invalid hex color %q", hex)
	}

	var rv, gv, bv int
	if _, err := fmt.Sscanf(strings.ToLower(s), "%02x%02x%02x", &rv, &gv, &bv); err != nil {
		return 0, 0, 0, fmt.Errorf("invalid hex color %q: %w", hex, err)
	}

	return rv, gv, bv, nil
}

// Bucket maps RGB channels onto a semantic palette name.
//
// The decision table:
//  1. spread = max(R,G,B) - min(R,G,B)
//  2. spread < 30: achromatic; bucket by max channel into brightness bands
//     (<50 black, <130 gray, <200 light gray, else white)
//  3. otherwise: the dominant channel selects the hue family and the
//     ordering of the remaining two channels resolves the blend
//     (red-dominant with G>B is orange, green-dominant with R>B is yellow,
//     blue-dominant with R>G is purple).
func Bucket(r, g, b int) string {
	maxC := max3(r, g, b)
	minC := min3(r, g, b)
	spread := maxC - minC

	if spread < graySpread {
		switch {
		case maxC < bandBlack:
			return "black"
		case maxC < bandGray:
			return "gray"
		case maxC < bandLightGray:
			return "light gray"
		default:
			return "white"
		}
	}

	switch maxC {
	case r:
		if g > b {
			return "orange"
		}
		return "red"
	case g:
		if r > b {
			return "yellow"
		}
		return "green"
	default:
		if r > g {
			return "purple"
		}
		return "blue"
	}
}

// BucketHex maps a hex color string onto a semantic palette name.
func BucketHex(hex string) (string, error) {
	r, g, b, err := ParseHex(hex)
	if err != nil {
		return "", err
	}
	return Bucket(r, g, b), nil
}

// Brightness returns perceptual brightness on a 0-100 scale using the
// Rec. 601 luma coefficients.
func Brightness(r, g, b int) float64 {
	luma := 0.299*float64(r) + 0.587*float64(g) + 0.114*float64(b)
	return luma / 255.0 * 100.0
}

// Saturation returns color saturation on a 0-100 scale (HSV model).
func Saturation(r, g, b int) float64 {
	maxC := float64(max3(r, g, b))
	if maxC == 0 {
		return 0
	}
	minC := float64(min3(r, g, b))
	return (maxC - minC) / maxC * 100.0
}

// Hue returns the hue angle in degrees [0, 360). Achromatic colors
// (zero spread) report hue 0.
func Hue(r, g, b int) float64 {
	rf, gf, bf := float64(r)/255.0, float64(g)/255.0, float64(b)/255.0
	maxC := maxf(rf, maxf(gf, bf))
	minC := minf(rf, minf(gf, bf))
	delta := maxC - minC
	if delta == 0 {
		return 0
	}

	var h float64
	switch maxC {
	case rf:
		h = (gf - bf) / delta
	case gf:
		h = 2 + (bf-rf)/delta
	default:
		h = 4 + (rf-gf)/delta
	}

	h *= 60
	if h < 0 {
		h += 360
	}
	return h
}

// brightnessRank orders palette names from darkest to lightest for the
// contrast heuristic. Hue buckets sit in the middle band.
var brightnessRank = map[string]float64{
	"black":      0,
	"purple":     25,
	"blue":       30,
	"red":        35,
	"green":      40,
	"gray":       45,
	"orange":     60,
	"multicolor": 60,
	"light gray": 75,
	"yellow":     85,
	"white":      100,
}

// Contrast estimates contrast on a 0-100 scale from the spread of
// brightness ranks across a set of palette names. A single color has
// zero contrast.
func Contrast(buckets []string) float64 {
	if len(buckets) < 2 {
		return 0
	}

	lo, hi := 101.0, -1.0
	seen := 0
	for _, name := range buckets {
		rank, ok := brightnessRank[name]
		if !ok {
			continue
		}
		seen++
		if rank < lo {
			lo = rank
		}
		if rank > hi {
			hi = rank
		}
	}

	if seen < 2 {
		return 0
	}
	return hi - lo
}

// warmColors and coolColors partition the hue buckets for the
// temperature heuristic. Achromatic buckets are neutral.
var (
	warmColors = map[string]struct{}{"red": {}, "orange": {}, "yellow": {}}
	coolColors = map[string]struct{}{"green": {}, "blue": {}, "purple": {}}
)

// Temperature estimates warmth on a 0-100 scale from the ratio of warm to
// cool palette names. An empty or fully neutral set reports 50.
func Temperature(buckets []string) float64 {
	warm, cool := 0, 0
	for _, name := range buckets {
		if _, ok := warmColors[name]; ok {
			warm++
		}
		if _, ok := coolColors[name]; ok {
			cool++
		}
	}

	total := warm + cool
	if total == 0 {
		return 50
	}
	return float64(warm) / float64(total) * 100.0
}

func max3(a, b, c int) int {
	m := a
	if b > m {
		m = b
	}
	if c > m {
		m = c
	}
	return m
}

func min3(a, b, c int) int {
	m := a
	if b < m {
		m = b
	}
	if c < m {
		m = c
	}
	return m
}

func maxf(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

func minf(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}
