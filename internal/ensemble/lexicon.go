// Artfolio - Artwork Analysis and Recommendation Engine
// Copyright 2026 Artfolio Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/artfolio/artfolio

package ensemble

import "regexp"

// The heuristic lexicons below drive style/mood classification, color
// backfill, and contextual color inference. They are fixed data, declared
// as ordered records so tests can enumerate every entry and so argmax ties
// resolve to the first-declared entry.

// lexiconEntry maps one classification label to its indicator terms.
// A term matches when it appears as a substring of any combined keyword.
type lexiconEntry struct {
	Label string
	Terms []string
}

// styleLexicon classifies artwork style. First-declared wins ties;
// "mixed" is the fallback when no entry scores.
var styleLexicon = []lexiconEntry{
	{Label: "abstract", Terms: []string{"abstract", "geometric", "cubis", "expressionis", "non-representational"}},
	{Label: "impressionist", Terms: []string{"impressionis", "plein air", "brushstroke", "monet"}},
	{Label: "realistic", Terms: []string{"realis", "photorealistic", "detailed", "lifelike", "portrait"}},
	{Label: "surreal", Terms: []string{"surreal", "dreamlike", "fantastical", "dali"}},
	{Label: "minimalist", Terms: []string{"minimal", "simple", "sparse", "clean lines"}},
	{Label: "pop", Terms: []string{"pop art", "comic", "warhol", "bold graphic"}},
	{Label: "landscape", Terms: []string{"landscape", "scenery", "vista", "panorama", "seascape"}},
	{Label: "digital", Terms: []string{"digital", "3d render", "cgi", "pixel", "vector"}},
	{Label: "watercolor", Terms: []string{"watercolor", "watercolour", "wash", "aquarelle"}},
}

// moodLexicon classifies mood. "neutral" is the fallback.
var moodLexicon = []lexiconEntry{
	{Label: "calm", Terms: []string{"calm", "peaceful", "serene", "tranquil", "quiet", "gentle"}},
	{Label: "energetic", Terms: []string{"energetic", "vibrant", "dynamic", "lively", "bold"}},
	{Label: "melancholic", Terms: []string{"melanchol", "somber", "gloomy", "lonely", "wistful"}},
	{Label: "joyful", Terms: []string{"joyful", "happy", "cheerful", "playful", "festive"}},
	{Label: "dramatic", Terms: []string{"dramatic", "intense", "stormy", "brooding", "moody"}},
	{Label: "romantic", Terms: []string{"romantic", "dreamy", "tender", "intimate"}},
	{Label: "mysterious", Terms: []string{"mysterious", "enigmatic", "foggy", "shadowy"}},
}

// colorSynonyms backfills colors from keyword text when no source reported
// any. Base color names, common shade words, and metallics.
var colorSynonyms = []lexiconEntry{
	{Label: "red", Terms: []string{"red", "crimson", "scarlet", "ruby", "cherry"}},
	{Label: "orange", Terms: []string{"orange", "tangerine", "amber", "rust", "copper"}},
	{Label: "yellow", Terms: []string{"yellow", "gold", "lemon", "mustard"}},
	{Label: "green", Terms: []string{"green", "emerald", "olive", "jade", "lime"}},
	{Label: "blue", Terms: []string{"blue", "azure", "navy", "cobalt", "teal", "cyan"}},
	{Label: "purple", Terms: []string{"purple", "violet", "lavender", "magenta", "lilac"}},
	{Label: "pink", Terms: []string{"pink", "rose", "blush", "fuchsia"}},
	{Label: "brown", Terms: []string{"brown", "tan", "beige", "chocolate", "bronze", "earthy"}},
	{Label: "black", Terms: []string{"black", "ebony", "charcoal", "noir"}},
	{Label: "white", Terms: []string{"white", "ivory", "cream", "snowy"}},
	{Label: "gray", Terms: []string{"gray", "grey", "silver", "slate", "ash"}},
}

// artisticColorTerms maps art vocabulary to color sets during backfill.
var artisticColorTerms = []struct {
	Term   string
	Colors []string
}{
	{Term: "sepia", Colors: []string{"brown", "yellow"}},
	{Term: "pastel", Colors: []string{"pink", "blue", "green", "yellow", "purple"}},
	{Term: "monochrome", Colors: []string{"black", "white", "gray"}},
	{Term: "grayscale", Colors: []string{"black", "white", "gray"}},
	{Term: "golden", Colors: []string{"yellow", "orange"}},
	{Term: "metallic", Colors: []string{"gray", "yellow"}},
	{Term: "neon", Colors: []string{"pink", "green", "blue"}},
}

// shadeColorPattern matches "light blue", "deep red", etc. The captured
// group is the base color name.
var shadeColorPattern = regexp.MustCompile(
	`(?:light|dark|deep|bright|pale|vivid)\s+(red|orange|yellow|green|blue|purple|pink|brown|gray|grey)`)

// contextColors infers colors from scene/subject keywords when both direct
// color detection and synonym backfill produced nothing.
var contextColors = []struct {
	Context string
	Colors  []string
}{
	{Context: "landscape", Colors: []string{"green", "blue", "brown"}},
	{Context: "sunset", Colors: []string{"orange", "red", "yellow", "pink"}},
	{Context: "sunrise", Colors: []string{"orange", "yellow", "pink"}},
	{Context: "mountain", Colors: []string{"gray", "brown", "white"}},
	{Context: "sky", Colors: []string{"blue"}},
	{Context: "forest", Colors: []string{"green", "brown"}},
	{Context: "ocean", Colors: []string{"blue"}},
	{Context: "sea", Colors: []string{"blue"}},
	{Context: "beach", Colors: []string{"yellow", "blue"}},
	{Context: "desert", Colors: []string{"yellow", "orange", "brown"}},
	{Context: "snow", Colors: []string{"white", "blue"}},
	{Context: "winter", Colors: []string{"white", "blue"}},
	{Context: "autumn", Colors: []string{"orange", "brown", "red", "yellow"}},
	{Context: "flower", Colors: []string{"pink", "red", "yellow", "green"}},
	{Context: "fire", Colors: []string{"red", "orange", "yellow"}},
	{Context: "night", Colors: []string{"black", "blue"}},
	{Context: "city", Colors: []string{"gray", "black"}},
}

// landscapeTerms signal a natural landscape for the correction pass.
// Deliberately excludes terms like "mountain" that already carry their own
// contextual color mapping.
var landscapeTerms = []string{
	"landscape", "nature", "field", "meadow", "grass",
	"countryside", "valley", "prairie", "garden", "rural",
}

// skyTerms signal sky or cloud presence for the correction pass.
var skyTerms = []string{"sky", "cloud"}

// captionVocabulary is the fixed style/technique/lighting/composition
// vocabulary scanned against interrogation captions.
var captionVocabulary = []string{
	// styles
	"abstract", "impressionist", "surreal", "realistic", "minimalist",
	"expressionist", "cubist", "pop art", "art nouveau", "baroque",
	// techniques
	"oil painting", "watercolor", "acrylic", "charcoal", "ink",
	"sketch", "collage", "digital painting", "photograph",
	// lighting
	"soft lighting", "dramatic lighting", "backlit", "golden hour",
	"high contrast", "low key", "chiaroscuro",
	// composition
	"close-up", "wide angle", "symmetrical", "rule of thirds",
	"portrait", "still life", "panoramic",
}

// captionAdjectivePattern captures an adjective preceding an art noun in a
// caption ("a moody painting of ..." yields "moody").
var captionAdjectivePattern = regexp.MustCompile(`(\w+)\s+(?:painting|artwork|art|style|drawing)`)

// maxCaptionAdjectives caps how many regex-derived adjectives one caption
// may contribute.
const maxCaptionAdjectives = 5
