// Artfolio - Artwork Analysis and Recommendation Engine
// Copyright 2026 Artfolio Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/artfolio/artfolio

package ranker

// Bucket is a user's recommendation experiment arm.
type Bucket string

const (
	BucketContentOnly       Bucket = "content_only"
	BucketCollaborativeOnly Bucket = "collaborative_only"
	BucketHybrid            Bucket = "hybrid"
)

// buckets in assignment order; index = hash mod len.
var buckets = []Bucket{BucketContentOnly, BucketCollaborativeOnly, BucketHybrid}

// AssignBucket maps a user to an experiment arm with an additive
// character-code hash. The mapping is a pure function of the user ID, so
// the same user lands in the same arm on every call with no stored state.
func AssignBucket(userID string) Bucket {
	sum := 0
	for _, r := range userID {
		sum += int(r)
	}
	return buckets[sum%len(buckets)]
}

// Method returns the ranking method an experiment arm prescribes.
func (b Bucket) Method() Method {
	switch b {
	case BucketContentOnly:
		return MethodContent
	case BucketCollaborativeOnly:
		return MethodCollaborative
	default:
		return MethodHybrid
	}
}
