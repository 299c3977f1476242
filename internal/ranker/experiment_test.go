// Artfolio - Artwork Analysis and Recommendation Engine
// Copyright 2026 Artfolio Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/artfolio/artfolio

package ranker

import "testing"

func TestAssignBucketDeterministic(t *testing.T) {
	users := []string{"alice", "bob", "carol", "user-12345", ""}

	for _, u := range users {
		first := AssignBucket(u)
		for i := 0; i < 10; i++ {
			if got := AssignBucket(u); got != first {
				t.Errorf("AssignBucket(%q) = %q on call %d, want stable %q", u, got, i, first)
			}
		}
	}
}

func TestAssignBucketAdditiveHash(t *testing.T) {
	tests := []struct {
		userID string
		want   Bucket
	}{
		// "abc" = 97+98+99 = 294, 294 % 3 = 0
		{userID: "abc", want: BucketContentOnly},
		// "abd" = 295, 295 % 3 = 1
		{userID: "abd", want: BucketCollaborativeOnly},
		// "abe" = 296, 296 % 3 = 2
		{userID: "abe", want: BucketHybrid},
		// Anagrams hash identically.
		{userID: "cba", want: BucketContentOnly},
	}

	for _, tt := range tests {
		if got := AssignBucket(tt.userID); got != tt.want {
			t.Errorf("AssignBucket(%q) = %q, want %q", tt.userID, got, tt.want)
		}
	}
}

func TestBucketMethod(t *testing.T) {
	tests := []struct {
		bucket Bucket
		want   Method
	}{
		{BucketContentOnly, MethodContent},
		{BucketCollaborativeOnly, MethodCollaborative},
		{BucketHybrid, MethodHybrid},
	}

	for _, tt := range tests {
		if got := tt.bucket.Method(); got != tt.want {
			t.Errorf("%q.Method() = %q, want %q", tt.bucket, got, tt.want)
		}
	}
}
