// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package feedback

import (
	"errors"
	"strings"
	"testing"

	"github.com/AccelByte/extend-spotlight-session/pkg/api"
)

func TestGate_HoldsAcrossNavigationAttempts(t *testing.T) {
	g := NewGate()
	if !g.CanLeave() {
		t.Fatal("fresh gate should allow leaving")
	}

	g.RequireFeedback(Target{UserID: "42", Username: "sam"})
	for i := 0; i < 20; i++ {
		if g.CanLeave() {
			t.Fatalf("CanLeave() = true on attempt %d, expected gate engaged", i)
		}
		if err := g.CheckLeave(); !errors.Is(err, ErrRatingMandatory) {
			t.Fatalf("CheckLeave() = %v, expected ErrRatingMandatory", err)
		}
		// interleave rating changes; none of them may open the gate
		g.SelectRating(i%10 + 1)
		g.RequireFeedback(Target{UserID: "42", Username: "sam"})
	}

	g.Release()
	if !g.CanLeave() {
		t.Error("CanLeave() should be true after Release()")
	}
	if g.Rating() != 0 {
		t.Errorf("Rating() = %d after Release(), expected 0", g.Rating())
	}
}

func TestGate_SelectRatingIsExclusive(t *testing.T) {
	g := NewGate()
	g.SelectRating(3)
	g.SelectRating(8)
	if g.Rating() != 8 {
		t.Errorf("Rating() = %d, expected 8", g.Rating())
	}
}

func TestGate_Validate(t *testing.T) {
	tests := []struct {
		name        string
		target      *Target
		rating      int
		comment     string
		expectedErr error
	}{
		{name: "no rating", target: &Target{UserID: "1"}, expectedErr: ErrNoRating},
		{name: "no target", rating: 5, expectedErr: ErrNoTarget},
		{name: "comment too long", target: &Target{UserID: "1"}, rating: 5, comment: strings.Repeat("word ", 51), expectedErr: ErrCommentTooLong},
		{name: "fifty words", target: &Target{UserID: "1"}, rating: 5, comment: strings.Repeat("word ", 50)},
		{name: "out of range is left to server", target: &Target{UserID: "1"}, rating: 11},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := NewGate()
			if tt.target != nil {
				g.RequireFeedback(*tt.target)
			}
			g.SelectRating(tt.rating)

			target, rating, err := g.Validate(tt.comment)
			if !errors.Is(err, tt.expectedErr) {
				t.Fatalf("Validate() error = %v, expected %v", err, tt.expectedErr)
			}
			if err == nil && (target.UserID != tt.target.UserID || rating != tt.rating) {
				t.Errorf("Validate() = (%+v, %d), expected (%+v, %d)", target, rating, *tt.target, tt.rating)
			}
		})
	}
}

func TestRatings(t *testing.T) {
	r := Ratings()
	if len(r) != 10 || r[0] != 1 || r[9] != 10 {
		t.Errorf("Ratings() = %v, expected 1..10", r)
	}
}

func TestMessage(t *testing.T) {
	tests := []struct {
		err      error
		expected string
	}{
		{ErrRatingMandatory, "Rating is mandatory. Submit feedback to continue."},
		{ErrNoRating, "Select a rating"},
		{ErrNoTarget, "No feedback target found"},
		{&api.Error{Status: 400, Code: api.CodeInvalidRating}, "Please select a rating between 1 and 10."},
		{&api.Error{Status: 400, Code: api.CodeMissingData}, "Feedback target is missing. Please try again."},
		{&api.Error{Status: 400, Code: api.CodeInvalidData}, "Feedback target is missing. Please try again."},
		{&api.Error{Status: 401, Code: api.CodeUnauthorized}, "Please sign in again."},
		{errors.New("boom"), "Failed to submit feedback. Please try again."},
	}
	for _, tt := range tests {
		if got := Message(tt.err); got != tt.expected {
			t.Errorf("Message(%v) = %q, expected %q", tt.err, got, tt.expected)
		}
	}
}
