// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package feedback

import (
	"errors"

	"github.com/AccelByte/extend-spotlight-session/pkg/common"
)

const (
	MinRating       = 1
	MaxRating       = 10
	MaxCommentWords = 50
)

var (
	ErrRatingMandatory = errors.New("rating is mandatory")
	ErrNoRating        = errors.New("no rating selected")
	ErrNoTarget        = errors.New("no feedback target")
	ErrCommentTooLong  = errors.New("comment too long")
)

// Target is the user to be rated once a match ends.
type Target struct {
	UserID   string `json:"id"`
	Username string `json:"username"`
}

// Gate blocks the way back to browsing until feedback has been submitted.
// Not safe for concurrent use.
type Gate struct {
	target *Target
	rating int
}

func NewGate() *Gate {
	return &Gate{}
}

// RequireFeedback engages the gate for target. Re-engaging replaces the target
// but keeps the gate closed.
func (g *Gate) RequireFeedback(target Target) {
	t := target
	g.target = &t
}

// Pending returns the target awaiting feedback.
func (g *Gate) Pending() (Target, bool) {
	if g.target == nil {
		return Target{}, false
	}
	return *g.target, true
}

// Engaged reports whether a target is set.
func (g *Gate) Engaged() bool {
	return g.target != nil
}

// CanLeave reports whether navigating back to browsing is allowed.
func (g *Gate) CanLeave() bool {
	return g.target == nil
}

// CheckLeave returns ErrRatingMandatory while the gate is engaged.
func (g *Gate) CheckLeave() error {
	if !g.CanLeave() {
		return ErrRatingMandatory
	}
	return nil
}

// SelectRating makes n the only selected rating.
func (g *Gate) SelectRating(n int) {
	g.rating = n
}

// Rating returns the selected rating, zero when nothing is selected.
func (g *Gate) Rating() int {
	return g.rating
}

// Validate checks the local preconditions for a submission.
// The 1..10 range is left to the server, which answers with invalid_rating.
func (g *Gate) Validate(comment string) (Target, int, error) {
	if g.rating == 0 {
		return Target{}, 0, ErrNoRating
	}
	if g.target == nil {
		return Target{}, 0, ErrNoTarget
	}
	if common.CountWords(comment) > MaxCommentWords {
		return Target{}, 0, ErrCommentTooLong
	}
	return *g.target, g.rating, nil
}

// Release clears the target and the rating selection.
// Callers must only invoke it after the server accepted the submission.
func (g *Gate) Release() {
	g.target = nil
	g.rating = 0
}

// Ratings lists the selectable rating values in display order.
func Ratings() []int {
	out := make([]int, 0, MaxRating-MinRating+1)
	for i := MinRating; i <= MaxRating; i++ {
		out = append(out, i)
	}
	return out
}
