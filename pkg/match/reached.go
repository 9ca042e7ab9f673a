// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package match

import (
	"errors"
	"strings"

	"github.com/AccelByte/extend-spotlight-session/pkg/common"
)

// MaxReasonWords caps a typed end reason.
const MaxReasonWords = 50

var (
	ErrReasonRequired = errors.New("reason required")
	ErrReasonTooLong  = errors.New("reason too long")
)

// PresetReasons are the one-tap reasons offered before reaching.
var PresetReasons = []string{
	"Running late",
	"Can't find the place",
	"Plans changed",
	"Feeling unsafe",
}

// ValidateEndReason enforces the local end-match rule: once self reached no
// reason is needed, otherwise a preset or a typed reason of 1 to 50 words.
func ValidateEndReason(reason string, selfReached bool) error {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		if selfReached {
			return nil
		}
		return ErrReasonRequired
	}
	if common.CountWords(reason) > MaxReasonWords {
		return ErrReasonTooLong
	}
	return nil
}

// Timeline mirrors the four progress steps of the match screen.
type Timeline struct {
	Matched bool
	OnWay   bool
	Reached bool
	Ended   bool
}

// ReachedView is the rendering of both reached flags.
type ReachedView struct {
	SelfPill        string
	OtherPill       string
	ReachedLabel    string
	ReachedDisabled bool
	EndLabel        string
	ReasonRequired  bool
	Status          string
	Timeline        Timeline
}

func pill(prefix string, reached bool) string {
	if reached {
		return prefix + ": Reached"
	}
	return prefix + ": On the way"
}

// RenderReached projects the reached flags onto labels.
func RenderReached(self, other bool) ReachedView {
	v := ReachedView{
		SelfPill:        pill("You", self),
		OtherPill:       pill("Match", other),
		ReachedLabel:    "I Reached",
		ReachedDisabled: self,
		EndLabel:        "Emergency End Match",
		ReasonRequired:  !self,
		Timeline: Timeline{
			Matched: true,
			OnWay:   true,
			Reached: self || other,
		},
	}
	if self {
		v.ReachedLabel = "Reached Confirmed"
		v.EndLabel = "End Match"
	}

	switch {
	case self && other:
		v.Status = "Both sides reached. You can now end the match anytime."
	case other:
		v.Status = "Your match has reached. Mark yourself reached when you arrive."
	default:
		v.Status = "You are matched. Mark reached when you get there."
	}
	return v
}
