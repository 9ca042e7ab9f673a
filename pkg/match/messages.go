// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package match

import (
	"errors"

	"github.com/AccelByte/extend-spotlight-session/pkg/api"
	"github.com/AccelByte/extend-spotlight-session/pkg/feedback"
)

// wrappers tagging which action a remote failure came from
type (
	errMarkReached struct{ error }
	errCheckIn     struct{ error }
	errCheckOut    struct{ error }
)

func (e errMarkReached) Unwrap() error { return e.error }
func (e errCheckIn) Unwrap() error { return e.error }
func (e errCheckOut) Unwrap() error { return e.error }

// Message maps an action error onto the text shown to the user.
func Message(err error) string {
	var (
		markReached errMarkReached
		checkIn     errCheckIn
		checkOut    errCheckOut
	)

	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrReasonRequired):
		return "Reason is required before ending if you have not reached."
	case errors.Is(err, ErrReasonTooLong), api.IsCode(err, api.CodeReasonTooLong):
		return "Reason must be 50 words or fewer."
	case api.IsCode(err, api.CodeReasonRequired):
		return "Reason is required before ending this match."
	case errors.Is(err, ErrNoActiveMatch):
		return "No active match."
	case errors.Is(err, ErrMatchActive):
		return "Finish your current match first."
	case errors.Is(err, ErrPostMatchFlow), errors.Is(err, feedback.ErrRatingMandatory):
		return feedback.Message(feedback.ErrRatingMandatory)
	case errors.Is(err, ErrNoIncomingRequest):
		return "No pending request."
	case errors.Is(err, ErrLocationNotReady):
		return "Location not ready yet"
	case errors.Is(err, ErrCheckInIncomplete):
		return "Please fill in place and intent"
	case errors.Is(err, ErrNoReportTarget):
		return "Select a user to report."
	case errors.Is(err, feedback.ErrNoRating), errors.Is(err, feedback.ErrNoTarget), errors.Is(err, feedback.ErrCommentTooLong):
		return feedback.Message(err)
	case errors.As(err, &markReached):
		return "Unable to mark reached"
	case errors.As(err, &checkIn):
		return "Failed to check in"
	case errors.As(err, &checkOut):
		return "Failed to turn off"
	case api.IsCode(err, api.CodeAlreadyMatched):
		return "You are already matched."
	case api.IsCode(err, api.CodeAlreadySent):
		return "Request already sent."
	case api.IsCode(err, api.CodeUnauthorized):
		return "Please sign in again."
	default:
		return "Something went wrong. Please try again."
	}
}
