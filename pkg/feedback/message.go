// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package feedback

import (
	"errors"

	"github.com/AccelByte/extend-spotlight-session/pkg/api"
)

// Message maps a submission or navigation error onto the text shown to the user.
func Message(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrRatingMandatory):
		return "Rating is mandatory. Submit feedback to continue."
	case errors.Is(err, ErrNoRating):
		return "Select a rating"
	case errors.Is(err, ErrNoTarget):
		return "No feedback target found"
	case errors.Is(err, ErrCommentTooLong):
		return "Comment must be 50 words or fewer."
	case api.IsCode(err, api.CodeInvalidRating):
		return "Please select a rating between 1 and 10."
	case api.IsCode(err, api.CodeMissingData, api.CodeInvalidData):
		return "Feedback target is missing. Please try again."
	case api.IsCode(err, api.CodeUnauthorized):
		return "Please sign in again."
	case api.IsCode(err, api.CodeTooFrequent):
		return "You already rated this user recently."
	default:
		return "Failed to submit feedback. Please try again."
	}
}
