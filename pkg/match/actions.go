// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package match

import (
	"context"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/AccelByte/extend-spotlight-session/pkg/api"
	"github.com/AccelByte/extend-spotlight-session/pkg/eventloop"
	"github.com/AccelByte/extend-spotlight-session/pkg/feedback"
	"github.com/AccelByte/extend-spotlight-session/pkg/location"
	"github.com/AccelByte/extend-spotlight-session/pkg/poller"
	"github.com/AccelByte/extend-spotlight-session/pkg/view"
)

// CheckInRequest is the form behind "go live".
type CheckInRequest struct {
	Place    string
	Intent   string
	MeetTime string
	Bill     string
	Clue     string
}

// fail alerts the user and hands err back to the caller.
func (c *Controller) fail(err error) error {
	c.alert(Message(err))
	return err
}

// OnLocation feeds a GPS fix. The first fix triggers a nearby refresh.
func (c *Controller) OnLocation(sample location.Sample) error {
	if !location.Valid(sample) {
		return ErrInvalidSample
	}
	first := !c.sc.Location.Ready()
	c.sc.Location.Ingest(sample)
	if first {
		c.RefreshNearby()
	}
	return nil
}

// SendRequest asks receiverID to meet. On success the match-status poller
// runs so the peer's acceptance is noticed.
func (c *Controller) SendRequest(receiverID string) error {
	if c.sc.Match != nil {
		return c.fail(ErrMatchActive)
	}
	if c.sc.InPostMatch() {
		return c.fail(ErrPostMatchFlow)
	}
	issued := c.epoch.Load()
	c.runner.Go(func(ctx context.Context) eventloop.Continuation {
		err := c.api.SendRequest(ctx, api.ID(receiverID))
		return func() {
			if c.epoch.Load() != issued {
				return
			}
			if err != nil {
				c.alert(Message(err))
				return
			}
			c.sc.RequestPending = true
			c.startPoller(poller.MatchStatus)
			c.alert("Request sent")
		}
	})
	return nil
}

// RespondRequest accepts or declines the pending incoming request.
func (c *Controller) RespondRequest(accept bool) error {
	req, ok := c.sc.Notifications.Incoming()
	if !ok {
		return c.fail(ErrNoIncomingRequest)
	}
	action := api.Decline
	if accept {
		action = api.Accept
	}

	issued := c.epoch.Load()
	c.runner.Go(func(ctx context.Context) eventloop.Continuation {
		result, err := c.api.RespondRequest(ctx, api.ID(req.ID), action)
		return func() {
			if c.epoch.Load() != issued {
				return
			}
			if err != nil {
				c.alert(Message(err))
				return
			}
			c.sc.Notifications.SetIncoming(nil)
			if accept && result.Status == "matched" && c.sc.Match == nil {
				c.enterMatch("")
			}
		}
	})
	return nil
}

// MarkReached flags self arrival optimistically, reverting if the server refuses.
func (c *Controller) MarkReached() error {
	s := c.sc.Match
	if s == nil || s.Ended {
		return c.fail(ErrNoActiveMatch)
	}
	if s.SelfReached {
		return nil
	}
	s.SelfReached = true
	s.reachedLocal = true

	c.runner.Go(func(ctx context.Context) eventloop.Continuation {
		err := c.api.MarkReached(ctx)
		return func() {
			if c.sc.Match != s || s.Ended {
				return
			}
			if err != nil {
				s.reachedLocal = false
				s.SelfReached = s.reachedServer
				c.alert(Message(errMarkReached{err}))
			}
		}
	})
	return nil
}

// SelectEndReason picks a preset reason chip. Selecting the same chip again clears it.
func (c *Controller) SelectEndReason(reason string) {
	if c.sc.SelectedEndReason == reason {
		c.sc.SelectedEndReason = ""
		return
	}
	c.sc.SelectedEndReason = reason
}

// EndMatch ends the active match with reason, falling back to the selected
// preset. Without self reached a reason is mandatory and checked before any call.
func (c *Controller) EndMatch(reason string) error {
	s := c.sc.Match
	if s == nil || s.Ended {
		return c.fail(ErrNoActiveMatch)
	}
	reason = strings.TrimSpace(reason)
	if reason == "" {
		reason = c.sc.SelectedEndReason
	}
	if err := ValidateEndReason(reason, s.SelfReached); err != nil {
		logrus.Infof("end match rejected locally: %v", err)
		return c.fail(err)
	}

	s.ending = true
	c.runner.Go(func(ctx context.Context) eventloop.Continuation {
		_, err := c.api.EndMatch(ctx, reason)
		return func() {
			if c.sc.Match != s || s.Ended {
				return
			}
			if err != nil && !api.IsCode(err, api.CodeNoActiveMatch) {
				s.ending = false
				c.alert(Message(err))
				return
			}
			c.sc.View.CloseEndMatchModal()
			c.endSession(SelfEndFlow(s))
		}
	})
	return nil
}

// AcknowledgeOutcome leaves the post-match screen for the rating screen.
func (c *Controller) AcknowledgeOutcome() error {
	if c.sc.Outcome == nil {
		return ErrNoOutcome
	}
	if c.sc.Gate.Engaged() {
		c.show(view.FeedbackRequired)
		return nil
	}
	c.resolveFeedbackTarget(true)
	return nil
}

// SelectRating picks the rating to submit.
func (c *Controller) SelectRating(n int) {
	c.sc.Gate.SelectRating(n)
}

// SubmitFeedback sends the rating. Only a confirmed submission releases the
// gate, clears the session and restarts browsing.
func (c *Controller) SubmitFeedback(comment string) error {
	if c.sc.submitting {
		return ErrSubmitInFlight
	}
	target, rating, err := c.sc.Gate.Validate(comment)
	if err != nil {
		return c.fail(err)
	}

	c.sc.submitting = true
	c.runner.Go(func(ctx context.Context) eventloop.Continuation {
		err := c.api.SubmitFeedback(ctx, api.ID(target.UserID), rating, strings.TrimSpace(comment))
		return func() {
			c.sc.submitting = false
			pending, ok := c.sc.Gate.Pending()
			if !ok || pending != target {
				return
			}
			if err != nil {
				logrus.Infof("feedback rejected: %v", err)
				c.alert(feedback.Message(err))
				return
			}
			c.sc.Gate.Release()
			c.closeSession()
			c.resumeBrowsing()
		}
	})
	return nil
}

// BackToMap navigates to browsing. Rejected while feedback is owed or a match is live.
func (c *Controller) BackToMap() error {
	if err := c.sc.Gate.CheckLeave(); err != nil {
		return c.fail(err)
	}
	if c.sc.Outcome != nil {
		return c.fail(feedback.ErrRatingMandatory)
	}
	if c.sc.Match != nil {
		return c.fail(ErrMatchActive)
	}
	c.resumeBrowsing()
	return nil
}

// Dismiss removes a bell entry.
func (c *Controller) Dismiss(id string) bool {
	return c.sc.Notifications.Dismiss(id)
}

// OpenEndMatchModal opens the end-match modal on the match screen.
func (c *Controller) OpenEndMatchModal() bool {
	return c.sc.View.OpenEndMatchModal()
}

// ToggleHelp flips the match screen's help overlay.
func (c *Controller) ToggleHelp() bool {
	return c.sc.View.ToggleHelp()
}

// CheckIn makes us discoverable at the current estimate.
func (c *Controller) CheckIn(req CheckInRequest) error {
	est, ok := c.sc.Location.Estimate()
	if !ok {
		return c.fail(ErrLocationNotReady)
	}
	if strings.TrimSpace(req.Place) == "" || strings.TrimSpace(req.Intent) == "" {
		return c.fail(ErrCheckInIncomplete)
	}

	body := api.CheckIn{
		Lat:      est.Lat,
		Lon:      est.Lon,
		Place:    strings.TrimSpace(req.Place),
		Intent:   strings.TrimSpace(req.Intent),
		MeetTime: req.MeetTime,
		Bill:     req.Bill,
		Clue:     req.Clue,
	}
	c.runner.Go(func(ctx context.Context) eventloop.Continuation {
		err := c.api.CheckIn(ctx, body)
		return func() {
			if err != nil {
				c.alert(Message(errCheckIn{err}))
				return
			}
			c.sc.Live = true
			c.RefreshNearby()
		}
	})
	return nil
}

// CheckOut stops broadcasting.
func (c *Controller) CheckOut() error {
	c.runner.Go(func(ctx context.Context) eventloop.Continuation {
		err := c.api.CheckOut(ctx)
		return func() {
			if err != nil {
				c.alert(Message(errCheckOut{err}))
				return
			}
			c.sc.Live = false
		}
	})
	return nil
}

// SelectUser opens a nearby user's profile and loads their ratings.
func (c *Controller) SelectUser(userID string) error {
	for i := range c.sc.Nearby {
		if c.sc.Nearby[i].ID.String() != userID {
			continue
		}
		entry := c.sc.Nearby[i]
		c.sc.SelectedUser = &entry
		c.sc.ProfileFeedback = nil

		c.runner.Go(func(ctx context.Context) eventloop.Continuation {
			summary, err := c.api.UserFeedback(ctx, entry.ID)
			if err != nil {
				logrus.Debugf("profile feedback for %s failed: %v", entry.ID, err)
				return nil
			}
			return func() {
				if c.sc.SelectedUser != nil && c.sc.SelectedUser.ID == entry.ID {
					c.sc.ProfileFeedback = &summary
				}
			}
		})
		return nil
	}
	return ErrUnknownUser
}

// ReportUser reports targetID, defaulting to the selected profile.
func (c *Controller) ReportUser(targetID, message string) error {
	if targetID == "" && c.sc.SelectedUser != nil {
		targetID = c.sc.SelectedUser.ID.String()
	}
	if targetID == "" {
		return c.fail(ErrNoReportTarget)
	}
	c.runner.Go(func(ctx context.Context) eventloop.Continuation {
		err := c.api.ReportUser(ctx, api.ID(targetID), strings.TrimSpace(message))
		return func() {
			switch {
			case api.IsCode(err, api.CodeUnauthorized):
				c.alert("Please sign in to report.")
			case err != nil:
				c.alert("Unable to submit report")
			default:
				c.alert("Report submitted")
			}
		}
	})
	return nil
}

// ReportApp sends free-text feedback to the operators. Blank messages are ignored.
func (c *Controller) ReportApp(message string) error {
	message = strings.TrimSpace(message)
	if message == "" {
		return nil
	}
	c.runner.Go(func(ctx context.Context) eventloop.Continuation {
		err := c.api.ReportApp(ctx, message)
		return func() {
			switch {
			case api.IsCode(err, api.CodeUnauthorized):
				c.alert("Please sign in to send a report.")
			case err != nil:
				c.alert("Unable to send report")
			default:
				c.alert("Thanks! Report sent.")
			}
		}
	})
	return nil
}
