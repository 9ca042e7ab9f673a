// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package intent

import (
	"fmt"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/AccelByte/extend-spotlight-session/pkg/location"
	"github.com/AccelByte/extend-spotlight-session/pkg/match"
)

// RegisterBuiltins binds the standard UI intents to ctrl.
func RegisterBuiltins(t *Table, ctrl *match.Controller) error {
	builtins := map[string]Handler{
		"send_request": func(cmd Command) error {
			id, err := cmd.Arg(0)
			if err != nil {
				return err
			}
			return ctrl.SendRequest(id)
		},
		"accept":  func(Command) error { return ctrl.RespondRequest(true) },
		"decline": func(Command) error { return ctrl.RespondRequest(false) },
		"mark_reached": func(Command) error {
			return ctrl.MarkReached()
		},
		"open_end_modal": func(Command) error {
			ctrl.OpenEndMatchModal()
			return nil
		},
		"toggle_help": func(Command) error {
			ctrl.ToggleHelp()
			return nil
		},
		"select_reason": func(cmd Command) error {
			ctrl.SelectEndReason(cmd.Text())
			return nil
		},
		"end_match": func(cmd Command) error {
			return ctrl.EndMatch(cmd.Text())
		},
		"acknowledge": func(Command) error {
			return ctrl.AcknowledgeOutcome()
		},
		"select_rating": func(cmd Command) error {
			raw, err := cmd.Arg(0)
			if err != nil {
				return err
			}
			n, err := strconv.Atoi(raw)
			if err != nil {
				return fmt.Errorf("rating %q is not a number: %w", raw, err)
			}
			ctrl.SelectRating(n)
			return nil
		},
		"submit_feedback": func(cmd Command) error {
			return ctrl.SubmitFeedback(cmd.Text())
		},
		"back_to_map": func(Command) error {
			return ctrl.BackToMap()
		},
		"dismiss": func(cmd Command) error {
			id, err := cmd.Arg(0)
			if err != nil {
				return err
			}
			ctrl.Dismiss(id)
			return nil
		},
		"checkin": func(cmd Command) error {
			return ctrl.CheckIn(match.CheckInRequest{
				Place:    cmd.Option("place"),
				Intent:   cmd.Option("intent"),
				MeetTime: cmd.Option("meet_time"),
				Bill:     cmd.Option("bill"),
				Clue:     cmd.Option("clue"),
			})
		},
		"checkout": func(Command) error {
			return ctrl.CheckOut()
		},
		"report_user": func(cmd Command) error {
			return ctrl.ReportUser(cmd.Option("id"), cmd.Text())
		},
		"report_app": func(cmd Command) error {
			return ctrl.ReportApp(cmd.Text())
		},
		"select_user": func(cmd Command) error {
			id, err := cmd.Arg(0)
			if err != nil {
				return err
			}
			return ctrl.SelectUser(id)
		},
		"my_feedback": func(Command) error {
			ctrl.FetchMyFeedback()
			return nil
		},
		"location": func(cmd Command) error {
			lat, err := floatArg(cmd, 0)
			if err != nil {
				return err
			}
			lon, err := floatArg(cmd, 1)
			if err != nil {
				return err
			}
			return ctrl.OnLocation(location.Sample{Lat: lat, Lon: lon, Timestamp: time.Now()})
		},
		"state": func(Command) error {
			logState(ctrl.Context())
			return nil
		},
	}

	for name, h := range builtins {
		if err := t.Register(name, h); err != nil {
			return err
		}
	}
	return nil
}

func floatArg(cmd Command, i int) (float64, error) {
	raw, err := cmd.Arg(i)
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("%s argument %d: %w", cmd.Name, i+1, err)
	}
	return v, nil
}

func logState(sc *match.SessionContext) {
	fields := logrus.Fields{
		"screen":        sc.View.Current().String(),
		"trust":         sc.TrustScore,
		"live":          sc.Live,
		"nearby":        len(sc.Nearby),
		"notifications": sc.Notifications.Len(),
		"feedback_owed": sc.Gate.Engaged(),
	}
	if sc.Match != nil {
		fields["match_id"] = sc.Match.MatchID
		fields["self_reached"] = sc.Match.SelfReached
		fields["other_reached"] = sc.Match.OtherReached
	}
	if sc.Outcome != nil {
		fields["outcome"] = sc.Outcome.Title
	}
	logrus.WithFields(fields).Info("session state")
}
