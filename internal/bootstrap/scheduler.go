// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package bootstrap

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/AccelByte/extend-spotlight-session/pkg/match"
	"github.com/AccelByte/extend-spotlight-session/pkg/poller"
	"github.com/AccelByte/extend-spotlight-session/pkg/schedule"
)

// PollTasks maps every poller id to the controller task it runs.
func PollTasks(ctrl *match.Controller) map[string]poller.Task {
	return map[string]poller.Task{
		poller.Requests:      ctrl.PollRequests,
		poller.Trust:         ctrl.PollUserInfo,
		poller.Notifications: ctrl.PollNotifications,
		poller.MatchStatus:   ctrl.PollMatchStatus,
	}
}

// RegisterPollers registers the controller's poll tasks on sched using the
// timings in cfg.
//
// ============================================================
// DEVELOPER: Poller timings live in config/schedule.yaml
// ============================================================
// Entries override the built-in defaults by id:
//
// pollers:
//   - id: match_status
//     interval: 3s
//     immediate: false
//     disabled: false
//
// A disabled poller is never registered; the controller logs a
// warning whenever it tries to start one.
// ============================================================
func RegisterPollers(sched *poller.Scheduler, cfg *schedule.Config, ctrl *match.Controller) error {
	tasks := PollTasks(ctrl)

	registered := 0
	for _, pc := range cfg.Pollers {
		if pc.Disabled {
			logrus.Infof("poller %s disabled by schedule", pc.ID)
			continue
		}
		task, ok := tasks[pc.ID]
		if !ok {
			return fmt.Errorf("%w: %s", poller.ErrUnknownPoller, pc.ID)
		}
		if err := sched.Register(pc.ID, pc.Interval, pc.Immediate, task); err != nil {
			return fmt.Errorf("register poller %s: %w", pc.ID, err)
		}
		registered++
	}

	logrus.Infof("registered %d pollers", registered)
	return nil
}
