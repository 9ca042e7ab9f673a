// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package bootstrap

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/AccelByte/extend-spotlight-session/pkg/eventloop"
	"github.com/AccelByte/extend-spotlight-session/pkg/intent"
	"github.com/AccelByte/extend-spotlight-session/pkg/match"
	"github.com/AccelByte/extend-spotlight-session/pkg/poller"
	"github.com/AccelByte/extend-spotlight-session/pkg/schedule"
	"github.com/AccelByte/extend-spotlight-session/pkg/view"
)

// InitController builds the session context and the lifecycle controller,
// then registers its poll tasks on sched.
//
// ============================================================
// DEVELOPER: Lifecycle observers
// ============================================================
// Every observer passed here sees screen changes, ended matches
// and notification pushes on the event loop. Observers must not
// block; queue work elsewhere (see pkg/journal Recorder).
// ============================================================
func InitController(
	client match.API,
	sched *poller.Scheduler,
	scheduleCfg *schedule.Config,
	runner eventloop.Runner,
	renderer view.Renderer,
	observers ...match.Observer,
) (*match.Controller, error) {
	sc := match.NewSessionContext(renderer)
	ctrl := match.NewController(sc, client, sched, runner, match.Observers(observers))

	if err := RegisterPollers(sched, scheduleCfg, ctrl); err != nil {
		return nil, fmt.Errorf("failed to register pollers: %w", err)
	}

	logrus.Infof("initialized match controller with %d observers", len(observers))
	return ctrl, nil
}

// InitIntents builds the intent table bound to ctrl.
//
// ============================================================
// DEVELOPER: Register custom intents here.
// ============================================================
// Builtin intents are defined in pkg/intent/builtin.go. Custom
// ones can be added below with table.Register(name, handler).
// ============================================================
func InitIntents(ctrl *match.Controller) (*intent.Table, error) {
	table := intent.NewTable()
	if err := intent.RegisterBuiltins(table, ctrl); err != nil {
		return nil, fmt.Errorf("failed to register builtin intents: %w", err)
	}

	logrus.Infof("registered %d intents", table.Count())
	return table, nil
}
