// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/AccelByte/extend-spotlight-session/pkg/match"
	"github.com/AccelByte/extend-spotlight-session/pkg/notification"
	"github.com/AccelByte/extend-spotlight-session/pkg/view"
)

const namespace = "spotlight_session"

// Collectors groups every session metric.
type Collectors struct {
	PollTicks     *prometheus.CounterVec
	PollFailures  *prometheus.CounterVec
	Transitions   *prometheus.CounterVec
	MatchesEnded  *prometheus.CounterVec
	Notifications *prometheus.CounterVec
}

// New creates unregistered collectors.
func New() *Collectors {
	return &Collectors{
		PollTicks: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "poll_ticks_total",
				Help:      "Completed poll ticks per poller",
			},
			[]string{"poller"},
		),
		PollFailures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "poll_failures_total",
				Help:      "Poll ticks that returned no new information because the call failed",
			},
			[]string{"poller"},
		),
		Transitions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "screen_transitions_total",
				Help:      "Screen changes by target screen",
			},
			[]string{"screen"},
		),
		MatchesEnded: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "matches_ended_total",
				Help:      "Matches ended by flow type",
			},
			[]string{"flow"},
		),
		Notifications: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "notifications_total",
				Help:      "Bell notifications by kind and result (pushed or deduped)",
			},
			[]string{"kind", "result"},
		),
	}
}

// Register adds the collectors to reg.
func (c *Collectors) Register(reg prometheus.Registerer) error {
	for _, collector := range []prometheus.Collector{
		c.PollTicks, c.PollFailures, c.Transitions, c.MatchesEnded, c.Notifications,
	} {
		if err := reg.Register(collector); err != nil {
			return err
		}
	}
	return nil
}

// ObservePoll records one finished poll tick. It matches poller.Observer.
func (c *Collectors) ObservePoll(id string, err error) {
	c.PollTicks.WithLabelValues(id).Inc()
	if err != nil {
		c.PollFailures.WithLabelValues(id).Inc()
	}
}

// Observer adapts the collectors to match.Observer.
func (c *Collectors) Observer() match.Observer {
	return observer{c}
}

type observer struct {
	c *Collectors
}

func (o observer) ScreenChanged(from, to view.Screen) {
	o.c.Transitions.WithLabelValues(to.String()).Inc()
}

func (o observer) MatchEnded(matchID string, flow match.FlowType) {
	o.c.MatchesEnded.WithLabelValues(string(flow)).Inc()
}

func (o observer) NotificationPushed(n notification.Notification, added bool) {
	result := "pushed"
	if !added {
		result = "deduped"
	}
	o.c.Notifications.WithLabelValues(n.Kind.String(), result).Inc()
}
