// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package view

import (
	log "github.com/sirupsen/logrus"
)

// Screen is one of the mutually exclusive top-level sections.
type Screen int

const (
	// AppShell is the browsing screen: map, nearby list and check-in form.
	AppShell Screen = iota
	Matched
	PostMatchOutcome
	FeedbackRequired
)

// Browsing is an alias for AppShell used by the lifecycle code.
const Browsing = AppShell

var screenNames = map[Screen]string{
	AppShell:         "app_shell",
	Matched:          "matched",
	PostMatchOutcome: "post_match_outcome",
	FeedbackRequired: "feedback_required",
}

func (s Screen) String() string {
	if name, ok := screenNames[s]; ok {
		return name
	}
	return "unknown"
}

// Screens returns every screen in declaration order.
func Screens() []Screen {
	return []Screen{AppShell, Matched, PostMatchOutcome, FeedbackRequired}
}

// State is the projection handed to a Renderer.
type State struct {
	Screen       Screen
	ModalOpen    bool
	HelpOpen     bool
	ErrorMessage string
}

// Renderer draws State. Implementations must not call back into the Controller.
type Renderer interface {
	Render(state State)
	Alert(message string)
}

// Controller keeps exactly one screen visible and owns the Matched overlays.
type Controller struct {
	state    State
	renderer Renderer
}

// NewController starts on AppShell. A nil renderer is allowed.
func NewController(renderer Renderer) *Controller {
	return &Controller{
		state:    State{Screen: AppShell},
		renderer: renderer,
	}
}

// Show makes screen the only visible section. Leaving Matched closes the
// end-match modal and the help overlay.
func (c *Controller) Show(screen Screen) {
	if c.state.Screen == Matched && screen != Matched {
		c.state.ModalOpen = false
		c.state.HelpOpen = false
	}
	c.state.Screen = screen
	c.state.ErrorMessage = ""
	c.render()
}

// Current returns the visible screen.
func (c *Controller) Current() Screen {
	return c.state.Screen
}

// IsVisible reports whether screen is the visible one.
func (c *Controller) IsVisible(screen Screen) bool {
	return c.state.Screen == screen
}

// State returns a copy of the current projection.
func (c *Controller) State() State {
	return c.state
}

// OpenEndMatchModal opens the end-match modal. Ignored outside Matched.
func (c *Controller) OpenEndMatchModal() bool {
	if c.state.Screen != Matched {
		return false
	}
	c.state.ModalOpen = true
	c.render()
	return true
}

func (c *Controller) CloseEndMatchModal() {
	if !c.state.ModalOpen {
		return
	}
	c.state.ModalOpen = false
	c.render()
}

// ToggleHelp flips the help overlay. Ignored outside Matched.
func (c *Controller) ToggleHelp() bool {
	if c.state.Screen != Matched {
		return false
	}
	c.state.HelpOpen = !c.state.HelpOpen
	c.render()
	return true
}

// Alert surfaces a message on the current screen without changing it.
func (c *Controller) Alert(message string) {
	if message == "" {
		return
	}
	c.state.ErrorMessage = message
	if c.renderer != nil {
		c.renderer.Alert(message)
	}
}

// LastAlert returns the message currently shown, if any.
func (c *Controller) LastAlert() string {
	return c.state.ErrorMessage
}

func (c *Controller) render() {
	if c.renderer != nil {
		c.renderer.Render(c.state)
	}
}

// LogRenderer writes every projection change to the log. Used by the headless binary.
type LogRenderer struct{}

func (LogRenderer) Render(state State) {
	log.WithFields(log.Fields{
		"screen": state.Screen.String(),
		"modal":  state.ModalOpen,
		"help":   state.HelpOpen,
	}).Info("screen changed")
}

func (LogRenderer) Alert(message string) {
	log.WithField("alert", message).Warn("user alert")
}
