// Package carousel implements the auto-advancing listing carousel as an
// explicit state machine.
//
// A Carousel is Idle when auto-advance cannot run (disabled, or every card
// already fits in the viewport), Advancing while a tick is scheduled, and
// Paused while the user hovers or touches it. Exactly one timer is pending at
// any moment: either the next advance tick or the resume after an
// interaction ends. Timers come from a Scheduler so tests can drive time by
// hand.
package carousel
