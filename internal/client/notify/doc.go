// Package notify schedules one-shot task reminders.
//
// # Overview
//
// Scheduler is the collaborator contract: schedule a message after a delay,
// get an opaque handle back, cancel by handle. TimerScheduler implements it
// in-process with a journal kept in the key/value store, so pending reminders
// survive a restart. A Sink delivers what fires: the terminal, an MQTT topic
// or e-mail.
//
// Binder sits between the task store and a Scheduler. It applies the
// reminder policy: deadlines that already passed are skipped silently,
// scheduling failures turn into a recoverable warning, and cancellation is
// best-effort because it always races with delivery.
//
// # Handle lifecycle
//
//	Unscheduled -> Scheduled -> Cancelled
//	                         -> Fired
//
// A cancelled or fired handle is never reused; rescheduling yields a new one.
package notify
