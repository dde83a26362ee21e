// Package services holds the Tamamla core: the account directory, the
// per-user task store and the persisted session marker.
//
// The three services share one writer mutex. Every read-modify-write of the
// accounts or tasks blob happens under it, so concurrent callers cannot lose
// each other's updates. Reminder scheduling goes through a ReminderBinder and
// is never invoked while a database transaction is open.
//
// Storage failures are logged and returned wrapped in
// common.ErrStorageUnavailable. Validation failures never touch storage.
package services
