// Package cli provides the interactive Tamamla command-line client.
//
// It wires configuration, local storage, the reminder scheduler and the core
// services into a read-eval-print loop. Typical flow: request notification
// permission, re-arm pending reminders, restore the remembered login and
// execute user commands until exit.
//
// Key features:
//   - Register / Login / Logout / Delete account
//   - Add, edit, toggle and delete tasks with deadlines
//   - List tasks, optionally filtered (all, pending, completed)
//   - Reminders delivered to the terminal, an MQTT topic or e-mail
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
