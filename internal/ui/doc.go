// Package ui implements the Bubble Tea terminal interface for flowtop.
//
// # Views
//
// Four views share a common header and command bar:
//
//   - Dashboard: queue breakdown, system load, storage savings and the
//     files currently in flight
//   - Resources: nodes, libraries, flows, plugins and scheduled tasks,
//     with enable/disable and run actions
//   - Files: active workers, upcoming queue and recently finished files,
//     with abort/unhold/reprocess actions
//   - Log: the server's own log, tailed through the API
//
// # Data flow
//
// The UI never fetches poll data itself. A tick command fires every two
// seconds, reads the latest snapshot out of the shared state.Store and hands
// it to the model; the background poller owns the fetch cadence. Control
// actions and the server log are the exceptions: those hit the client
// directly from a tea.Cmd, and every action is followed by an immediate
// re-poll so its effect lands on screen without waiting a cycle.
//
// # Read-only mode
//
// Without credentials the server only exposes the public endpoint family,
// so the resources and files views show a hint instead of lists and all
// control keys are inert. The header shows a "read-only" badge.
package ui
