// Package contentsync runs the background work that keeps the content
// mirror consistent with the JSON files.
//
// Watcher uses fsnotify to detect collection files edited outside the
// process and asks the coordinator to resync them after a debounce
// interval. Scheduler runs cron jobs (robfig/cron) for drift repair, a
// periodic full resync and the expired-session sweep; Register wires the
// three from Config.
package contentsync
