// Package retention removes old journal entries.
//
// A Pruner deletes entries older than the configured number of days. Its
// Scheduler runs the pruner on a standard five-field cron expression using
// github.com/robfig/cron/v3.
package retention
