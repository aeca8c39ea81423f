// Package worker runs the asynchronous analysis pipeline. A queue consumer
// feeds requests into the runner, which drives the external evaluation
// engine and persists the results. A cron sweep archives old results to S3.
package worker
