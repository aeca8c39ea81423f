// Package analyses defines analysis jobs, their results, and the contracts
// for persisting evaluations and dispatching analysis work.
package analyses
