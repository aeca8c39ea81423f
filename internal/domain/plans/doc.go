// Package plans defines the business-plan file entity, the validation rules
// for upload descriptors, and the contracts for metadata persistence and the
// backing object store.
package plans
