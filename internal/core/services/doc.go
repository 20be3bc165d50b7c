// Package services implements the driving port interfaces: the index
// synchroniser, the query engine and the revision planner. Services contain
// the core business logic and orchestrate calls to driven ports (adapters).
package services
