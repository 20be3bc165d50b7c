// Package domain contains the core business entities for the revision
// assistant: workspace pages, index chunks, revision schedule entries and
// conversation sessions. It has no dependencies on adapters or services.
package domain
