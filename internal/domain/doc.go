// Package domain contains the entities shared by the addrcheck batch,
// watch and CLI layers.
//
// It has no dependencies on infrastructure concerns (file system, logging,
// metrics) and holds only plain data and sentinel errors.
//
// # Entities
//
//   - [Record]: one candidate read from input and, after a run, its verdict
//   - [Summary]: counts for a finished batch
//   - [Report]: a summary together with its records
package domain
