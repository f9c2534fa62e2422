// Package retention periodically purges terminal jobs (Completed or
// Dead) older than a configurable age, the supplemental operational
// complement described in SPEC_FULL.md §4.5. It is a close adaptation
// of the teacher's CleanWorker/Cleaner pair, repurposed to the
// five-state job model.
package retention
