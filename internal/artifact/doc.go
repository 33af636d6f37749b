package artifact

// Package artifact computes the on-disk paths one pipeline run can produce
// and tracks intermediate files so they can be removed once superseded, or
// swept after a failure.
