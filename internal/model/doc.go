package model

// Package model defines domain data structures used across the app: download
// jobs, pipeline tasks, and status/outcome enums. Structures are designed for
// direct binding in the UI and explicit state transitions.
