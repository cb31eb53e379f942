// Package config provides centralized configuration management for the
// merchant data pipeline. Configuration is loaded from environment
// variables (MPULSE_* prefix, highest priority), an optional config.yaml,
// and defaults.
//
// The Paths section describes the directory layout shared by all three
// binaries: the cleaner reads Paths.DataDir and writes Paths.CleanedDir
// and Paths.BackupDir; the refiner reads the cleaned directory and writes
// its artifacts into Paths.ReportsDir; the web server serves whatever the
// other two produced.
package config
