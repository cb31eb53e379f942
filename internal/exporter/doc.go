// Package exporter writes the pipeline's output files: cleaned CSV and
// Excel exports, and the JSON artifacts consumed by the web server.
package exporter
