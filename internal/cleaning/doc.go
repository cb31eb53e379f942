// Package cleaning implements the first pipeline stage: raw merchant
// platform exports are backed up, scrubbed of invalid and duplicate
// rows through per-kind rules, and written to the cleaned directory
// together with a JSON report of what was removed.
package cleaning
