// Package dataprocessing implements the refinement core of the merchant
// data pipeline: tolerant scalar extraction from free-form report text,
// one grammar per known sales report layout behind an ordered dispatch
// registry, merchant record construction, the cross-entity aggregation
// fold, and the deterministic sales forecast.
//
// Processing is a one-shot sequential batch: each file is parsed and
// folded into the in-memory record set before the next begins. The
// reference time for every activity cutoff is an explicit input, never
// sampled inside the aggregation itself.
package dataprocessing
