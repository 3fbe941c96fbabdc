// Package hwemc implements the Markov chain Monte Carlo exact test of
// Hardy-Weinberg proportions for markers with three or more alleles (Guo and
// Thompson, 1992). The chain walks over genotype tables that share the
// observed allele counts, and the p-value is the fraction of visited tables
// that are no more probable than the observed one, estimated in batches.
package hwemc
