// Package popgen holds the input plumbing shared by the Hardy-Weinberg tools:
// opening local or Google Storage paths and transparently decompressing them.
// The tests themselves live in hwe (biallelic) and hwemc (multi-allelic).
package popgen
