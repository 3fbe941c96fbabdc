package freqfile

// Map columns shared by allele and genotype count files to their positions.
// An allele count row continues with the allele and its count; a genotype
// count row with both alleles and the count. Any trailing frequency column is
// ignored.
const (
	MarkerName int = iota
	Status
	Population
	FirstAllele
)

// The hyphen in the status or population column marks counts pooled over all
// statuses or all populations.
const pooled = "-"
