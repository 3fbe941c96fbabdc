package main

import (
	"context"
	"encoding/csv"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/carbocation/bgen"
	"github.com/carbocation/popgen"
	_ "github.com/carbocation/popgen/compileinfoprint"
	"github.com/carbocation/popgen/hwe"
	"github.com/carbocation/popgen/hwemc"
	_ "github.com/mattn/go-sqlite3"
)

const (
	// Columns in the SNP file
	SNP = iota
	CHR
)

type tester struct {
	ctx         context.Context
	subset      bool
	shouldCount []bool
	exactBelow  float64
	params      hwemc.Parameters
	chains      int
	seed        uint64
	nVariants   uint64
}

// Compute HWE P values for all SNPs. Biallelic sites get the exact test;
// sites with three or more observed alleles get the randomization test.
func main() {
	bgenPath, snpfile, bgiPath, sampleFile, sampleIDFile := "", "", "", "", ""
	t := &tester{}
	flag.StringVar(&bgenPath, "bgen", "", "Path to the BGEN file (if iterating over the full BGEN) or a template with %s in place of its chromosome number.")
	flag.StringVar(&bgiPath, "bgi", "", "Path to the BGEN index. If blank, will assume it's the BGEN path suffixed with .bgi")
	flag.StringVar(&snpfile, "snps", "", "SNP file containing rsid and chromosome (in that order); the delimiter is detected. If blank, and a proper BGEN is passed, then the full BGEN will be parsed.")
	flag.StringVar(&sampleFile, "sample", "", "File that maps samples to the blank rows in the BGEN. Must be in the Oxford .sample file format.")
	flag.StringVar(&sampleIDFile, "sample_ids", "", "File that has one sample ID per row. (A subset of the IDs in the sample file.) Must have a header row (or will skip your first entry).")
	flag.Float64Var(&t.exactBelow, "exact_below", 1.0, "Biallelic sites: compute the exact P value only when the chi square P value is below this. 1 computes it for every site.")
	flag.IntVar(&t.params.Steps, "steps", 1000, "Multi-allelic sites: number of dememorization steps.")
	flag.IntVar(&t.params.Batches, "batches", 100, "Multi-allelic sites: number of batches.")
	flag.IntVar(&t.params.BatchSize, "size", 1000, "Multi-allelic sites: size of each batch.")
	flag.IntVar(&t.chains, "chains", 1, "Multi-allelic sites: number of independent chains per site.")
	flag.Uint64Var(&t.seed, "seed", 0, "Random seed. If 0, a seed is drawn from system entropy and logged.")
	flag.Parse()

	if bgiPath == "" {
		bgiPath = bgenPath + ".bgi"
	}

	if bgenPath == "" || t.chains < 1 {
		flag.PrintDefaults()
		log.Fatalln()
	}

	if err := t.params.Validate(); err != nil {
		log.Fatalln(err)
	}

	if t.seed == 0 {
		var err error
		if t.seed, err = hwemc.EntropySeed(); err != nil {
			log.Fatalln(err)
		}
	}
	log.Printf("Random seed: %d\n", t.seed)

	t.ctx = context.Background()

	var err error
	if sampleFile != "" && sampleIDFile != "" {
		t.shouldCount, t.subset, err = SampleLookup(sampleFile, sampleIDFile)
		if err != nil {
			log.Fatalln(err)
		}
	}

	fmt.Printf("SNP\tCHR\tBP\tALLELES\tN\tMAF\tMETHOD\tHWE_P\tHWE_P_SE\n")

	if snpfile != "" {
		if !strings.Contains(bgenPath, "%s") {
			log.Println("Iterating over a list of SNPs, but passed a full bgen path instead of a BGEN template path with %s in place of the chromosome identifier")
			flag.PrintDefaults()
			os.Exit(1)
		}

		allSites, err := readSNPs(snpfile)
		if err != nil {
			log.Fatalln(err)
		}

		for _, row := range allSites {
			func(row []string) {
				rsID := row[SNP]
				bgPath := fmt.Sprintf(bgenPath, row[CHR])
				bgiPath := bgPath + ".bgi"

				bg, err := bgen.Open(bgPath)
				if err != nil {
					log.Fatalln(err)
				}
				defer bg.Close()

				bgi, err := bgen.OpenBGI(bgiPath)
				if err != nil {
					log.Fatalln(err)
				}
				defer bgi.Close()
				bgi.Metadata.FirstThousandBytes = nil

				rdr := bg.NewVariantReader()

				idx, err := FindOneVariant(bgi, rsID)
				if err != nil {
					log.Fatalln(err)
				}

				variant := rdr.ReadAt(int64(idx.FileStartPosition))
				if err := rdr.Error(); err != nil {
					log.Fatalln(err)
				}

				if err := t.handleVariant(variant); err != nil {
					log.Fatalln(err)
				}
			}(row)
		}

		return
	}

	// Else just iterating over a full bgen

	bg, err := bgen.Open(bgenPath)
	if err != nil {
		log.Fatalln(err)
	}
	defer bg.Close()

	bgi, err := bgen.OpenBGI(bgiPath)
	if err != nil {
		log.Fatalln(err)
	}
	defer bgi.Close()
	bgi.Metadata.FirstThousandBytes = nil
	log.Printf("%+v\n", *bgi.Metadata)

	rdr := bg.NewVariantReader()

	for {
		variant := rdr.Read()
		if err := rdr.Error(); err != nil {
			log.Fatalln(err)
		} else if variant == nil {
			break
		}

		if err := t.handleVariant(variant); err != nil {
			log.Fatalln(err)
		}
	}
}

func readSNPs(snpfile string) ([][]string, error) {
	snps, err := os.Open(snpfile)
	if err != nil {
		return nil, err
	}
	defer snps.Close()

	delim, rdr := popgen.DetermineDelimiter(snps)

	r := csv.NewReader(rdr)
	r.Comma = delim

	return r.ReadAll()
}

func SampleLookup(sampleFile, sampleIDFile string) ([]bool, bool, error) {
	subset := false
	if sampleFile == "" || sampleIDFile == "" {
		return nil, subset, nil
	}

	subset = true

	sampleKeyF, err := os.Open(sampleFile)
	if err != nil {
		return nil, subset, err
	}
	defer sampleKeyF.Close()

	sampleKeyCSV := csv.NewReader(sampleKeyF)
	sampleKeyCSV.Comma = ' '

	recs, err := sampleKeyCSV.ReadAll()
	if err != nil {
		return nil, subset, err
	}
	truthMap := make([]bool, 0, len(recs))
	lookups := make(map[string]int)
	for i, line := range recs {
		// The first two rows of a .sample file are headers
		if i <= 1 {
			continue
		}

		truthMap = append(truthMap, false)
		lookups[line[0]] = i - 2
	}

	// Set the values to true if we want that sample
	subsetKeyF, err := os.Open(sampleIDFile)
	if err != nil {
		return nil, subset, err
	}
	defer subsetKeyF.Close()

	subsetKeyCSV := csv.NewReader(subsetKeyF)
	subsetRecs, err := subsetKeyCSV.ReadAll()
	if err != nil {
		return nil, subset, err
	}
	for _, sample := range subsetRecs {
		if i, ok := lookups[sample[0]]; ok {
			truthMap[i] = true
		}
	}

	return truthMap, subset, nil
}

func (t *tester) handleVariant(variant *bgen.Variant) error {
	// Each variant gets its own seeds so that results do not depend on which
	// variants precede it in the file.
	seed := t.seed + t.nVariants*uint64(t.chains)
	t.nVariants++

	nAlleles := len(variant.Alleles)
	alleles := make([]string, 0, nAlleles)
	for _, a := range variant.Alleles {
		alleles = append(alleles, string(a))
	}

	expected := ExpectedGenotypeCounts(variant.SampleProbabilities, nAlleles, t.subset, t.shouldCount)
	cells := RoundCounts(expected)
	observed := ObservedAlleles(cells, nAlleles)
	kept := Restrict(cells, observed)

	N := 0
	for _, n := range kept {
		N += n
	}

	method, p, se := "", 1.0, 0.0
	switch {
	case len(observed) < 2:
		method = "monomorphic"
	case len(observed) == 2:
		method = "exact"
		p = hwe.Fast(float64(kept[0]), float64(kept[1]), float64(kept[2]), t.exactBelow)
	default:
		method = "mcmc"
		table, err := hwemc.NewTable(len(observed), kept)
		if err != nil {
			return fmt.Errorf("%s: %w", variant.RSID, err)
		}

		sources, _, err := hwemc.Sources(seed, t.chains)
		if err != nil {
			return err
		}

		outcome, _, err := hwemc.RunReplicates(t.ctx, table, t.params, sources)
		if err != nil {
			return fmt.Errorf("%s: %w", variant.RSID, err)
		}
		p, se = outcome.PValue, outcome.StdErr
	}

	fmt.Printf("%s\t%s\t%d\t%s\t%d\t%.3e\t%s\t%.3e\t%.3e\n", variant.RSID, variant.Chromosome, variant.Position, strings.Join(alleles, ","), N, MinorAlleleFrequency(expected, nAlleles), method, p, se)

	return nil
}

func FindOneVariant(bgi *bgen.BGIIndex, rsID string) (bgen.VariantIndex, error) {
	row := bgen.VariantIndex{}
	if err := bgi.DB.Get(&row, "SELECT * FROM Variant WHERE rsid=? LIMIT 1", rsID); err != nil { // ORDER BY file_start_position ASC
		return row, err
	}

	return row, nil
}
