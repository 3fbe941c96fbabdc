package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"github.com/carbocation/pfx"
	"github.com/carbocation/popgen"
	_ "github.com/carbocation/popgen/compileinfoprint"
	"github.com/carbocation/popgen/freqfile"
	"github.com/carbocation/popgen/hwe"
	"github.com/carbocation/popgen/hwemc"
	"github.com/carbocation/popgen/hwestore"
	"gopkg.in/guregu/null.v3"
)

type config struct {
	AlleleFile, GenotypeFile, Marker string
	Filter                           freqfile.Filter

	OutPath, DBPath, InputPath string
	Seed                       uint64
	Chains, Bins               int
	Params                     hwemc.Parameters
}

// Tests one marker for Hardy-Weinberg equilibrium from allele and genotype
// count files. Markers with up to two observed alleles get the likelihood
// ratio chi square test and the exact biallelic test; others get the
// randomization test.
func main() {
	cfg := config{}
	flag.BoolVar(&cfg.Filter.AffectedOnly, "a", false, "Include affecteds only.")
	flag.BoolVar(&cfg.Filter.UnaffectedOnly, "u", false, "Include unaffecteds only.")
	flag.StringVar(&cfg.Filter.Population, "p", "", "Include this population only. If blank, counts pooled over populations are used.")
	flag.StringVar(&cfg.OutPath, "o", "", "Output file. If blank, results are written to stdout.")
	flag.StringVar(&cfg.DBPath, "db", "", "(Optional) SQLite database to which results are appended.")
	flag.Uint64Var(&cfg.Seed, "seed", 0, "Random seed for the randomization test. If 0, a seed is drawn from system entropy and logged.")
	flag.IntVar(&cfg.Chains, "chains", 1, "Number of independent chains for the randomization test.")
	flag.IntVar(&cfg.Bins, "hist", 0, "(Optional) If positive, append the quartiles and a histogram with this many bins of the batch p-values.")
	flag.StringVar(&cfg.InputPath, "write-input", "", "(Optional) Also write the genotype table and parameters in the format read by the hwe tool.")
	flag.IntVar(&cfg.Params.Steps, "steps", 2000, "Number of dememorization steps.")
	flag.IntVar(&cfg.Params.Batches, "batches", 1000, "Number of batches.")
	flag.IntVar(&cfg.Params.BatchSize, "size", 10000, "Size of each batch.")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [options] allfrq genfrq marker\n\n", os.Args[0])
		fmt.Fprintf(flag.CommandLine.Output(), "   allfrq       allele frequencies input file\n")
		fmt.Fprintf(flag.CommandLine.Output(), "   genfrq       genotype frequencies input file\n")
		fmt.Fprintf(flag.CommandLine.Output(), "   marker       marker to be tested\n\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 3 || cfg.Chains < 1 {
		flag.Usage()
		os.Exit(1)
	}
	cfg.AlleleFile, cfg.GenotypeFile, cfg.Marker = flag.Arg(0), flag.Arg(1), flag.Arg(2)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		log.Fatalln(err)
	}
}

func run(ctx context.Context, cfg config) error {
	var client *storage.Client
	if strings.HasPrefix(cfg.AlleleFile, "gs://") || strings.HasPrefix(cfg.GenotypeFile, "gs://") {
		var err error
		client, err = storage.NewClient(ctx)
		if err != nil {
			return pfx.Err(err)
		}
		defer client.Close()
	}

	set, err := readCounts(ctx, client, cfg)
	if err != nil {
		return err
	}

	m := set.Get(cfg.Marker)
	if m == nil {
		return fmt.Errorf("marker %s not found in allele frequency file", cfg.Marker)
	}
	if len(m.Observed()) == 0 {
		return fmt.Errorf("no marker data available for specified population and affection status")
	}

	var out io.Writer = os.Stdout
	if cfg.OutPath != "" {
		f, err := os.Create(cfg.OutPath)
		if err != nil {
			return pfx.Err(err)
		}
		defer f.Close()
		out = f
	}

	var results []hwestore.Result
	if len(m.Observed()) <= 2 {
		results, err = testBiallelic(out, m)
	} else {
		results, err = testMultiallelic(ctx, out, m, cfg)
	}
	if err != nil {
		return err
	}

	if cfg.DBPath == "" {
		return nil
	}

	store, err := hwestore.Open(cfg.DBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	for _, r := range results {
		if cfg.Filter.Population != "" {
			r.Population = null.StringFrom(cfg.Filter.Population)
		}
		if _, err := store.Save(r); err != nil {
			return err
		}
	}
	log.Printf("Saved %d result(s) for %s in %s\n", len(results), m.Name, cfg.DBPath)

	return nil
}

func readCounts(ctx context.Context, client *storage.Client, cfg config) (*freqfile.MarkerSet, error) {
	af, err := popgen.OpenInput(ctx, cfg.AlleleFile, client)
	if err != nil {
		return nil, err
	}
	defer af.Close()

	set, err := freqfile.ReadAlleleCounts(af, cfg.Filter)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", cfg.AlleleFile, err)
	}

	gf, err := popgen.OpenInput(ctx, cfg.GenotypeFile, client)
	if err != nil {
		return nil, err
	}
	defer gf.Close()

	if err := freqfile.ReadGenotypeCounts(gf, set, cfg.Filter); err != nil {
		return nil, fmt.Errorf("%s: %w", cfg.GenotypeFile, err)
	}

	return set, nil
}

func testBiallelic(out io.Writer, m *freqfile.Marker) ([]hwestore.Result, error) {
	AA, Aa, aa, err := m.Biallelic()
	if err != nil {
		return nil, err
	}
	N := AA + Aa + aa

	chi, p := hwe.LikelihoodRatio(float64(AA), float64(Aa), float64(aa))
	if chi <= 0 {
		fmt.Fprintf(out, "%s: chi = 0  p = 1\n", m.Name)
	} else {
		fmt.Fprintf(out, "%s: chi = %g  p = %g\n", m.Name, chi, p)
	}

	exactP := hwe.Exact(int64(AA), int64(Aa), int64(aa))
	if _, err := fmt.Fprintf(out, "%s: exact p = %g\n", m.Name, exactP); err != nil {
		return nil, pfx.Err(err)
	}

	return []hwestore.Result{
		{
			Marker:       m.Name,
			Method:       hwestore.MethodLikelihoodRatio,
			NAlleles:     len(m.Observed()),
			NIndividuals: N,
			PValue:       p,
			Statistic:    null.FloatFrom(chi),
		},
		{
			Marker:       m.Name,
			Method:       hwestore.MethodExactBiallelic,
			NAlleles:     len(m.Observed()),
			NIndividuals: N,
			PValue:       exactP,
		},
	}, nil
}

func testMultiallelic(ctx context.Context, out io.Writer, m *freqfile.Marker, cfg config) ([]hwestore.Result, error) {
	table, err := m.Table()
	if err != nil {
		return nil, err
	}
	if err := cfg.Params.Validate(); err != nil {
		return nil, err
	}

	if cfg.InputPath != "" {
		if err := writeInput(cfg.InputPath, table, cfg.Params); err != nil {
			return nil, err
		}
	}

	fmt.Fprintf(out, "Marker: %s\n\n", m.Name)
	if err := hwemc.WriteTableReport(out, table, cfg.Params); err != nil {
		return nil, pfx.Err(err)
	}

	sources, seeds, err := hwemc.Sources(cfg.Seed, cfg.Chains)
	if err != nil {
		return nil, err
	}
	log.Printf("Running %d chain(s) of %d steps on %s from seed %d\n", cfg.Chains, cfg.Params.Iterations(), m.Name, seeds[0])

	started := time.Now()
	outcome, _, err := hwemc.RunReplicates(ctx, table, cfg.Params, sources)
	if err != nil {
		return nil, err
	}

	if err := hwemc.WriteOutcomeReport(out, outcome); err != nil {
		return nil, pfx.Err(err)
	}
	if cfg.Bins > 0 {
		if err := hwemc.WriteBatchHistogram(out, outcome, cfg.Bins); err != nil {
			return nil, pfx.Err(err)
		}
	}
	if err := hwemc.WriteTimeStamp(out, time.Since(started), time.Now()); err != nil {
		return nil, pfx.Err(err)
	}

	return []hwestore.Result{hwestore.FromOutcome(m.Name, table, cfg.Params, outcome, seeds[0])}, nil
}

func writeInput(path string, table *hwemc.Table, params hwemc.Parameters) error {
	f, err := os.Create(path)
	if err != nil {
		return pfx.Err(err)
	}

	if err := hwemc.WriteInput(f, table, params); err != nil {
		f.Close()
		return pfx.Err(err)
	}

	return f.Close()
}
