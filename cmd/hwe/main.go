package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"github.com/carbocation/pfx"
	"github.com/carbocation/popgen"
	_ "github.com/carbocation/popgen/compileinfoprint"
	"github.com/carbocation/popgen/hwemc"
	"github.com/carbocation/popgen/hwestore"
)

// Performs the randomization test of Hardy-Weinberg proportions on the
// genotype table in an input file.
func main() {
	var inPath, outPath, dbPath, marker string
	var seed uint64
	var chains, bins int
	flag.StringVar(&inPath, "in", "", "Input file: number of alleles, the lower triangle of genotype counts, then burn-in steps, number of batches and batch size. May be compressed, or a gs:// path.")
	flag.StringVar(&outPath, "out", "", "Report file. If blank, the report is written to stdout.")
	flag.Uint64Var(&seed, "seed", 0, "Random seed. If 0, a seed is drawn from system entropy and logged.")
	flag.IntVar(&chains, "chains", 1, "Number of independent chains to run concurrently. Their batches are pooled.")
	flag.IntVar(&bins, "hist", 0, "(Optional) If positive, append the quartiles and a histogram with this many bins of the batch p-values to the report.")
	flag.StringVar(&dbPath, "db", "", "(Optional) SQLite database to which the result is appended.")
	flag.StringVar(&marker, "marker", "", "Marker name recorded in -db. Defaults to the input file name.")
	flag.Parse()

	if inPath == "" || chains < 1 {
		flag.PrintDefaults()
		log.Fatalln()
	}

	if marker == "" {
		marker = filepath.Base(inPath)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, inPath, outPath, dbPath, marker, seed, chains, bins); err != nil {
		log.Fatalln(err)
	}
}

func run(ctx context.Context, inPath, outPath, dbPath, marker string, seed uint64, chains, bins int) error {
	var client *storage.Client
	if strings.HasPrefix(inPath, "gs://") {
		var err error
		client, err = storage.NewClient(ctx)
		if err != nil {
			return pfx.Err(err)
		}
		defer client.Close()
	}

	in, err := popgen.OpenInput(ctx, inPath, client)
	if err != nil {
		return err
	}
	table, params, err := hwemc.ReadInput(in)
	in.Close()
	if err != nil {
		return fmt.Errorf("%s: %w", inPath, err)
	}

	var out io.Writer = os.Stdout
	if outPath != "" {
		f, err := os.Create(outPath)
		if err != nil {
			return pfx.Err(err)
		}
		defer f.Close()
		out = f
	}

	if err := hwemc.WriteTableReport(out, table, params); err != nil {
		return pfx.Err(err)
	}

	sources, seeds, err := hwemc.Sources(seed, chains)
	if err != nil {
		return err
	}
	log.Printf("Running %d chain(s) of %d steps from seed %d\n", chains, params.Iterations(), seeds[0])

	started := time.Now()
	outcome, _, err := hwemc.RunReplicates(ctx, table, params, sources)
	if err != nil {
		return err
	}

	if err := hwemc.WriteOutcomeReport(out, outcome); err != nil {
		return pfx.Err(err)
	}
	if bins > 0 {
		if err := hwemc.WriteBatchHistogram(out, outcome, bins); err != nil {
			return pfx.Err(err)
		}
	}
	if err := hwemc.WriteTimeStamp(out, time.Since(started), time.Now()); err != nil {
		return pfx.Err(err)
	}

	if dbPath != "" {
		store, err := hwestore.Open(dbPath)
		if err != nil {
			return err
		}
		defer store.Close()

		id, err := store.Save(hwestore.FromOutcome(marker, table, params, outcome, seeds[0]))
		if err != nil {
			return err
		}
		log.Printf("Saved %s as result %d in %s\n", marker, id, dbPath)
	}

	return nil
}
