// Package hwestore keeps Hardy-Weinberg test results in a SQLite database so
// that markers tested across runs can be compared.
package hwestore

import (
	"strings"

	"github.com/carbocation/pfx"
	"github.com/jmoiron/sqlx"
	"gopkg.in/guregu/null.v3"
)

// Methods recorded in Result.Method.
const (
	MethodMCMC             = "mcmc"
	MethodLikelihoodRatio  = "likelihood-ratio"
	MethodExactBiallelic   = "exact"
	MethodPearsonBiallelic = "pearson"
)

const schema = `
CREATE TABLE IF NOT EXISTS hwe_result (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	marker TEXT NOT NULL,
	population TEXT,
	method TEXT NOT NULL,
	n_alleles INTEGER NOT NULL,
	n_individuals INTEGER NOT NULL,
	p_value REAL NOT NULL,
	std_err REAL,
	statistic REAL,
	steps INTEGER,
	batches INTEGER,
	batch_size INTEGER,
	seed TEXT,
	created_at INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS hwe_result_marker ON hwe_result (marker);
`

// Result is one row of the hwe_result table. Columns that only some methods
// produce are nullable.
type Result struct {
	ID           int64       `db:"id"`
	Marker       string      `db:"marker"`
	Population   null.String `db:"population"`
	Method       string      `db:"method"`
	NAlleles     int         `db:"n_alleles"`
	NIndividuals int         `db:"n_individuals"`
	PValue       float64     `db:"p_value"`
	StdErr       null.Float  `db:"std_err"`
	Statistic    null.Float  `db:"statistic"`
	Steps        null.Int    `db:"steps"`
	Batches      null.Int    `db:"batches"`
	BatchSize    null.Int    `db:"batch_size"`
	Seed         null.String `db:"seed"`
	CreatedAt    Time        `db:"created_at"`
}

type Store struct {
	DB *sqlx.DB
}

// Open opens, creating if needed, the results database at path.
func Open(path string) (*Store, error) {
	// URI filenames have to begin with 'file:'; see
	// https://www.sqlite.org/c3ref/open.html
	if !strings.HasPrefix(path, "file:") {
		path = "file:" + path
	}

	db, err := sqlx.Connect(whichSQLiteDriver, path)
	if err != nil {
		return nil, pfx.Err(err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, pfx.Err(err)
	}

	return &Store{DB: db}, nil
}

func (s *Store) Close() error {
	return s.DB.Close()
}

// Save inserts r and returns its row ID. A zero CreatedAt is set to now.
func (s *Store) Save(r Result) (int64, error) {
	if r.CreatedAt.IsZero() {
		r.CreatedAt = Now()
	}

	res, err := s.DB.NamedExec(`INSERT INTO hwe_result
	(marker, population, method, n_alleles, n_individuals, p_value, std_err, statistic, steps, batches, batch_size, seed, created_at)
	VALUES
	(:marker, :population, :method, :n_alleles, :n_individuals, :p_value, :std_err, :statistic, :steps, :batches, :batch_size, :seed, :created_at)`, r)
	if err != nil {
		return 0, pfx.Err(err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, pfx.Err(err)
	}

	return id, nil
}

// ByMarker returns every result saved for marker, oldest first.
func (s *Store) ByMarker(marker string) ([]Result, error) {
	out := make([]Result, 0)
	if err := s.DB.Select(&out, "SELECT * FROM hwe_result WHERE marker=? ORDER BY id ASC", marker); err != nil {
		return nil, pfx.Err(err)
	}

	return out, nil
}
