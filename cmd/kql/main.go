// Command kql is the CLI wrapper described by the module's external
// interfaces: it registers one stub table per --file flag, then parses and
// translates a single positional query string and prints the resulting
// logical plan. Execution against the registered files is out of scope —
// this module only emits the plan a downstream engine would run.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/ritamzico/kql"
	"github.com/ritamzico/kql/internal/catalog"
	"github.com/ritamzico/kql/internal/plan"
)

var files []string

var rootCmd = &cobra.Command{
	Use:   "kql <query>",
	Short: "Compile a KQL-style pipeline query into a relational logical plan",
	Long: `kql parses a Kusto-style pipeline query and translates it into a
relational logical plan against a catalog built from the registered files.
It does not execute the plan; execution is a downstream engine's job.`,
	Args: cobra.ExactArgs(1),
	RunE: run,
}

func init() {
	rootCmd.Flags().StringArrayVarP(&files, "file", "f", nil, "register a table named after the file's stem (repeatable)")
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
}

func run(cmd *cobra.Command, args []string) error {
	query := args[0]

	cat := catalog.NewMapCatalog()
	for _, f := range files {
		table, err := registerFile(cat, f)
		if err != nil {
			return errors.Wrapf(err, "registering file %q", f)
		}
		log.Debug().Str("table", table).Str("file", f).Msg("registered table")
	}

	p, err := kql.Translate(query, cat)
	if err != nil {
		return errors.Wrap(err, "translating query")
	}

	fmt.Println(plan.Format(p))
	return nil
}

// registerFile registers a stub table named after path's stem (without
// extension). The out-of-scope CLI this mirrors reads CSV/JSON/Parquet/
// Avro/Arrow to infer a real schema; this module only needs a resolvable
// name, so the stub table carries no columns until a real catalog replaces
// it downstream.
func registerFile(cat *catalog.MapCatalog, path string) (string, error) {
	if path == "" {
		return "", errors.New("empty file path")
	}
	base := filepath.Base(path)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	if stem == "" {
		return "", errors.Errorf("cannot derive a table name from %q", path)
	}
	cat.AddTable(catalog.InMemoryTable{NameField: stem})
	return stem, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Error().Err(err).Msg("kql failed")
		os.Exit(1)
	}
}
