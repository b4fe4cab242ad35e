package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/user"
	"path/filepath"
	"strings"

	"github.com/apache/arrow/go/v18/arrow/memory"
	"github.com/carbocation/pfx"
	"github.com/carbocation/vartable"
)

func main() {
	cfg, err := vartable.ConfigFromEnv("")
	if err != nil {
		log.Fatalln(err)
	}

	configPath := flag.String("config", "", "Optional YAML file with reader settings. Flags override it.")
	path := flag.String("vcf", "", "Filename of the VCF to process (local or gs://)")
	info := flag.String("info", "", "Comma separated INFO keys to parse, or * for all")
	filter := flag.String("filter", "", "Comma separated FILTER keys to parse, or * for all")
	format := flag.String("format", "", "Comma separated FORMAT keys to parse, or * for all")
	regions := flag.String("regions", "", "Restrict to chr:start-end[,chr:start-end...]")
	workers := flag.Int("workers", cfg.Workers, "Number of parallel workers")
	chunkSize := flag.Int("chunksize", cfg.ChunkSize, "Number of records per worker chunk")
	isFP := flag.Bool("fp", false, "The VCF holds known false positive calls")
	tag := flag.String("tag", cfg.Tag, "Tag for this call set")
	arrowOut := flag.String("arrow", "", "Optional path of an Arrow IPC file to write")
	sqliteOut := flag.String("sqlite", "", "Optional path of a SQLite database to write")
	sqliteTable := flag.String("table", "variants", "Name of the SQLite table to write")
	verbose := flag.Bool("verbose", false, "Log per-worker progress")
	flag.Parse()

	if *configPath != "" {
		if err := vartable.LoadConfigFile(expandHome(*configPath), &cfg); err != nil {
			log.Fatalln(err)
		}
	}

	// Only flags that were given override the environment and config file
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "vcf":
			cfg.Path = expandHome(*path)
		case "info":
			cfg.InfoKeys = splitList(*info)
		case "filter":
			cfg.FilterKeys = splitList(*filter)
		case "format":
			cfg.FormatKeys = splitList(*format)
		case "regions":
			cfg.Regions = *regions
		case "workers":
			cfg.Workers = *workers
		case "chunksize":
			cfg.ChunkSize = *chunkSize
		case "fp":
			cfg.IsFalsePositive = *isFP
		case "tag":
			cfg.Tag = *tag
		case "verbose":
			cfg.Verbose = *verbose
		}
	})

	if cfg.Path == "" {
		flag.PrintDefaults()
		log.Fatalln("No VCF file found")
	}

	log.Println("Launching", cfg.Workers, "workers on", cfg.Path)
	r, err := vartable.Open(context.Background(), cfg)
	if err != nil {
		log.Fatalln(err)
	}
	table, err := r.Table()
	if err != nil {
		log.Fatalln(err)
	}
	log.Println("Decomposed", table.Len(), "variants into", len(table.Columns()), "columns")

	if *arrowOut != "" {
		if err := writeArrow(table, expandHome(*arrowOut)); err != nil {
			log.Fatalln(err)
		}
		log.Println("Wrote", *arrowOut)
	}

	if *sqliteOut != "" {
		if err := table.WriteSQLite(expandHome(*sqliteOut), *sqliteTable); err != nil {
			log.Fatalln(err)
		}
		log.Println("Wrote table", *sqliteTable, "to", *sqliteOut, "with the", vartable.WhichSQLiteDriver(), "driver")
	}
}

func writeArrow(table *vartable.Table, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return pfx.Err(err)
	}

	if err := table.WriteArrowIPC(f, memory.NewGoAllocator()); err != nil {
		f.Close()
		return pfx.Err(err)
	}

	if err := f.Close(); err != nil {
		return pfx.Err(err)
	}
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, v := range strings.Split(s, ",") {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func expandHome(path string) string {
	if !strings.HasPrefix(path, "~/") {
		return path
	}
	usr, err := user.Current()
	if err != nil {
		log.Fatalln(pfx.Err(err))
	}
	return filepath.Join(usr.HomeDir, path[2:])
}
