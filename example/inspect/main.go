package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os/user"
	"path/filepath"
	"strings"

	"github.com/carbocation/pfx"
	"github.com/carbocation/vartable"
)

func main() {
	path := flag.String("vcf", "", "Filename of the VCF to process")
	n := flag.Int("n", 10, "Number of variants to print")
	flag.Parse()

	if *path == "" {
		flag.PrintDefaults()
		log.Fatalln("No VCF file found")
	}

	if strings.HasPrefix(*path, "~/") {
		usr, err := user.Current()
		if err != nil {
			log.Fatalln(pfx.Err(err))
		}
		*path = filepath.Join(usr.HomeDir, (*path)[2:])
	}

	ctx := context.Background()

	log.Println("Opening VCF:", *path)
	vcf, err := vartable.OpenVCF(ctx, *path)
	if err != nil {
		log.Fatalln(err)
	}
	h := vcf.Header()
	vcf.Close()

	for _, c := range []vartable.Category{vartable.CategoryInfo, vartable.CategoryFilter, vartable.CategoryFormat} {
		for _, f := range h.Fields(c) {
			fmt.Printf("%s\t%s\tNumber=%s\tType=%s\t%s\n", c, f.ID, f.Number, f.Type, f.Description)
		}
	}

	for i, sample := range h.SampleNames {
		if i > 10 {
			break
		}
		fmt.Println(i, sample)
	}
	log.Println("Saw", len(h.SampleNames), "samples")

	cfg := vartable.DefaultConfig()
	cfg.Path = *path
	cfg.InfoKeys = []string{vartable.Wildcard}
	cfg.FilterKeys = []string{vartable.Wildcard}

	r, err := vartable.Open(ctx, cfg)
	if err != nil {
		log.Fatalln(err)
	}

	schema := r.Schema()
	fields := append(append([]vartable.FieldSchema(nil), schema.Info...), schema.Format...)
	for _, f := range fields {
		log.Printf("%s %s: Number=%s Type=%s resolves to %d value(s)\n", f.Category, f.Name, f.Number, f.ValueType, f.Count)
	}

	for i := 0; i < r.Len() && i < *n; i++ {
		v, err := r.Variant(i)
		if err != nil {
			log.Fatalln(err)
		}
		log.Printf("Variant %d) %s:%d %s>%s %s zygosity=%v filter=%v\n", i, v.Chrom, v.Pos+1, v.Ref, v.Allele, v.Type, v.Zygosity, v.Filter)
	}

	log.Println("Decomposed", r.Len(), "variants")
}
