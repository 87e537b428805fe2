// bedinspect prints the resolved storage mode and dimensions of a PLINK
// BED fileset, and optionally tallies the genotype calls of the leading
// SNP rows.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"strings"

	"cloud.google.com/go/storage"

	plinkbed "github.com/Computational-Genomics-BSC/plink-bed-reader"
)

var client *storage.Client

func main() {
	var bedPath, modeFlag string
	var rows, cacheSize int

	flag.StringVar(&bedPath, "bed", "", "Path to the .bed file (the .fam and .bim sidecars are expected alongside). May be a gs:// path.")
	flag.StringVar(&modeFlag, "mode", "", "(Optional) Expected major mode, 'snp' or 'individual'. Opening fails if the file disagrees.")
	flag.IntVar(&rows, "rows", 0, "Number of leading SNP rows to decode and tally.")
	flag.IntVar(&cacheSize, "cache", 0, "Decoded rows to keep in an LRU cache (useful for individual-major files).")
	flag.Parse()

	if bedPath == "" {
		flag.PrintDefaults()
		log.Fatalln("Please specify --bed")
	}

	opts := plinkbed.OpenOptions{RowCacheSize: cacheSize}

	switch modeFlag {
	case "":
	case "snp":
		opts.Mode = plinkbed.SNPMajor
	case "individual":
		opts.Mode = plinkbed.IndividualMajor
	default:
		log.Fatalln("--mode must be 'snp' or 'individual', got", modeFlag)
	}

	if strings.HasPrefix(bedPath, "gs://") {
		var err error
		client, err = storage.NewClient(context.Background())
		if err != nil {
			log.Fatalln(err)
		}
		opts.Client = client
	}

	r, err := plinkbed.OpenWithOptions(bedPath, opts)
	if err != nil {
		log.Fatalln(err)
	}
	defer r.Close()

	log.Printf("%s: %v, %d SNPs x %d samples\n", bedPath, r.MajorMode(), r.SNPCount(), r.SampleCount())

	if rows > r.SNPCount() {
		rows = r.SNPCount()
	}
	for i := 0; i < rows; i++ {
		row, err := r.Row(i)
		if err != nil {
			log.Fatalln(err)
		}

		var tally [4]int
		for _, g := range row {
			tally[g]++
		}
		fmt.Printf("snp %d: %s=%d %s=%d %s=%d %s=%d\n", i,
			plinkbed.HomozygousA1, tally[plinkbed.HomozygousA1],
			plinkbed.Heterozygous, tally[plinkbed.Heterozygous],
			plinkbed.HomozygousA2, tally[plinkbed.HomozygousA2],
			plinkbed.Missing, tally[plinkbed.Missing])
	}
}
