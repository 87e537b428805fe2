package main

import (
	"flag"
	"log"

	plinkbed "github.com/Computational-Genomics-BSC/plink-bed-reader"
)

func main() {
	path := flag.String("path", "", "Path to a .bed file")
	flag.Parse()

	if *path == "" {
		flag.PrintDefaults()
		log.Fatalln("No path provided")
	}

	r, err := plinkbed.Open(*path)
	if err != nil {
		log.Fatalln(err)
	}
	defer r.Close()

	log.Println(r.MajorMode(), r.SNPCount(), "SNPs", r.SampleCount(), "samples")

	missing := 0
	for i := 0; i < r.SNPCount(); i++ {
		row, err := r.Row(i)
		if err != nil {
			log.Fatalln(err)
		}
		for _, g := range row {
			if g == plinkbed.Missing {
				missing++
			}
		}
	}

	log.Println(missing, "missing calls")
}
