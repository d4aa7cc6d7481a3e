package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/korjavin/fitnourish/internal/dataset"
	"github.com/korjavin/fitnourish/internal/logging"
	"github.com/korjavin/fitnourish/internal/nutrition"
	"github.com/korjavin/fitnourish/internal/present"
)

func main() {
	data := flag.String("data", os.Getenv("DATA_FILE"), "path to the nutrition CSV (default $DATA_FILE)")
	food := flag.String("food", "", "food name to look up")
	goal := flag.String("goal", "None", "fitness goal: None, High-Protein, Low-Fat, Bulking or Cutting")
	chartOut := flag.String("chart", "", "write the macro chart as SVG to this path")
	list := flag.Bool("list", false, "list every food name and exit")
	search := flag.String("search", "", "fuzzy-search food names and exit")
	verbose := flag.Bool("v", false, "log dataset statistics")
	flag.Parse()

	if *data == "" || (*food == "" && !*list && *search == "") {
		fmt.Fprintln(os.Stderr, "usage: fitnourish -data <file.csv> (-food <name> [-goal <goal>] [-chart <out.svg>] | -list | -search <query>) [-v]")
		os.Exit(1)
	}

	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelDebug
	}
	logger, _ := logging.New(os.Stderr, logging.Options{Level: level})
	slog.SetDefault(logger)

	g, err := nutrition.ParseGoal(*goal)
	if err != nil {
		slog.Error("invalid goal", "error", err)
		os.Exit(1)
	}

	ds, err := dataset.LoadFile(*data)
	if err != nil {
		slog.Error("failed to load dataset", "error", err)
		os.Exit(1)
	}
	m := ds.Manifest()
	slog.Info("dataset loaded",
		"records", m.RecordCount,
		"names", m.NameCount,
		"duplicates", m.DuplicateCount,
		"missing_cells", m.MissingCells,
	)

	switch {
	case *list:
		for _, n := range ds.Names() {
			fmt.Println(n)
		}
		return
	case *search != "":
		idx, err := dataset.NewSearchIndex(ds)
		if err != nil {
			slog.Error("failed to build search index", "error", err)
			os.Exit(1)
		}
		defer idx.Close()
		names, err := idx.Search(*search, dataset.DefaultSearchLimit)
		if err != nil {
			slog.Error("search failed", "error", err)
			os.Exit(1)
		}
		for _, n := range names {
			fmt.Println(n)
		}
		return
	}

	res := present.New(ds, nil).Present(*food, g)
	fmt.Println(res.Text)
	if res.Kind != present.KindOK {
		os.Exit(1)
	}

	if *chartOut != "" {
		if err := writeChart(*chartOut, res); err != nil {
			slog.Error("failed to write chart", "path", *chartOut, "error", err)
			os.Exit(1)
		}
		fmt.Printf("Chart: %s\n", *chartOut)
	}
}

func writeChart(path string, res present.Result) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := res.Chart.WriteSVG(f); err != nil {
		f.Close()
		return fmt.Errorf("render svg: %w", err)
	}
	return f.Close()
}
