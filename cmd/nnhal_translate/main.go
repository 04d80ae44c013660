// nnhal_translate translates models in binary format to StableHLO programs.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/gomlx/nnhal/model"
	"github.com/gomlx/nnhal/stablehlo"
	"github.com/gomlx/nnhal/translator"
	"github.com/janpfeifer/must"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
	"k8s.io/klog/v2"
)

var (
	flagModels      = flag.String("model", "", "Comma-separated list of files with models in binary format. Positional arguments are also taken as model files.")
	flagOutput      = flag.String("output", "", "Directory where to write one <model>.mlir file per model. If empty, programs are printed to stdout.")
	flagName        = flag.String("name", "", "Name of the computations. Defaults to the base name of each model file.")
	flagParallelism = flag.Int("parallelism", runtime.NumCPU(), "Maximum number of models translated concurrently.")
	flagListOps     = flag.Bool("list_ops", false, "List the supported operations and exit.")
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, `nnhal_translate loads models in binary format and translates them to StableHLO.

$ nnhal_translate -model=<model_file>[,<model_file>...] [-output=<dir>]

Usage:
`)
		flag.PrintDefaults()
	}
	klog.InitFlags(flag.CommandLine)
	flag.Parse()

	if *flagListOps {
		for _, opType := range translator.SupportedOperations() {
			fmt.Println(opType)
		}
		return
	}

	var files []string
	for _, file := range strings.Split(*flagModels, ",") {
		if file = strings.TrimSpace(file); file != "" {
			files = append(files, file)
		}
	}
	files = append(files, flag.Args()...)
	if len(files) == 0 {
		fmt.Fprintln(os.Stderr, "No model given, use the -model flag!")
		fmt.Fprintln(os.Stderr)
		flag.Usage()
		os.Exit(1)
	}
	if *flagOutput != "" {
		must.M(os.MkdirAll(*flagOutput, 0755))
	}

	computations := make([]*stablehlo.Computation, len(files))
	g, ctx := errgroup.WithContext(context.Background())
	g.SetLimit(max(*flagParallelism, 1))
	for i, file := range files {
		g.Go(func() error {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			computation, err := translateFile(file)
			if err != nil {
				return errors.WithMessagef(err, "model %q", file)
			}
			computations[i] = computation
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		klog.Fatalf("Translation failed: %+v", err)
	}

	for i, file := range files {
		computation := computations[i]
		klog.V(1).Infof("%q: computation %q with inputs %v and outputs %v", file, computation.Name,
			computation.Inputs, computation.Outputs)
		if *flagOutput == "" {
			must.M1(computation.WriteTo(os.Stdout))
			fmt.Println()
			continue
		}
		outputPath := filepath.Join(*flagOutput, modelName(file)+".mlir")
		f := must.M1(os.Create(outputPath))
		must.M1(computation.WriteTo(f))
		must.M(f.Close())
		klog.V(1).Infof("%q -> %q", file, outputPath)
	}
}

// translateFile reads and translates one model file.
func translateFile(file string) (*stablehlo.Computation, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, errors.Wrapf(err, "reading model")
	}
	m, err := model.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	name := *flagName
	if name == "" {
		name = modelName(file)
	}
	translation, err := translator.New(m).WithName(name).Done()
	if err != nil {
		return nil, err
	}
	return translation.Computation, nil
}

// modelName is the base name of the file without extension.
func modelName(file string) string {
	base := filepath.Base(file)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
