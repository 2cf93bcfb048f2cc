// Package main provides the ndarray inspection CLI.
//
// It fills an array of the given shape with 0, 1, 2, ... and prints the
// layout and contents of a view selected by a NumPy-style expression:
//
//	ndarray -shape 3,4,5 "1:3, :, 2"
//	ndarray -shape 4,6 -order column -transpose "::-1"
//	ndarray -file data.bin -shape 100,100 "::10, ::10"
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/born-ml/ndarray/array"
	"github.com/born-ml/ndarray/mapfile"
)

const version = "v0.0.1-dev"

func main() {
	if len(os.Args) > 1 && os.Args[1] == "version" {
		fmt.Printf("ndarray %s\n", version)
		return
	}

	var cfg config
	flag.StringVar(&cfg.shape, "shape", "3,4", "comma-separated array shape")
	flag.StringVar(&cfg.order, "order", "row", "storage order: row or column")
	flag.StringVar(&cfg.file, "file", "", "view float64 elements of this raw file instead of 0, 1, 2, ...")
	flag.IntVar(&cfg.offset, "offset", 0, "byte offset of the first element in -file")
	flag.BoolVar(&cfg.transpose, "transpose", false, "transpose before applying the expression")
	flag.IntVar(&cfg.flatten, "flatten", 0, "flatten the view to this many dimensions (0 keeps it)")
	flag.IntVar(&cfg.width, "width", 4, "minimum element width")
	flag.IntVar(&cfg.precision, "precision", 6, "significant digits")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: ndarray [flags] [expression]\n\nFlags:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	cfg.expr = strings.Join(flag.Args(), " ")

	if err := run(cfg); err != nil {
		log.Fatalf("ndarray: %v", err)
	}
}

// config holds the command-line settings.
type config struct {
	shape     string
	order     string
	file      string
	offset    int
	expr      string
	transpose bool
	flatten   int
	width     int
	precision int
}

func run(cfg config) (err error) {
	shape, err := parseShape(cfg.shape)
	if err != nil {
		return err
	}
	specs, err := array.ParseSpecs(cfg.expr)
	if err != nil {
		return err
	}

	// View operations report misuse by panicking.
	defer func() {
		if r := recover(); r != nil {
			if e, ok := r.(error); ok {
				err = e
				return
			}
			panic(r)
		}
	}()

	v, cleanup, err := source(cfg, shape)
	if err != nil {
		return err
	}
	defer cleanup()
	defer func() { v.Release() }()

	replace := func(next array.Const[float64]) {
		v.Release()
		v = next
	}
	v = v.Copy()
	if cfg.transpose {
		replace(v.Transpose())
	}
	replace(v.View(specs...))
	if cfg.flatten > 0 {
		replace(v.Flatten(cfg.flatten))
	}

	fmt.Printf("shape:    %v\n", v.Shape())
	fmt.Printf("strides:  %v\n", v.Strides())
	fmt.Printf("offset:   %d\n", v.Offset())
	fmt.Printf("rmc:      %d\n", v.RMC())
	fmt.Printf("elements: %d\n", v.NumElements())

	opts := array.DefaultFormat()
	opts.Width = cfg.width
	opts.Precision = cfg.precision
	fmt.Println(v.FormatWith(opts))
	return nil
}

// source returns the read-only array to inspect and a function releasing it.
func source(cfg config, shape []int) (array.Const[float64], func(), error) {
	if cfg.file != "" {
		f, err := mapfile.Open(cfg.file)
		if err != nil {
			return array.Const[float64]{}, nil, err
		}
		c, err := mapfile.View[float64](f, cfg.offset, shape...)
		if err != nil {
			_ = f.Close()
			return array.Const[float64]{}, nil, err
		}
		return c, func() {
			c.Release()
			_ = f.Close()
		}, nil
	}

	var order array.DataOrder
	switch cfg.order {
	case "row":
		order = array.RowMajor
	case "column", "col":
		order = array.ColumnMajor
	default:
		return array.Const[float64]{}, nil, errors.Errorf("unknown order %q", cfg.order)
	}
	a := array.AllocateOrder[float64](order, shape...)
	defer a.Release()
	next := 0.0
	a.EachPtr(func(p *float64) {
		*p = next
		next++
	})
	c := a.AsConst()
	return c, func() { c.Release() }, nil
}

func parseShape(s string) ([]int, error) {
	var shape []int
	for _, field := range strings.Split(s, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		n, err := strconv.Atoi(field)
		if err != nil {
			return nil, errors.Wrapf(err, "shape %q", s)
		}
		if n < 0 {
			return nil, errors.Errorf("negative size %d in shape %q", n, s)
		}
		shape = append(shape, n)
	}
	return shape, nil
}
