package main

import (
	"fmt"
	"io"

	"github.com/cockroachdb/errors"
	"github.com/paucazou/Little-GC/heap"
	"github.com/paucazou/Little-GC/lgc"
	"golang.org/x/exp/slog"
)

type demoOptions struct {
	HeapSizeLimit int
	PrintStats    bool
}

// createString builds a managed string in place and hands it back by value. The handle outlives
// the function; only its own reference travels to the caller.
func createString(allocator heap.Allocator, s string) (lgc.Handle[string], error) {
	return lgc.Make(allocator, func(value *string) error {
		*value = s
		return nil
	})
}

func runDemo(out io.Writer, logger *slog.Logger, options demoOptions) error {
	h, err := heap.New(logger, heap.CreateOptions{
		Flags:         heap.HeapCreateExternallySynchronized,
		HeapSizeLimit: options.HeapSizeLimit,
	})
	if err != nil {
		return err
	}

	str, err := lgc.New(h, "ok")
	if err != nil {
		return errors.Wrap(err, "demo could not create its first string")
	}
	defer str.Release()

	str2 := str.Clone()
	defer str2.Release()

	*str.Get() = "not ok"
	fmt.Fprintln(out, *str2.Get())
	fmt.Fprintln(out, len(*str.Get()))

	returned, err := createString(h, "returned by value")
	if err != nil {
		return errors.Wrap(err, "demo could not create a string in a function")
	}
	defer returned.Release()
	fmt.Fprintln(out, *returned.Get())

	other, err := lgc.New(h, "replaced", lgc.WithDestructor(func(s *string) {
		fmt.Fprintf(out, "destroying %q\n", *s)
	}))
	if err != nil {
		return errors.Wrap(err, "demo could not create a string to replace")
	}
	other.Assign(returned)
	fmt.Fprintln(out, *other.Get())
	other.Release()

	if options.PrintStats {
		fmt.Fprintln(out, h.BuildStatsString(true))
	}

	return nil
}
