package lgc_test

import (
	"fmt"
	"io"

	"github.com/paucazou/Little-GC/heap"
	"github.com/paucazou/Little-GC/lgc"
	"golang.org/x/exp/slog"
)

type connection struct {
	name string
}

func (c *connection) Destroy() {
	fmt.Println("closing", c.name)
}

func Example() {
	h, err := heap.New(slog.New(slog.NewTextHandler(io.Discard, nil)), heap.CreateOptions{})
	if err != nil {
		panic(err)
	}

	first, err := lgc.New(h, connection{name: "primary"})
	if err != nil {
		panic(err)
	}

	second := first.Clone()
	second.Get().name = "shared"
	fmt.Println(first.Get().name)

	first.Release()
	fmt.Println("first released")
	second.Release()

	// Output:
	// shared
	// first released
	// closing shared
}
