package main

import (
	"bytes"
	"io"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/paucazou/Little-GC/heap"
	mock_heap "github.com/paucazou/Little-GC/heap/mocks"
	"github.com/paucazou/Little-GC/memutils"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"golang.org/x/exp/slog"
)

func TestRunDemo(t *testing.T) {
	var out bytes.Buffer
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	err := runDemo(&out, logger, demoOptions{})
	require.NoError(t, err)

	require.Equal(t, "not ok\n"+
		"6\n"+
		"returned by value\n"+
		"destroying \"replaced\"\n"+
		"returned by value\n", out.String())
}

func TestCreateString(t *testing.T) {
	ctrl := gomock.NewController(t)
	allocator := mock_heap.NewMockAllocator(ctrl)

	gomock.InOrder(
		allocator.EXPECT().Allocate(gomock.Any()).DoAndReturn(func(request heap.Request) (heap.BlockID, error) {
			require.Equal(t, "string", request.TypeName)
			return heap.BlockID(4), nil
		}),
		allocator.EXPECT().Free(heap.BlockID(4)),
	)

	str, err := createString(allocator, "built in place")
	require.NoError(t, err)
	require.Equal(t, "built in place", str.Load())

	str.Release()
	require.False(t, str.Bound())

	allocator.EXPECT().Allocate(gomock.Any()).Return(heap.BlockID(0), memutils.OutOfMemoryError)
	_, err = createString(allocator, "never built")
	require.True(t, errors.Is(err, memutils.OutOfMemoryError))
}

func TestRunDemo_Stats(t *testing.T) {
	var out bytes.Buffer
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	err := runDemo(&out, logger, demoOptions{PrintStats: true})
	require.NoError(t, err)

	require.Contains(t, out.String(), `"BlockCount":2`)
	require.Contains(t, out.String(), `"Type":"string"`)
}

func TestRunDemo_HeapLimit(t *testing.T) {
	var out bytes.Buffer
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	err := runDemo(&out, logger, demoOptions{HeapSizeLimit: 1})
	require.Error(t, err)
	require.True(t, errors.Is(err, memutils.OutOfMemoryError))
	require.Empty(t, out.String())
}

func TestRootCommand(t *testing.T) {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetArgs([]string{"--debug"})

	err := rootCmd.Execute()
	require.NoError(t, err)
	require.Contains(t, out.String(), "not ok")
}
