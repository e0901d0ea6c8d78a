package utils

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOptionalRWMutex_Disabled(t *testing.T) {
	var m OptionalRWMutex

	// Without UseMutex, repeated locking never blocks
	m.Lock()
	m.Lock()
	m.RLock()
	m.Unlock()
	m.Unlock()
	m.RUnlock()

	require.True(t, m.Mutex.TryLock())
	m.Mutex.Unlock()
}

func TestOptionalRWMutex_Enabled(t *testing.T) {
	m := OptionalRWMutex{UseMutex: true}

	m.Lock()
	require.False(t, m.Mutex.TryRLock())
	m.Unlock()

	m.RLock()
	require.False(t, m.Mutex.TryLock())
	m.RUnlock()

	var wg sync.WaitGroup
	counter := 0
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			m.Lock()
			defer m.Unlock()
			counter++
		}()
	}
	wg.Wait()

	require.Equal(t, 50, counter)
}
