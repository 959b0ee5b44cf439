package main

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// startWatch runs watchConfig in the background and returns a stop func that
// cancels it and waits for it to return.
func startWatch(t *testing.T, cfgPath string, regenerate func() error) (stop func() error) {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- watchConfig(ctx, zerolog.New(io.Discard), cfgPath, 10*time.Millisecond, regenerate)
	}()

	return func() error {
		cancel()
		select {
		case err := <-done:
			return err
		case <-time.After(5 * time.Second):
			return errors.New("watchConfig did not return after cancel")
		}
	}
}

func TestWatchConfig_RegeneratesOnWrite(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	cfgPath := writeTempFile(t, dir, "config.yaml", "a")

	var calls atomic.Int32
	stop := startWatch(t, cfgPath, func() error {
		calls.Add(1)
		return nil
	})

	require.Eventually(t, func() bool {
		_ = os.WriteFile(cfgPath, []byte("b"), 0o644)
		return calls.Load() > 0
	}, 5*time.Second, 50*time.Millisecond)

	require.NoError(t, stop())
}

func TestWatchConfig_KeepsRunningAfterFailedRegenerate(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	cfgPath := writeTempFile(t, dir, "config.yaml", "a")

	var calls atomic.Int32
	stop := startWatch(t, cfgPath, func() error {
		calls.Add(1)
		return errors.New("broken config")
	})

	require.Eventually(t, func() bool {
		_ = os.WriteFile(cfgPath, []byte("b"), 0o644)
		return calls.Load() >= 2
	}, 5*time.Second, 50*time.Millisecond)

	require.NoError(t, stop())
}

func TestWatchConfig_IgnoresSiblingFiles(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	cfgPath := writeTempFile(t, dir, "config.yaml", "a")

	var calls atomic.Int32
	stop := startWatch(t, cfgPath, func() error {
		calls.Add(1)
		return nil
	})

	for i := 0; i < 5; i++ {
		writeTempFile(t, dir, "other.yaml", "x")
		time.Sleep(20 * time.Millisecond)
	}
	time.Sleep(100 * time.Millisecond)

	require.NoError(t, stop())
	assert.Zero(t, calls.Load())
}

func TestWatchConfig_MissingDirectory(t *testing.T) {
	t.Parallel()

	cfgPath := filepath.Join(t.TempDir(), "gone", "config.yaml")

	err := watchConfig(context.Background(), zerolog.New(io.Discard), cfgPath, time.Millisecond, func() error { return nil })
	require.Error(t, err)
	assert.Contains(t, err.Error(), "watch config dir")
}
