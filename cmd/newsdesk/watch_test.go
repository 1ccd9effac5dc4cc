package main_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/fwojciec/newsdesk"
	main "github.com/fwojciec/newsdesk/cmd/newsdesk"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatchCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("ingests immediately and stops with the context", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		// Cancel after the first category so the initial tick stops early.
		proc := &processor{onCategory: func(context.Context, string) { cancel() }}
		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:       ctx,
			Stdout:    stdout,
			Stderr:    &bytes.Buffer{},
			Config:    testConfig("business", "world"),
			Processor: proc,
		}

		err := (&main.WatchCmd{Schedule: "@every 1h"}).Run(deps)

		require.NoError(t, err)
		assert.Equal(t, []string{"business"}, proc.Calls())
		assert.Contains(t, stdout.String(), "Watching 2 categories")
	})

	t.Run("rejects an invalid schedule", func(t *testing.T) {
		t.Parallel()

		proc := &processor{}
		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:       context.Background(),
			Stdout:    &bytes.Buffer{},
			Stderr:    stderr,
			Config:    testConfig("world"),
			Processor: proc,
		}

		err := (&main.WatchCmd{Schedule: "every so often"}).Run(deps)

		assert.Equal(t, newsdesk.EINVALID, newsdesk.ErrorCode(err))
		assert.Contains(t, stderr.String(), `invalid schedule "every so often"`)
		assert.Empty(t, proc.Calls())
	})

	t.Run("watches only requested categories", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		proc := &processor{onCategory: func(context.Context, string) { cancel() }}
		deps := &main.Dependencies{
			Ctx:       ctx,
			Stdout:    &bytes.Buffer{},
			Stderr:    &bytes.Buffer{},
			Config:    testConfig("business", "world"),
			Processor: proc,
		}

		err := (&main.WatchCmd{Schedule: "*/5 * * * *", Categories: []string{"world"}}).Run(deps)

		require.NoError(t, err)
		assert.Equal(t, []string{"world"}, proc.Calls())
	})
}
