// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package templates

import (
	"io"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var expectedFiles = []string{
	"cli_help.md",
	"instructions.md",
	"trust-path-review.md",
	"trust-path-search.md",
}

func TestMagicEmbed(t *testing.T) {
	tests := []struct {
		name     string
		testFunc func(t *testing.T)
	}{
		{
			name: "ReadFile",
			testFunc: func(t *testing.T) {
				for _, name := range expectedFiles {
					data, err := MagicEmbed.ReadFile(name)
					require.NoError(t, err, name)
					assert.NotEmpty(t, data, name)
				}
			},
		},
		{
			name: "ReadFile_Missing",
			testFunc: func(t *testing.T) {
				_, err := MagicEmbed.ReadFile("non-existent.md")
				assert.Error(t, err)

				_, err = MagicEmbed.ReadFile("../invalid.md")
				assert.Error(t, err)
			},
		},
		{
			name: "ReadDir",
			testFunc: func(t *testing.T) {
				entries, err := MagicEmbed.ReadDir(".")
				require.NoError(t, err)

				var names []string
				for _, e := range entries {
					assert.False(t, e.IsDir(), e.Name())
					names = append(names, e.Name())
				}
				// embed.FS lists entries sorted by name
				assert.Equal(t, expectedFiles, names)

				_, err = MagicEmbed.ReadDir("non-existent")
				assert.Error(t, err)
			},
		},
		{
			name: "Open",
			testFunc: func(t *testing.T) {
				f, err := MagicEmbed.Open("trust-path-search.md")
				require.NoError(t, err)
				defer f.Close()

				data, err := io.ReadAll(f)
				require.NoError(t, err)
				assert.Contains(t, string(data), "# Trust Path Search")

				info, err := f.Stat()
				require.NoError(t, err)
				assert.False(t, info.IsDir())
				assert.Equal(t, int64(len(data)), info.Size())
			},
		},
		{
			name: "Prompt_Role_Markers",
			testFunc: func(t *testing.T) {
				data, err := MagicEmbed.ReadFile("trust-path-review.md")
				require.NoError(t, err)
				assert.Contains(t, string(data), "### Assistant:")
				assert.Contains(t, string(data), "### User:")
			},
		},
		{
			name: "CLI_Help_Examples_Section",
			testFunc: func(t *testing.T) {
				data, err := MagicEmbed.ReadFile("cli_help.md")
				require.NoError(t, err)
				assert.Contains(t, string(data), "## Examples")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, tt.testFunc)
	}
}

func TestMagicEmbed_ConcurrentAccess(t *testing.T) {
	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 10 {
				_, err := MagicEmbed.ReadFile("instructions.md")
				assert.NoError(t, err)
				_, err = MagicEmbed.ReadDir(".")
				assert.NoError(t, err)
			}
		}()
	}
	wg.Wait()
}
