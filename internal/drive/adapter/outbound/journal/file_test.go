package journal

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFile_AppendLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "usage.log")
	j, err := Open(path)
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, j.Append(ctx, "[ZIP_CREATED] user=u1 folder=f1 files=2"))
	require.NoError(t, j.Append(ctx, "line\nwith break"))
	require.NoError(t, j.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "[ZIP_CREATED] user=u1 folder=f1 files=2\nline with break\n", string(data))

	assert.Error(t, j.Append(ctx, "after close"))
}

func TestFile_ReopenAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "usage.log")

	for i := 0; i < 2; i++ {
		j, err := Open(path)
		require.NoError(t, err)
		require.NoError(t, j.Append(context.Background(), fmt.Sprintf("run %d", i)))
		require.NoError(t, j.Close())
	}

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "run 0\nrun 1\n", string(data))
}

func TestFile_ConcurrentAppendsStayWhole(t *testing.T) {
	path := filepath.Join(t.TempDir(), "usage.log")
	j, err := Open(path)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_ = j.Append(context.Background(), fmt.Sprintf("entry-%02d", i))
		}(i)
	}
	wg.Wait()
	require.NoError(t, j.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSuffix(string(data), "\n"), "\n")
	assert.Len(t, lines, 20)
	for _, l := range lines {
		assert.Regexp(t, `^entry-\d{2}$`, l)
	}
}
