package store

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPutOpen(t *testing.T) {
	d, err := New(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, d.PutReader("processed_data.xlsx", strings.NewReader("hello")))
	assert.True(t, d.Exists("processed_data.xlsx"))

	f, size, err := d.Open("processed_data.xlsx")
	require.NoError(t, err)
	defer f.Close()
	b, err := io.ReadAll(f)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(b))
	assert.Equal(t, int64(5), size)
}

func TestPutOverwrites(t *testing.T) {
	d, err := New(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, d.PutReader("a.xlsx", strings.NewReader("one")))
	require.NoError(t, d.PutReader("a.xlsx", strings.NewReader("two")))

	f, _, err := d.Open("a.xlsx")
	require.NoError(t, err)
	defer f.Close()
	b, _ := io.ReadAll(f)
	assert.Equal(t, "two", string(b))
}

func TestPutFailureLeavesNothing(t *testing.T) {
	dir := t.TempDir()
	d, err := New(dir)
	require.NoError(t, err)

	boom := errors.New("boom")
	err = d.Put("a.xlsx", func(w io.Writer) error {
		_, _ = w.Write([]byte("partial"))
		return boom
	})
	assert.ErrorIs(t, err, boom)
	assert.False(t, d.Exists("a.xlsx"))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestOpenMissing(t *testing.T) {
	d, err := New(t.TempDir())
	require.NoError(t, err)
	_, _, err = d.Open("nope.xlsx")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestInvalidNames(t *testing.T) {
	d, err := New(t.TempDir())
	require.NoError(t, err)
	for _, name := range []string{"", "../etc/passwd", "a/b.xlsx", ".hidden", "a b.xlsx", `..\x`} {
		_, err := d.Path(name)
		assert.ErrorIs(t, err, ErrInvalidName, "name %q", name)
		assert.False(t, d.Exists(name))
	}
}

func TestSafeName(t *testing.T) {
	assert.Equal(t, "Wed", SafeName("Wed"))
	assert.Equal(t, "___etc", SafeName("../etc"))
	assert.Equal(t, "a_b", SafeName("a b"))
	assert.True(t, ValidName("filtered_data_"+SafeName("../../x")+".xlsx"))
}

func TestConcurrentPut(t *testing.T) {
	d, err := New(t.TempDir())
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			payload := bytes.Repeat([]byte(fmt.Sprintf("%02d", i)), 4096)
			assert.NoError(t, d.PutReader("shared.xlsx", bytes.NewReader(payload)))
		}(i)
	}
	wg.Wait()

	f, _, err := d.Open("shared.xlsx")
	require.NoError(t, err)
	defer f.Close()
	b, err := io.ReadAll(f)
	require.NoError(t, err)
	require.Len(t, b, 2*4096)
	// One writer's payload, never a mix.
	assert.Equal(t, bytes.Repeat(b[:2], 4096), b)
}
