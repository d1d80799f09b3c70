package targets

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hamed0406/sitecheck/internal/domain"
)

func TestRead_KeepsOrderAndDuplicates(t *testing.T) {
	in := strings.NewReader("https://a.example\n\n  https://b.example  \n# comment\nhttps://a.example\r\n")
	got, err := Read(in)
	require.NoError(t, err)
	assert.Equal(t, []domain.Target{
		{URL: "https://a.example"},
		{URL: "https://b.example"},
		{URL: "https://a.example"},
	}, got)
}

func TestRead_Empty(t *testing.T) {
	got, err := Read(strings.NewReader("\n\n# nothing\n"))
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestRead_LongLine(t *testing.T) {
	long := "https://example.com/?q=" + strings.Repeat("a", 200*1024)
	got, err := Read(strings.NewReader("https://a.example\n" + long + "\n"))
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, long, got[1].URL)

	_, err = Read(strings.NewReader(strings.Repeat("a", maxLineBytes+1)))
	assert.Error(t, err)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "websites.txt")
	require.NoError(t, os.WriteFile(path, []byte("https://example.com\nhttps://example.org"), 0o644))

	got, err := Load(path)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "https://example.org", got[1].URL)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.txt"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "open targets file")
}

func TestFromStrings(t *testing.T) {
	got := FromStrings([]string{" https://x ", "", "https://y"})
	assert.Equal(t, []domain.Target{{URL: "https://x"}, {URL: "https://y"}}, got)
}
