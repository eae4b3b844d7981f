package flatten

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestReadFileClassifiesBinary verifies a zero byte in the probe window marks
// the file binary and leaves its content unread.
func TestReadFileClassifiesBinary(t *testing.T) {
	tempFixture(t, map[string]string{
		"lead.bin": "\x00after",
		"mid.bin":  "before\x00after",
		"text.txt": "plain",
	})
	f := newTestFlattener(t, Config{})

	for _, path := range []string{"lead.bin", "mid.bin"} {
		record, err := f.readFile(path)
		require.NoError(t, err)
		assert.True(t, record.Binary, path)
		assert.Empty(t, record.Content, path)
	}

	record, err := f.readFile("text.txt")
	require.NoError(t, err)
	assert.False(t, record.Binary)
	assert.Equal(t, "plain", record.Content)
}

// TestReadFileProbeBoundary verifies classification inspects exactly the
// leading probe bytes: a zero byte just inside marks binary, a zero byte just
// past it does not.
func TestReadFileProbeBoundary(t *testing.T) {
	inside := strings.Repeat("a", binaryProbeSize-1) + "\x00"
	outside := strings.Repeat("a", binaryProbeSize) + "\x00tail"
	tempFixture(t, map[string]string{
		"inside.dat":  inside,
		"outside.dat": outside,
	})
	f := newTestFlattener(t, Config{})

	record, err := f.readFile("inside.dat")
	require.NoError(t, err)
	assert.True(t, record.Binary)

	record, err = f.readFile("outside.dat")
	require.NoError(t, err)
	assert.False(t, record.Binary)
	assert.Equal(t, outside, record.Content)
}

// TestReadFileReplacesMalformedBytes verifies undecodable byte sequences
// become replacement characters instead of read failures.
func TestReadFileReplacesMalformedBytes(t *testing.T) {
	tempFixture(t, map[string]string{
		"latin1.txt": "caf\xe9 latte",
	})
	f := newTestFlattener(t, Config{})

	record, err := f.readFile("latin1.txt")
	require.NoError(t, err)
	assert.False(t, record.Binary)
	assert.Equal(t, "caf� latte", record.Content)
}

// TestReadFileDecodesAcrossProbeBoundary verifies a multi-byte character
// split by the probe window survives decoding intact.
func TestReadFileDecodesAcrossProbeBoundary(t *testing.T) {
	content := strings.Repeat("a", binaryProbeSize-1) + "é"
	tempFixture(t, map[string]string{
		"split.txt": content,
	})
	f := newTestFlattener(t, Config{})

	record, err := f.readFile("split.txt")
	require.NoError(t, err)
	assert.Equal(t, content, record.Content)
	assert.NotContains(t, record.Content, "�")
}

// TestReadFileEmpty verifies an empty file reads as empty text.
func TestReadFileEmpty(t *testing.T) {
	tempFixture(t, map[string]string{
		"empty.txt": "",
	})
	f := newTestFlattener(t, Config{})

	record, err := f.readFile("empty.txt")
	require.NoError(t, err)
	assert.False(t, record.Binary)
	assert.Empty(t, record.Content)
}

// TestReadFileMissing verifies an unreadable file is a fatal read error.
func TestReadFileMissing(t *testing.T) {
	tempFixture(t, map[string]string{})
	f := newTestFlattener(t, Config{})

	_, err := f.readFile("ghost.txt")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrRead)
	assert.ErrorIs(t, err, os.ErrNotExist)
}
