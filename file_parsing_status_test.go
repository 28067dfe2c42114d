package audiometa_test

import (
	"bytes"
	"encoding/binary"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	avmeta "github.com/gocontainer/avmeta"
	_ "github.com/gocontainer/avmeta/internal/m4a" // Register M4A/M4B parser
)

// writeMinimalM4B writes a minimal but valid M4B file (ftyp + empty moov)
// to a temp file and returns its path.
func writeMinimalM4B(t *testing.T) string {
	t.Helper()

	buf := &bytes.Buffer{}

	ftypBuf := &bytes.Buffer{}
	ftypBuf.WriteString("M4B ")
	binary.Write(ftypBuf, binary.BigEndian, uint32(0)) //nolint:errcheck // bytes.Buffer never errors
	ftypBuf.WriteString("M4B ")

	ftypSize := uint32(8 + ftypBuf.Len())
	binary.Write(buf, binary.BigEndian, ftypSize) //nolint:errcheck // bytes.Buffer never errors
	buf.WriteString("ftyp")
	buf.Write(ftypBuf.Bytes())

	binary.Write(buf, binary.BigEndian, uint32(8)) //nolint:errcheck // bytes.Buffer never errors
	buf.WriteString("moov")

	tmpFile, err := os.CreateTemp(t.TempDir(), "status*.m4b")
	require.NoError(t, err)
	_, err = tmpFile.Write(buf.Bytes())
	require.NoError(t, err)
	require.NoError(t, tmpFile.Close())

	return tmpFile.Name()
}

func TestFile_ParsingStatus_StartsOkAfterOpen(t *testing.T) {
	path := writeMinimalM4B(t)

	f, err := avmeta.Open(path)
	require.NoError(t, err)
	defer f.Close() //nolint:errcheck // best-effort cleanup

	assert.Equal(t, avmeta.Ok, f.TagsStatus)
	assert.Equal(t, avmeta.Ok, f.TracksStatus)
	assert.Equal(t, avmeta.Ok, f.ChaptersStatus)
	assert.Equal(t, avmeta.Ok, f.AttachmentsStatus)
	assert.Equal(t, avmeta.Ok, f.ContainerStatus)
}

func TestFile_ClearParsingResults_ResetsStatusAndReparsesOnDemand(t *testing.T) {
	path := writeMinimalM4B(t)

	f, err := avmeta.Open(path)
	require.NoError(t, err)
	defer f.Close() //nolint:errcheck // best-effort cleanup

	f.ClearParsingResults()

	assert.Equal(t, avmeta.NotParsedYet, f.TagsStatus)
	assert.Equal(t, avmeta.NotParsedYet, f.TracksStatus)
	assert.Equal(t, avmeta.NotParsedYet, f.ChaptersStatus)
	assert.Equal(t, avmeta.NotParsedYet, f.AttachmentsStatus)
	assert.Equal(t, avmeta.NotParsedYet, f.ContainerStatus)
	assert.Nil(t, f.Tracks)
	assert.Nil(t, f.Chapters)

	require.NoError(t, f.ParseTags())
	assert.Equal(t, avmeta.Ok, f.TagsStatus)

	require.NoError(t, f.ParseEverything())
	assert.Equal(t, avmeta.Ok, f.TracksStatus)
	assert.Equal(t, avmeta.Ok, f.ChaptersStatus)
	assert.Equal(t, avmeta.Ok, f.AttachmentsStatus)
	assert.Equal(t, avmeta.Ok, f.ContainerStatus)
}

func TestFile_ParseTags_IdempotentOnceOk(t *testing.T) {
	path := writeMinimalM4B(t)

	f, err := avmeta.Open(path)
	require.NoError(t, err)
	defer f.Close() //nolint:errcheck // best-effort cleanup

	require.Equal(t, avmeta.Ok, f.TagsStatus)
	require.NoError(t, f.ParseTags())
	assert.Equal(t, avmeta.Ok, f.TagsStatus)
}
