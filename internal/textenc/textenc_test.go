package textenc

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLookup_KnownNames(t *testing.T) {
	for _, name := range []string{"", "cp1252", "CP1252", "windows-1252", "utf-8", "UTF8", "utf-8-sig", "latin-1", "iso-8859-1", "iso-8859-15", "shift_jis"} {
		t.Run(name, func(t *testing.T) {
			d, err := Lookup(name)
			require.NoError(t, err)
			require.NotNil(t, d)
		})
	}
}

func TestLookup_UnknownName(t *testing.T) {
	_, err := Lookup("no-such-codec")
	require.ErrorContains(t, err, `unknown encoding "no-such-codec"`)
}

func TestDecode_Windows1252(t *testing.T) {
	d, err := Lookup("cp1252")
	require.NoError(t, err)

	// 0x93/0x94 are curly quotes, 0xE9 is e-acute, 0x80 is the euro sign.
	text, err := d.Decode([]byte("title: \x93caf\xe9\x94 \x80\n"))
	require.NoError(t, err)
	require.Equal(t, "title: “café” €\n", text)
}

func TestDecode_Windows1252UndefinedByteIsError(t *testing.T) {
	d, err := Lookup("cp1252")
	require.NoError(t, err)

	_, err = d.Decode([]byte("a\x81b"))
	require.ErrorContains(t, err, "cannot be decoded as cp1252")
}

func TestDecode_UTF8Strict(t *testing.T) {
	d, err := Lookup("utf-8")
	require.NoError(t, err)

	text, err := d.Decode([]byte("caf\xc3\xa9"))
	require.NoError(t, err)
	require.Equal(t, "café", text)

	_, err = d.Decode([]byte("caf\xe9"))
	require.ErrorContains(t, err, "offset 3")
}

func TestDecode_UTF8BOMStripped(t *testing.T) {
	d, err := Lookup("utf-8-sig")
	require.NoError(t, err)

	text, err := d.Decode([]byte("\xef\xbb\xbf---\n"))
	require.NoError(t, err)
	require.Equal(t, "---\n", text)
}

func TestReadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.md")
	require.NoError(t, os.WriteFile(path, []byte("caf\xe9"), 0o600))

	d, err := Lookup("latin-1")
	require.NoError(t, err)
	text, err := d.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "café", text)

	_, err = d.ReadFile(filepath.Join(dir, "missing.md"))
	require.ErrorIs(t, err, os.ErrNotExist)
}
