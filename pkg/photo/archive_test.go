package photo

import (
	"Employee-Portal-Backend/domain"
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/yeka/zip"
)

const testZipPassword = "geheim123"

func buildEncryptedZip(t *testing.T, password string, entries map[string][]byte) []byte {
	t.Helper()

	buf := &bytes.Buffer{}
	zw := zip.NewWriter(buf)
	for name, content := range entries {
		fw, err := zw.Encrypt(name, password, zip.AES256Encryption)
		require.NoError(t, err)
		_, err = fw.Write(content)
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func requireScratchEmpty(t *testing.T, scratchDir string) {
	t.Helper()

	entries, err := os.ReadDir(scratchDir)
	require.NoError(t, err)
	require.Empty(t, entries, "scratch directory must be cleaned up")
}

func TestUnwrapPassesThroughRawXML(t *testing.T) {
	u := NewArchiveUnwrapper(t.TempDir())

	xml := []byte("<export></export>")
	got, err := u.Unwrap("export.xml", xml, "")
	require.NoError(t, err)
	require.Equal(t, xml, got)
}

func TestUnwrapRequiresPasswordForZip(t *testing.T) {
	scratch := t.TempDir()
	u := NewArchiveUnwrapper(scratch)

	_, err := u.Unwrap("export.zip", []byte("irrelevant"), "")
	require.ErrorIs(t, err, domain.ErrMissingZipPassword)
	requireScratchEmpty(t, scratch)
}

func TestUnwrapRejectsGarbageArchive(t *testing.T) {
	scratch := t.TempDir()
	u := NewArchiveUnwrapper(scratch)

	_, err := u.Unwrap("export.zip", []byte("this is not a zip file"), testZipPassword)
	require.ErrorIs(t, err, domain.ErrInvalidArchive)
	requireScratchEmpty(t, scratch)
}

func TestUnwrapRejectsWrongPassword(t *testing.T) {
	scratch := t.TempDir()
	u := NewArchiveUnwrapper(scratch)

	data := buildEncryptedZip(t, testZipPassword, map[string][]byte{
		"export.xml": []byte("<export></export>"),
	})

	_, err := u.Unwrap("export.zip", data, "wrong-password")
	require.ErrorIs(t, err, domain.ErrInvalidArchive)
	requireScratchEmpty(t, scratch)
}

func TestUnwrapFailsWithoutManifest(t *testing.T) {
	scratch := t.TempDir()
	u := NewArchiveUnwrapper(scratch)

	data := buildEncryptedZip(t, testZipPassword, map[string][]byte{
		"readme.txt": []byte("no manifest here"),
	})

	_, err := u.Unwrap("export.zip", data, testZipPassword)
	require.ErrorIs(t, err, domain.ErrNoManifestFound)
	requireScratchEmpty(t, scratch)
}

func TestUnwrapExtractsManifest(t *testing.T) {
	scratch := t.TempDir()
	u := NewArchiveUnwrapper(scratch)

	xml := []byte("<export><koppeling_medewerker_fotos/></export>")
	data := buildEncryptedZip(t, testZipPassword, map[string][]byte{
		"Export_2024.XML": xml,
		"readme.txt":      []byte("ignored"),
	})

	got, err := u.Unwrap("Export_2024.ZIP", data, testZipPassword)
	require.NoError(t, err)
	require.Equal(t, xml, got)
	requireScratchEmpty(t, scratch)
}
