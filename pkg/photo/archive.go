package photo

import (
	"Employee-Portal-Backend/domain"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/yeka/zip"
)

// ArchiveUnwrapper turns an uploaded vendor file into a single XML buffer.
// Vendor exports arrive either as a password-protected ZIP containing the
// XML manifest, or as the raw XML document itself.
type ArchiveUnwrapper struct {
	scratchDir string
}

// NewArchiveUnwrapper creates an unwrapper that extracts archives under
// scratchDir. Pass an empty string to use the system temp directory.
func NewArchiveUnwrapper(scratchDir string) *ArchiveUnwrapper {
	return &ArchiveUnwrapper{scratchDir: scratchDir}
}

// Unwrap returns the XML bytes from the upload. Files named *.zip require a
// password and must contain at least one *.xml entry; anything else is
// treated as XML as-is. The per-call scratch directory is removed on every
// return path.
func (u *ArchiveUnwrapper) Unwrap(fileName string, data []byte, password string) ([]byte, error) {
	if !strings.HasSuffix(strings.ToLower(fileName), ".zip") {
		return data, nil
	}

	if password == "" {
		return nil, domain.ErrMissingZipPassword
	}

	dir, err := os.MkdirTemp(u.scratchDir, "photo-batch-")
	if err != nil {
		return nil, err
	}
	defer os.RemoveAll(dir)

	zipPath := filepath.Join(dir, filepath.Base(fileName))
	if err := os.WriteFile(zipPath, data, 0o600); err != nil {
		return nil, err
	}

	if err := extractArchive(zipPath, dir, password); err != nil {
		return nil, err
	}

	manifest, err := findManifest(dir)
	if err != nil {
		return nil, err
	}

	return os.ReadFile(manifest)
}

func extractArchive(zipPath, dir, password string) error {
	zr, err := zip.OpenReader(zipPath)
	if err != nil {
		return domain.ErrInvalidArchive
	}
	defer zr.Close()

	for _, f := range zr.File {
		if f.FileInfo().IsDir() {
			continue
		}
		if f.IsEncrypted() {
			f.SetPassword(password)
		}

		rc, err := f.Open()
		if err != nil {
			return domain.ErrInvalidArchive
		}

		// Entries are flattened: the vendor export has no directory
		// structure, and listdir-style manifest lookup expects flat names.
		dst, err := os.Create(filepath.Join(dir, filepath.Base(f.Name)))
		if err != nil {
			rc.Close()
			return err
		}

		_, copyErr := io.Copy(dst, rc)
		rc.Close()
		dst.Close()
		if copyErr != nil {
			// A wrong password surfaces here as a checksum failure.
			return domain.ErrInvalidArchive
		}
	}

	return nil
}

func findManifest(dir string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", err
	}

	for _, entry := range entries {
		if strings.HasSuffix(strings.ToLower(entry.Name()), ".xml") {
			return filepath.Join(dir, entry.Name()), nil
		}
	}
	return "", domain.ErrNoManifestFound
}
