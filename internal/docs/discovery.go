package docs

import (
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	derrors "git.home.luguber.info/inful/doctags/internal/docs/errors"
	"git.home.luguber.info/inful/doctags/internal/logfields"
)

// Discover builds the file collection of a documentation directory.
//
// Files are collected in lexical walk order. Hidden files and directories
// (leading dot) are skipped.
func Discover(docsDir, siteDir string, useDirectoryURLs bool) (*Files, error) {
	info, err := os.Stat(docsDir)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", derrors.ErrDocsDirNotFound, docsDir)
	}

	files := NewFiles()
	err = filepath.WalkDir(docsDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path != docsDir && strings.HasPrefix(d.Name(), ".") {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}

		relPath, err := filepath.Rel(docsDir, path)
		if err != nil {
			return fmt.Errorf("%w: %w", derrors.ErrInvalidRelativePath, err)
		}

		files.Append(File{
			SrcPath:          filepath.ToSlash(relPath),
			SrcDir:           docsDir,
			DestDir:          siteDir,
			UseDirectoryURLs: useDirectoryURLs,
		})
		slog.Debug("Discovered file", logfields.File(filepath.ToSlash(relPath)))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", derrors.ErrDocsDirWalkFailed, docsDir, err)
	}

	slog.Debug("Documentation files discovered", logfields.Path(docsDir), logfields.Count(files.Len()))
	return files, nil
}
