package ingest

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/joseph-ayodele/docanalyzer/internal/common"
)

// ListPDFs walks root and returns the PDF files under it, sorted. Hidden files
// and directories are skipped. A root without PDFs is an input error.
func ListPDFs(root string) ([]string, error) {
	if strings.TrimSpace(root) == "" {
		return nil, common.NewInputError("directory is required", nil)
	}
	info, err := os.Stat(root)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, common.NewInputError(fmt.Sprintf("No PDF files found in `%s`.", root), err)
		}
		return nil, common.NewInputError(fmt.Sprintf("cannot read %s", root), err)
	}
	if !info.IsDir() {
		return nil, common.NewInputError(fmt.Sprintf("%s is not a directory", root), nil)
	}

	var paths []string
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if path != root && IsHidden(path) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() || !AllowedExt(filepath.Ext(path)) {
			return nil
		}
		paths = append(paths, path)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", root, err)
	}
	if len(paths) == 0 {
		return nil, common.NewInputError(fmt.Sprintf("No PDF files found in `%s`.", root), nil)
	}
	sort.Strings(paths)
	return paths, nil
}
