package dxf

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Search handles DXF discovery operations over a directory tree
type Search struct {
	maxFileSize int64
	validator   *Validator
}

// NewSearch creates a new DXF search handler with the specified constraints
func NewSearch(maxFileSize int64) *Search {
	return &Search{
		maxFileSize: maxFileSize,
		validator:   NewValidator(maxFileSize),
	}
}

// SearchDirectory searches for DXF files in the specified directory
func (s *Search) SearchDirectory(req DXFSearchDirectoryRequest) (*DXFSearchDirectoryResult, error) {
	if req.Directory == "" {
		return nil, fmt.Errorf("directory cannot be empty")
	}

	if _, err := os.Stat(req.Directory); os.IsNotExist(err) {
		return nil, fmt.Errorf("directory does not exist: %s", req.Directory)
	}

	absDirectory, err := filepath.Abs(req.Directory)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve directory path: %w", err)
	}

	var dxfFiles []FileInfo
	query := strings.ToLower(strings.TrimSpace(req.Query))

	err = filepath.WalkDir(absDirectory, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			// Continue walking even if a specific file errors
			return nil //nolint:nilerr // Intentionally continue on file errors
		}

		if d.IsDir() {
			// Hidden directories are never part of a drawing set
			if strings.HasPrefix(d.Name(), ".") && path != absDirectory {
				return filepath.SkipDir
			}
			return nil
		}

		if !s.isDXFFile(d.Name()) {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return nil //nolint:nilerr // Intentionally continue on file errors
		}

		// Quick validation without parsing the file
		if err := s.validator.ValidateFileInfo(path, info); err != nil {
			return nil //nolint:nilerr // Intentionally continue on validation errors
		}

		if query != "" && !s.matchesQuery(info.Name(), query) {
			return nil
		}

		dxfFiles = append(dxfFiles, FileInfo{
			Path:         path,
			Name:         info.Name(),
			Size:         info.Size(),
			ModifiedTime: info.ModTime().Format("2006-01-02 15:04:05"),
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("error walking directory: %w", err)
	}

	return &DXFSearchDirectoryResult{
		Files:       dxfFiles,
		TotalCount:  len(dxfFiles),
		Directory:   absDirectory,
		SearchQuery: req.Query,
	}, nil
}

// FindDXFsInDirectory finds all DXF files in a directory without query filtering
func (s *Search) FindDXFsInDirectory(directory string) ([]FileInfo, error) {
	result, err := s.SearchDirectory(DXFSearchDirectoryRequest{Directory: directory})
	if err != nil {
		return nil, err
	}
	return result.Files, nil
}

// CountDXFsInDirectory counts the number of valid DXF files in a directory
func (s *Search) CountDXFsInDirectory(directory string) (int, error) {
	files, err := s.FindDXFsInDirectory(directory)
	if err != nil {
		return 0, err
	}
	return len(files), nil
}

// isDXFFile checks if a file has a DXF extension
func (s *Search) isDXFFile(filename string) bool {
	return strings.HasSuffix(strings.ToLower(filename), ".dxf")
}

// matchesQuery performs fuzzy matching on the filename
func (s *Search) matchesQuery(filename, query string) bool {
	if query == "" {
		return true
	}

	fileName := strings.ToLower(filename)
	if strings.Contains(fileName, query) {
		return true
	}

	// Match against the name without extension as well
	nameWithoutExt := strings.TrimSuffix(fileName, ".dxf")
	return strings.Contains(nameWithoutExt, query)
}
