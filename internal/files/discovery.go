package files

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// FileInfo represents information about a discovered file
type FileInfo struct {
	Path    string
	Name    string
	Size    int64
	ModTime time.Time
}

// Kind classifies an export file by its filename signature.
type Kind string

const (
	KindCustomer  Kind = "customer"
	KindSales     Kind = "sales"
	KindBusiness  Kind = "business"
	KindInventory Kind = "inventory"
	KindUnknown   Kind = "unknown"
)

// Classify determines the export kind from the filename. The checks run
// most specific first so that a business "customer_list" workbook is not
// mistaken for an individual customer export.
func Classify(name string) Kind {
	lower := strings.ToLower(name)
	switch {
	case strings.Contains(lower, "customer_list") || strings.Contains(lower, "business"):
		return KindBusiness
	case strings.Contains(lower, "inventory"):
		return KindInventory
	case strings.Contains(lower, "customer"):
		return KindCustomer
	case strings.Contains(lower, "revenue") || strings.Contains(lower, "sales"):
		return KindSales
	default:
		return KindUnknown
	}
}

// Discovery provides file discovery operations
type Discovery struct {
	basePath string
}

// NewDiscovery creates a new file discovery instance
func NewDiscovery(basePath string) *Discovery {
	return &Discovery{basePath: basePath}
}

// FindCSVFiles finds all CSV files in the specified directory
func (d *Discovery) FindCSVFiles(dir string) ([]FileInfo, error) {
	return d.findByExtension(dir, ".csv")
}

// FindExcelFiles finds all Excel workbooks in the specified directory
func (d *Discovery) FindExcelFiles(dir string) ([]FileInfo, error) {
	files, err := d.findByExtension(dir, ".xlsx")
	if err != nil {
		return nil, err
	}
	legacy, err := d.findByExtension(dir, ".xls")
	if err != nil {
		return nil, err
	}
	return append(files, legacy...), nil
}

// FindExportFiles finds every CSV and Excel export in the directory,
// sorted by name for deterministic processing order.
func (d *Discovery) FindExportFiles(dir string) ([]FileInfo, error) {
	csvFiles, err := d.FindCSVFiles(dir)
	if err != nil {
		return nil, err
	}
	excelFiles, err := d.FindExcelFiles(dir)
	if err != nil {
		return nil, err
	}

	all := append(csvFiles, excelFiles...)
	sort.Slice(all, func(i, j int) bool {
		return all[i].Name < all[j].Name
	})
	return all, nil
}

func (d *Discovery) findByExtension(dir, ext string) ([]FileInfo, error) {
	fullPath := dir
	if !filepath.IsAbs(dir) {
		fullPath = filepath.Join(d.basePath, dir)
	}

	entries, err := os.ReadDir(fullPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", fullPath, err)
	}

	var files []FileInfo
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		name := entry.Name()
		if !strings.HasSuffix(strings.ToLower(name), ext) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}

		files = append(files, FileInfo{
			Path:    filepath.Join(fullPath, name),
			Name:    name,
			Size:    info.Size(),
			ModTime: info.ModTime(),
		})
	}

	return files, nil
}
