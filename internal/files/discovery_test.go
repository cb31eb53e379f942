package files

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		fileName string
		expected Kind
	}{
		{"individual customer export", "customer-list.csv", KindCustomer},
		{"business customer list workbook", "customer_list.xlsx", KindBusiness},
		{"business accounts workbook", "business-accounts.xlsx", KindBusiness},
		{"revenue report", "MARATHON LIQUORS-Revenue-June.csv", KindSales},
		{"sales report", "monthly-sales.csv", KindSales},
		{"inventory export", "inventory-export-v2.xlsx", KindInventory},
		{"unrelated file", "notes.csv", KindUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Classify(tt.fileName))
		})
	}
}

func TestFindExportFiles(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.csv", "a.xlsx", "c.txt", "d.CSV"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0644))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub.csv"), 0755))

	discovery := NewDiscovery(dir)
	files, err := discovery.FindExportFiles(".")
	require.NoError(t, err)

	names := make([]string, len(files))
	for i, f := range files {
		names[i] = f.Name
	}
	assert.Equal(t, []string{"a.xlsx", "b.csv", "d.CSV"}, names)
}

func TestFindExportFilesMissingDirectory(t *testing.T) {
	discovery := NewDiscovery(filepath.Join(t.TempDir(), "missing"))
	_, err := discovery.FindExportFiles(".")
	assert.Error(t, err)
}

func TestBackupAll(t *testing.T) {
	srcDir := t.TempDir()
	backupDir := filepath.Join(t.TempDir(), "backup")

	require.NoError(t, os.WriteFile(filepath.Join(srcDir, "a.csv"), []byte("original"), 0644))

	discovery := NewDiscovery(srcDir)
	files, err := discovery.FindExportFiles(".")
	require.NoError(t, err)

	manager := NewBackupManager(backupDir, nil)

	copied, err := manager.BackupAll(files)
	require.NoError(t, err)
	assert.Equal(t, 1, copied)

	data, err := os.ReadFile(filepath.Join(backupDir, "a.csv"))
	require.NoError(t, err)
	assert.Equal(t, "original", string(data))

	// a second run must not overwrite the existing backup
	require.NoError(t, os.WriteFile(filepath.Join(srcDir, "a.csv"), []byte("modified"), 0644))
	copied, err = manager.BackupAll(files)
	require.NoError(t, err)
	assert.Zero(t, copied)

	data, err = os.ReadFile(filepath.Join(backupDir, "a.csv"))
	require.NoError(t, err)
	assert.Equal(t, "original", string(data))
}
