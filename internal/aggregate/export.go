package aggregate

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/inodb/modscope/internal/genedata"
)

// ExportCatalog writes gene_data_<SAMPLE>.json per sample plus the
// combined export, two-space indented, creating the directory if
// needed. The files are what the dataset loader reads back.
func ExportCatalog(catalog *genedata.Catalog, dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	combined := make(map[string][]*genedata.GeneRecord, catalog.Len())
	for _, sample := range catalog.Samples() {
		ds, ok := catalog.Dataset(sample)
		if !ok {
			return fmt.Errorf("catalog missing sample %q", sample)
		}
		path := filepath.Join(dir, genedata.DatasetFilename(sample))
		if err := writeJSON(path, ds.Records()); err != nil {
			return fmt.Errorf("export sample %s: %w", sample, err)
		}
		combined[sample] = ds.Records()
	}

	path := filepath.Join(dir, genedata.CombinedDatasetFile)
	if err := writeJSON(path, combined); err != nil {
		return fmt.Errorf("export combined datasets: %w", err)
	}
	return nil
}

func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
