package genedata

import "fmt"

// Catalog holds the loaded datasets for all samples, in load order.
// Like datasets, a catalog is immutable once loading completes.
type Catalog struct {
	samples  []string
	datasets map[string]*Dataset
}

// NewCatalog returns an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{datasets: make(map[string]*Dataset)}
}

// Add registers a dataset under its sample name.
func (c *Catalog) Add(d *Dataset) error {
	if _, ok := c.datasets[d.Sample()]; ok {
		return fmt.Errorf("duplicate sample %q", d.Sample())
	}
	c.samples = append(c.samples, d.Sample())
	c.datasets[d.Sample()] = d
	return nil
}

// Samples returns the sample names in load order.
func (c *Catalog) Samples() []string {
	return c.samples
}

// Dataset looks up a sample's dataset.
func (c *Catalog) Dataset(sample string) (*Dataset, bool) {
	d, ok := c.datasets[sample]
	return d, ok
}

// Len returns the number of loaded samples.
func (c *Catalog) Len() int {
	return len(c.samples)
}
