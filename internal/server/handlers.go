package server

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/inodb/modscope/internal/genedata"
	"github.com/inodb/modscope/internal/regression"
	"github.com/inodb/modscope/internal/report"
)

type sampleInfo struct {
	Sample string `json:"sample"`
	Genes  int    `json:"genes"`
}

// geneSummary is the list-view slice of a record: identity plus the
// whole-gene aggregates.
type geneSummary struct {
	ID              int64   `json:"id"`
	Name            string  `json:"name"`
	Chromosome      string  `json:"chromosome,omitempty"`
	TotalCPM        float64 `json:"total_cpm"`
	TotalAIRate     float64 `json:"total_ai_rate"`
	TotalM6ARate    float64 `json:"total_m6a_rate"`
	TotalEitherRate float64 `json:"total_either_rate"`
}

type scatterLabels struct {
	Region       string `json:"region"`
	Modification string `json:"modification"`
}

// scatterResponse carries everything a scatter view needs for one
// selection. Fit and Line are null when the fit is empty or degenerate;
// Points are returned regardless so the view can still plot them.
type scatterResponse struct {
	Sample       string                      `json:"sample"`
	Region       genedata.Region             `json:"region"`
	Modification genedata.Modification       `json:"modification"`
	Labels       scatterLabels               `json:"labels"`
	XScale       float64                     `json:"x_scale"`
	Points       []regression.ProjectedPoint `json:"points"`
	Fit          *regression.FitResult       `json:"fit"`
	Line         *[2]regression.LinePoint    `json:"line"`
	Status       report.Status               `json:"status"`
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"samples": s.catalog.Len(),
	})
}

func (s *Server) handleSamples(c *gin.Context) {
	out := make([]sampleInfo, 0, s.catalog.Len())
	for _, sample := range s.catalog.Samples() {
		ds, ok := s.catalog.Dataset(sample)
		if !ok {
			continue
		}
		out = append(out, sampleInfo{Sample: sample, Genes: ds.Len()})
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) handleGenes(c *gin.Context) {
	ds, ok := s.dataset(c)
	if !ok {
		return
	}
	records := ds.Filter(c.Query("q"))
	out := make([]geneSummary, len(records))
	for i, g := range records {
		out[i] = geneSummary{
			ID:              g.ID,
			Name:            g.Name,
			Chromosome:      g.Chromosome,
			TotalCPM:        g.TotalCPM,
			TotalAIRate:     g.TotalAIRate,
			TotalM6ARate:    g.TotalM6ARate,
			TotalEitherRate: g.TotalEitherRate,
		}
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) handleGene(c *gin.Context) {
	ds, ok := s.dataset(c)
	if !ok {
		return
	}
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("invalid gene id %q", c.Param("id"))})
		return
	}
	g, ok := ds.Gene(id)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("gene %d not found in sample %s", id, ds.Sample())})
		return
	}
	c.JSON(http.StatusOK, g)
}

func (s *Server) handleScatter(c *gin.Context) {
	ds, ok := s.dataset(c)
	if !ok {
		return
	}
	region, ok := s.region(c)
	if !ok {
		return
	}
	mod, ok := s.modification(c)
	if !ok {
		return
	}

	points := regression.Project(ds, region, mod)
	resp := scatterResponse{
		Sample:       ds.Sample(),
		Region:       region,
		Modification: mod,
		Labels:       scatterLabels{Region: region.Label(), Modification: mod.Label()},
		XScale:       regression.PercentScale,
		Points:       points,
		Status:       report.StatusOK,
	}

	fit, err := regression.Fit(points, regression.PercentScale)
	if err != nil {
		resp.Status = report.FitStatus(err)
	} else {
		resp.Fit = &fit
		if line, err := regression.LineEndpoints(points, fit.Slope, fit.Intercept, regression.PercentScale); err == nil {
			resp.Line = &line
		}
	}
	c.JSON(http.StatusOK, resp)
}

// dataset resolves the sample query parameter, writing the error
// response itself when the parameter is missing or unknown.
func (s *Server) dataset(c *gin.Context) (*genedata.Dataset, bool) {
	sample := c.Query("sample")
	if sample == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing required parameter 'sample'"})
		return nil, false
	}
	ds, ok := s.catalog.Dataset(sample)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("unknown sample %q", sample)})
		return nil, false
	}
	return ds, true
}

func (s *Server) region(c *gin.Context) (genedata.Region, bool) {
	raw := c.Query("region")
	if raw == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing required parameter 'region'"})
		return "", false
	}
	region, err := genedata.ParseRegion(raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return "", false
	}
	return region, true
}

func (s *Server) modification(c *gin.Context) (genedata.Modification, bool) {
	raw := c.Query("mod")
	if raw == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing required parameter 'mod'"})
		return "", false
	}
	mod, err := genedata.ParseModification(raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return "", false
	}
	return mod, true
}
