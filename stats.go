package mimesis

import (
	"fmt"
	"time"

	"github.com/meshgen/mimesis/utils"
)

// StepBenchmark records how long one named pipeline stage took.
type StepBenchmark struct {
	Name     string
	Duration time.Duration
}

// Benchmark accumulates per-stage timings for a single file's pipeline
// run, the Go counterpart of original_source/bin/src/stats.rs's
// Benchmark: call Step after each stage completes, then Steps/
// TotalDuration once the pipeline is done.
type Benchmark struct {
	start   time.Time
	last    time.Time
	steps   []StepBenchmark
}

// NewBenchmark starts a benchmark clock running from now.
func NewBenchmark() *Benchmark {
	now := time.Now()
	return &Benchmark{start: now, last: now}
}

// Step records the elapsed time since the previous Step call (or since
// NewBenchmark, for the first call) under name.
func (b *Benchmark) Step(name string) {
	now := time.Now()
	b.steps = append(b.steps, StepBenchmark{Name: name, Duration: now.Sub(b.last)})
	b.last = now
}

// Steps returns every recorded step in call order.
func (b *Benchmark) Steps() []StepBenchmark {
	return b.steps
}

// TotalDuration returns the time from NewBenchmark to the most recent
// Step call (zero if Step was never called).
func (b *Benchmark) TotalDuration() time.Duration {
	return b.last.Sub(b.start)
}

// MeshStats summarises one extruded mesh's vertex/triangle counts.
type MeshStats struct {
	VertexCount2D   int
	TriangleCount2D int
	VertexCount3D   int
	TriangleCount3D int
}

// ProcessingResult is what Processor.ProcessWithStats returns for a
// single input file: how many polygons it produced, the per-mesh geometry
// counts, and the stage-by-stage benchmark.
type ProcessingResult struct {
	PolygonCount   int
	MeshStats      []MeshStats
	Benchmark      *Benchmark
	TotalDuration  time.Duration
}

// ProcessingStats aggregates ProcessingResults across a batch run, the
// Go counterpart of original_source/bin/src/stats.rs's
// ProcessingStats, used by the CLI to print a summary after a
// directory walk completes.
type ProcessingStats struct {
	TotalFiles         int
	Processed          int
	Failed             int
	TotalPolygons      int
	TotalVertices2D    int
	TotalVertices3D    int
	TotalTriangles2D   int
	TotalTriangles3D   int
	TotalProcessingTime time.Duration

	benchmarkTotals map[string]time.Duration
	benchmarkCounts map[string]int
	benchmarkOrder  []string
}

// NewProcessingStats initialises a stats accumulator for a batch of
// totalFiles inputs.
func NewProcessingStats(totalFiles int) *ProcessingStats {
	return &ProcessingStats{
		TotalFiles:      totalFiles,
		benchmarkTotals: make(map[string]time.Duration),
		benchmarkCounts: make(map[string]int),
	}
}

// AddResult folds a successful file's ProcessingResult into the running
// totals.
func (s *ProcessingStats) AddResult(r ProcessingResult) {
	s.Processed++
	s.TotalPolygons += r.PolygonCount
	s.TotalProcessingTime += r.TotalDuration

	for _, ms := range r.MeshStats {
		s.TotalVertices2D += ms.VertexCount2D
		s.TotalVertices3D += ms.VertexCount3D
		s.TotalTriangles2D += ms.TriangleCount2D
		s.TotalTriangles3D += ms.TriangleCount3D
	}

	if r.Benchmark == nil {
		return
	}
	for _, step := range r.Benchmark.Steps() {
		if _, ok := s.benchmarkTotals[step.Name]; !ok {
			s.benchmarkOrder = append(s.benchmarkOrder, step.Name)
		}
		s.benchmarkTotals[step.Name] += step.Duration
		s.benchmarkCounts[step.Name]++
	}
}

// AddFailure records one more failed file.
func (s *ProcessingStats) AddFailure() {
	s.Failed++
}

// PrintProgress prints a one-line progress update, the way
// original_source's print_progress does.
func (s *ProcessingStats) PrintProgress() {
	fmt.Printf("%s\n", utils.DecorateText(
		fmt.Sprintf("Progress: %d/%d files processed, %d failed, %d polygons, %d total vertices (3D)",
			s.Processed+s.Failed, s.TotalFiles, s.Failed, s.TotalPolygons, s.TotalVertices3D),
		utils.DefaultMessage,
	))
}

// PrintSummary prints the full end-of-batch report, the Go rendering
// of original_source's print_summary.
func (s *ProcessingStats) PrintSummary() {
	fmt.Println()
	fmt.Println(utils.DecorateText("=== Processing Summary ===", utils.StatusMessage))
	fmt.Printf("Total files: %d\n", s.TotalFiles)
	fmt.Printf("Successfully processed: %d\n", s.Processed)
	fmt.Printf("Failed: %d\n", s.Failed)
	if s.TotalFiles > 0 {
		fmt.Printf("Success rate: %.1f%%\n", float64(s.Processed)/float64(s.TotalFiles)*100)
	}

	fmt.Println()
	fmt.Println(utils.DecorateText("=== Geometry Statistics ===", utils.StatusMessage))
	fmt.Printf("Total polygons generated: %d\n", s.TotalPolygons)
	fmt.Printf("Total 2D vertices: %d\n", s.TotalVertices2D)
	fmt.Printf("Total 3D vertices: %d\n", s.TotalVertices3D)
	fmt.Printf("Total 2D triangles: %d\n", s.TotalTriangles2D)
	fmt.Printf("Total 3D triangles: %d\n", s.TotalTriangles3D)

	fmt.Println()
	fmt.Println(utils.DecorateText("=== Performance Summary ===", utils.StatusMessage))
	fmt.Printf("Total processing time: %s\n", utils.FormatTime(s.TotalProcessingTime))

	fmt.Println()
	fmt.Println(utils.DecorateText("=== Step Performance ===", utils.StatusMessage))
	for _, name := range s.benchmarkOrder {
		total := s.benchmarkTotals[name]
		count := s.benchmarkCounts[name]
		avg := total / time.Duration(count)
		fmt.Printf("%s: %s total, %s avg (%d files)\n", name, utils.FormatTime(total), utils.FormatTime(avg), count)
	}
}
