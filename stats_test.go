package mimesis

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBenchmark_StepsAccumulate(t *testing.T) {
	assert := assert.New(t)

	b := &Benchmark{start: time.Unix(0, 0), last: time.Unix(0, 0)}
	b.steps = append(b.steps, StepBenchmark{Name: "trace", Duration: 10 * time.Millisecond})
	b.steps = append(b.steps, StepBenchmark{Name: "extrude", Duration: 5 * time.Millisecond})

	steps := b.Steps()
	if assert.Len(steps, 2) {
		assert.Equal("trace", steps[0].Name)
		assert.Equal("extrude", steps[1].Name)
	}
}

func TestProcessingStats_AddResultAccumulates(t *testing.T) {
	assert := assert.New(t)

	stats := NewProcessingStats(2)

	stats.AddResult(ProcessingResult{
		PolygonCount: 3,
		MeshStats: []MeshStats{
			{VertexCount2D: 10, TriangleCount2D: 8, VertexCount3D: 40, TriangleCount3D: 32},
		},
		TotalDuration: 2 * time.Second,
	})
	stats.AddFailure()

	assert.Equal(1, stats.Processed)
	assert.Equal(1, stats.Failed)
	assert.Equal(3, stats.TotalPolygons)
	assert.Equal(40, stats.TotalVertices3D)
	assert.Equal(8, stats.TotalTriangles2D)
}

func TestProcessingStats_PrintSummaryDoesNotPanicOnEmpty(t *testing.T) {
	assert := assert.New(t)

	stats := NewProcessingStats(0)
	assert.NotPanics(func() {
		stats.PrintSummary()
		stats.PrintProgress()
	})
}
