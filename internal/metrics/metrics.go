// Package metrics exports dig and mesh rebuild counters to Prometheus by
// decorating the world collaborators.
package metrics

import (
	"log"
	"net/http"

	"pixeldig/internal/meshing"
	"pixeldig/internal/world"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "pixeldig"

// Mesh kinds used as the "kind" label.
const (
	KindSurface   = "surface"
	KindExtrusion = "extrusion"
)

// Metrics holds the registered collectors.
type Metrics struct {
	voxelsDug    prometheus.Counter
	meshUpdates  *prometheus.CounterVec
	meshVertices *prometheus.GaugeVec
	outlinePaths prometheus.Histogram
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		voxelsDug: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "voxels_dug_total",
			Help:      "Voxels turned from filled to empty.",
		}),
		meshUpdates: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "mesh_updates_total",
			Help:      "Chunk meshes handed to consumers.",
		}, []string{"kind"}),
		meshVertices: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "mesh_vertices",
			Help:      "Vertex count of the last mesh handed to consumers.",
		}, []string{"kind"}),
		outlinePaths: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "outline_paths",
			Help:      "Collision outlines per chunk rebuild.",
			Buckets:   []float64{0, 1, 2, 4, 8, 16, 32, 64},
		}),
	}
	reg.MustRegister(m.voxelsDug, m.meshUpdates, m.meshVertices, m.outlinePaths)
	return m
}

// Impacts counts every impact before passing it on. next may be nil.
func (m *Metrics) Impacts(next world.ImpactNotifier) world.ImpactNotifier {
	return world.ImpactNotifierFunc(func(pos mgl32.Vec2) {
		m.voxelsDug.Inc()
		if next != nil {
			next.NotifyImpact(pos)
		}
	})
}

// Mesh records updates of the given kind before passing them on. next may
// be nil.
func (m *Metrics) Mesh(kind string, next world.MeshConsumer) world.MeshConsumer {
	updates := m.meshUpdates.WithLabelValues(kind)
	vertices := m.meshVertices.WithLabelValues(kind)
	return world.MeshConsumerFunc(func(mesh *meshing.Mesh) {
		updates.Inc()
		vertices.Set(float64(mesh.VertexCount()))
		if next != nil {
			next.SetMesh(mesh)
		}
	})
}

// Colliders observes the outline count before passing outlines on. next may
// be nil.
func (m *Metrics) Colliders(next world.CollisionConsumer) world.CollisionConsumer {
	return world.CollisionConsumerFunc(func(outlines [][]mgl32.Vec2) {
		m.outlinePaths.Observe(float64(len(outlines)))
		if next != nil {
			next.SetOutlines(outlines)
		}
	})
}

// Bind wraps every member of b. Nil members are instrumented too.
func (m *Metrics) Bind(b world.Binding) world.Binding {
	return world.Binding{
		Surface:   m.Mesh(KindSurface, b.Surface),
		Extrusion: m.Mesh(KindExtrusion, b.Extrusion),
		Colliders: m.Colliders(b.Colliders),
	}
}

// Binder wraps the bindings produced by next. next may be nil.
func (m *Metrics) Binder(next world.Binder) world.Binder {
	return func(coord world.Coord, pos mgl32.Vec2) world.Binding {
		var b world.Binding
		if next != nil {
			b = next(coord, pos)
		}
		return m.Bind(b)
	}
}

// Serve exposes g on addr under /metrics in a background goroutine.
func Serve(addr string, g prometheus.Gatherer, logger *log.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(g, promhttp.HandlerOpts{}))
	go func() {
		logger.Printf("metrics on http://%s/metrics", addr)
		if err := http.ListenAndServe(addr, mux); err != nil {
			logger.Printf("metrics server: %v", err)
		}
	}()
}
