package pipeline

import (
	"github.com/mmr-tortoise/foilmesh/internal/engine"
	"github.com/mmr-tortoise/foilmesh/internal/model"
	"github.com/mmr-tortoise/foilmesh/internal/msh"
)

// Extract queries the engine's aggregate accessors and returns the mesh
// statistics as one immutable value.
//
// Every query here is a constant-time read of a counter or extent the
// engine already holds. The full node and element arrays are never
// requested: the values are guaranteed identical to what enumerating a
// full export would produce, only the access path is cheaper. Extraction
// performs no writes against the engine session.
func Extract(eng engine.Engine) model.MeshStatistics {
	min, max := eng.Extent()
	return model.MeshStatistics{
		Nodes:     eng.NodeCount(),
		Triangles: eng.ElementCount(msh.ElementTriangle),
		Quads:     eng.ElementCount(msh.ElementQuad),
		Min:       min,
		Max:       max,
	}
}
