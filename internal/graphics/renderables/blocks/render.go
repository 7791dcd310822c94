package blocks

import (
	"mini-voxel/internal/gpu"
	"mini-voxel/internal/metrics"
	"mini-voxel/internal/profiling"
)

// Render draws every active mesh whose chunk box intersects the camera
// frustum: one texture bind and one indexed draw per visible chunk.
func (m *MeshManager) Render(pass gpu.Pass, cam Camera) (drawn, culled int) {
	defer profiling.Track("blocks.Render")()

	planes := extractFrustumPlanes(cam.ViewProjection())
	for pos, mesh := range m.meshes {
		min, max := chunkBounds(pos)
		if !aabbIntersectsFrustumPlanes(min, max, planes) {
			culled++
			continue
		}
		pass.BindTexture(mesh.Atlas.Texture)
		pass.DrawIndexed(mesh.Buffers.Vertices, mesh.Buffers.Indices, mesh.IndexCount)
		drawn++
	}
	metrics.DrawCalls.Set(float64(drawn))
	metrics.ChunksCulled.Set(float64(culled))
	return drawn, culled
}
