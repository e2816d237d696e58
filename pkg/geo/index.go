package geo

import (
	"math"
	"sync"

	"github.com/dhconnelly/rtreego"
)

const (
	indexTolerance = 0.0001
	minChildren    = 25
	maxChildren    = 50
	dimensions     = 2
)

// IndexedPoint is one farm's representative point inside the radius index.
type IndexedPoint struct {
	ID  string
	Lat float64
	Lon float64
}

type indexItem struct {
	*IndexedPoint
	rect *rtreego.Rect
}

func (it *indexItem) Bounds() *rtreego.Rect { return it.rect }

// FarmIndex is a thread-safe R-tree over farm representative points. It is a
// bounding-box pre-filter only; callers must still verify exact great-circle
// distance.
type FarmIndex struct {
	mu    sync.RWMutex
	tree  *rtreego.Rtree
	items map[string]*indexItem
}

// NewFarmIndex creates an empty radius index.
func NewFarmIndex() *FarmIndex {
	return &FarmIndex{
		tree:  rtreego.NewTree(dimensions, minChildren, maxChildren),
		items: make(map[string]*indexItem),
	}
}

// Upsert replaces the indexed point for id, inserting it when new.
func (x *FarmIndex) Upsert(id string, lat, lon float64) {
	x.mu.Lock()
	defer x.mu.Unlock()

	if old, ok := x.items[id]; ok {
		x.tree.Delete(old)
	}
	item := &indexItem{
		IndexedPoint: &IndexedPoint{ID: id, Lat: lat, Lon: lon},
		rect:         rtreego.Point{lat, lon}.ToRect(indexTolerance),
	}
	x.tree.Insert(item)
	x.items[id] = item
}

// Size returns the number of indexed points.
func (x *FarmIndex) Size() int {
	x.mu.RLock()
	defer x.mu.RUnlock()
	return len(x.items)
}

// Within returns the indexed points whose bounding box intersects the search
// box of radiusKm around (lat, lon). The box over-approximates the circle, so
// the result may contain points slightly beyond the radius.
func (x *FarmIndex) Within(lat, lon, radiusKm float64) []IndexedPoint {
	x.mu.RLock()
	defer x.mu.RUnlock()

	deg := (radiusKm / earthRadiusKm) * (180 / math.Pi)
	if deg < indexTolerance {
		deg = indexTolerance
	}
	// Widen the longitude span away from the equator; clamp near the poles.
	cos := math.Cos(lat * math.Pi / 180)
	if cos < 0.01 {
		cos = 0.01
	}
	lonDeg := deg / cos

	bounds, err := rtreego.NewRect(
		rtreego.Point{lat - deg, lon - lonDeg},
		[]float64{2 * deg, 2 * lonDeg},
	)
	if err != nil {
		return nil
	}

	results := x.tree.SearchIntersect(bounds)
	points := make([]IndexedPoint, 0, len(results))
	for _, r := range results {
		if item, ok := r.(*indexItem); ok && item.IndexedPoint != nil {
			points = append(points, *item.IndexedPoint)
		}
	}
	return points
}
