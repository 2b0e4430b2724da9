package services

import "github.com/ochairo/pyfinder/internal/domain/entities"

// DownloadGrouping accumulates candidates keyed by version and
// (architecture, platform), remembering first-insertion order so that
// selection and output are deterministic for a fixed feed order.
type DownloadGrouping struct {
	versions []entities.Version
	groups   map[entities.Version]*versionGroups
	count    int
}

type versionGroups struct {
	keys       []entities.GroupKey
	candidates map[entities.GroupKey][]entities.Download
}

// NewDownloadGrouping creates an empty grouping
func NewDownloadGrouping() *DownloadGrouping {
	return &DownloadGrouping{groups: make(map[entities.Version]*versionGroups)}
}

// Add appends d to its group
func (g *DownloadGrouping) Add(d entities.Download) {
	vg, ok := g.groups[d.Version]
	if !ok {
		vg = &versionGroups{candidates: make(map[entities.GroupKey][]entities.Download)}
		g.groups[d.Version] = vg
		g.versions = append(g.versions, d.Version)
	}

	key := d.Triple.Group()
	if _, ok := vg.candidates[key]; !ok {
		vg.keys = append(vg.keys, key)
	}
	vg.candidates[key] = append(vg.candidates[key], d)
	g.count++
}

// Len returns the number of candidates added
func (g *DownloadGrouping) Len() int {
	return g.count
}

// GroupCount returns the number of distinct (version, group) pairs
func (g *DownloadGrouping) GroupCount() int {
	n := 0
	for _, vg := range g.groups {
		n += len(vg.keys)
	}
	return n
}

// SelectBest reduces every group to exactly one download
func (g *DownloadGrouping) SelectBest(selector *BestDownloadSelector) ([]entities.Download, error) {
	out := make([]entities.Download, 0, g.GroupCount())
	for _, v := range g.versions {
		vg := g.groups[v]
		for _, key := range vg.keys {
			best, err := selector.Select(vg.candidates[key])
			if err != nil {
				return nil, err
			}
			out = append(out, best)
		}
	}
	return out, nil
}
