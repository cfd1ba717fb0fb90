package trace

// Classifier supplies the SiteKind for a site number. Trace ingest
// itself never infers a kind from a site's shape — the classification
// comes from whatever instrumentation plan emitted the sites.
type Classifier interface {
	Kind(site int) SiteKind
}

// MapClassifier is a Classifier backed by a fixed site -> kind table.
// Sites absent from the table classify as Branch, since the trace
// format carries no self-describing kind tag and "ordinary site,
// nothing special" is the common case.
type MapClassifier map[int]SiteKind

func (m MapClassifier) Kind(site int) SiteKind {
	if k, ok := m[site]; ok {
		return k
	}
	return Branch
}
