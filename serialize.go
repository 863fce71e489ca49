package fastrie

import "sort"

// maxGap is the largest allowed distance between two consecutive child
// bytes within one cluster before a new cluster must start.
const maxGap = 3

// serializer performs the single depth-first pass that compiles a builder
// tree into a flat buffer, per the layout described in doc.go.
type serializer[V any] struct {
	width  int
	data   []byte
	values []V
}

// clusterSpan is the contiguous byte range [min, max] of one cluster, before
// it is known which slots in that range are gaps.
type clusterSpan struct {
	min, max byte
}

func (c clusterSpan) size() int {
	return int(c.max) - int(c.min) + 1
}

// serializeNode appends node's record (and, recursively, every descendant's
// record) to s.data, starting at the current end of the buffer.
func (s *serializer[V]) serializeNode(node *builderNode[V]) error {
	var valueIdx uint64
	if node.hasValue {
		s.values = append(s.values, node.value)
		valueIdx = uint64(len(s.values)) // 1-based; 0 is the "no value" sentinel
	}
	if err := appendIdx(&s.data, s.width, valueIdx); err != nil {
		return err
	}

	hasChildren := byte(0)
	if len(node.children) > 0 {
		hasChildren = 1
	}
	s.data = append(s.data, hasChildren)
	if hasChildren == 0 {
		return nil
	}

	clusters := clusterSpans(sortedChildBytes(node.children))
	// Largest cluster first; ties keep the ascending-min-byte discovery
	// order, so layout is fully deterministic for a given (keys, width).
	sort.SliceStable(clusters, func(i, j int) bool {
		return clusters[i].size() > clusters[j].size()
	})

	type patch struct {
		b   byte
		pos int
	}
	var patches []patch
	nextClusterPatchPos := -1

	for _, cl := range clusters {
		clusterPos := len(s.data)
		if nextClusterPatchPos >= 0 {
			if err := writeIdxAt(s.data, nextClusterPatchPos, s.width, uint64(clusterPos)); err != nil {
				return err
			}
		}
		nextClusterPatchPos = reserveIdx(&s.data, s.width)
		s.data = append(s.data, cl.min, cl.max)
		for c := int(cl.min); c <= int(cl.max); c++ {
			if _, ok := node.children[byte(c)]; ok {
				pos := reserveIdx(&s.data, s.width)
				patches = append(patches, patch{byte(c), pos})
			} else {
				// Gap: known to be absent right now, so write the zero
				// sentinel directly rather than reserving a filler.
				if err := appendIdx(&s.data, s.width, 0); err != nil {
					return err
				}
			}
		}
	}
	// Terminate the chain: the last cluster's next-cluster-offset is zero.
	if err := writeIdxAt(s.data, nextClusterPatchPos, s.width, 0); err != nil {
		return err
	}

	// Emit children in cluster (largest-first) then ascending-byte order;
	// this order determines value-table indices.
	for _, p := range patches {
		childPos := len(s.data)
		if err := writeIdxAt(s.data, p.pos, s.width, uint64(childPos)); err != nil {
			return err
		}
		if err := s.serializeNode(node.children[p.b]); err != nil {
			return err
		}
	}
	return nil
}

func sortedChildBytes[V any](children map[byte]*builderNode[V]) []byte {
	out := make([]byte, 0, len(children))
	for c := range children {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// clusterSpans partitions sorted, already-deduplicated child bytes into
// clusters using the bounded-gap rule: a new cluster starts whenever the
// next byte lies strictly more than maxGap positions beyond the previous
// byte of the current cluster.
func clusterSpans(sortedBytes []byte) []clusterSpan {
	var clusters []clusterSpan
	for _, c := range sortedBytes {
		if len(clusters) == 0 {
			clusters = append(clusters, clusterSpan{min: c, max: c})
			continue
		}
		last := &clusters[len(clusters)-1]
		if int(last.max)+maxGap < int(c) {
			clusters = append(clusters, clusterSpan{min: c, max: c})
		} else {
			last.max = c
		}
	}
	return clusters
}
