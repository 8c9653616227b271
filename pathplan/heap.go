package pathplan

// nodeItem and nodePQ mirror dijkstra.nodeItem/nodePQ verbatim in shape,
// generalized from int64 distances to float64 Euclidean distances. The
// lazy-decrease-key discipline (push a new entry instead of mutating the
// heap in place, skip stale entries via a visited set on pop) is unchanged.

type nodeItem struct {
	id   string
	dist float64
}

type nodePQ []*nodeItem

func (pq nodePQ) Len() int            { return len(pq) }
func (pq nodePQ) Less(i, j int) bool  { return pq[i].dist < pq[j].dist }
func (pq nodePQ) Swap(i, j int)       { pq[i], pq[j] = pq[j], pq[i] }
func (pq *nodePQ) Push(x interface{}) { *pq = append(*pq, x.(*nodeItem)) }
func (pq *nodePQ) Pop() interface{} {
	old := *pq
	n := len(old)
	item := old[n-1]
	*pq = old[:n-1]
	return item
}
