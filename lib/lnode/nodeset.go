package lnode

import (
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/ValentinKolb/forcespec/lib/stream"
	"github.com/ValentinKolb/forcespec/lib/streamable"
	"github.com/lni/dragonboat/v4/logger"
	"github.com/puzpuzpuz/xsync/v3"
	gometrics "github.com/rcrowley/go-metrics"
)

var log = logger.GetLogger("lnode")

var (
	// ErrUnknownNode is returned when a node that is not held locally is exported
	ErrUnknownNode = errors.New("node not held by this node set")
	// ErrNodeExists is returned when an imported node is already held locally
	ErrNodeExists = errors.New("node already held by this node set")
	// ErrTrailingData is returned when a batch contains bytes after its last node
	ErrTrailingData = errors.New("trailing data after last node")
)

// NodeSet holds the records of all locally owned nodes
type NodeSet struct {
	manager *streamable.Manager
	nodes   *xsync.MapOf[int, []streamable.Streamable]

	// batchMu serializes Put, Export and Import so a batch is applied as a whole.
	// Reads (Get, Len, Indices) do not take it.
	batchMu sync.Mutex

	metrics       gometrics.Registry
	exportedNodes gometrics.Counter
	importedNodes gometrics.Counter
	batchBytes    gometrics.Histogram
}

// NewNodeSet creates an empty node set that packs records through the manager
func NewNodeSet(manager *streamable.Manager) *NodeSet {
	registry := gometrics.NewRegistry()
	return &NodeSet{
		manager:       manager,
		nodes:         xsync.NewMapOf[int, []streamable.Streamable](),
		metrics:       registry,
		exportedNodes: gometrics.NewRegisteredCounter("lnode.exported_nodes", registry),
		importedNodes: gometrics.NewRegisteredCounter("lnode.imported_nodes", registry),
		batchBytes:    gometrics.NewRegisteredHistogram("lnode.batch_bytes", registry, gometrics.NewExpDecaySample(1028, 0.015)),
	}
}

// Metrics returns the registry holding the migration metrics of this node set
func (n *NodeSet) Metrics() gometrics.Registry {
	return n.metrics
}

// Put appends records to a node, creating the node if necessary
func (n *NodeSet) Put(idx int, items ...streamable.Streamable) {
	n.batchMu.Lock()
	defer n.batchMu.Unlock()

	n.nodes.Compute(idx, func(old []streamable.Streamable, _ bool) ([]streamable.Streamable, bool) {
		return append(old, items...), false
	})
}

// Get returns the records of a node
func (n *NodeSet) Get(idx int) ([]streamable.Streamable, bool) {
	return n.nodes.Load(idx)
}

// Len returns the number of nodes held
func (n *NodeSet) Len() int {
	return n.nodes.Size()
}

// Indices returns the indices of all held nodes in ascending order
func (n *NodeSet) Indices() []int {
	indices := make([]int, 0, n.nodes.Size())
	n.nodes.Range(func(idx int, _ []streamable.Streamable) bool {
		indices = append(indices, idx)
		return true
	})
	slices.Sort(indices)
	return indices
}

// --------------------------------------------------------------------------
// Migration
// --------------------------------------------------------------------------

// Export packs the given nodes with all their records and removes them from the set.
// Nothing is removed if packing fails.
func (n *NodeSet) Export(indices []int) ([]byte, error) {
	n.batchMu.Lock()
	defer n.batchMu.Unlock()

	batch := make([][]streamable.Streamable, len(indices))
	seen := make(map[int]struct{}, len(indices))
	size := stream.IntSize
	for i, idx := range indices {
		if _, dup := seen[idx]; dup {
			return nil, fmt.Errorf("node %d requested twice", idx)
		}
		seen[idx] = struct{}{}
		items, ok := n.nodes.Load(idx)
		if !ok {
			return nil, fmt.Errorf("%w: %d", ErrUnknownNode, idx)
		}
		batch[i] = items
		size += stream.IntSize + n.manager.DataStreamSizeList(items)
	}

	w := stream.NewWriter(size)
	if err := w.WriteInt(len(indices)); err != nil {
		return nil, err
	}
	for i, idx := range indices {
		if err := w.WriteInt(idx); err != nil {
			return nil, fmt.Errorf("error writing index of node %d: %w", idx, err)
		}
		if err := n.manager.PackList(w, batch[i]); err != nil {
			return nil, fmt.Errorf("error packing node %d: %w", idx, err)
		}
	}

	for _, idx := range indices {
		n.nodes.Delete(idx)
	}

	n.exportedNodes.Inc(int64(len(indices)))
	n.batchBytes.Update(int64(w.Len()))
	log.Debugf("exported %d nodes in %d bytes (bound %d)", len(indices), w.Len(), size)
	return w.Bytes(), nil
}

// Import rebuilds a batch written by Export. The offset is added to every node
// index, including the indices inside the records. It returns the number of
// imported nodes.
func (n *NodeSet) Import(data []byte, offset int) (int, error) {
	r := stream.NewReader(data)

	count, err := r.ReadInt()
	if err != nil {
		return 0, fmt.Errorf("error reading node count: %w", err)
	}
	if count < 0 {
		return 0, fmt.Errorf("%w: %d nodes", stream.ErrInvalidLength, count)
	}
	// every node carries at least its index and item count
	if count > r.Remaining()/(2*stream.IntSize) {
		return 0, fmt.Errorf("%w: data too short for %d nodes", stream.ErrTruncated, count)
	}

	indices := make([]int, count)
	batch := make([][]streamable.Streamable, count)
	for i := 0; i < count; i++ {
		idx, err := r.ReadInt()
		if err != nil {
			return 0, fmt.Errorf("error reading index of node %d: %w", i, err)
		}
		items, err := n.manager.UnpackList(r, offset)
		if err != nil {
			return 0, fmt.Errorf("error unpacking node %d: %w", idx, err)
		}
		indices[i] = idx + offset
		batch[i] = items
	}
	if r.Remaining() != 0 {
		return 0, fmt.Errorf("%w: %d bytes", ErrTrailingData, r.Remaining())
	}

	n.batchMu.Lock()
	defer n.batchMu.Unlock()

	seen := make(map[int]struct{}, count)
	for _, idx := range indices {
		if _, ok := seen[idx]; ok {
			return 0, fmt.Errorf("%w: %d appears twice in batch", ErrNodeExists, idx)
		}
		seen[idx] = struct{}{}
		if _, ok := n.nodes.Load(idx); ok {
			return 0, fmt.Errorf("%w: %d", ErrNodeExists, idx)
		}
	}
	for i, idx := range indices {
		n.nodes.Store(idx, batch[i])
	}

	n.importedNodes.Inc(int64(count))
	n.batchBytes.Update(int64(len(data)))
	log.Debugf("imported %d nodes (%d bytes) with offset %d", count, len(data), offset)
	return count, nil
}
