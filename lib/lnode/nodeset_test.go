package lnode

import (
	"errors"
	"reflect"
	"testing"

	"github.com/ValentinKolb/forcespec/lib/rodforce"
	"github.com/ValentinKolb/forcespec/lib/springforce"
	"github.com/ValentinKolb/forcespec/lib/stream"
	"github.com/ValentinKolb/forcespec/lib/streamable"
	gometrics "github.com/rcrowley/go-metrics"
)

// newProcess simulates one participant: a registry with all record types
// registered in the fixed order, and an empty node set.
func newProcess(t *testing.T) *NodeSet {
	t.Helper()
	m := streamable.NewManager()
	if err := rodforce.Register(m); err != nil {
		t.Fatalf("rodforce.Register failed: %v", err)
	}
	if err := springforce.Register(m); err != nil {
		t.Fatalf("springforce.Register failed: %v", err)
	}
	return NewNodeSet(m)
}

func rodSpec(t *testing.T, master int, peers ...int) *rodforce.Spec {
	t.Helper()
	params := make([]rodforce.MaterialParams, len(peers))
	for i := range params {
		params[i][0] = float64(master)
		params[i][9] = float64(peers[i])
	}
	s, err := rodforce.NewSpecFrom(master, peers, params)
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func springSpec(t *testing.T, master int, peers ...int) *springforce.Spec {
	t.Helper()
	fcns := make([]int, len(peers))
	params := make([][]float64, len(peers))
	for i := range peers {
		params[i] = []float64{1, float64(i)}
	}
	s, err := springforce.NewSpecFrom(master, peers, fcns, params)
	if err != nil {
		t.Fatal(err)
	}
	return s
}

// TestMigration tests moving mixed record lists between two node sets
func TestMigration(t *testing.T) {
	src, dst := newProcess(t), newProcess(t)

	src.Put(1, rodSpec(t, 1, 2, 3), springSpec(t, 1, 4))
	src.Put(2, rodSpec(t, 2))
	src.Put(5, springSpec(t, 5, 6, 7))

	data, err := src.Export([]int{1, 5})
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}
	if !reflect.DeepEqual(src.Indices(), []int{2}) {
		t.Errorf("source holds %v after export, want [2]", src.Indices())
	}

	n, err := dst.Import(data, 100)
	if err != nil {
		t.Fatalf("Import failed: %v", err)
	}
	if n != 2 {
		t.Errorf("Import() = %d, want 2", n)
	}
	if !reflect.DeepEqual(dst.Indices(), []int{101, 105}) {
		t.Fatalf("destination holds %v, want [101 105]", dst.Indices())
	}

	items, _ := dst.Get(101)
	if len(items) != 2 {
		t.Fatalf("node 101 has %d items, want 2", len(items))
	}
	rod, ok := items[0].(*rodforce.Spec)
	if !ok {
		t.Fatalf("item 0 of node 101 is %T, want *rodforce.Spec", items[0])
	}
	if rod.MasterIndex() != 101 || !reflect.DeepEqual(rod.PeerIndices(), []int{102, 103}) {
		t.Errorf("rod spec = master %d, peers %v", rod.MasterIndex(), rod.PeerIndices())
	}
	if rod.MaterialParams()[1][9] != 3 {
		t.Errorf("material params were translated: %v", rod.MaterialParams()[1])
	}
	spring, ok := items[1].(*springforce.Spec)
	if !ok {
		t.Fatalf("item 1 of node 101 is %T, want *springforce.Spec", items[1])
	}
	if spring.MasterIndex() != 101 || !reflect.DeepEqual(spring.PeerIndices(), []int{104}) {
		t.Errorf("spring spec = master %d, peers %v", spring.MasterIndex(), spring.PeerIndices())
	}

	exported := src.Metrics().Get("lnode.exported_nodes").(gometrics.Counter).Count()
	imported := dst.Metrics().Get("lnode.imported_nodes").(gometrics.Counter).Count()
	if exported != 2 || imported != 2 {
		t.Errorf("exported %d / imported %d nodes, want 2 / 2", exported, imported)
	}
}

// TestExportBound tests that the exported batch fits into the buffer sized from the upper bounds
func TestExportBound(t *testing.T) {
	src := newProcess(t)
	var indices []int
	for i := 0; i < 50; i++ {
		peers := make([]int, i)
		for j := range peers {
			peers[j] = j
		}
		src.Put(i, rodSpec(t, i, peers...), springSpec(t, i, peers...))
		indices = append(indices, i)
	}

	bound := stream.IntSize
	for _, idx := range indices {
		items, _ := src.Get(idx)
		bound += stream.IntSize + src.manager.DataStreamSizeList(items)
	}

	data, err := src.Export(indices)
	if err != nil {
		t.Fatal(err)
	}
	if len(data) > bound {
		t.Errorf("batch has %d bytes, bound is %d", len(data), bound)
	}
	if src.Len() != 0 {
		t.Errorf("source still holds %d nodes", src.Len())
	}
}

// TestExportUnknownNode tests that a failed export keeps all nodes
func TestExportUnknownNode(t *testing.T) {
	src := newProcess(t)
	src.Put(1, rodSpec(t, 1, 2))

	if _, err := src.Export([]int{1, 9}); !errors.Is(err, ErrUnknownNode) {
		t.Errorf("Export error = %v, want ErrUnknownNode", err)
	}
	if src.Len() != 1 {
		t.Errorf("failed export removed nodes, %d left", src.Len())
	}
}

// TestImportIsAtomic tests that broken batches leave the node set untouched
func TestImportIsAtomic(t *testing.T) {
	src, dst := newProcess(t), newProcess(t)
	src.Put(1, rodSpec(t, 1, 2))
	src.Put(2, springSpec(t, 2, 3))
	data, err := src.Export([]int{1, 2})
	if err != nil {
		t.Fatal(err)
	}

	for cut := 0; cut < len(data); cut++ {
		if _, err := dst.Import(data[:cut], 0); !errors.Is(err, stream.ErrTruncated) {
			t.Errorf("cut at %d: error = %v, want ErrTruncated", cut, err)
		}
		if dst.Len() != 0 {
			t.Fatalf("cut at %d: %d nodes inserted from a broken batch", cut, dst.Len())
		}
	}

	if _, err := dst.Import(append(append([]byte{}, data...), 0), 0); !errors.Is(err, ErrTrailingData) {
		t.Errorf("trailing byte error = %v, want ErrTrailingData", err)
	}

	dst.Put(12, rodSpec(t, 12))
	if _, err := dst.Import(data, 10); !errors.Is(err, ErrNodeExists) {
		t.Errorf("colliding import error = %v, want ErrNodeExists", err)
	}
	if !reflect.DeepEqual(dst.Indices(), []int{12}) {
		t.Errorf("colliding import changed the node set: %v", dst.Indices())
	}
}
