// Package lnode keeps the data records attached to the locally owned nodes
// of a Lagrangian mesh and moves them between processes when node ownership
// changes.
//
// A NodeSet maps a node index to the ordered list of records attached to
// that node (e.g. a rodforce.Spec and a springforce.Spec). Export packs a
// batch of nodes into a single buffer sized from the records' upper bounds
// and drops them locally; Import rebuilds the batch on the destination and
// translates all node indices into the destination's local numbering.
//
// Batch Layout:
//
//	node count     int
//	per node:
//	  node index   int
//	  item list    streamable.Manager.PackList
//
// Import is all or nothing: if any record of a batch cannot be rebuilt, no
// node of the batch is inserted.
//
// Metrics:
//
//	Every NodeSet keeps a go-metrics registry (see Metrics) with counters for
//	exported and imported nodes and a histogram of batch sizes in bytes.
package lnode
