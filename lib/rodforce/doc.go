// Package rodforce provides the node data record that describes a network of
// Kirchhoff rods anchored at a single node of a Lagrangian mesh.
//
// A Spec stores the master node index, the index of the other endpoint of
// every rod and one tuple of NumMaterialParams material parameters per rod.
// The peer indices and the material parameters are parallel sequences: entry
// i of both refers to the same rod, and their common length is the number of
// rods. The package does not interpret the parameters; they are consumed by
// the force computation.
//
// Specs implement streamable.Streamable so the migration layer can move them
// between processes together with their node.
//
// Registration:
//
//	Register must be called once on every process, in the same order relative
//	to other record types, before any Spec is packed or unpacked:
//
//	  manager := streamable.NewManager()
//	  if err := rodforce.Register(manager); err != nil {
//	      // handle error
//	  }
//
// Wire Format (all ints 4 bytes, doubles 8 bytes, big-endian):
//
//	rod count          int
//	master index       int
//	peer indices       rod count ints
//	material params    rod count * NumMaterialParams doubles, rod by rod
//
// There is no version field. Changing the layout makes old and new streams
// incompatible without any way for the reader to notice.
package rodforce
