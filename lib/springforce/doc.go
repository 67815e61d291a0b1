// Package springforce provides the node data record for the linear and
// nonlinear springs anchored at a single mesh node. Each spring has a peer
// node, the index of the force function that evaluates it and a parameter
// vector whose length depends on that force function.
//
// The record is shipped through the same streamable.Manager as
// rodforce.Spec; the class ID written in front of every record decides which
// factory rebuilds it.
//
// Wire Format (ints 4 bytes, doubles 8 bytes, big-endian):
//
//	spring count           int
//	master index           int
//	peer indices           spring count ints
//	force function idxs    spring count ints
//	per spring:
//	  parameter count      int
//	  parameters           parameter count doubles
package springforce
