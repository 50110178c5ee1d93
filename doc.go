// Package labelprop is a small toolkit for graph-based semi-supervised
// classification: a handful of labeled nodes spread their classes over a
// weighted graph, and an active-learning loop decides whom to ask next.
//
// Everything is organized under five subpackages:
//
//	sparse/    — CSR matrices, triplet Builder, row normalization, sparse×dense products
//	graphgen/  — path, cycle, star, complete, clustered and random graphs as CSR
//	propagate/ — absorbing label propagation with class pseudo-nodes, Engine with cache
//	selector/  — candidate sets for the next query (Exhaustive, Walk)
//	active/    — query strategies, oracles and the Learner loop
//
// Quick ASCII example:
//
//	[0]───1───2───3───[4]
//	 c0               c1
//
// with node 0 labeled class 0 and node 4 class 1, nodes 1, 2, 3 end up with
// 0.75, 0.50 and 0.25 of class 0.
//
//	go get github.com/katalvlaran/labelprop
package labelprop
