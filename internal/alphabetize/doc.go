// Package alphabetize sorts the children of every container in a host's forest
// by name while leaving every node's visibility state as it was before the run.
//
// The host can only reorder through a destructive relink (unlink, then link,
// which appends), and a relink resets transient visibility. A run therefore
// snapshots the whole forest first, replays the sorted order as a sequence of
// relinks restoring each container as soon as it is relinked, and finishes
// with one global pass that restores the transient flag of every leaf.
//
// A run is not transactional. If a host call fails, the error is returned and
// the forest is left partially sorted.
package alphabetize
