/*
Package bst implements the binary search tree operations behind Arbor.

All functions are pure recursive helpers over *domain.Node: insertion that
ignores duplicates, structural queries (height, count, leaves, balance factor),
and the three depth-first visit orders. An empty (nil) tree is valid input
everywhere and yields zero results.
*/
package bst
