// Package shape produces insertion orders that bias the shape of a binary search tree.
//
// Every strategy works on a set of distinct integers and returns a permutation of
// it; feeding that permutation through bst.Insert yields the intended shape.
package shape
