// Package reconcile applies a virtual tree to a host document.
//
// The runtime talks to a Reconciler; Replacer is the reference strategy. It
// removes the host nodes of the previous generation and materializes the new
// tree wholesale. Diffing strategies are a drop-in replacement behind the
// same interface.
package reconcile
