// Package scene turns a small YAML document into a widget tree. It is the
// driver surface for the graft CLI and for integration tests: a scene file
// describes nested label/box/row nodes, Load turns it into widgets, and the
// reconciler mirrors those into backend nodes.
//
// A scene document looks like:
//
//	version: 1
//	root:
//	  kind: row
//	  children:
//	    - kind: label
//	      key: greeting
//	      text: "hello"
//	    - kind: box
//	      children:
//	        - kind: label
//	          text: "world"
//
// Keys become reconciliation identities: a keyed node keeps its element (and
// backend node) across edits that move it within its parent.
package scene
