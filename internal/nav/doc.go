// Package nav models a documentation site's top navigation bar.
//
// A navigation tree is a Menu: an ordered list of Items. An Item is either a
// Link (a leaf that points at a page) or a Group (a labelled submenu). The two
// shapes are separate types, so an item can never carry both a link and
// children. Site returns the tree this repository publishes.
//
// The package is pure data plumbing: walking, normalizing, validating and
// encoding trees for the host site generator's configuration language.
package nav
