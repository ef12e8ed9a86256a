// Package assets provides the fixed HTML and CSS fragments that frame every
// generated document.
//
// Four fragments are required:
//
//	head.html  document start, up to where the style sheet goes
//	neck.html  inserted after the style sheet link or inline style block
//	tail.html  document end
//	base.css   rules prefixed onto every generated style sheet
//
// Fragments are embedded in the binary. A custom directory holding any
// subset of them can be layered on top with NewResolver; missing files fall
// back to the embedded copies.
package assets
