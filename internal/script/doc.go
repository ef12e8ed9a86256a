// Package script reads page-event scripts: YAML or JSON documents listing
// pages, their optional backgrounds, and the drawing operations the CLI
// replays into a pdf2html.Renderer.
//
// A minimal script:
//
//	pages:
//	  - width: 612
//	    height: 792
//	    background: scan-1.png
//	    ops:
//	      - font: {name: F1, family: Times}
//	      - size: 12
//	      - move: [72, 720]
//	      - text: Hello
//
// Sizes and positions are in points. Background paths are relative to the
// script file.
package script
