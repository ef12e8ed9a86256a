// Package pdf2html turns page-rendering events into an HTML document.
//
// An external renderer implements PageSource and drives a PageHandler page
// by page: BeginPage, graphics state changes, text, EndPage. The package
// tracks the state, emits positioned lines with interned style classes,
// optionally rasterizes a background per page, and assembles the result.
//
// # Quick Start
//
//	cfg := pdf2html.DefaultConfig("out")
//	cfg.LastPage = 10
//	cfg.SingleHTML = true
//
//	r, err := pdf2html.NewRenderer(cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	res, err := r.Process(ctx, src)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(res.OutputPath)
//
// # Output Modes
//
// Multi-file mode writes the deliverable, all.css and p<hex>.png
// backgrounds into the destination directory; the deliverable links the
// style sheet and references backgrounds by file name.
//
// Single-file mode stages the style sheet, the body (<output>.part) and the
// backgrounds, then concatenates them into one self-contained file with an
// inline style block and base64 image data. Staged files and the staging
// directory are removed when Process returns, whatever the outcome.
//
// # Backgrounds
//
// With Config.ProcessNonText set, each page is first rasterized by a
// BackgroundRenderer at Config.BackgroundResolution. A page whose background
// fails is emitted without one and Process returns a *BackgroundError along
// with the Result. WithStrictBackground turns that into a hard failure.
//
// # Errors
//
// Errors wrap the sentinels in errors.go and are checked with errors.Is.
// Page event ordering defects in the source are reported as *SequenceError.
package pdf2html
