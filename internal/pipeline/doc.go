// Package pipeline runs the download and build phases over a work session.
//
// Both phases follow the same template: a Before hook, one Process call per
// package inside the package's numbered directory, and an After hook. The
// [Runner] decides which packages are skipped (resume position, target
// distribution) and aborts at the first error. The download phase runs in
// the numbered directory; the build phase additionally enters the package
// directory created by the download phase.
//
// Example usage:
//
//	d, _ := download.New("local")
//	b, _ := build.New("mock")
//	p := pipeline.Pipeline{
//		Runner:     &pipeline.Runner{Logger: logger},
//		Downloader: d,
//		Builder:    b,
//	}
//	if err := p.Run(ctx, session, opts); err != nil {
//		// handle error
//	}
package pipeline
