// Package download provides the downloader backends of the download phase.
//
// A downloader materializes one directory per package, named after the
// package, inside the package's numbered directory. Backends are selected by
// name:
//
//	none    expects the package directories to exist already
//	local   copies <source-directory>/<name>
//	rhpkg   checks the package out with rhpkg and switches to a branch
//	fedpkg  checks the package out with fedpkg and switches to a branch
//	custom  runs the download commands of a custom file
//
// Example usage:
//
//	d, err := download.New("rhpkg")
//	if err != nil {
//		return err
//	}
//	err = runner.Run(ctx, session, pipeline.DownloadPhase(d), pipeline.ResumeBypass, opts)
package download
