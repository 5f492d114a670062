// Package build provides the builder backends of the build phase.
//
// A builder turns the package directory materialized by the download phase
// into RPMs. Backends are selected by name:
//
//	dummy      logs the package and builds nothing
//	mock       builds a source RPM and rebuilds it with mock
//	copr       builds a source RPM and submits it to a Copr repository
//	custom     runs the build commands of a custom file
//	container  runs rpmbuild inside a containerd build container
//
// Builders that produce RPMs apply the package's macros to its spec file
// first. Intermediate bootstrap builds additionally define _with_bootstrap.
//
// Example usage:
//
//	b, err := build.New("mock")
//	if err != nil {
//	    return err
//	}
//	err = runner.Run(ctx, session, pipeline.BuildPhase(b), pipeline.ResumeFromPosition, opts)
package build
