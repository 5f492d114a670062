// Package runtime manages build containers backed by containerd.
//
// A [Runtime] connects to a containerd daemon, imports an OCI image archive
// containing the RPM build toolchain, and starts a long-running container
// from it. Package directories are copied into the [Container] as tar
// streams, rpmbuild is executed inside it, and the resulting RPMs are copied
// back out. The container must be destroyed when the build phase ends to
// release its snapshot and task.
//
// Example usage:
//
//	rt, err := runtime.New("/run/containerd/containerd.sock", "rpmlb", logger)
//	if err != nil {
//	    return err
//	}
//	defer rt.Close()
//
//	ctr, err := rt.Start(ctx, "fedora-rpmbuild.tar", "rpmlb-build")
//	if err != nil {
//	    return err
//	}
//	defer ctr.Destroy(ctx)
//
//	result, err := ctr.Exec(ctx, "rpmbuild -ba foo.spec", nil, "/build/foo")
//	if err != nil {
//	    return err
//	}
package runtime
