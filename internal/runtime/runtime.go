package runtime

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"
	"os"
	goruntime "runtime"

	containerd "github.com/containerd/containerd/v2/client"
	"github.com/containerd/containerd/v2/core/images"
	"github.com/containerd/errdefs"
	"github.com/containerd/platforms"
)

const (

	// Default containerd socket address.
	DefaultAddress = "/run/containerd/containerd.sock"

	// Default containerd namespace for build containers.
	DefaultNamespace = "rpmlb"

	// Snapshotter used for container filesystems. fuse-overlayfs provides
	// overlay semantics without requiring root privileges.
	snapshotter = "fuse-overlayfs"

	// OCI runtime shim for running containers.
	ociRuntime = "io.containerd.runc.v2"
)

// Manages the containerd client for build containers.
type Runtime struct {
	client *containerd.Client // Containerd client for managing containers and images.
	logger *slog.Logger       // Logger for runtime events.
}

// Creates a runtime connected to the containerd socket at the given address.
//
// Empty address and namespace select [DefaultAddress] and
// [DefaultNamespace]. The runtime must be closed when no longer needed.
func New(address, namespace string, logger *slog.Logger) (*Runtime, error) {
	if address == "" {
		address = DefaultAddress
	}
	if namespace == "" {
		namespace = DefaultNamespace
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	client, err := containerd.New(address, containerd.WithDefaultNamespace(namespace))
	if err != nil {
		return nil, fmt.Errorf("%w: connect %s: %w", ErrRuntime, address, err)
	}
	return &Runtime{client: client, logger: logger}, nil
}

// Closes the containerd client connection.
func (rt *Runtime) Close() error {
	return rt.client.Close()
}

// Imports an OCI archive and starts a build container from it.
//
// The archive is imported into containerd's content store, tagged with a
// name derived from its path and unpacked for the host platform. A
// container with a fresh snapshot is created and a long-running task
// (sleep infinity) is started so that subsequent Exec calls have a running
// process to attach to. Any existing container with the same ID is removed
// first.
func (rt *Runtime) Start(ctx context.Context, archive, id string) (*Container, error) {
	platform := defaultPlatform()
	tag := imageTag(archive)

	source, err := rt.importArchive(ctx, archive)
	if err != nil {
		return nil, fmt.Errorf("%w: import %s: %w", ErrRuntime, archive, err)
	}
	if err := rt.tagImage(ctx, source, tag); err != nil {
		return nil, fmt.Errorf("%w: tag %s: %w", ErrRuntime, tag, err)
	}

	image, err := rt.resolveImage(ctx, tag, platform)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRuntime, err)
	}
	if err := image.Unpack(ctx, snapshotter); err != nil {
		return nil, fmt.Errorf("%w: unpack %s: %w", ErrRuntime, tag, err)
	}

	c := &Container{
		client:   rt.client,
		id:       id,
		platform: platform,
		logger:   rt.logger.With("container", id),
	}

	// Remove any stale container from a previous run with the same ID.
	c.remove(ctx)

	ctr, err := c.create(ctx, image)
	if err != nil {
		return nil, fmt.Errorf("%w: create container: %w", ErrRuntime, err)
	}

	if err := c.startTask(ctx, ctr); err != nil {
		ctr.Delete(ctx, containerd.WithSnapshotCleanup)
		return nil, fmt.Errorf("%w: start task: %w", ErrRuntime, err)
	}

	c.logger.Debug("container started", "image", tag, "platform", platform)
	return c, nil
}

// Imports an OCI archive into the content store.
//
// The archive must contain exactly one image, which may be a
// multi-platform index.
func (rt *Runtime) importArchive(ctx context.Context, path string) (images.Image, error) {
	fh, err := os.Open(path)
	if err != nil {
		return images.Image{}, err
	}
	defer fh.Close()

	imported, err := rt.client.Import(ctx, fh)
	if err != nil {
		return images.Image{}, err
	}

	switch len(imported) {
	case 0:
		return images.Image{}, ErrEmptyArchive
	case 1:
		return imported[0], nil
	}
	return images.Image{}, ErrMultipleImages
}

// Tags an imported image under a deterministic name.
//
// Updates the tag if it already exists. Removes the source record when
// its name differs from the tag to avoid duplicates.
func (rt *Runtime) tagImage(ctx context.Context, source images.Image, tag string) error {
	is := rt.client.ImageService()

	img := images.Image{
		Name:   tag,
		Target: source.Target,
	}

	if _, err := is.Create(ctx, img); err != nil {
		if !errdefs.IsAlreadyExists(err) {
			return err
		}
		if _, err := is.Update(ctx, img, "target"); err != nil {
			return err
		}
	}

	if source.Name != tag {
		_ = is.Delete(ctx, source.Name)
	}

	return nil
}

// Looks up a tagged image and selects the manifest for the given platform.
func (rt *Runtime) resolveImage(ctx context.Context, tag, platform string) (containerd.Image, error) {
	p, err := platforms.Parse(platform)
	if err != nil {
		return nil, err
	}

	img, err := rt.client.ImageService().Get(ctx, tag)
	if err != nil {
		return nil, err
	}

	return containerd.NewImageWithPlatform(rt.client, img, platforms.Only(p)), nil
}

// Produces a containerd image tag from an archive path.
//
// The path is hashed so the tag is a valid OCI reference regardless of the
// characters in the path.
func imageTag(path string) string {
	h := sha256.Sum256([]byte(path))
	return fmt.Sprintf("rpmlb/%s:latest", hex.EncodeToString(h[:]))
}

// Returns the OCI platform for the host architecture.
func defaultPlatform() string {
	return platforms.Format(platforms.Normalize(platforms.Platform{OS: "linux", Architecture: goruntime.GOARCH}))
}
