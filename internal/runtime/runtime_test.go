package runtime

import (
	"testing"

	"github.com/containerd/platforms"
	"github.com/google/go-cmp/cmp"
	specs "github.com/opencontainers/runtime-spec/specs-go"
)

func TestImageTag(t *testing.T) {
	tests := []struct {
		archive string
		want    string
	}{
		{
			archive: "/srv/images/epel7.tar",
			want:    "rpmlb/e0b2e051406a016a96ff78c5b6509d09b55c27307befd1030698c8b331549e07:latest",
		},
	}
	for _, tt := range tests {
		t.Run(tt.archive, func(t *testing.T) {
			if got := imageTag(tt.archive); got != tt.want {
				t.Errorf("imageTag(%q) = %q, want %q", tt.archive, got, tt.want)
			}
		})
	}

	if imageTag("/srv/images/epel7.tar") == imageTag("/srv/images/fedora26.tar") {
		t.Error("different archives share a tag")
	}
}

func TestDefaultPlatform(t *testing.T) {
	p, err := platforms.Parse(defaultPlatform())
	if err != nil {
		t.Fatalf("parse %q: %v", defaultPlatform(), err)
	}
	if p.OS != "linux" {
		t.Errorf("OS = %q, want linux regardless of the host", p.OS)
	}
	if want := platforms.DefaultSpec().Architecture; p.Architecture != want {
		t.Errorf("Architecture = %q, want %q", p.Architecture, want)
	}
}

func TestOverlayProcess(t *testing.T) {
	base := specs.Process{
		Terminal: true,
		Args:     []string{"sleep", "infinity"},
		Env:      []string{"PATH=/usr/bin:/bin", "HOME=/root"},
		Cwd:      "/",
	}

	tests := []struct {
		name    string
		env     []string
		workdir string
		want    specs.Process
	}{
		{
			name: "base values kept",
			want: specs.Process{
				Args: []string{"sh", "-c", "rpmbuild -ba foo.spec"},
				Env:  []string{"PATH=/usr/bin:/bin", "HOME=/root"},
				Cwd:  "/",
			},
		},
		{
			name:    "env merged and workdir replaced",
			env:     []string{"LC_ALL=C", "HOME=/build"},
			workdir: "/build/foo",
			want: specs.Process{
				Args: []string{"sh", "-c", "rpmbuild -ba foo.spec"},
				Env:  []string{"HOME=/build", "LC_ALL=C", "PATH=/usr/bin:/bin"},
				Cwd:  "/build/foo",
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := overlayProcess(base, tt.env, tt.workdir, []string{"sh", "-c", "rpmbuild -ba foo.spec"})
			if diff := cmp.Diff(tt.want, *got); diff != "" {
				t.Errorf("overlayProcess() mismatch (-want +got):\n%s", diff)
			}
		})
	}

	if !base.Terminal || base.Args[0] != "sleep" {
		t.Errorf("base process was modified: %+v", base)
	}
}
