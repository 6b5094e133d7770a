package disc

import (
	"strings"
	"testing"
)

const mountsFixture = `proc /proc proc rw,nosuid,nodev,noexec 0 0
/dev/nvme0n1p2 / ext4 rw,relatime 0 0
/dev/sr0 /run/media/user/ONE_PIECE\040S3D1 udf ro,nosuid,nodev 0 0
tmpfs /tmp tmpfs rw,nosuid,nodev 0 0
`

func TestFindMountPoint(t *testing.T) {
	got, err := findMountPoint(strings.NewReader(mountsFixture), "/dev/sr0")
	if err != nil {
		t.Fatalf("findMountPoint: %v", err)
	}
	want := "/run/media/user/ONE_PIECE S3D1"
	if got != want {
		t.Errorf("mount point = %q, want %q", got, want)
	}
}

func TestFindMountPointNotMounted(t *testing.T) {
	got, err := findMountPoint(strings.NewReader(mountsFixture), "/dev/sr1")
	if err != nil {
		t.Fatalf("findMountPoint: %v", err)
	}
	if got != "" {
		t.Errorf("expected no mount point for an unmounted device, got %q", got)
	}
}

func TestDecodeMountField(t *testing.T) {
	if got := decodeMountField(`/media/A\040B\134C`); got != `/media/A B\C` {
		t.Errorf("decodeMountField = %q", got)
	}
}
