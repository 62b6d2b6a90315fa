package source

import (
	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
)

// nativeFS is a billy.Filesystem backed directly by the os package.
// Relative paths resolve against the working directory and absolute paths
// are left alone, unlike osfs.New which roots everything under a base dir.
type nativeFS struct {
	osfs.ChrootOS
}

// Chroot returns a filesystem rooted at path.
//
//nolint:ireturn // signature is dictated by billy.Chroot.
func (n *nativeFS) Chroot(path string) (billy.Filesystem, error) {
	return osfs.New(path), nil
}

// Root returns the root path for this filesystem.
func (n *nativeFS) Root() string {
	return "/"
}

// NativeFS returns a filesystem that behaves like the host filesystem.
//
//nolint:ireturn // billy.Filesystem is the abstraction callers program against.
func NativeFS() billy.Filesystem {
	return &nativeFS{}
}
