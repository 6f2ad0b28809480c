package schema

import "golang.org/x/sys/unix"

// Metadata is the raw (Lstat) information about a filesystem element.
type Metadata struct {
	Inode      uint64
	Perms      uint32
	ModifiedAt unix.Timespec
	Size       uint64
	IsDir      bool
	IsRegular  bool
	IsSymlink  bool
	SymlinkTo  string
}
