package filesystem

import "golang.org/x/sys/unix"

// accessFlags reports if the effective user may read and write a path.
func (f *Handler) accessFlags(path string) (readable bool, writable bool) {
	readable = f.unixHandler.Access(path, unix.R_OK) == nil
	writable = f.unixHandler.Access(path, unix.W_OK) == nil

	return readable, writable
}
