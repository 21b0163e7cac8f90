package fileobject

import (
	"os"
	"syscall"
	"time"
)

// statTimes yields the access and change times of a file, falling back to
// the modification time when the file system does not provide them.
func statTimes(fi os.FileInfo) (accessed, changed time.Time) {
	st, ok := fi.Sys().(*syscall.Stat_t)
	if !ok {
		return fi.ModTime(), fi.ModTime()
	}
	return time.Unix(int64(st.Atim.Sec), int64(st.Atim.Nsec)), time.Unix(int64(st.Ctim.Sec), int64(st.Ctim.Nsec))
}
