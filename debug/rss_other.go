//go:build !(linux || darwin || freebsd || netbsd || openbsd || windows)

package debug

import "errors"

func maxRSS() (uint64, error) { return 0, errors.New("rss not supported on this platform") }
