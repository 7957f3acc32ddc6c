package circarr

import (
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"golang.org/x/term"
	"xorkevin.dev/kerrors"
	"xorkevin.dev/kfs"
)

type (
	// TermConfig configures the terminal used by the cli
	TermConfig struct {
		StdinFd int
		Stdin   io.Reader
		Stdout  io.Writer
		Stderr  io.Writer
		// Fsys resolves script paths. Defaults to the working directory.
		Fsys fs.FS
		Exit func(code int)
	}

	terminal struct {
		stdinfd int
		stdin   io.Reader
		stdout  io.Writer
		stderr  io.Writer
		fsys    fs.FS
		osfs    bool
		exit    func(code int)
	}
)

func newTerminal(config *TermConfig) *terminal {
	if config == nil {
		config = &TermConfig{
			StdinFd: int(os.Stdin.Fd()),
			Stdin:   os.Stdin,
			Stdout:  os.Stdout,
			Stderr:  os.Stderr,
			Exit:    os.Exit,
		}
	}
	fsys := config.Fsys
	osfs := false
	if fsys == nil {
		fsys = kfs.DirFS(".")
		osfs = true
	}
	return &terminal{
		stdinfd: config.StdinFd,
		stdin:   config.Stdin,
		stdout:  config.Stdout,
		stderr:  config.Stderr,
		fsys:    fsys,
		osfs:    osfs,
		exit:    config.Exit,
	}
}

// isInteractive reports whether stdin is attached to a terminal
func (t *terminal) isInteractive() bool {
	return term.IsTerminal(t.stdinfd)
}

// open opens a script. Paths outside the working directory tree, such as
// absolute paths, are rooted at their parent dir when using the os
// filesystem.
func (t *terminal) open(name string) (io.ReadCloser, error) {
	fsys := t.fsys
	if t.osfs && !fs.ValidPath(name) {
		p, err := filepath.Abs(name)
		if err != nil {
			return nil, kerrors.WithMsg(err, "Failed to resolve file path")
		}
		fsys = kfs.DirFS(filepath.Dir(p))
		name = filepath.Base(p)
	}
	f, err := fsys.Open(name)
	if err != nil {
		return nil, kerrors.WithMsg(err, "Failed to open file")
	}
	return f, nil
}
