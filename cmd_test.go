package circarr

import (
	"bytes"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/require"
	"xorkevin.dev/circarr/util/kjson"
	"xorkevin.dev/kfs"
)

type (
	testTerm struct {
		stdout bytes.Buffer
		stderr bytes.Buffer
		logs   bytes.Buffer
	}
)

func newTestCmd(tt *testTerm, config string, stdin string, fsys fstest.MapFS) *Cmd {
	var tfs fs.FS
	if fsys != nil {
		tfs = fsys
	}
	return NewCmd(Opts{
		Appname:      "circtest",
		Version:      Version{Num: "test", Hash: "dev"},
		Description:  "test circ cli",
		EnvPrefix:    "circtest",
		ConfigReader: strings.NewReader(config),
		LogWriter:    &tt.logs,
		TermConfig: &TermConfig{
			StdinFd: int(os.Stdin.Fd()),
			Stdin:   strings.NewReader(stdin),
			Stdout:  &tt.stdout,
			Stderr:  &tt.stderr,
			Fsys:    tfs,
			Exit:    func(code int) {},
		},
	})
}

func TestCmd(t *testing.T) {
	t.Parallel()

	const harry = `
items:
  - harry
  - hermione
  - ginny
  - ron
`

	for _, tc := range []struct {
		Test   string
		Config string
		Stdin  string
		Fsys   fstest.MapFS
		Args   []string
		Out    string
	}{
		{
			Test:   "shows items from the config",
			Config: harry,
			Args:   []string{"show"},
			Out:    "harry\nhermione\nginny\nron\n",
		},
		{
			Test:   "shows rotated items from args",
			Config: "",
			Args:   []string{"show", "--rotate=1", "harry", "hermione", "ginny", "ron"},
			Out:    "hermione\nginny\nron\nharry\n",
		},
		{
			Test:   "applies repeated rotations",
			Config: harry,
			Args:   []string{"show", "--rotate=-1", "-r", "-16", "--get", "1"},
			Out:    "harry\n",
		},
		{
			Test:   "gets a missing index",
			Config: harry,
			Args:   []string{"show", "--get", "15"},
			Out:    "None\n",
		},
		{
			Test:   "shows json",
			Config: harry,
			Args:   []string{"show", "--rotate=-2", "--format", "json"},
			Out:    "[\"ginny\",\"ron\",\"harry\",\"hermione\"]\n",
		},
		{
			Test:   "appends json items after args",
			Config: harry,
			Args:   []string{"show", "--items-json", `["ginny","ron"]`, "--rotate=-1", "harry", "hermione"},
			Out:    "ron\nharry\nhermione\nginny\n",
		},
		{
			Test:   "gets an item as json",
			Config: harry,
			Args:   []string{"show", "--rotate=1", "--get", "2", "--format", "json"},
			Out:    "\"ron\"\n",
		},
		{
			Test:   "gets a missing item as json",
			Config: harry,
			Args:   []string{"show", "--get", "15", "--format", "json"},
			Out:    "null\n",
		},
		{
			Test:   "gets an item as yaml",
			Config: harry + "format: yaml\n",
			Args:   []string{"show", "--get", "2"},
			Out:    "ginny\n",
		},
		{
			Test:   "uses the configured format",
			Config: harry + "format: yaml\n",
			Args:   []string{"show"},
			Out:    "- harry\n- hermione\n- ginny\n- ron\n",
		},
		{
			Test:   "execs a script file",
			Config: "",
			Fsys: fstest.MapFS{
				"ops.txt": &fstest.MapFile{
					Data: []byte("append harry\nappend hermione\nappend ginny\nappend ron\nrotate -2\nappend dobby\nprint\n"),
				},
			},
			Args: []string{"exec", "ops.txt"},
			Out:  "ginny\nron\nharry\nhermione\ndobby\n",
		},
		{
			Test:   "execs the configured script",
			Config: "script: conf.txt\n",
			Fsys: fstest.MapFS{
				"conf.txt": &fstest.MapFile{
					Data: []byte("append harry\nget 0\n"),
				},
			},
			Args: []string{"exec"},
			Out:  "harry\n",
		},
		{
			Test:   "execs a script from stdin",
			Config: "",
			Stdin:  "append harry\nappend ron\nrotate 1\nprint\n",
			Args:   []string{"exec", "-"},
			Out:    "ron\nharry\n",
		},
		{
			Test:   "runs the self test",
			Config: "",
			Args:   []string{"selftest"},
			Out:    "\n*** ALL TESTS PASSED; YOU MUST BE DIZZY WITH JOY! ***\n\n",
		},
		{
			Test:   "prints the version",
			Config: "",
			Args:   []string{"version"},
			Out:    "circtest test-dev\n",
		},
	} {
		tc := tc
		t.Run(tc.Test, func(t *testing.T) {
			t.Parallel()

			assert := require.New(t)

			var tt testTerm
			cmd := newTestCmd(&tt, tc.Config, tc.Stdin, tc.Fsys)
			assert.NoError(cmd.ExecArgs(tc.Args))
			assert.Equal(tc.Out, tt.stdout.String())
		})
	}

	for _, tc := range []struct {
		Test   string
		Config string
		Fsys   fstest.MapFS
		Args   []string
		Kind   error
	}{
		{
			Test:   "invalid config format",
			Config: "format: xml\n",
			Args:   []string{"show", "harry"},
			Kind:   ErrInvalidConfig,
		},
		{
			Test:   "invalid format flag",
			Config: "",
			Args:   []string{"show", "--format", "xml", "harry"},
			Kind:   ErrInvalidFormat,
		},
		{
			Test:   "malformed items json",
			Config: "",
			Args:   []string{"show", "--items-json", `["harry"`},
			Kind:   kjson.ErrInvalidJSON,
		},
		{
			Test:   "malformed config",
			Config: "items: [unterminated\n",
			Args:   []string{"show"},
			Kind:   ErrInvalidConfig,
		},
		{
			Test:   "invalid script",
			Config: "",
			Fsys: fstest.MapFS{
				"bad.txt": &fstest.MapFile{
					Data: []byte("append harry\nshuffle\n"),
				},
			},
			Args: []string{"exec", "bad.txt"},
			Kind: ErrInvalidOp,
		},
	} {
		tc := tc
		t.Run(tc.Test, func(t *testing.T) {
			t.Parallel()

			assert := require.New(t)

			var tt testTerm
			cmd := newTestCmd(&tt, tc.Config, "", tc.Fsys)
			err := cmd.ExecArgs(tc.Args)
			assert.Error(err)
			assert.True(errors.Is(err, tc.Kind))
			assert.Equal("", tt.stdout.String())
		})
	}

	t.Run("fails on a missing script file", func(t *testing.T) {
		t.Parallel()

		assert := require.New(t)

		var tt testTerm
		cmd := newTestCmd(&tt, "", "", fstest.MapFS{})
		assert.Error(cmd.ExecArgs([]string{"exec", "missing.txt"}))
	})

	t.Run("execs a script from the working filesystem", func(t *testing.T) {
		t.Parallel()

		assert := require.New(t)

		dir := t.TempDir()
		assert.NoError(kfs.WriteFile(kfs.DirFS(dir), "ops.txt", []byte("append harry\nappend ron\nrotate -1\nprint\n"), 0o644))

		var tt testTerm
		cmd := newTestCmd(&tt, "", "", nil)
		assert.NoError(cmd.ExecArgs([]string{"exec", filepath.Join(dir, "ops.txt")}))
		assert.Equal("ron\nharry\n", tt.stdout.String())

		tt.stdout.Reset()
		cmd = newTestCmd(&tt, "", "", nil)
		assert.Error(cmd.ExecArgs([]string{"exec", filepath.Join(dir, "missing.txt")}))
		assert.Equal("", tt.stdout.String())
	})

	t.Run("exits on error", func(t *testing.T) {
		t.Parallel()

		assert := require.New(t)

		var tt testTerm
		code := -1
		cmd := NewCmd(Opts{
			Appname:      "circtest",
			ConfigReader: strings.NewReader(""),
			LogWriter:    io.Discard,
			TermConfig: &TermConfig{
				StdinFd: int(os.Stdin.Fd()),
				Stdin:   strings.NewReader(""),
				Stdout:  &tt.stdout,
				Stderr:  &tt.stderr,
				Exit: func(c int) {
					code = c
				},
			},
		})
		cmd.cmd.SetArgs([]string{"show", "--format", "xml"})
		cmd.Execute()
		assert.Equal(1, code)
		assert.Contains(tt.stderr.String(), "Unknown format: xml")
	})
}

func TestSettings(t *testing.T) {
	t.Parallel()

	assert := require.New(t)

	s := newSettings(Opts{
		Appname:      "circtest",
		DefaultFile:  "circtest",
		EnvPrefix:    "circtestsettings",
		ConfigReader: strings.NewReader("logger:\n  level: DEBUG\nitems: harry,ron\n"),
	})
	assert.NoError(s.init(Flags{}))
	assert.Equal(Config{
		Logger: ConfigLogger{
			Level:  "DEBUG",
			Output: "STDERR",
		},
		Format: "text",
		Items:  []string{"harry", "ron"},
		Script: "",
	}, s.config)
	assert.Equal("DEBUG", s.logger().level)
}
