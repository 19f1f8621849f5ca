// Package modfs copies and removes mod files on disk.
package modfs

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/afero"
)

const (
	PakExt = ".pak"
	SigExt = ".sig"
)

// Pair is a .pak file and its matching .sig file.
type Pair struct {
	Pak string
	Sig string
}

// Stem returns the file name shared by the pak and sig.
func (p Pair) Stem() string {
	return strings.TrimSuffix(filepath.Base(p.Pak), PakExt)
}

// Validate checks the suffixes and that both files share a stem.
func (p Pair) Validate() error {
	if filepath.Ext(p.Pak) != PakExt {
		return fmt.Errorf("%s: expected a %s file", p.Pak, PakExt)
	}
	if filepath.Ext(p.Sig) != SigExt {
		return fmt.Errorf("%s: expected a %s file", p.Sig, SigExt)
	}
	if p.Stem() != strings.TrimSuffix(filepath.Base(p.Sig), SigExt) {
		return fmt.Errorf("%s and %s do not share a name", p.Pak, p.Sig)
	}
	return nil
}

// PairFor returns the pair for a .pak path, with the .sig beside it.
func PairFor(pakPath string) (Pair, error) {
	if filepath.Ext(pakPath) != PakExt {
		return Pair{}, fmt.Errorf("%s: expected a %s file", pakPath, PakExt)
	}
	return Pair{Pak: pakPath, Sig: strings.TrimSuffix(pakPath, PakExt) + SigExt}, nil
}

// FindPairs walks dir and pairs every .pak with its .sig. A .pak without
// a .sig is an error.
func FindPairs(afs afero.Fs, dir string) ([]Pair, error) {
	var pairs []Pair
	err := afero.Walk(afs, dir, func(path string, info fs.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() || filepath.Ext(path) != PakExt {
			return nil
		}
		pair, err := PairFor(path)
		if err != nil {
			return err
		}
		ok, err := afero.Exists(afs, pair.Sig)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("%s has no matching %s file", path, SigExt)
		}
		pairs = append(pairs, pair)
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(pairs, func(i, j int) bool { return pairs[i].Pak < pairs[j].Pak })
	return pairs, nil
}

// InstallDir is the directory a game loads mods from.
func InstallDir(gamePath, pathOffset, modsRelative string) string {
	return filepath.Join(gamePath, pathOffset, modsRelative)
}

// Runner performs file operations, or only prints them when Dry is set.
type Runner struct {
	Fs     afero.Fs
	Dry    bool
	Out    io.Writer
	Logger *slog.Logger
}

// NewRunner returns a runner on fs writing dry-run commands to out.
func NewRunner(afs afero.Fs, dry bool, out io.Writer) *Runner {
	return &Runner{Fs: afs, Dry: dry, Out: out, Logger: slog.Default()}
}

func (r *Runner) plan(format string, args ...any) {
	fmt.Fprintf(r.Out, format+"\n", args...)
}

// MkdirAll creates dir and its parents.
func (r *Runner) MkdirAll(dir string) error {
	if r.Dry {
		r.plan("mkdir -p %q", dir)
		return nil
	}
	r.Logger.Debug("mkdir", "dir", dir)
	return r.Fs.MkdirAll(dir, 0o755)
}

// Copy copies the file src to dst, creating dst's directory.
func (r *Runner) Copy(src, dst string) error {
	if r.Dry {
		r.plan("cp %q %q", src, dst)
		return nil
	}
	r.Logger.Debug("copy", "src", src, "dst", dst)

	if err := r.Fs.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", filepath.Dir(dst), err)
	}
	in, err := r.Fs.Open(src)
	if err != nil {
		return fmt.Errorf("opening %s: %w", src, err)
	}
	defer in.Close()

	out, err := r.Fs.Create(dst)
	if err != nil {
		return fmt.Errorf("creating %s: %w", dst, err)
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return fmt.Errorf("copying %s to %s: %w", src, dst, err)
	}
	return out.Close()
}

// CopyPair copies both files of p into dir.
func (r *Runner) CopyPair(p Pair, dir string) (Pair, error) {
	if err := p.Validate(); err != nil {
		return Pair{}, err
	}
	dst := Pair{
		Pak: filepath.Join(dir, filepath.Base(p.Pak)),
		Sig: filepath.Join(dir, filepath.Base(p.Sig)),
	}
	if err := r.Copy(p.Pak, dst.Pak); err != nil {
		return Pair{}, err
	}
	if err := r.Copy(p.Sig, dst.Sig); err != nil {
		return Pair{}, err
	}
	return dst, nil
}

// RemoveAll removes path and everything below it. A missing path is not an error.
func (r *Runner) RemoveAll(path string) error {
	if r.Dry {
		r.plan("rm -rf %q", path)
		return nil
	}
	r.Logger.Debug("remove", "path", path)
	if err := r.Fs.RemoveAll(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("removing %s: %w", path, err)
	}
	return nil
}
