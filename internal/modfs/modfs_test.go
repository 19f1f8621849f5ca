package modfs

import (
	"bytes"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFiles(t *testing.T, fs afero.Fs, files map[string]string) {
	t.Helper()
	for name, content := range files {
		require.NoError(t, afero.WriteFile(fs, name, []byte(content), 0o644))
	}
}

func TestPairValidate(t *testing.T) {
	assert.NoError(t, Pair{Pak: "a/x.pak", Sig: "b/x.sig"}.Validate())
	assert.Error(t, Pair{Pak: "a/x.zip", Sig: "a/x.sig"}.Validate())
	assert.Error(t, Pair{Pak: "a/x.pak", Sig: "a/x.txt"}.Validate())
	assert.Error(t, Pair{Pak: "a/x.pak", Sig: "a/y.sig"}.Validate())
}

func TestPairFor(t *testing.T) {
	p, err := PairFor("/mods/outfit.pak")
	require.NoError(t, err)
	assert.Equal(t, "/mods/outfit.sig", p.Sig)
	assert.Equal(t, "outfit", p.Stem())

	_, err = PairFor("/mods/outfit.sig")
	assert.Error(t, err)
}

func TestFindPairs(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFiles(t, fs, map[string]string{
		"/dl/b.pak":      "b",
		"/dl/b.sig":      "b",
		"/dl/sub/a.pak":  "a",
		"/dl/sub/a.sig":  "a",
		"/dl/readme.txt": "hi",
	})

	pairs, err := FindPairs(fs, "/dl")
	require.NoError(t, err)
	require.Len(t, pairs, 2)
	assert.Equal(t, "/dl/b.pak", pairs[0].Pak)
	assert.Equal(t, "/dl/sub/a.sig", pairs[1].Sig)

	writeFiles(t, fs, map[string]string{"/dl/c.pak": "c"})
	_, err = FindPairs(fs, "/dl")
	assert.Error(t, err)
}

func TestRunnerCopyAndRemove(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFiles(t, fs, map[string]string{"/dl/x.pak": "pak", "/dl/x.sig": "sig"})

	var out bytes.Buffer
	r := NewRunner(fs, false, &out)

	dst, err := r.CopyPair(Pair{Pak: "/dl/x.pak", Sig: "/dl/x.sig"}, "/mods/game/mod")
	require.NoError(t, err)
	assert.Equal(t, "/mods/game/mod/x.pak", dst.Pak)

	data, err := afero.ReadFile(fs, dst.Sig)
	require.NoError(t, err)
	assert.Equal(t, "sig", string(data))
	assert.Empty(t, out.String())

	require.NoError(t, r.RemoveAll("/mods/game/mod"))
	exists, err := afero.Exists(fs, dst.Pak)
	require.NoError(t, err)
	assert.False(t, exists)

	require.NoError(t, r.RemoveAll("/mods/missing"))
}

func TestRunnerDry(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFiles(t, fs, map[string]string{"/dl/x.pak": "pak", "/dl/x.sig": "sig"})

	var out bytes.Buffer
	r := NewRunner(fs, true, &out)

	_, err := r.CopyPair(Pair{Pak: "/dl/x.pak", Sig: "/dl/x.sig"}, "/mods/m")
	require.NoError(t, err)
	require.NoError(t, r.MkdirAll("/mods/other"))
	require.NoError(t, r.RemoveAll("/dl"))

	assert.Equal(t, `cp "/dl/x.pak" "/mods/m/x.pak"
cp "/dl/x.sig" "/mods/m/x.sig"
mkdir -p "/mods/other"
rm -rf "/dl"
`, out.String())

	exists, err := afero.Exists(fs, "/mods/m/x.pak")
	require.NoError(t, err)
	assert.False(t, exists)
	exists, err = afero.Exists(fs, "/dl/x.pak")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestInstallDir(t *testing.T) {
	assert.Equal(t, "/games/strive/RED/Content/Paks/~mods", InstallDir("/games/strive", "RED/Content/Paks/", "~mods/"))
}
