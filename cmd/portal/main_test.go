package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	require.NoError(t, rootCmd.Execute(), out.String())
	return out.String()
}

func TestVersion(t *testing.T) {
	require.Equal(t, "portal dev\n", execute(t, "version"))
}

func TestInitNewAndBuild(t *testing.T) {
	t.Chdir(t.TempDir())

	execute(t, "init", "site", "--author", "Jane")
	t.Chdir("site")

	out := execute(t, "new", "My", "Second", "Post")
	require.Contains(t, out, filepath.Join("content", "posts", "my-second-post.md"))
	raw, err := os.ReadFile(filepath.Join("content", "posts", "my-second-post.md"))
	require.NoError(t, err)
	require.Contains(t, string(raw), "published: false")
	require.Contains(t, string(raw), `author: "Jane"`)

	out = execute(t, "build", "--out", "dist")
	require.Contains(t, out, "built 3 pages and 1 posts into dist")
	require.FileExists(t, filepath.Join("dist", "blog", "hello-world", "index.html"))
	require.NoFileExists(t, filepath.Join("dist", "blog", "my-second-post", "index.html"))
}
