package fakeweb

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	helpers "github.com/launchdarkly/go-test-helpers/v2"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPostedFileValidation(t *testing.T) {
	body := bytes.NewReader([]byte("x"))

	_, err := NewPostedFile("", "text/plain", body)
	requireArgumentError(t, err, "fileName", true)
	_, err = NewPostedFile("a.txt", "", body)
	requireArgumentError(t, err, "contentType", true)
	_, err = NewPostedFile("a.txt", "text/plain", nil)
	requireArgumentError(t, err, "inputStream", true)
}

func TestPostedFileProperties(t *testing.T) {
	body := bytes.NewReader([]byte("hello"))
	f, err := NewPostedFile("a.txt", "text/plain", body)
	require.NoError(t, err)

	assert.Equal(t, "a.txt", f.FileName())
	assert.Equal(t, "text/plain", f.ContentType())
	assert.Same(t, body, f.InputStream())

	n, err := f.ContentLength()
	require.NoError(t, err)
	assert.Equal(t, 5, n)
}

func TestPostedFileSaveAs(t *testing.T) {
	body := bytes.NewReader([]byte("file content"))
	_, _ = body.Seek(4, 0)
	f, err := NewPostedFile("a.txt", "text/plain", body)
	require.NoError(t, err)

	helpers.WithTempFile(func(path string) {
		require.NoError(t, f.SaveAs(path))
		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "file content", string(data))
	})
}

func TestPostedFileSaveAsReturnsIOError(t *testing.T) {
	f, err := NewPostedFile("a.txt", "text/plain", bytes.NewReader(nil))
	require.NoError(t, err)

	err = f.SaveAs(filepath.Join(t.TempDir(), "missing", "a.txt"))
	assert.Error(t, err)
}

func TestFileCollection(t *testing.T) {
	a, _ := NewPostedFile("a.txt", "text/plain", bytes.NewReader([]byte("a")))
	b, _ := NewPostedFile("b.txt", "text/plain", bytes.NewReader([]byte("b")))
	c, _ := NewPostedFile("c.txt", "text/plain", bytes.NewReader([]byte("c")))

	files := NewFileCollection()
	files.AddFile("upload", a)
	files.AddFile("other", b)
	files.AddFile("UPLOAD", c)

	assert.Equal(t, 3, files.Count())
	assert.Same(t, a, files.Get("Upload"))
	assert.Nil(t, files.Get("missing"))
	assert.Equal(t, []*PostedFile{a, c}, files.GetMultiple("upload"))
	assert.Equal(t, []string{"upload", "other", "UPLOAD"}, files.AllKeys())

	f, err := files.GetAt(1)
	require.NoError(t, err)
	assert.Same(t, b, f)
	key, err := files.GetKey(2)
	require.NoError(t, err)
	assert.Equal(t, "UPLOAD", key)
}
