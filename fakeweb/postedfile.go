package fakeweb

import (
	"fmt"
	"io"
	"iter"
	"os"

	"github.com/ccoveille/go-safecast/v2"

	"github.com/launchdarkly/fake-http-context/collection"
)

// PostedFile is a file uploaded with a request.
type PostedFile struct {
	fileName    string
	contentType string
	inputStream io.ReadSeeker
}

func NewPostedFile(fileName, contentType string, inputStream io.ReadSeeker) (*PostedFile, error) {
	if fileName == "" {
		return nil, nilArgument("fileName")
	}
	if contentType == "" {
		return nil, nilArgument("contentType")
	}
	if inputStream == nil {
		return nil, nilArgument("inputStream")
	}
	return &PostedFile{fileName: fileName, contentType: contentType, inputStream: inputStream}, nil
}

func (f *PostedFile) FileName() string           { return f.fileName }
func (f *PostedFile) ContentType() string        { return f.contentType }
func (f *PostedFile) InputStream() io.ReadSeeker { return f.inputStream }

// ContentLength returns the total length of the input stream.
func (f *PostedFile) ContentLength() (int, error) {
	return streamLength(f.inputStream)
}

// SaveAs copies the input stream from its start into a new file at path.
func (f *PostedFile) SaveAs(path string) (err error) {
	if _, err := f.inputStream.Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("rewinding %s: %w", f.fileName, err)
	}
	out, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := out.Close(); err == nil {
			err = closeErr
		}
	}()
	_, err = io.Copy(out, f.inputStream)
	return err
}

// streamLength returns the length of s without moving its current position.
func streamLength(s io.Seeker) (int, error) {
	cur, err := s.Seek(0, io.SeekCurrent)
	if err != nil {
		return 0, err
	}
	end, err := s.Seek(0, io.SeekEnd)
	if err != nil {
		return 0, err
	}
	if _, err := s.Seek(cur, io.SeekStart); err != nil {
		return 0, err
	}
	return safecast.Convert[int](end)
}

// FileCollection holds posted files keyed case-insensitively by form field name.
type FileCollection struct {
	files *collection.Collection[*PostedFile]
}

func NewFileCollection() *FileCollection {
	return &FileCollection{files: collection.New[*PostedFile](collection.IgnoreCase)}
}

func (c *FileCollection) AddFile(key string, file *PostedFile) { c.files.Add(key, file) }

// Get returns the first file posted under name, or nil.
func (c *FileCollection) Get(name string) *PostedFile {
	f, _ := c.files.Get(name)
	return f
}

func (c *FileCollection) GetAt(index int) (*PostedFile, error) { return c.files.GetAt(index) }
func (c *FileCollection) GetKey(index int) (string, error)     { return c.files.GetKey(index) }
func (c *FileCollection) AllKeys() []string                    { return c.files.AllKeys() }
func (c *FileCollection) Count() int                           { return c.files.Count() }

// GetMultiple returns every file posted under name, in order.
func (c *FileCollection) GetMultiple(name string) []*PostedFile { return c.files.GetAll(name) }

func (c *FileCollection) All() iter.Seq2[string, *PostedFile] { return c.files.Entries() }
