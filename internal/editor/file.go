package editor

// FileSaver persists a document's full text to path. internal/app
// wires this to an atomic temp-file-then-rename writer, the same
// guarantee crash recovery snapshots use, so a save that dies midway
// never truncates the file on disk.
type FileSaver interface {
	Save(path, content string) error
}

// Notifier reports a save failure to the host's toast queue.
// internal/app.Notifications satisfies this directly.
type Notifier interface {
	NotifyError(msg string)
}

// saveFile writes the document's current text to path via Saver. A
// nil Saver or empty path makes this a no-op, which is how a
// Commander under test with no file wired behaves. Saving never
// changes the buffer or selection, so it always reports no change;
// errors are pushed through Notify rather than returned, since a save
// failure (disk full, permission denied) shouldn't abort the frame
// loop the way a buffer-corrupting error would.
func (c *Commander) saveFile(path string) bool {
	if c.Saver == nil || path == "" {
		return false
	}
	if err := c.Saver.Save(path, c.Doc.Buf.Text()); err != nil {
		if c.Notify != nil {
			c.Notify.NotifyError("save " + path + ": " + err.Error())
		}
		return false
	}
	c.Path = path
	return false
}
