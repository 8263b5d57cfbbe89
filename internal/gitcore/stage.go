package gitcore

import "os"

// Add stages the current on-disk content of path: it reads the file through
// the WorkingTree collaborator, stores it as a blob, and records the
// resulting fingerprint in the index. Fails with ErrPathNotFound if the file
// does not exist (spec §7).
func (r *Repository) Add(path string) error {
	content, err := r.wt.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return newErr(ErrPathNotFound, "path not found: %s", path)
		}
		return wrapErr(ErrUnknown, "reading "+path, err)
	}

	h, err := r.Store.PutBlob(content)
	if err != nil {
		return err
	}

	idx, err := r.ReadIndex()
	if err != nil {
		return err
	}
	idx.Set(path, h)
	if err := idx.Save(); err != nil {
		return wrapErr(ErrUnknown, "saving index", err)
	}

	r.Logger.Debug("staged path", "path", path, "blob", h.Short())
	return nil
}
