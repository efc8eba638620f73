// Package fileutil holds the file system helpers shared by the interpreter
// version cache and the pyenv interpreter service.
//
// AtomicWriteJSON writes through a temporary file and a rename, so a cache
// entry read concurrently is either the old record or the new one:
//
//	if err := fileutil.EnsureDir(dir); err != nil {
//	    return err
//	}
//	return fileutil.AtomicWriteJSON(filepath.Join(dir, "python3.12-1f2e.json"), entry)
package fileutil
