// Package storage provides file management for downloaded assets and the
// metadata catalog.
//
// Writes go through WriteFileAtomic: bytes are streamed into a temporary file
// in the destination directory and renamed into place only after the copy and
// close succeed. A reader or disk failure removes the temporary file, so a
// destination path either holds a complete file or nothing new.
//
// Usage:
//
//	manager, err := storage.NewManager("assets")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	path := manager.Path("post-dynamic-0-ABC.jpg")
//	if !storage.Exists(path) {
//	    _, err = storage.WriteFileAtomic(path, body, nil)
//	}
package storage
