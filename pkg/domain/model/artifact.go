package model

import "fmt"

// Artifact is the single file produced by the package command
type Artifact struct {
	Name string // File name, also used as the asset name
	Path string // Local path
	Data []byte // File content, loaded before upload
}

// ArtifactName returns the file name the package command produces for a version
func ArtifactName(product, version, ext string) string {
	return fmt.Sprintf("%s-%s.%s", product, version, ext)
}
