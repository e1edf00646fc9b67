package ext

import (
	"strings"

	"github.com/zhtao/turboply"
)

// Texture paths ride in "comment TextureFile <path>" lines, the convention
// most mesh tools agree on.
const textureCommentTag = "TextureFile "

// AddTexturePaths registers one TextureFile comment per path, in order.
func AddTexturePaths(w *turboply.Writer, paths []string) {
	for _, p := range paths {
		w.AddComment(textureCommentTag + p)
	}
}

// TexturePaths extracts texture paths from parsed header comments, in
// file order.
func TexturePaths(comments []string) []string {
	var paths []string
	for _, c := range comments {
		if strings.HasPrefix(c, textureCommentTag) {
			paths = append(paths, strings.TrimPrefix(c, textureCommentTag))
		}
	}
	return paths
}
