package audiometa

import (
	"github.com/gocontainer/avmeta/internal/types"
)

// Chapter is an alias to types.Chapter for backwards compatibility.
// Re-exporting from internal/types to maintain public API.
type Chapter = types.Chapter
